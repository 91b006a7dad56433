package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bolao-app/bolao-api/internal/domain/profile"
	qb "github.com/bolao-app/bolao-api/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileTableModel struct {
	ID        string    `db:"id"`
	Username  string    `db:"username"`
	FullName  string    `db:"full_name"`
	AvatarURL string    `db:"avatar_url"`
	Phone     string    `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *ProfileRepository) ListByIDs(ctx context.Context, ids []string) ([]profile.Profile, error) {
	values := make([]any, 0, len(ids))
	for _, id := range ids {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return []profile.Profile{}, nil
	}

	query, args, err := qb.Select(
		"id",
		"username",
		"COALESCE(full_name, '') AS full_name",
		"COALESCE(avatar_url, '') AS avatar_url",
		"COALESCE(phone, '') AS phone",
		"created_at",
		"updated_at",
	).From("profiles").
		Where(qb.In("id", values)).
		OrderBy("username", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select profiles query: %w", err)
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select profiles: %w", err)
	}

	out := make([]profile.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profile.Profile{
			ID:        row.ID,
			Username:  row.Username,
			FullName:  row.FullName,
			AvatarURL: row.AvatarURL,
			Phone:     row.Phone,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	return out, nil
}
