package profile

import "context"

type Repository interface {
	ListByIDs(ctx context.Context, ids []string) ([]Profile, error)
}
