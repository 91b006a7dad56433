package postgres

import (
	"database/sql"
	"testing"
)

func TestNullIntPtr(t *testing.T) {
	t.Run("valid value round trips", func(t *testing.T) {
		got := nullIntPtr(sql.NullInt64{Int64: 3, Valid: true})
		if got == nil || *got != 3 {
			t.Fatalf("expected 3, got %v", got)
		}
	})

	t.Run("null maps to nil", func(t *testing.T) {
		if got := nullIntPtr(sql.NullInt64{}); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})
}

func TestIntPtrToNull(t *testing.T) {
	t.Run("nil maps to invalid", func(t *testing.T) {
		if got := intPtrToNull(nil); got.Valid {
			t.Fatalf("expected invalid NullInt64")
		}
	})

	t.Run("zero score stays valid", func(t *testing.T) {
		zero := 0
		got := intPtrToNull(&zero)
		if !got.Valid || got.Int64 != 0 {
			t.Fatalf("a 0x0 score must not serialize as NULL: %+v", got)
		}
	})
}
