package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck-api/internal/store"
)

func pgError(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: "some_constraint"}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"nil error", nil, nil},
		{"no rows maps to not found", sql.ErrNoRows, store.ErrNotFound},
		{"wrapped no rows maps to not found", fmt.Errorf("scan: %w", sql.ErrNoRows), store.ErrNotFound},
		{"unique violation maps to duplicate", pgError(uniqueViolationCode), store.ErrDuplicate},
		{"foreign key violation maps to invalid entity", pgError(foreignKeyViolationCode), store.ErrInvalidEntity},
		{"check violation maps to invalid entity", pgError(checkViolationCode), store.ErrInvalidEntity},
		{"not null violation maps to invalid entity", pgError(notNullViolationCode), store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mapped := MapError(tt.err)

			if tt.wantErr == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tt.wantErr)
		})
	}

	t.Run("unknown errors pass through unchanged", func(t *testing.T) {
		t.Parallel()
		original := errors.New("connection reset")
		assert.Equal(t, original, MapError(original))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(pgError(uniqueViolationCode)))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgError(uniqueViolationCode))))
	assert.False(t, IsUniqueViolation(pgError(foreignKeyViolationCode)))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.True(t, IsNotFoundError(store.ErrNotFound))
	assert.True(t, IsNotFoundError(store.ErrTaskNotFound))
	assert.False(t, IsNotFoundError(errors.New("boom")))
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	t.Run("maps to the specific error", func(t *testing.T) {
		t.Parallel()
		err := MapUniqueViolation(pgError(uniqueViolationCode), store.ErrUsernameExists)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("falls back to generic duplicate", func(t *testing.T) {
		t.Parallel()
		err := MapUniqueViolation(pgError(uniqueViolationCode), nil)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("passes through non-unique errors", func(t *testing.T) {
		t.Parallel()
		original := errors.New("boom")
		assert.Equal(t, original, MapUniqueViolation(original, store.ErrUsernameExists))
	})
}

type fakeResult struct {
	rows    int64
	rowsErr error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.rowsErr }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, "task"))
	})

	t.Run("zero rows is not found", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(fakeResult{rows: 0}, "task")
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Contains(t, err.Error(), "task")
	})

	t.Run("zero rows without entity name", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}, ""), store.ErrNotFound)
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, CheckRowsAffected(nil, "task"))
	})

	t.Run("RowsAffected failure", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, CheckRowsAffected(fakeResult{rowsErr: errors.New("driver")}, "task"))
	})
}
