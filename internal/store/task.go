package store

import (
	"context"
	"database/sql"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Default pagination bounds for task listings.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// TaskFilter narrows a task listing. A nil Completed means no filtering
// by completion status.
type TaskFilter struct {
	Completed *bool
}

// TaskPage is one page of a task listing together with pagination totals.
// Pages never fail on out-of-range bounds: a page past the end simply has
// an empty Items slice with the totals still filled in.
type TaskPage struct {
	Items      []*domain.Task
	Total      int
	TotalPages int
	Page       int
	PerPage    int
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and assigns its ID.
	// The task's owner must already be set and is never changed afterwards.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns one page of the tasks owned by ownerID, optionally
	// narrowed by filter. Results are ordered by ascending ID so pages are
	// stable across requests. Non-positive page or perPage fall back to
	// DefaultPage and DefaultPerPage.
	List(ctx context.Context, ownerID int64, filter TaskFilter, page, perPage int) (*TaskPage, error)

	// Update persists the task's current field values.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID. The removal is
	// permanent.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
