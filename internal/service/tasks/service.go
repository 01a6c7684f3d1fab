// Package tasks provides the application service for task management.
// It orchestrates the task store and enforces per-owner authorization:
// a task is visible and mutable only to the user who created it.
package tasks

import (
	"context"
	"errors"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Common task service errors - sentinel errors callers check with errors.Is().
var (
	// ErrTaskNotFound indicates that the task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNotOwned indicates that the user does not own the task.
	// Existence checks run first, so a 403 response does reveal that the
	// task exists; this mirrors the product decision to keep NotFound
	// precedence over Forbidden.
	// API layer should map this to HTTP 403 Forbidden.
	ErrTaskNotOwned = errors.New("unauthorized access: task not owned by user")
)

// ListRequest carries the query parameters of a task listing.
type ListRequest struct {
	// Filter optionally narrows the listing by completion status.
	Filter store.TaskFilter

	// Page is 1-based; non-positive values fall back to the first page.
	Page int

	// PerPage is the page size; non-positive values fall back to the default.
	PerPage int
}

// TaskService provides owner-scoped task operations.
//
// Every operation that addresses a task by ID resolves existence first
// (ErrTaskNotFound) and ownership second (ErrTaskNotOwned); a mutation is
// never applied to a task the caller does not own.
type TaskService interface {
	// Create stores a new task owned by ownerID. Title and description are
	// required; completed defaults to false.
	Create(ctx context.Context, ownerID int64, title, description string, completed bool) (*domain.Task, error)

	// Get retrieves a single task the caller owns.
	Get(ctx context.Context, callerID, taskID int64) (*domain.Task, error)

	// List returns one page of the caller's tasks. Out-of-range pages yield
	// an empty page with correct totals rather than an error.
	List(ctx context.Context, callerID int64, req ListRequest) (*store.TaskPage, error)

	// Update applies a partial update to a task the caller owns and returns
	// the updated task. An update carrying no fields is a no-op that still
	// returns the task.
	Update(ctx context.Context, callerID, taskID int64, update domain.TaskUpdate) (*domain.Task, error)

	// Delete permanently removes a task the caller owns.
	Delete(ctx context.Context, callerID, taskID int64) error
}
