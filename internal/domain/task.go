package domain

import (
	"errors"
	"time"
)

// Common task validation errors
var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrMissingOwner     = errors.New("task must have an owner")
)

// Task represents a single to-do item owned by exactly one user.
// UserID is fixed at creation and never reassigned.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      int64     `json:"user_id"`
}

// NewTask creates a new Task owned by the given user. Title and description
// are required; completed defaults to false unless explicitly provided.
// Returns an error if validation fails.
func NewTask(ownerID int64, title, description string, completed bool) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      ownerID,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}

	if t.Description == "" {
		return ErrEmptyDescription
	}

	if t.UserID == 0 {
		return ErrMissingOwner
	}

	return nil
}

// TaskUpdate describes a partial update to a task. Nil fields are left
// unchanged; Completed is applied whenever set, including an explicit false.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the update carries no changes at all.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}

// Validate checks that any string field present in the update is non-empty.
// Absent fields are ignored rather than treated as clears.
func (u TaskUpdate) Validate() error {
	if u.Title != nil && *u.Title == "" {
		return ErrEmptyTitle
	}

	if u.Description != nil && *u.Description == "" {
		return ErrEmptyDescription
	}

	return nil
}

// Apply copies the update's present fields onto the task and refreshes
// UpdatedAt. It reports whether any field changed.
func (u TaskUpdate) Apply(t *Task) bool {
	changed := false

	if u.Title != nil && *u.Title != t.Title {
		t.Title = *u.Title
		changed = true
	}

	if u.Description != nil && *u.Description != t.Description {
		t.Description = *u.Description
		changed = true
	}

	if u.Completed != nil && *u.Completed != t.Completed {
		t.Completed = *u.Completed
		changed = true
	}

	if changed {
		t.UpdatedAt = time.Now().UTC()
	}

	return changed
}
