package api

import (
	"time"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
// Login deliberately carries no validation tags: a missing or empty field
// fails the credential check and yields the same 401 as a wrong password.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// AccessToken is the JWT bearer token used for API authorization.
	AccessToken string `json:"access_token"`
}

// MessageResponse is the body for endpoints that only confirm an outcome.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// CreateTaskRequest defines the payload for task creation.
// Completed is a pointer so an absent field is distinguishable from false.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Completed   *bool  `json:"completed"`
}

// UpdateTaskRequest defines the payload for partial task updates.
// All fields are optional; absent fields leave the task unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TaskResponse represents a single task in API responses.
// Timestamps are serialized as ISO 8601 UTC with a trailing Z.
type TaskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	UserID      int64  `json:"user_id"`
}

// TaskListResponse represents one page of a user's tasks.
type TaskListResponse struct {
	Tasks       []TaskResponse `json:"tasks"`
	TotalTasks  int            `json:"total_tasks"`
	TotalPages  int            `json:"total_pages"`
	CurrentPage int            `json:"current_page"`
	PerPage     int            `json:"per_page"`
}

// taskToResponse transforms a domain task into its API representation.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.UTC().Format(time.RFC3339),
		UserID:      task.UserID,
	}
}

// taskPageToResponse transforms a store page into its API representation.
// Tasks is always a JSON array, never null.
func taskPageToResponse(page *store.TaskPage) TaskListResponse {
	items := make([]TaskResponse, 0, len(page.Items))
	for _, task := range page.Items {
		items = append(items, taskToResponse(task))
	}

	return TaskListResponse{
		Tasks:       items,
		TotalTasks:  page.Total,
		TotalPages:  page.TotalPages,
		CurrentPage: page.Page,
		PerPage:     page.PerPage,
	}
}
