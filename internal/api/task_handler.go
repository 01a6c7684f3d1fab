package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/service/tasks"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService tasks.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService tasks.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// List handles GET /tasks/ requests.
// Supports an optional completed=true|false filter and page/per_page
// pagination. Out-of-range pages return an empty list with correct totals.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	req := tasks.ListRequest{
		Filter:  store.TaskFilter{Completed: parseCompletedFilter(r.URL.Query().Get("completed"))},
		Page:    queryInt(r, "page", store.DefaultPage),
		PerPage: queryInt(r, "per_page", store.DefaultPerPage),
	}

	page, err := h.taskService.List(r.Context(), userID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	log.Debug("listed tasks",
		slog.Int64("user_id", userID),
		slog.Int("count", len(page.Items)),
		slog.Int("total", page.Total))
	shared.RespondWithJSON(w, r, http.StatusOK, taskPageToResponse(page))
}

// Get handles GET /tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, err := getPathID(r, "id")
	if err != nil {
		// A non-numeric ID matches no task, so it reads as missing.
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.taskService.Get(r.Context(), userID, taskID)
	if err != nil {
		switch {
		case errors.Is(err, tasks.ErrTaskNotFound):
			shared.RespondWithError(w, r, http.StatusNotFound,
				fmt.Sprintf("Task with id %d not found or doesn't belong to the user.", taskID))
		case errors.Is(err, tasks.ErrTaskNotOwned):
			shared.RespondWithError(w, r, http.StatusForbidden,
				"You do not have permission to view this task.")
		default:
			HandleAPIError(w, r, err, "Failed to get task")
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Create handles POST /tasks/ requests.
// Title and description are required; completed is optional and defaults
// to false.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if isCompletedTypeError(err) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Completed must be a boolean.")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title and description are required.")
		return
	}

	completed := false
	if req.Completed != nil {
		completed = *req.Completed
	}

	task, err := h.taskService.Create(r.Context(), userID, req.Title, req.Description, completed)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTitle) || errors.Is(err, domain.ErrEmptyDescription) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Title and description are required.")
			return
		}
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", userID))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Update handles PUT /tasks/{id} requests.
// The update is partial: absent fields keep their current values, and a
// field that is present must carry a valid value.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if isCompletedTypeError(err) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Completed must be a boolean.")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, update)
	if err != nil {
		if errors.Is(err, tasks.ErrTaskNotOwned) {
			shared.RespondWithError(w, r, http.StatusForbidden,
				"You do not have permission to edit this task.")
			return
		}
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	log.Debug("task updated",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", userID))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	if err := h.taskService.Delete(r.Context(), userID, taskID); err != nil {
		if errors.Is(err, tasks.ErrTaskNotOwned) {
			shared.RespondWithError(w, r, http.StatusForbidden,
				"You do not have permission to delete this task.")
			return
		}
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	log.Info("task deleted",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Msg: "Task deleted successfully",
	})
}
