package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Verify interface compliance at compile time
var _ TaskService = (*taskServiceImpl)(nil)

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	db        *sql.DB
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService implementation.
// db may be nil in tests backed by fake stores; real deployments pass the
// database handle so the read-check-write paths run in one transaction.
func NewTaskService(db *sql.DB, taskStore store.TaskStore, logger *slog.Logger) TaskService {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		db:        db,
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// runInTransaction executes fn against a transaction-scoped task store.
// Without a database handle the store is used directly; single-statement
// operations are atomic on their own.
func (s *taskServiceImpl) runInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, taskStore store.TaskStore) error,
) error {
	if s.db == nil {
		return fn(ctx, s.taskStore)
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.taskStore.WithTx(tx))
	})
}

// getOwned fetches a task and enforces the ownership guard. Existence is
// resolved before ownership, so missing tasks surface as ErrTaskNotFound
// even for callers who would not own them.
func getOwned(
	ctx context.Context,
	taskStore store.TaskStore,
	callerID, taskID int64,
	log *slog.Logger,
) (*domain.Task, error) {
	task, err := taskStore.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found",
				slog.Int64("task_id", taskID),
				slog.Int64("caller_id", callerID))
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task.UserID != callerID {
		log.Warn("ownership check failed",
			slog.Int64("task_id", taskID),
			slog.Int64("owner_id", task.UserID),
			slog.Int64("caller_id", callerID))
		return nil, ErrTaskNotOwned
	}

	return task, nil
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	ownerID int64,
	title, description string,
	completed bool,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(ownerID, title, description, completed)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", ownerID))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", ownerID))
	return task, nil
}

// Get implements TaskService.Get.
func (s *taskServiceImpl) Get(ctx context.Context, callerID, taskID int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	return getOwned(ctx, s.taskStore, callerID, taskID, log)
}

// List implements TaskService.List.
// The listing is inherently owner-scoped: the store query is keyed by the
// caller's ID, so another user's tasks can never appear regardless of
// filter or page values.
func (s *taskServiceImpl) List(
	ctx context.Context,
	callerID int64,
	req ListRequest,
) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	page, err := s.taskStore.List(ctx, callerID, req.Filter, req.Page, req.PerPage)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.Int64("caller_id", callerID))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return page, nil
}

// Update implements TaskService.Update.
// The existence check, ownership guard, and write run in one transaction so
// no partial state is visible to concurrent readers.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	callerID, taskID int64,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := s.runInTransaction(ctx, func(ctx context.Context, taskStore store.TaskStore) error {
		task, err := getOwned(ctx, taskStore, callerID, taskID, log)
		if err != nil {
			return err
		}

		// Field validation runs after the existence and ownership checks so
		// a bad payload against a foreign task still yields 403, not 400.
		if err := update.Validate(); err != nil {
			return err
		}

		if !update.Apply(task) {
			// Nothing changed; skip the write but still return the task.
			updated = task
			return nil
		}

		if err := taskStore.Update(ctx, task); err != nil {
			if store.IsNotFoundError(err) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to update task: %w", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrTaskNotOwned) ||
			errors.Is(err, domain.ErrEmptyTitle) || errors.Is(err, domain.ErrEmptyDescription) {
			return nil, err
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID),
			slog.Int64("caller_id", callerID))
		return nil, err
	}

	log.Debug("task updated",
		slog.Int64("task_id", taskID),
		slog.Int64("caller_id", callerID))
	return updated, nil
}

// Delete implements TaskService.Delete.
// Like Update, the check-then-delete runs in one transaction.
func (s *taskServiceImpl) Delete(ctx context.Context, callerID, taskID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.runInTransaction(ctx, func(ctx context.Context, taskStore store.TaskStore) error {
		if _, err := getOwned(ctx, taskStore, callerID, taskID, log); err != nil {
			return err
		}

		if err := taskStore.Delete(ctx, taskID); err != nil {
			if store.IsNotFoundError(err) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to delete task: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrTaskNotOwned) {
			return err
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID),
			slog.Int64("caller_id", callerID))
		return err
	}

	log.Debug("task deleted",
		slog.Int64("task_id", taskID),
		slog.Int64("caller_id", callerID))
	return nil
}
