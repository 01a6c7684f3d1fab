package postgres

import (
	"context"
	"database/sql"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db store.DBTX
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresTaskStore(db store.DBTX) *PostgresTaskStore {
	return &PostgresTaskStore{
		db: db,
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	if err := task.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (title, description, completed, created_at, updated_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
		task.UserID,
	).Scan(&task.ID)
	if err != nil {
		log.Error("failed to create task",
			"user_id", task.UserID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `
		SELECT id, title, description, completed, created_at, updated_at, user_id
		FROM tasks
		WHERE id = $1
	`

	task := &domain.Task{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.UserID,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}

	return task, nil
}

// List implements store.TaskStore.List
//
// Results are ordered by ascending ID so pages are stable across requests.
// Out-of-range pages return an empty item list with the totals still set;
// pagination never fails on bounds.
func (s *PostgresTaskStore) List(
	ctx context.Context,
	ownerID int64,
	filter store.TaskFilter,
	page, perPage int,
) (*store.TaskPage, error) {
	log := logger.FromContext(ctx)

	if page < 1 {
		page = store.DefaultPage
	}
	if perPage < 1 {
		perPage = store.DefaultPerPage
	}

	countQuery := `SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND ($2::boolean IS NULL OR completed = $2)`

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, ownerID, filter.Completed).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			"user_id", ownerID,
			"error", err)
		return nil, MapError(err)
	}

	query := `
		SELECT id, title, description, completed, created_at, updated_at, user_id
		FROM tasks
		WHERE user_id = $1 AND ($2::boolean IS NULL OR completed = $2)
		ORDER BY id ASC
		LIMIT $3 OFFSET $4
	`

	offset := (page - 1) * perPage
	rows, err := s.db.QueryContext(ctx, query, ownerID, filter.Completed, perPage, offset)
	if err != nil {
		log.Error("failed to list tasks",
			"user_id", ownerID,
			"error", err)
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", "error", closeErr)
		}
	}()

	items := []*domain.Task{}
	for rows.Next() {
		task := &domain.Task{}
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
			&task.UserID,
		); err != nil {
			return nil, MapError(err)
		}
		items = append(items, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}

	return &store.TaskPage{
		Items:      items,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

// Update implements store.TaskStore.Update
//
// The owning user_id column is deliberately absent from the SET list:
// ownership is fixed at creation.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	if err := task.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Completed,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			"task_id", task.ID,
			"error", err)
		return MapError(err)
	}

	return CheckRowsAffected(result, "task")
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query := `DELETE FROM tasks WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			"task_id", id,
			"error", err)
		return MapError(err)
	}

	return CheckRowsAffected(result, "task")
}

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx}
}
