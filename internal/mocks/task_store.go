package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// The default implementation is an in-memory map that assigns sequential
// IDs and reproduces the listing contract of the PostgreSQL store:
// owner-scoped, optionally filtered by completion, ordered by ascending ID,
// and paginated without failing on out-of-range pages.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Task, error)
	ListFn    func(ctx context.Context, ownerID int64, filter store.TaskFilter, page, perPage int) (*store.TaskPage, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) error
	DeleteFn  func(ctx context.Context, id int64) error

	// Data for default implementation
	mu     sync.Mutex
	Tasks  map[int64]*domain.Task
	nextID int64

	// Forced errors for default implementation
	CreateError error
	GetError    error
	ListError   error
	UpdateError error
	DeleteError error
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[int64]*domain.Task),
	}
}

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	task.ID = m.nextID
	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// GetByID implements the TaskStore interface.
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}

	copied := *task
	return &copied, nil
}

// List implements the TaskStore interface.
func (m *MockTaskStore) List(
	ctx context.Context,
	ownerID int64,
	filter store.TaskFilter,
	page, perPage int,
) (*store.TaskPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, filter, page, perPage)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	if page < 1 {
		page = store.DefaultPage
	}
	if perPage < 1 {
		perPage = store.DefaultPerPage
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	matching := []*domain.Task{}
	for _, task := range m.Tasks {
		if task.UserID != ownerID {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		copied := *task
		matching = append(matching, &copied)
	}
	sort.Slice(matching, func(i, j int) bool { return matching[i].ID < matching[j].ID })

	total := len(matching)
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return &store.TaskPage{
		Items:      matching[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

// Update implements the TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}

	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// Delete implements the TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}

	delete(m.Tasks, id)
	return nil
}

// WithTx implements the TaskStore interface. The mock has no transaction
// semantics, so it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
