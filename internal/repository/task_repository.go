package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

// ErrNotFound is returned when no task exists for the requested id.
var ErrNotFound = errors.New("task not found")

// StorageError wraps a failure of the underlying database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Option configures a TaskRepository.
type Option func(*TaskRepository)

// WithClock replaces the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *TaskRepository) {
		r.clock = now
	}
}

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db    *gorm.DB
	clock func() time.Time
}

func NewTaskRepository(db *gorm.DB, opts ...Option) *TaskRepository {
	r := &TaskRepository{db: db, clock: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// now is truncated to microseconds, the finest precision Postgres keeps.
func (r *TaskRepository) now() time.Time {
	return r.clock().UTC().Truncate(time.Microsecond)
}

// Create validates the fields and inserts a new task. The database assigns the id.
func (r *TaskRepository) Create(ctx context.Context, fields model.TaskFields) (*model.Task, error) {
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	task := model.Task{CreatedAt: r.now()}
	task.Apply(fields)
	if err := r.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, &StorageError{Op: "create task", Err: err}
	}
	return &task, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "get task", Err: err}
	}
	toUTC(&task)
	return &task, nil
}

// List returns every task, newest first. Tasks created at the same instant are
// ordered by descending id.
func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&tasks).Error; err != nil {
		return nil, &StorageError{Op: "list tasks", Err: err}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	for i := range tasks {
		toUTC(&tasks[i])
	}
	return tasks, nil
}

// Update replaces the mutable fields of the task and stamps UpdatedAt.
// The id and CreatedAt are never written.
func (r *TaskRepository) Update(ctx context.Context, id uint, fields model.TaskFields) (*model.Task, error) {
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	task, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updatedAt := r.now()
	if task.UpdatedAt != nil && updatedAt.Before(*task.UpdatedAt) {
		updatedAt = *task.UpdatedAt
	}
	task.Apply(fields)
	task.UpdatedAt = &updatedAt

	result := r.db.WithContext(ctx).Model(task).
		Select("title", "description", "status", "priority", "due_date", "updated_at").
		Updates(task)
	if err := result.Error; err != nil {
		return nil, &StorageError{Op: "update task", Err: err}
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return task, nil
}

// Delete removes the task permanently.
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, id)
	if err := result.Error; err != nil {
		return &StorageError{Op: "delete task", Err: err}
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks that the database is reachable.
func (r *TaskRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}

func toUTC(task *model.Task) {
	task.CreatedAt = task.CreatedAt.UTC()
	if task.UpdatedAt != nil {
		t := task.UpdatedAt.UTC()
		task.UpdatedAt = &t
	}
	if task.DueDate != nil {
		t := task.DueDate.UTC()
		task.DueDate = &t
	}
}
