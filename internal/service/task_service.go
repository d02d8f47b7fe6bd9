package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"task-manager/internal/model"
)

// ErrIDMismatch is returned when the id in an update body differs from the
// id the update was addressed to.
var ErrIDMismatch = errors.New("task id in body does not match path")

// TaskStore is the persistence the service delegates to.
type TaskStore interface {
	Create(ctx context.Context, fields model.TaskFields) (*model.Task, error)
	GetByID(ctx context.Context, id uint) (*model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Update(ctx context.Context, id uint, fields model.TaskFields) (*model.Task, error)
	Delete(ctx context.Context, id uint) error
}

// CreateTaskRequest represents data required to create a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      EnumValue  `json:"status"`
	Priority    EnumValue  `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// UpdateTaskRequest replaces every mutable field of a task. ID is optional;
// when present it must name the task being updated.
type UpdateTaskRequest struct {
	ID *uint `json:"id,omitempty"`
	CreateTaskRequest
}

// TaskService wraps task-related business logic.
type TaskService struct {
	store TaskStore
	log   logrus.FieldLogger
}

func NewTaskService(store TaskStore, log logrus.FieldLogger) *TaskService {
	return &TaskService{store: store, log: log}
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list tasks")
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get task %d", id)
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*model.Task, error) {
	fields, err := s.Validate(req)
	if err != nil {
		return nil, err
	}

	task, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, errors.Wrap(err, "create task")
	}
	s.log.WithField("task_id", task.ID).Infof("Created task %q", task.Title)
	return task, nil
}

// Update replaces the task's mutable fields.
func (s *TaskService) Update(ctx context.Context, id uint, req UpdateTaskRequest) (*model.Task, error) {
	if req.ID != nil && *req.ID != id {
		return nil, ErrIDMismatch
	}

	fields, err := s.Validate(req.CreateTaskRequest)
	if err != nil {
		return nil, err
	}

	task, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, errors.Wrapf(err, "update task %d", id)
	}
	s.log.WithField("task_id", id).Infof("Updated task to status %s", task.Status)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "delete task %d", id)
	}
	s.log.WithField("task_id", id).Info("Deleted task")
	return nil
}

// Validate normalizes the enum fields and checks every field constraint,
// returning the store-ready fields or a model.ValidationErrors listing each
// rejected field.
func (s *TaskService) Validate(req CreateTaskRequest) (model.TaskFields, error) {
	var errs model.ValidationErrors

	status := s.normalizeField(&errs, "status", req.Status, model.StatusNames(), int(model.StatusPending))
	priority := s.normalizeField(&errs, "priority", req.Priority, model.PriorityNames(), int(model.PriorityMedium))

	fields := model.TaskFields{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.Status(status),
		Priority:    model.Priority(priority),
		DueDate:     req.DueDate,
	}.Normalize()
	errs.Merge(fields.Validate())

	if err := errs.OrNil(); err != nil {
		return model.TaskFields{}, err
	}
	return fields, nil
}

func (s *TaskService) normalizeField(errs *model.ValidationErrors, field string, v EnumValue, names []string, def int) int {
	res, err := normalize(v, names, def)
	if err != nil {
		errs.Add(field, err.Error())
		return def
	}
	if res.defaulted {
		s.log.WithField(field, res.unknown).Warnf("Unrecognized %s, using %s", field, names[def])
	}
	return res.ordinal
}
