package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// fakeStore implements service.TaskStore in memory.
type fakeStore struct {
	mu     sync.Mutex
	tasks  map[uint]model.Task
	nextID uint
	now    time.Time
	err    error // returned by every call when set
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tasks: make(map[uint]model.Task),
		now:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeStore) Create(_ context.Context, fields model.TaskFields) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	f.nextID++
	task := model.Task{ID: f.nextID, CreatedAt: f.tick()}
	task.Apply(fields)
	f.tasks[task.ID] = task
	return &task, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &task, nil
}

func (f *fakeStore) List(_ context.Context) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	tasks := make([]model.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (f *fakeStore) Update(_ context.Context, id uint, fields model.TaskFields) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	task.Apply(fields)
	now := f.tick()
	task.UpdatedAt = &now
	f.tasks[id] = task
	return &task, nil
}

func (f *fakeStore) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

var errBroken = errors.New("connection refused")
