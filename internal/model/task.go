package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Task represents a single item in the task list.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description *string    `gorm:"size:1000" json:"description,omitempty"`
	Status      Status     `gorm:"type:varchar(16);not null" json:"status"`
	Priority    Priority   `gorm:"type:varchar(16);not null" json:"priority"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false;not null;index" json:"createdAt"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// TableName pins the table name regardless of naming strategy.
func (Task) TableName() string {
	return "tasks"
}

// TaskFields holds the mutable part of a task, used by both create and update.
type TaskFields struct {
	Title       string
	Description *string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
}

// Normalize trims the title and converts the due date to UTC.
func (f TaskFields) Normalize() TaskFields {
	f.Title = strings.TrimSpace(f.Title)
	if f.DueDate != nil {
		due := f.DueDate.UTC()
		f.DueDate = &due
	}
	return f
}

// Validate checks field constraints. Call it on normalized fields.
func (f TaskFields) Validate() error {
	var errs ValidationErrors
	switch {
	case f.Title == "":
		errs.Add("title", "is required")
	case utf8.RuneCountInString(f.Title) > MaxTitleLength:
		errs.Add("title", "must be at most 200 characters")
	}
	if f.Description != nil && utf8.RuneCountInString(*f.Description) > MaxDescriptionLength {
		errs.Add("description", "must be at most 1000 characters")
	}
	if !f.Status.Valid() {
		errs.Add("status", "must be one of "+strings.Join(StatusNames(), ", "))
	}
	if !f.Priority.Valid() {
		errs.Add("priority", "must be one of "+strings.Join(PriorityNames(), ", "))
	}
	return errs.OrNil()
}

// Apply copies the fields onto the task, leaving identity and timestamps alone.
func (t *Task) Apply(f TaskFields) {
	t.Title = f.Title
	t.Description = f.Description
	t.Status = f.Status
	t.Priority = f.Priority
	t.DueDate = f.DueDate
}
