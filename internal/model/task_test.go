package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskFieldsNormalize(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	due := time.Date(2025, 3, 1, 12, 0, 0, 0, loc)

	f := TaskFields{Title: "  Write spec \n", DueDate: &due}.Normalize()

	assert.Equal(t, "Write spec", f.Title)
	require.NotNil(t, f.DueDate)
	assert.Equal(t, time.UTC, f.DueDate.Location())
	assert.True(t, f.DueDate.Equal(due))
}

func TestTaskFieldsValidate(t *testing.T) {
	long := strings.Repeat("x", MaxDescriptionLength+1)

	t.Run("valid", func(t *testing.T) {
		f := TaskFields{Title: "ok", Status: StatusCompleted, Priority: PriorityHigh}
		assert.NoError(t, f.Validate())
	})

	t.Run("title limit counts characters", func(t *testing.T) {
		f := TaskFields{Title: strings.Repeat("é", MaxTitleLength)}
		assert.NoError(t, f.Validate())
	})

	t.Run("collects every field", func(t *testing.T) {
		f := TaskFields{
			Title:       strings.Repeat("t", MaxTitleLength+1),
			Description: &long,
			Status:      Status(8),
			Priority:    Priority(-2),
		}
		err := f.Validate()
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field)
		}
		assert.Equal(t, []string{"title", "description", "status", "priority"}, fields)
	})

	t.Run("empty title", func(t *testing.T) {
		err := TaskFields{}.Normalize().Validate()
		assert.EqualError(t, err, "validation failed: title is required")
	})
}

func TestTaskApplyKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	task := Task{ID: 7, Title: "old", CreatedAt: created}

	task.Apply(TaskFields{Title: "new", Status: StatusCompleted, Priority: PriorityLow})

	assert.Equal(t, uint(7), task.ID)
	assert.Equal(t, created, task.CreatedAt)
	assert.Equal(t, "new", task.Title)
	assert.Equal(t, StatusCompleted, task.Status)
	assert.Nil(t, task.UpdatedAt)
}
