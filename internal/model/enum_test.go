package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusJSON(t *testing.T) {
	data, err := json.Marshal(StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, `"InProgress"`, string(data))

	var s Status
	require.NoError(t, json.Unmarshal([]byte(`"Cancelled"`), &s))
	assert.Equal(t, StatusCancelled, s)

	require.NoError(t, json.Unmarshal([]byte(`2`), &s))
	assert.Equal(t, StatusCompleted, s)

	assert.Error(t, json.Unmarshal([]byte(`"completed"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`7`), &s))
	assert.Error(t, json.Unmarshal([]byte(`true`), &s))

	_, err = json.Marshal(Status(9))
	assert.Error(t, err)
}

func TestPriorityJSON(t *testing.T) {
	data, err := json.Marshal(PriorityCritical)
	require.NoError(t, err)
	assert.Equal(t, `"Critical"`, string(data))

	var p Priority
	require.NoError(t, json.Unmarshal([]byte(`"Low"`), &p))
	assert.Equal(t, PriorityLow, p)
	require.NoError(t, json.Unmarshal([]byte(`2`), &p))
	assert.Equal(t, PriorityHigh, p)
	assert.Error(t, json.Unmarshal([]byte(`-1`), &p))
}

func TestParseIsCaseSensitive(t *testing.T) {
	s, ok := ParseStatus("Completed")
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, s)

	_, ok = ParseStatus("COMPLETED")
	assert.False(t, ok)

	p, ok := ParsePriority("High")
	assert.True(t, ok)
	assert.Equal(t, PriorityHigh, p)

	_, ok = ParsePriority("high")
	assert.False(t, ok)
}

func TestStatusScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want Status
	}{
		{"name", "Completed", StatusCompleted},
		{"bytes", []byte("InProgress"), StatusInProgress},
		{"legacy integer", int64(3), StatusCancelled},
		{"legacy numeric text", "1", StatusInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Status
			require.NoError(t, s.Scan(tt.src))
			assert.Equal(t, tt.want, s)
		})
	}

	var s Status
	assert.Error(t, s.Scan("Blocked"))
	assert.Error(t, s.Scan(int64(4)))
	assert.Error(t, s.Scan(1.5))
}

func TestPriorityValue(t *testing.T) {
	v, err := PriorityMedium.Value()
	require.NoError(t, err)
	assert.Equal(t, "Medium", v)

	_, err = Priority(12).Value()
	assert.Error(t, err)

	var p Priority
	require.NoError(t, p.Scan(int64(0)))
	assert.Equal(t, PriorityLow, p)
}

func TestStringOutOfRange(t *testing.T) {
	assert.Equal(t, "Status(-1)", Status(-1).String())
	assert.Equal(t, "Priority(4)", Priority(4).String())
}
