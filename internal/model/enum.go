package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// Status is the lifecycle state of a task. The ordinal values are part of the
// wire contract: clients may send them instead of names.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
	StatusCancelled
)

var statusNames = []string{"Pending", "InProgress", "Completed", "Cancelled"}

// Priority is the relative importance of a task.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

var priorityNames = []string{"Low", "Medium", "High", "Critical"}

// StatusNames lists the member names in ordinal order.
func StatusNames() []string {
	return append([]string(nil), statusNames...)
}

// PriorityNames lists the member names in ordinal order.
func PriorityNames() []string {
	return append([]string(nil), priorityNames...)
}

func (s Status) Valid() bool {
	return s >= StatusPending && s <= StatusCancelled
}

func (s Status) String() string {
	if !s.Valid() {
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
	return statusNames[s]
}

// ParseStatus matches name case-sensitively against the member names.
func ParseStatus(name string) (Status, bool) {
	i, ok := lookup(statusNames, name)
	return Status(i), ok
}

func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

func (p Priority) String() string {
	if !p.Valid() {
		return "Priority(" + strconv.Itoa(int(p)) + ")"
	}
	return priorityNames[p]
}

// ParsePriority matches name case-sensitively against the member names.
func ParsePriority(name string) (Priority, bool) {
	i, ok := lookup(priorityNames, name)
	return Priority(i), ok
}

func lookup(names []string, name string) (int, bool) {
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a member name or an ordinal. Request bodies go through
// the lenient normalization in the service layer instead.
func (s *Status) UnmarshalJSON(data []byte) error {
	i, err := unmarshalEnum(data, statusNames)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	*s = Status(i)
	return nil
}

func (p Priority) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return json.Marshal(p.String())
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	i, err := unmarshalEnum(data, priorityNames)
	if err != nil {
		return fmt.Errorf("priority: %w", err)
	}
	*p = Priority(i)
	return nil
}

func unmarshalEnum(data []byte, names []string) (int, error) {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		i, ok := lookup(names, name)
		if !ok {
			return 0, fmt.Errorf("unknown value %q", name)
		}
		return i, nil
	}
	var ordinal int
	if err := json.Unmarshal(data, &ordinal); err != nil {
		return 0, fmt.Errorf("expected string or integer, got %s", data)
	}
	if ordinal < 0 || ordinal >= len(names) {
		return 0, fmt.Errorf("ordinal %d out of range", ordinal)
	}
	return ordinal, nil
}

// Value stores the member name.
func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return s.String(), nil
}

// Scan reads a member name, or an integer ordinal written by the older
// integer-encoded schema.
func (s *Status) Scan(src any) error {
	i, err := scanEnum(src, statusNames)
	if err != nil {
		return fmt.Errorf("scan status: %w", err)
	}
	*s = Status(i)
	return nil
}

func (p Priority) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return p.String(), nil
}

func (p *Priority) Scan(src any) error {
	i, err := scanEnum(src, priorityNames)
	if err != nil {
		return fmt.Errorf("scan priority: %w", err)
	}
	*p = Priority(i)
	return nil
}

func scanEnum(src any, names []string) (int, error) {
	var raw string
	switch v := src.(type) {
	case int64:
		return checkOrdinal(int(v), names)
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return 0, fmt.Errorf("unsupported type %T", src)
	}
	if i, ok := lookup(names, raw); ok {
		return i, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("unknown value %q", raw)
	}
	return checkOrdinal(n, names)
}

func checkOrdinal(n int, names []string) (int, error) {
	if n < 0 || n >= len(names) {
		return 0, fmt.Errorf("ordinal %d out of range", n)
	}
	return n, nil
}
