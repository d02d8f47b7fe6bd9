package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"task-manager/internal/model"
)

// EnumValue holds the raw JSON of a status or priority field as the client sent
// it. Clients may send the member name ("High") or its ordinal (2).
type EnumValue struct {
	raw json.RawMessage
}

// EnumName builds an EnumValue carrying a member name.
func EnumName(name string) EnumValue {
	raw, _ := json.Marshal(name)
	return EnumValue{raw: raw}
}

// EnumCode builds an EnumValue carrying an ordinal.
func EnumCode(code int) EnumValue {
	return EnumValue{raw: json.RawMessage(fmt.Sprint(code))}
}

func (v *EnumValue) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}

func (v EnumValue) MarshalJSON() ([]byte, error) {
	if v.IsZero() {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// IsZero reports whether the field was absent or null.
func (v EnumValue) IsZero() bool {
	raw := bytes.TrimSpace(v.raw)
	return len(raw) == 0 || string(raw) == "null"
}

// enumResult is the outcome of normalizing one enum field.
type enumResult struct {
	ordinal   int
	defaulted bool // an unrecognized name was replaced by the default
	unknown   string
}

// NormalizeStatus maps a client value onto a Status. Absent values and
// unrecognized names yield StatusPending; unrecognized names are accepted on
// purpose and are not an error. Out-of-range ordinals and non-scalar values are.
func NormalizeStatus(v EnumValue) (model.Status, error) {
	res, err := normalize(v, model.StatusNames(), int(model.StatusPending))
	return model.Status(res.ordinal), err
}

// NormalizePriority is NormalizeStatus for priorities, defaulting to PriorityMedium.
func NormalizePriority(v EnumValue) (model.Priority, error) {
	res, err := normalize(v, model.PriorityNames(), int(model.PriorityMedium))
	return model.Priority(res.ordinal), err
}

func normalize(v EnumValue, names []string, def int) (enumResult, error) {
	if v.IsZero() {
		return enumResult{ordinal: def}, nil
	}
	raw := bytes.TrimSpace(v.raw)

	switch {
	case raw[0] == '"':
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return enumResult{ordinal: def}, invalidEnum(names)
		}
		for i, n := range names {
			if n == name {
				return enumResult{ordinal: i}, nil
			}
		}
		return enumResult{ordinal: def, defaulted: true, unknown: name}, nil

	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var num json.Number
		if err := dec.Decode(&num); err != nil {
			return enumResult{ordinal: def}, invalidEnum(names)
		}
		n, err := num.Int64()
		if err != nil || n < 0 || n >= int64(len(names)) {
			return enumResult{ordinal: def}, invalidEnum(names)
		}
		return enumResult{ordinal: int(n)}, nil
	}

	return enumResult{ordinal: def}, invalidEnum(names)
}

func invalidEnum(names []string) error {
	return fmt.Errorf("must be one of %s or an ordinal 0-%d", strings.Join(names, ", "), len(names)-1)
}
