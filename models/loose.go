package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// LooseInt decodes a JSON number or a numeric string. Anything else leaves
// Valid false instead of failing the whole request.
type LooseInt struct {
	Value int64
	Valid bool
}

func NewLooseInt(v int64) LooseInt {
	return LooseInt{Value: v, Valid: true}
}

func (l *LooseInt) UnmarshalJSON(data []byte) error {
	*l = LooseInt{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		l.Value, l.Valid = v, true
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int64(f)) {
		l.Value, l.Valid = int64(f), true
	}
	return nil
}

func (l LooseInt) MarshalJSON() ([]byte, error) {
	if !l.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(l.Value, 10)), nil
}

// Ptr returns nil for an invalid value.
func (l LooseInt) Ptr() *int64 {
	if !l.Valid {
		return nil
	}
	v := l.Value
	return &v
}
