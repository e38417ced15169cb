package entity

import (
	"fmt"
	"time"
)

// Payload is the untyped data object of a sync operation as decoded from JSON.
// Numbers arrive as float64, lists as []any and objects as map[string]any.
// Normalizers read it through the accessors below and never pass it further.
type Payload map[string]any

// Present reports whether key exists, even with a null value.
func (p Payload) Present(key string) bool {
	_, ok := p[key]
	return ok
}

// Has reports whether key exists with a non-null value.
func (p Payload) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// Raw returns the value stored under key.
func (p Payload) Raw(key string) any {
	return p[key]
}

// String returns the value under key when it is a string.
func (p Payload) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// StringList returns the string elements of the list under key.
// ok is false when the key is absent or not a list; non-string elements are dropped.
func (p Payload) StringList(key string) ([]string, bool) {
	items, ok := p[key].([]any)
	if !ok {
		if strs, ok := p[key].([]string); ok {
			return append([]string{}, strs...), true
		}
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// Bool returns the value under key when it is a boolean.
func (p Payload) Bool(key string) (bool, bool) {
	b, ok := p[key].(bool)
	return b, ok
}

// Int returns the value under key when it is an integral number.
func (p Payload) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// Time parses the value under key as an RFC 3339 timestamp.
func (p Payload) Time(key string) (time.Time, bool) {
	s, ok := p[key].(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ServerID resolves the authoritative record id of an update or delete:
// serverId first, then id. Both must be non-empty strings.
func (p Payload) ServerID() (string, error) {
	for _, key := range []string{"serverId", "id"} {
		if s, ok := p[key].(string); ok && s != "" {
			return s, nil
		}
	}
	return "", Invalid("Missing serverId")
}

// Describe formats a raw payload value for an error message.
func Describe(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
