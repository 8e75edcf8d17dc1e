package rest

import "time"

// Tolerant field extraction from loosely-typed JSON objects.
//
// Source APIs nest sub-objects freely and omit fields without notice. Each
// helper returns an explicit present/absent result; a value of the wrong
// shape is treated exactly like an absent one, never a panic or a guessed
// default. Mappers decide per field whether absence is an error.

// Obj extracts a nested JSON object.
func Obj(m map[string]any, key string) (map[string]any, bool) {
	if m == nil {
		return nil, false
	}
	sub, ok := m[key].(map[string]any)
	return sub, ok
}

// List extracts a nested JSON array of objects. Elements of the wrong
// shape are skipped.
func List(m map[string]any, key string) ([]map[string]any, bool) {
	if m == nil {
		return nil, false
	}
	raw, ok := m[key].([]any)
	if !ok {
		return nil, false
	}
	records := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records, true
}

// StrList extracts a nested JSON array of strings (GitLab label lists).
// Elements of the wrong shape are skipped.
func StrList(m map[string]any, key string) ([]string, bool) {
	if m == nil {
		return nil, false
	}
	raw, ok := m[key].([]any)
	if !ok {
		return nil, false
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values, true
}

// Str extracts a string field.
func Str(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m[key].(string)
	return s, ok
}

// StrOr extracts a string field, falling back to def when absent.
func StrOr(m map[string]any, key, def string) string {
	if s, ok := Str(m, key); ok {
		return s
	}
	return def
}

// Int extracts an integer field. JSON numbers decode as float64; integral
// values are accepted, anything else is absent.
func Int(m map[string]any, key string) (int, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

// Float extracts a numeric field.
func Float(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Bool extracts a boolean field.
func Bool(m map[string]any, key string) (bool, bool) {
	if m == nil {
		return false, false
	}
	b, ok := m[key].(bool)
	return b, ok
}

// Time extracts an RFC 3339 timestamp field (Redmine and GitLab both emit
// "2024-01-01T00:00:00Z" style values).
func Time(m map[string]any, key string) (time.Time, bool) {
	s, ok := Str(m, key)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Date extracts a bare "2006-01-02" date field.
func Date(m map[string]any, key string) (time.Time, bool) {
	s, ok := Str(m, key)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NestedStr extracts a string field from a nested sub-object, e.g. the
// "name" inside an issue's "status". Absent or wrong-shape sub-objects
// yield absent, per the extraction rules above.
func NestedStr(m map[string]any, objKey, fieldKey string) (string, bool) {
	sub, ok := Obj(m, objKey)
	if !ok {
		return "", false
	}
	return Str(sub, fieldKey)
}

// TimePtr converts a present Time result into an optional pointer.
func TimePtr(t time.Time, ok bool) *time.Time {
	if !ok {
		return nil
	}
	return &t
}

// StrPtr converts a present Str result into an optional pointer.
func StrPtr(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}

// IntPtr converts a present Int result into an optional pointer.
func IntPtr(i int, ok bool) *int {
	if !ok {
		return nil
	}
	return &i
}

// FloatPtr converts a present Float result into an optional pointer.
func FloatPtr(f float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &f
}
