package rest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestFieldExtraction(t *testing.T) {
	m := decode(t, `{
		"id": 42,
		"name": "alpha",
		"open": true,
		"ratio": 0.5,
		"status": {"id": 1, "name": "New"},
		"journals": [{"id": 1}, "not-an-object", {"id": 2}],
		"labels": ["bug", 7, "backend"],
		"created_on": "2024-03-01T10:30:00Z",
		"due_date": "2024-04-15"
	}`)

	id, ok := Int(m, "id")
	assert.True(t, ok)
	assert.Equal(t, 42, id)

	_, ok = Int(m, "ratio")
	assert.False(t, ok, "fractional values are not integers")

	ratio, ok := Float(m, "ratio")
	assert.True(t, ok)
	assert.Equal(t, 0.5, ratio)

	name, ok := Str(m, "name")
	assert.True(t, ok)
	assert.Equal(t, "alpha", name)

	assert.Equal(t, "alpha", StrOr(m, "name", "fallback"))
	assert.Equal(t, "fallback", StrOr(m, "missing", "fallback"))

	open, ok := Bool(m, "open")
	assert.True(t, ok)
	assert.True(t, open)

	status, ok := NestedStr(m, "status", "name")
	assert.True(t, ok)
	assert.Equal(t, "New", status)

	_, ok = NestedStr(m, "missing", "name")
	assert.False(t, ok)

	journals, ok := List(m, "journals")
	assert.True(t, ok)
	assert.Len(t, journals, 2, "non-object elements are skipped")

	labels, ok := StrList(m, "labels")
	assert.True(t, ok)
	assert.Equal(t, []string{"bug", "backend"}, labels)

	created, ok := Time(m, "created_on")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), created)

	due, ok := Date(m, "due_date")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), due)
}

func TestFieldExtractionWrongShapes(t *testing.T) {
	m := decode(t, `{"id": "not-a-number", "name": 7, "status": "flat", "when": "yesterday"}`)

	_, ok := Int(m, "id")
	assert.False(t, ok)
	_, ok = Str(m, "name")
	assert.False(t, ok)
	_, ok = Obj(m, "status")
	assert.False(t, ok)
	_, ok = Time(m, "when")
	assert.False(t, ok)

	// A nil map behaves like an empty one.
	_, ok = Str(nil, "name")
	assert.False(t, ok)
	_, ok = List(nil, "journals")
	assert.False(t, ok)
}

func TestPointerConverters(t *testing.T) {
	m := decode(t, `{"name": "alpha", "updated_on": "2024-03-01T10:30:00Z"}`)

	assert.Nil(t, StrPtr(Str(m, "missing")))
	require.NotNil(t, StrPtr(Str(m, "name")))
	assert.Equal(t, "alpha", *StrPtr(Str(m, "name")))

	assert.Nil(t, TimePtr(Time(m, "missing")))
	require.NotNil(t, TimePtr(Time(m, "updated_on")))
}
