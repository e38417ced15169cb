package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperengineering/solace/internal/store"
	"github.com/hyperengineering/solace/internal/validation"
)

func decodePayload(t *testing.T, raw string) Payload {
	t.Helper()
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestPayload_PresentAndHas(t *testing.T) {
	p := decodePayload(t, `{"a": "x", "b": null}`)

	assert.True(t, p.Present("a"))
	assert.True(t, p.Has("a"))
	assert.True(t, p.Present("b"))
	assert.False(t, p.Has("b"))
	assert.False(t, p.Present("c"))
	assert.False(t, p.Has("c"))
}

func TestPayload_NilIsEmpty(t *testing.T) {
	var p Payload
	assert.False(t, p.Has("mood"))
	_, ok := p.String("mood")
	assert.False(t, ok)
	_, ok = p.StringList("tags")
	assert.False(t, ok)
}

func TestPayload_String(t *testing.T) {
	p := decodePayload(t, `{"s": "hello", "n": 3}`)

	s, ok := p.String("s")
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	_, ok = p.String("n")
	assert.False(t, ok)
}

func TestPayload_StringList(t *testing.T) {
	p := decodePayload(t, `{"tags": ["a", 1, "b", null], "notList": "a,b", "empty": []}`)

	tags, ok := p.StringList("tags")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, tags)

	_, ok = p.StringList("notList")
	assert.False(t, ok)

	empty, ok := p.StringList("empty")
	assert.True(t, ok)
	assert.Equal(t, []string{}, empty)
}

func TestPayload_Int(t *testing.T) {
	p := decodePayload(t, `{"whole": 7, "frac": 7.5, "str": "7"}`)

	v, ok := p.Int("whole")
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = p.Int("frac")
	assert.False(t, ok)

	_, ok = p.Int("str")
	assert.False(t, ok)
}

func TestPayload_Bool(t *testing.T) {
	p := decodePayload(t, `{"yes": true, "str": "true"}`)

	b, ok := p.Bool("yes")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = p.Bool("str")
	assert.False(t, ok)
}

func TestPayload_Time(t *testing.T) {
	p := decodePayload(t, `{"at": "2026-03-01T10:30:00+02:00", "bad": "yesterday", "num": 5}`)

	at, ok := p.Time("at")
	require.True(t, ok)
	assert.True(t, at.Equal(time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, at.Location())

	_, ok = p.Time("bad")
	assert.False(t, ok)

	_, ok = p.Time("num")
	assert.False(t, ok)
}

func TestPayload_ServerID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"serverId", `{"serverId": "srv-1", "id": "local-1"}`, "srv-1", false},
		{"falls back to id", `{"id": "srv-2"}`, "srv-2", false},
		{"empty serverId falls back", `{"serverId": "", "id": "srv-3"}`, "srv-3", false},
		{"non-string serverId falls back", `{"serverId": 12, "id": "srv-4"}`, "srv-4", false},
		{"missing", `{}`, "", true},
		{"both empty", `{"serverId": "", "id": ""}`, "", true},
		{"wrong types", `{"serverId": 1, "id": true}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodePayload(t, tt.raw).ServerID()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "Missing serverId", err.Error())
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "null", Describe(nil))
	assert.Equal(t, "BOGUS", Describe("BOGUS"))
	assert.Equal(t, "3", Describe(float64(3)))
	assert.Equal(t, "true", Describe(true))
}

func TestMapNotFound(t *testing.T) {
	err := MapNotFound(fmt.Errorf("update: %w", store.ErrNotFound), "Mood entry")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Mood entry not found", err.Error())

	other := errors.New("disk I/O error")
	assert.Same(t, other, MapNotFound(other, "Mood entry"))
}

func TestFromValidation(t *testing.T) {
	assert.NoError(t, FromValidation(nil))

	err := FromValidation(&validation.ValidationError{Field: "note", Message: "must be valid UTF-8"})
	assert.Equal(t, "Invalid note: must be valid UTF-8", err.Error())
}

func TestUnsupportedErrors(t *testing.T) {
	assert.Equal(t, "Unsupported sync entity: notification", UnsupportedEntity("notification").Error())
	assert.Equal(t, "Unsupported mood operation: upsert", UnsupportedOperation(KindMood, "upsert").Error())
}

func TestDeleted(t *testing.T) {
	b, err := json.Marshal(Deleted("srv-9"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"srv-9","deletedAt":true}`, string(b))
}
