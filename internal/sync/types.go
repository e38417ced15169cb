package sync

import (
	"encoding/json"
	"fmt"

	"github.com/hyperengineering/solace/internal/entity"
)

// Operation is one client-queued mutation inside a batch.
// It lives only for the duration of a ProcessBatch call and is never persisted.
type Operation struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Entity    string         `json:"entity"`
	Data      entity.Payload `json:"data,omitempty"`
	LocalID   string         `json:"localId,omitempty"`   // client-side id of a create; audit only
	CreatedAt string         `json:"createdAt,omitempty"` // client queue time; audit only

	malformed bool
}

// UnmarshalJSON decodes one batch element leniently. It never fails: an element
// that is not an object is marked malformed and fails on its own at dispatch
// time. Non-string id, type and entity values keep their JSON text so the
// dispatcher can name them in its error.
func (op *Operation) UnmarshalJSON(b []byte) error {
	*op = Operation{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil || fields == nil {
		op.malformed = true
		return nil
	}

	op.ID = decodeText(fields["id"])
	op.Type = decodeText(fields["type"])
	op.Entity = decodeText(fields["entity"])

	// A data value that is not an object is an empty payload.
	var data map[string]any
	if err := json.Unmarshal(fields["data"], &data); err == nil {
		op.Data = data
	}

	op.LocalID, _ = decodeString(fields["localId"])
	op.CreatedAt, _ = decodeString(fields["createdAt"])
	return nil
}

// decodeText returns a string value as is and any other non-null value
// formatted with %v. Absent and null values are empty.
func decodeText(raw json.RawMessage) string {
	if s, ok := decodeString(raw); ok {
		return s
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func decodeString(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// OperationResult is the outcome of one Operation.
// Result is set iff Success; Error is set iff not.
type OperationResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchRequest is the body of POST /api/v1/sync/batch.
type BatchRequest struct {
	Operations []Operation `json:"operations"`
}

// BatchResult holds one result per submitted operation, in submission order.
type BatchResult struct {
	Results []OperationResult `json:"results"`
}
