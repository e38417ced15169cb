package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hyperengineering/solace/internal/api"
	"github.com/hyperengineering/solace/internal/auth"
	"github.com/hyperengineering/solace/internal/store"
	solacesync "github.com/hyperengineering/solace/internal/sync"
)

var testSecret = []byte("e2e-test-secret-0123456789abcdef")

// op is one queued client mutation as the mobile app sends it.
type op map[string]any

// opResult mirrors one element of the batch response.
type opResult struct {
	ID      string          `json:"id"`
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type batchResponse struct {
	Results []opResult `json:"results"`
}

// serverID extracts the id the server assigned in a create result.
func (r opResult) serverID(t *testing.T) string {
	t.Helper()
	var rec struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(r.Result, &rec); err != nil || rec.ID == "" {
		t.Fatalf("result %s has no server id: %s", r.ID, r.Result)
	}
	return rec.ID
}

// setupSyncTestEnv wires a real store, engine and router in-process.
func setupSyncTestEnv(t *testing.T) (http.Handler, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	engine := solacesync.NewEngine(
		solacesync.NewDispatcher(solacesync.NewStoreRegistry(s)),
		solacesync.Config{OperationTimeout: 5 * time.Second, BatchTimeout: 30 * time.Second},
		nil,
	)
	handler := api.NewHandler(engine, s, api.Limits{MaxOperations: 500, MaxBodyBytes: 1 << 20}, "e2e")
	return api.NewRouter(handler, testSecret), s
}

func bearer(t *testing.T, owner string, secret []byte) string {
	t.Helper()
	token, err := auth.GenerateToken(owner, secret, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func makeBatchBody(t *testing.T, ops []op) *bytes.Buffer {
	t.Helper()
	if ops == nil {
		ops = []op{}
	}
	data, err := json.Marshal(map[string]any{"operations": ops})
	if err != nil {
		t.Fatalf("marshal batch: %v", err)
	}
	return bytes.NewBuffer(data)
}

// syncBatch posts ops through the in-process router and decodes a 200 response.
func syncBatch(t *testing.T, router http.Handler, owner string, ops ...op) []opResult {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/batch", makeBatchBody(t, ops))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, owner, testSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("sync batch: status %d: %s", w.Code, w.Body.String())
	}
	var resp batchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode batch response: %v", err)
	}
	if len(resp.Results) != len(ops) {
		t.Fatalf("got %d results for %d operations", len(resp.Results), len(ops))
	}
	return resp.Results
}

func requireSuccess(t *testing.T, r opResult) {
	t.Helper()
	if !r.Success {
		t.Fatalf("operation %s failed: %s", r.ID, r.Error)
	}
}

func requireFailure(t *testing.T, r opResult, msg string) {
	t.Helper()
	if r.Success {
		t.Fatalf("operation %s succeeded, want error %q", r.ID, msg)
	}
	if r.Error != msg {
		t.Errorf("operation %s error = %q, want %q", r.ID, r.Error, msg)
	}
}

var opSeq int

// newOp builds an operation with a unique client id.
func newOp(typ, entity string, data map[string]any) op {
	opSeq++
	o := op{
		"id":        fmt.Sprintf("op-%d", opSeq),
		"type":      typ,
		"entity":    entity,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}
	if data != nil {
		o["data"] = data
	}
	return o
}
