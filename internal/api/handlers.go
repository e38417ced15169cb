package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	solacesync "github.com/hyperengineering/solace/internal/sync"
	"github.com/hyperengineering/solace/internal/types"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Limits bounds a single batch request. Zero disables a limit.
type Limits struct {
	MaxOperations int
	MaxBodyBytes  int64
}

// Handler implements the API handlers
type Handler struct {
	engine  *solacesync.Engine
	db      Pinger
	limits  Limits
	version string
}

// NewHandler creates a new Handler
func NewHandler(engine *solacesync.Engine, db Pinger, limits Limits, version string) *Handler {
	return &Handler{
		engine:  engine,
		db:      db,
		limits:  limits,
		version: version,
	}
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		slog.Error("health check failed",
			"component", "api",
			"action", "health",
			"error", err,
		)
		WriteProblem(w, r, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, types.HealthResponse{
		Status:  "healthy",
		Version: h.version,
	})
}

// SyncBatch handles POST /api/v1/sync/batch
//
// The response is 200 whenever the body is a well-formed batch; per-operation
// failures are reported inside the results.
func (h *Handler) SyncBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := MustOwnerFromContext(ctx)

	if h.limits.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.limits.MaxBodyBytes)
	}

	var req solacesync.BatchRequest
	if err := decodeBody(r.Body, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteProblem(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err))
		return
	}

	if h.limits.MaxOperations > 0 && len(req.Operations) > h.limits.MaxOperations {
		WriteProblem(w, r, http.StatusBadRequest,
			fmt.Sprintf("Batch contains %d operations; maximum is %d", len(req.Operations), h.limits.MaxOperations))
		return
	}

	result := h.engine.ProcessBatch(ctx, ownerID, req.Operations)
	writeJSON(w, r, http.StatusOK, result)
}

var errTrailingData = errors.New("unexpected data after top-level value")

// decodeBody decodes exactly one JSON value from body into v.
func decodeBody(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errTrailingData
	}
	return nil
}

// writeJSON encodes v before writing any header so an encoding failure can
// still become a 500 problem.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode response",
			"component", "api",
			"path", r.URL.Path,
			"error", err,
		)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
