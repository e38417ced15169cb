package sync

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const unknownError = "Unknown error"

var (
	errBatchDeadline    = errors.New("Batch deadline exceeded")
	errBatchCancelled   = errors.New("Batch cancelled")
	errOperationTimeout = errors.New("Operation timed out")
)

var tracer = otel.Tracer("github.com/hyperengineering/solace/internal/sync")

// Config bounds how long a batch may run. A zero duration disables that limit.
type Config struct {
	OperationTimeout time.Duration
	BatchTimeout     time.Duration
}

// FailureSink receives every failed operation. Implementations must not block
// for long and must not fail.
type FailureSink interface {
	LogFailure(ctx context.Context, operationID string, err error)
}

// SlogFailureSink writes failures as structured log lines.
type SlogFailureSink struct {
	Logger *slog.Logger
}

func (s SlogFailureSink) LogFailure(ctx context.Context, operationID string, err error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(ctx, "sync operation failed",
		"component", "sync",
		"action", "operation_failed",
		"batch_id", BatchIDFromContext(ctx),
		"operation_id", operationID,
		"error", err,
	)
}

// Engine processes batches of operations for one owner at a time.
type Engine struct {
	dispatcher *Dispatcher
	sink       FailureSink
	cfg        Config
}

// NewEngine creates an Engine. A nil sink logs failures through slog.
func NewEngine(dispatcher *Dispatcher, cfg Config, sink FailureSink) *Engine {
	if sink == nil {
		sink = SlogFailureSink{}
	}
	return &Engine{dispatcher: dispatcher, sink: sink, cfg: cfg}
}

// ProcessBatch applies ops in order for ownerID and returns one result per
// operation, in the same order. It never fails as a whole: every error is
// recorded on the result of the operation that caused it, and operations that
// succeeded stay committed whatever happens after them.
func (e *Engine) ProcessBatch(ctx context.Context, ownerID string, ops []Operation) BatchResult {
	start := time.Now()
	batchID := uuid.NewString()
	ctx = withBatchID(ctx, batchID)

	ctx, span := tracer.Start(ctx, "sync.batch", trace.WithAttributes(
		attribute.String("sync.batch_id", batchID),
		attribute.Int("sync.operations", len(ops)),
	))
	defer span.End()

	if e.cfg.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.BatchTimeout)
		defer cancel()
	}

	results := make([]OperationResult, 0, len(ops))
	failed := 0
	for _, op := range ops {
		res := e.process(ctx, ownerID, op)
		if !res.Success {
			failed++
		}
		results = append(results, res)
	}

	span.SetAttributes(attribute.Int("sync.failed", failed))
	slog.InfoContext(ctx, "sync batch processed",
		"component", "sync",
		"action", "process_batch",
		"owner_id", ownerID,
		"batch_id", batchID,
		"operations", len(ops),
		"succeeded", len(ops)-failed,
		"failed", failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return BatchResult{Results: results}
}

func (e *Engine) process(ctx context.Context, ownerID string, op Operation) OperationResult {
	ctx, span := tracer.Start(ctx, "sync.operation", trace.WithAttributes(
		attribute.String("sync.operation_id", op.ID),
		attribute.String("sync.entity", op.Entity),
		attribute.String("sync.type", op.Type),
	))
	defer span.End()

	var value any
	err := batchError(ctx)
	if err == nil {
		value, err = e.apply(ctx, ownerID, op)
	}

	if err != nil {
		msg := errorMessage(err)
		span.SetAttributes(attribute.Bool("sync.success", false))
		span.SetStatus(codes.Error, msg)
		e.sink.LogFailure(ctx, op.ID, err)
		return OperationResult{ID: op.ID, Success: false, Error: msg}
	}

	span.SetAttributes(attribute.Bool("sync.success", true))
	return OperationResult{ID: op.ID, Success: true, Result: value}
}

// apply runs one operation under its own deadline and converts a handler panic
// into an error.
func (e *Engine) apply(ctx context.Context, ownerID string, op Operation) (value any, err error) {
	opCtx := ctx
	if e.cfg.OperationTimeout > 0 {
		var cancel context.CancelFunc
		opCtx, cancel = context.WithTimeout(ctx, e.cfg.OperationTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "sync handler panicked",
				"component", "sync",
				"action", "operation_panic",
				"batch_id", BatchIDFromContext(ctx),
				"operation_id", op.ID,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			value, err = nil, recoveredError(r)
		}
	}()

	value, err = e.dispatcher.Dispatch(opCtx, ownerID, op)
	if err != nil {
		if berr := batchError(ctx); berr != nil {
			return nil, berr
		}
		if errors.Is(opCtx.Err(), context.DeadlineExceeded) {
			return nil, errOperationTimeout
		}
		return nil, err
	}
	return value, nil
}

func batchError(ctx context.Context) error {
	switch {
	case ctx.Err() == nil:
		return nil
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return errBatchDeadline
	default:
		return errBatchCancelled
	}
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return unknownError
}

// recoveredError keeps the message of a panic value that carries one.
func recoveredError(r any) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		if v != "" {
			return errors.New(v)
		}
	}
	return errors.New(unknownError)
}

type batchIDKey struct{}

func withBatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, batchIDKey{}, id)
}

// BatchIDFromContext returns the id ProcessBatch assigned to the running batch,
// or "" outside a batch.
func BatchIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(batchIDKey{}).(string)
	return id
}
