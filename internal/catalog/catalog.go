package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/shutter/internal/api"
	"github.com/five82/shutter/internal/logging"
	"github.com/five82/shutter/internal/store"
)

// Recorder receives the outcome of every API operation.
type Recorder interface {
	ObserveRequest(op string, err error, elapsed time.Duration)
}

// Options configure a Catalog. Every field is optional.
type Options struct {
	Logger  *slog.Logger
	Metrics Recorder
}

// Catalog runs the client's use cases. Each operation is exactly one API
// round trip followed, on success, by exactly one store dispatch. A failed
// operation leaves the store untouched and hands the error back unchanged.
type Catalog struct {
	client  api.Service
	store   *store.Store
	logger  *slog.Logger
	metrics Recorder
}

// New binds client to st.
func New(client api.Service, st *store.Store, opts Options) *Catalog {
	return &Catalog{
		client:  client,
		store:   st,
		logger:  logging.OrDiscard(opts.Logger),
		metrics: opts.Metrics,
	}
}

// Store returns the store the catalog writes to.
func (c *Catalog) Store() *store.Store {
	return c.store
}

// call performs one round trip and records its outcome. It never touches the
// store; callers dispatch on success.
func call[R any](ctx context.Context, c *Catalog, op string, fn func(context.Context) (R, error)) (R, error) {
	start := time.Now()
	res, err := fn(ctx)
	elapsed := time.Since(start)

	if c.metrics != nil {
		c.metrics.ObserveRequest(op, err, elapsed)
	}
	if err != nil {
		attrs := []any{"op", op, "duration", elapsed, "error", err}
		if respErr, ok := api.AsResponseError(err); ok {
			attrs = append(attrs, "status", respErr.StatusCode, "request_id", respErr.RequestID)
		}
		c.logger.Warn("api operation failed", attrs...)
		return res, err
	}
	c.logger.Debug("api operation", "op", op, "duration", elapsed)
	return res, nil
}

// exec is call for operations without a result body.
func exec(ctx context.Context, c *Catalog, op string, fn func(context.Context) error) error {
	_, err := call(ctx, c, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
