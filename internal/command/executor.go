package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/KNICEX/btcmarkets-cli/internal/entity"
	"github.com/KNICEX/btcmarkets-cli/internal/service/exchange"
	"github.com/sourcegraph/conc/iter"
)

// Journal records finished invocations.
type Journal interface {
	Create(ctx context.Context, inv entity.Invocation) (int64, error)
}

// Call is one invocation request: a command and its raw parameter values.
type Call struct {
	ID     ID
	Params Params
}

// Executor runs commands through the registry, builder and client. It holds
// only read-only state and may be shared between goroutines.
type Executor struct {
	registry *Registry
	client   exchange.Client
	journal  Journal
	now      func() time.Time
}

type Option func(e *Executor)

func WithJournal(journal Journal) Option {
	return func(e *Executor) {
		e.journal = journal
	}
}

// WithClock replaces time.Now as the source of request timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

func NewExecutor(registry *Registry, client exchange.Client, opts ...Option) *Executor {
	e := &Executor{
		registry: registry,
		client:   client,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) Registry() *Registry {
	return e.registry
}

// Execute runs one command. Every failure, including an unknown ID or bad
// parameters, comes back inside the Result; malformed invocations never reach
// the client.
func (e *Executor) Execute(ctx context.Context, id ID, params Params) exchange.Result {
	desc, err := e.registry.Resolve(id)
	if err != nil {
		slog.Warn("resolve command failed", "command", id, "error", err)
		return exchange.Result{Err: err}
	}

	now := e.now()
	req, err := Build(desc, params, now)
	if err != nil {
		slog.Warn("build request failed", "command", id, "error", err)
		return exchange.Result{Err: err}
	}

	start := time.Now()
	res := e.client.Do(ctx, req)
	e.record(ctx, desc, req, res, now, time.Since(start))
	return res
}

// ExecuteAll runs independent calls concurrently. Each call gets its own
// timestamp and signature; results keep the order of calls.
func (e *Executor) ExecuteAll(ctx context.Context, calls []Call) []exchange.Result {
	return iter.Map(calls, func(c *Call) exchange.Result {
		return e.Execute(ctx, c.ID, c.Params)
	})
}

func (e *Executor) record(ctx context.Context, desc Descriptor, req *exchange.Request, res exchange.Result, at time.Time, elapsed time.Duration) {
	if e.journal == nil {
		return
	}

	inv := entity.Invocation{
		Command:    desc.ID.ToString(),
		Method:     req.Method.ToString(),
		Path:       req.Target(),
		Succeeded:  res.OK(),
		DurationMs: elapsed.Milliseconds(),
		CreatedAt:  at,
	}
	if apiErr, ok := res.APIError(); ok {
		inv.StatusCode = apiErr.StatusCode
		inv.ErrorCode = apiErr.Code
		inv.ErrorMessage = apiErr.Message
	}

	if _, err := e.journal.Create(ctx, inv); err != nil {
		slog.Error("failed to journal invocation", "command", desc.ID, "error", err)
	}
}
