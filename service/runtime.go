package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blogstore/app/canister"
	"blogstore/app/repositories"
)

// ErrStopped is returned for calls submitted after the runtime loop exited.
var ErrStopped = errors.New("runtime stopped")

type call struct {
	update bool
	fn     func(*canister.Canister)
	done   chan struct{}
	panic  interface{}
}

// Runtime executes canister calls one at a time on a single goroutine. After
// every update the full state is saved to the checkpointer.
type Runtime struct {
	canister   *canister.Canister
	checkpoint repositories.Checkpointer
	logger     *slog.Logger
	calls      chan *call
	stopped    chan struct{}
}

// NewRuntime creates a runtime around c. checkpoint may be nil, in which case
// state lives only in memory.
func NewRuntime(c *canister.Canister, checkpoint repositories.Checkpointer, logger *slog.Logger) *Runtime {
	return &Runtime{
		canister:   c,
		checkpoint: checkpoint,
		logger:     logger,
		calls:      make(chan *call),
		stopped:    make(chan struct{}),
	}
}

// Recover restores the last checkpoint, if there is one. It must be called
// before Run.
func (r *Runtime) Recover() (bool, error) {
	if r.checkpoint == nil {
		return false, nil
	}
	snapshot, found, err := r.checkpoint.Load()
	if err != nil {
		return false, fmt.Errorf("load checkpoint: %w", err)
	}
	if !found {
		return false, nil
	}
	r.canister.Restore(snapshot)
	r.logger.Info("restored checkpoint",
		"posts", len(snapshot.Posts),
		"next_post_id", snapshot.NextPostID,
		"next_comment_id", snapshot.NextCommentID,
	)
	return true, nil
}

// Run serves calls until ctx is cancelled.
func (r *Runtime) Run(ctx context.Context) error {
	defer close(r.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-r.calls:
			r.execute(c)
		}
	}
}

func (r *Runtime) execute(c *call) {
	kind := "query"
	if c.update {
		kind = "update"
	}
	start := time.Now()
	defer func() {
		callDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		if p := recover(); p != nil {
			c.panic = p
			callsTotal.WithLabelValues(kind, "panic").Inc()
		} else {
			callsTotal.WithLabelValues(kind, "ok").Inc()
		}
		close(c.done)
	}()

	c.fn(r.canister)
	if c.update {
		r.save()
	}
}

func (r *Runtime) save() {
	if r.checkpoint == nil {
		return
	}
	if err := r.checkpoint.Save(r.canister.Snapshot()); err != nil {
		checkpointFailures.Inc()
		r.logger.Error("checkpoint failed", "error", err)
	}
}

// Query runs a read-only call. fn must not change canister state.
func (r *Runtime) Query(ctx context.Context, fn func(*canister.Canister)) error {
	return r.submit(ctx, &call{fn: fn, done: make(chan struct{})})
}

// Update runs a state-changing call and checkpoints afterwards.
func (r *Runtime) Update(ctx context.Context, fn func(*canister.Canister)) error {
	return r.submit(ctx, &call{update: true, fn: fn, done: make(chan struct{})})
}

// submit queues c and waits for it. ctx only bounds the wait for the loop to
// accept the call; once accepted the call always runs to completion and its
// outcome is reported, so a nil error means the call took effect. A panic
// inside the call is re-raised on the caller's goroutine.
func (r *Runtime) submit(ctx context.Context, c *call) error {
	select {
	case r.calls <- c:
	case <-r.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	<-c.done
	if c.panic != nil {
		panic(c.panic)
	}
	return nil
}
