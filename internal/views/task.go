package views

import (
	"context"
	"errors"
	"sync"
	"time"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/studio"
)

// ErrNotReady is returned when a submission is rejected because required input
// is missing or a request is already in flight. The adapter is never called.
var ErrNotReady = errors.New("views: not ready to submit")

// Status is the lifecycle state of a Task.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// TaskSnapshot is an immutable copy of a Task for rendering.
type TaskSnapshot[T any] struct {
	Status     Status    `json:"status"`
	Result     *T        `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at,omitzero"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}

// Pending reports whether the request is in flight.
func (s TaskSnapshot[T]) Pending() bool {
	return s.Status == StatusPending
}

// Task runs at most one adapter call at a time and keeps its outcome. Result
// and error are mutually exclusive and both cleared when a new call starts.
type Task[T any] struct {
	name     string
	fallback string
	base     context.Context
	logger   *infra.Logger
	now      func() time.Time

	mu         sync.Mutex
	release    func(T)
	status     Status
	result     *T
	err        string
	startedAt  time.Time
	finishedAt time.Time
	settled    chan struct{}
}

// NewTask creates an idle task. Calls run on base, never on the caller's context.
func NewTask[T any](base context.Context, name string, logger *infra.Logger) *Task[T] {
	if base == nil {
		base = context.Background()
	}
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Task[T]{name: name, fallback: studio.MessageOperationFailed, base: base, logger: logger, now: time.Now, status: StatusIdle}
}

// withFallback sets the message shown for failures without readable text.
func (t *Task[T]) withFallback(msg string) *Task[T] {
	t.fallback = msg
	return t
}

// Pending reports whether a call is in flight.
func (t *Task[T]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status == StatusPending
}

// OnRelease registers fn to run on every result the task drops, either
// because a new call started or because Discard was called.
func (t *Task[T]) OnRelease(fn func(T)) {
	t.mu.Lock()
	t.release = fn
	t.mu.Unlock()
}

// Discard drops a settled result and returns the task to idle. A pending task
// is left alone and Discard reports false.
func (t *Task[T]) Discard() bool {
	t.mu.Lock()
	if t.status == StatusPending {
		t.mu.Unlock()
		return false
	}
	prev := t.result
	release := t.release
	t.status = StatusIdle
	t.result = nil
	t.err = ""
	t.mu.Unlock()

	if prev != nil && release != nil {
		release(*prev)
	}
	return true
}

// Start launches run asynchronously unless a call is already in flight.
func (t *Task[T]) Start(run func(ctx context.Context) (T, error)) error {
	t.mu.Lock()
	if t.status == StatusPending {
		t.mu.Unlock()
		return ErrNotReady
	}
	prev := t.result
	release := t.release
	t.status = StatusPending
	t.result = nil
	t.err = ""
	t.startedAt = t.now()
	t.finishedAt = time.Time{}
	settled := make(chan struct{})
	t.settled = settled
	t.mu.Unlock()

	if prev != nil && release != nil {
		release(*prev)
	}
	t.logger.Debug().Str("task", t.name).Msg("views: request started")

	go func() {
		var (
			value T
			err   error
		)
		defer func() {
			if r := recover(); r != nil {
				t.logger.Error().Interface("panic", r).Str("task", t.name).Msg("views: request panicked")
				err = errors.New("request panicked")
			}
			t.settle(value, err, settled)
		}()
		value, err = run(t.base)
	}()
	return nil
}

func (t *Task[T]) settle(value T, err error, settled chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.finishedAt = t.now()
	if err != nil {
		t.status = StatusFailed
		t.err = studio.DisplayMessageFor(err, t.fallback)
		t.logger.Warn().Err(err).Str("task", t.name).Msg("views: request failed")
	} else {
		t.status = StatusSucceeded
		t.result = &value
		t.logger.Debug().Str("task", t.name).Dur("elapsed", t.finishedAt.Sub(t.startedAt)).Msg("views: request finished")
	}
	close(settled)
}

// Snapshot copies the current state.
func (t *Task[T]) Snapshot() TaskSnapshot[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Task[T]) snapshotLocked() TaskSnapshot[T] {
	snap := TaskSnapshot[T]{
		Status:     t.status,
		Error:      t.err,
		StartedAt:  t.startedAt,
		FinishedAt: t.finishedAt,
	}
	if t.result != nil {
		v := *t.result
		snap.Result = &v
	}
	return snap
}

// Wait blocks until the in-flight call settles or ctx is done, then returns
// the current state.
func (t *Task[T]) Wait(ctx context.Context) (TaskSnapshot[T], error) {
	t.mu.Lock()
	settled := t.settled
	t.mu.Unlock()
	if settled != nil {
		select {
		case <-settled:
		case <-ctx.Done():
			return t.Snapshot(), ctx.Err()
		}
	}
	return t.Snapshot(), nil
}
