// Package schedule runs a task on a fixed interval in a background
// goroutine. A Job never runs its task concurrently with itself: a tick
// that fires while a run is still in progress is skipped, and so is a
// manual Trigger.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/clock"
)

// ErrAlreadyRunning is returned by Trigger when a run is in progress.
var ErrAlreadyRunning = errors.New("schedule: task already running")

// Task is the unit of work a Job runs.  Returned errors are logged by the
// Job and never stop the loop.
type Task func(ctx context.Context) error

type Option func(*Job)

// WithAlignment makes ticks land on multiples of the interval (for an
// hourly job, the top of every hour) instead of interval-after-start.
func WithAlignment() Option {
	return func(j *Job) { j.align = true }
}

// WithRunOnStart runs the task once as soon as Start is called.
func WithRunOnStart() Option {
	return func(j *Job) { j.runOnStart = true }
}

func WithLogger(l *slog.Logger) Option {
	return func(j *Job) {
		if l != nil {
			j.logger = l
		}
	}
}

// WithClock sets the clock used to compute aligned tick boundaries.
func WithClock(c clock.Clock) Option {
	return func(j *Job) {
		if c != nil {
			j.clock = c
		}
	}
}

type Job struct {
	name       string
	interval   time.Duration
	task       Task
	align      bool
	runOnStart bool
	logger     *slog.Logger
	clock      clock.Clock

	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a Job but does not start it.  A non-positive interval falls
// back to one hour.
func New(name string, interval time.Duration, task Task, opts ...Option) *Job {
	if interval <= 0 {
		interval = time.Hour
	}
	j := &Job{
		name:     name,
		interval: interval,
		task:     task,
		logger:   slog.New(slog.DiscardHandler),
		clock:    clock.System,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.logger = j.logger.With("job", name)
	return j
}

// Start launches the background loop.  Calling Start on a running Job is a
// no-op.  The loop exits when ctx is cancelled or Stop is called, after
// which Start may launch it again.
func (j *Job) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.done != nil {
		select {
		case <-j.done:
			// Loop exited on its own context; release it.
			j.cancel()
		default:
			return
		}
	}

	ctx, j.cancel = context.WithCancel(ctx)
	j.done = make(chan struct{})
	go j.loop(ctx, j.done)

	j.logger.Info("scheduled job started",
		"interval", j.interval.String(), "aligned", j.align, "run_on_start", j.runOnStart)
}

// Stop signals the loop to exit and waits for it, including any run in
// progress.  Safe to call more than once, and on a Job never started.
func (j *Job) Stop() {
	j.mu.Lock()
	cancel, done := j.cancel, j.done
	j.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	j.mu.Lock()
	if j.done == done {
		j.cancel, j.done = nil, nil
	}
	j.mu.Unlock()
}

// Trigger runs the task immediately on the caller's goroutine, unless a run
// is already in progress, in which case it returns ErrAlreadyRunning.
func (j *Job) Trigger(ctx context.Context) error {
	return j.run(ctx, j.task)
}

// TriggerFunc is Trigger with fn run in place of the job's task.  It
// shares the job's guard, so fn never overlaps a scheduled run.  Callers
// use it when they need results the Task signature cannot return.
func (j *Job) TriggerFunc(ctx context.Context, fn Task) error {
	return j.run(ctx, fn)
}

// Running reports whether a run is in progress.
func (j *Job) Running() bool { return j.running.Load() }

func (j *Job) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	if j.runOnStart {
		j.tick(ctx)
	}

	timer := time.NewTimer(j.nextDelay())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			j.tick(ctx)
			timer.Reset(j.nextDelay())
		}
	}
}

func (j *Job) tick(ctx context.Context) {
	err := j.run(ctx, j.task)
	switch {
	case err == nil:
	case errors.Is(err, ErrAlreadyRunning):
		j.logger.Warn("skipping tick: previous run still in progress")
	case ctx.Err() != nil:
		// Shutting down.
	default:
		j.logger.Error("scheduled run failed", "error", err)
	}
}

func (j *Job) run(ctx context.Context, task Task) (err error) {
	if !j.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer j.running.Store(false)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("schedule: %s panicked: %v", j.name, r)
			j.logger.Error("scheduled run panicked", "panic", r)
		}
	}()

	return task(ctx)
}

func (j *Job) nextDelay() time.Duration {
	if !j.align {
		return j.interval
	}
	return untilNextBoundary(j.clock.Now(), j.interval)
}

// untilNextBoundary returns how long from now until the next multiple of
// interval (measured from the zero time, so hourly boundaries are on the
// hour in UTC).
func untilNextBoundary(now time.Time, interval time.Duration) time.Duration {
	next := now.Truncate(interval).Add(interval)
	return next.Sub(now)
}
