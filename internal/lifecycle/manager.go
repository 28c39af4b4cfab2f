// Package lifecycle coordinates the bridge's long-running jobs and their
// ordered teardown.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
)

type job struct {
	name string
	run  func(context.Context) error
}

// Manager runs registered jobs concurrently until one fails or the context
// is cancelled, then executes shutdown hooks in reverse registration order.
type Manager struct {
	mu       sync.Mutex
	jobs     []job
	shutdown []job
	log      *slog.Logger
}

func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{log: log}
}

// Go registers a long-running job. Jobs start when Run is called.
func (m *Manager) Go(name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.jobs = append(m.jobs, job{name: name, run: fn})
	m.mu.Unlock()
}

// OnShutdown registers a teardown hook. Hooks run after all jobs have
// stopped, last registered first.
func (m *Manager) OnShutdown(name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.shutdown = append(m.shutdown, job{name: name, run: fn})
	m.mu.Unlock()
}

// Run blocks until every job returns. The first job error, or any of the
// given signals, cancels the remaining jobs.
func (m *Manager) Run(parent context.Context, sig ...os.Signal) error {
	ctx := parent
	stopSignal := func() {}
	if len(sig) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(parent, sig...)
		stopSignal = stop
	}
	defer stopSignal()

	runCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()

	m.mu.Lock()
	jobs := make([]job, len(m.jobs))
	copy(jobs, m.jobs)
	hooks := make([]job, len(m.shutdown))
	copy(hooks, m.shutdown)
	m.mu.Unlock()

	errCh := make(chan error, len(jobs))
	var wg sync.WaitGroup
	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			m.log.Debug("job started", "job", j.name)
			err := j.run(runCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				m.log.Error("job failed", "job", j.name, "err", err)
				errCh <- err
				cancelJobs()
				return
			}
			m.log.Debug("job stopped", "job", j.name)
		}(j)
	}

	doneCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		cancelJobs()
	case err := <-errCh:
		runErr = err
	case <-doneCh:
	}
	<-doneCh

	// A job may fail in the same instant the others finish; do not lose its
	// error to the select above.
	if runErr == nil {
		select {
		case err := <-errCh:
			runErr = err
		default:
		}
	}

	var shutdownErr error
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.run(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
			m.log.Error("shutdown hook failed", "hook", h.name, "err", err)
			shutdownErr = errors.Join(shutdownErr, err)
		}
	}
	return errors.Join(runErr, shutdownErr)
}
