package converge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/macropower/gradlepin/pkg/paths"
	"github.com/macropower/gradlepin/pkg/policy"
	"github.com/macropower/gradlepin/pkg/syncs"
	"github.com/macropower/gradlepin/pkg/tracing"
)

// DefaultTimeout bounds a whole [Converger.Run].
const DefaultTimeout = time.Minute

var (
	ErrWorkerFailed     = errors.New("converge worker failed")
	ErrNothingProcessed = errors.New("no file could be processed")
	ErrNoProjects       = errors.New("no projects given")
)

// Converger converges Android projects toward a [policy.Policy].
type Converger struct {
	Policy  *policy.Policy
	Targets []Target
	subs    []func(any)
	locks   syncs.PathLock
	Timeout time.Duration
	Workers int64
	mu      sync.RWMutex
	DryRun  bool
}

// Option configures a [Converger].
type Option func(*Converger)

// WithTargets restricts the targets processed in each project.
func WithTargets(targets ...Target) Option {
	return func(c *Converger) {
		c.Targets = targets
	}
}

// WithDryRun computes changes and diffs without writing files.
func WithDryRun(dryRun bool) Option {
	return func(c *Converger) {
		c.DryRun = dryRun
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Converger) {
		c.Timeout = timeout
	}
}

// WithWorkers sets the number of files processed concurrently.
func WithWorkers(n int) Option {
	return func(c *Converger) {
		if n > 0 {
			c.Workers = int64(n)
		}
	}
}

// New returns a [Converger] for p.
func New(p *policy.Policy, opts ...Option) *Converger {
	c := &Converger{
		Policy:  p,
		Targets: AllTargets(),
		Timeout: DefaultTimeout,
		Workers: int64(runtime.GOMAXPROCS(0)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Subscribe registers f to receive events during [Converger.Run].
func (c *Converger) Subscribe(f func(any)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subs = append(c.subs, f)
}

func (c *Converger) broadcastEvent(evt any) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, sub := range c.subs {
		sub(evt)
	}
}

type job struct {
	project string
	target  Target
}

// Run converges every target of the projects containing dirs. Per-file
// failures are recorded in the report and do not stop other files. An error
// is returned only when no file at all could be processed, or when the run
// itself fails (e.g. it times out).
func (c *Converger) Run(ctx context.Context, dirs ...string) (*Report, error) {
	if len(dirs) == 0 {
		c.broadcastEvent(EventDone{Err: ErrNoProjects})

		return nil, ErrNoProjects
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	report := &Report{RunID: uuid.NewString(), DryRun: c.DryRun}

	logger := slog.With(
		slog.String("cmd", "converge"),
		slog.String("run_id", report.RunID),
	)

	projects := []string{}

	for _, dir := range dirs {
		root, err := paths.FindAndroidRoot(dir)
		if err != nil {
			logger.Warn("skipping target", slog.String("path", dir), slog.Any("err", err))

			report.Files = append(report.Files, FileResult{Project: dir, Status: StatusFailed, Err: err})

			continue
		}

		if !slices.Contains(projects, root) {
			logger.Debug("found android project", slog.String("path", dir), slog.String("root", root))

			projects = append(projects, root)
		}
	}

	jobs := make([]job, 0, len(projects)*len(c.Targets))
	for _, p := range projects {
		for _, t := range c.Targets {
			jobs = append(jobs, job{project: p, target: t})
		}
	}

	results := make([]FileResult, len(jobs))
	sem := semaphore.NewWeighted(c.Workers)
	tracer := tracing.NewLoggingTracer(logger)

	c.broadcastEvent(EventSetTotal(len(jobs)))

	for i, j := range jobs {
		key := jobKey(j.project, j.target)

		err := sem.Acquire(ctx, 1)
		if err != nil {
			return nil, c.abort(sem, err)
		}

		c.broadcastEvent(EventConverging(key))

		go func() {
			defer sem.Release(1)

			fileLogger := logger.With(
				slog.String("project", j.project),
				slog.String("target", string(j.target)),
			)

			span := tracer.StartSpan(ctx, "converge."+string(j.target))
			span.SetBaggageItem("project", j.project)

			res := c.converge(ctx, fileLogger, j.project, j.target)
			results[i] = res

			span.SetBaggageItem("status", string(res.Status))
			span.Finish()

			c.broadcastEvent(EventConverged{Key: res.Key(), Status: res.Status, Err: res.Err})
		}()
	}

	err := sem.Acquire(ctx, c.Workers)
	if err != nil {
		return nil, c.abort(sem, err)
	}

	report.Files = append(report.Files, results...)

	var runErr error
	if report.Processed() == 0 {
		runErr = ErrNothingProcessed
		if merr := report.Err(); merr != nil {
			runErr = fmt.Errorf("%w: %w", ErrNothingProcessed, merr)
		}
	}

	c.broadcastEvent(EventDone{Err: runErr})

	logger.Info("converge complete",
		slog.Int("patched", report.Count(StatusPatched)),
		slog.Int("created", report.Count(StatusCreated)),
		slog.Int("unchanged", report.Count(StatusUnchanged)),
		slog.Int("failed", report.Count(StatusFailed)),
	)

	return report, runErr
}

// abort waits for in-flight workers, which stop before writing once the run's
// context is done, and reports the run as failed.
func (c *Converger) abort(sem *semaphore.Weighted, err error) error {
	//nolint:errcheck // Cannot fail without a deadline.
	_ = sem.Acquire(context.Background(), c.Workers)

	err = fmt.Errorf("%w: %w", ErrWorkerFailed, err)
	c.broadcastEvent(EventDone{Err: err})

	return err
}
