package hashcrack

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/digest"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/partition"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/progress"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/worker"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	// FlushInterval is the number of candidates a worker buffers before
	// flushing into the shared counter and checking for cancellation.
	FlushInterval int
	// MaxRetries is how many times a unit whose worker failed is queued again
	// before it is abandoned.
	MaxRetries int
	// ProgressInterval enables periodic progress logging when positive.
	ProgressInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		FlushInterval: worker.DefaultFlushInterval,
		MaxRetries:    1,
	}
}

// Observer receives search lifecycle events, e.g. for metrics.
type Observer interface {
	SearchStarted(spec *SearchSpec, units int)
	AttemptsFlushed(n uint64)
	WorkerFailed()
	SearchFinished(res *SearchResult)
}

type nopObserver struct{}

func (nopObserver) SearchStarted(*SearchSpec, int) {}
func (nopObserver) AttemptsFlushed(uint64)         {}
func (nopObserver) WorkerFailed()                  {}
func (nopObserver) SearchFinished(*SearchResult)   {}

type MatcherFactory func(alg *digest.Algorithm, target []byte) (digest.Matcher, error)

type Option func(*Coordinator)

func WithObserver(o Observer) Option {
	return func(c *Coordinator) {
		c.observer = o
	}
}

func WithMatcherFactory(f MatcherFactory) Option {
	return func(c *Coordinator) {
		c.newMatcher = f
	}
}

// WithStateHook registers a callback invoked on every state transition.
func WithStateHook(hook func(State)) Option {
	return func(c *Coordinator) {
		c.stateHook = hook
	}
}

// Coordinator partitions a search, races workers over the units and reports
// the first match. A Coordinator may run several searches concurrently;
// per-search state lives in a run.
type Coordinator struct {
	base       zerolog.Logger
	l          zerolog.Logger
	cfg        Config
	observer   Observer
	newMatcher MatcherFactory
	stateHook  func(State)
}

func NewCoordinator(cfg Config, opts ...Option) *Coordinator {
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = worker.DefaultFlushInterval
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	base := log.With().Str("domain", "hashcrack").Logger()
	c := &Coordinator{
		cfg:        cfg,
		observer:   nopObserver{},
		newMatcher: digest.NewMatcher,
		base:       base,
		l:          base.With().Str("type", "coordinator").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type task struct {
	unit    *partition.Unit
	attempt int
}

type run struct {
	l        zerolog.Logger
	workerL  zerolog.Logger
	spec     *SearchSpec
	alg      *digest.Algorithm
	counter  progress.Counter
	start    time.Time
	queue    chan task
	pending  atomic.Int64
	closeQ   sync.Once
	cancel   context.CancelFunc
	state    atomic.Int32
	hook     func(State)
	found    atomic.Bool
	mu       sync.Mutex
	result   SearchResult
	warnings []string
}

func (r *run) setState(s State) {
	prev := State(r.state.Swap(int32(s)))
	r.l.Debug().Stringer("from", prev).Stringer("to", s).Msg("state transition")
	if r.hook != nil {
		r.hook(s)
	}
}

func (r *run) warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, msg)
}

// unitDone retires one unit for good and closes the queue after the last.
func (r *run) unitDone() {
	if r.pending.Add(-1) == 0 {
		r.closeQ.Do(func() { close(r.queue) })
	}
}

// succeed records the first match and stops every other worker. Later
// matches are ignored.
func (r *run) succeed(res worker.Result) {
	if !r.found.CompareAndSwap(false, true) {
		return
	}
	r.mu.Lock()
	r.result.Found = true
	r.result.Candidate = res.Candidate
	r.result.Attempts = r.counter.Load()
	r.mu.Unlock()
	r.setState(StateSucceeded)
	r.cancel()
}

// Search runs spec to completion: a match, exhaustion of the keyspace, or
// the end of ctx. Configuration problems are returned as *ConfigError before
// any worker starts. Once any worker matched, the result is always found.
func (c *Coordinator) Search(ctx context.Context, spec *SearchSpec) (*SearchResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	alg, err := digest.Lookup(spec.Algorithm)
	if err != nil {
		return nil, configError(err)
	}
	r := &run{
		spec:  spec,
		alg:   alg,
		start: time.Now(),
		hook:  c.stateHook,
		l: c.l.With().
			Str("algorithm", alg.Name).
			Int("max-length", spec.MaxLength).
			Int("workers", spec.Workers).
			Logger(),
		workerL: c.base.With().
			Str("algorithm", alg.Name).
			Logger(),
	}
	r.counter = progress.Observed(progress.NewCounter(), c.observer.AttemptsFlushed)
	r.setState(StateIdle)

	r.setState(StateDispatching)
	units, err := partition.NewStrategy(spec.Strategy).Partition(spec.Alphabet, spec.MaxLength, spec.Workers)
	if err != nil {
		return nil, configError(err)
	}
	r.queue = make(chan task, len(units))
	r.pending.Store(int64(len(units)))
	for i := range units {
		r.queue <- task{unit: &units[i]}
	}
	poolSize := min(spec.Workers, len(units))
	c.observer.SearchStarted(spec, len(units))
	r.l.Info().Int("units", len(units)).Int("pool", poolSize).Msg("search started")

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	r.cancel = cancel
	r.setState(StateRacing)

	stopProgress := c.logProgress(r)
	g, gCtx := errgroup.WithContext(searchCtx)
	for i := 0; i < poolSize; i++ {
		g.Go(func() error {
			return c.poolLoop(gCtx, r)
		})
	}
	err = g.Wait()
	stopProgress()

	res := c.finish(ctx, r, err)
	c.observer.SearchFinished(res)
	r.l.Info().
		Bool("found", res.Found).
		Uint64("attempts", res.Attempts).
		Dur("elapsed", res.Elapsed).
		Bool("incomplete", res.Incomplete).
		Msg("search finished")
	return res, nil
}

func (c *Coordinator) finish(ctx context.Context, r *run, poolErr error) *SearchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := r.result
	res.Elapsed = time.Since(r.start)
	res.Exact = r.spec.Workers == 1
	if res.Found {
		return &res
	}
	res.Attempts = r.counter.Load()
	res.Warnings = append(res.Warnings, r.warnings...)
	if poolErr != nil {
		res.Warnings = append(res.Warnings, poolErr.Error())
	}
	if ctx.Err() != nil {
		res.Warnings = append(res.Warnings, "search interrupted: "+ctx.Err().Error())
	}
	res.Incomplete = len(res.Warnings) > 0
	// An incomplete search did not consume every unit and stays in Racing.
	if !res.Incomplete {
		r.setState(StateExhausted)
	}
	return &res
}

// poolLoop is one pooled worker pulling units until the queue drains or the
// search is stopped.
func (c *Coordinator) poolLoop(ctx context.Context, r *run) error {
	w, err := c.newWorker(r)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case t, ok := <-r.queue:
			if !ok {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			res, err := c.runUnit(ctx, w, t.unit)
			switch {
			case err != nil:
				c.observer.WorkerFailed()
				c.retry(r, t, err)
				// The failed worker may hold broken hashing state.
				if w, err = c.newWorker(r); err != nil {
					return err
				}
			case res.Found:
				r.succeed(res)
				return nil
			case res.Canceled:
				return nil
			default:
				r.unitDone()
			}
		}
	}
}

func (c *Coordinator) retry(r *run, t task, cause error) {
	if t.attempt < c.cfg.MaxRetries {
		r.l.Warn().Err(cause).Int("unit", t.unit.ID).Int("attempt", t.attempt+1).Msg("worker failed, requeue unit")
		// Capacity equals the unit count and this unit is out of the queue,
		// so the send never blocks.
		r.queue <- task{unit: t.unit, attempt: t.attempt + 1}
		return
	}
	r.l.Error().Err(cause).Int("unit", t.unit.ID).Msg("worker failed, unit abandoned")
	r.warn(fmt.Sprintf("unit %d abandoned after %d attempts: %v", t.unit.ID, t.attempt+1, cause))
	r.unitDone()
}

func (c *Coordinator) newWorker(r *run) (*worker.Worker, error) {
	m, err := c.newMatcher(r.alg, r.spec.Target)
	if err != nil {
		return nil, errors.Wrap(err, "create matcher")
	}
	return worker.New(r.workerL, r.spec.Alphabet, m, r.counter, c.cfg.FlushInterval), nil
}

func (c *Coordinator) runUnit(ctx context.Context, w *worker.Worker, unit *partition.Unit) (res worker.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			c.l.Error().Int("unit", unit.ID).Msgf("catch panic: %v\n%s", rec, string(debug.Stack()))
			err = errors.Errorf("worker panic on unit %d: %v", unit.ID, rec)
		}
	}()
	return w.Run(ctx, unit), nil
}

func (c *Coordinator) logProgress(r *run) (stop func()) {
	if c.cfg.ProgressInterval <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(c.cfg.ProgressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				attempts := r.counter.Load()
				elapsed := time.Since(r.start)
				r.l.Info().
					Uint64("attempts", attempts).
					Dur("elapsed", elapsed).
					Float64("rate", float64(attempts)/elapsed.Seconds()).
					Msg("search progress")
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}
