// Package worker searches a single work unit for the target digest.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/alphabet"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/digest"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/partition"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/progress"
)

const DefaultFlushInterval = 1000

type Result struct {
	UnitID    int
	Found     bool
	Candidate string
	// LocalAttempts is the final batch flushed when the match was hit. It is
	// already included in the shared counter. Zero when nothing matched.
	LocalAttempts uint64
	Elapsed       time.Duration
	// Canceled is set when the worker stopped at a checkpoint before
	// exhausting its unit.
	Canceled bool
}

// Worker runs the enumerator and matcher over units one at a time. It is not
// safe for concurrent use; a pool goroutine owns one Worker.
type Worker struct {
	l             zerolog.Logger
	alphabet      *alphabet.Alphabet
	matcher       digest.Matcher
	counter       progress.Counter
	flushInterval uint64
}

func New(
	l zerolog.Logger,
	a *alphabet.Alphabet,
	matcher digest.Matcher,
	counter progress.Counter,
	flushInterval int,
) *Worker {
	if flushInterval <= 0 {
		flushInterval = DefaultFlushInterval
	}
	return &Worker{
		l:             l.With().Str("type", "worker").Logger(),
		alphabet:      a,
		matcher:       matcher,
		counter:       counter,
		flushInterval: uint64(flushInterval),
	}
}

// Run searches unit until a match, exhaustion or cancellation of ctx.
// Attempts are flushed into the shared counter every flushInterval
// candidates, and ctx is only consulted at those checkpoints.
func (w *Worker) Run(ctx context.Context, unit *partition.Unit) Result {
	start := time.Now()
	if e := w.l.Debug(); e.Enabled() {
		first, last := unit.Bounds(w.alphabet)
		e.Int("unit", unit.ID).Str("first", first).Str("last", last).Msg("unit started")
	}
	var pending uint64
	for candidate := range unit.Candidates(w.alphabet) {
		pending++
		if w.matcher.Matches(candidate) {
			w.counter.Add(pending)
			w.l.Debug().Int("unit", unit.ID).Str("candidate", string(candidate)).Msg("match found")
			return Result{
				UnitID:        unit.ID,
				Found:         true,
				Candidate:     string(candidate),
				LocalAttempts: pending,
				Elapsed:       time.Since(start),
			}
		}
		if pending == w.flushInterval {
			w.counter.Add(pending)
			pending = 0
			if ctx.Err() != nil {
				w.l.Debug().Int("unit", unit.ID).Msg("unit canceled")
				return Result{UnitID: unit.ID, Elapsed: time.Since(start), Canceled: true}
			}
		}
	}
	if pending > 0 {
		w.counter.Add(pending)
	}
	w.l.Debug().Int("unit", unit.ID).Dur("elapsed", time.Since(start)).Msg("unit exhausted")
	return Result{UnitID: unit.ID, Elapsed: time.Since(start)}
}
