// Package desktop applies a wallpaper through an ordered chain of
// platform strategies: a multi-desktop helper first, then the native
// single-desktop facility. The chain stops at the first success; every
// failure mode of an earlier tier (missing helper, execution error,
// timeout) falls through to the next.
package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/EnemigoPython/Wallpaper-Rotator/internal/logfields"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/metrics"
)

// Applier runs the strategy chain. Apply never returns an error; the
// Result carries per-tier outcomes so callers can report what happened.
type Applier struct {
	strategies    []Strategy
	recorder      metrics.Recorder
	helperTimeout time.Duration
}

// Option configures an Applier.
type Option func(*Applier)

// WithStrategies replaces the platform chain, ordered by preference.
func WithStrategies(strategies ...Strategy) Option {
	return func(a *Applier) {
		a.strategies = strategies
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(a *Applier) {
		if rec != nil {
			a.recorder = rec
		}
	}
}

// WithHelperTimeout overrides the per-invocation helper timeout.
func WithHelperTimeout(d time.Duration) Option {
	return func(a *Applier) {
		if d > 0 {
			a.helperTimeout = d
		}
	}
}

// New builds an Applier with the platform's default strategy chain
// unless one is injected.
func New(opts ...Option) *Applier {
	a := &Applier{
		recorder:      metrics.NoopRecorder{},
		helperTimeout: DefaultHelperTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.strategies == nil {
		a.strategies = platformStrategies(a.helperTimeout)
	}
	return a
}

// Result is the outcome of one Apply run across the chain.
type Result struct {
	Applied  bool
	Strategy string
	Attempts []Attempt
}

// Message renders a short human-readable summary, used by the CLI when
// every tier failed.
func (r Result) Message() string {
	if r.Applied {
		return fmt.Sprintf("wallpaper applied via %s", r.Strategy)
	}
	if len(r.Attempts) == 0 {
		return "no wallpaper strategies available on this platform"
	}
	parts := make([]string, 0, len(r.Attempts))
	for _, att := range r.Attempts {
		if att.Detail != "" {
			parts = append(parts, fmt.Sprintf("%s: %s (%s)", att.Strategy, att.Status, att.Detail))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", att.Strategy, att.Status))
		}
	}
	return "failed to set wallpaper: " + strings.Join(parts, "; ")
}

// Apply walks the chain until a strategy succeeds. The path is made
// absolute first; desktop facilities resolve relative paths against
// their own working directory, not ours.
func (a *Applier) Apply(ctx context.Context, path string) Result {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	var result Result
	for _, strategy := range a.strategies {
		attempt := strategy.Attempt(ctx, abs)
		a.recorder.IncStrategyAttempt(strategy.Name(), string(attempt.Status))
		result.Attempts = append(result.Attempts, attempt)

		if attempt.Applied() {
			result.Applied = true
			result.Strategy = strategy.Name()
			slog.Debug("wallpaper applied",
				logfields.Strategy(strategy.Name()), logfields.Path(abs))
			return result
		}

		slog.Debug("strategy did not apply, falling back",
			logfields.Strategy(strategy.Name()),
			logfields.Outcome(string(attempt.Status)),
			slog.String("detail", attempt.Detail))
	}
	return result
}

// ProbeMultiDesktop reports whether the multi-desktop tier is available,
// without applying anything.
func (a *Applier) ProbeMultiDesktop(ctx context.Context) Capability {
	for _, strategy := range a.strategies {
		if prober, ok := strategy.(Prober); ok {
			return prober.Probe(ctx)
		}
	}
	return Capability{
		Status: CapabilityUnavailable,
		Detail: "no probeable strategy on this platform",
	}
}
