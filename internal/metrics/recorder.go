package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for rotation and strategy metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc. The
// NoopRecorder satisfies the interface with zero overhead, allowing
// optional injection.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRotationDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncRotationOutcome(outcome string) // outcome: applied|failed|no_images
	IncStrategyAttempt(strategy, outcome string)
	SetImageCount(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRotationDuration(time.Duration)      {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncRotationOutcome(string)                  {}
func (NoopRecorder) IncStrategyAttempt(string, string)          {}
func (NoopRecorder) SetImageCount(int)                          {}
