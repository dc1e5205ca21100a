package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	stageDuration    *prom.HistogramVec
	rotationDuration prom.Histogram
	stageResults     *prom.CounterVec
	rotationOutcome  *prom.CounterVec
	strategyAttempts *prom.CounterVec
	imageCount       prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "wallpaper_rotator",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual rotation stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.rotationDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "wallpaper_rotator",
			Name:      "rotation_duration_seconds",
			Help:      "Total rotation run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "wallpaper_rotator",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.rotationOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "wallpaper_rotator",
			Name:      "rotation_outcomes_total",
			Help:      "Rotation outcomes by final status",
		}, []string{"outcome"})
		pr.strategyAttempts = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "wallpaper_rotator",
			Name:      "strategy_attempts_total",
			Help:      "Wallpaper strategy attempts by outcome",
		}, []string{"strategy", "outcome"})
		pr.imageCount = prom.NewGauge(prom.GaugeOpts{
			Namespace: "wallpaper_rotator",
			Name:      "images_total",
			Help:      "Images found in the wallpaper folder at last rotation",
		})
		reg.MustRegister(pr.stageDuration, pr.rotationDuration, pr.stageResults, pr.rotationOutcome, pr.strategyAttempts, pr.imageCount)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRotationDuration(d time.Duration) {
	if p == nil || p.rotationDuration == nil {
		return
	}
	p.rotationDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRotationOutcome(outcome string) {
	if p == nil || p.rotationOutcome == nil {
		return
	}
	p.rotationOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncStrategyAttempt(strategy, outcome string) {
	if p == nil || p.strategyAttempts == nil {
		return
	}
	p.strategyAttempts.WithLabelValues(strategy, outcome).Inc()
}

func (p *PrometheusRecorder) SetImageCount(n int) {
	if p == nil || p.imageCount == nil {
		return
	}
	p.imageCount.Set(float64(n))
}
