// Package metrics provides observability hooks for rotation runs.
//
// The package implements the Null Object pattern: components receive a
// Recorder through dependency injection and default to NoopRecorder, so
// metrics collection never requires nil checks at call sites.
//
//	rotator := rotation.New(folder, rotation.WithRecorder(metrics.NoopRecorder{}))
//
// When metrics output is configured, swap in a real implementation:
//
//	reg := prometheus.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//
// Because the rotator is a one-shot process there is no scrape endpoint;
// gathered metrics are flushed to a node_exporter textfile-collector file
// via WriteTextfile after the run completes.
package metrics
