// Package txmetrics wraps github.com/rcrowley/go-metrics behind a Sink
// interface. NewSink backs each Sink with its own private registry, so no
// package-level singleton registry is involved and every TransactionQueue
// can own an isolated Sink; NopSink discards everything.
package txmetrics

import "github.com/rcrowley/go-metrics"

// Gauge is a point-in-time numeric measurement, overwritten on update.
type Gauge interface {
	Update(v int64)
	Value() int64
}

// Counter is a monotonic (modulo explicit resets) numeric measurement.
type Counter interface {
	Inc(delta int64)
	Dec(delta int64)
	Clear()
	Count() int64
}

// Sink is the metrics surface the queue is constructed with. It is a
// plain interface, never a process-wide singleton, so every
// TransactionQueue can own independent counters (see SPEC_FULL.md §9: the
// metrics sink is injected at construction).
type Sink interface {
	RegisterGauge(name string) Gauge
	RegisterCounter(name string) Counter
}

// registrySink is the default Sink, backed by a private go-metrics
// registry so metrics from independently constructed queues never collide.
type registrySink struct {
	registry metrics.Registry
}

// NewSink returns a Sink backed by a fresh go-metrics registry.
func NewSink() Sink {
	return &registrySink{registry: metrics.NewRegistry()}
}

func (s *registrySink) RegisterGauge(name string) Gauge {
	return s.registry.GetOrRegister(name, metrics.NewGauge).(metrics.Gauge)
}

func (s *registrySink) RegisterCounter(name string) Counter {
	return counterAdapter{s.registry.GetOrRegister(name, metrics.NewCounter).(metrics.Counter)}
}

// counterAdapter adapts go-metrics' Counter (Inc/Dec/Clear/Count) to our
// narrower Counter interface.
type counterAdapter struct {
	metrics.Counter
}

// NopSink discards every metric. Useful for tests that don't care about
// observability plumbing.
func NopSink() Sink { return nopSink{} }

type nopSink struct{}

func (nopSink) RegisterGauge(string) Gauge     { return nopGauge{} }
func (nopSink) RegisterCounter(string) Counter { return nopCounter{} }

type nopGauge struct{}

func (nopGauge) Update(int64) {}
func (nopGauge) Value() int64 { return 0 }

type nopCounter struct{}

func (nopCounter) Inc(int64)    {}
func (nopCounter) Dec(int64)    {}
func (nopCounter) Clear()       {}
func (nopCounter) Count() int64 { return 0 }
