package txqueue

import (
	"fmt"

	"github.com/ledgerfed/fedqueue/txmetrics"
)

// queueMetrics holds the gauges and counters the queue updates. One
// counter per age bucket plus a handful of admission-outcome counters, in
// the shape of the teacher's pendingGauge/queuedGauge/pendingDiscardCounter
// family (core/tx_pool.go) and the original's mSizeByAge meters
// (herder/TransactionQueue.cpp), but owned per-instance via an injected
// Sink rather than package-level metrics vars.
type queueMetrics struct {
	sizeByAge []txmetrics.Counter
	banned    []txmetrics.Gauge
	queueOps  txmetrics.Gauge

	pendingCount   txmetrics.Counter
	duplicateCount txmetrics.Counter
	errorCount     txmetrics.Counter
	tryAgainCount  txmetrics.Counter
}

func newQueueMetrics(sink txmetrics.Sink, pendingDepth, banDepth int) *queueMetrics {
	m := &queueMetrics{
		sizeByAge: make([]txmetrics.Counter, pendingDepth),
		banned:    make([]txmetrics.Gauge, banDepth),
		queueOps:  sink.RegisterGauge("txqueue/ops"),

		pendingCount:   sink.RegisterCounter("txqueue/admit/pending"),
		duplicateCount: sink.RegisterCounter("txqueue/admit/duplicate"),
		errorCount:     sink.RegisterCounter("txqueue/admit/error"),
		tryAgainCount:  sink.RegisterCounter("txqueue/admit/try_again_later"),
	}
	for i := range m.sizeByAge {
		m.sizeByAge[i] = sink.RegisterCounter(fmt.Sprintf("txqueue/pending-txs/age%d", i))
	}
	for i := range m.banned {
		m.banned[i] = sink.RegisterGauge(fmt.Sprintf("txqueue/banned/depth%d", i))
	}
	return m
}

func (m *queueMetrics) recordStatus(s Status) {
	switch s {
	case StatusPending:
		m.pendingCount.Inc(1)
	case StatusDuplicate:
		m.duplicateCount.Inc(1)
	case StatusError:
		m.errorCount.Inc(1)
	case StatusTryAgainLater:
		m.tryAgainCount.Inc(1)
	}
}

func (m *queueMetrics) refreshBanCounts(r *banRing) {
	for i := range m.banned {
		m.banned[i].Update(int64(r.count(i)))
	}
}

// setSizeByAge overwrites every age-bucket counter from sizes, matching
// §4.8 step 3 ("overwrite per-age counters from sizes").
func (m *queueMetrics) setSizeByAge(sizes []int64) {
	for i, v := range sizes {
		m.sizeByAge[i].Clear()
		m.sizeByAge[i].Inc(v)
	}
}
