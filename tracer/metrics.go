package tracer

import (
	"github.com/armon/go-metrics"
)

// Metrics helpers. None of these may be called from the free observer,
// which runs inside the collector's critical section.

// updateAllocationMetrics updates tracking metrics after an
// allocation has been recorded
func updateAllocationMetrics(liveObjects, internedStrings int) {
	metrics.IncrCounter([]string{"objtrace", "allocations"}, 1)
	metrics.SetGauge([]string{"objtrace", "live_objects"}, float32(liveObjects))
	metrics.SetGauge([]string{"objtrace", "interned_strings"}, float32(internedStrings))
}

// updateDrainMetrics updates aggregation metrics after a drain pass
func updateDrainMetrics(drained, liveObjects, aggregateRows int) {
	metrics.IncrCounter([]string{"objtrace", "drains"}, 1)
	metrics.IncrCounter([]string{"objtrace", "freed"}, float32(drained))
	metrics.SetGauge([]string{"objtrace", "live_objects"}, float32(liveObjects))
	metrics.SetGauge([]string{"objtrace", "aggregate_rows"}, float32(aggregateRows))
}

// updateSnapshotMetrics resets the working-table gauges after a
// snapshot has cleared the tables
func updateSnapshotMetrics(rows int) {
	metrics.IncrCounter([]string{"objtrace", "snapshots"}, 1)
	metrics.SetGauge([]string{"objtrace", "rows"}, float32(rows))
	metrics.SetGauge([]string{"objtrace", "live_objects"}, 0)
	metrics.SetGauge([]string{"objtrace", "aggregate_rows"}, 0)
	metrics.SetGauge([]string{"objtrace", "interned_strings"}, 0)
}
