// Package metrics records dashboard activity. The Collector interface keeps the
// HTTP layer independent of the exporter; Prometheus is the only real backend.
package metrics

import (
	"time"

	"accounting/internal/core"
)

// Collector defines the interface for collecting application metrics.
type Collector interface {
	// RecordOperation counts a store or editor operation ("create", "update",
	// "delete", "open", ...). applied is false for no-ops such as deleting an
	// unknown id.
	RecordOperation(op string, applied bool)

	// RecordTotals publishes the current derived figures.
	RecordTotals(t core.Totals)

	// RecordRequest observes a served HTTP request.
	RecordRequest(method, route string, status int, duration time.Duration)

	// RecordRateLimited counts a rejected request.
	RecordRateLimited()
}

// NoOpCollector is used when metrics are disabled.
type NoOpCollector struct{}

func (NoOpCollector) RecordOperation(op string, applied bool) {}

func (NoOpCollector) RecordTotals(t core.Totals) {}

func (NoOpCollector) RecordRequest(method, route string, status int, duration time.Duration) {}

func (NoOpCollector) RecordRateLimited() {}
