package handler

import (
	"fmt"
	"net/http"

	"github.com/subtrack/subtrack/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "subtrack_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "subtrack_users_updated_total %d\n", snap.UsersUpdated)
	writeMetric(w, "subtrack_users_deleted_total %d\n", snap.UsersDeleted)

	writeMetric(w, "subtrack_subscriptions_created_total %d\n", snap.SubscriptionsCreated)
	writeMetric(w, "subtrack_subscriptions_deleted_total %d\n", snap.SubscriptionsDeleted)

	writeMetric(w, "subtrack_conflicts_total{entity=\"user\"} %d\n", snap.UserConflicts)
	writeMetric(w, "subtrack_conflicts_total{entity=\"subscription\"} %d\n", snap.SubscriptionConflicts)
	writeMetric(w, "subtrack_stale_writes_total{entity=\"user\"} %d\n", snap.UserStaleWrites)
	writeMetric(w, "subtrack_stale_writes_total{entity=\"subscription\"} %d\n", snap.SubscriptionStale)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
