package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/subtrack/subtrack/internal/metrics"
)

func TestMetricsHandler(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncUserCreated()
	recorder.IncUserCreated()
	recorder.IncSubscriptionCreated()
	recorder.IncConflict("user")
	recorder.IncStaleWrite("subscription")

	h := NewMetricsHandler(recorder)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "text/plain") {
		t.Errorf("expected text/plain content type, got %s", contentType)
	}

	body := rec.Body.String()
	for _, line := range []string{
		"subtrack_users_created_total 2",
		"subtrack_subscriptions_created_total 1",
		`subtrack_conflicts_total{entity="user"} 1`,
		`subtrack_conflicts_total{entity="subscription"} 0`,
		`subtrack_stale_writes_total{entity="subscription"} 1`,
	} {
		if !strings.Contains(body, line) {
			t.Errorf("expected metrics output to contain %q, got:\n%s", line, body)
		}
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
}
