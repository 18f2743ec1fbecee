package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersByLabel(t *testing.T) {
	m := New()

	m.EstimateSaved(true)
	m.EstimateSaved(true)
	m.EstimateSaved(false)
	m.EmailResult(EmailRedirected)
	m.GeocodeResult("degraded")

	if got := testutil.ToFloat64(m.EstimatesSaved.WithLabelValues("created")); got != 2 {
		t.Fatalf("created = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.EstimatesSaved.WithLabelValues("duplicate")); got != 1 {
		t.Fatalf("duplicate = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.EmailsSent.WithLabelValues(EmailRedirected)); got != 1 {
		t.Fatalf("redirected emails = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.GeocodeLookups.WithLabelValues("degraded")); got != 1 {
		t.Fatalf("degraded lookups = %v, want 1", got)
	}
}

func TestObserveRequestAndHandler(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/api/catalog", 200, 15*time.Millisecond)
	m.ObserveRequest("GET", "", 404, time.Millisecond)

	if n := testutil.CollectAndCount(m.RequestDuration); n != 2 {
		t.Fatalf("expected 2 histogram series, got %d", n)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`paintpro_http_request_duration_seconds_count{method="GET",route="/api/catalog",status="200"} 1`,
		`route="unmatched"`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
