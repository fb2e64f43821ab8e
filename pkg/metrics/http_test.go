package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newHTTPMetrics(reg)

	m.Observe(http.MethodGet, "/api/v1/cart", http.StatusOK, 30*time.Millisecond)
	m.Observe(http.MethodGet, "/api/v1/cart", http.StatusOK, 10*time.Millisecond)
	m.Observe(http.MethodPost, "/api/v1/checkout/session", http.StatusCreated, 120*time.Millisecond)

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/v1/cart", "200"))
	if got != 2 {
		t.Fatalf("expected 2 GET cart requests, got %f", got)
	}
	got = testutil.ToFloat64(m.requests.WithLabelValues(http.MethodPost, "/api/v1/checkout/session", "201"))
	if got != 1 {
		t.Fatalf("expected 1 checkout request, got %f", got)
	}
}

func TestHTTPMetricsMiddlewareAndHandler(t *testing.T) {
	m := NewHTTPMetrics()
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := scrape.Body.String()
	if !strings.Contains(body, "http_requests_total") {
		t.Fatalf("expected request counter in scrape output:\n%s", body)
	}
	if !strings.Contains(body, `route="/api/v1/cart"`) {
		t.Fatalf("expected route label in scrape output:\n%s", body)
	}
}

func TestCommerceMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCommerceMetrics(reg)

	m.IncSessionCreated()
	m.IncOrderPlaced(4599)
	m.IncOrderPlaced(1200)

	if got := testutil.ToFloat64(m.sessionsCreated); got != 1 {
		t.Fatalf("expected 1 session, got %f", got)
	}
	if got := testutil.ToFloat64(m.ordersPlaced); got != 2 {
		t.Fatalf("expected 2 orders, got %f", got)
	}
	if got := testutil.ToFloat64(m.orderRevenueCents); got != 5799 {
		t.Fatalf("expected 5799 revenue cents, got %f", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var h *HTTPMetrics
	h.Observe(http.MethodGet, "", http.StatusOK, time.Millisecond)
	var c *CommerceMetrics
	c.IncSessionCreated()
	c.IncOrderPlaced(100)
}
