package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestScrapeExposesBookingCounters(t *testing.T) {
	collector := NewCollector()
	collector.RecordBookingCreated()
	collector.RecordBookingCreated()
	collector.RecordBookingRejected()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "homerent_bookings_created_total 2") {
		t.Errorf("created counter missing or wrong:\n%s", body)
	}
	if !strings.Contains(body, "homerent_bookings_rejected_total 1") {
		t.Errorf("rejected counter missing or wrong:\n%s", body)
	}
}

func TestMiddlewareCountsRequests(t *testing.T) {
	collector := NewCollector()

	handler := collector.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/homes", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `homerent_http_requests_total{method="GET",status_code="418"} 1`) {
		t.Errorf("request counter missing or wrong:\n%s", body)
	}
}
