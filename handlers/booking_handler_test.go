package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"homerent_service/domain"
	"homerent_service/errors"
	"homerent_service/metrics"
	application "homerent_service/service"
)

func newBookingRouter(bookings *mockBookingStore, homes *mockHomeStore) *mux.Router {
	service := application.NewBookingService(bookings, homes, testTracer(), testLogger())
	handler := NewBookingHandler(service, testTracer(), testLogger(), metrics.NewCollector())

	router := mux.NewRouter()
	handler.Init(router)
	return router
}

func bookingBody(start, end string) string {
	return fmt.Sprintf(`{
		"homeId": 1,
		"userId": 2,
		"startDate": "%sT00:00:00Z",
		"endDate": "%sT00:00:00Z",
		"totalPrice": 500
	}`, start, end)
}

func overlappingWindow() *mockHomeStore {
	window := &domain.AvailableDate{
		ID:        1,
		HomeID:    1,
		StartDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
	}
	return &mockHomeStore{
		getOverlappingWindowsFn: func(ctx context.Context, homeID int64, start, end time.Time) ([]*domain.AvailableDate, error) {
			if window.StartDate.After(end) || window.EndDate.Before(start) {
				return nil, nil
			}
			return []*domain.AvailableDate{window}, nil
		},
	}
}

func TestBookingEndpointCreated(t *testing.T) {
	router := newBookingRouter(&mockBookingStore{}, overlappingWindow())

	req := httptest.NewRequest(http.MethodPost, "/booking",
		strings.NewReader(bookingBody("2024-06-03", "2024-06-05")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestBookingEndpointNotAvailable(t *testing.T) {
	router := newBookingRouter(&mockBookingStore{}, overlappingWindow())

	req := httptest.NewRequest(http.MethodPost, "/booking",
		strings.NewReader(bookingBody("2024-07-01", "2024-07-05")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), errors.HomeNotAvailable) {
		t.Errorf("body should name the availability rejection, got %q", rec.Body.String())
	}
}

func TestBookingEndpointInvalidRange(t *testing.T) {
	router := newBookingRouter(&mockBookingStore{}, overlappingWindow())

	req := httptest.NewRequest(http.MethodPost, "/booking",
		strings.NewReader(bookingBody("2024-05-10", "2024-05-05")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// Consecutive storage failures open the breaker; client-level rejections
// never do.
func TestBookingEndpointBreakerOpensOnStorageFailures(t *testing.T) {
	homes := &mockHomeStore{
		getOverlappingWindowsFn: func(ctx context.Context, homeID int64, start, end time.Time) ([]*domain.AvailableDate, error) {
			return nil, &errors.StorageError{Message: "Error retrieving availability"}
		},
	}
	router := newBookingRouter(&mockBookingStore{}, homes)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/booking",
			strings.NewReader(bookingBody("2024-06-03", "2024-06-05")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("request %d: got status %d, want %d", i, rec.Code, http.StatusInternalServerError)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/booking",
		strings.NewReader(bookingBody("2024-06-03", "2024-06-05")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("breaker should be open: got status %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestBookingEndpointRejectionsDoNotTripBreaker(t *testing.T) {
	router := newBookingRouter(&mockBookingStore{}, overlappingWindow())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/booking",
			strings.NewReader(bookingBody("2024-07-01", "2024-07-05")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("request %d: got status %d, want %d", i, rec.Code, http.StatusBadRequest)
		}
	}
}
