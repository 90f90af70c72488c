package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/trace"

	"homerent_service/domain"
	"homerent_service/errors"
	"homerent_service/metrics"
	application "homerent_service/service"
)

type BookingHandler struct {
	service   *application.BookingService
	tracer    trace.Tracer
	logger    *logrus.Logger
	collector *metrics.Collector
	cb        *gobreaker.CircuitBreaker
}

func NewBookingHandler(service *application.BookingService, tracer trace.Tracer, logger *logrus.Logger, collector *metrics.Collector) *BookingHandler {
	return &BookingHandler{
		service:   service,
		tracer:    tracer,
		logger:    logger,
		collector: collector,
		cb:        CircuitBreaker("bookingStore"),
	}
}

func (handler *BookingHandler) Init(router *mux.Router) {
	router.HandleFunc("/booking", handler.Create).Methods(http.MethodPost)
	router.HandleFunc("/bookings/user/{id}", handler.GetByUser).Methods(http.MethodGet)
}

func (handler *BookingHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Create")
	defer span.End()

	var request domain.BookingRequest
	err := json.NewDecoder(req.Body).Decode(&request)
	if err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	result, err := handler.cb.Execute(func() (interface{}, error) {
		return handler.service.Create(ctx, &request)
	})
	if err != nil {
		handler.collector.RecordBookingRejected()
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			http.Error(writer, "Service is currently unavailable", http.StatusServiceUnavailable)
			return
		}
		writeError(writer, err)
		return
	}

	handler.collector.RecordBookingCreated()

	writer.WriteHeader(http.StatusCreated)
	jsonResponse(result.(*domain.Booking), writer)
}

func (handler *BookingHandler) GetByUser(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.GetByUser")
	defer span.End()

	userID, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		http.Error(writer, "Invalid user ID", http.StatusBadRequest)
		return
	}

	bookings, err := handler.service.GetByUser(ctx, userID)
	if err != nil {
		writeError(writer, err)
		return
	}

	jsonResponse(bookings, writer)
}

// CircuitBreaker trips on consecutive storage failures only; rejected
// requests (validation, conflicts, unavailable dates) count as successes.
func CircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Printf("Circuit Breaker '%s' changed from '%s' to '%s'\n", name, from, to)
			},
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				switch err.(type) {
				case *errors.ValidationError, *errors.InvalidRangeError, *errors.NotAvailableError,
					*errors.ConflictError, *errors.NotFoundError:
					return true
				}
				return false
			},
		},
	)
}
