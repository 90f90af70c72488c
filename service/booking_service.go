package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"homerent_service/domain"
	"homerent_service/errors"
)

// BookingService decides whether a requested date range may be booked
// against a home's advertised windows and records the booking.
type BookingService struct {
	bookings domain.BookingStore
	homes    domain.HomeStore
	tracer   trace.Tracer
	logger   *logrus.Logger
}

func NewBookingService(bookings domain.BookingStore, homes domain.HomeStore, tracer trace.Tracer, logger *logrus.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		homes:    homes,
		tracer:   tracer,
		logger:   logger,
	}
}

// Create books a home for the requested range. One advertised window
// sharing at least one date with the request is enough to permit the
// booking; already-booked sub-ranges are not subtracted. Exactly one row
// is written on success, none on failure.
func (service *BookingService) Create(ctx context.Context, request *domain.BookingRequest) (*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.Create")
	defer span.End()

	if err := request.Validate(); err != nil {
		return nil, err
	}

	// Range sanity comes before any store access.
	if request.StartDate.After(request.EndDate) {
		return nil, &errors.InvalidRangeError{Message: errors.InvalidDateRange}
	}

	windows, err := service.homes.GetOverlappingWindows(ctx, request.HomeID, request.StartDate, request.EndDate)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if len(windows) == 0 {
		return nil, &errors.NotAvailableError{Message: errors.HomeNotAvailable}
	}

	booking := &domain.Booking{
		ID:         uuid.New(),
		HomeID:     request.HomeID,
		UserID:     request.UserID,
		StartDate:  request.StartDate,
		EndDate:    request.EndDate,
		TotalPrice: request.TotalPrice,
	}

	created, err := service.bookings.Insert(ctx, booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	service.logger.WithFields(logrus.Fields{
		"booking": created.ID.String(),
		"home":    created.HomeID,
	}).Info("Booking created")

	return created, nil
}

func (service *BookingService) GetByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.GetByUser")
	defer span.End()

	return service.bookings.GetByUser(ctx, userID)
}
