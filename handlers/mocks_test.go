package handlers

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"homerent_service/domain"
	application "homerent_service/service"
)

type mockUserStore struct {
	createFn        func(ctx context.Context, user *domain.User) (*domain.User, error)
	getFn           func(ctx context.Context, id int64) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	updateFn        func(ctx context.Context, id int64, fields *domain.UpdateUserRequest) (*domain.User, error)
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = 1
	return user, nil
}

func (m *mockUserStore) Get(ctx context.Context, id int64) (*domain.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserStore) Update(ctx context.Context, id int64, fields *domain.UpdateUserRequest) (*domain.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, nil
}

type mockHomeStore struct {
	insertFn                func(ctx context.Context, home *domain.Home, window *domain.AvailableDate) (*domain.Home, error)
	getAllFn                func(ctx context.Context) ([]*domain.Home, error)
	getByIDFn               func(ctx context.Context, id int64) (*domain.Home, error)
	searchFn                func(ctx context.Context, location string) ([]*domain.Home, error)
	getOverlappingWindowsFn func(ctx context.Context, homeID int64, start, end time.Time) ([]*domain.AvailableDate, error)
}

func (m *mockHomeStore) Insert(ctx context.Context, home *domain.Home, window *domain.AvailableDate) (*domain.Home, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, home, window)
	}
	home.ID = 1
	return home, nil
}

func (m *mockHomeStore) GetAll(ctx context.Context) ([]*domain.Home, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockHomeStore) GetByID(ctx context.Context, id int64) (*domain.Home, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockHomeStore) Search(ctx context.Context, location string) ([]*domain.Home, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, location)
	}
	return nil, nil
}

func (m *mockHomeStore) GetOverlappingWindows(ctx context.Context, homeID int64, start, end time.Time) ([]*domain.AvailableDate, error) {
	if m.getOverlappingWindowsFn != nil {
		return m.getOverlappingWindowsFn(ctx, homeID, start, end)
	}
	return nil, nil
}

type mockBookingStore struct {
	insertFn func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

func (m *mockBookingStore) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, booking)
	}
	return booking, nil
}

func (m *mockBookingStore) GetByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return nil, nil
}

func testTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("test")
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testTokenService() *application.TokenService {
	tokens, err := application.NewTokenService([]byte("test-secret-key"), time.Hour)
	if err != nil {
		panic(err)
	}
	return tokens
}

// A limiter that never throttles, for tests not about rate limiting.
func openLimiter() *RateLimiter {
	return NewRateLimiter(rate.Inf, 1)
}
