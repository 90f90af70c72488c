package store

import (
	"context"
	"database/sql"
	"log"

	"go.opentelemetry.io/otel/trace"

	"homerent_service/domain"
)

type BookingPostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
	logger *log.Logger
}

func NewBookingPostgresStore(db *sql.DB, tracer trace.Tracer, logger *log.Logger) domain.BookingStore {
	return &BookingPostgresStore{
		db:     db,
		tracer: tracer,
		logger: logger,
	}
}

func (store *BookingPostgresStore) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Insert")
	defer span.End()

	_, err := store.db.ExecContext(ctx,
		`INSERT INTO bookings (id, home_id, user_id, start_date, end_date, total_price)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		booking.ID, booking.HomeID, booking.UserID, booking.StartDate, booking.EndDate, booking.TotalPrice)
	if err != nil {
		store.logger.Println(err)
		return nil, storageError("Error creating booking", err)
	}

	return booking, nil
}

func (store *BookingPostgresStore) GetByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.GetByUser")
	defer span.End()

	rows, err := store.db.QueryContext(ctx,
		`SELECT id, home_id, user_id, start_date, end_date, total_price
		 FROM bookings WHERE user_id = $1 ORDER BY start_date`, userID)
	if err != nil {
		store.logger.Println(err)
		return nil, storageError("Error retrieving bookings", err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking := &domain.Booking{}
		err := rows.Scan(&booking.ID, &booking.HomeID, &booking.UserID,
			&booking.StartDate, &booking.EndDate, &booking.TotalPrice)
		if err != nil {
			return nil, storageError("Error retrieving bookings", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("Error retrieving bookings", err)
	}

	return bookings, nil
}
