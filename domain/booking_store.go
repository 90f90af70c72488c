package domain

import "context"

type BookingStore interface {
	Insert(ctx context.Context, booking *Booking) (*Booking, error)
	GetByUser(ctx context.Context, userID int64) ([]*Booking, error)
}
