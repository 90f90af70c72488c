package domain

import (
	"context"
	"time"
)

type HomeStore interface {
	Insert(ctx context.Context, home *Home, window *AvailableDate) (*Home, error)
	GetAll(ctx context.Context) ([]*Home, error)
	GetByID(ctx context.Context, id int64) (*Home, error)
	Search(ctx context.Context, location string) ([]*Home, error)
	// GetOverlappingWindows returns every advertised window sharing at
	// least one date with [start, end].
	GetOverlappingWindows(ctx context.Context, homeID int64, start, end time.Time) ([]*AvailableDate, error)
}
