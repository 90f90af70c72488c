package store

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel/trace"

	"homerent_service/domain"
)

type HomePostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
	logger *log.Logger
}

func NewHomePostgresStore(db *sql.DB, tracer trace.Tracer, logger *log.Logger) domain.HomeStore {
	return &HomePostgresStore{
		db:     db,
		tracer: tracer,
		logger: logger,
	}
}

// Insert writes the home and its first availability window in one
// transaction so a failed window insert leaves no orphan home row.
func (store *HomePostgresStore) Insert(ctx context.Context, home *domain.Home, window *domain.AvailableDate) (*domain.Home, error) {
	ctx, span := store.tracer.Start(ctx, "HomeStore.Insert")
	defer span.End()

	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("Error creating listing", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO homes (user_id, location, title, description, rent, images, contact, property_type, requirements)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		home.UserID, home.Location, home.Title, home.Description, home.Rent,
		pq.Array(home.Images), home.Contact, home.PropertyType, pq.Array(home.Requirements),
	).Scan(&home.ID)
	if err != nil {
		store.logger.Println(err)
		return nil, storageError("Error creating listing", err)
	}

	window.HomeID = home.ID
	err = tx.QueryRowContext(ctx,
		`INSERT INTO available_dates (home_id, start_date, end_date)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		window.HomeID, window.StartDate, window.EndDate,
	).Scan(&window.ID)
	if err != nil {
		store.logger.Println(err)
		return nil, storageError("Error creating listing", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError("Error creating listing", err)
	}

	return home, nil
}

func (store *HomePostgresStore) GetAll(ctx context.Context) ([]*domain.Home, error) {
	ctx, span := store.tracer.Start(ctx, "HomeStore.GetAll")
	defer span.End()

	return store.filter(ctx,
		`SELECT id, user_id, location, title, description, rent, images, contact, property_type, requirements
		 FROM homes ORDER BY id`)
}

func (store *HomePostgresStore) GetByID(ctx context.Context, id int64) (*domain.Home, error) {
	ctx, span := store.tracer.Start(ctx, "HomeStore.GetByID")
	defer span.End()

	home := &domain.Home{}
	err := store.db.QueryRowContext(ctx,
		`SELECT id, user_id, location, title, description, rent, images, contact, property_type, requirements
		 FROM homes WHERE id = $1`, id,
	).Scan(&home.ID, &home.UserID, &home.Location, &home.Title, &home.Description,
		&home.Rent, pq.Array(&home.Images), &home.Contact, &home.PropertyType, pq.Array(&home.Requirements))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		store.logger.Println(err)
		return nil, storageError("Error retrieving home", err)
	}

	return home, nil
}

func (store *HomePostgresStore) Search(ctx context.Context, location string) ([]*domain.Home, error) {
	ctx, span := store.tracer.Start(ctx, "HomeStore.Search")
	defer span.End()

	return store.filter(ctx,
		`SELECT id, user_id, location, title, description, rent, images, contact, property_type, requirements
		 FROM homes WHERE location ILIKE '%' || $1 || '%' ORDER BY id`, location)
}

func (store *HomePostgresStore) GetOverlappingWindows(ctx context.Context, homeID int64, start, end time.Time) ([]*domain.AvailableDate, error) {
	ctx, span := store.tracer.Start(ctx, "HomeStore.GetOverlappingWindows")
	defer span.End()

	rows, err := store.db.QueryContext(ctx,
		`SELECT id, home_id, start_date, end_date
		 FROM available_dates
		 WHERE home_id = $1 AND start_date <= $3 AND end_date >= $2`,
		homeID, start, end)
	if err != nil {
		store.logger.Println(err)
		return nil, storageError("Error retrieving availability", err)
	}
	defer rows.Close()

	var windows []*domain.AvailableDate
	for rows.Next() {
		window := &domain.AvailableDate{}
		err := rows.Scan(&window.ID, &window.HomeID, &window.StartDate, &window.EndDate)
		if err != nil {
			return nil, storageError("Error retrieving availability", err)
		}
		windows = append(windows, window)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("Error retrieving availability", err)
	}

	return windows, nil
}

func (store *HomePostgresStore) filter(ctx context.Context, query string, args ...interface{}) ([]*domain.Home, error) {
	rows, err := store.db.QueryContext(ctx, query, args...)
	if err != nil {
		store.logger.Println(err)
		return nil, storageError("Error retrieving homes", err)
	}
	defer rows.Close()

	var homes []*domain.Home
	for rows.Next() {
		home := &domain.Home{}
		err := rows.Scan(&home.ID, &home.UserID, &home.Location, &home.Title, &home.Description,
			&home.Rent, pq.Array(&home.Images), &home.Contact, &home.PropertyType, pq.Array(&home.Requirements))
		if err != nil {
			return nil, storageError("Error retrieving homes", err)
		}
		homes = append(homes, home)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("Error retrieving homes", err)
	}

	return homes, nil
}
