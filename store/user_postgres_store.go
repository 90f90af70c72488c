package store

import (
	"context"
	"database/sql"
	"log"

	"go.opentelemetry.io/otel/trace"

	"homerent_service/domain"
	"homerent_service/errors"
)

type UserPostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
	logger *log.Logger
}

func NewUserPostgresStore(db *sql.DB, tracer trace.Tracer, logger *log.Logger) domain.UserStore {
	return &UserPostgresStore{
		db:     db,
		tracer: tracer,
		logger: logger,
	}
}

func (store *UserPostgresStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.Create")
	defer span.End()

	err := store.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, phone, password)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		user.Username, user.Email, user.Phone, user.Password,
	).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, &errors.ConflictError{Message: errors.UsernameOrEmailExist}
		}
		store.logger.Println(err)
		return nil, storageError("Error creating user", err)
	}

	return user, nil
}

func (store *UserPostgresStore) Get(ctx context.Context, id int64) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.Get")
	defer span.End()

	return store.scanOne(store.db.QueryRowContext(ctx,
		`SELECT id, username, email, phone, password FROM users WHERE id = $1`, id))
}

func (store *UserPostgresStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.GetByUsername")
	defer span.End()

	return store.scanOne(store.db.QueryRowContext(ctx,
		`SELECT id, username, email, phone, password FROM users WHERE username = $1`, username))
}

func (store *UserPostgresStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.GetByEmail")
	defer span.End()

	return store.scanOne(store.db.QueryRowContext(ctx,
		`SELECT id, username, email, phone, password FROM users WHERE email = $1`, email))
}

// Update applies only the fields present in the partial request. A nil
// field keeps the stored value.
func (store *UserPostgresStore) Update(ctx context.Context, id int64, fields *domain.UpdateUserRequest) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.Update")
	defer span.End()

	user := &domain.User{}
	err := store.db.QueryRowContext(ctx,
		`UPDATE users
		 SET username = COALESCE($2, username),
		     email    = COALESCE($3, email),
		     phone    = COALESCE($4, phone)
		 WHERE id = $1
		 RETURNING id, username, email, phone, password`,
		id, nullable(fields.Username), nullable(fields.Email), nullable(fields.Phone),
	).Scan(&user.ID, &user.Username, &user.Email, &user.Phone, &user.Password)

	if err == sql.ErrNoRows {
		return nil, &errors.NotFoundError{Message: errors.UserNotFoundError}
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &errors.ConflictError{Message: errors.UsernameOrEmailExist}
		}
		store.logger.Println(err)
		return nil, storageError("Error updating user", err)
	}

	return user, nil
}

func (store *UserPostgresStore) scanOne(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Phone, &user.Password)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		store.logger.Println(err)
		return nil, storageError("Error retrieving user", err)
	}

	return user, nil
}

func nullable(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
