package domain

import "context"

type UserStore interface {
	Create(ctx context.Context, user *User) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id int64, fields *UpdateUserRequest) (*User, error)
}
