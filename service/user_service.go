package application

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"homerent_service/domain"
	"homerent_service/errors"
)

type UserService struct {
	store  domain.UserStore
	tokens *TokenService
	tracer trace.Tracer
}

func NewUserService(store domain.UserStore, tokens *TokenService, tracer trace.Tracer) *UserService {
	return &UserService{
		store:  store,
		tokens: tokens,
		tracer: tracer,
	}
}

func (service *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Get")
	defer span.End()

	user, err := service.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &errors.NotFoundError{Message: errors.UserNotFoundError}
	}

	return user, nil
}

// Update applies a partial identity change and re-issues a session token
// carrying the merged claims. On any failure the stored identity and the
// caller's token are left untouched.
func (service *UserService) Update(ctx context.Context, id int64, request *domain.UpdateUserRequest) (*domain.User, string, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Update")
	defer span.End()

	if err := request.Validate(); err != nil {
		return nil, "", err
	}

	updated, err := service.store.Update(ctx, id, request)
	if err != nil {
		return nil, "", err
	}

	token, err := service.tokens.Issue(updated)
	if err != nil {
		return nil, "", err
	}

	return updated, token, nil
}
