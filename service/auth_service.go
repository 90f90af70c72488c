package application

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"homerent_service/domain"
	"homerent_service/errors"
)

type AuthService struct {
	store  domain.UserStore
	tokens *TokenService
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewAuthService(store domain.UserStore, tokens *TokenService, tracer trace.Tracer, logger *logrus.Logger) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		tracer: tracer,
		logger: logger,
	}
}

// Register creates a user and issues a session token for it. The existence
// pre-checks are advisory; the unique constraints in the store are the
// authoritative guard and surface as the same ConflictError on a race.
func (service *AuthService) Register(ctx context.Context, request *domain.RegisterRequest) (*domain.User, string, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	if err := request.Validate(); err != nil {
		return nil, "", err
	}

	existing, err := service.store.GetByUsername(ctx, request.Username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", &errors.ConflictError{Message: errors.UsernameOrEmailExist}
	}

	existing, err = service.store.GetByEmail(ctx, request.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", &errors.ConflictError{Message: errors.UsernameOrEmailExist}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username: request.Username,
		Email:    request.Email,
		Phone:    request.Phone,
		Password: string(hash),
	}

	created, err := service.store.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := service.tokens.Issue(created)
	if err != nil {
		return nil, "", err
	}

	service.logger.WithField("username", created.Username).Info("User registered")

	return created, token, nil
}

// Login keeps the observed behavior of distinct messages for an unknown
// email and a wrong password.
func (service *AuthService) Login(ctx context.Context, request *domain.LoginRequest) (*domain.User, string, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if err := request.Validate(); err != nil {
		return nil, "", err
	}

	user, err := service.store.GetByEmail(ctx, request.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", &errors.AuthenticationError{Message: errors.UserNotFoundError}
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password))
	if err != nil {
		return nil, "", &errors.AuthenticationError{Message: errors.InvalidCredentials}
	}

	token, err := service.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
