package application

import (
	"time"

	"github.com/cristalhq/jwt/v4"

	"homerent_service/domain"
	"homerent_service/errors"
)

// TokenService issues and decodes signed, time-bounded identity claims.
// Tokens are HS256-signed with a process-wide secret loaded once at
// startup; rotating the secret invalidates every outstanding token.
type TokenService struct {
	signer   jwt.Signer
	verifier jwt.Verifier
	ttl      time.Duration
}

func NewTokenService(secretKey []byte, ttl time.Duration) (*TokenService, error) {
	if len(secretKey) == 0 {
		return nil, &errors.ConfigurationError{Message: errors.MissingSigningSecret}
	}

	signer, err := jwt.NewSignerHS(jwt.HS256, secretKey)
	if err != nil {
		return nil, err
	}

	verifier, err := jwt.NewVerifierHS(jwt.HS256, secretKey)
	if err != nil {
		return nil, err
	}

	return &TokenService{
		signer:   signer,
		verifier: verifier,
		ttl:      ttl,
	}, nil
}

func (service *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now()

	claims := &domain.Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		IssuedAt:  now,
		ExpiresAt: now.Add(service.ttl),
	}

	token, err := jwt.NewBuilder(service.signer).Build(claims)
	if err != nil {
		return "", err
	}

	return token.String(), nil
}

// Decode verifies signature and expiry. All failures come back as one of
// the three token errors so callers can treat them uniformly as "no valid
// identity".
func (service *TokenService) Decode(tokenString string) (*domain.Claims, error) {
	token, err := jwt.Parse([]byte(tokenString), service.verifier)
	if err != nil {
		if err == jwt.ErrInvalidSignature {
			return nil, errors.ErrInvalidSignature
		}
		return nil, errors.ErrMalformedToken
	}

	var claims domain.Claims
	err = jwt.ParseClaims(token.Bytes(), service.verifier, &claims)
	if err != nil {
		return nil, errors.ErrMalformedToken
	}

	if time.Now().After(claims.ExpiresAt) {
		return nil, errors.ErrTokenExpired
	}

	return &claims, nil
}
