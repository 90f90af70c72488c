package authorization

import (
	"context"
	"net/http"
	"strings"

	"github.com/casbin/casbin"
	"github.com/sirupsen/logrus"

	"homerent_service/domain"
	"homerent_service/errors"
	application "homerent_service/service"
)

// KeyClaims is the context key under which decoded token claims travel.
type KeyClaims struct{}

const (
	RoleUser            = "user"
	RoleUnauthenticated = "Unauthenticated"
)

type Authorizer struct {
	tokens *application.TokenService
}

func NewAuthorizer(tokens *application.TokenService) *Authorizer {
	return &Authorizer{tokens: tokens}
}

// ExtractClaims reads and decodes the bearer token on the request. A
// request without an Authorization header is anonymous, not an error.
func (a *Authorizer) ExtractClaims(r *http.Request) (*domain.Claims, error) {
	bearer := r.Header.Get("Authorization")
	if bearer == "" {
		return nil, nil
	}

	bearerToken := strings.Split(bearer, "Bearer ")
	if len(bearerToken) != 2 {
		return nil, &errors.AuthenticationError{Message: errors.InvalidRequestFormatError}
	}

	return a.tokens.Decode(bearerToken[1])
}

// Middleware attaches decoded claims to the request context. A request
// without an Authorization header stays anonymous and the route policy
// decides whether that is enough; a header that is present but expired,
// forged or malformed is an authentication failure and answers 401 so
// the client knows to log in again.
func (a *Authorizer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.ExtractClaims(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		if claims != nil {
			ctx := context.WithValue(r.Context(), KeyClaims{}, claims)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(KeyClaims{}).(*domain.Claims)
	return claims, ok
}

func (a *Authorizer) roleFor(r *http.Request) string {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok || claims == nil {
		return RoleUnauthenticated
	}
	return RoleUser
}

// CasbinMiddleware enforces the route policy against the caller's role.
// It must run after Middleware so the role reflects the decoded token.
func CasbinMiddleware(e *casbin.Enforcer, a *Authorizer, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			userRole := a.roleFor(r)

			res, err := e.EnforceSafe(userRole, r.URL.Path, r.Method)
			if err != nil {
				logger.Error("Error enforcing authorization policy")
				http.Error(w, "unauthorized user", http.StatusUnauthorized)
				return
			}

			if !res {
				logger.Warn("Unauthorized access attempt: forbidden")
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
