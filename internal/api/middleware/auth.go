package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/quill-api/internal/api/shared"
	"github.com/phrazzld/quill-api/internal/apperr"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/service/auth"
)

// Client-visible authentication failures.
const (
	MsgAuthHeaderInvalid = "Authorization header missing or invalid"
	MsgTokenInvalid      = "Expired or invalid token"
)

const bearerPrefix = "Bearer "

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token in the Authorization header and
// stores the verified claims in the request context. On any failure it writes
// a 401 error envelope and does not call next.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			shared.RespondWithErrorAndLog(w, r,
				apperr.Unauthorized(MsgAuthHeaderInvalid, auth.ErrMissingToken), nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if token == "" {
			shared.RespondWithErrorAndLog(w, r,
				apperr.Unauthorized(MsgTokenInvalid, auth.ErrInvalidToken), nil)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, apperr.Unauthorized(MsgTokenInvalid, err), err)
			return
		}

		ctx := context.WithValue(r.Context(), shared.ClaimsContextKey, claims)
		log := logger.FromContextOrDefault(ctx, slog.Default()).With(slog.Int64("user_id", claims.UserID))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims extracts the verified claims from the request context.
// Returns the claims and a boolean indicating if they were found.
func GetClaims(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(shared.ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// GetUserID extracts the authenticated user's ID from the request context.
func GetUserID(r *http.Request) (int64, bool) {
	claims, ok := GetClaims(r)
	if !ok || claims.UserID <= 0 {
		return 0, false
	}
	return claims.UserID, true
}
