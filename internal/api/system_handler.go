package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/quill-api/internal/api/shared"
	"github.com/phrazzld/quill-api/internal/apperr"
	"github.com/phrazzld/quill-api/internal/platform/logger"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// healthTimeout bounds the database ping of a health check.
const healthTimeout = 2 * time.Second

// Root handles GET /.
func Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "Hello, world!"})
}

// Health returns a handler for GET /health. With a nil db it always reports OK.
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Error("health check database ping failed", slog.String("error", err.Error()))
				HandleAPIError(w, r, apperr.Internal("Database unavailable", err), "")
				return
			}
		}
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "OK"})
	}
}

// MsgRouteNotFound answers any request no route matches, whatever the reason.
const MsgRouteNotFound = "Route not found or not allowed method."

// RouteNotFound handles unknown paths and unsupported methods alike.
func RouteNotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, apperr.NotFound(MsgRouteNotFound, nil))
}
