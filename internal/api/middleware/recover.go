package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/quill-api/internal/api/shared"
	"github.com/phrazzld/quill-api/internal/apperr"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/redact"
)

// Recover turns a panic inside a handler into an error response. Operational
// *apperr.Error panics are answered verbatim; anything else is logged with its
// stack and answered as a masked 500.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// http.ErrAbortHandler is net/http's own signal to drop the connection
			if rec == http.ErrAbortHandler {
				// ALLOW-PANIC: re-raise the sentinel net/http handles itself
				panic(rec)
			}

			err := apperr.FromPanic(rec)
			if appErr, ok := apperr.As(err); ok && appErr.Operational {
				shared.RespondWithErrorAndLog(w, r, appErr, err)
				return
			}

			logger.FromContextOrDefault(r.Context(), slog.Default()).Error("panic in request handler",
				slog.String("error", redact.Error(err)),
				slog.String("stack", redact.String(string(debug.Stack()))))
			shared.RespondWithError(w, r, apperr.Unexpected(err))
		}()

		next.ServeHTTP(w, r)
	})
}
