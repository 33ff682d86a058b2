package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/quill-api/internal/apperr"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/redact"
)

// SuccessResponse is the envelope of every successful response.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every error response.
type ErrorResponse struct {
	Name          string `json:"name"`
	Message       string `json:"message"`
	StatusCode    int    `json:"statusCode"`
	IsOperational bool   `json:"isOperational"`
	TraceID       string `json:"traceId,omitempty"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level. Use for operational issues such as
// repeated auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithSuccess writes the success envelope.
func RespondWithSuccess(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	RespondWithJSON(w, r, status, SuccessResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// NewErrorResponse builds the envelope for appErr, tagged with the request's
// trace ID.
func NewErrorResponse(r *http.Request, appErr *apperr.Error) ErrorResponse {
	return ErrorResponse{
		Name:          appErr.Kind.Name(),
		Message:       appErr.Message,
		StatusCode:    appErr.StatusCode(),
		IsOperational: appErr.Operational,
		TraceID:       GetTraceID(r.Context()),
	}
}

// RespondWithError writes the error envelope for appErr without logging the cause.
func RespondWithError(w http.ResponseWriter, r *http.Request, appErr *apperr.Error) {
	resp := NewErrorResponse(r, appErr)

	logger.FromContextOrDefault(r.Context(), slog.Default()).Debug("sending error response",
		"status_code", resp.StatusCode,
		"message", resp.Message,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, resp.StatusCode, resp)
}

// RespondWithErrorAndLog writes the error envelope for appErr and logs the
// detailed cause. Only appErr's message reaches the client; the cause is
// redacted before it is logged.
//
// Log level strategy:
//   - 5xx errors: ERROR
//   - 4xx errors: DEBUG, or WARN with WithElevatedLogLevel()
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	appErr *apperr.Error,
	cause error,
	opts ...ResponseOption,
) {
	resp := NewErrorResponse(r, appErr)

	logAttrs := []slog.Attr{
		slog.String("trace_id", resp.TraceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", resp.StatusCode),
		slog.String("user_message", resp.Message),
		slog.Bool("operational", resp.IsOperational),
	}

	if cause != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(cause)),
			slog.String("error_type", fmt.Sprintf("%T", cause)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case responseOpts.elevateLogLevel:
		logLevel = slog.LevelWarn
	}

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	log.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, resp.StatusCode, resp)
}
