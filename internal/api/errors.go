package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/quill-api/internal/api/shared"
	"github.com/phrazzld/quill-api/internal/apperr"
	"github.com/phrazzld/quill-api/internal/service/auth"
	"github.com/phrazzld/quill-api/internal/store"
)

// MsgInternalServerError is the fallback for failures with no better message.
const MsgInternalServerError = "Internal server error"

// MapError classifies err for the client. Operational *apperr.Error values are
// returned as is; known store and auth sentinels get their public mapping;
// everything else becomes a 500 carrying fallback, so internal details never
// reach the response.
func MapError(err error, fallback string) *apperr.Error {
	if fallback == "" {
		fallback = MsgInternalServerError
	}

	if appErr, ok := apperr.As(err); ok && appErr.Operational {
		return appErr
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return apperr.Unauthorized("Invalid token", err)

	case errors.Is(err, store.ErrUserNotFound):
		return apperr.NotFound(MsgUserNotFound, err)

	case errors.Is(err, store.ErrPostNotFound):
		return apperr.NotFound("Post not found", err)

	case errors.Is(err, store.ErrEmailOrUsernameExists):
		return apperr.Conflict(MsgUserExists, err)

	default:
		return apperr.Internal(fallback, err)
	}
}

// HandleAPIError logs err and writes the error envelope for it. fallback is
// the message sent when err has no client-safe mapping.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	shared.RespondWithErrorAndLog(w, r, MapError(err, fallback), err)
}
