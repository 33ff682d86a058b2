package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/quill-api/internal/api/shared"
	"github.com/phrazzld/quill-api/internal/apperr"
	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/service/auth"
	"github.com/phrazzld/quill-api/internal/store"
)

// Client-visible messages of the auth endpoints.
const (
	MsgInvalidRequestFormat = "Invalid request format"
	MsgEmailInvalid         = "Email is invalid"
	MsgPasswordInvalid      = "Password is invalid"
	MsgUsernameRequired     = "Username is required"
	MsgUsernameTooLong      = "Username must be at most 255 characters"
	MsgUserExists           = "Email or username already exists"
	MsgUserNotFound         = "User not found"
	MsgIncorrectPassword    = "Incorrect password"
	MsgRegistered           = "User registered successfully"
	MsgLoggedIn             = "Login successful"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userStore:  userStore,
		jwtService: jwtService,
		hasher:     hasher,
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, apperr.New(apperr.KindBadRequest, MsgInvalidRequestFormat, err), "")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, apperr.New(apperr.KindBadRequest, registerValidationMessage(err), err), "")
		return
	}

	existing, err := h.userStore.FindByEmailOrUsername(ctx, req.Email, req.Username)
	switch {
	case err == nil && existing != nil:
		log.Debug("registration rejected, email or username taken")
		HandleAPIError(w, r, apperr.Conflict(MsgUserExists, store.ErrEmailOrUsernameExists), "")
		return
	case err != nil && !errors.Is(err, store.ErrUserNotFound):
		HandleAPIError(w, r, err, MsgInternalServerError)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalServerError)
		return
	}

	user, err := domain.NewUser(req.Email, req.Username, hash)
	if err != nil {
		HandleAPIError(w, r, apperr.New(apperr.KindBadRequest, registerDomainMessage(err), err), "")
		return
	}

	// The unique constraints still catch a concurrent registration that
	// passed the lookup above; MapError turns it into a 409.
	if err := h.userStore.Create(ctx, user); err != nil {
		HandleAPIError(w, r, err, MsgInternalServerError)
		return
	}

	token, err := h.jwtService.GenerateToken(ctx, auth.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalServerError)
		return
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	shared.RespondWithSuccess(w, r, http.StatusCreated, AuthResponse{
		User:  userToResponse(user),
		Token: token,
	}, MsgRegistered)
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, apperr.New(apperr.KindBadRequest, MsgInvalidRequestFormat, err), "")
		return
	}

	user, err := h.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			HandleAPIError(w, r, apperr.NotFound(MsgUserNotFound, err), "")
			return
		}
		HandleAPIError(w, r, err, MsgInternalServerError)
		return
	}

	ok, err := h.hasher.Compare(user.HashedPassword, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalServerError)
		return
	}
	if !ok {
		log.Debug("login rejected, wrong password", slog.Int64("user_id", user.ID))
		shared.RespondWithErrorAndLog(w, r, apperr.Unauthorized(MsgIncorrectPassword, nil), nil,
			shared.WithElevatedLogLevel())
		return
	}

	token, err := h.jwtService.GenerateToken(ctx, auth.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalServerError)
		return
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	shared.RespondWithSuccess(w, r, http.StatusOK, AuthResponse{
		User:  userToResponse(user),
		Token: token,
	}, MsgLoggedIn)
}

// registerValidationMessage maps the first failed RegisterRequest rule to its
// client message.
func registerValidationMessage(err error) string {
	fe, ok := shared.FirstFieldError(err)
	if !ok {
		return MsgInvalidRequestFormat
	}
	switch fe.Field {
	case "email":
		return MsgEmailInvalid
	case "password":
		return MsgPasswordInvalid
	case "username":
		if fe.Tag == "max" {
			return MsgUsernameTooLong
		}
		return MsgUsernameRequired
	default:
		return MsgInvalidRequestFormat
	}
}

// registerDomainMessage maps domain.NewUser failures; they are only reachable
// with whitespace-only input that passes the request rules.
func registerDomainMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyEmail):
		return MsgEmailInvalid
	case errors.Is(err, domain.ErrUsernameTooLong):
		return MsgUsernameTooLong
	default:
		return MsgUsernameRequired
	}
}
