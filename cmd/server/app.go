package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/quill-api/internal/api"
	"github.com/phrazzld/quill-api/internal/config"
	"github.com/phrazzld/quill-api/internal/platform/postgres"
	"github.com/phrazzld/quill-api/internal/service"
	"github.com/phrazzld/quill-api/internal/service/auth"
	"github.com/phrazzld/quill-api/internal/store"
)

// application holds the shared dependencies of the server. Everything is
// built once in newApplication and passed down explicitly.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore   store.UserStore
	jwtService  auth.JWTService
	hasher      auth.PasswordHasher
	postService service.PostService
}

// newApplication wires stores, services and handlers over an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.hasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.userStore = postgres.NewPostgresUserStore(db)

	app.postService, err = service.NewPostService(postgres.NewPostgresPostStore(db), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// handlers builds the HTTP handlers from the application's dependencies.
func (app *application) handlers() routeHandlers {
	return routeHandlers{
		auth:   api.NewAuthHandler(app.userStore, app.jwtService, app.hasher, app.logger),
		posts:  api.NewPostHandler(app.postService, app.config.Pagination.MaxLimit, app.logger),
		health: api.Health(app.db),
		jwt:    app.jwtService,
	}
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	router := newRouter(app.handlers(), app.logger)

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
