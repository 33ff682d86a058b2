package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/quill-api/internal/api"
	apiMiddleware "github.com/phrazzld/quill-api/internal/api/middleware"
	"github.com/phrazzld/quill-api/internal/service/auth"
)

// routeHandlers are the endpoints mounted by newRouter.
type routeHandlers struct {
	auth   *api.AuthHandler
	posts  *api.PostHandler
	health http.HandlerFunc
	jwt    auth.JWTService
}

// route is one entry of the dispatch table.
type route struct {
	method    string
	pattern   string
	handler   http.HandlerFunc
	protected bool
}

// routes returns the dispatch table in match order. The id-less /post
// variants reach the handlers, which reject the missing id with a 400.
func routes(h routeHandlers) []route {
	return []route{
		{http.MethodGet, "/", api.Root, false},
		{http.MethodGet, "/health", h.health, false},
		{http.MethodPost, "/register", h.auth.Register, false},
		{http.MethodPost, "/login", h.auth.Login, false},

		{http.MethodGet, "/posts", h.posts.ListPosts, true},
		{http.MethodGet, "/post", h.posts.GetPost, true},
		{http.MethodGet, "/post/{id}", h.posts.GetPost, true},
		{http.MethodPost, "/post", h.posts.CreatePost, true},
		{http.MethodPatch, "/post", h.posts.UpdatePost, true},
		{http.MethodPatch, "/post/{id}", h.posts.UpdatePost, true},
		{http.MethodDelete, "/post", h.posts.DeletePost, true},
		{http.MethodDelete, "/post/{id}", h.posts.DeletePost, true},
	}
}

// newRouter mounts the route table on a chi router with the standard
// middleware stack.
func newRouter(h routeHandlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StripSlashes)
	r.Use(apiMiddleware.TraceMiddleware(logger))
	r.Use(apiMiddleware.Recover)

	authMiddleware := apiMiddleware.NewAuthMiddleware(h.jwt)

	for _, rt := range routes(h) {
		var handler http.Handler = rt.handler
		if rt.protected {
			handler = authMiddleware.Authenticate(handler)
		}
		r.Method(rt.method, rt.pattern, handler)
	}

	r.NotFound(api.RouteNotFound)
	r.MethodNotAllowed(api.RouteNotFound)

	return r
}
