// Package http wires the JSON API surface.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/slateapp/slate/internal/auth"
	authhttp "github.com/slateapp/slate/internal/http/auth"
	billshttp "github.com/slateapp/slate/internal/http/bills"
	profilehttp "github.com/slateapp/slate/internal/http/profile"
	summaryhttp "github.com/slateapp/slate/internal/http/summary"
	"github.com/slateapp/slate/internal/middleware"
)

func New(
	jwtManager *auth.JWTManager,
	authV1 *authhttp.Handler,
	billsV1 *billshttp.Handler,
	profileV1 *profilehttp.Handler,
	summaryV1 *summaryhttp.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	router.Use(middleware.OptionalAuth(jwtManager))
	router.Use(middleware.Logging)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authV1.Routes(r)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(jwtManager))
				authV1.Protected(r)
			})
		})

		r.Route("/bills", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			billsV1.Routes(r)
		})

		r.Get("/categories", billshttp.Categories)

		r.Route("/summary", summaryV1.Routes)

		r.Route("/profile", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			profileV1.Routes(r)
		})
	})

	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return router
}
