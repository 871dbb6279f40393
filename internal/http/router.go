package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lamdn/circura/internal/http/auth"
	"github.com/lamdn/circura/internal/http/borrow"
	"github.com/lamdn/circura/internal/http/catalog"
	"github.com/lamdn/circura/internal/http/importcsv"
	"github.com/lamdn/circura/internal/http/settings"
)

func New(
	authMW *auth.Middleware,
	borrowV1 *borrow.Handler,
	catalogV1 *catalog.Handler,
	settingsV1 *settings.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authMW.Authenticate)

		r.Route("/borrow-requests", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				borrowV1.Routes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireStaff)
				borrowV1.StaffRoutes(r)
			})
		})

		r.Route("/copies", func(r chi.Router) {
			catalogV1.Routes(r)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireStaff)
				catalogV1.StaffRoutes(r)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(auth.RequireStaff)
			settingsV1.Routes(r)
		})

		r.Route("/import", func(r chi.Router) {
			r.Use(auth.RequireStaff)
			importV1.Routes(r)
		})
	})

	return router
}
