package handlers

import (
	"net/http"

	"ride-compare-backend/internal/metrics"
	"ride-compare-backend/internal/middleware"
	"ride-compare-backend/internal/storage"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterDeps carries everything the router needs. Profile is nil when no S3
// bucket is configured; the upload route is simply not registered then.
type RouterDeps struct {
	Auth       *AuthHandler
	Places     *PlaceHandler
	Rides      *RideHandler
	Profile    *ProfileHandler
	Sessions   storage.SessionStore
	CookieName string
	Collector  *metrics.Collector
}

// NewRouter builds the chi router with all API routes
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if deps.Collector != nil {
		r.Use(deps.Collector.Middleware)
		r.Method(http.MethodGet, "/metrics", deps.Collector.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/register", deps.Auth.Register)
		r.Post("/login", deps.Auth.Login)
		r.Post("/ride-estimates", deps.Rides.Estimates)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(deps.Sessions, deps.CookieName))
			r.Post("/logout", deps.Auth.Logout)
			r.Get("/user", deps.Auth.CurrentUser)

			r.Get("/places", deps.Places.List)
			r.Post("/places", deps.Places.Create)
			r.Delete("/places/{id}", deps.Places.Delete)

			r.Get("/rides", deps.Rides.History)
			r.Post("/rides", deps.Rides.Book)
			r.Get("/rides/{id}", deps.Rides.Get)

			if deps.Profile != nil {
				r.Post("/profile/picture", deps.Profile.UploadPicture)
			}
		})
	})

	return r
}
