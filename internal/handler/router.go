package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/plantpal/backend/internal/handler/plantconfig"
	turnhandler "github.com/plantpal/backend/internal/handler/turn"
	middlewarePkg "github.com/plantpal/backend/internal/middleware"
	"github.com/plantpal/backend/internal/model/plant"
	"github.com/plantpal/backend/internal/observability"
	"github.com/plantpal/backend/internal/policy"
	convservice "github.com/plantpal/backend/internal/service/conversation"
	turnservice "github.com/plantpal/backend/internal/service/turn"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(profiles plant.Store, convs *convservice.Service, turns *turnservice.Service, guard *policy.Guard) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	// Unauthenticated probes.
	r.Get("/healthcheck", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", observability.MetricsHandler())

	plantconfig.New(profiles, guard).RegisterRoutes(r)
	turnhandler.New(turns, convs, guard).RegisterRoutes(r)

	return r
}
