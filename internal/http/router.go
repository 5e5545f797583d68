package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/innkeeper/internal/http/export"
	"github.com/MrJamesThe3rd/innkeeper/internal/http/importcsv"
	"github.com/MrJamesThe3rd/innkeeper/internal/http/invoice"
	"github.com/MrJamesThe3rd/innkeeper/internal/http/reservation"
	"github.com/MrJamesThe3rd/innkeeper/internal/http/room"
	"github.com/MrJamesThe3rd/innkeeper/internal/http/stay"
)

type Handlers struct {
	Rooms        *room.Handler
	Reservations *reservation.Handler
	Stays        *stay.Handler
	Invoices     *invoice.Handler
	Import       *importcsv.Handler
	Export       *export.Handler
}

type Options struct {
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/room-types", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Rooms.TypeRoutes(r)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Rooms.Routes(r)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Reservations.Routes(r)
		})

		r.Route("/stays", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Stays.Routes(r)
		})

		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Stays.ProductRoutes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Invoices.Routes(r)
		})

		r.Route("/import", h.Import.Routes)
		r.Route("/export/invoices", h.Export.Routes)
	})

	return router
}
