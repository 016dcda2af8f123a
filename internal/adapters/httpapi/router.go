package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all routes and middleware.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/itineraries", func(r chi.Router) {
		r.Post("/", s.handleCreateItinerary)
		r.Get("/", s.handleListItineraries)

		r.Route("/{itineraryId}", func(r chi.Router) {
			r.Get("/", s.handleGetItinerary)
			r.Patch("/", s.handleUpdateItinerary)
			r.Delete("/", s.handleDeleteItinerary)

			r.Put("/selected-day", s.handleSelectDay)
			r.Get("/activities", s.handleAllActivities)
			r.Get("/suggestions", s.handleSuggestions)
			r.Get("/export", s.handleExport)

			r.Patch("/days/{dayId}", s.handleUpdateDayNotes)
			r.Post("/days/{dayId}/activities", s.handleAddActivity)
			r.Delete("/days/{dayId}/activities/{activityId}", s.handleRemoveActivity)

			r.Post("/activities/{activityId}/move", s.handleMoveActivity)
		})
	})

	r.Get("/destinations/featured", s.handleFeaturedDestinations)
	r.Get("/guides/featured", s.handleFeaturedGuides)
	r.Get("/social/feed/{feedType}", s.handleSocialFeed)
	r.Post("/search/flights", s.handleSearchFlights)
	r.Post("/search/hotels", s.handleSearchHotels)

	return r
}

// observe logs each request and records its duration.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)
		if s.Metrics != nil {
			s.Metrics.RequestDuration.Observe(elapsed.Seconds())
		}
		if s.Log != nil {
			s.Log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", elapsed.String(),
				"requestId", middleware.GetReqID(r.Context()),
			)
		}
	})
}
