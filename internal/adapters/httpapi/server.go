package httpapi

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nephisha/next24-planner-api/internal/adapters/travelapi"
	"github.com/nephisha/next24-planner-api/internal/app/itineraries"
	"github.com/nephisha/next24-planner-api/internal/app/suggestions"
	"github.com/nephisha/next24-planner-api/internal/domain"
	"github.com/nephisha/next24-planner-api/internal/platform/logger"
	"github.com/nephisha/next24-planner-api/internal/platform/metrics"
	"github.com/nephisha/next24-planner-api/internal/ports/out/idempotency"
)

const maxBodyBytes = 1 << 20

// Server holds the HTTP handlers and their dependencies. Travel may be nil
// when no upstream travel API is configured; Metrics may be nil in tests.
type Server struct {
	Itineraries *itineraries.Service
	Suggestions *suggestions.Service
	Travel      *travelapi.Client
	Idem        idempotency.Store
	Log         logger.Logger
	Metrics     *metrics.Metrics
}

func (s *Server) countMutation(op string) {
	if s.Metrics != nil {
		s.Metrics.ActivityMutations.WithLabelValues(op).Inc()
	}
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ae *itineraries.Error
	if errors.As(err, &ae) {
		writeError(w, r, ae.Status, ae.Code, ae.Message, ae.Details)
		return
	}
	s.Log.Error("request failed", "operation", op, "error", err)
	if s.Metrics != nil {
		s.Metrics.ErrorsCount.WithLabelValues(op).Inc()
	}
	writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON", nil)
		return false
	}
	return true
}

// --- itineraries ---

func (s *Server) handleCreateItinerary(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "could not read request body", nil)
		return
	}

	// Idempotency handling:
	// - replay if same key+route+bodyHash
	// - reject if same key+route with a different bodyHash (409)
	key := idempotency.Key(r.Header.Get("Idempotency-Key"))
	var fp idempotency.Fingerprint
	if key != "" && s.Idem != nil {
		sum := sha256.Sum256(raw)
		bodyHash := hex.EncodeToString(sum[:])
		metaFP := idempotency.Fingerprint{
			Key:    key,
			Method: http.MethodPost,
			Route:  "/itineraries",
		}
		if meta, ok, err := s.Idem.Get(r.Context(), metaFP); err == nil && ok {
			if string(meta.Body) != bodyHash {
				writeError(w, r, http.StatusConflict, "IDEMPOTENCY_KEY_REUSE", "idempotency key reuse with different payload", nil)
				return
			}
		} else if err == nil {
			_ = s.Idem.Put(r.Context(), metaFP, idempotency.Record{
				ContentType: "text/plain",
				Body:        []byte(bodyHash),
				CreatedAt:   time.Now().UTC(),
			})
		}

		fp = metaFP
		fp.BodyHash = bodyHash
		if rec, ok, err := s.Idem.Get(r.Context(), fp); err == nil && ok {
			w.Header().Set("Content-Type", rec.ContentType)
			w.WriteHeader(rec.StatusCode)
			_, _ = w.Write(rec.Body)
			return
		}
	}

	var body createItineraryRequest
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON", nil)
		return
	}

	it, err := s.Itineraries.Create(r.Context(), itineraries.CreateItineraryInput{
		Title:       body.Title,
		Destination: body.Destination,
		StartDate:   body.StartDate.Time,
		EndDate:     body.EndDate.Time,
		IsPublic:    body.IsPublic,
	})
	if err != nil {
		s.writeServiceError(w, r, "create_itinerary", err)
		return
	}
	if s.Metrics != nil {
		s.Metrics.ItinerariesCreated.Inc()
	}

	buf, err := json.Marshal(itineraryResponseFromDomain(it))
	if err != nil {
		s.writeServiceError(w, r, "create_itinerary", err)
		return
	}
	if key != "" && s.Idem != nil {
		// Store the exact bytes we are about to send so a replay is
		// byte-identical.
		_ = s.Idem.Put(r.Context(), fp, idempotency.Record{
			StatusCode:  http.StatusCreated,
			ContentType: "application/json",
			Body:        buf,
			CreatedAt:   it.CreatedAt,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(buf)
}

func (s *Server) handleListItineraries(w http.ResponseWriter, r *http.Request) {
	its, err := s.Itineraries.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "list_itineraries", err)
		return
	}
	out := make([]itineraryDTO, 0, len(its))
	for _, it := range its {
		out = append(out, itineraryFromDomain(it))
	}
	writeJSON(w, http.StatusOK, map[string]any{"itineraries": out})
}

func (s *Server) handleGetItinerary(w http.ResponseWriter, r *http.Request) {
	id := domain.ItineraryID(chi.URLParam(r, "itineraryId"))
	it, err := s.Itineraries.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, "get_itinerary", err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryResponseFromDomain(it))
}

func (s *Server) handleUpdateItinerary(w http.ResponseWriter, r *http.Request) {
	id := domain.ItineraryID(chi.URLParam(r, "itineraryId"))
	var body updateItineraryRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	it, err := s.Itineraries.Update(r.Context(), id, updateInputFromRequest(body))
	if err != nil {
		s.writeServiceError(w, r, "update_itinerary", err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryResponseFromDomain(it))
}

func (s *Server) handleDeleteItinerary(w http.ResponseWriter, r *http.Request) {
	id := domain.ItineraryID(chi.URLParam(r, "itineraryId"))
	if err := s.Itineraries.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, "delete_itinerary", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectDay(w http.ResponseWriter, r *http.Request) {
	id := domain.ItineraryID(chi.URLParam(r, "itineraryId"))
	var body selectDayRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	it, err := s.Itineraries.SelectDay(r.Context(), id, domain.DayID(body.DayID))
	if err != nil {
		s.writeServiceError(w, r, "select_day", err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryResponseFromDomain(it))
}

func (s *Server) handleUpdateDayNotes(w http.ResponseWriter, r *http.Request) {
	id := domain.ItineraryID(chi.URLParam(r, "itineraryId"))
	dayID := domain.DayID(chi.URLParam(r, "dayId"))
	var body updateDayNotesRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	notes := itineraries.Optional[string]{}
	if body.Notes.IsSpecified() {
		if body.Notes.IsNull() {
			notes = itineraries.Null[string]()
		} else if v, err := body.Notes.Get(); err == nil {
			notes = itineraries.Some(v)
		}
	}

	it, err := s.Itineraries.UpdateDayNotes(r.Context(), id, dayID, notes)
	if err != nil {
		s.writeServiceError(w, r, "update_day_notes", err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryResponseFromDomain(it))
}

// --- activities ---

func (s *Server) handleAddActivity(w http.ResponseWriter, r *http.Request) {
	id := domain.ItineraryID(chi.URLParam(r, "itineraryId"))
	dayID := domain.DayID(chi.URLParam(r, "dayId"))
	var body addActivityRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	it, err := s.Itineraries.AddActivity(r.Context(), id, dayID, activityInputFromRequest(body))
	if err != nil {
		s.writeServiceError(w, r, "add_activity", err)
		return
	}
	s.countMutation("add")
	writeJSON(w, http.StatusCreated, itineraryResponseFromDomain(it))
}

func (s *Server) handleRemoveActivity(w http.ResponseWriter, r *http.Request) {
	id := domain.ItineraryID(chi.URLParam(r, "itineraryId"))
	dayID := domain.DayID(chi.URLParam(r, "dayId"))
	activityID := domain.ActivityID(chi.URLParam(r, "activityId"))
	it, err := s.Itineraries.RemoveActivity(r.Context(), id, dayID, activityID)
	if err != nil {
		s.writeServiceError(w, r, "remove_activity", err)
		return
	}
	s.countMutation("remove")
	writeJSON(w, http.StatusOK, itineraryResponseFromDomain(it))
}

func (s *Server) handleMoveActivity(w http.ResponseWriter, r *http.Request) {
	id := domain.ItineraryID(chi.URLParam(r, "itineraryId"))
	activityID := domain.ActivityID(chi.URLParam(r, "activityId"))
	var body moveActivityRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	it, err := s.Itineraries.MoveActivity(r.Context(), id, itineraries.MoveActivityInput{
		FromDayID:  domain.DayID(body.FromDayID),
		ToDayID:    domain.DayID(body.ToDayID),
		ActivityID: activityID,
		NewIndex:   body.NewIndex,
	})
	if err != nil {
		s.writeServiceError(w, r, "move_activity", err)
		return
	}
	s.countMutation("move")
	writeJSON(w, http.StatusOK, itineraryResponseFromDomain(it))
}

func (s *Server) handleAllActivities(w http.ResponseWriter, r *http.Request) {
	id := domain.ItineraryID(chi.URLParam(r, "itineraryId"))
	it, err := s.Itineraries.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, "all_activities", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"activities": activitiesFromDomain(domain.AllActivities(it)),
	})
}

// --- suggestions and export ---

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	id := domain.ItineraryID(chi.URLParam(r, "itineraryId"))
	category := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")

	if category != "" && !domain.Category(category).IsValid() {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid category",
			map[string]any{"category": "must be one of attraction, restaurant, hotel, transport, activity"})
		return
	}

	out, err := s.Suggestions.ForItinerary(r.Context(), id, category, query)
	if err != nil {
		s.writeServiceError(w, r, "suggestions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": activitiesFromDomain(out),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := domain.ItineraryID(chi.URLParam(r, "itineraryId"))
	it, err := s.Itineraries.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, "export", err)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, itineraries.ExportText(it))
	case "ics":
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="itinerary.ics"`)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, itineraries.ExportICS(it))
	default:
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid format",
			map[string]any{"format": "must be ics or text"})
	}
}

// --- travel proxy ---

func (s *Server) travelReady(w http.ResponseWriter, r *http.Request) bool {
	if s.Travel == nil {
		writeError(w, r, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "travel search is not configured", nil)
		return false
	}
	return true
}

func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ae *travelapi.APIError
	if errors.As(err, &ae) {
		writeError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", ae.Message,
			map[string]any{"upstreamStatus": ae.StatusCode})
		return
	}
	s.Log.Error("upstream call failed", "operation", op, "error", err)
	if s.Metrics != nil {
		s.Metrics.ErrorsCount.WithLabelValues(op).Inc()
	}
	writeError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "upstream request failed", nil)
}

func limitParam(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func (s *Server) handleFeaturedDestinations(w http.ResponseWriter, r *http.Request) {
	if !s.travelReady(w, r) {
		return
	}
	out, err := s.Travel.FeaturedDestinations(r.Context(), limitParam(r, 6))
	if err != nil {
		s.writeUpstreamError(w, r, "featured_destinations", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"destinations": out})
}

func (s *Server) handleFeaturedGuides(w http.ResponseWriter, r *http.Request) {
	if !s.travelReady(w, r) {
		return
	}
	out, err := s.Travel.FeaturedGuides(r.Context(), limitParam(r, 6))
	if err != nil {
		s.writeUpstreamError(w, r, "featured_guides", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guides": out})
}

func (s *Server) handleSocialFeed(w http.ResponseWriter, r *http.Request) {
	if !s.travelReady(w, r) {
		return
	}
	feedType := chi.URLParam(r, "feedType")
	out, err := s.Travel.SocialFeed(r.Context(), feedType, limitParam(r, 12))
	if err != nil {
		s.writeUpstreamError(w, r, "social_feed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": out})
}

func (s *Server) handleSearchFlights(w http.ResponseWriter, r *http.Request) {
	if !s.travelReady(w, r) {
		return
	}
	var body travelapi.FlightSearchRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	out, err := s.Travel.SearchFlights(r.Context(), body)
	if err != nil {
		s.writeUpstreamError(w, r, "search_flights", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"flights": out})
}

func (s *Server) handleSearchHotels(w http.ResponseWriter, r *http.Request) {
	if !s.travelReady(w, r) {
		return
	}
	var body travelapi.HotelSearchRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	out, err := s.Travel.SearchHotels(r.Context(), body)
	if err != nil {
		s.writeUpstreamError(w, r, "search_hotels", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotels": out})
}
