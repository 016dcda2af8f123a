package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	memidem "github.com/nephisha/next24-planner-api/internal/adapters/memory/idempotency"
	memrepo "github.com/nephisha/next24-planner-api/internal/adapters/memory/itineraryrepo"
	"github.com/nephisha/next24-planner-api/internal/adapters/travelapi"
	"github.com/nephisha/next24-planner-api/internal/app/itineraries"
	"github.com/nephisha/next24-planner-api/internal/app/suggestions"
	"github.com/nephisha/next24-planner-api/internal/domain"
	"github.com/nephisha/next24-planner-api/internal/platform/logger"
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func newTestHandler(t *testing.T, seed domain.SeedFunc, travel *travelapi.Client) http.Handler {
	t.Helper()
	repo := memrepo.NewRepo()
	clk := &testClock{t: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)}

	svc := itineraries.NewService(repo, clk, seed)
	n := 0
	svc.SetNewItineraryIDForTest(func() domain.ItineraryID {
		n++
		return domain.ItineraryID(fmt.Sprintf("it-%d", n))
	})
	m := 0
	svc.SetNewActivityIDForTest(func() domain.ActivityID {
		m++
		return domain.ActivityID(fmt.Sprintf("act-%d", m))
	})

	return NewRouter(&Server{
		Itineraries: svc,
		Suggestions: suggestions.NewService(repo, nil),
		Travel:      travel,
		Idem:        memidem.NewStore(),
		Log:         logger.NewNop(),
	})
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const createBody = `{
	"title": "Paris Weekend",
	"destination": "Paris, France",
	"startDate": "2025-09-15",
	"endDate": "2025-09-16"
}`

func decodeItinerary(t *testing.T, rec *httptest.ResponseRecorder) itineraryResponse {
	t.Helper()
	var out itineraryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var out errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error envelope: %v\n%s", err, rec.Body.String())
	}
	return out.Error
}

func TestCreateItinerary(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, domain.DemoSeed, nil)

	rec := doJSON(t, h, http.MethodPost, "/itineraries", createBody, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeItinerary(t, rec)
	if got.Itinerary.ID != "it-1" {
		t.Fatalf("unexpected id %q", got.Itinerary.ID)
	}
	if len(got.Itinerary.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got.Itinerary.Days))
	}
	if got.Itinerary.Days[0].Date != "2025-09-15" {
		t.Fatalf("unexpected first day date %q", got.Itinerary.Days[0].Date)
	}
	if got.Itinerary.SelectedDayID != got.Itinerary.Days[0].ID {
		t.Fatalf("selected day not set")
	}
	if len(got.SelectedDayActivities) != 2 || len(got.AllActivities) != 2 {
		t.Fatalf("projections missing: %d / %d", len(got.SelectedDayActivities), len(got.AllActivities))
	}
}

func TestCreateItineraryValidationEnvelope(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, domain.NoSeed, nil)

	rec := doJSON(t, h, http.MethodPost, "/itineraries",
		`{"title":"Trip","destination":"Paris","startDate":"2025-09-18","endDate":"2025-09-15"}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	e := decodeError(t, rec)
	if e.Code != "INVALID_DATE_RANGE" {
		t.Fatalf("expected INVALID_DATE_RANGE, got %q", e.Code)
	}
	if e.RequestID == "" {
		t.Fatalf("expected request id in error envelope")
	}
}

func TestCreateItineraryIdempotentReplay(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, domain.NoSeed, nil)
	hdr := map[string]string{"Idempotency-Key": "key-1"}

	first := doJSON(t, h, http.MethodPost, "/itineraries", createBody, hdr)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}
	second := doJSON(t, h, http.MethodPost, "/itineraries", createBody, hdr)
	if second.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201, got %d", second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replay body differs")
	}

	list := doJSON(t, h, http.MethodGet, "/itineraries", "", nil)
	var out struct {
		Itineraries []itineraryDTO `json:"itineraries"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(out.Itineraries) != 1 {
		t.Fatalf("duplicate request created a second itinerary: %d", len(out.Itineraries))
	}

	// Same key with a different payload is a conflict, not a new create.
	other := strings.Replace(createBody, "Paris Weekend", "Rome Weekend", 1)
	third := doJSON(t, h, http.MethodPost, "/itineraries", other, hdr)
	if third.Code != http.StatusConflict {
		t.Fatalf("expected 409 for key reuse, got %d", third.Code)
	}
	if e := decodeError(t, third); e.Code != "IDEMPOTENCY_KEY_REUSE" {
		t.Fatalf("expected IDEMPOTENCY_KEY_REUSE, got %q", e.Code)
	}
}

func TestGetItineraryNotFound(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, domain.NoSeed, nil)
	rec := doJSON(t, h, http.MethodGet, "/itineraries/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != "ITINERARY_NOT_FOUND" {
		t.Fatalf("expected ITINERARY_NOT_FOUND, got %q", e.Code)
	}
}

func TestPatchItineraryDatesRegenerate(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, domain.NoSeed, nil)
	doJSON(t, h, http.MethodPost, "/itineraries", createBody, nil)

	rec := doJSON(t, h, http.MethodPatch, "/itineraries/it-1",
		`{"startDate":"2025-10-01","endDate":"2025-10-04"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeItinerary(t, rec)
	if len(got.Itinerary.Days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(got.Itinerary.Days))
	}
	if got.Itinerary.Days[0].Date != "2025-10-01" {
		t.Fatalf("unexpected first day %q", got.Itinerary.Days[0].Date)
	}
}

func TestPatchItineraryCollaboratorsNullClears(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, domain.NoSeed, nil)
	doJSON(t, h, http.MethodPost, "/itineraries", createBody, nil)

	rec := doJSON(t, h, http.MethodPatch, "/itineraries/it-1",
		`{"collaborators":["a@example.com"]}`, nil)
	if got := decodeItinerary(t, rec); len(got.Itinerary.Collaborators) != 1 {
		t.Fatalf("collaborators not set")
	}

	rec = doJSON(t, h, http.MethodPatch, "/itineraries/it-1", `{"collaborators":null}`, nil)
	if got := decodeItinerary(t, rec); len(got.Itinerary.Collaborators) != 0 {
		t.Fatalf("null did not clear collaborators")
	}
}

func TestActivityLifecycleOverHTTP(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, domain.NoSeed, nil)
	created := decodeItinerary(t, doJSON(t, h, http.MethodPost, "/itineraries", createBody, nil))
	day1, day2 := created.Itinerary.Days[0].ID, created.Itinerary.Days[1].ID

	addBody := `{
		"name": "Louvre Museum",
		"location": {"lat": 48.8606, "lng": 2.3376, "address": "Rue de Rivoli, 75001 Paris"},
		"duration": 180,
		"category": "attraction"
	}`
	rec := doJSON(t, h, http.MethodPost, "/itineraries/it-1/days/"+day1+"/activities", addBody, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeItinerary(t, rec)
	if len(got.Itinerary.Days[0].Activities) != 1 || got.Itinerary.Days[0].Activities[0].ID != "act-1" {
		t.Fatalf("activity not added: %+v", got.Itinerary.Days[0].Activities)
	}

	rec = doJSON(t, h, http.MethodPost, "/itineraries/it-1/activities/act-1/move",
		fmt.Sprintf(`{"fromDayId":%q,"toDayId":%q,"newIndex":0}`, day1, day2), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("move: expected 200, got %d", rec.Code)
	}
	got = decodeItinerary(t, rec)
	if len(got.Itinerary.Days[1].Activities) != 1 {
		t.Fatalf("move did not land")
	}

	rec = doJSON(t, h, http.MethodDelete, "/itineraries/it-1/days/"+day2+"/activities/act-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d", rec.Code)
	}
	got = decodeItinerary(t, rec)
	if len(got.AllActivities) != 0 {
		t.Fatalf("activity not removed")
	}

	// Add with a bad category surfaces the validation envelope.
	rec = doJSON(t, h, http.MethodPost, "/itineraries/it-1/days/"+day1+"/activities",
		strings.Replace(addBody, "attraction", "museum", 1), nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestSelectDayAndNotes(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, domain.NoSeed, nil)
	created := decodeItinerary(t, doJSON(t, h, http.MethodPost, "/itineraries", createBody, nil))
	day2 := created.Itinerary.Days[1].ID

	rec := doJSON(t, h, http.MethodPut, "/itineraries/it-1/selected-day",
		fmt.Sprintf(`{"dayId":%q}`, day2), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decodeItinerary(t, rec); got.Itinerary.SelectedDayID != day2 {
		t.Fatalf("cursor not moved")
	}

	rec = doJSON(t, h, http.MethodPatch, "/itineraries/it-1/days/"+day2,
		`{"notes":"check opening hours"}`, nil)
	if got := decodeItinerary(t, rec); got.Itinerary.Days[1].Notes != "check opening hours" {
		t.Fatalf("notes not set")
	}

	rec = doJSON(t, h, http.MethodPatch, "/itineraries/it-1/days/"+day2, `{"notes":null}`, nil)
	if got := decodeItinerary(t, rec); got.Itinerary.Days[1].Notes != "" {
		t.Fatalf("null did not clear notes")
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, domain.DemoSeed, nil)
	doJSON(t, h, http.MethodPost, "/itineraries", createBody, nil)

	rec := doJSON(t, h, http.MethodGet, "/itineraries/it-1/suggestions", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out struct {
		Suggestions []activityDTO `json:"suggestions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Suggestions) != 4 {
		t.Fatalf("expected 4 suggestions after demo-seed exclusion, got %d", len(out.Suggestions))
	}

	rec = doJSON(t, h, http.MethodGet, "/itineraries/it-1/suggestions?category=museum", "", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad category, got %d", rec.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, domain.DemoSeed, nil)
	doJSON(t, h, http.MethodPost, "/itineraries", createBody, nil)

	rec := doJSON(t, h, http.MethodGet, "/itineraries/it-1/export?format=ics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "BEGIN:VEVENT") {
		t.Fatalf("not an ics document")
	}

	rec = doJSON(t, h, http.MethodGet, "/itineraries/it-1/export?format=text", "", nil)
	if !strings.Contains(rec.Body.String(), "Day 1 - 2025-09-15") {
		t.Fatalf("not a text export:\n%s", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/itineraries/it-1/export?format=pdf", "", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown format, got %d", rec.Code)
	}
}

func TestTravelProxyUnconfigured(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, domain.NoSeed, nil)
	rec := doJSON(t, h, http.MethodGet, "/destinations/featured", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != "UPSTREAM_UNAVAILABLE" {
		t.Fatalf("expected UPSTREAM_UNAVAILABLE, got %q", e.Code)
	}
}

func TestTravelProxy(t *testing.T) {
	t.Parallel()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/destinations/featured":
			_, _ = w.Write([]byte(`{"destinations":[{"id":"d1","name":"Paris","slug":"paris"}]}`))
		case "/api/v1/flights/search":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"provider timeout"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	h := newTestHandler(t, domain.NoSeed, travelapi.New(upstream.URL, nil))

	rec := doJSON(t, h, http.MethodGet, "/destinations/featured", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Destinations []travelapi.Destination `json:"destinations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Destinations) != 1 || out.Destinations[0].Name != "Paris" {
		t.Fatalf("unexpected payload: %+v", out)
	}

	rec = doJSON(t, h, http.MethodPost, "/search/flights",
		`{"origin":"SYD","destination":"CDG","departureDate":"2025-09-15","adults":1}`, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != "UPSTREAM_ERROR" || e.Message != "provider timeout" {
		t.Fatalf("unexpected envelope: %+v", e)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t, domain.NoSeed, nil)
	rec := doJSON(t, h, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
