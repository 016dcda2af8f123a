package suggestions

import (
	"context"
	"errors"
	"testing"
	"time"

	memrepo "github.com/nephisha/next24-planner-api/internal/adapters/memory/itineraryrepo"
	"github.com/nephisha/next24-planner-api/internal/app/itineraries"
	"github.com/nephisha/next24-planner-api/internal/domain"
)

func seedParisTrip(t *testing.T, repo *memrepo.Repo, seed domain.SeedFunc) domain.Itinerary {
	t.Helper()
	it := domain.Itinerary{
		ID:          "it-1",
		Title:       "Paris Weekend",
		Destination: "Paris, France",
		StartDate:   time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC),
	}
	it = domain.RegenerateDays(it, seed, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	if err := repo.Create(context.Background(), it); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return it
}

func idsOf(as []domain.Activity) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, string(a.ID))
	}
	return out
}

func TestForItineraryReturnsFullCatalogForEmptyTrip(t *testing.T) {
	t.Parallel()
	repo := memrepo.NewRepo()
	seedParisTrip(t, repo, domain.NoSeed)
	svc := NewService(repo, nil)

	got, err := svc.ForItinerary(context.Background(), "it-1", "", "")
	if err != nil {
		t.Fatalf("ForItinerary: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("expected 6 suggestions, got %d: %v", len(got), idsOf(got))
	}
}

func TestForItineraryExcludesPlannedActivities(t *testing.T) {
	t.Parallel()
	repo := memrepo.NewRepo()
	// Demo seed plants Eiffel Tower and Café de Flore; their catalog twins
	// carry different ids but the same name and coordinates.
	seedParisTrip(t, repo, domain.DemoSeed)
	svc := NewService(repo, nil)

	got, err := svc.ForItinerary(context.Background(), "it-1", "", "")
	if err != nil {
		t.Fatalf("ForItinerary: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 suggestions after exclusion, got %d: %v", len(got), idsOf(got))
	}
	for _, a := range got {
		if a.ID == "eiffel-tower" || a.ID == "cafe-de-flore" {
			t.Fatalf("planned activity %q still suggested", a.ID)
		}
	}
}

func TestForItineraryCategoryFilter(t *testing.T) {
	t.Parallel()
	repo := memrepo.NewRepo()
	seedParisTrip(t, repo, domain.NoSeed)
	svc := NewService(repo, nil)

	got, err := svc.ForItinerary(context.Background(), "it-1", "restaurant", "")
	if err != nil {
		t.Fatalf("ForItinerary: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 restaurants, got %v", idsOf(got))
	}
	for _, a := range got {
		if a.Category != domain.CategoryRestaurant {
			t.Fatalf("category filter leaked %q", a.ID)
		}
	}
}

func TestForItineraryQueryFilter(t *testing.T) {
	t.Parallel()
	repo := memrepo.NewRepo()
	seedParisTrip(t, repo, domain.NoSeed)
	svc := NewService(repo, nil)

	got, err := svc.ForItinerary(context.Background(), "it-1", "", "  MUSEUM ")
	if err != nil {
		t.Fatalf("ForItinerary: %v", err)
	}
	if len(got) != 1 || got[0].ID != "louvre-museum" {
		t.Fatalf("expected the Louvre only, got %v", idsOf(got))
	}
}

func TestForItineraryUnknownDestination(t *testing.T) {
	t.Parallel()
	repo := memrepo.NewRepo()
	it := seedParisTrip(t, repo, domain.NoSeed)
	it.Destination = "Atlantis"
	if err := repo.Save(context.Background(), it); err != nil {
		t.Fatalf("Save: %v", err)
	}
	svc := NewService(repo, nil)

	got, err := svc.ForItinerary(context.Background(), "it-1", "", "")
	if err != nil {
		t.Fatalf("ForItinerary: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", idsOf(got))
	}
}

func TestForItineraryUnknownItinerary(t *testing.T) {
	t.Parallel()
	svc := NewService(memrepo.NewRepo(), nil)
	_, err := svc.ForItinerary(context.Background(), "nope", "", "")
	var ae *itineraries.Error
	if !errors.As(err, &ae) || ae.Status != 404 {
		t.Fatalf("expected 404 error, got %v", err)
	}
}
