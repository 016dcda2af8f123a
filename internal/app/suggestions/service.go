package suggestions

import (
	"context"
	"errors"
	"strings"

	"github.com/nephisha/next24-planner-api/internal/app/itineraries"
	"github.com/nephisha/next24-planner-api/internal/domain"
	"github.com/nephisha/next24-planner-api/internal/ports/out/itineraryrepo"
)

// Service serves activity suggestions for an itinerary's destination,
// excluding anything already planned. Matching is by the domain key
// (normalized name + coordinates), not by id: a suggestion has not been
// assigned an id until the moment it is added.
type Service struct {
	repo    itineraryrepo.Repository
	catalog Catalog
}

func NewService(repo itineraryrepo.Repository, catalog Catalog) *Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Service{repo: repo, catalog: catalog}
}

// ForItinerary returns suggestions for the itinerary's destination.
// category filters on the closed category set when non-empty; query filters
// on a case-insensitive substring of name or description.
func (s *Service) ForItinerary(ctx context.Context, id domain.ItineraryID, category, query string) ([]domain.Activity, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, itineraryrepo.ErrNotFound) {
			return nil, &itineraries.Error{Status: 404, Code: "ITINERARY_NOT_FOUND", Message: "itinerary not found"}
		}
		return nil, err
	}

	existing := make(map[string]struct{})
	for _, a := range domain.AllActivities(it) {
		existing[domain.ActivityKey(a)] = struct{}{}
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := []domain.Activity{}
	for _, a := range s.catalog[it.Destination] {
		if _, dup := existing[domain.ActivityKey(a)]; dup {
			continue
		}
		if category != "" && a.Category != domain.Category(category) {
			continue
		}
		if query != "" && !matchesQuery(a, query) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func matchesQuery(a domain.Activity, q string) bool {
	return strings.Contains(strings.ToLower(a.Name), q) ||
		strings.Contains(strings.ToLower(a.Description), q)
}
