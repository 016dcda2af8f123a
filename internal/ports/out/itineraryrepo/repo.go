package itineraryrepo

import (
	"context"

	"github.com/nephisha/next24-planner-api/internal/domain"
)

// Repository provides access to stored itineraries.
//
// List results are ordered deterministically: CreatedAt ascending, then ID.
type Repository interface {
	Create(ctx context.Context, it domain.Itinerary) error
	Save(ctx context.Context, it domain.Itinerary) error

	GetByID(ctx context.Context, id domain.ItineraryID) (domain.Itinerary, error)
	List(ctx context.Context) ([]domain.Itinerary, error)

	Delete(ctx context.Context, id domain.ItineraryID) error
}
