package itineraryrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/nephisha/next24-planner-api/internal/domain"
	"github.com/nephisha/next24-planner-api/internal/ports/out/itineraryrepo"
)

// Repo is an in-memory implementation of itineraryrepo.Repository.
// It is safe for concurrent use. Values are deep-cloned on every read and
// write so callers can never mutate stored state through a returned aggregate.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.ItineraryID]domain.Itinerary
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.ItineraryID]domain.Itinerary),
	}
}

func (r *Repo) Create(ctx context.Context, it domain.Itinerary) error {
	_ = ctx
	if it.ID == "" {
		return itineraryrepo.ErrAlreadyExists // treat empty ID as invalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[it.ID]; ok {
		return itineraryrepo.ErrAlreadyExists
	}
	r.byID[it.ID] = it.Clone()
	return nil
}

func (r *Repo) Save(ctx context.Context, it domain.Itinerary) error {
	_ = ctx
	if it.ID == "" {
		return itineraryrepo.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[it.ID] = it.Clone()
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ItineraryID) (domain.Itinerary, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.byID[id]
	if !ok {
		return domain.Itinerary{}, itineraryrepo.ErrNotFound
	}
	return it.Clone(), nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Itinerary, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Itinerary, 0, len(r.byID))
	for _, it := range r.byID {
		out = append(out, it.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return string(a.ID) < string(b.ID)
	})
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.ItineraryID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return itineraryrepo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
