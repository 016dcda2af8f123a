package itineraries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nephisha/next24-planner-api/internal/domain"
	"github.com/nephisha/next24-planner-api/internal/ports/out/clock"
	"github.com/nephisha/next24-planner-api/internal/ports/out/itineraryrepo"
)

type Service struct {
	repo itineraryrepo.Repository
	clk  clock.Clock
	seed domain.SeedFunc

	newItineraryID func() domain.ItineraryID
	newActivityID  func() domain.ActivityID
}

// NewService constructs the itinerary application service. seed controls the
// default content placed on freshly generated days; pass domain.NoSeed (or
// nil) for empty days, domain.DemoSeed for the demonstration content.
func NewService(repo itineraryrepo.Repository, clk clock.Clock, seed domain.SeedFunc) *Service {
	if seed == nil {
		seed = domain.NoSeed
	}
	return &Service{
		repo: repo,
		clk:  clk,
		seed: seed,
		newItineraryID: func() domain.ItineraryID {
			return domain.ItineraryID(uuid.NewString())
		},
		newActivityID: func() domain.ActivityID {
			return domain.ActivityID(uuid.NewString())
		},
	}
}

// SetNewItineraryIDForTest overrides itinerary ID generation for deterministic tests.
// It should not be used in production code.
func (s *Service) SetNewItineraryIDForTest(fn func() domain.ItineraryID) {
	if fn != nil {
		s.newItineraryID = fn
	}
}

// SetNewActivityIDForTest overrides activity ID generation for deterministic tests.
func (s *Service) SetNewActivityIDForTest(fn func() domain.ActivityID) {
	if fn != nil {
		s.newActivityID = fn
	}
}

func (s *Service) Create(ctx context.Context, in CreateItineraryInput) (domain.Itinerary, error) {
	title := domain.NormalizeName(in.Title)
	if title == "" {
		return domain.Itinerary{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid title", Details: map[string]any{"title": "must be non-empty"}}
	}
	dest := domain.NormalizeName(in.Destination)
	if dest == "" {
		return domain.Itinerary{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid destination", Details: map[string]any{"destination": "must be non-empty"}}
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return domain.Itinerary{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid dates", Details: map[string]any{"startDate": "startDate and endDate are required"}}
	}
	if err := validDateRange(in.StartDate, in.EndDate); err != nil {
		return domain.Itinerary{}, err
	}

	now := s.clk.Now()
	it := domain.Itinerary{
		ID:          s.newItineraryID(),
		Title:       title,
		Destination: dest,
		StartDate:   domain.DateOnly(in.StartDate),
		EndDate:     domain.DateOnly(in.EndDate),
		IsPublic:    in.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	it = domain.RegenerateDays(it, s.seed, now)

	if err := s.repo.Create(ctx, it); err != nil {
		if errors.Is(err, itineraryrepo.ErrAlreadyExists) {
			// Extremely unlikely (UUID collision); treat as conflict.
			return domain.Itinerary{}, &Error{Status: 409, Code: "ITINERARY_ID_CONFLICT", Message: "itinerary id conflict"}
		}
		return domain.Itinerary{}, err
	}
	return it, nil
}

func (s *Service) Get(ctx context.Context, id domain.ItineraryID) (domain.Itinerary, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, itineraryrepo.ErrNotFound) {
			return domain.Itinerary{}, errNotFound()
		}
		return domain.Itinerary{}, err
	}
	return it, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Itinerary, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id domain.ItineraryID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, itineraryrepo.ErrNotFound) {
			return errNotFound()
		}
		return err
	}
	return nil
}

// Update shallow-merges the specified fields into the aggregate. A change to
// either date regenerates the whole day list; that wiring is explicit here
// rather than left to callers. Inverted ranges are rejected before any day is
// touched.
func (s *Service) Update(ctx context.Context, id domain.ItineraryID, in UpdateItineraryInput) (domain.Itinerary, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, itineraryrepo.ErrNotFound) {
			return domain.Itinerary{}, errNotFound()
		}
		return domain.Itinerary{}, err
	}

	if in.Title.IsSpecified() {
		if in.Title.IsNull() {
			return domain.Itinerary{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid title", Details: map[string]any{"title": "cannot be null"}}
		}
		title := domain.NormalizeName(in.Title.Value())
		if title == "" {
			return domain.Itinerary{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid title", Details: map[string]any{"title": "must be non-empty"}}
		}
		it.Title = title
	}

	if in.Destination.IsSpecified() {
		if in.Destination.IsNull() {
			return domain.Itinerary{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid destination", Details: map[string]any{"destination": "cannot be null"}}
		}
		dest := domain.NormalizeName(in.Destination.Value())
		if dest == "" {
			return domain.Itinerary{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid destination", Details: map[string]any{"destination": "must be non-empty"}}
		}
		it.Destination = dest
	}

	datesChanged := false
	if in.StartDate.IsSpecified() {
		if in.StartDate.IsNull() {
			return domain.Itinerary{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid startDate", Details: map[string]any{"startDate": "cannot be null"}}
		}
		d := domain.DateOnly(in.StartDate.Value())
		if !d.Equal(it.StartDate) {
			it.StartDate = d
			datesChanged = true
		}
	}
	if in.EndDate.IsSpecified() {
		if in.EndDate.IsNull() {
			return domain.Itinerary{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid endDate", Details: map[string]any{"endDate": "cannot be null"}}
		}
		d := domain.DateOnly(in.EndDate.Value())
		if !d.Equal(it.EndDate) {
			it.EndDate = d
			datesChanged = true
		}
	}

	if in.IsPublic.IsSpecified() {
		if in.IsPublic.IsNull() {
			return domain.Itinerary{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid isPublic", Details: map[string]any{"isPublic": "cannot be null"}}
		}
		it.IsPublic = in.IsPublic.Value()
	}

	if in.Collaborators.IsSpecified() {
		if in.Collaborators.IsNull() {
			it.Collaborators = nil
		} else {
			it.Collaborators = append([]string(nil), in.Collaborators.Value()...)
		}
	}

	now := s.clk.Now()
	if datesChanged {
		if err := validDateRange(it.StartDate, it.EndDate); err != nil {
			return domain.Itinerary{}, err
		}
		// Destructive by contract: activities on days outside the new
		// range are discarded with the rest of the old day list.
		it = domain.RegenerateDays(it, s.seed, now)
	} else {
		it.UpdatedAt = now
	}

	if err := s.repo.Save(ctx, it); err != nil {
		return domain.Itinerary{}, err
	}
	return it, nil
}

// SelectDay moves the view cursor. Cursor moves are not edits: UpdatedAt is
// left alone.
func (s *Service) SelectDay(ctx context.Context, id domain.ItineraryID, dayID domain.DayID) (domain.Itinerary, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, itineraryrepo.ErrNotFound) {
			return domain.Itinerary{}, errNotFound()
		}
		return domain.Itinerary{}, err
	}
	if _, ok := it.Day(dayID); !ok {
		return domain.Itinerary{}, errDayNotFound(dayID)
	}
	it.SelectedDayID = dayID
	if err := s.repo.Save(ctx, it); err != nil {
		return domain.Itinerary{}, err
	}
	return it, nil
}

// UpdateDayNotes sets or clears (null) the free-text notes of one day.
func (s *Service) UpdateDayNotes(ctx context.Context, id domain.ItineraryID, dayID domain.DayID, notes Optional[string]) (domain.Itinerary, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, itineraryrepo.ErrNotFound) {
			return domain.Itinerary{}, errNotFound()
		}
		return domain.Itinerary{}, err
	}
	if !notes.IsSpecified() {
		return it, nil
	}
	found := false
	for i := range it.Days {
		if it.Days[i].ID == dayID {
			if notes.IsNull() {
				it.Days[i].Notes = ""
			} else {
				it.Days[i].Notes = notes.Value()
			}
			found = true
			break
		}
	}
	if !found {
		return domain.Itinerary{}, errDayNotFound(dayID)
	}
	it.UpdatedAt = s.clk.Now()
	if err := s.repo.Save(ctx, it); err != nil {
		return domain.Itinerary{}, err
	}
	return it, nil
}

func (s *Service) AddActivity(ctx context.Context, id domain.ItineraryID, dayID domain.DayID, in NewActivityInput) (domain.Itinerary, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, itineraryrepo.ErrNotFound) {
			return domain.Itinerary{}, errNotFound()
		}
		return domain.Itinerary{}, err
	}

	a, aerr := s.activityFromInput(in)
	if aerr != nil {
		return domain.Itinerary{}, aerr
	}

	out, err := domain.AddActivity(it, dayID, a, s.clk.Now())
	if err != nil {
		if errors.Is(err, domain.ErrDayNotFound) {
			return domain.Itinerary{}, errDayNotFound(dayID)
		}
		return domain.Itinerary{}, err
	}
	if err := s.repo.Save(ctx, out); err != nil {
		return domain.Itinerary{}, err
	}
	return out, nil
}

// RemoveActivity degrades to a no-op when the day or activity is gone; a
// stale id from a double-click or re-render is a normal UI path.
func (s *Service) RemoveActivity(ctx context.Context, id domain.ItineraryID, dayID domain.DayID, activityID domain.ActivityID) (domain.Itinerary, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, itineraryrepo.ErrNotFound) {
			return domain.Itinerary{}, errNotFound()
		}
		return domain.Itinerary{}, err
	}
	out := domain.RemoveActivity(it, dayID, activityID, s.clk.Now())
	if err := s.repo.Save(ctx, out); err != nil {
		return domain.Itinerary{}, err
	}
	return out, nil
}

// MoveActivity relocates an activity between (or within) days. A source miss
// returns the aggregate unchanged, UpdatedAt included.
func (s *Service) MoveActivity(ctx context.Context, id domain.ItineraryID, in MoveActivityInput) (domain.Itinerary, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, itineraryrepo.ErrNotFound) {
			return domain.Itinerary{}, errNotFound()
		}
		return domain.Itinerary{}, err
	}
	out := domain.MoveActivity(it, in.FromDayID, in.ToDayID, in.ActivityID, in.NewIndex, s.clk.Now())
	if err := s.repo.Save(ctx, out); err != nil {
		return domain.Itinerary{}, err
	}
	return out, nil
}

func (s *Service) activityFromInput(in NewActivityInput) (domain.Activity, *Error) {
	name := domain.NormalizeName(in.Name)
	if name == "" {
		return domain.Activity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid activity name", Details: map[string]any{"name": "must be non-empty"}}
	}
	if in.DurationMinutes < 0 {
		return domain.Activity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid duration", Details: map[string]any{"duration": "must be >= 0"}}
	}
	cat := domain.Category(in.Category)
	if !cat.IsValid() {
		return domain.Activity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid category", Details: map[string]any{"category": "must be one of attraction, restaurant, hotel, transport, activity"}}
	}
	if in.Address == "" {
		return domain.Activity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid location", Details: map[string]any{"location": "address is required"}}
	}

	id := domain.ActivityID(in.ID)
	if id == "" {
		id = s.newActivityID()
	}
	var rating *float64
	if in.Rating != nil {
		v := *in.Rating
		rating = &v
	}
	return domain.Activity{
		ID:          id,
		Name:        name,
		Description: in.Description,
		Location: domain.Location{
			Latitude:  in.Latitude,
			Longitude: in.Longitude,
			Address:   in.Address,
		},
		DurationMinutes: in.DurationMinutes,
		Category:        cat,
		Rating:          rating,
		Price:           in.Price,
		Image:           in.Image,
		OpeningHours:    in.OpeningHours,
		Website:         in.Website,
	}, nil
}

func validDateRange(start, end time.Time) *Error {
	if end.Before(start) {
		return &Error{Status: 422, Code: "INVALID_DATE_RANGE", Message: "endDate must be on or after startDate", Details: map[string]any{"endDate": "must be on or after startDate"}}
	}
	return nil
}

func errNotFound() *Error {
	return &Error{Status: 404, Code: "ITINERARY_NOT_FOUND", Message: "itinerary not found"}
}

func errDayNotFound(dayID domain.DayID) *Error {
	return &Error{Status: 404, Code: "DAY_NOT_FOUND", Message: "day not found", Details: map[string]any{"dayId": string(dayID)}}
}
