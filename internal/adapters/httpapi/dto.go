package httpapi

import (
	"time"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/nephisha/next24-planner-api/internal/app/itineraries"
	"github.com/nephisha/next24-planner-api/internal/domain"
)

const dateLayout = "2006-01-02"

type locationDTO struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type activityDTO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Location    locationDTO `json:"location"`

	// Duration is in minutes.
	Duration int    `json:"duration"`
	Category string `json:"category"`

	Rating       *float64 `json:"rating,omitempty"`
	Price        string   `json:"price,omitempty"`
	Image        string   `json:"image,omitempty"`
	OpeningHours string   `json:"openingHours,omitempty"`
	Website      string   `json:"website,omitempty"`
}

type dayDTO struct {
	ID         string        `json:"id"`
	Date       string        `json:"date"`
	Activities []activityDTO `json:"activities"`
	Notes      string        `json:"notes,omitempty"`
}

type itineraryDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Destination string `json:"destination"`

	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	Days []dayDTO `json:"days"`

	Collaborators []string `json:"collaborators,omitempty"`
	IsPublic      bool     `json:"isPublic"`

	SelectedDayID string `json:"selectedDayId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// itineraryResponse carries the aggregate plus the read-only projections the
// timeline, map and suggestion panes consume.
type itineraryResponse struct {
	Itinerary             itineraryDTO  `json:"itinerary"`
	SelectedDayActivities []activityDTO `json:"selectedDayActivities"`
	AllActivities         []activityDTO `json:"allActivities"`
}

type createItineraryRequest struct {
	Title       string             `json:"title"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"startDate"`
	EndDate     openapi_types.Date `json:"endDate"`
	IsPublic    bool               `json:"isPublic"`
}

// updateItineraryRequest is the tri-state PATCH body. Pointer fields are
// optional-but-not-null; collaborators may be null to clear the set.
type updateItineraryRequest struct {
	Title       *string             `json:"title"`
	Destination *string             `json:"destination"`
	StartDate   *openapi_types.Date `json:"startDate"`
	EndDate     *openapi_types.Date `json:"endDate"`
	IsPublic    *bool               `json:"isPublic"`

	Collaborators nullable.Nullable[[]string] `json:"collaborators"`
}

type selectDayRequest struct {
	DayID string `json:"dayId"`
}

type updateDayNotesRequest struct {
	Notes nullable.Nullable[string] `json:"notes"`
}

type addActivityRequest struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Location    locationDTO `json:"location"`

	Duration int    `json:"duration"`
	Category string `json:"category"`

	Rating       *float64 `json:"rating,omitempty"`
	Price        string   `json:"price,omitempty"`
	Image        string   `json:"image,omitempty"`
	OpeningHours string   `json:"openingHours,omitempty"`
	Website      string   `json:"website,omitempty"`
}

type moveActivityRequest struct {
	FromDayID string `json:"fromDayId"`
	ToDayID   string `json:"toDayId"`
	NewIndex  int    `json:"newIndex"`
}

func itineraryResponseFromDomain(it domain.Itinerary) itineraryResponse {
	return itineraryResponse{
		Itinerary:             itineraryFromDomain(it),
		SelectedDayActivities: activitiesFromDomain(domain.SelectedDayActivities(it)),
		AllActivities:         activitiesFromDomain(domain.AllActivities(it)),
	}
}

func itineraryFromDomain(it domain.Itinerary) itineraryDTO {
	out := itineraryDTO{
		ID:            string(it.ID),
		Title:         it.Title,
		Destination:   it.Destination,
		StartDate:     it.StartDate.Format(dateLayout),
		EndDate:       it.EndDate.Format(dateLayout),
		Days:          make([]dayDTO, 0, len(it.Days)),
		Collaborators: it.Collaborators,
		IsPublic:      it.IsPublic,
		SelectedDayID: string(it.SelectedDayID),
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
	for _, d := range it.Days {
		out.Days = append(out.Days, dayDTO{
			ID:         string(d.ID),
			Date:       d.Date.Format(dateLayout),
			Activities: activitiesFromDomain(d.Activities),
			Notes:      d.Notes,
		})
	}
	return out
}

func activitiesFromDomain(as []domain.Activity) []activityDTO {
	out := make([]activityDTO, 0, len(as))
	for _, a := range as {
		out = append(out, activityFromDomain(a))
	}
	return out
}

func activityFromDomain(a domain.Activity) activityDTO {
	return activityDTO{
		ID:          string(a.ID),
		Name:        a.Name,
		Description: a.Description,
		Location: locationDTO{
			Lat:     a.Location.Latitude,
			Lng:     a.Location.Longitude,
			Address: a.Location.Address,
		},
		Duration:     a.DurationMinutes,
		Category:     string(a.Category),
		Rating:       a.Rating,
		Price:        a.Price,
		Image:        a.Image,
		OpeningHours: a.OpeningHours,
		Website:      a.Website,
	}
}

func updateInputFromRequest(b updateItineraryRequest) itineraries.UpdateItineraryInput {
	out := itineraries.UpdateItineraryInput{}
	if b.Title != nil {
		out.Title = itineraries.Some(*b.Title)
	}
	if b.Destination != nil {
		out.Destination = itineraries.Some(*b.Destination)
	}
	if b.StartDate != nil {
		out.StartDate = itineraries.Some(b.StartDate.Time)
	}
	if b.EndDate != nil {
		out.EndDate = itineraries.Some(b.EndDate.Time)
	}
	if b.IsPublic != nil {
		out.IsPublic = itineraries.Some(*b.IsPublic)
	}
	if b.Collaborators.IsSpecified() {
		if b.Collaborators.IsNull() {
			out.Collaborators = itineraries.Null[[]string]()
		} else if v, err := b.Collaborators.Get(); err == nil {
			out.Collaborators = itineraries.Some(v)
		}
	}
	return out
}

func activityInputFromRequest(b addActivityRequest) itineraries.NewActivityInput {
	return itineraries.NewActivityInput{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,

		Latitude:  b.Location.Lat,
		Longitude: b.Location.Lng,
		Address:   b.Location.Address,

		DurationMinutes: b.Duration,
		Category:        b.Category,

		Rating:       b.Rating,
		Price:        b.Price,
		Image:        b.Image,
		OpeningHours: b.OpeningHours,
		Website:      b.Website,
	}
}
