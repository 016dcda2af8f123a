package domain

import "time"

type Category string

const (
	CategoryAttraction Category = "attraction"
	CategoryRestaurant Category = "restaurant"
	CategoryHotel      Category = "hotel"
	CategoryTransport  Category = "transport"
	CategoryActivity   Category = "activity"
)

// IsValid reports whether c is one of the closed set of activity categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryAttraction, CategoryRestaurant, CategoryHotel, CategoryTransport, CategoryActivity:
		return true
	}
	return false
}

// Location is a geocoded point. It is required on every activity.
type Location struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// Activity is a bookable or visitable item within a day.
// Price, Image, OpeningHours and Website are display strings; empty means unset.
type Activity struct {
	ID          ActivityID
	Name        string
	Description string
	Location    Location

	// DurationMinutes is >= 0.
	DurationMinutes int
	Category        Category

	Rating       *float64
	Price        string
	Image        string
	OpeningHours string
	Website      string
}

// ItineraryDay is one calendar day of the trip. Activities is the visiting
// order within the day; position is meaningful.
type ItineraryDay struct {
	ID         DayID
	Date       time.Time // date-only semantics, UTC midnight
	Activities []Activity
	Notes      string
}

// Itinerary is the trip aggregate. It exclusively owns its days and,
// transitively, every activity; an activity is never shared between days.
type Itinerary struct {
	ID          ItineraryID
	Title       string
	Destination string

	// StartDate/EndDate carry date-only semantics (UTC midnight).
	StartDate time.Time
	EndDate   time.Time

	// Days is ordered by date ascending and spans [StartDate, EndDate]
	// inclusive when the range is well-formed.
	Days []ItineraryDay

	Collaborators []string
	IsPublic      bool

	// SelectedDayID is the view cursor. Regeneration resets it to the first
	// day; it is empty when the trip has no days.
	SelectedDayID DayID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Day returns the day with the given id, or false if absent.
func (it Itinerary) Day(id DayID) (ItineraryDay, bool) {
	for _, d := range it.Days {
		if d.ID == id {
			return d, true
		}
	}
	return ItineraryDay{}, false
}

// Clone returns a deep copy of the aggregate. Mutation operations work on
// clones so callers never observe partial edits.
func (it Itinerary) Clone() Itinerary {
	cp := it
	if it.Collaborators != nil {
		cp.Collaborators = append([]string(nil), it.Collaborators...)
	}
	if it.Days != nil {
		cp.Days = make([]ItineraryDay, len(it.Days))
		for i, d := range it.Days {
			cp.Days[i] = d
			cp.Days[i].Activities = cloneActivities(d.Activities)
		}
	}
	return cp
}

func cloneActivities(as []Activity) []Activity {
	if as == nil {
		return nil
	}
	out := make([]Activity, len(as))
	for i, a := range as {
		out[i] = a
		if a.Rating != nil {
			v := *a.Rating
			out[i].Rating = &v
		}
	}
	return out
}
