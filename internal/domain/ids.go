package domain

// ItineraryID is an internal identifier for an itinerary aggregate.
type ItineraryID string

// DayID identifies a day within an itinerary. It is derived from the day's
// date but kept distinct from it so the day list can be regenerated without
// stale references aliasing a calendar date.
type DayID string

// ActivityID identifies an activity. Uniqueness is expected across the whole
// itinerary, not per day; move and remove rely on that.
type ActivityID string
