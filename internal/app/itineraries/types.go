package itineraries

import (
	"time"

	"github.com/nephisha/next24-planner-api/internal/domain"
)

// Optional is a tri-state field used to distinguish:
// - unspecified (omitted)
// - specified as null
// - specified with a value
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

type CreateItineraryInput struct {
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	IsPublic    bool
}

// UpdateItineraryInput is a shallow partial of the aggregate's top-level
// fields. Title, Destination and the dates are optional but cannot be null.
// Collaborators may be null to clear the set.
type UpdateItineraryInput struct {
	Title       Optional[string]
	Destination Optional[string]
	StartDate   Optional[time.Time]
	EndDate     Optional[time.Time]
	IsPublic    Optional[bool]

	Collaborators Optional[[]string]
}

// NewActivityInput describes an activity to append to a day. ID is optional;
// when empty the service assigns a fresh uuid.
type NewActivityInput struct {
	ID          string
	Name        string
	Description string

	Latitude  float64
	Longitude float64
	Address   string

	DurationMinutes int
	Category        string

	Rating       *float64
	Price        string
	Image        string
	OpeningHours string
	Website      string
}

type MoveActivityInput struct {
	FromDayID  domain.DayID
	ToDayID    domain.DayID
	ActivityID domain.ActivityID
	NewIndex   int
}
