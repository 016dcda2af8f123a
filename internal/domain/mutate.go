package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrDayNotFound = errors.New("day not found")

// SeedFunc produces the initial activities for a freshly generated day.
// dayIndex is zero-based; date is the day's UTC-midnight date.
type SeedFunc func(dayIndex int, date time.Time) []Activity

// NoSeed generates empty days.
func NoSeed(int, time.Time) []Activity { return nil }

// DemoSeed reproduces the planner's demonstration content: two fixed
// activities on the first day, nothing elsewhere.
func DemoSeed(dayIndex int, _ time.Time) []Activity {
	if dayIndex != 0 {
		return nil
	}
	eiffelRating := 4.6
	floreRating := 4.2
	return []Activity{
		{
			ID:          "sample-eiffel",
			Name:        "Eiffel Tower",
			Description: "Visit the iconic iron lattice tower and symbol of Paris",
			Location: Location{
				Latitude:  48.8584,
				Longitude: 2.2945,
				Address:   "Champ de Mars, 5 Avenue Anatole France, 75007 Paris",
			},
			DurationMinutes: 120,
			Category:        CategoryAttraction,
			Rating:          &eiffelRating,
			Price:           "€29",
		},
		{
			ID:          "sample-lunch",
			Name:        "Café de Flore",
			Description: "Historic Parisian café famous for its literary clientele",
			Location: Location{
				Latitude:  48.8542,
				Longitude: 2.3320,
				Address:   "172 Boulevard Saint-Germain, 75006 Paris",
			},
			DurationMinutes: 90,
			Category:        CategoryRestaurant,
			Rating:          &floreRating,
			Price:           "€25",
		},
	}
}

// DateOnly truncates t to a UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayIDForDate(d time.Time) DayID {
	return DayID(fmt.Sprintf("day-%d", d.UnixMilli()))
}

// RegenerateDays replaces the entire day list so it spans
// [StartDate, EndDate] inclusive. Day ids are derived from the date, so
// re-running with an unchanged range reproduces the same ids. Activities on
// the previous day list are discarded wholesale; this is a destructive
// operation by contract. An inverted or zero-valued range yields zero days.
// SelectedDayID is reset to the first day, or cleared.
func RegenerateDays(it Itinerary, seed SeedFunc, now time.Time) Itinerary {
	if seed == nil {
		seed = NoSeed
	}
	out := it.Clone()
	out.Days = []ItineraryDay{}
	if !it.StartDate.IsZero() && !it.EndDate.IsZero() {
		start := DateOnly(it.StartDate)
		end := DateOnly(it.EndDate)
		// Calendar-date stepping in UTC; month/year boundaries and DST
		// shifts cannot skip or duplicate a day here.
		for d, i := start, 0; !d.After(end); d, i = d.AddDate(0, 0, 1), i+1 {
			out.Days = append(out.Days, ItineraryDay{
				ID:         dayIDForDate(d),
				Date:       d,
				Activities: cloneActivities(seed(i, d)),
			})
		}
	}
	out.SelectedDayID = ""
	if len(out.Days) > 0 {
		out.SelectedDayID = out.Days[0].ID
	}
	out.UpdatedAt = now
	return out
}

// AddActivity appends a to the named day. Duplicate activity ids are not
// checked; callers assign fresh ids before insertion.
func AddActivity(it Itinerary, dayID DayID, a Activity, now time.Time) (Itinerary, error) {
	out := it.Clone()
	for i := range out.Days {
		if out.Days[i].ID == dayID {
			out.Days[i].Activities = append(out.Days[i].Activities, a)
			out.UpdatedAt = now
			return out, nil
		}
	}
	return it, ErrDayNotFound
}

// RemoveActivity removes the first activity with the given id from the named
// day. A miss (unknown day or activity) returns the input unchanged, with
// UpdatedAt untouched; stale ids from double-clicks are a normal path, not an
// error.
func RemoveActivity(it Itinerary, dayID DayID, activityID ActivityID, now time.Time) Itinerary {
	for i, d := range it.Days {
		if d.ID != dayID {
			continue
		}
		for j, a := range d.Activities {
			if a.ID == activityID {
				out := it.Clone()
				day := &out.Days[i]
				day.Activities = append(day.Activities[:j], day.Activities[j+1:]...)
				out.UpdatedAt = now
				return out
			}
		}
		return it
	}
	return it
}

// MoveActivity relocates an activity from one day to another, inserting it at
// newIndex clamped to [0, len]. When source and destination are the same day,
// newIndex is interpreted against the list after removal, so in-day
// reordering behaves as a drag-drop user expects. If the source day, the
// destination day, or the activity cannot be found the input is returned
// unchanged, UpdatedAt included.
func MoveActivity(it Itinerary, fromDayID, toDayID DayID, activityID ActivityID, newIndex int, now time.Time) Itinerary {
	fromIdx, actIdx, toIdx := -1, -1, -1
	for i, d := range it.Days {
		if d.ID == fromDayID {
			fromIdx = i
			for j, a := range d.Activities {
				if a.ID == activityID {
					actIdx = j
					break
				}
			}
		}
		if d.ID == toDayID {
			toIdx = i
		}
	}
	if fromIdx < 0 || actIdx < 0 || toIdx < 0 {
		return it
	}

	out := it.Clone()
	src := &out.Days[fromIdx]
	moved := src.Activities[actIdx]
	src.Activities = append(src.Activities[:actIdx], src.Activities[actIdx+1:]...)

	dst := &out.Days[toIdx]
	idx := newIndex
	if idx < 0 {
		idx = 0
	}
	if idx > len(dst.Activities) {
		idx = len(dst.Activities)
	}
	dst.Activities = append(dst.Activities, Activity{})
	copy(dst.Activities[idx+1:], dst.Activities[idx:])
	dst.Activities[idx] = moved

	out.UpdatedAt = now
	return out
}
