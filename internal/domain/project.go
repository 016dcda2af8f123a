package domain

import (
	"fmt"
	"strings"
)

// SelectedDayActivities returns the activities of the day the view cursor
// points at, or an empty list when the cursor is stale or unset.
func SelectedDayActivities(it Itinerary) []Activity {
	d, ok := it.Day(it.SelectedDayID)
	if !ok {
		return []Activity{}
	}
	out := cloneActivities(d.Activities)
	if out == nil {
		out = []Activity{}
	}
	return out
}

// AllActivities flattens every day's activities in day order then intra-day
// order. Map rendering and suggestion de-duplication read this projection.
func AllActivities(it Itinerary) []Activity {
	out := []Activity{}
	for _, d := range it.Days {
		out = append(out, cloneActivities(d.Activities)...)
	}
	return out
}

// ActivityKey is the domain identity used to match a catalog suggestion
// against activities already on the trip. Suggestions carry no assigned id
// yet, so matching is by normalized name plus coordinates rounded to ~10m.
func ActivityKey(a Activity) string {
	return fmt.Sprintf("%s@%.4f,%.4f",
		strings.ToLower(NormalizeName(a.Name)),
		a.Location.Latitude,
		a.Location.Longitude,
	)
}
