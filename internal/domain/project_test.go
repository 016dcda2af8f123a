package domain

import (
	"testing"
	"time"
)

func TestSelectedDayActivities(t *testing.T) {
	t.Parallel()
	it := RegenerateDays(tripForRange(date(2025, 9, 15), date(2025, 9, 16)), DemoSeed, date(2025, 9, 1))

	got := SelectedDayActivities(it)
	if len(got) != 2 {
		t.Fatalf("expected 2 activities on the selected day, got %d", len(got))
	}

	it.SelectedDayID = "day-stale"
	if got := SelectedDayActivities(it); len(got) != 0 {
		t.Fatalf("expected empty list for stale cursor, got %d", len(got))
	}

	it.SelectedDayID = ""
	if got := SelectedDayActivities(it); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list for unset cursor, got %v", got)
	}
}

func TestAllActivitiesPreservesOrder(t *testing.T) {
	t.Parallel()
	it := RegenerateDays(tripForRange(date(2025, 9, 15), date(2025, 9, 16)), DemoSeed, date(2025, 9, 1))
	var err error
	it, err = AddActivity(it, it.Days[1].ID, Activity{ID: "louvre", Name: "Louvre Museum"}, date(2025, 9, 2))
	if err != nil {
		t.Fatalf("AddActivity: %v", err)
	}

	got := AllActivities(it)
	want := []ActivityID{"sample-eiffel", "sample-lunch", "louvre"}
	if len(got) != len(want) {
		t.Fatalf("expected %d activities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], got[i].ID)
		}
	}
}

func TestAllActivitiesReturnsClones(t *testing.T) {
	t.Parallel()
	it := RegenerateDays(tripForRange(date(2025, 9, 15), date(2025, 9, 15)), DemoSeed, date(2025, 9, 1))
	got := AllActivities(it)
	got[0].Name = "mutated"
	if it.Days[0].Activities[0].Name == "mutated" {
		t.Fatalf("projection leaked a reference into the aggregate")
	}
}

func TestActivityKeyNormalizesName(t *testing.T) {
	t.Parallel()
	a := Activity{Name: "  Eiffel   Tower ", Location: Location{Latitude: 48.8584, Longitude: 2.2945}}
	b := Activity{Name: "eiffel tower", Location: Location{Latitude: 48.8584, Longitude: 2.2945}}
	if ActivityKey(a) != ActivityKey(b) {
		t.Fatalf("expected equal keys: %q vs %q", ActivityKey(a), ActivityKey(b))
	}

	c := Activity{Name: "eiffel tower", Location: Location{Latitude: 48.86, Longitude: 2.2945}}
	if ActivityKey(a) == ActivityKey(c) {
		t.Fatalf("expected different keys for different coordinates")
	}
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]string{
		"  Eiffel   Tower ": "Eiffel Tower",
		"\tLouvre\n":        "Louvre",
		"   ":               "",
	} {
		if got := NormalizeName(in); got != want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()
	rating := 4.5
	it := Itinerary{
		ID:            "it-1",
		Collaborators: []string{"a@example.com"},
		Days: []ItineraryDay{{
			ID:   "day-1",
			Date: time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
			Activities: []Activity{
				{ID: "a1", Rating: &rating},
			},
		}},
	}
	cp := it.Clone()
	cp.Collaborators[0] = "b@example.com"
	cp.Days[0].Activities[0].ID = "a2"
	*cp.Days[0].Activities[0].Rating = 1.0

	if it.Collaborators[0] != "a@example.com" {
		t.Fatalf("collaborators shared")
	}
	if it.Days[0].Activities[0].ID != "a1" {
		t.Fatalf("activities shared")
	}
	if *it.Days[0].Activities[0].Rating != 4.5 {
		t.Fatalf("rating pointer shared")
	}
}
