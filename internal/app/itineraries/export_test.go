package itineraries

import (
	"strings"
	"testing"
	"time"

	"github.com/nephisha/next24-planner-api/internal/domain"
)

func exportFixture() domain.Itinerary {
	it := domain.Itinerary{
		ID:          "it-1",
		Title:       "Paris Weekend",
		Destination: "Paris, France",
		StartDate:   time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC),
	}
	return domain.RegenerateDays(it, domain.DemoSeed, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
}

func TestExportICS(t *testing.T) {
	t.Parallel()
	out := ExportICS(exportFixture())

	if !strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(out, "END:VCALENDAR\r\n") {
		t.Fatalf("not a calendar document:\n%s", out)
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("expected 2 events, got %d", got)
	}
	if !strings.Contains(out, "UID:sample-eiffel@next24.xyz\r\n") {
		t.Fatalf("missing event uid:\n%s", out)
	}
	// First event starts at day start, second starts when the first ends.
	if !strings.Contains(out, "DTSTART:20250915T000000Z") {
		t.Fatalf("missing first event start:\n%s", out)
	}
	if !strings.Contains(out, "DTSTART:20250915T020000Z") {
		t.Fatalf("expected back-to-back scheduling after a 120m activity:\n%s", out)
	}
	// The address contains commas and must be escaped.
	if !strings.Contains(out, "LOCATION:Champ de Mars\\, 5 Avenue Anatole France\\, 75007 Paris\r\n") {
		t.Fatalf("location not escaped:\n%s", out)
	}
}

func TestExportText(t *testing.T) {
	t.Parallel()
	it := exportFixture()
	it.Days[1].Notes = "check opening hours"
	out := ExportText(it)

	for _, want := range []string{
		"Paris Weekend\n",
		"Destination: Paris, France\n",
		"Dates: 2025-09-15 to 2025-09-16\n",
		"Day 1 - 2025-09-15\n",
		"1. Eiffel Tower\n",
		"   Duration: 2h 0m\n",
		"   Price: €29\n",
		"Day 2 - 2025-09-16\n",
		"No activities planned\n",
		"Notes: check opening hours\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
