package itineraries

import (
	"fmt"
	"strings"
	"time"

	"github.com/nephisha/next24-planner-api/internal/domain"
)

const icsTimestamp = "20060102T150405Z"

// ExportICS renders the itinerary as an iCalendar document, one VEVENT per
// activity. Activities are scheduled back-to-back from the day's start in
// visiting order.
func ExportICS(it domain.Itinerary) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//Next24//Itinerary Planner//EN\r\n")

	for _, day := range it.Days {
		cursor := day.Date
		for _, a := range day.Activities {
			end := cursor.Add(time.Duration(a.DurationMinutes) * time.Minute)
			b.WriteString("BEGIN:VEVENT\r\n")
			fmt.Fprintf(&b, "UID:%s@next24.xyz\r\n", a.ID)
			fmt.Fprintf(&b, "DTSTART:%s\r\n", cursor.UTC().Format(icsTimestamp))
			fmt.Fprintf(&b, "DTEND:%s\r\n", end.UTC().Format(icsTimestamp))
			fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeICS(a.Name))
			fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", escapeICS(a.Description))
			fmt.Fprintf(&b, "LOCATION:%s\r\n", escapeICS(a.Location.Address))
			b.WriteString("END:VEVENT\r\n")
			cursor = end
		}
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

// ExportText renders a printable plain-text itinerary.
func ExportText(it domain.Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", it.Title)
	fmt.Fprintf(&b, "Destination: %s\n", it.Destination)
	fmt.Fprintf(&b, "Dates: %s to %s\n\n", it.StartDate.Format("2006-01-02"), it.EndDate.Format("2006-01-02"))

	for i, day := range it.Days {
		fmt.Fprintf(&b, "Day %d - %s\n", i+1, day.Date.Format("2006-01-02"))
		b.WriteString(strings.Repeat("=", 30) + "\n")
		if len(day.Activities) == 0 {
			b.WriteString("No activities planned\n\n")
		} else {
			for j, a := range day.Activities {
				fmt.Fprintf(&b, "%d. %s\n", j+1, a.Name)
				if a.Description != "" {
					fmt.Fprintf(&b, "   %s\n", a.Description)
				}
				fmt.Fprintf(&b, "   Location: %s\n", a.Location.Address)
				fmt.Fprintf(&b, "   Duration: %dh %dm\n", a.DurationMinutes/60, a.DurationMinutes%60)
				if a.Price != "" {
					fmt.Fprintf(&b, "   Price: %s\n", a.Price)
				}
				b.WriteString("\n")
			}
		}
		if day.Notes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", day.Notes)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// escapeICS escapes text per RFC 5545 (commas, semicolons, backslashes,
// newlines).
func escapeICS(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return r.Replace(s)
}
