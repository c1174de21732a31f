package core

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"cargocore/pkg/domain"
)

// FormatLogEntry renders a usage-log entry as a human-readable audit line,
// e.g. "item a1b2 placed 3 minutes ago by astronaut-kim".
func FormatLogEntry(entry domain.LogEntry, now time.Time) string {
	when := humanize.RelTime(entry.Timestamp, now, "ago", "from now")
	line := fmt.Sprintf("item %s %s %s", entry.ItemID, entry.Action, when)
	if entry.Actor != "" {
		line += fmt.Sprintf(" by %s", entry.Actor)
	}
	if entry.Detail != "" {
		line += fmt.Sprintf(" (%s)", entry.Detail)
	}
	return line
}

// FormatMass renders a mass in kilograms as a human-readable string, e.g.
// "2.3 kg" vs "450 g", using go-humanize's SI formatter.
func FormatMass(kg float64) string {
	return humanize.SIWithDigits(kg*1000, 2, "g")
}
