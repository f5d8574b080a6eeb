// Package scheduling holds the appointment slot logic: end-time
// arithmetic on HH:MM strings and the day-level conflict test.
package scheduling

import (
	"errors"
	"fmt"

	"github.com/vsitelecom/fieldops/internal/models"
)

var (
	ErrConflict         = errors.New("scheduling: slot overlaps an existing appointment")
	ErrQuoteNotApproved = errors.New("scheduling: quote is not approved")
	ErrAlreadyScheduled = errors.New("scheduling: quote already has an active appointment")
)

// EndTime adds a duration in minutes to an HH:MM start time.
func EndTime(start string, minutes int) string {
	var h, m int
	fmt.Sscanf(start, "%d:%d", &h, &m)
	total := h*60 + m + minutes
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Conflicts reports whether [start, end) collides with any existing
// appointment on the given date. Intervals are half-open: a candidate
// whose start equals an existing end (or vice versa) touches edges and
// is allowed.
func Conflicts(existing []models.Appointment, date, start, end string) bool {
	for _, a := range existing {
		if a.Date != date || !a.Active() {
			continue
		}
		if (start >= a.StartTime && start < a.EndTime) ||
			(end > a.StartTime && end <= a.EndTime) {
			return true
		}
	}
	return false
}

// Validate checks that a quote can take a new slot: it must be in the
// approved state and must not already have an active appointment.
func Validate(q models.Quote, existing []models.Appointment) error {
	if q.Status != models.QuoteApproved {
		return fmt.Errorf("%w: %s", ErrQuoteNotApproved, q.Status)
	}
	for _, a := range existing {
		if a.QuoteID == q.ID && a.Active() {
			return ErrAlreadyScheduled
		}
	}
	return nil
}
