// Package schedule expands a mentor's recurring availability rules
// into concrete bookable slots and reconciles them against existing
// bookings.  Everything in this package is a pure function of its
// inputs; slots are derived values and are never persisted.
package schedule

import "time"

// Slot is one fixed-duration candidate meeting window.  Start and End
// are UTC instants exactly model.SessionDuration apart.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// HorizonDays is the default forward-looking range for availability
// queries: slots are generated for seven days beginning tomorrow.
const HorizonDays = 7

// HorizonStart returns the first day of the default horizon for a
// query made at now: midnight UTC of the following day.  Same-day
// slots are intentionally not offered.
func HorizonStart(now time.Time) time.Time {
	d := now.UTC().Truncate(24 * time.Hour)
	return d.AddDate(0, 0, 1)
}
