package schedule

import "time"

// FilterBooked removes from slots every entry whose start instant
// matches one of bookedStarts, and collapses duplicate-valued slots
// produced by overlapping rules.  Callers pass the start times of
// CONFIRMED bookings only: a slot contested by pending requests stays
// visible so further students may request it, first confirmation
// wins.  The result is always a subset of the input, order preserved.
func FilterBooked(slots []Slot, bookedStarts []time.Time) []Slot {
	booked := make(map[int64]struct{}, len(bookedStarts))
	for _, t := range bookedStarts {
		booked[t.UTC().Unix()] = struct{}{}
	}
	seen := make(map[int64]struct{}, len(slots))
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		key := s.Start.UTC().Unix()
		if _, taken := booked[key]; taken {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
