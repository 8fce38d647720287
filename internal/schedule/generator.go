package schedule

import (
	"time"

	"github.com/mentorhub/mentor-booking/internal/model"
)

// Generate expands the given availability rules into concrete slots
// for `days` consecutive calendar days beginning at the UTC date of
// `from`.  For every day whose weekday matches a rule, it walks the
// rule's window from start to end in SessionDuration increments and
// emits a slot per increment whose end does not pass the window end;
// a slot ending exactly on the window boundary is included.  A
// trailing partial period shorter than SessionDuration is dropped.
//
// Overlapping rules for the same weekday yield duplicate-valued
// slots; deduplication happens in FilterBooked, not here.  Generate
// is a pure function: identical inputs always produce identical
// output, in ascending (day, rule order, start) order.
func Generate(rules []model.AvailabilityRule, from time.Time, days int) []Slot {
	slots := make([]Slot, 0)
	day := from.UTC().Truncate(24 * time.Hour)
	for offset := 0; offset < days; offset++ {
		date := day.AddDate(0, 0, offset)
		for _, rule := range rules {
			if rule.Weekday != date.Weekday() {
				continue
			}
			windowEnd := date.Add(time.Duration(rule.EndMin) * time.Minute)
			start := date.Add(time.Duration(rule.StartMin) * time.Minute)
			for !start.Add(model.SessionDuration).After(windowEnd) {
				slots = append(slots, Slot{Start: start, End: start.Add(model.SessionDuration)})
				start = start.Add(model.SessionDuration)
			}
		}
	}
	return slots
}
