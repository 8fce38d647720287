package model

import (
	"errors"
	"time"
)

// AvailabilityRule is one recurring weekly window in a mentor's
// availability template, stored in the `availability_rules` table.
// Times are minutes of the day (0–1439) so a rule is independent of
// any concrete date; the schedule package expands rules into dated
// slots.  A mentor's rule set is always replaced wholesale, never
// patched row by row.
//
// Fields:
//  ID       – primary key identifier.
//  MentorID – owning user (role MENTOR).
//  Weekday  – day of week, time.Sunday..time.Saturday.
//  StartMin – window start as minute of day, inclusive.
//  EndMin   – window end as minute of day, exclusive.
type AvailabilityRule struct {
	ID       uint64       // availability_rules.id
	MentorID uint64       // availability_rules.mentor_id
	Weekday  time.Weekday // availability_rules.weekday (0=Sunday..6=Saturday)
	StartMin uint16       // availability_rules.start_min
	EndMin   uint16       // availability_rules.end_min
}

const minutesPerDay = 24 * 60

var (
	// ErrRuleWeekday is returned when the weekday is outside 0..6.
	ErrRuleWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	// ErrRuleWindow is returned when the time window is empty, inverted
	// or extends past midnight.
	ErrRuleWindow = errors.New("rule window must satisfy 0 <= start < end <= 1440")
)

// Validate checks the rule invariants: a known weekday and a
// non-empty window contained in a single day.
func (r AvailabilityRule) Validate() error {
	if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
		return ErrRuleWeekday
	}
	if r.StartMin >= r.EndMin || r.EndMin > minutesPerDay {
		return ErrRuleWindow
	}
	return nil
}
