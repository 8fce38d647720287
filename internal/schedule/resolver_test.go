package schedule

import (
	"testing"
	"time"

	"github.com/mentorhub/mentor-booking/internal/model"
)

func TestFilterBooked_RemovesConfirmedStarts(t *testing.T) {
	rules := []model.AvailabilityRule{rule(time.Monday, 9*60, 11*60)}
	slots := Generate(rules, monday, 1) // 4 slots: 09:00 09:30 10:00 10:30

	booked := []time.Time{monday.Add(9*time.Hour + 30*time.Minute)}
	got := FilterBooked(slots, booked)

	if len(got) != 3 {
		t.Fatalf("slot count: got %d, want 3", len(got))
	}
	for _, s := range got {
		if s.Start.Equal(booked[0]) {
			t.Errorf("booked slot %v still present", booked[0])
		}
	}
}

func TestFilterBooked_NoBookingsReturnsAll(t *testing.T) {
	rules := []model.AvailabilityRule{rule(time.Monday, 9*60, 10*60)}
	slots := Generate(rules, monday, 1)

	got := FilterBooked(slots, nil)

	if len(got) != len(slots) {
		t.Fatalf("slot count: got %d, want %d", len(got), len(slots))
	}
}

func TestFilterBooked_ResultIsSubsetInOrder(t *testing.T) {
	rules := []model.AvailabilityRule{rule(time.Monday, 8*60, 12*60)}
	slots := Generate(rules, monday, 1)

	booked := []time.Time{slots[0].Start, slots[3].Start, slots[5].Start}
	got := FilterBooked(slots, booked)

	if len(got) != len(slots)-3 {
		t.Fatalf("slot count: got %d, want %d", len(got), len(slots)-3)
	}
	// Remaining slots keep their relative order.
	for i := 1; i < len(got); i++ {
		if !got[i].Start.After(got[i-1].Start) {
			t.Errorf("order broken at %d: %v then %v", i, got[i-1].Start, got[i].Start)
		}
	}
}

func TestFilterBooked_DeduplicatesOverlappingRules(t *testing.T) {
	// Two rules covering the same Monday hour produce duplicate slots.
	rules := []model.AvailabilityRule{
		rule(time.Monday, 9*60, 10*60),
		rule(time.Monday, 9*60, 10*60),
	}
	slots := Generate(rules, monday, 1)
	if len(slots) != 4 {
		t.Fatalf("precondition: generator should emit duplicates, got %d", len(slots))
	}

	got := FilterBooked(slots, nil)

	if len(got) != 2 {
		t.Fatalf("slot count after dedupe: got %d, want 2", len(got))
	}
}

func TestFilterBooked_IgnoresTimezoneRepresentation(t *testing.T) {
	rules := []model.AvailabilityRule{rule(time.Monday, 9*60, 10*60)}
	slots := Generate(rules, monday, 1)

	// Same instant expressed in a non-UTC zone still filters.
	loc := time.FixedZone("UTC+3", 3*3600)
	booked := []time.Time{monday.Add(9 * time.Hour).In(loc)}

	got := FilterBooked(slots, booked)

	if len(got) != 1 {
		t.Fatalf("slot count: got %d, want 1", len(got))
	}
	if got[0].Start.Equal(monday.Add(9 * time.Hour)) {
		t.Error("booked 09:00 slot still present")
	}
}
