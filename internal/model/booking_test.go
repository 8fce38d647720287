package model

import "testing"

func TestBookingStatus_PendingTransitions(t *testing.T) {
	if !BookingPending.CanTransitionTo(BookingConfirmed) {
		t.Error("PENDING_APPROVAL -> CONFIRMED should be allowed")
	}
	if !BookingPending.CanTransitionTo(BookingRejected) {
		t.Error("PENDING_APPROVAL -> REJECTED should be allowed")
	}
	for _, next := range []BookingStatus{BookingCancelledByStudent, BookingCancelledByMentor, BookingCompleted, BookingPending} {
		if BookingPending.CanTransitionTo(next) {
			t.Errorf("PENDING_APPROVAL -> %s should be rejected", next)
		}
	}
}

func TestBookingStatus_ConfirmedTransitions(t *testing.T) {
	for _, next := range []BookingStatus{BookingCancelledByStudent, BookingCancelledByMentor, BookingCompleted} {
		if !BookingConfirmed.CanTransitionTo(next) {
			t.Errorf("CONFIRMED -> %s should be allowed", next)
		}
	}
	for _, next := range []BookingStatus{BookingPending, BookingRejected, BookingConfirmed} {
		if BookingConfirmed.CanTransitionTo(next) {
			t.Errorf("CONFIRMED -> %s should be rejected", next)
		}
	}
}

func TestBookingStatus_TerminalStatesHaveNoExits(t *testing.T) {
	terminals := []BookingStatus{BookingRejected, BookingCancelledByStudent, BookingCancelledByMentor, BookingCompleted}
	all := []BookingStatus{BookingPending, BookingConfirmed, BookingRejected,
		BookingCancelledByStudent, BookingCancelledByMentor, BookingCompleted}

	for _, s := range terminals {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
		for _, next := range all {
			if s.CanTransitionTo(next) {
				t.Errorf("terminal %s -> %s should be rejected", s, next)
			}
		}
	}
	if BookingPending.Terminal() || BookingConfirmed.Terminal() {
		t.Error("PENDING_APPROVAL and CONFIRMED are not terminal")
	}
}

func TestBookingStatus_Valid(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingRejected,
		BookingCancelledByStudent, BookingCancelledByMentor, BookingCompleted} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if BookingStatus("ON_HOLD").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestCancelStatusFor(t *testing.T) {
	if got := CancelStatusFor(RoleMentor); got != BookingCancelledByMentor {
		t.Errorf("mentor cancel: got %s, want %s", got, BookingCancelledByMentor)
	}
	if got := CancelStatusFor(RoleStudent); got != BookingCancelledByStudent {
		t.Errorf("student cancel: got %s, want %s", got, BookingCancelledByStudent)
	}
}

func TestBooking_Party(t *testing.T) {
	b := Booking{StudentID: 7, MentorID: 9}
	if !b.Party(7) || !b.Party(9) {
		t.Error("both student and mentor are parties")
	}
	if b.Party(8) {
		t.Error("third user is not a party")
	}
}
