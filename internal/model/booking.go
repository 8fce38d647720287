package model

import "time"

// SessionDuration is the fixed length of every mentoring session.
// Slots are generated on this grid and a booking's end time is always
// its start time plus this duration.
const SessionDuration = 30 * time.Minute

// BookingStatus enumerates the lifecycle states of a booking.  The
// set is closed: transitions not listed in the transition table are
// rejected at the boundary with ErrInvalidState before anything is
// written.
type BookingStatus string

const (
	// BookingPending is the initial state: a student has requested a
	// slot and the mentor has not yet adjudicated.  Several students
	// may hold pending requests for the same (mentor, start) pair.
	BookingPending BookingStatus = "PENDING_APPROVAL"
	// BookingConfirmed is the only state that blocks a slot from being
	// offered again.  At most one CONFIRMED booking may exist per
	// (mentor, start); the store's partial unique index enforces it.
	BookingConfirmed BookingStatus = "CONFIRMED"
	// BookingRejected is terminal: the mentor declined the request.
	BookingRejected BookingStatus = "REJECTED"
	// BookingCancelledByStudent is terminal: the student cancelled a
	// confirmed session.
	BookingCancelledByStudent BookingStatus = "CANCELLED_BY_STUDENT"
	// BookingCancelledByMentor is terminal: the mentor cancelled a
	// confirmed session.
	BookingCancelledByMentor BookingStatus = "CANCELLED_BY_MENTOR"
	// BookingCompleted is terminal and time-driven: the session end
	// time has passed.  It is applied by a lazy sweep, not by a user
	// action.
	BookingCompleted BookingStatus = "COMPLETED"
)

// transitions is the full state machine.  Absent keys are terminal
// states with no outgoing edges.
var transitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingRejected},
	BookingConfirmed: {BookingCancelledByStudent, BookingCancelledByMentor, BookingCompleted},
}

// CanTransitionTo reports whether moving from s to next is allowed by
// the transition table.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether s has no outgoing transitions.
func (s BookingStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// Valid reports whether s is a member of the closed status set.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingRejected,
		BookingCancelledByStudent, BookingCancelledByMentor, BookingCompleted:
		return true
	}
	return false
}

// CancelStatusFor maps the acting party's role to the terminal status
// a confirmed booking takes when that party cancels.
func CancelStatusFor(role string) BookingStatus {
	if role == RoleMentor {
		return BookingCancelledByMentor
	}
	return BookingCancelledByStudent
}

// Booking records one student's reservation request for a mentor
// slot, tracked through the approval lifecycle.  Rows are never
// deleted, only transitioned to a terminal status.
//
// Fields:
//  ID          – primary key identifier.
//  StudentID   – requesting user (role STUDENT).
//  MentorID    – owning mentor user.
//  StartAt     – session start instant, UTC.
//  EndAt       – session end instant, always StartAt+SessionDuration.
//  Status      – current lifecycle state.
//  MeetingLink – call URL, set on confirmation (nullable before).
//  Reviewed    – whether the student has left a review for this session.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Booking struct {
	ID          uint64        // bookings.id
	StudentID   uint64        // bookings.student_id
	MentorID    uint64        // bookings.mentor_id
	StartAt     time.Time     // bookings.start_at
	EndAt       time.Time     // bookings.end_at
	Status      BookingStatus // bookings.status
	MeetingLink *string       // bookings.meeting_link (nullable)
	Reviewed    bool          // bookings.reviewed
	CreatedAt   time.Time     // bookings.created_at
	UpdatedAt   time.Time     // bookings.updated_at
}

// Party reports whether the given user is the student or the mentor
// on this booking.
func (b Booking) Party(userID uint64) bool {
	return b.StudentID == userID || b.MentorID == userID
}
