// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names for booking lifecycle notifications.  One queue per
// transition keeps consumers free to subscribe selectively.
const (
	QueueBookingRequested = "booking.requested"
	QueueBookingConfirmed = "booking.confirmed"
	QueueBookingCancelled = "booking.cancelled"
)

// BookingEvent is published after a booking state transition commits.
// It carries fully resolved party details so downstream consumers can
// notify, log or feed analytics without querying the primary
// database.  Timestamps are RFC3339 UTC strings.
type BookingEvent struct {
	EventID      string `json:"event_id"`
	BookingID    uint64 `json:"booking_id"`
	StudentID    uint64 `json:"student_id"`
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	MentorID     uint64 `json:"mentor_id"`
	MentorName   string `json:"mentor_name"`
	MentorEmail  string `json:"mentor_email"`
	StartAt      string `json:"start_at"`
	EndAt        string `json:"end_at"`
	Status       string `json:"status"`
	MeetingLink  string `json:"meeting_link,omitempty"`
	CancelledBy  string `json:"cancelled_by,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}
