package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentor-booking/internal/model"
	"github.com/mentorhub/mentor-booking/internal/queue"
	"github.com/mentorhub/mentor-booking/internal/repository"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// JWT numeric claims decode as float64; older tokens may carry strings.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole returns the role claim set by the JWT middleware.
func getRole(c echo.Context) string {
	if r, ok := c.Get("role").(string); ok {
		return r
	}
	return ""
}

// pathID parses a numeric :param from the route, rejecting zero.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// bookingEvent assembles the notification payload for a booking whose
// parties have been resolved by BookingRepo.Detail.
func bookingEvent(d repository.BookingDetail) queue.BookingEvent {
	ev := queue.BookingEvent{
		EventID:      uuid.NewString(),
		BookingID:    d.Booking.ID,
		StudentID:    d.Booking.StudentID,
		StudentName:  d.StudentName,
		StudentEmail: d.StudentEmail,
		MentorID:     d.Booking.MentorID,
		MentorName:   d.MentorName,
		MentorEmail:  d.MentorEmail,
		StartAt:      d.Booking.StartAt.UTC().Format(time.RFC3339),
		EndAt:        d.Booking.EndAt.UTC().Format(time.RFC3339),
		Status:       string(d.Booking.Status),
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if d.Booking.MeetingLink != nil {
		ev.MeetingLink = *d.Booking.MeetingLink
	}
	switch d.Booking.Status {
	case model.BookingCancelledByStudent:
		ev.CancelledBy = "STUDENT"
	case model.BookingCancelledByMentor:
		ev.CancelledBy = "MENTOR"
	}
	return ev
}

// bookingResp is the wire shape for a booking in API responses.
type bookingResp struct {
	ID          uint64  `json:"id"`
	StudentID   uint64  `json:"student_id"`
	MentorID    uint64  `json:"mentor_id"`
	StartAt     string  `json:"start_at"`
	EndAt       string  `json:"end_at"`
	Status      string  `json:"status"`
	MeetingLink *string `json:"meeting_link,omitempty"`
	Reviewed    bool    `json:"reviewed"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:          b.ID,
		StudentID:   b.StudentID,
		MentorID:    b.MentorID,
		StartAt:     b.StartAt.UTC().Format(time.RFC3339),
		EndAt:       b.EndAt.UTC().Format(time.RFC3339),
		Status:      string(b.Status),
		MeetingLink: b.MeetingLink,
		Reviewed:    b.Reviewed,
	}
}

func toBookingResps(bs []model.Booking) []bookingResp {
	out := make([]bookingResp, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingResp(b))
	}
	return out
}
