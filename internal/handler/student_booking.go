package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentor-booking/internal/model"
	"github.com/mentorhub/mentor-booking/internal/repository"
	notifier "github.com/mentorhub/mentor-booking/internal/service"
)

// StudentBookingHandler covers the student's side of the booking
// lifecycle: requesting a slot, cancelling a confirmed session, and
// reading the personal schedule.
type StudentBookingHandler struct {
	Bookings *repository.BookingRepo
	Mentors  *repository.MentorRepo
}

func NewStudentBookingHandler(bookings *repository.BookingRepo, mentors *repository.MentorRepo) *StudentBookingHandler {
	if bookings == nil || mentors == nil {
		panic("nil repository passed to NewStudentBookingHandler")
	}
	return &StudentBookingHandler{Bookings: bookings, Mentors: mentors}
}

// Create handles POST /v1/bookings.  The student names a mentor and a
// start instant; the session end is derived server-side.  A confirmed
// booking already holding the slot answers 409.  Re-submitting an
// identical request while the first is still pending returns the
// existing request with 200 instead of creating a duplicate.
func (h *StudentBookingHandler) Create(c echo.Context) error {
	studentID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		MentorID uint64 `json:"mentor_id"`
		StartAt  string `json:"start_at"` // RFC3339
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.MentorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mentor_id is required"})
	}
	if body.MentorID == studentID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot book a session with yourself"})
	}
	startAt, err := time.Parse(time.RFC3339, body.StartAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_at must be RFC3339"})
	}
	startAt = startAt.UTC()
	if !startAt.After(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_at must be in the future"})
	}

	ctx := c.Request().Context()

	profile, err := h.Mentors.GetByUserID(ctx, body.MentorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if profile.Status != model.MentorStatusApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
	}

	booking, created, err := h.Bookings.Create(ctx, studentID, body.MentorID, startAt)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot is already booked"})
		case errors.Is(err, repository.ErrRequestPending):
			return c.JSON(http.StatusConflict, echo.Map{"error": "request already pending"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	if created {
		// Post-commit notification: a broker outage must not undo the
		// saved request.
		if d, derr := h.Bookings.Detail(ctx, booking.ID); derr == nil {
			if perr := notifier.PublishBookingRequested(ctx, bookingEvent(d)); perr != nil {
				log.Printf("booking %d: requested notification dropped: %v", booking.ID, perr)
			}
		} else {
			log.Printf("booking %d: detail load for notification failed: %v", booking.ID, derr)
		}
		return c.JSON(http.StatusCreated, toBookingResp(booking))
	}
	return c.JSON(http.StatusOK, toBookingResp(booking))
}

// Cancel handles POST /v1/bookings/:id/cancel for either party.  Only
// CONFIRMED bookings can be cancelled; the resulting terminal status
// records which side acted.
func (h *StudentBookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()

	booking, err := h.Bookings.Cancel(ctx, bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not a party to this booking"})
		case errors.Is(err, repository.ErrInvalidState):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled in its current status"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}

	if d, derr := h.Bookings.Detail(ctx, booking.ID); derr == nil {
		if perr := notifier.PublishBookingCancelled(ctx, bookingEvent(d)); perr != nil {
			log.Printf("booking %d: cancelled notification dropped: %v", booking.ID, perr)
		}
	} else {
		log.Printf("booking %d: detail load for notification failed: %v", booking.ID, derr)
	}
	return c.JSON(http.StatusOK, toBookingResp(booking))
}

// Schedule handles GET /v1/schedule: the caller's upcoming confirmed
// sessions.  Elapsed sessions are swept to COMPLETED first so the
// answer never contains stale CONFIRMED rows.
func (h *StudentBookingHandler) Schedule(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	if err := h.Bookings.CompleteElapsed(ctx, userID); err != nil {
		log.Printf("user %d: completed sweep failed: %v", userID, err)
	}
	items, err := h.Bookings.ListUpcoming(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load schedule"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toBookingResps(items)})
}
