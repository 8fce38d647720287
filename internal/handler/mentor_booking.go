package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentor-booking/internal/repository"
	notifier "github.com/mentorhub/mentor-booking/internal/service"
)

// MentorBookingHandler is the mentor's side of the approval flow:
// listing open requests and confirming or rejecting them.
type MentorBookingHandler struct {
	Bookings *repository.BookingRepo
}

func NewMentorBookingHandler(bookings *repository.BookingRepo) *MentorBookingHandler {
	if bookings == nil {
		panic("nil repository passed to NewMentorBookingHandler")
	}
	return &MentorBookingHandler{Bookings: bookings}
}

// ListRequests handles GET /v1/bookings/requests: the mentor's
// pending requests, oldest first.
func (h *MentorBookingHandler) ListRequests(c echo.Context) error {
	mentorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Bookings.ListPendingForMentor(c.Request().Context(), mentorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load requests"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toBookingResps(items)})
}

// Confirm handles POST /v1/bookings/:id/confirm.  The meeting link is
// mandatory here: a confirmed session the student cannot join is
// worse than a pending one.  When another request for the same slot
// was confirmed first, the unique index rejects this transition and
// the request stays pending with a 409.
func (h *MentorBookingHandler) Confirm(c echo.Context) error {
	mentorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body struct {
		MeetingLink string `json:"meeting_link"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.MeetingLink = strings.TrimSpace(body.MeetingLink)
	if body.MeetingLink == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "meeting_link is required"})
	}

	ctx := c.Request().Context()
	booking, err := h.Bookings.Confirm(ctx, bookingID, mentorID, body.MeetingLink)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking request"})
		case errors.Is(err, repository.ErrInvalidState):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not awaiting approval"})
		case errors.Is(err, repository.ErrSlotTaken):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot was confirmed for another request"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to confirm booking"})
	}

	if d, derr := h.Bookings.Detail(ctx, booking.ID); derr == nil {
		if perr := notifier.PublishBookingConfirmed(ctx, bookingEvent(d)); perr != nil {
			log.Printf("booking %d: confirmed notification dropped: %v", booking.ID, perr)
		}
	} else {
		log.Printf("booking %d: detail load for notification failed: %v", booking.ID, derr)
	}
	return c.JSON(http.StatusOK, toBookingResp(booking))
}

// Reject handles POST /v1/bookings/:id/reject.
func (h *MentorBookingHandler) Reject(c echo.Context) error {
	mentorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	booking, err := h.Bookings.Reject(c.Request().Context(), bookingID, mentorID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking request"})
		case errors.Is(err, repository.ErrInvalidState):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not awaiting approval"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reject booking"})
	}
	return c.JSON(http.StatusOK, toBookingResp(booking))
}
