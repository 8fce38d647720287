package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentor-booking/internal/model"
	"github.com/mentorhub/mentor-booking/internal/repository"
	"github.com/mentorhub/mentor-booking/internal/schedule"
)

// AvailabilityHandler serves both sides of the availability template:
// mentors publish their weekly rules, students query the resolved
// bookable slots.  Slots are derived on every query; only rules and
// bookings are stored.
type AvailabilityHandler struct {
	Mentors      *repository.MentorRepo
	Availability *repository.AvailabilityRepo
	Bookings     *repository.BookingRepo
}

func NewAvailabilityHandler(mentors *repository.MentorRepo, availability *repository.AvailabilityRepo, bookings *repository.BookingRepo) *AvailabilityHandler {
	if mentors == nil || availability == nil || bookings == nil {
		panic("nil repository passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Mentors: mentors, Availability: availability, Bookings: bookings}
}

type ruleReq struct {
	Weekday  int    `json:"weekday"` // 0=Sunday..6=Saturday
	StartMin uint16 `json:"start_min"`
	EndMin   uint16 `json:"end_min"`
}

type ruleResp struct {
	ID       uint64 `json:"id"`
	Weekday  int    `json:"weekday"`
	StartMin uint16 `json:"start_min"`
	EndMin   uint16 `json:"end_min"`
}

// ReplaceRules handles PUT /v1/mentors/me/availability.  The body is
// the mentor's complete new weekly template; the previous rule set is
// discarded wholesale.  Every rule is validated before anything is
// written.
func (h *AvailabilityHandler) ReplaceRules(c echo.Context) error {
	mentorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Rules []ruleReq `json:"rules"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	rules := make([]model.AvailabilityRule, 0, len(body.Rules))
	for _, rr := range body.Rules {
		rule := model.AvailabilityRule{
			MentorID: mentorID,
			Weekday:  time.Weekday(rr.Weekday),
			StartMin: rr.StartMin,
			EndMin:   rr.EndMin,
		}
		if err := rule.Validate(); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		rules = append(rules, rule)
	}
	ctx := c.Request().Context()
	if err := h.Availability.Replace(ctx, mentorID, rules); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save availability"})
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": len(rules)})
}

// ListMyRules handles GET /v1/mentors/me/availability.
func (h *AvailabilityHandler) ListMyRules(c echo.Context) error {
	mentorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	rules, err := h.Availability.ListByMentor(c.Request().Context(), mentorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load availability"})
	}
	items := make([]ruleResp, 0, len(rules))
	for _, r := range rules {
		items = append(items, ruleResp{ID: r.ID, Weekday: int(r.Weekday), StartMin: r.StartMin, EndMin: r.EndMin})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListSlots handles GET /v1/mentors/:id/slots.  It expands the
// mentor's rules over the default horizon (seven days starting
// tomorrow) and subtracts slots already held by a CONFIRMED booking.
// Slots contested only by pending requests stay in the answer.  An
// unknown or unapproved mentor is a 404, deliberately distinct from
// an approved mentor with no open slots.
func (h *AvailabilityHandler) ListSlots(c echo.Context) error {
	mentorID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid mentor id"})
	}
	ctx := c.Request().Context()

	profile, err := h.Mentors.GetByUserID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if profile.Status != model.MentorStatusApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
	}

	rules, err := h.Availability.ListByMentor(ctx, mentorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load availability"})
	}

	from := schedule.HorizonStart(time.Now())
	to := from.AddDate(0, 0, schedule.HorizonDays)
	candidates := schedule.Generate(rules, from, schedule.HorizonDays)

	booked, err := h.Bookings.ConfirmedStarts(ctx, mentorID, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"mentor_id": mentorID,
		"items":     schedule.FilterBooked(candidates, booked),
	})
}
