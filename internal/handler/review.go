package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentor-booking/internal/model"
	"github.com/mentorhub/mentor-booking/internal/repository"
)

// ReviewHandler lets students review mentors and rebuilds the
// mentor's cached rating after every review mutation.
type ReviewHandler struct {
	Reviews  *repository.ReviewRepo
	Mentors  *repository.MentorRepo
	Bookings *repository.BookingRepo
}

func NewReviewHandler(reviews *repository.ReviewRepo, mentors *repository.MentorRepo, bookings *repository.BookingRepo) *ReviewHandler {
	if reviews == nil || mentors == nil || bookings == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Reviews: reviews, Mentors: mentors, Bookings: bookings}
}

// Create handles POST /v1/mentors/:id/reviews.  A review may stand
// alone or reference a completed session; a referenced booking must
// belong to this student-mentor pair, be COMPLETED, and not be
// reviewed yet.  The rating cache recompute runs after the review
// commits and is only logged on failure: the review is the record,
// the cache catches up on the next write.
func (h *ReviewHandler) Create(c echo.Context) error {
	studentID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	mentorID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid mentor id"})
	}
	if mentorID == studentID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot review yourself"})
	}
	var body struct {
		Rating    uint8   `json:"rating"`
		Feedback  string  `json:"feedback"`
		BookingID *uint64 `json:"booking_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Rating < 1 || body.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	body.Feedback = strings.TrimSpace(body.Feedback)

	ctx := c.Request().Context()

	if _, err := h.Mentors.GetByUserID(ctx, mentorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if body.BookingID != nil {
		booking, err := h.Bookings.GetByID(ctx, *body.BookingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if booking.StudentID != studentID || booking.MentorID != mentorID {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "booking does not belong to you"})
		}
		if booking.Status != model.BookingCompleted {
			return c.JSON(http.StatusConflict, echo.Map{"error": "only completed sessions can be reviewed"})
		}
		if booking.Reviewed {
			return c.JSON(http.StatusConflict, echo.Map{"error": "session already reviewed"})
		}
	}

	rev := model.Review{
		MentorID:  mentorID,
		StudentID: studentID,
		BookingID: body.BookingID,
		Rating:    body.Rating,
		Feedback:  body.Feedback,
	}
	if err := h.Reviews.Create(ctx, &rev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save review"})
	}

	if err := h.Mentors.RecomputeRating(ctx, mentorID); err != nil {
		log.Printf("mentor %d: rating recompute failed: %v", mentorID, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":       rev.ID,
		"rating":   rev.Rating,
		"feedback": rev.Feedback,
	})
}

// Delete handles DELETE /v1/reviews/:id.  Only the author may remove
// a review; the mentor's rating is recomputed afterwards, dropping to
// zero when the last review goes.
func (h *ReviewHandler) Delete(c echo.Context) error {
	studentID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviewID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	ctx := c.Request().Context()

	rev, err := h.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rev.StudentID != studentID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your review"})
	}
	if err := h.Reviews.Delete(ctx, rev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
	}
	if err := h.Mentors.RecomputeRating(ctx, rev.MentorID); err != nil {
		log.Printf("mentor %d: rating recompute failed: %v", rev.MentorID, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
