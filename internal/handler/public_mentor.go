package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentor-booking/internal/repository"
)

// MentorHandler covers the public catalogue (browse, detail, search)
// and the mentor's own profile editing.
type MentorHandler struct {
	Mentors *repository.MentorRepo
	Reviews *repository.ReviewRepo
}

func NewMentorHandler(mentors *repository.MentorRepo, reviews *repository.ReviewRepo) *MentorHandler {
	if mentors == nil || reviews == nil {
		panic("nil repository passed to NewMentorHandler")
	}
	return &MentorHandler{Mentors: mentors, Reviews: reviews}
}

// List handles GET /v1/mentors: every approved mentor, best rated
// first.
func (h *MentorHandler) List(c echo.Context) error {
	listings, err := h.Mentors.ListApproved(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": listings})
}

// Search handles GET /v1/search/mentors?q=...  A blank query behaves
// like List.
func (h *MentorHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	ctx := c.Request().Context()

	var (
		listings []repository.MentorListing
		err      error
	)
	if q == "" {
		listings, err = h.Mentors.ListApproved(ctx)
	} else {
		listings, err = h.Mentors.SearchApproved(ctx, q)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"query": q, "items": listings})
}

// Show handles GET /v1/mentors/:id with the full profile plus the
// mentor's reviews.  Unapproved mentors are invisible here just like
// on the slots endpoint.
func (h *MentorHandler) Show(c echo.Context) error {
	mentorID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid mentor id"})
	}
	ctx := c.Request().Context()

	listing, bio, err := h.Mentors.GetListing(ctx, mentorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	reviews, err := h.Reviews.ListByMentor(ctx, mentorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reviewItems := make([]echo.Map, 0, len(reviews))
	for _, r := range reviews {
		reviewItems = append(reviewItems, echo.Map{
			"id":         r.ID,
			"student_id": r.StudentID,
			"rating":     r.Rating,
			"feedback":   r.Feedback,
			"created_at": r.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"mentor_id":    listing.UserID,
		"full_name":    listing.FullName,
		"headline":     listing.Headline,
		"bio":          bio,
		"rating":       listing.Rating,
		"review_count": listing.ReviewCount,
		"reviews":      reviewItems,
	})
}

// UpdateMyProfile handles PUT /v1/mentors/me/profile.
func (h *MentorHandler) UpdateMyProfile(c echo.Context) error {
	mentorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Headline string `json:"headline"`
		Bio      string `json:"bio"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Headline = strings.TrimSpace(body.Headline)
	body.Bio = strings.TrimSpace(body.Bio)
	if len(body.Headline) > 160 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "headline too long"})
	}
	if err := h.Mentors.UpdateProfile(c.Request().Context(), mentorID, body.Headline, body.Bio); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}
