package handler

import (
	"net/http"
	"testing"

	"github.com/mentorhub/mentor-booking/internal/repository"
)

func newReviewHandler() *ReviewHandler {
	return NewReviewHandler(
		repository.NewReviewRepo(nil),
		repository.NewMentorRepo(nil),
		repository.NewBookingRepo(nil),
	)
}

func TestCreateReview_RejectsRatingOutOfRange(t *testing.T) {
	for _, body := range []string{`{"rating":0}`, `{"rating":6}`} {
		c, rec := postJSON(t, http.MethodPost, "/v1/mentors/5/reviews", body)
		c.Set("user_id", uint64(1))
		c.SetParamNames("id")
		c.SetParamValues("5")

		if err := newReviewHandler().Create(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status got %d, want 400", body, rec.Code)
		}
	}
}

func TestCreateReview_RejectsSelfReview(t *testing.T) {
	c, rec := postJSON(t, http.MethodPost, "/v1/mentors/5/reviews", `{"rating":5}`)
	c.Set("user_id", uint64(5))
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := newReviewHandler().Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}
