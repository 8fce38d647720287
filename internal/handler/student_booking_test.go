package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/mentorhub/mentor-booking/internal/repository"
)

func newStudentHandler() *StudentBookingHandler {
	return NewStudentBookingHandler(repository.NewBookingRepo(nil), repository.NewMentorRepo(nil))
}

func TestCreateBooking_RejectsMissingMentor(t *testing.T) {
	c, rec := postJSON(t, http.MethodPost, "/v1/bookings",
		`{"start_at":"2026-09-08T09:00:00Z"}`)
	c.Set("user_id", uint64(1))

	if err := newStudentHandler().Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestCreateBooking_RejectsSelfBooking(t *testing.T) {
	c, rec := postJSON(t, http.MethodPost, "/v1/bookings",
		`{"mentor_id":5,"start_at":"2026-09-08T09:00:00Z"}`)
	c.Set("user_id", uint64(5))

	if err := newStudentHandler().Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestCreateBooking_RejectsMalformedStart(t *testing.T) {
	c, rec := postJSON(t, http.MethodPost, "/v1/bookings",
		`{"mentor_id":5,"start_at":"tomorrow at nine"}`)
	c.Set("user_id", uint64(1))

	if err := newStudentHandler().Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestCreateBooking_RejectsPastStart(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	c, rec := postJSON(t, http.MethodPost, "/v1/bookings",
		`{"mentor_id":5,"start_at":"`+past+`"}`)
	c.Set("user_id", uint64(1))

	if err := newStudentHandler().Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestConfirmBooking_RequiresMeetingLink(t *testing.T) {
	c, rec := postJSON(t, http.MethodPost, "/v1/bookings/3/confirm", `{"meeting_link":"  "}`)
	c.Set("user_id", uint64(2))
	c.SetParamNames("id")
	c.SetParamValues("3")

	h := NewMentorBookingHandler(repository.NewBookingRepo(nil))
	if err := h.Confirm(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}
