package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentor-booking/internal/repository"
)

// newAvailabilityHandler builds a handler whose repositories are
// never reached: these tests exercise only the validation paths that
// answer before any query runs.
func newAvailabilityHandler() *AvailabilityHandler {
	return NewAvailabilityHandler(
		repository.NewMentorRepo(nil),
		repository.NewAvailabilityRepo(nil),
		repository.NewBookingRepo(nil),
	)
}

func postJSON(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestReplaceRules_RejectsInvalidWeekday(t *testing.T) {
	c, rec := postJSON(t, http.MethodPut, "/v1/mentors/me/availability",
		`{"rules":[{"weekday":7,"start_min":540,"end_min":600}]}`)
	c.Set("user_id", uint64(1))

	if err := newAvailabilityHandler().ReplaceRules(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestReplaceRules_RejectsInvertedWindow(t *testing.T) {
	c, rec := postJSON(t, http.MethodPut, "/v1/mentors/me/availability",
		`{"rules":[{"weekday":1,"start_min":600,"end_min":540}]}`)
	c.Set("user_id", uint64(1))

	if err := newAvailabilityHandler().ReplaceRules(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestReplaceRules_RequiresAuthenticatedUser(t *testing.T) {
	c, rec := postJSON(t, http.MethodPut, "/v1/mentors/me/availability", `{"rules":[]}`)

	if err := newAvailabilityHandler().ReplaceRules(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestListSlots_RejectsBadMentorID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/mentors/abc/slots", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := newAvailabilityHandler().ListSlots(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}
