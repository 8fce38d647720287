package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentor-booking/internal/handler"
	"github.com/mentorhub/mentor-booking/internal/model"
	"github.com/mentorhub/mentor-booking/internal/repository"
	"github.com/mentorhub/mentor-booking/internal/utils"
)

const testSecret = "router-test-secret"

// newTestServer wires the full route table over repositories that are
// never reached: every request in these tests is answered by the JWT
// or role middleware before any handler runs a query.
func newTestServer() *echo.Echo {
	mentors := repository.NewMentorRepo(nil)
	availability := repository.NewAvailabilityRepo(nil)
	bookings := repository.NewBookingRepo(nil)
	reviews := repository.NewReviewRepo(nil)

	mentorH := handler.NewMentorHandler(mentors, reviews)
	availH := handler.NewAvailabilityHandler(mentors, availability, bookings)
	studentH := handler.NewStudentBookingHandler(bookings, mentors)
	mentorBookH := handler.NewMentorBookingHandler(bookings)
	reviewH := handler.NewReviewHandler(reviews, mentors, bookings)

	e := echo.New()
	RegisterRoutes(e)
	RegisterPublic(e, mentorH, nil)
	RegisterBooking(e, testSecret, nil, availH, mentorH, studentH, mentorBookH, reviewH)
	return e
}

func bearerFor(t *testing.T, userID uint64, role string) string {
	t.Helper()
	at, err := utils.NewAccessToken(testSecret, userID, role, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	return "Bearer " + at.Token
}

func TestSlotsRoute_RequiresAuthentication(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/mentors/1/slots", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous slots query: got %d, want 401", rec.Code)
	}
}

func TestSlotsRoute_RequiresStudentRole(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/mentors/1/slots", nil)
	req.Header.Set("Authorization", bearerFor(t, 2, model.RoleMentor))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("mentor querying slots: got %d, want 403", rec.Code)
	}
}

func TestBookingMutations_RequireAuthentication(t *testing.T) {
	e := newTestServer()

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/v1/bookings"},
		{http.MethodPost, "/v1/bookings/1/confirm"},
		{http.MethodPost, "/v1/bookings/1/cancel"},
		{http.MethodGet, "/v1/schedule"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s anonymous: got %d, want 401", route.method, route.path, rec.Code)
		}
	}
}

func TestHealthRoute_NeedsNoToken(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("healthz: got %d, want 200", rec.Code)
	}
}
