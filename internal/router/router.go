package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/mentorhub/mentor-booking/internal/handler"    // handlers implementing the business logic
	"github.com/mentorhub/mentor-booking/internal/middleware" // JWT, role, rate-limit and cache middleware
	"github.com/mentorhub/mentor-booking/internal/model"
)

// RegisterRoutes registers routes that require no authentication and
// no domain handlers.  Currently that is only the health check used
// by load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes and the /v1/me
// endpoint.  Unauthenticated operations live under /v1/auth;
// /v1/me sits in a protected group guarded by the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token and issues a new pair.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout takes either a bearer access token or a refresh token in
	// the body, so it stays outside the JWT group.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleStudent, model.RoleMentor))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated catalogue: mentor
// browse, search and detail.  Slot availability is not here; it is a
// student operation and lives in the authenticated group.  The cache
// middleware, when non-nil, is applied to all of these since they are
// read-only and identical for every guest.
func RegisterPublic(e *echo.Echo, m *handler.MentorHandler, cache echo.MiddlewareFunc) {
	mw := make([]echo.MiddlewareFunc, 0, 1)
	if cache != nil {
		mw = append(mw, cache)
	}
	e.GET("/v1/mentors", m.List, mw...)
	e.GET("/v1/mentors/:id", m.Show, mw...)
	e.GET("/v1/search/mentors", m.Search, mw...)
}

// RegisterBooking registers every authenticated domain route.  The
// whole group runs behind JWT auth plus the optional Redis rate
// limiter; role middleware then splits the surface between the
// student and mentor sides.
func RegisterBooking(
	e *echo.Echo,
	jwtSecret string,
	limiter echo.MiddlewareFunc,
	av *handler.AvailabilityHandler,
	m *handler.MentorHandler,
	sb *handler.StudentBookingHandler,
	mb *handler.MentorBookingHandler,
	rv *handler.ReviewHandler,
) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	if limiter != nil {
		g.Use(limiter)
	}

	student := middleware.RequireRole(model.RoleStudent)
	mentor := middleware.RequireRole(model.RoleMentor)
	anyRole := middleware.RequireRole(model.RoleStudent, model.RoleMentor)

	// Student side: query open slots, request one, review a mentor.
	// Slot resolution expands the mentor's rules on every hit, so it
	// sits behind the limiter with the other domain routes.
	g.GET("/mentors/:id/slots", av.ListSlots, student)
	g.POST("/bookings", sb.Create, student)
	g.POST("/mentors/:id/reviews", rv.Create, student)
	g.DELETE("/reviews/:id", rv.Delete, student)

	// Mentor side: adjudicate requests, manage the weekly template
	// and the public profile.
	g.GET("/bookings/requests", mb.ListRequests, mentor)
	g.POST("/bookings/:id/confirm", mb.Confirm, mentor)
	g.POST("/bookings/:id/reject", mb.Reject, mentor)
	g.PUT("/mentors/me/availability", av.ReplaceRules, mentor)
	g.GET("/mentors/me/availability", av.ListMyRules, mentor)
	g.PUT("/mentors/me/profile", m.UpdateMyProfile, mentor)

	// Either party: cancel a confirmed session, read the schedule.
	g.POST("/bookings/:id/cancel", sb.Cancel, anyRole)
	g.GET("/schedule", sb.Schedule, anyRole)
}
