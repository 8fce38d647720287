package main // Entry point package

import (
	"context" // context for the schema bootstrap
	"log"     // Logging library

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/mentorhub/mentor-booking/internal/config"     // env config loader
	"github.com/mentorhub/mentor-booking/internal/database"   // MySQL connection and schema
	"github.com/mentorhub/mentor-booking/internal/handler"    // HTTP handlers
	"github.com/mentorhub/mentor-booking/internal/middleware" // rate limiter and response cache
	"github.com/mentorhub/mentor-booking/internal/queue"      // notification consumer
	"github.com/mentorhub/mentor-booking/internal/repository" // data access layer
	"github.com/mentorhub/mentor-booking/internal/router"     // route registration
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	mentors := repository.NewMentorRepo(db)
	availability := repository.NewAvailabilityRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens, mentors)
	mentorH := handler.NewMentorHandler(mentors, reviews)
	availH := handler.NewAvailabilityHandler(mentors, availability, bookings)
	studentH := handler.NewStudentBookingHandler(bookings, mentors)
	mentorBookH := handler.NewMentorBookingHandler(bookings)
	reviewH := handler.NewReviewHandler(reviews, mentors, bookings)

	// Redis is optional: with no client both middlewares stay nil and
	// requests pass through unlimited and uncached.
	var (
		limiter echo.MiddlewareFunc
		cacheMW echo.MiddlewareFunc
	)
	if rdb := config.NewRedisClient(); rdb != nil {
		limiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	// Notification consumer runs for the life of the process and
	// reconnects on broker failures; it never takes the API down.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, mentorH, cacheMW)
	router.RegisterBooking(e, cfg.JWTSecret, limiter, availH, mentorH, studentH, mentorBookH, reviewH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
