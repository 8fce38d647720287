package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/mentorhub/mentor-booking/internal/database"
	"github.com/mentorhub/mentor-booking/internal/model"
)

// openTestDB connects to the MySQL instance named by MYSQL_TEST_DSN
// (e.g. "root:root@tcp(localhost:3306)/mentorhub_test?parseTime=true&loc=UTC")
// and bootstraps the schema.  Without the variable the integration
// tests skip, so the suite stays runnable with no database around;
// a throwaway docker MySQL is enough to enable them.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set; skipping database integration test")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

// newTestUser registers a throwaway user with a unique email.
func newTestUser(t *testing.T, users *UserRepo, role string) uint64 {
	t.Helper()
	email := fmt.Sprintf("%s-%d@it.test", role, time.Now().UnixNano())
	id, err := users.Create(context.Background(), email, "password", role, "Test "+role, 4)
	if err != nil {
		t.Fatalf("create %s: %v", role, err)
	}
	return id
}

func TestConcurrentConfirms_ExactlyOneWins(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	users := NewUserRepo(db)
	mentors := NewMentorRepo(db)
	bookings := NewBookingRepo(db)

	mentorID := newTestUser(t, users, model.RoleMentor)
	if err := mentors.CreateProfile(ctx, mentorID); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	student1 := newTestUser(t, users, model.RoleStudent)
	student2 := newTestUser(t, users, model.RoleStudent)

	start := time.Now().UTC().Truncate(time.Hour).AddDate(0, 0, 2)

	b1, created, err := bookings.Create(ctx, student1, mentorID, start)
	if err != nil || !created {
		t.Fatalf("first request: created=%v err=%v", created, err)
	}
	b2, created, err := bookings.Create(ctx, student2, mentorID, start)
	if err != nil || !created {
		t.Fatalf("second request: created=%v err=%v", created, err)
	}

	// Both requests are pending for the same slot; fire both confirms
	// at once.  The uq_confirmed_slot index must let exactly one
	// through.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, id := range []uint64{b1.ID, b2.ID} {
		wg.Add(1)
		go func(i int, id uint64) {
			defer wg.Done()
			_, errs[i] = bookings.Confirm(ctx, id, mentorID, fmt.Sprintf("https://meet.test/%d", id))
		}(i, id)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotTaken):
			losses++
		default:
			t.Fatalf("unexpected confirm error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("got %d confirmed and %d slot-taken, want exactly 1 and 1", wins, losses)
	}

	// The loser is still pending and can be rejected explicitly.
	for _, id := range []uint64{b1.ID, b2.ID} {
		b, err := bookings.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("reload booking %d: %v", id, err)
		}
		if b.Status == model.BookingPending {
			if _, err := bookings.Reject(ctx, id, mentorID); err != nil {
				t.Errorf("reject losing request: %v", err)
			}
		}
	}
}

func TestRatingLifecycle_RecomputeAndReset(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	users := NewUserRepo(db)
	mentors := NewMentorRepo(db)
	reviews := NewReviewRepo(db)

	mentorID := newTestUser(t, users, model.RoleMentor)
	if err := mentors.CreateProfile(ctx, mentorID); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	studentID := newTestUser(t, users, model.RoleStudent)

	written := make([]model.Review, 0, 3)
	for _, rating := range []uint8{4, 5, 3} {
		rev := model.Review{MentorID: mentorID, StudentID: studentID, Rating: rating}
		if err := reviews.Create(ctx, &rev); err != nil {
			t.Fatalf("create review: %v", err)
		}
		written = append(written, rev)
	}
	if err := mentors.RecomputeRating(ctx, mentorID); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	p, err := mentors.GetByUserID(ctx, mentorID)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if p.Rating != 4.0 {
		t.Errorf("rating: got %v, want 4.0", p.Rating)
	}
	if p.ReviewCount != 3 {
		t.Errorf("review count: got %d, want 3", p.ReviewCount)
	}

	for _, rev := range written {
		if err := reviews.Delete(ctx, rev); err != nil {
			t.Fatalf("delete review %d: %v", rev.ID, err)
		}
	}
	if err := mentors.RecomputeRating(ctx, mentorID); err != nil {
		t.Fatalf("recompute after delete: %v", err)
	}

	p, err = mentors.GetByUserID(ctx, mentorID)
	if err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if p.Rating != 0 || p.ReviewCount != 0 {
		t.Errorf("after deleting all reviews: got rating=%v count=%d, want 0 and 0", p.Rating, p.ReviewCount)
	}
}
