package repository

import (
	"context"
	"database/sql"

	"github.com/mentorhub/mentor-booking/internal/model"
)

// ReviewRepo persists reviews.  It only writes review rows (and the
// booking's reviewed flag); the mentor's cached rating is rebuilt by
// MentorRepo.RecomputeRating, which the handler invokes explicitly
// after the review write commits.  Keeping the recompute out of this
// repository makes the dependency visible and testable instead of a
// hidden save hook.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// Create inserts a review and, when it references a booking, marks
// that booking reviewed in the same transaction.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO reviews (mentor_id, student_id, booking_id, rating, feedback) VALUES (?,?,?,?,?)",
		rev.MentorID, rev.StudentID, rev.BookingID, rev.Rating, rev.Feedback)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	if rev.BookingID != nil {
		if _, err := tx.ExecContext(ctx,
			"UPDATE bookings SET reviewed=1 WHERE id=?", *rev.BookingID); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID fetches one review.  sql.ErrNoRows when absent.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	var (
		rev       model.Review
		bookingID sql.NullInt64
		feedback  sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, mentor_id, student_id, booking_id, rating, feedback, created_at FROM reviews WHERE id=? LIMIT 1",
		id).Scan(&rev.ID, &rev.MentorID, &rev.StudentID, &bookingID, &rev.Rating, &feedback, &rev.CreatedAt)
	if err != nil {
		return model.Review{}, err
	}
	if bookingID.Valid {
		b := uint64(bookingID.Int64)
		rev.BookingID = &b
	}
	if feedback.Valid {
		rev.Feedback = feedback.String
	}
	return rev, nil
}

// Delete removes a review and clears the booking's reviewed flag when
// the review was tied to one.  The caller verifies authorship first.
func (r *ReviewRepo) Delete(ctx context.Context, rev model.Review) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", rev.ID); err != nil {
		return err
	}
	if rev.BookingID != nil {
		if _, err := tx.ExecContext(ctx,
			"UPDATE bookings SET reviewed=0 WHERE id=?", *rev.BookingID); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByMentor returns a mentor's reviews newest first.
func (r *ReviewRepo) ListByMentor(ctx context.Context, mentorID uint64) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, mentor_id, student_id, booking_id, rating, feedback, created_at FROM reviews WHERE mentor_id=? ORDER BY created_at DESC, id DESC",
		mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		var (
			rev       model.Review
			bookingID sql.NullInt64
			feedback  sql.NullString
		)
		if err := rows.Scan(&rev.ID, &rev.MentorID, &rev.StudentID, &bookingID, &rev.Rating, &feedback, &rev.CreatedAt); err != nil {
			return nil, err
		}
		if bookingID.Valid {
			b := uint64(bookingID.Int64)
			rev.BookingID = &b
		}
		if feedback.Valid {
			rev.Feedback = feedback.String
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}
