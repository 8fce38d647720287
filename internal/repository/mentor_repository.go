package repository

import (
	"context"
	"database/sql"
	"math"

	"github.com/mentorhub/mentor-booking/internal/model"
)

// MentorRepo manages mentor profiles and the cached rating fields.
// Profiles are thin CRUD; the interesting part is RecomputeRating,
// which rebuilds the rating cache from the reviews table from scratch
// after every review mutation.
type MentorRepo struct{ DB *sql.DB }

func NewMentorRepo(db *sql.DB) *MentorRepo { return &MentorRepo{DB: db} }

// CreateProfile inserts an empty profile for a newly registered
// mentor.  Profiles start APPROVED; a moderation queue can flip the
// default to PENDING without code changes.
func (r *MentorRepo) CreateProfile(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO mentor_profiles (user_id, status) VALUES (?, ?)",
		userID, model.MentorStatusApproved)
	return err
}

// GetByUserID returns the profile for a mentor user.  sql.ErrNoRows
// means the user is not a mentor at all.
func (r *MentorRepo) GetByUserID(ctx context.Context, userID uint64) (model.MentorProfile, error) {
	var p model.MentorProfile
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, headline, COALESCE(bio,''), status, rating, review_count, created_at, updated_at
		 FROM mentor_profiles WHERE user_id=? LIMIT 1`, userID).
		Scan(&p.ID, &p.UserID, &p.Headline, &p.Bio, &p.Status, &p.Rating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// UpdateProfile stores the mentor-editable fields.
func (r *MentorRepo) UpdateProfile(ctx context.Context, userID uint64, headline, bio string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE mentor_profiles SET headline=?, bio=? WHERE user_id=?",
		headline, bio, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MentorListing is the public browse row: profile data joined with
// the mentor's display name.
type MentorListing struct {
	UserID      uint64  `json:"mentor_id"`
	FullName    string  `json:"full_name"`
	Headline    string  `json:"headline"`
	Rating      float64 `json:"rating"`
	ReviewCount uint32  `json:"review_count"`
}

// ListApproved returns all bookable mentors, best rated first.
func (r *MentorRepo) ListApproved(ctx context.Context) ([]MentorListing, error) {
	const q = `SELECT p.user_id, u.full_name, p.headline, p.rating, p.review_count
	           FROM mentor_profiles p
	           JOIN users u ON u.id = p.user_id
	           WHERE p.status = ? AND u.is_active = 1
	           ORDER BY p.rating DESC, p.review_count DESC, p.user_id`
	return r.scanListings(ctx, q, model.MentorStatusApproved)
}

// SearchApproved returns bookable mentors whose name or headline
// contains the query string, best rated first.
func (r *MentorRepo) SearchApproved(ctx context.Context, query string) ([]MentorListing, error) {
	const q = `SELECT p.user_id, u.full_name, p.headline, p.rating, p.review_count
	           FROM mentor_profiles p
	           JOIN users u ON u.id = p.user_id
	           WHERE p.status = ? AND u.is_active = 1
	             AND (u.full_name LIKE CONCAT('%', ?, '%') OR p.headline LIKE CONCAT('%', ?, '%'))
	           ORDER BY p.rating DESC, p.review_count DESC, p.user_id`
	return r.scanListings(ctx, q, model.MentorStatusApproved, query, query)
}

// GetListing returns the public detail view of one approved mentor:
// the listing row plus the bio.  Unapproved or missing mentors both
// come back as sql.ErrNoRows so callers answer a uniform 404.
func (r *MentorRepo) GetListing(ctx context.Context, userID uint64) (MentorListing, string, error) {
	var (
		m   MentorListing
		bio string
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT p.user_id, u.full_name, p.headline, p.rating, p.review_count, COALESCE(p.bio,'')
		 FROM mentor_profiles p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = ? AND p.status = ? AND u.is_active = 1
		 LIMIT 1`, userID, model.MentorStatusApproved).
		Scan(&m.UserID, &m.FullName, &m.Headline, &m.Rating, &m.ReviewCount, &bio)
	return m, bio, err
}

func (r *MentorRepo) scanListings(ctx context.Context, q string, args ...interface{}) ([]MentorListing, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]MentorListing, 0)
	for rows.Next() {
		var m MentorListing
		if err := rows.Scan(&m.UserID, &m.FullName, &m.Headline, &m.Rating, &m.ReviewCount); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RecomputeRating rebuilds the mentor's cached rating fields from the
// reviews table.  It always recomputes from scratch rather than
// adjusting incrementally, so the cache cannot drift.  With no
// reviews left both fields reset to zero.  Callers invoke it after a
// review write commits and must only log a failure: the rating cache
// is eventually consistent, the review itself is not.
func (r *MentorRepo) RecomputeRating(ctx context.Context, mentorID uint64) error {
	var (
		count uint32
		avg   sql.NullFloat64
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*), AVG(rating) FROM reviews WHERE mentor_id=?",
		mentorID).Scan(&count, &avg)
	if err != nil {
		return err
	}
	rating := 0.0
	if count > 0 && avg.Valid {
		rating = round1(avg.Float64)
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE mentor_profiles SET rating=?, review_count=? WHERE user_id=?",
		rating, count, mentorID)
	return err
}

// round1 rounds to one decimal place, the precision of the
// mentor_profiles.rating column.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
