package model

import "time"

// Mentor profile status values.  Only APPROVED mentors are visible to
// students and bookable; slot queries for any other status answer 404.
const (
	MentorStatusPending  = "PENDING"
	MentorStatusApproved = "APPROVED"
)

// MentorProfile extends a MENTOR user with marketplace data as stored
// in the `mentor_profiles` table.  Rating and ReviewCount are caches
// recomputed from the reviews table after every review mutation; they
// are never written directly by handlers.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owning user (unique, role MENTOR).
//  Headline    – short tagline shown in listings.
//  Bio         – free-text description.
//  Status      – PENDING or APPROVED.
//  Rating      – average review rating, one decimal place, 0 when unreviewed.
//  ReviewCount – number of reviews backing Rating.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type MentorProfile struct {
	ID          uint64    // mentor_profiles.id
	UserID      uint64    // mentor_profiles.user_id
	Headline    string    // mentor_profiles.headline
	Bio         string    // mentor_profiles.bio
	Status      string    // mentor_profiles.status
	Rating      float64   // mentor_profiles.rating
	ReviewCount uint32    // mentor_profiles.review_count
	CreatedAt   time.Time // mentor_profiles.created_at
	UpdatedAt   time.Time // mentor_profiles.updated_at
}
