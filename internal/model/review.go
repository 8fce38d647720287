package model

import "time"

// Review is a student's rating of a mentor, optionally tied to the
// booking it concerns, stored in the `reviews` table.  Creating or
// deleting a review triggers a full recomputation of the mentor's
// cached rating fields.
//
// Fields:
//  ID        – primary key identifier.
//  MentorID  – reviewed mentor user.
//  StudentID – authoring student user.
//  BookingID – session the review concerns (nullable).
//  Rating    – integer score 1..5.
//  Feedback  – free-text comment.
//  CreatedAt – timestamp of creation.
type Review struct {
	ID        uint64    // reviews.id
	MentorID  uint64    // reviews.mentor_id
	StudentID uint64    // reviews.student_id
	BookingID *uint64   // reviews.booking_id (nullable)
	Rating    uint8     // reviews.rating
	Feedback  string    // reviews.feedback
	CreatedAt time.Time // reviews.created_at
}
