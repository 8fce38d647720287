package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/mentorhub/mentor-booking/internal/model"
)

// BookingRepo owns every booking mutation.  All transitions run in a
// transaction that re-reads the row with FOR UPDATE, checks ownership
// and the state machine, and then writes.  Same-slot races are not
// resolved by those reads: the bookings table's partial unique
// indexes are the only serialization between concurrent requests, and
// a duplicate-key error at write time is translated into the domain
// taxonomy here.  Application code never assumes read-then-write is
// atomic on its own.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingCols = "id, student_id, mentor_id, start_at, end_at, status, meeting_link, reviewed, created_at, updated_at"

func scanBooking(row *sql.Row) (model.Booking, error) {
	var (
		b      model.Booking
		status string
		link   sql.NullString
	)
	err := row.Scan(&b.ID, &b.StudentID, &b.MentorID, &b.StartAt, &b.EndAt,
		&status, &link, &b.Reviewed, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	b.Status = model.BookingStatus(status)
	if link.Valid {
		l := link.String
		b.MeetingLink = &l
	}
	b.StartAt = b.StartAt.UTC()
	b.EndAt = b.EndAt.UTC()
	return b, nil
}

// GetByID fetches one booking.  sql.ErrNoRows when absent.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	return scanBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE id=? LIMIT 1", id))
}

// Create inserts a new PENDING_APPROVAL booking for the student.  The
// end instant is derived, never taken from the caller.  When the
// student already has a pending request for the same (mentor, start),
// the insert trips uq_pending_request; the existing row is returned
// with created=false instead of an error, making repeated submissions
// harmless.  A confirmed conflict present at insert time is reported
// as ErrSlotTaken via a pre-check; the confirm path re-verifies under
// the index, so this check is a courtesy, not the guarantee.
func (r *BookingRepo) Create(ctx context.Context, studentID, mentorID uint64, startAt time.Time) (model.Booking, bool, error) {
	startAt = startAt.UTC()
	endAt := startAt.Add(model.SessionDuration)

	var taken int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE mentor_id=? AND start_at=? AND status=?",
		mentorID, startAt, string(model.BookingConfirmed)).Scan(&taken)
	if err != nil {
		return model.Booking{}, false, err
	}
	if taken > 0 {
		return model.Booking{}, false, ErrSlotTaken
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings (student_id, mentor_id, start_at, end_at, status) VALUES (?,?,?,?,?)",
		studentID, mentorID, startAt, endAt, string(model.BookingPending))
	if err != nil {
		if isDuplicateEntry(err) {
			// Race-induced duplicate: the earlier pending request stands.
			b, gerr := scanBooking(r.DB.QueryRowContext(ctx,
				"SELECT "+bookingCols+" FROM bookings WHERE mentor_id=? AND start_at=? AND student_id=? AND status=? LIMIT 1",
				mentorID, startAt, studentID, string(model.BookingPending)))
			if gerr != nil {
				return model.Booking{}, false, ErrRequestPending
			}
			return b, false, nil
		}
		return model.Booking{}, false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, false, err
	}
	b, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return model.Booking{}, false, err
	}
	return b, true, nil
}

// lockBooking loads a booking inside tx with FOR UPDATE so the row
// cannot transition underneath the caller before commit.
func lockBooking(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, error) {
	var (
		b      model.Booking
		status string
		link   sql.NullString
	)
	err := tx.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE id=? FOR UPDATE", id).
		Scan(&b.ID, &b.StudentID, &b.MentorID, &b.StartAt, &b.EndAt,
			&status, &link, &b.Reviewed, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	b.Status = model.BookingStatus(status)
	if link.Valid {
		l := link.String
		b.MeetingLink = &l
	}
	b.StartAt = b.StartAt.UTC()
	b.EndAt = b.EndAt.UTC()
	return b, nil
}

// Confirm transitions a pending booking to CONFIRMED on behalf of its
// mentor, storing the meeting link.  Between request creation and
// this call another request for the same slot may already have been
// confirmed; the uq_confirmed_slot index rejects the UPDATE in that
// case and the booking is left pending with ErrSlotTaken returned, so
// exactly one of any number of racing confirmations can succeed.
func (r *BookingRepo) Confirm(ctx context.Context, bookingID, mentorID uint64, meetingLink string) (model.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := lockBooking(ctx, tx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if b.MentorID != mentorID {
		return model.Booking{}, ErrForbidden
	}
	if !b.Status.CanTransitionTo(model.BookingConfirmed) {
		return model.Booking{}, ErrInvalidState
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE bookings SET status=?, meeting_link=? WHERE id=?",
		string(model.BookingConfirmed), meetingLink, bookingID)
	if err != nil {
		if isDuplicateEntry(err) {
			return model.Booking{}, ErrSlotTaken
		}
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		if isDuplicateEntry(err) {
			return model.Booking{}, ErrSlotTaken
		}
		return model.Booking{}, err
	}
	committed = true
	return r.GetByID(ctx, bookingID)
}

// Reject transitions a pending booking to REJECTED on behalf of its
// mentor.
func (r *BookingRepo) Reject(ctx context.Context, bookingID, mentorID uint64) (model.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := lockBooking(ctx, tx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if b.MentorID != mentorID {
		return model.Booking{}, ErrForbidden
	}
	if !b.Status.CanTransitionTo(model.BookingRejected) {
		return model.Booking{}, ErrInvalidState
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=?",
		string(model.BookingRejected), bookingID); err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return r.GetByID(ctx, bookingID)
}

// Cancel transitions a confirmed booking to the terminal cancelled
// status matching the acting party's side.  Either party may cancel;
// anyone else gets ErrForbidden.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID, userID uint64) (model.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := lockBooking(ctx, tx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if !b.Party(userID) {
		return model.Booking{}, ErrForbidden
	}
	next := model.BookingCancelledByStudent
	if userID == b.MentorID {
		next = model.BookingCancelledByMentor
	}
	if !b.Status.CanTransitionTo(next) {
		return model.Booking{}, ErrInvalidState
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=?", string(next), bookingID); err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return r.GetByID(ctx, bookingID)
}

// ListPendingForMentor returns the mentor's open requests oldest
// first, the order in which they should be adjudicated.
func (r *BookingRepo) ListPendingForMentor(ctx context.Context, mentorID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE mentor_id=? AND status=? ORDER BY created_at ASC, id ASC",
		mentorID, string(model.BookingPending))
}

// ConfirmedStarts returns the start instants of the mentor's
// confirmed bookings inside [from, to), the set the availability
// resolver subtracts from generated slots.
func (r *BookingRepo) ConfirmedStarts(ctx context.Context, mentorID uint64, from, to time.Time) ([]time.Time, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT start_at FROM bookings WHERE mentor_id=? AND status=? AND start_at >= ? AND start_at < ?",
		mentorID, string(model.BookingConfirmed), from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	starts := make([]time.Time, 0)
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		starts = append(starts, t.UTC())
	}
	return starts, rows.Err()
}

// ListUpcoming returns the user's confirmed future bookings soonest
// first, for either side of the relationship.
func (r *BookingRepo) ListUpcoming(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE (student_id=? OR mentor_id=?) AND status=? AND start_at > UTC_TIMESTAMP() ORDER BY start_at ASC",
		userID, userID, string(model.BookingConfirmed))
}

// CompleteElapsed lazily applies the time-driven COMPLETED transition
// to the user's confirmed bookings whose end has passed.  Schedule
// reads call it first so listings never show stale CONFIRMED rows.
func (r *BookingRepo) CompleteElapsed(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE (student_id=? OR mentor_id=?) AND status=? AND end_at <= UTC_TIMESTAMP()",
		string(model.BookingCompleted), userID, userID, string(model.BookingConfirmed))
	return err
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		var (
			b      model.Booking
			status string
			link   sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.StudentID, &b.MentorID, &b.StartAt, &b.EndAt,
			&status, &link, &b.Reviewed, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.Status = model.BookingStatus(status)
		if link.Valid {
			l := link.String
			b.MeetingLink = &l
		}
		b.StartAt = b.StartAt.UTC()
		b.EndAt = b.EndAt.UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}

// BookingDetail is a booking joined with both parties' contact data,
// the payload notification events are built from.
type BookingDetail struct {
	Booking      model.Booking
	StudentName  string
	StudentEmail string
	MentorName   string
	MentorEmail  string
}

// Detail loads a booking with both parties resolved.
func (r *BookingRepo) Detail(ctx context.Context, bookingID uint64) (BookingDetail, error) {
	const q = `SELECT b.id, b.student_id, b.mentor_id, b.start_at, b.end_at, b.status,
	                  b.meeting_link, b.reviewed, b.created_at, b.updated_at,
	                  s.full_name, s.email, m.full_name, m.email
	           FROM bookings b
	           JOIN users s ON s.id = b.student_id
	           JOIN users m ON m.id = b.mentor_id
	           WHERE b.id = ?`
	var (
		d      BookingDetail
		status string
		link   sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, q, bookingID).Scan(
		&d.Booking.ID, &d.Booking.StudentID, &d.Booking.MentorID,
		&d.Booking.StartAt, &d.Booking.EndAt, &status, &link,
		&d.Booking.Reviewed, &d.Booking.CreatedAt, &d.Booking.UpdatedAt,
		&d.StudentName, &d.StudentEmail, &d.MentorName, &d.MentorEmail)
	if err != nil {
		return BookingDetail{}, err
	}
	d.Booking.Status = model.BookingStatus(status)
	if link.Valid {
		l := link.String
		d.Booking.MeetingLink = &l
	}
	d.Booking.StartAt = d.Booking.StartAt.UTC()
	d.Booking.EndAt = d.Booking.EndAt.UTC()
	return d, nil
}
