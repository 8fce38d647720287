// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: a
// missing row (sql.ErrNoRows), a resource owned by someone else
// (ErrForbidden), an operation invalid for the booking's current
// status (ErrInvalidState) and a lost slot race (ErrSlotTaken).
// Nothing is ever collapsed into a generic failure; callers must be
// able to tell "no such booking", "not yours" and "someone else won"
// apart.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrForbidden is returned when the caller attempts an operation
// on a booking they are not a party to. Handlers should translate
// this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidState is returned when a transition is requested that the
// booking state machine does not allow from the current status, such
// as confirming an already-rejected booking. Handlers should
// translate this into an HTTP 409 response.
var ErrInvalidState = errors.New("invalid state for operation")

// ErrSlotTaken is returned when another CONFIRMED booking already
// occupies the same (mentor, start) pair. It is raised by the store's
// uq_confirmed_slot unique index, never by an application-level read,
// so two racing confirmations can never both succeed. Handlers should
// translate this into an HTTP 409 response.
var ErrSlotTaken = errors.New("slot already confirmed for another booking")

// ErrRequestPending is returned when a student already has a pending
// request for the same (mentor, start) pair. The insert that trips
// uq_pending_request did not change anything; the earlier request
// stands.
var ErrRequestPending = errors.New("request already pending for this slot")

// mysql error number for duplicate entry in a unique index.
const mysqlDupEntry = 1062

// isDuplicateEntry reports whether err is a MySQL duplicate-key
// violation. The driver's typed error is preferred; the check is the
// single point where constraint violations enter the domain error
// taxonomy.
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDupEntry
}
