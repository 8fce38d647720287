package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsDuplicateEntry(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '5-2026-09-08 09:00:00-CONFIRMED' for key 'uq_confirmed_slot'"}

	if !isDuplicateEntry(dup) {
		t.Error("error 1062 should be recognized as a duplicate entry")
	}
	if !isDuplicateEntry(fmt.Errorf("insert booking: %w", dup)) {
		t.Error("wrapped 1062 should still be recognized")
	}
	if isDuplicateEntry(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"}) {
		t.Error("other MySQL errors are not duplicates")
	}
	if isDuplicateEntry(errors.New("duplicate entry")) {
		t.Error("plain errors are not duplicates")
	}
	if isDuplicateEntry(nil) {
		t.Error("nil is not a duplicate")
	}
}

func TestRound1(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{4.25, 4.3},
		{4.24, 4.2},
		{4.666666, 4.7},
		{5, 5},
		{3.3333333, 3.3},
	}
	for _, tc := range cases {
		if got := round1(tc.in); got != tc.want {
			t.Errorf("round1(%v): got %v, want %v", tc.in, got, tc.want)
		}
	}
}
