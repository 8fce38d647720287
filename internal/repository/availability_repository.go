package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/mentorhub/mentor-booking/internal/model"
)

// AvailabilityRepo stores mentors' recurring weekly availability
// rules.  The rule set is the template the schedule package expands
// into concrete slots; it is replaced wholesale on update, so there
// is no per-rule mutation surface.
type AvailabilityRepo struct{ DB *sql.DB }

func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{DB: db} }

// ListByMentor returns the mentor's rules ordered by weekday then
// start time so the template reads naturally.
func (r *AvailabilityRepo) ListByMentor(ctx context.Context, mentorID uint64) ([]model.AvailabilityRule, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, mentor_id, weekday, start_min, end_min FROM availability_rules WHERE mentor_id=? ORDER BY weekday, start_min",
		mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rules := make([]model.AvailabilityRule, 0)
	for rows.Next() {
		var rule model.AvailabilityRule
		var wd uint8
		if err := rows.Scan(&rule.ID, &rule.MentorID, &wd, &rule.StartMin, &rule.EndMin); err != nil {
			return nil, err
		}
		rule.Weekday = time.Weekday(wd)
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Replace swaps the mentor's entire rule set for the given one inside
// a single transaction.  Passing an empty slice clears the template,
// which makes the mentor unbookable without touching the profile.
func (r *AvailabilityRepo) Replace(ctx context.Context, mentorID uint64, rules []model.AvailabilityRule) error {
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
	if _, err := tx.ExecContext(ctx, "DELETE FROM availability_rules WHERE mentor_id=?", mentorID); err != nil {
		return err
	}
	for _, rule := range rules {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO availability_rules (mentor_id, weekday, start_min, end_min) VALUES (?,?,?,?)",
			mentorID, uint8(rule.Weekday), rule.StartMin, rule.EndMin); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
