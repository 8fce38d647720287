package database

import (
	"context"
	"database/sql"
)

// schemaStatements creates all tables used by the service.  Each
// statement is idempotent (IF NOT EXISTS) so EnsureSchema can run on
// every boot.
//
// The two generated-column unique keys on bookings are the sole
// serialization mechanism for same-slot races and must not be
// removed:
//
//   uq_confirmed_slot   – at most one CONFIRMED booking per
//                         (mentor_id, start_at).  A losing confirm
//                         surfaces as duplicate-key error 1062, which
//                         the repository translates to ErrSlotTaken.
//   uq_pending_request  – at most one PENDING_APPROVAL booking per
//                         (mentor_id, start_at, student_id), so one
//                         student cannot double-submit the same slot
//                         while distinct students may still contend
//                         for it.
//
// The key columns are NULL for every other status, and MySQL unique
// indexes never match NULL against NULL, so terminal rows drop out of
// both constraints on transition.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255)    NOT NULL,
		password_hash VARCHAR(255)    NOT NULL,
		role          ENUM('STUDENT','MENTOR') NOT NULL,
		full_name     VARCHAR(255)    NOT NULL DEFAULT '',
		is_active     TINYINT(1)      NOT NULL DEFAULT 1,
		created_at    DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64)        NOT NULL,
		expires_at DATETIME        NOT NULL,
		revoked_at DATETIME        NULL,
		created_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_hash (token_hash),
		KEY idx_refresh_user (user_id),
		CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS mentor_profiles (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id      BIGINT UNSIGNED NOT NULL,
		headline     VARCHAR(255)    NOT NULL DEFAULT '',
		bio          TEXT            NULL,
		status       ENUM('PENDING','APPROVED') NOT NULL DEFAULT 'APPROVED',
		rating       DECIMAL(2,1)    NOT NULL DEFAULT 0.0,
		review_count INT UNSIGNED    NOT NULL DEFAULT 0,
		created_at   DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_mentor_user (user_id),
		CONSTRAINT fk_mentor_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS availability_rules (
		id        BIGINT UNSIGNED  NOT NULL AUTO_INCREMENT,
		mentor_id BIGINT UNSIGNED  NOT NULL,
		weekday   TINYINT UNSIGNED NOT NULL,
		start_min SMALLINT UNSIGNED NOT NULL,
		end_min   SMALLINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY idx_rules_mentor (mentor_id),
		CONSTRAINT fk_rules_mentor FOREIGN KEY (mentor_id) REFERENCES users (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		student_id    BIGINT UNSIGNED NOT NULL,
		mentor_id     BIGINT UNSIGNED NOT NULL,
		start_at      DATETIME        NOT NULL,
		end_at        DATETIME        NOT NULL,
		status        ENUM('PENDING_APPROVAL','CONFIRMED','REJECTED',
		                   'CANCELLED_BY_STUDENT','CANCELLED_BY_MENTOR','COMPLETED')
		              NOT NULL DEFAULT 'PENDING_APPROVAL',
		meeting_link  VARCHAR(512)    NULL,
		reviewed      TINYINT(1)      NOT NULL DEFAULT 0,
		created_at    DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		confirmed_key CHAR(1) GENERATED ALWAYS AS (IF(status = 'CONFIRMED', 'C', NULL)) STORED,
		pending_key   CHAR(1) GENERATED ALWAYS AS (IF(status = 'PENDING_APPROVAL', 'P', NULL)) STORED,
		PRIMARY KEY (id),
		UNIQUE KEY uq_confirmed_slot (mentor_id, start_at, confirmed_key),
		UNIQUE KEY uq_pending_request (mentor_id, start_at, student_id, pending_key),
		KEY idx_bookings_student (student_id, status, start_at),
		KEY idx_bookings_mentor (mentor_id, status, start_at),
		CONSTRAINT fk_bookings_student FOREIGN KEY (student_id) REFERENCES users (id),
		CONSTRAINT fk_bookings_mentor FOREIGN KEY (mentor_id) REFERENCES users (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		mentor_id  BIGINT UNSIGNED NOT NULL,
		student_id BIGINT UNSIGNED NOT NULL,
		booking_id BIGINT UNSIGNED NULL,
		rating     TINYINT UNSIGNED NOT NULL,
		feedback   TEXT            NULL,
		created_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_reviews_mentor (mentor_id),
		CONSTRAINT fk_reviews_mentor FOREIGN KEY (mentor_id) REFERENCES users (id),
		CONSTRAINT fk_reviews_student FOREIGN KEY (student_id) REFERENCES users (id),
		CONSTRAINT fk_reviews_booking FOREIGN KEY (booking_id) REFERENCES bookings (id)
	) ENGINE=InnoDB`,
}

// EnsureSchema applies the schema statements in order.  It is called
// once at startup, before the server begins accepting requests.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
