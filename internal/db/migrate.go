package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Schema is idempotent. Every table carries user_id, and every query filters on it.
const Schema = `
CREATE TABLE IF NOT EXISTS bodyweight_entries
(
    id         BIGSERIAL PRIMARY KEY,
    user_id    TEXT          NOT NULL,
    weight_kg  NUMERIC(5, 2) NOT NULL CONSTRAINT bodyweight_entries_weight_check CHECK (weight_kg > 0 AND weight_kg <= 999.99),
    logged_on  DATE          NOT NULL DEFAULT CURRENT_DATE,
    created_at TIMESTAMPTZ   NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ix_bodyweight_entries_user_logged_on ON bodyweight_entries (user_id, logged_on DESC);

CREATE TABLE IF NOT EXISTS workouts
(
    id           BIGSERIAL PRIMARY KEY,
    user_id      TEXT        NOT NULL,
    title        TEXT        NOT NULL CONSTRAINT workouts_title_check CHECK (char_length(title) BETWEEN 1 AND 120),
    notes        TEXT CONSTRAINT workouts_notes_check CHECK (notes IS NULL OR char_length(notes) <= 1000),
    performed_on DATE        NOT NULL DEFAULT CURRENT_DATE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ix_workouts_user_performed_on ON workouts (user_id, performed_on DESC);

CREATE TABLE IF NOT EXISTS workout_sets
(
    id         BIGSERIAL PRIMARY KEY,
    workout_id BIGINT        NOT NULL REFERENCES workouts (id) ON DELETE CASCADE,
    user_id    TEXT          NOT NULL,
    exercise   TEXT          NOT NULL CONSTRAINT workout_sets_exercise_check CHECK (char_length(exercise) BETWEEN 1 AND 120),
    load_kg    NUMERIC(5, 2) NOT NULL CONSTRAINT workout_sets_load_check CHECK (load_kg >= 0 AND load_kg <= 999.99),
    reps       INTEGER       NOT NULL CONSTRAINT workout_sets_reps_check CHECK (reps BETWEEN 1 AND 1000),
    rpe        NUMERIC(3, 1) CONSTRAINT workout_sets_rpe_check CHECK (rpe IS NULL OR (rpe BETWEEN 0 AND 10 AND rpe * 2 = trunc(rpe * 2))),
    notes      TEXT CONSTRAINT workout_sets_notes_check CHECK (notes IS NULL OR char_length(notes) <= 500),
    sequence   INTEGER       NOT NULL CONSTRAINT workout_sets_sequence_check CHECK (sequence >= 1),
    created_at TIMESTAMPTZ   NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ix_workout_sets_workout_sequence ON workout_sets (workout_id, sequence);
CREATE INDEX IF NOT EXISTS ix_workout_sets_user_exercise ON workout_sets (user_id, exercise);
`

// Migrate ensures tables exist. Call once at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Debugln("db schema applied")
	return nil
}
