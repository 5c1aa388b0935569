package workouts

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/2beens/liftlog/internal/apperrors"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/multierr"
)

const (
	workoutColumns = `id, user_id, title, notes, performed_on, created_at, updated_at`
	setColumns     = `id, workout_id, user_id, exercise, load_kg, reps, rpe, notes, sequence, created_at`
)

// constraint name -> message, used when a bad value slips past validation
var checkViolationMessages = map[string]string{
	"workouts_title_check":        "workout title is too long",
	"workouts_notes_check":        "notes should be under 1000 characters",
	"workout_sets_exercise_check": "exercise name is too long",
	"workout_sets_load_check":     "load must be between 0 and 999.99 kg",
	"workout_sets_reps_check":     "reps must be a whole number between 1 and 1000",
	"workout_sets_rpe_check":      "RPE must use half-point steps",
	"workout_sets_notes_check":    "notes should be under 500 characters",
	"workout_sets_sequence_check": "sequence must be a whole number above 0",
}

func mapCheckViolation(err error) error {
	if !pkg.IsCheckViolationError(err) {
		return err
	}
	if msg, ok := checkViolationMessages[pkg.PgConstraintName(err)]; ok {
		return apperrors.NewValidation("%s", msg)
	}
	return apperrors.NewValidation("invalid value")
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// inTx commits when fn succeeds and rolls back otherwise.
func (r *Repo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = multierr.Append(err, fmt.Errorf("rollback tx: %w", rollbackErr))
			}
			return
		}
		err = tx.Commit(ctx)
	}()

	return fn(tx)
}

func scanWorkout(row pgx.Row) (*Workout, error) {
	var w Workout
	if err := row.Scan(&w.ID, &w.UserID, &w.Title, &w.Notes, &w.PerformedOn, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	w.Sets = []Set{}
	return &w, nil
}

func scanSet(row pgx.Row) (*Set, error) {
	var s Set
	if err := row.Scan(
		&s.ID, &s.WorkoutID, &s.UserID, &s.Exercise, &s.LoadKg,
		&s.Reps, &s.RPE, &s.Notes, &s.Sequence, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSets(rows pgx.Rows) ([]Set, error) {
	defer rows.Close()

	sets := []Set{}
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sets = append(sets, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

func insertSet(ctx context.Context, tx pgx.Tx, userID string, workoutID int64, sequence int, in SetInput) (*Set, error) {
	s, err := scanSet(tx.QueryRow(
		ctx,
		`INSERT INTO workout_sets (workout_id, user_id, exercise, load_kg, reps, rpe, notes, sequence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+setColumns+`;`,
		workoutID, userID, in.Exercise, in.LoadKg, in.Reps, in.RPE, in.Notes, sequence,
	))
	if err != nil {
		return nil, fmt.Errorf("insert set: %w", mapCheckViolation(err))
	}
	return s, nil
}

// lockWorkout takes the row lock every set mutation of this workout serializes on.
// Someone else's workout looks exactly like a missing one.
func lockWorkout(ctx context.Context, tx pgx.Tx, userID string, workoutID int64, resource string) error {
	var id int64
	err := tx.QueryRow(
		ctx,
		`SELECT id FROM workouts WHERE id = $1 AND user_id = $2 FOR UPDATE;`,
		workoutID, userID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource)
	}
	if err != nil {
		return fmt.Errorf("lock workout: %w", err)
	}
	return nil
}

// resequence renumbers the sets of a workout to 1..N, keeping their relative order.
// Among sets sharing a sequence the moved set goes first, or last when movedDown
// is set, so it ends up exactly at the position it was given.
func resequence(ctx context.Context, tx pgx.Tx, workoutID, movedSetID int64, movedDown bool) error {
	if _, err := tx.Exec(ctx, `SELECT 1 FROM workouts WHERE id = $1 FOR UPDATE;`, workoutID); err != nil {
		return fmt.Errorf("lock workout: %w", err)
	}

	tieRank := -1
	if movedDown {
		tieRank = 1
	}

	_, err := tx.Exec(
		ctx,
		`WITH ordered AS (
			SELECT id,
			       ROW_NUMBER() OVER (
			           ORDER BY sequence ASC,
			                    CASE WHEN id = $2 THEN $3::int ELSE 0 END ASC,
			                    id ASC
			       ) AS rn
			FROM workout_sets
			WHERE workout_id = $1
		)
		UPDATE workout_sets ws
		SET sequence = ordered.rn
		FROM ordered
		WHERE ws.id = ordered.id AND ws.sequence <> ordered.rn;`,
		workoutID, movedSetID, tieRank,
	)
	if err != nil {
		return fmt.Errorf("resequence sets: %w", err)
	}
	return nil
}

func (r *Repo) CreateWorkoutWithSets(ctx context.Context, userID string, nw NewWorkout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.createWithSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var created *Workout
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		w, err := scanWorkout(tx.QueryRow(
			ctx,
			`INSERT INTO workouts (user_id, title, notes, performed_on)
			VALUES ($1, $2, $3, $4)
			RETURNING `+workoutColumns+`;`,
			userID, nw.Title, nw.Notes, nw.PerformedOn,
		))
		if err != nil {
			return fmt.Errorf("insert workout: %w", mapCheckViolation(err))
		}

		explicitSequence := false
		for i, in := range nw.Sets {
			sequence := i + 1
			if in.Sequence != nil {
				sequence = *in.Sequence
				explicitSequence = true
			}
			s, err := insertSet(ctx, tx, userID, w.ID, sequence, in)
			if err != nil {
				return err
			}
			w.Sets = append(w.Sets, *s)
		}

		if explicitSequence {
			if err := resequence(ctx, tx, w.ID, 0, false); err != nil {
				return err
			}
			sets, err := listSets(ctx, tx, userID, w.ID)
			if err != nil {
				return err
			}
			w.Sets = sets
		}

		created = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *Repo) AddSet(ctx context.Context, userID string, workoutID int64, in SetInput) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.addSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var added *Set
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockWorkout(ctx, tx, userID, workoutID, "workout"); err != nil {
			return err
		}

		var maxSequence int
		if err := tx.QueryRow(
			ctx,
			`SELECT COALESCE(MAX(sequence), 0) FROM workout_sets WHERE workout_id = $1;`,
			workoutID,
		).Scan(&maxSequence); err != nil {
			return fmt.Errorf("max sequence: %w", err)
		}

		sequence := maxSequence + 1
		if in.Sequence != nil {
			sequence = *in.Sequence
		}

		s, err := insertSet(ctx, tx, userID, workoutID, sequence, in)
		if err != nil {
			return err
		}

		if in.Sequence != nil {
			if err := resequence(ctx, tx, workoutID, s.ID, false); err != nil {
				return err
			}
			if s, err = getSet(ctx, tx, workoutID, s.ID); err != nil {
				return err
			}
		}

		added = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

func getSet(ctx context.Context, tx pgx.Tx, workoutID, setID int64) (*Set, error) {
	s, err := scanSet(tx.QueryRow(
		ctx,
		`SELECT `+setColumns+` FROM workout_sets WHERE id = $1 AND workout_id = $2;`,
		setID, workoutID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("set")
	}
	if err != nil {
		return nil, fmt.Errorf("get set: %w", err)
	}
	return s, nil
}

func (r *Repo) UpdateSet(ctx context.Context, userID string, workoutID, setID int64, update SetUpdate) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.updateSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var updated *Set
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockWorkout(ctx, tx, userID, workoutID, "set"); err != nil {
			return err
		}

		existing, err := scanSet(tx.QueryRow(
			ctx,
			`SELECT ws.id, ws.workout_id, ws.user_id, ws.exercise, ws.load_kg, ws.reps, ws.rpe, ws.notes, ws.sequence, ws.created_at
			FROM workout_sets ws
			JOIN workouts w ON w.id = ws.workout_id
			WHERE ws.id = $1 AND ws.workout_id = $2 AND w.user_id = $3
			FOR UPDATE OF ws;`,
			setID, workoutID, userID,
		))
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("set")
		}
		if err != nil {
			return fmt.Errorf("lock set: %w", err)
		}

		next := *existing
		if update.Exercise != nil {
			next.Exercise = *update.Exercise
		}
		if update.LoadKg != nil {
			next.LoadKg = *update.LoadKg
		}
		if update.Reps != nil {
			next.Reps = *update.Reps
		}
		if update.RPE.Supplied {
			next.RPE = update.RPE.Ptr()
		}
		if update.Notes.Supplied {
			next.Notes = update.Notes.Ptr()
		}
		if update.Sequence != nil {
			next.Sequence = *update.Sequence
		}

		s, err := scanSet(tx.QueryRow(
			ctx,
			`UPDATE workout_sets
			SET exercise = $3, load_kg = $4, reps = $5, rpe = $6, notes = $7, sequence = $8
			WHERE id = $1 AND workout_id = $2
			RETURNING `+setColumns+`;`,
			setID, workoutID, next.Exercise, next.LoadKg, next.Reps, next.RPE, next.Notes, next.Sequence,
		))
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("set")
		}
		if err != nil {
			return fmt.Errorf("update set: %w", mapCheckViolation(err))
		}

		if update.Sequence != nil {
			movedDown := *update.Sequence > existing.Sequence
			if err := resequence(ctx, tx, workoutID, setID, movedDown); err != nil {
				return err
			}
			if s, err = getSet(ctx, tx, workoutID, setID); err != nil {
				return err
			}
		}

		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *Repo) DeleteSet(ctx context.Context, userID string, workoutID, setID int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.deleteSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockWorkout(ctx, tx, userID, workoutID, "set"); err != nil {
			return err
		}

		tag, err := tx.Exec(
			ctx,
			`DELETE FROM workout_sets ws
			USING workouts w
			WHERE ws.id = $1
			  AND ws.workout_id = $2
			  AND w.id = ws.workout_id
			  AND w.user_id = $3;`,
			setID, workoutID, userID,
		)
		if err != nil {
			return fmt.Errorf("delete set: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFound("set")
		}

		return resequence(ctx, tx, workoutID, 0, false)
	})
}

func (r *Repo) DeleteWorkout(ctx context.Context, userID string, workoutID int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2;`,
		workoutID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("workout")
	}

	return nil
}

func (r *Repo) UpdateWorkout(ctx context.Context, userID string, workoutID int64, update WorkoutUpdate) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if update.IsEmpty() {
		return nil, errors.New("empty workout update")
	}

	w, err := scanWorkout(r.db.QueryRow(
		ctx,
		`UPDATE workouts
		SET title        = COALESCE($3::text, title),
		    notes        = CASE WHEN $4::bool THEN $5::text ELSE notes END,
		    performed_on = COALESCE($6::date, performed_on),
		    updated_at   = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+workoutColumns+`;`,
		workoutID, userID, update.Title, update.Notes.Supplied, update.Notes.Ptr(), update.PerformedOn,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("workout")
	}
	if err != nil {
		return nil, fmt.Errorf("update workout: %w", mapCheckViolation(err))
	}

	sets, err := listSets(ctx, r.db, userID, workoutID)
	if err != nil {
		return nil, err
	}
	w.Sets = sets

	return w, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func listSets(ctx context.Context, q querier, userID string, workoutID int64) ([]Set, error) {
	rows, err := q.Query(
		ctx,
		`SELECT `+setColumns+`
		FROM workout_sets
		WHERE workout_id = $1 AND user_id = $2
		ORDER BY sequence ASC, id ASC;`,
		workoutID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return collectSets(rows)
}

func (r *Repo) ListWorkouts(ctx context.Context, userID string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+workoutColumns+`
		FROM workouts
		WHERE user_id = $1
		ORDER BY performed_on DESC, created_at DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []Workout{}
	index := map[int64]int{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		index[w.ID] = len(workouts)
		workouts = append(workouts, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return workouts, nil
	}

	setRows, err := r.db.Query(
		ctx,
		`SELECT `+setColumns+`
		FROM workout_sets
		WHERE user_id = $1
		ORDER BY workout_id, sequence ASC, id ASC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	sets, err := collectSets(setRows)
	if err != nil {
		return nil, err
	}

	for _, s := range sets {
		if i, ok := index[s.WorkoutID]; ok {
			workouts[i].Sets = append(workouts[i].Sets, s)
		}
	}

	return workouts, nil
}

func (r *Repo) GetWorkout(ctx context.Context, userID string, workoutID int64) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	w, err := scanWorkout(r.db.QueryRow(
		ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE id = $1 AND user_id = $2;`,
		workoutID, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("workout")
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}

	sets, err := listSets(ctx, r.db, userID, workoutID)
	if err != nil {
		return nil, err
	}
	w.Sets = sets

	return w, nil
}

// ListExercises returns the distinct, trimmed exercise names of a user, sorted case-insensitively.
func (r *Repo) ListExercises(ctx context.Context, userID string) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT DISTINCT btrim(exercise)
		FROM workout_sets
		WHERE user_id = $1 AND btrim(exercise) <> '';`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []string{}
	for rows.Next() {
		var exercise string
		if err := rows.Scan(&exercise); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(exercises, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	return exercises, nil
}

// ListExerciseSets returns the owned sets of one exercise joined with their owned workouts.
func (r *Repo) ListExerciseSets(ctx context.Context, userID, exercise string) (_ []ExerciseSetRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listExerciseSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT w.performed_on, ws.load_kg, ws.reps
		FROM workout_sets ws
		JOIN workouts w ON w.id = ws.workout_id
		WHERE ws.user_id = $1 AND w.user_id = $1 AND ws.exercise = $2;`,
		userID, exercise,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []ExerciseSetRow{}
	for rows.Next() {
		var row ExerciseSetRow
		if err := rows.Scan(&row.PerformedOn, &row.LoadKg, &row.Reps); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
