package bodyweight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/apperrors"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `id, user_id, weight_kg, logged_on, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	if err := row.Scan(&e.ID, &e.UserID, &e.WeightKg, &e.LoggedOn, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// mapCheckViolation turns a CHECK failure into the message validation would have produced.
func mapCheckViolation(err error) error {
	if pkg.IsCheckViolationError(err) {
		return apperrors.NewValidation("weight out of range")
	}
	return err
}

func (r *Repo) Add(ctx context.Context, userID string, weightKg float64, loggedOn time.Time) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entry, err := scanEntry(r.db.QueryRow(
		ctx,
		`INSERT INTO bodyweight_entries (user_id, weight_kg, logged_on)
		VALUES ($1, $2, $3)
		RETURNING `+entryColumns+`;`,
		userID, weightKg, loggedOn,
	))
	if err != nil {
		return nil, fmt.Errorf("insert bodyweight entry: %w", mapCheckViolation(err))
	}

	return entry, nil
}

func (r *Repo) List(ctx context.Context, userID string) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+entryColumns+`
		FROM bodyweight_entries
		WHERE user_id = $1
		ORDER BY logged_on DESC, created_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Repo) Update(ctx context.Context, userID string, id int64, update EntryUpdate) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if update.WeightKg == nil && update.LoggedOn == nil {
		return nil, errors.New("empty bodyweight update")
	}

	entry, err := scanEntry(r.db.QueryRow(
		ctx,
		`UPDATE bodyweight_entries
		SET weight_kg = COALESCE($3::numeric, weight_kg),
		    logged_on = COALESCE($4::date, logged_on)
		WHERE id = $1 AND user_id = $2
		RETURNING `+entryColumns+`;`,
		id, userID, update.WeightKg, update.LoggedOn,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("bodyweight entry")
	}
	if err != nil {
		return nil, fmt.Errorf("update bodyweight entry: %w", mapCheckViolation(err))
	}

	return entry, nil
}

func (r *Repo) Delete(ctx context.Context, userID string, id int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM bodyweight_entries WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("bodyweight entry")
	}

	return nil
}
