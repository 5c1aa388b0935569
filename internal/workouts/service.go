package workouts

import (
	"context"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/apperrors"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/validation"
	"github.com/2beens/liftlog/pkg/optional"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	CreateWorkoutWithSets(ctx context.Context, userID string, nw NewWorkout) (*Workout, error)
	AddSet(ctx context.Context, userID string, workoutID int64, in SetInput) (*Set, error)
	UpdateSet(ctx context.Context, userID string, workoutID, setID int64, update SetUpdate) (*Set, error)
	DeleteSet(ctx context.Context, userID string, workoutID, setID int64) error
	DeleteWorkout(ctx context.Context, userID string, workoutID int64) error
	UpdateWorkout(ctx context.Context, userID string, workoutID int64, update WorkoutUpdate) (*Workout, error)
	ListWorkouts(ctx context.Context, userID string) ([]Workout, error)
	GetWorkout(ctx context.Context, userID string, workoutID int64) (*Workout, error)
	ListExercises(ctx context.Context, userID string) ([]string, error)
	ListExerciseSets(ctx context.Context, userID, exercise string) ([]ExerciseSetRow, error)
}

type Service struct {
	repo           workoutsRepo
	seriesCache    *SeriesCache
	metricsManager *metrics.Manager
	now            func() time.Time
}

// NewService wires the repo. seriesCache and metricsManager may be nil.
func NewService(repo workoutsRepo, seriesCache *SeriesCache, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		seriesCache:    seriesCache,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) invalidate(userID string) {
	if s.seriesCache != nil {
		s.seriesCache.Invalidate(userID)
	}
}

func (s *Service) countSet(op string) {
	if s.metricsManager != nil {
		s.metricsManager.CounterSets.WithLabelValues(op).Inc()
	}
}

// optionalNotes turns sanitized notes into a supplied update, empty notes clear the field.
func optionalNotes(notes *string) optional.Value[string] {
	if notes == nil {
		return optional.Null[string]()
	}
	return optional.Of(*notes)
}

// sanitizeSet validates one set of a collection (index >= 0) or a single set (index < 0).
func sanitizeSet(req SetRequest, index int, rpeRequired, allowSequence bool) (SetInput, error) {
	var in SetInput
	var err error

	if in.Exercise, err = validation.Exercise(req.Exercise, index); err != nil {
		return in, err
	}
	if in.LoadKg, err = validation.LoadKg(req.LoadKg, index); err != nil {
		return in, err
	}
	if in.Reps, err = validation.Reps(req.Reps, index); err != nil {
		return in, err
	}

	switch {
	case rpeRequired:
		rpe, err := validation.RequiredRPE(req.RPE, index)
		if err != nil {
			return in, err
		}
		in.RPE = &rpe
	case req.RPE != nil:
		rpe, err := validation.RPE(*req.RPE, index)
		if err != nil {
			return in, err
		}
		in.RPE = &rpe
	}

	if in.Notes, err = validation.Notes(req.Notes, validation.MaxSetNotes); err != nil {
		return in, err
	}

	if allowSequence && req.Sequence != nil {
		seq, err := validation.Sequence(*req.Sequence, index)
		if err != nil {
			return in, err
		}
		in.Sequence = &seq
	}

	return in, nil
}

// LogWorkout stores a finished session: a title, a date and at least one set,
// every set with an RPE. Sets are ordered as given.
func (s *Service) LogWorkout(ctx context.Context, userID string, req WorkoutRequest) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	nw := NewWorkout{}
	if nw.Title, err = validation.Title(req.Title); err != nil {
		return nil, err
	}
	if nw.PerformedOn, err = validation.Date(req.PerformedOn); err != nil {
		return nil, err
	}
	if nw.Notes, err = validation.Notes(req.Notes, validation.MaxWorkoutNotes); err != nil {
		return nil, err
	}
	if err := validation.NonEmptySets(len(req.Sets)); err != nil {
		return nil, err
	}

	for i, setReq := range req.Sets {
		in, err := sanitizeSet(setReq, i, true, false)
		if err != nil {
			return nil, err
		}
		nw.Sets = append(nw.Sets, in)
	}

	return s.create(ctx, userID, nw)
}

// StartWorkout creates a workout that may have no sets yet. RPE is optional and
// explicit sequences are honored. A missing date means today.
func (s *Service) StartWorkout(ctx context.Context, userID string, req WorkoutRequest) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	nw := NewWorkout{}
	if nw.Title, err = validation.Title(req.Title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.PerformedOn) == "" {
		nw.PerformedOn, _ = validation.DateValue(s.now().UTC())
	} else if nw.PerformedOn, err = validation.Date(req.PerformedOn); err != nil {
		return nil, err
	}
	if nw.Notes, err = validation.Notes(req.Notes, validation.MaxWorkoutNotes); err != nil {
		return nil, err
	}

	for i, setReq := range req.Sets {
		in, err := sanitizeSet(setReq, i, false, true)
		if err != nil {
			return nil, err
		}
		nw.Sets = append(nw.Sets, in)
	}

	return s.create(ctx, userID, nw)
}

func (s *Service) create(ctx context.Context, userID string, nw NewWorkout) (*Workout, error) {
	w, err := s.repo.CreateWorkoutWithSets(ctx, userID, nw)
	if err != nil {
		return nil, err
	}

	s.invalidate(userID)
	if s.metricsManager != nil {
		s.metricsManager.CounterWorkouts.Inc()
		s.metricsManager.CounterSets.WithLabelValues("add").Add(float64(len(w.Sets)))
	}

	return w, nil
}

func (s *Service) AddSet(ctx context.Context, userID string, workoutID int64, req SetRequest) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.addSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	in, err := sanitizeSet(req, -1, false, true)
	if err != nil {
		return nil, err
	}

	set, err := s.repo.AddSet(ctx, userID, workoutID, in)
	if err != nil {
		return nil, err
	}

	s.invalidate(userID)
	s.countSet("add")

	return set, nil
}

func (s *Service) UpdateSet(ctx context.Context, userID string, workoutID, setID int64, req UpdateSetRequest) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.updateSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var update SetUpdate
	if req.Exercise.Supplied {
		// an explicit null clears the name, which is not allowed
		exercise, err := validation.Exercise(req.Exercise.V, -1)
		if err != nil {
			return nil, err
		}
		update.Exercise = &exercise
	}
	if req.LoadKg.HasValue() {
		load, err := validation.LoadKg(req.LoadKg.V, -1)
		if err != nil {
			return nil, err
		}
		update.LoadKg = &load
	}
	if req.Reps.HasValue() {
		reps, err := validation.Reps(req.Reps.V, -1)
		if err != nil {
			return nil, err
		}
		update.Reps = &reps
	}
	if req.RPE.Supplied {
		update.RPE = req.RPE
		if req.RPE.HasValue() {
			rpe, err := validation.RPE(req.RPE.V, -1)
			if err != nil {
				return nil, err
			}
			update.RPE.V = rpe
		}
	}
	if req.Notes.Supplied {
		notes, err := validation.Notes(req.Notes.Ptr(), validation.MaxSetNotes)
		if err != nil {
			return nil, err
		}
		update.Notes = optionalNotes(notes)
	}
	if req.Sequence.HasValue() {
		seq, err := validation.Sequence(req.Sequence.V, -1)
		if err != nil {
			return nil, err
		}
		update.Sequence = &seq
	}

	if update.IsEmpty() {
		return nil, apperrors.NewValidation("provide at least one field to update")
	}

	set, err := s.repo.UpdateSet(ctx, userID, workoutID, setID, update)
	if err != nil {
		return nil, err
	}

	s.invalidate(userID)
	s.countSet("update")

	return set, nil
}

func (s *Service) DeleteSet(ctx context.Context, userID string, workoutID, setID int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.deleteSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.repo.DeleteSet(ctx, userID, workoutID, setID); err != nil {
		return err
	}

	s.invalidate(userID)
	s.countSet("delete")

	return nil
}

func (s *Service) UpdateWorkout(ctx context.Context, userID string, workoutID int64, req UpdateWorkoutRequest) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var update WorkoutUpdate
	if req.Title.Supplied {
		title, err := validation.Title(req.Title.V)
		if err != nil {
			return nil, err
		}
		update.Title = &title
	}
	if req.Notes.Supplied {
		notes, err := validation.Notes(req.Notes.Ptr(), validation.MaxWorkoutNotes)
		if err != nil {
			return nil, err
		}
		update.Notes = optionalNotes(notes)
	}
	if req.PerformedOn.Supplied {
		performedOn, err := validation.Date(req.PerformedOn.V)
		if err != nil {
			return nil, err
		}
		update.PerformedOn = &performedOn
	}

	if update.IsEmpty() {
		return nil, apperrors.NewValidation("provide at least one field to update")
	}

	w, err := s.repo.UpdateWorkout(ctx, userID, workoutID, update)
	if err != nil {
		return nil, err
	}

	s.invalidate(userID)

	return w, nil
}

func (s *Service) DeleteWorkout(ctx context.Context, userID string, workoutID int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.repo.DeleteWorkout(ctx, userID, workoutID); err != nil {
		return err
	}

	s.invalidate(userID)

	return nil
}

func (s *Service) ListWorkouts(ctx context.Context, userID string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.ListWorkouts(ctx, userID)
}

func (s *Service) GetWorkout(ctx context.Context, userID string, workoutID int64) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.GetWorkout(ctx, userID, workoutID)
}

// Exercises lists the user's distinct exercise names. With mainLiftsOnly only
// squat, bench and deadlift variations are kept.
func (s *Service) Exercises(ctx context.Context, userID string, mainLiftsOnly bool) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercises, err := s.repo.ListExercises(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !mainLiftsOnly {
		return exercises, nil
	}

	mainLifts := []string{}
	for _, exercise := range exercises {
		if IsMainLift(exercise) {
			mainLifts = append(mainLifts, exercise)
		}
	}
	return mainLifts, nil
}

func (s *Service) E1RMSeries(ctx context.Context, userID, exercise string) (_ []E1RMPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.e1rmSeries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercise = strings.TrimSpace(exercise)
	if exercise == "" {
		return nil, apperrors.NewValidation("exercise is required")
	}

	var generation uint64
	if s.seriesCache != nil {
		points, gen, ok := s.seriesCache.Get(userID, exercise)
		if ok {
			return points, nil
		}
		generation = gen
	}

	rows, err := s.repo.ListExerciseSets(ctx, userID, exercise)
	if err != nil {
		return nil, err
	}
	points := BestE1RMByDate(rows)

	if s.seriesCache != nil {
		s.seriesCache.Put(userID, generation, exercise, points)
	}

	return points, nil
}
