package workouts

import (
	"time"

	"github.com/2beens/liftlog/internal/validation"
	"github.com/2beens/liftlog/pkg/optional"
)

type Workout struct {
	ID          int64
	UserID      string
	Title       string
	Notes       *string
	PerformedOn time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Sets        []Set
}

type Set struct {
	ID        int64
	WorkoutID int64
	UserID    string
	Exercise  string
	LoadKg    float64
	Reps      int
	RPE       *float64
	Notes     *string
	Sequence  int
	CreatedAt time.Time
}

// NewWorkout is a validated workout ready to be stored.
type NewWorkout struct {
	Title       string
	Notes       *string
	PerformedOn time.Time
	Sets        []SetInput
}

// SetInput is a validated set. A nil Sequence means "append".
type SetInput struct {
	Exercise string
	LoadKg   float64
	Reps     int
	RPE      *float64
	Notes    *string
	Sequence *int
}

// SetUpdate carries validated changes; nil pointers and unsupplied values keep the stored field.
type SetUpdate struct {
	Exercise *string
	LoadKg   *float64
	Reps     *int
	RPE      optional.Value[float64]
	Notes    optional.Value[string]
	Sequence *int
}

func (u SetUpdate) IsEmpty() bool {
	return u.Exercise == nil && u.LoadKg == nil && u.Reps == nil &&
		!u.RPE.Supplied && !u.Notes.Supplied && u.Sequence == nil
}

type WorkoutUpdate struct {
	Title       *string
	Notes       optional.Value[string]
	PerformedOn *time.Time
}

func (u WorkoutUpdate) IsEmpty() bool {
	return u.Title == nil && !u.Notes.Supplied && u.PerformedOn == nil
}

// ExerciseSetRow is the slice of a set the e1RM aggregation needs.
type ExerciseSetRow struct {
	PerformedOn time.Time
	LoadKg      float64
	Reps        int
}

type SetRequest struct {
	Exercise string   `json:"exercise"`
	LoadKg   float64  `json:"loadKg"`
	Reps     float64  `json:"reps"`
	RPE      *float64 `json:"rpe"`
	Notes    *string  `json:"notes"`
	Sequence *int     `json:"sequence"`
}

type WorkoutRequest struct {
	Title       string       `json:"title"`
	PerformedOn string       `json:"performedOn"`
	Notes       *string      `json:"notes"`
	Sets        []SetRequest `json:"sets"`
}

type UpdateSetRequest struct {
	Exercise optional.Value[string]  `json:"exercise"`
	LoadKg   optional.Value[float64] `json:"loadKg"`
	Reps     optional.Value[float64] `json:"reps"`
	RPE      optional.Value[float64] `json:"rpe"`
	Notes    optional.Value[string]  `json:"notes"`
	Sequence optional.Value[int]     `json:"sequence"`
}

type UpdateWorkoutRequest struct {
	Title       optional.Value[string] `json:"title"`
	Notes       optional.Value[string] `json:"notes"`
	PerformedOn optional.Value[string] `json:"performedOn"`
}

type SetResponse struct {
	ID        int64     `json:"id"`
	WorkoutID int64     `json:"workoutId"`
	Exercise  string    `json:"exercise"`
	LoadKg    string    `json:"loadKg"`
	Reps      int       `json:"reps"`
	RPE       *float64  `json:"rpe"`
	Notes     *string   `json:"notes"`
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"createdAt"`
}

type WorkoutResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Notes       *string       `json:"notes"`
	PerformedOn string        `json:"performedOn"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Sets        []SetResponse `json:"sets"`
}

type ListResponse struct {
	Workouts []WorkoutResponse `json:"workouts"`
}

type ExercisesResponse struct {
	Exercises []string `json:"exercises"`
}

type E1RMSeriesResponse struct {
	Exercise string      `json:"exercise"`
	Points   []E1RMPoint `json:"points"`
}

func NewSetResponse(s Set) SetResponse {
	return SetResponse{
		ID:        s.ID,
		WorkoutID: s.WorkoutID,
		Exercise:  s.Exercise,
		LoadKg:    validation.FormatKg(s.LoadKg),
		Reps:      s.Reps,
		RPE:       s.RPE,
		Notes:     s.Notes,
		Sequence:  s.Sequence,
		CreatedAt: s.CreatedAt,
	}
}

func NewWorkoutResponse(w Workout) WorkoutResponse {
	resp := WorkoutResponse{
		ID:          w.ID,
		Title:       w.Title,
		Notes:       w.Notes,
		PerformedOn: w.PerformedOn.Format(validation.DateLayout),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
		Sets:        make([]SetResponse, 0, len(w.Sets)),
	}
	for _, s := range w.Sets {
		resp.Sets = append(resp.Sets, NewSetResponse(s))
	}
	return resp
}
