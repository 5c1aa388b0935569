package workouts_test

import (
	"math"
	"testing"
	"time"

	"github.com/2beens/liftlog/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestE1RM(t *testing.T) {
	e1rm, ok := workouts.E1RM(100, 1)
	require.True(t, ok)
	assert.Equal(t, 100.0, e1rm)

	e1rm, ok = workouts.E1RM(100, 10)
	require.True(t, ok)
	assert.InDelta(t, 149.93, e1rm, 0.01)

	e1rm, ok = workouts.E1RM(140, 5)
	require.True(t, ok)
	assert.InDelta(t, 140/(1-5*0.0333), e1rm, 1e-9)

	for _, tc := range []struct {
		load float64
		reps int
	}{
		{100, 31},
		{100, 100},
		{0, 1},
		{0, 5},
		{100, 0},
		{100, -1},
		{math.NaN(), 3},
		{math.Inf(1), 3},
	} {
		_, ok := workouts.E1RM(tc.load, tc.reps)
		assert.False(t, ok, "load %v reps %d", tc.load, tc.reps)
	}
}

func TestBestE1RMByDate(t *testing.T) {
	points := workouts.BestE1RMByDate([]workouts.ExerciseSetRow{
		{PerformedOn: day(5), LoadKg: 120, Reps: 1},
		{PerformedOn: day(2), LoadKg: 100, Reps: 1},
		{PerformedOn: day(5), LoadKg: 135, Reps: 1},
		{PerformedOn: day(5), LoadKg: 110, Reps: 1},
		// cannot contribute
		{PerformedOn: day(7), LoadKg: 100, Reps: 40},
		{PerformedOn: day(8), LoadKg: 0, Reps: 5},
	})

	require.Len(t, points, 2)
	assert.Equal(t, workouts.E1RMPoint{Date: "2025-03-02", E1RM: 100}, points[0])
	assert.Equal(t, workouts.E1RMPoint{Date: "2025-03-05", E1RM: 135}, points[1])

	empty := workouts.BestE1RMByDate(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestIsMainLift(t *testing.T) {
	for _, exercise := range []string{"Back Squat", "bench press", "Sumo DEADLIFT", "Pause Bench"} {
		assert.True(t, workouts.IsMainLift(exercise), exercise)
	}
	for _, exercise := range []string{"Overhead Press", "Pull-up", "Leg Press"} {
		assert.False(t, workouts.IsMainLift(exercise), exercise)
	}
}
