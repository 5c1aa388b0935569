//go:build integration_test || all_tests

package test

import (
	"fmt"
	"net/http"

	"github.com/2beens/liftlog/internal/workouts"
)

func (s *IntegrationTestSuite) TestWorkouts_LogAndResequence() {
	token := s.issueToken("lifter-1")

	var created workouts.WorkoutResponse
	status, body := s.do(http.MethodPost, "/workouts", token, map[string]any{
		"title":       "Heavy day",
		"performedOn": "2025-03-03",
		"sets": []map[string]any{
			{"exercise": "Squat", "loadKg": 140, "reps": 5, "rpe": 8},
			{"exercise": "Squat", "loadKg": 150, "reps": 3, "rpe": 9},
			{"exercise": "Bench", "loadKg": 100, "reps": 5, "rpe": 8.5},
		},
	}, &created)
	s.Require().Equal(http.StatusCreated, status, body)
	s.Require().Len(created.Sets, 3)
	s.Equal("140.00", created.Sets[0].LoadKg)

	// delete the middle set, the rest closes the gap
	status, body = s.do(http.MethodDelete, fmt.Sprintf("/workouts/%d/sets/%d", created.ID, created.Sets[1].ID), token, nil, nil)
	s.Require().Equal(http.StatusNoContent, status, body)

	var got workouts.WorkoutResponse
	status, _ = s.do(http.MethodGet, fmt.Sprintf("/workouts/%d", created.ID), token, nil, &got)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Len(got.Sets, 2)
	s.Equal(1, got.Sets[0].Sequence)
	s.Equal(2, got.Sets[1].Sequence)
	s.Equal("Bench", got.Sets[1].Exercise)

	// move bench to the top
	var moved workouts.SetResponse
	status, body = s.do(http.MethodPatch, fmt.Sprintf("/workouts/%d/sets/%d", created.ID, got.Sets[1].ID), token, map[string]any{"sequence": 1}, &moved)
	s.Require().Equal(http.StatusOK, status, body)
	s.Equal(1, moved.Sequence)

	// zero sets is rejected when logging
	status, body = s.do(http.MethodPost, "/workouts", token, map[string]any{
		"title":       "Nothing",
		"performedOn": "2025-03-04",
		"sets":        []any{},
	}, nil)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("add at least one set", body)
}

func (s *IntegrationTestSuite) TestWorkouts_StartThenAddSets() {
	token := s.issueToken("lifter-1")

	var started workouts.WorkoutResponse
	status, body := s.do(http.MethodPost, "/workouts/start", token, map[string]any{"title": "Later"}, &started)
	s.Require().Equal(http.StatusCreated, status, body)
	s.Empty(started.Sets)

	for i := 0; i < 3; i++ {
		var set workouts.SetResponse
		status, body = s.do(http.MethodPost, fmt.Sprintf("/workouts/%d/sets", started.ID), token, map[string]any{
			"exercise": "Deadlift",
			"loadKg":   180 + i*10,
			"reps":     1,
		}, &set)
		s.Require().Equal(http.StatusCreated, status, body)
		s.Equal(i+1, set.Sequence)
		s.Nil(set.RPE)
	}

	var series workouts.E1RMSeriesResponse
	status, body = s.do(http.MethodGet, "/exercises/e1rm?exercise=Deadlift", token, nil, &series)
	s.Require().Equal(http.StatusOK, status, body)
	s.Require().Len(series.Points, 1)
	s.Equal(200.0, series.Points[0].E1RM)

	var exercises workouts.ExercisesResponse
	status, _ = s.do(http.MethodGet, "/exercises?main_lifts=true", token, nil, &exercises)
	s.Require().Equal(http.StatusOK, status)
	s.Equal([]string{"Deadlift"}, exercises.Exercises)
}

func (s *IntegrationTestSuite) TestWorkouts_OwnershipScoping() {
	owner := s.issueToken("lifter-1")
	other := s.issueToken("lifter-2")

	var created workouts.WorkoutResponse
	status, body := s.do(http.MethodPost, "/workouts", owner, map[string]any{
		"title":       "Mine",
		"performedOn": "2025-03-03",
		"sets":        []map[string]any{{"exercise": "Squat", "loadKg": 100, "reps": 5, "rpe": 7}},
	}, &created)
	s.Require().Equal(http.StatusCreated, status, body)
	path := fmt.Sprintf("/workouts/%d", created.ID)

	status, _ = s.do(http.MethodGet, path, other, nil, nil)
	s.Equal(http.StatusNotFound, status)
	status, _ = s.do(http.MethodPatch, path, other, map[string]any{"title": "Stolen"}, nil)
	s.Equal(http.StatusNotFound, status)
	status, _ = s.do(http.MethodDelete, fmt.Sprintf("%s/sets/%d", path, created.Sets[0].ID), other, nil, nil)
	s.Equal(http.StatusNotFound, status)

	var list workouts.ListResponse
	status, _ = s.do(http.MethodGet, "/workouts", other, nil, &list)
	s.Require().Equal(http.StatusOK, status)
	s.Empty(list.Workouts)

	status, _ = s.do(http.MethodGet, path, owner, nil, nil)
	s.Equal(http.StatusOK, status)
}
