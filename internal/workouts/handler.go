package workouts

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/liftlog/internal/apperrors"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts", handler.HandleLog).Methods("POST", "OPTIONS").Name("log-workout")
	r.HandleFunc("/workouts/start", handler.HandleStart).Methods("POST", "OPTIONS").Name("start-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleUpdate).Methods("PATCH", "OPTIONS").Name("update-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
	r.HandleFunc("/workouts/{id}/sets", handler.HandleAddSet).Methods("POST", "OPTIONS").Name("add-set")
	r.HandleFunc("/workouts/{id}/sets/{setId}", handler.HandleUpdateSet).Methods("PATCH", "OPTIONS").Name("update-set")
	r.HandleFunc("/workouts/{id}/sets/{setId}", handler.HandleDeleteSet).Methods("DELETE", "OPTIONS").Name("delete-set")
	r.HandleFunc("/exercises", handler.HandleExercises).Methods("GET", "OPTIONS").Name("exercises")
	r.HandleFunc("/exercises/e1rm", handler.HandleE1RMSeries).Methods("GET", "OPTIONS").Name("e1rm-series")
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	workouts, err := handler.service.ListWorkouts(ctx, user.ID)
	if err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	resp := ListResponse{Workouts: make([]WorkoutResponse, 0, len(workouts))}
	for _, wo := range workouts {
		resp.Workouts = append(resp.Workouts, NewWorkoutResponse(wo))
	}
	pkg.WriteJSONResponse(w, resp, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	workout, err := handler.service.GetWorkout(ctx, user.ID, id)
	if err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	pkg.WriteJSONResponse(w, NewWorkoutResponse(*workout), http.StatusOK)
}

func (handler *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.log")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("log workout, unmarshal json: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	workout, err := handler.service.LogWorkout(ctx, user.ID, req)
	if err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	log.Debugf("workout logged: %d, sets: %d", workout.ID, len(workout.Sets))
	pkg.WriteJSONResponse(w, NewWorkoutResponse(*workout), http.StatusCreated)
}

func (handler *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.start")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("start workout, unmarshal json: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	workout, err := handler.service.StartWorkout(ctx, user.ID, req)
	if err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	log.Debugf("workout started: %d", workout.ID)
	pkg.WriteJSONResponse(w, NewWorkoutResponse(*workout), http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req UpdateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update workout, unmarshal json: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	workout, err := handler.service.UpdateWorkout(ctx, user.ID, id, req)
	if err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	pkg.WriteJSONResponse(w, NewWorkoutResponse(*workout), http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := handler.service.DeleteWorkout(ctx, user.ID, id); err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	log.Debugf("workout deleted: %d", id)
	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.addSet")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	workoutID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req SetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add set, unmarshal json: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	set, err := handler.service.AddSet(ctx, user.ID, workoutID, req)
	if err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	pkg.WriteJSONResponse(w, NewSetResponse(*set), http.StatusCreated)
}

func (handler *Handler) HandleUpdateSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.updateSet")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	workoutID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	setID, ok := pathID(r, "setId")
	if !ok {
		http.Error(w, "invalid set id", http.StatusBadRequest)
		return
	}

	var req UpdateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update set, unmarshal json: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	set, err := handler.service.UpdateSet(ctx, user.ID, workoutID, setID, req)
	if err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	pkg.WriteJSONResponse(w, NewSetResponse(*set), http.StatusOK)
}

func (handler *Handler) HandleDeleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.deleteSet")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	workoutID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	setID, ok := pathID(r, "setId")
	if !ok {
		http.Error(w, "invalid set id", http.StatusBadRequest)
		return
	}

	if err := handler.service.DeleteSet(ctx, user.ID, workoutID, setID); err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	log.Debugf("set %d deleted from workout %d", setID, workoutID)
	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.exercises")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	mainLiftsOnly := false
	if raw := r.URL.Query().Get("main_lifts"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "invalid main_lifts param", http.StatusBadRequest)
			return
		}
		mainLiftsOnly = parsed
	}

	exercises, err := handler.service.Exercises(ctx, user.ID, mainLiftsOnly)
	if err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	pkg.WriteJSONResponse(w, ExercisesResponse{Exercises: exercises}, http.StatusOK)
}

func (handler *Handler) HandleE1RMSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.e1rmSeries")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	exercise := strings.TrimSpace(r.URL.Query().Get("exercise"))
	points, err := handler.service.E1RMSeries(ctx, user.ID, exercise)
	if err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	pkg.WriteJSONResponse(w, E1RMSeriesResponse{Exercise: exercise, Points: points}, http.StatusOK)
}
