package bodyweight

import (
	"encoding/json"
	"net/http"
	"strconv"

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
	r.HandleFunc("/bodyweight", handler.HandleList).Methods("GET", "OPTIONS").Name("list-bodyweight")
	r.HandleFunc("/bodyweight", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-bodyweight")
	r.HandleFunc("/bodyweight/{id}", handler.HandleUpdate).Methods("PATCH", "OPTIONS").Name("update-bodyweight")
	r.HandleFunc("/bodyweight/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-bodyweight")
}

func entryID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.list")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := handler.service.List(ctx, user.ID)
	if err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	resp := ListResponse{Entries: make([]EntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, NewEntryResponse(e))
	}
	pkg.WriteJSONResponse(w, resp, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.add")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add bodyweight entry, unmarshal json: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := handler.service.Add(ctx, user.ID, req)
	if err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	log.Debugf("bodyweight entry added: %d", entry.ID)
	pkg.WriteJSONResponse(w, NewEntryResponse(*entry), http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.update")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := entryID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update bodyweight entry, unmarshal json: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := handler.service.Update(ctx, user.ID, id, req)
	if err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	pkg.WriteJSONResponse(w, NewEntryResponse(*entry), http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.delete")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := entryID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, user.ID, id); err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	log.Debugf("bodyweight entry deleted: %d", id)
	w.WriteHeader(http.StatusNoContent)
}
