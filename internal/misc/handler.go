package misc

import (
	"context"
	"net/http"

	"github.com/2beens/liftlog/internal/apperrors"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=misc_test

type tokenRevoker interface {
	Revoke(ctx context.Context, token string) error
}

type Handler struct {
	versionInfo  string
	tokenRevoker tokenRevoker
}

func NewHandler(versionInfo string, tokenRevoker tokenRevoker) *Handler {
	return &Handler{
		versionInfo:  versionInfo,
		tokenRevoker: tokenRevoker,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET", "OPTIONS").Name("health")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/me", handler.handleMe).Methods("GET", "OPTIONS").Name("me")
	mainRouter.HandleFunc("/auth/logout", handler.handleLogout).Methods("POST", "OPTIONS").Name("logout")
}

func (handler *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.me")
	defer span.End()

	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	pkg.WriteJSONResponse(w, user, http.StatusOK)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.logout")
	defer span.End()

	token := middleware.BearerToken(r)
	if token == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := handler.tokenRevoker.Revoke(ctx, token); err != nil {
		apperrors.WriteHTTPError(w, r, err)
		return
	}

	if user, ok := auth.UserFromContext(ctx); ok {
		log.Debugf("logout for user [%s] success", user.ID)
	}
	pkg.WriteTextResponseOK(w, "logged-out")
}
