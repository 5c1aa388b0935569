package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/liftlog/internal/apperrors"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type userVerifier interface {
	GetUser(ctx context.Context, token string) (*auth.User, error)
}

type AuthMiddlewareHandler struct {
	verifier     userVerifier
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(verifier userVerifier) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		verifier: verifier,
		allowedPaths: map[string]bool{
			"/health": true,
		},
	}
}

// BearerToken returns the token from the Authorization header, or "" if there is none.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PATCH, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token := BearerToken(r)
			if token == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			user, err := h.verifier.GetUser(ctx, token)
			if err != nil {
				if !errors.Is(err, apperrors.ErrUnauthorized) {
					log.Errorf("[failed user check] => %s: %s", r.URL.Path, err)
					span.RecordError(err)
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "get-user-err")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}
