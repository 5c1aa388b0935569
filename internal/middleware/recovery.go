package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/2beens/liftlog/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery answers a panicking handler with a 500 and counts it.
// http.ErrAbortHandler is re-raised so the server can abort the response.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				log.WithFields(log.Fields{
					"method":     r.Method,
					"path":       r.URL.Path,
					"request_id": w.Header().Get(RequestIDHeader),
				}).Errorf("panic serving request: %v\n%s", rec, debug.Stack())

				http.Error(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
