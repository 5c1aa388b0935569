package middleware

import (
	"net/http"
	"time"

	"github.com/2beens/liftlog/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-Id"

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			ip, err := pkg.ClientIP(r)
			if err != nil {
				ip = "unknown"
			}

			start := time.Now()
			next.ServeHTTP(w, r)

			log.WithFields(log.Fields{
				"request_id": requestID,
				"ip":         ip,
				"ua":         r.Header.Get("User-Agent"),
				"took":       time.Since(start).String(),
			}).Tracef(" ====> request [%s] path: [%s]", r.Method, r.URL.Path)
		})
	}
}
