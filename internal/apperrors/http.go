package apperrors

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// WriteHTTPError answers the request with the status matching err.
// Anything outside the taxonomy is logged and hidden behind a generic 500.
func WriteHTTPError(w http.ResponseWriter, r *http.Request, err error) {
	if msg, ok := ValidationMessage(err); ok {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if IsNotFound(err) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, ErrUnauthorized) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	log.Errorf("%s %s: %s", r.Method, r.URL.Path, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
