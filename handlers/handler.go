package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/siddiq140/Project-Manager/logging"
	"github.com/siddiq140/Project-Manager/services"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeServiceError maps the service error taxonomy onto HTTP status
// codes. Unrecognized errors are hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr services.ValidationError
	var notFoundErr services.NotFoundError
	var conflictErr services.ConflictError

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Message, http.StatusBadRequest)
	case errors.As(err, &notFoundErr):
		http.Error(w, notFoundErr.Message, http.StatusNotFound)
	case errors.As(err, &conflictErr):
		http.Error(w, conflictErr.Message, http.StatusConflict)
	default:
		logging.Logger.Errorf("Event ID: REQUEST_SERVER_ERROR, Description: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}
