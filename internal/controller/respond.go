package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	appErrors "github.com/leadpilot/bankleads-backend/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// statusFromError maps domain errors onto the HTTP taxonomy: not-found 404,
// conflict/validation 400, credential failures 401, everything else 500.
func statusFromError(err error) int {
	switch {
	case appErrors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, appErrors.ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, appErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
