package api

import (
	"encoding/json"
	"net/http"

	"patentq/internal/apperr"
)

// statusMap overrides the default status for some error kinds.
type statusMap map[apperr.Kind]int

var defaultStatus = statusMap{
	apperr.KindValidation: http.StatusBadRequest,
	apperr.KindNotFound:   http.StatusNotFound,
	apperr.KindAuth:       http.StatusUnauthorized,
	apperr.KindConflict:   http.StatusBadRequest,
	apperr.KindDependency: http.StatusInternalServerError,
}

// The auth forms report unknown emails as bad input.
var authFormStatus = statusMap{apperr.KindNotFound: http.StatusBadRequest}

// Login answers bad credentials with 400, like the rest of the form errors.
var loginStatus = statusMap{apperr.KindAuth: http.StatusBadRequest}

func statusOf(err error, override statusMap) int {
	kind := apperr.KindOf(err)
	if s, ok := override[kind]; ok {
		return s
	}
	if s, ok := defaultStatus[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeJSONError writes {"message": message}.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// fail maps err to a response. Infrastructure errors are logged and answered
// with fallback so their details never reach the client.
func fail(w http.ResponseWriter, r *http.Request, err error, fallback string, override statusMap) {
	status := statusOf(err, override)
	if status >= http.StatusInternalServerError {
		loggerFrom(r.Context()).Errorw("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSONError(w, status, apperr.MessageOf(err, fallback))
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.KindValidation, "Invalid request payload", err)
	}
	return nil
}
