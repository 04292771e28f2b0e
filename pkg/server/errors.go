package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// statuses maps an error class to its HTTP status.
var statuses = map[errors.Class]int{
	errors.ClassInvalid:     http.StatusBadRequest,
	errors.ClassNotFound:    http.StatusNotFound,
	errors.ClassConflict:    http.StatusConflict,
	errors.ClassUnsupported: http.StatusNotImplemented,
	errors.ClassInternal:    http.StatusInternalServerError,
}

func statusFor(code errors.Code) int { return statuses[code.Class()] }

type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	status := statusFor(code)
	msg := errors.Message(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
