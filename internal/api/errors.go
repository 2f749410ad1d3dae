package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joestump/cuecard/internal/cuecard"
)

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeCycleError maps an error from the submission cycle to a status and code.
func writeCycleError(w http.ResponseWriter, err error) {
	var ve *cuecard.ValidationError
	var ge *cuecard.GenerationError
	var pe *cuecard.ParseError
	msg := cuecard.UserMessage(err)

	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg, Code: "VALIDATION_ERROR", Fields: ve.Fields})
	case errors.Is(err, cuecard.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, msg, "LLM_NOT_CONFIGURED")
	case errors.As(err, &ge):
		writeError(w, http.StatusBadGateway, msg, "GENERATION_ERROR")
	case errors.As(err, &pe):
		writeError(w, http.StatusUnprocessableEntity, msg, "PARSE_ERROR")
	default:
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
	}
}
