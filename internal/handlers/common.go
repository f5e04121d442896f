package handlers

import (
	"encoding/json"
	"net/http"

	"places-api/internal/errs"
	"places-api/internal/validation"

	"github.com/rs/zerolog"
)

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// respondError renders err. Every handler failure goes through here.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := errs.As(err)

	if httpErr.Status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().
			Err(httpErr.Cause()).
			Int("status", httpErr.Status).
			Msg(httpErr.Message)
	}

	respondJSON(w, httpErr.Status, httpErr)
}

// decodeJSON decodes the request body into dst and validates it
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.InvalidInputs([]errs.FieldError{{Field: "body", Error: "must be valid JSON"}})
	}
	return validation.Struct(dst)
}
