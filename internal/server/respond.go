package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"wrestling-stats/internal/constants"
	"wrestling-stats/internal/domain"
)

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError writes {"error": message}, taking the status from a domain.AppError and
// answering 500 for anything else.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		}
		RespondJSON(w, appErr.Status, map[string]string{"error": appErr.Message})
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	RespondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// DecodeJSON decodes a JSON request body into dst. Bodies larger than
// constants.MaxRequestBodyBytes are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, constants.MaxRequestBodyBytes)
	return json.NewDecoder(body).Decode(dst)
}
