package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/heartmarshall/miskai-core/internal/domain"
	"github.com/heartmarshall/miskai-core/pkg/ctxutil"
)

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error     string              `json:"error"`
	Fields    []domain.FieldError `json:"fields,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps err onto a status code and writes an ErrorResponse.
// Unexpected errors are logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{
		Error:     err.Error(),
		RequestID: ctxutil.RequestIDFromCtx(r.Context()),
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Fields = ve.Errors
	}
	if status == http.StatusInternalServerError {
		ctxutil.LoggerFromCtx(r.Context()).ErrorContext(r.Context(), "request failed", "error", err)
		resp.Error = "internal server error"
	}
	writeJSON(w, status, resp)
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrMalformedSource):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownMethod):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotInitialized), errors.Is(err, domain.ErrClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return domain.NewValidationError("body", err.Error())
	}
	return nil
}
