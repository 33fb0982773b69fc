package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bugtrack/internal/bootstrap/logging"
	"bugtrack/internal/domain/bug"
	"bugtrack/internal/errs"
)

// envelope is the generic failure body for 404/500-class responses.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// validationBody is the 400 body: a primary message the client shows
// next to the form, plus the full field map.
type validationBody struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy onto the HTTP contract:
// ValidationError -> 400, ErrNotFound -> 404, anything else -> 500
// with a generic message and a server-side log of the full chain.
func writeError(w http.ResponseWriter, req *http.Request, err error) {
	var validationErr *bug.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, validationBody{
			Error:  validationErr.PrimaryError(),
			Errors: validationErr.FieldErrors,
		})
	case errors.Is(err, bug.ErrNotFound):
		writeJSON(w, http.StatusNotFound, messageBody{Message: "Bug not found"})
	default:
		logging.Error(req.Context(), "unexpected server error",
			slog.Any("err", errs.Loggable(errs.WithStack(err))),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
		)
		writeUnexpectedError(w)
	}
}

func writeUnexpectedError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, envelope{
		Success: false,
		Message: "An unexpected error occurred on the server",
	})
}
