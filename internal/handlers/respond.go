package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	templpkg "github.com/a-h/templ"
	"gorm.io/gorm"

	applog "nutrisync/internal/log"
	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
	"nutrisync/internal/usda"
	"nutrisync/internal/workspace"
)

const maxRequestBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// statusForError maps domain errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, units.ErrUnsupportedConversion),
		errors.Is(err, units.ErrUnsupportedUnit),
		errors.Is(err, nutrition.ErrInvalidServingSpecification),
		errors.Is(err, workspace.ErrInvalidItem):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workspace.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, usda.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, gorm.ErrInvalidDB):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		applog.Error(r.Context(), fallback, "error", err)
		writeJSONError(w, status, fallback)
		return
	}
	applog.Debug(r.Context(), "request rejected", "status", status, "error", err)
	writeJSONError(w, status, err.Error())
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templpkg.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render component", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
