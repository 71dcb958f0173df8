package handlers

import (
	"net/http"
	"strings"

	applog "nutrisync/internal/log"
	"nutrisync/internal/views/pages"
	"nutrisync/models"
)

type preferencesResponse struct {
	DisplaySystem string `json:"display_system"`
}

// Preferences renders the preference form on GET and persists the serving
// display system on POST.
func Preferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		display := loadCurrentUserDisplay(r)
		if isHTMX(r) {
			renderComponent(w, r, pages.PreferencesPartial(display, ""))
			return
		}
		renderComponent(w, r, pages.Preferences(display, "", currentUserName(r)))
	case http.MethodPost:
		UpdatePreferences(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// UpdatePreferences persists workspace preferences for the authenticated user.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "preferences update with unsupported method", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user, err := loadCurrentUser(r)
	if err != nil {
		applog.Error(r.Context(), "unable to load current user for preferences", "error", err)
		http.Error(w, "unable to load account", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse preferences form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	value := strings.ToLower(strings.TrimSpace(r.FormValue("display_system")))
	if !models.ValidDisplaySystem(value) {
		applog.Debug(r.Context(), "received invalid display selection", "value", value)
		http.Error(w, "invalid display selection", http.StatusBadRequest)
		return
	}

	applog.Debug(r.Context(), "updating user preferences", "userID", user.ID, "display", value)
	if err := database.WithContext(r.Context()).Model(user).Update("display_system", value).Error; err != nil {
		applog.Error(r.Context(), "failed to persist user preferences", "error", err)
		http.Error(w, "failed to save preferences", http.StatusInternalServerError)
		return
	}

	if sessionManager != nil {
		sessionManager.Put(r.Context(), sessionUserDisplayKey, value)
	}

	if isHTMX(r) {
		renderComponent(w, r, pages.PreferencesPartial(value, "Preferences saved."))
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse{DisplaySystem: value})
}
