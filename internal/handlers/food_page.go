package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	templpkg "github.com/a-h/templ"

	applog "nutrisync/internal/log"
	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
	"nutrisync/internal/views/components"
	"nutrisync/internal/views/layout"
	"nutrisync/internal/views/pages"
	"nutrisync/internal/workspace"
	"nutrisync/models"
)

var errMissingServing = errors.New("quantity and unit are required")

// FoodPage renders a saved food card at /app/foods/{pageId}. GET previews an
// optional serving from the query string; POST saves a new serving. A serving
// that cannot be applied leaves the saved values on screen with a notice.
func FoodPage(w http.ResponseWriter, r *http.Request) {
	if foodStore == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		redirectToLogin(w, r)
		return
	}

	pageID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/app/foods"), "/")
	if pageID == "" || strings.Contains(pageID, "/") {
		http.NotFound(w, r)
		return
	}

	record, err := foodStore.Get(r.Context(), userID, pageID)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to load saved food", "error", err, "pageId", pageID)
		http.Error(w, "unable to load saved food", http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		item, notice := previewServing(r, record)
		renderFoodPage(w, r, record, item, notice)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		quantity, unit, density, err := servingFromValues(r.PostFormValue("quantity"), r.PostFormValue("unit"), r.PostFormValue("density"))
		if err == nil {
			label := r.PostFormValue("label")
			var updated models.SavedFood
			updated, err = rescaleSavedFood(r, userID, pageID, quantity, unit, &label, density)
			if err == nil {
				record = updated
			}
		}
		item, _ := workspace.ToFoodItem(record)
		notice := ""
		if err != nil {
			applog.Debug(r.Context(), "serving update rejected", "pageId", pageID, "error", err)
			notice = servingNotice(err)
		}
		renderFoodPage(w, r, record, item, notice)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// previewServing scales the stored item to the serving named in the query
// string. It falls back to the stored item when no serving is requested or
// the requested one cannot be applied.
func previewServing(r *http.Request, record models.SavedFood) (nutrition.FoodItem, string) {
	item, err := workspace.ToFoodItem(record)
	if err != nil {
		applog.Error(r.Context(), "saved food has unusable serving", "error", err, "pageId", record.PageID)
		return item, servingNotice(err)
	}

	q := r.URL.Query()
	if q.Get("quantity") == "" && q.Get("unit") == "" {
		return item, ""
	}
	quantity, unit, density, err := servingFromValues(q.Get("quantity"), q.Get("unit"), q.Get("density"))
	if err != nil {
		return item, servingNotice(err)
	}
	scaled, err := nutrition.Scale(item, quantity, unit, density)
	if err != nil {
		applog.Debug(r.Context(), "serving preview rejected", "pageId", record.PageID, "error", err)
		return item, servingNotice(err)
	}
	return scaled, ""
}

func servingFromValues(rawQty, rawUnit, rawDensity string) (float64, units.Unit, float64, error) {
	if strings.TrimSpace(rawQty) == "" || strings.TrimSpace(rawUnit) == "" {
		return 0, "", 0, errMissingServing
	}
	quantity, err := strconv.ParseFloat(strings.TrimSpace(rawQty), 64)
	if err != nil {
		return 0, "", 0, errMissingServing
	}
	unit, err := units.Parse(rawUnit)
	if err != nil {
		return 0, "", 0, err
	}
	density := units.DefaultDensity
	if raw := strings.TrimSpace(rawDensity); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			density = parsed
		}
	}
	return quantity, unit, density, nil
}

func servingNotice(err error) string {
	switch {
	case errors.Is(err, errMissingServing):
		return "Enter a quantity and a unit to change the serving."
	case errors.Is(err, units.ErrUnsupportedUnit):
		return "That unit is not supported. Showing the saved serving."
	case errors.Is(err, units.ErrUnsupportedConversion):
		return "Those units cannot be converted. Showing the saved serving."
	case errors.Is(err, nutrition.ErrInvalidServingSpecification):
		return "The saved serving is invalid, so nutrients are shown unscaled."
	default:
		return "We couldn't update the serving. Showing the saved values."
	}
}

func renderFoodPage(w http.ResponseWriter, r *http.Request, record models.SavedFood, item nutrition.FoodItem, notice string) {
	if item.Serving.Unit.Valid() {
		item = nutrition.WithDualServing(item)
	}
	data := pages.FoodPageData{
		Card: components.FoodCardData{
			PageID:    record.PageID,
			Item:      item,
			Brand:     record.Brand,
			FoodGroup: record.FoodGroup,
			Display:   layout.DisplayByID(loadCurrentUserDisplay(r)),
			Notice:    notice,
			Editable:  true,
		},
		UserName: currentUserName(r),
	}

	var component templpkg.Component
	if isHTMX(r) {
		component = pages.FoodPagePartial(data)
	} else {
		component = pages.FoodPage(data)
	}
	renderComponent(w, r, component)
}
