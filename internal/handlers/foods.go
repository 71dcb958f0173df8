package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	applog "nutrisync/internal/log"
	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
	"nutrisync/internal/workspace"
	"nutrisync/models"
)

type savedFoodResponse struct {
	PageID       string           `json:"page_id"`
	FDCID        int              `json:"fdc_id"`
	Description  string           `json:"description"`
	Brand        string           `json:"brand"`
	FoodCategory string           `json:"food_category"`
	FoodGroup    string           `json:"food_group"`
	DataType     string           `json:"data_type"`
	Serving      servingResponse  `json:"serving"`
	Nutrients    nutrition.Record `json:"nutrients"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type servingResponse struct {
	Quantity float64         `json:"quantity"`
	Unit     string          `json:"unit"`
	Label    string          `json:"label,omitempty"`
	Metric   *units.Quantity `json:"metric,omitempty"`
	Imperial *units.Quantity `json:"imperial,omitempty"`
}

type savedFoodListResponse struct {
	Results    []savedFoodResponse `json:"results"`
	NextCursor string              `json:"next_cursor,omitempty"`
	HasMore    bool                `json:"has_more"`
}

// servingUpdateRequest rescales a saved food. Omitted fields keep the stored
// values.
type servingUpdateRequest struct {
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	Label    *string  `json:"label,omitempty"`
	Density  *float64 `json:"density,omitempty"`
}

// FoodResource handles REST-style interactions with the saved foods of the
// signed-in user.
func FoodResource(w http.ResponseWriter, r *http.Request) {
	if foodStore == nil {
		applog.Debug(r.Context(), "food request without workspace store")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		applog.Debug(r.Context(), "food request missing authenticated user")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/foods")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			listFoods(w, r, userID)
		case http.MethodPost:
			createFood(w, r, userID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	case "ids":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		listSavedFDCIDs(w, r, userID)
		return
	}

	pageID := strings.Split(path, "/")[0]
	switch r.Method {
	case http.MethodGet:
		showFood(w, r, userID, pageID)
	case http.MethodPut, http.MethodPatch:
		updateFoodServing(w, r, userID, pageID)
	case http.MethodDelete:
		deleteFood(w, r, userID, pageID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listFoods(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()
	pageSize := 0
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSONError(w, http.StatusBadRequest, "page_size must be a positive integer")
			return
		}
		pageSize = parsed
	}

	page, err := foodStore.Query(ctx, userID, r.URL.Query().Get("cursor"), pageSize)
	if err != nil {
		writeDomainError(w, r, err, "unable to load saved foods")
		return
	}

	response := savedFoodListResponse{
		Results:    make([]savedFoodResponse, 0, len(page.Results)),
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}
	for _, record := range page.Results {
		response.Results = append(response.Results, projectSavedFood(record))
	}
	writeJSON(w, http.StatusOK, response)
}

func createFood(w http.ResponseWriter, r *http.Request, userID uint) {
	var item nutrition.FoodItem
	if err := decodeJSON(w, r, &item); err != nil {
		applog.Debug(r.Context(), "invalid food payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	record, err := foodStore.Create(r.Context(), userID, item)
	if err != nil {
		writeDomainError(w, r, err, "unable to save food")
		return
	}
	applog.Debug(r.Context(), "food saved", "pageId", record.PageID, "user", userID)
	writeJSON(w, http.StatusCreated, projectSavedFood(record))
}

func listSavedFDCIDs(w http.ResponseWriter, r *http.Request, userID uint) {
	ids, err := foodStore.FDCIDs(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err, "unable to load saved food ids")
		return
	}
	if ids == nil {
		ids = []int{}
	}
	writeJSON(w, http.StatusOK, map[string][]int{"ids": ids})
}

func showFood(w http.ResponseWriter, r *http.Request, userID uint, pageID string) {
	record, err := foodStore.Get(r.Context(), userID, pageID)
	if err != nil {
		writeDomainError(w, r, err, "unable to load saved food")
		return
	}
	writeJSON(w, http.StatusOK, projectSavedFood(record))
}

func updateFoodServing(w http.ResponseWriter, r *http.Request, userID uint, pageID string) {
	var payload servingUpdateRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid serving update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	unit, err := units.Parse(payload.Unit)
	if err != nil {
		writeDomainError(w, r, err, "unable to update serving")
		return
	}

	record, err := rescaleSavedFood(r, userID, pageID, payload.Quantity, unit, payload.Label, densityOrDefault(payload.Density))
	if err != nil {
		writeDomainError(w, r, err, "unable to update serving")
		return
	}
	writeJSON(w, http.StatusOK, projectSavedFood(record))
}

// rescaleSavedFood scales the stored nutrients to a new serving and writes the
// result back. The stored values are the reference for the ratio.
func rescaleSavedFood(r *http.Request, userID uint, pageID string, quantity float64, unit units.Unit, label *string, density float64) (models.SavedFood, error) {
	ctx := r.Context()
	existing, err := foodStore.Get(ctx, userID, pageID)
	if err != nil {
		return models.SavedFood{}, err
	}
	item, err := workspace.ToFoodItem(existing)
	if err != nil {
		return models.SavedFood{}, err
	}
	scaled, err := nutrition.Scale(item, quantity, unit, density)
	if err != nil {
		return models.SavedFood{}, err
	}
	if label != nil {
		scaled.Serving.Label = strings.TrimSpace(*label)
	}
	applog.Debug(ctx, "rescaling saved food", "pageId", pageID, "quantity", quantity, "unit", unit)
	return foodStore.Update(ctx, userID, pageID, scaled)
}

func deleteFood(w http.ResponseWriter, r *http.Request, userID uint, pageID string) {
	if err := foodStore.Delete(r.Context(), userID, pageID); err != nil {
		writeDomainError(w, r, err, "unable to delete saved food")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func projectSavedFood(record models.SavedFood) savedFoodResponse {
	serving := servingResponse{
		Quantity: record.ServingQuantity,
		Unit:     record.ServingUnit,
		Label:    record.ServingLabel,
	}
	if unit, err := units.Parse(record.ServingUnit); err == nil {
		metric := units.ToMetric(record.ServingQuantity, unit)
		imperial := units.ToImperial(record.ServingQuantity, unit)
		serving.Metric = &metric
		serving.Imperial = &imperial
	}

	return savedFoodResponse{
		PageID:       record.PageID,
		FDCID:        record.FDCID,
		Description:  record.Description,
		Brand:        record.Brand,
		FoodCategory: record.FoodCategory,
		FoodGroup:    record.FoodGroup,
		DataType:     record.DataType,
		Serving:      serving,
		Nutrients:    record.Nutrients,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}
