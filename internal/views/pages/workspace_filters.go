package pages

import (
	"net/http"
	"strings"

	"nutrisync/models"
)

// FoodFilters capture the client-driven state for saved food lookups.
type FoodFilters struct {
	Query string
	Group string
}

// FoodFiltersFromRequest extracts filter inputs from an HTTP request.
func FoodFiltersFromRequest(r *http.Request) FoodFilters {
	filters := FoodFilters{}
	if err := r.ParseForm(); err != nil {
		return filters
	}
	filters.Query = strings.TrimSpace(r.FormValue("q"))
	filters.Group = strings.TrimSpace(r.FormValue("group"))
	return filters
}

// FilterFoods applies the provided filters to a list of saved foods.
func FilterFoods(all []models.SavedFood, filters FoodFilters) []models.SavedFood {
	if filters.Query == "" && filters.Group == "" {
		return all
	}
	query := strings.ToLower(filters.Query)
	filtered := make([]models.SavedFood, 0, len(all))
	for _, food := range all {
		if filters.Group != "" && !strings.EqualFold(food.FoodGroup, filters.Group) {
			continue
		}
		if containsFold(food.Description, query) ||
			containsFold(food.Brand, query) ||
			containsFold(food.FoodCategory, query) {
			filtered = append(filtered, food)
		}
	}
	return filtered
}

// FindFood returns the saved food with the requested page ID.
func FindFood(all []models.SavedFood, pageID string) *models.SavedFood {
	for i := range all {
		if all[i].PageID == pageID {
			return &all[i]
		}
	}
	return nil
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), needle)
}
