package pages

import (
	"strings"
	"time"

	"nutrisync/internal/units"
	"nutrisync/internal/views/components"
	"nutrisync/models"
)

// DefaultDash returns an em dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

// SavedServingText renders a stored serving, e.g. "40 g (1/2 cup dry)".
func SavedServingText(food models.SavedFood) string {
	text := components.QuantityText(units.Quantity{Value: food.ServingQuantity, Unit: units.Unit(food.ServingUnit)})
	if label := strings.TrimSpace(food.ServingLabel); label != "" {
		text += " (" + label + ")"
	}
	return text
}

// formatSavedDate renders a timestamp in a friendly day month year format.
func formatSavedDate(value time.Time) string {
	if value.IsZero() {
		return "—"
	}
	return value.Format("02 Jan 2006")
}

// PreferenceStatusMessage normalises the text displayed in the preferences status banner.
func PreferenceStatusMessage(message string) string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "Pick how servings are displayed and save."
	}
	return trimmed
}
