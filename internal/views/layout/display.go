package layout

import (
	"sort"

	"nutrisync/models"
)

// DisplayDefinition describes how serving sizes are presented to the user.
type DisplayDefinition struct {
	ID          string
	Label       string
	Description string
}

var displayRegistry = map[string]DisplayDefinition{
	models.DisplayMetric: {
		ID:          models.DisplayMetric,
		Label:       "Metric",
		Description: "Grams and millilitres.",
	},
	models.DisplayImperial: {
		ID:          models.DisplayImperial,
		Label:       "Imperial",
		Description: "Ounces, pounds, fluid ounces and cups.",
	},
	models.DisplayBoth: {
		ID:          models.DisplayBoth,
		Label:       "Both",
		Description: "Metric with the imperial equivalent alongside.",
	},
}

// DisplayByID returns a definition for the provided identifier, falling back to the default system.
func DisplayByID(id string) DisplayDefinition {
	if def, ok := displayRegistry[id]; ok {
		return def
	}
	return displayRegistry[models.DefaultDisplaySystem]
}

// DisplayOptions exposes all display definitions sorted by label for form rendering.
func DisplayOptions() []DisplayDefinition {
	options := make([]DisplayDefinition, 0, len(displayRegistry))
	for _, def := range displayRegistry {
		options = append(options, def)
	}
	sort.Slice(options, func(i, j int) bool {
		return options[i].Label < options[j].Label
	})
	return options
}

// ShowsMetric reports whether the metric amount is rendered.
func (d DisplayDefinition) ShowsMetric() bool {
	return d.ID != models.DisplayImperial
}

// ShowsImperial reports whether the imperial amount is rendered.
func (d DisplayDefinition) ShowsImperial() bool {
	return d.ID != models.DisplayMetric
}
