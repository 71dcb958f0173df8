package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
	"nutrisync/internal/views/layout"
)

// NavLink is an entry of the top navigation.
type NavLink struct {
	Label   string
	Path    string
	Section string
}

// NavData drives the navigation bar.
type NavData struct {
	Active   string
	UserName string
	Links    []NavLink
}

// DefaultNavLinks lists the authenticated sections of the app.
func DefaultNavLinks() []NavLink {
	return []NavLink{
		{Label: "Saved foods", Path: "/app", Section: "foods"},
		{Label: "Preferences", Path: "/app/preferences", Section: "preferences"},
	}
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

// NavBar renders the top navigation with the signed-in user's name.
func NavBar(data NavData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeAll(w, `<nav class="border-b border-stone-200 bg-white"><div class="mx-auto flex max-w-5xl items-center gap-6 px-6 py-3">`,
			`<a href="/app" class="font-semibold">nutrisync</a><ul class="flex gap-4">`); err != nil {
			return err
		}
		for _, link := range data.Links {
			if err := writeAll(w,
				`<li><a href="`, templ.EscapeString(link.Path),
				`" data-nav-section="`, templ.EscapeString(link.Section),
				`" data-state="`, linkState(link.Section, data.Active), `">`,
				templ.EscapeString(link.Label), `</a></li>`,
			); err != nil {
				return err
			}
		}
		return writeAll(w, `</ul><span class="ml-auto text-sm">`, templ.EscapeString(data.UserName),
			`</span><form method="post" action="/logout"><button type="submit" class="text-sm">Sign out</button></form></div></nav>`)
	})
}

// Notice renders a feedback banner. kind is one of success, error or info.
func Notice(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		return writeAll(w, `<div class="notice notice-`, templ.EscapeString(kind), `" role="status">`,
			templ.EscapeString(message), `</div>`)
	})
}

// StatCard renders a single headline figure.
func StatCard(title, value, caption string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return writeAll(w, `<div class="stat-card"><p class="stat-title">`, templ.EscapeString(title),
			`</p><p class="stat-value">`, templ.EscapeString(value),
			`</p><p class="stat-caption">`, templ.EscapeString(caption), `</p></div>`)
	})
}

// UnitSelect renders a select over the unit vocabulary grouped by family.
func UnitSelect(name string, selected units.Unit) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeAll(w, `<select name="`, templ.EscapeString(name), `">`); err != nil {
			return err
		}
		groups := []struct {
			label string
			units []units.Unit
		}{
			{"Mass", units.MassUnits()},
			{"Volume", units.VolumeUnits()},
		}
		for _, group := range groups {
			if err := writeAll(w, `<optgroup label="`, group.label, `">`); err != nil {
				return err
			}
			for _, u := range group.units {
				attr := ""
				if u == selected {
					attr = ` selected`
				}
				if err := writeAll(w, `<option value="`, string(u), `"`, attr, `>`, UnitLabel(u), `</option>`); err != nil {
					return err
				}
			}
			if err := writeAll(w, `</optgroup>`); err != nil {
				return err
			}
		}
		return writeAll(w, `</select>`)
	})
}

// ServingEditor renders the form used to change a saved food's serving.
func ServingEditor(action string, serving nutrition.ServingSpec) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeAll(w,
			`<form class="serving-editor" method="post" action="`, templ.EscapeString(action), `">`,
			`<input type="number" name="quantity" step="0.01" min="0" value="`,
			strconv.FormatFloat(serving.Quantity, 'f', -1, 64), `">`,
		); err != nil {
			return err
		}
		if err := UnitSelect("unit", serving.Unit).Render(ctx, w); err != nil {
			return err
		}
		return writeAll(w,
			`<input type="number" name="density" step="0.01" min="0" placeholder="density g/ml">`,
			`<input type="text" name="label" placeholder="show as" value="`, templ.EscapeString(serving.Label), `">`,
			`<button type="submit">Update serving</button></form>`)
	})
}

// NutrientTable lists every nutrient of the record grouped by section.
func NutrientTable(record nutrition.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeAll(w, `<table class="nutrients"><tbody>`); err != nil {
			return err
		}
		section := ""
		for _, row := range NutrientRows(record) {
			if row.Section != section {
				section = row.Section
				if err := writeAll(w, `<tr class="section"><th colspan="2">`, templ.EscapeString(section), `</th></tr>`); err != nil {
					return err
				}
			}
			if err := writeAll(w, `<tr><td>`, templ.EscapeString(row.Label), `</td><td>`,
				FormatAmount(row.Value), " ", row.Unit, `</td></tr>`); err != nil {
				return err
			}
		}
		return writeAll(w, `</tbody></table>`)
	})
}

// FoodCardData drives FoodCard.
type FoodCardData struct {
	PageID    string
	Item      nutrition.FoodItem
	Brand     string
	FoodGroup string
	Display   layout.DisplayDefinition
	Notice    string
	Editable  bool
}

// ServingSummary renders the serving according to the display preference.
func ServingSummary(item nutrition.FoodItem, display layout.DisplayDefinition) string {
	base := QuantityText(units.Quantity{Value: item.Serving.Quantity, Unit: item.Serving.Unit})
	metric := base
	if item.ServingMetric != nil {
		metric = QuantityText(*item.ServingMetric)
	}
	imperial := base
	if item.ServingImperial != nil {
		imperial = QuantityText(*item.ServingImperial)
	}

	var text string
	switch {
	case display.ShowsMetric() && display.ShowsImperial():
		text = metric
		if imperial != metric {
			text += " (" + imperial + ")"
		}
	case display.ShowsImperial():
		text = imperial
	default:
		text = metric
	}
	if item.Serving.Label != "" {
		text = item.Serving.Label + " · " + text
	}
	return text
}

// FoodCard renders a food with its serving, the serving editor and its
// nutrients.
func FoodCard(data FoodCardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		item := data.Item
		if err := writeAll(w,
			`<article class="food-card" data-page-id="`, templ.EscapeString(data.PageID), `">`,
			`<header><h1>`, templ.EscapeString(item.Description), `</h1>`,
		); err != nil {
			return err
		}
		if data.Brand != "" {
			if err := writeAll(w, `<p class="brand">`, templ.EscapeString(data.Brand), `</p>`); err != nil {
				return err
			}
		}
		if data.FoodGroup != "" {
			if err := writeAll(w, `<span class="food-group">`, templ.EscapeString(data.FoodGroup), `</span>`); err != nil {
				return err
			}
		}
		if err := writeAll(w, `<p class="serving">`, templ.EscapeString(ServingSummary(item, data.Display)), `</p></header>`); err != nil {
			return err
		}
		if err := Notice("error", data.Notice).Render(ctx, w); err != nil {
			return err
		}
		if data.Editable {
			action := "/app/foods/" + data.PageID
			if err := ServingEditor(action, item.Serving).Render(ctx, w); err != nil {
				return err
			}
		}
		if err := NutrientTable(item.Nutrients).Render(ctx, w); err != nil {
			return err
		}
		if item.Ingredients != "" {
			if err := writeAll(w, `<p class="ingredients">`, templ.EscapeString(item.Ingredients), `</p>`); err != nil {
				return err
			}
		}
		return writeAll(w, `</article>`)
	})
}
