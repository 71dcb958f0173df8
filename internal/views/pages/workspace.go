package pages

import (
	"context"
	"io"
	"sort"
	"strconv"

	"github.com/a-h/templ"

	"nutrisync/internal/views/components"
	"nutrisync/internal/views/layout"
)

func nav(active, userName string) templ.Component {
	return components.NavBar(components.NavData{
		Active:   active,
		UserName: userName,
		Links:    components.DefaultNavLinks(),
	})
}

// Workspace renders the saved foods page inside the application shell.
func Workspace(snapshot WorkspaceSnapshot, filters FoodFilters) templ.Component {
	return layout.Layout("Saved foods · nutrisync", nav("foods", snapshot.UserName), WorkspacePartial(snapshot, filters), layout.DisplayByID(snapshot.Display))
}

// WorkspacePartial renders the saved foods listing only.
func WorkspacePartial(snapshot WorkspaceSnapshot, filters FoodFilters) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		foods := FilterFoods(snapshot.Foods, filters)
		groups := snapshot.GroupCounts()

		if err := writeAll(w, `<section id="saved-foods" data-seeds='`, templ.EscapeString(snapshot.SeedsJSON()), `'><div class="stats">`); err != nil {
			return err
		}
		caption := "across " + strconv.Itoa(len(groups)) + " food groups"
		if err := components.StatCard("Saved foods", strconv.Itoa(len(snapshot.Foods)), caption).Render(ctx, w); err != nil {
			return err
		}
		if err := writeAll(w, `</div>`); err != nil {
			return err
		}

		if err := writeAll(w,
			`<form class="filters" method="get" action="/app" hx-get="/app" hx-target="#saved-foods" hx-swap="outerHTML">`,
			`<input type="search" name="q" placeholder="Filter saved foods" value="`, templ.EscapeString(filters.Query), `">`,
			`<select name="group"><option value="">All groups</option>`,
		); err != nil {
			return err
		}
		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			attr := ""
			if name == filters.Group {
				attr = " selected"
			}
			if err := writeAll(w, `<option value="`, templ.EscapeString(name), `"`, attr, `>`, templ.EscapeString(name), `</option>`); err != nil {
				return err
			}
		}
		if err := writeAll(w, `</select><button type="submit">Filter</button></form>`); err != nil {
			return err
		}

		if len(snapshot.RecentQueries) > 0 {
			if err := writeAll(w, `<ul class="recent-queries">`); err != nil {
				return err
			}
			for _, query := range snapshot.RecentQueries {
				if err := writeAll(w, `<li>`, templ.EscapeString(query), `</li>`); err != nil {
					return err
				}
			}
			if err := writeAll(w, `</ul>`); err != nil {
				return err
			}
		}

		if len(foods) == 0 {
			return writeAll(w, `<p class="empty">No saved foods match.</p></section>`)
		}

		if err := writeAll(w, `<table class="saved-foods"><thead><tr><th>Food</th><th>Brand</th><th>Group</th><th>Serving</th><th>Calories</th><th>Saved</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, food := range foods {
			if err := writeAll(w,
				`<tr data-page-id="`, templ.EscapeString(food.PageID), `">`,
				`<td><a href="/app/foods/`, templ.EscapeString(food.PageID), `">`, templ.EscapeString(food.Description), `</a></td>`,
				`<td>`, templ.EscapeString(DefaultDash(food.Brand)), `</td>`,
				`<td>`, templ.EscapeString(DefaultDash(food.FoodGroup)), `</td>`,
				`<td>`, templ.EscapeString(SavedServingText(food)), `</td>`,
				`<td>`, components.FormatAmount(food.Nutrients.Calories), ` kcal</td>`,
				`<td>`, formatSavedDate(food.CreatedAt), `</td></tr>`,
			); err != nil {
				return err
			}
		}
		return writeAll(w, `</tbody></table></section>`)
	})
}

// FoodPageData drives the food detail page.
type FoodPageData struct {
	Card     components.FoodCardData
	UserName string
}

// FoodPage renders a saved food inside the application shell.
func FoodPage(data FoodPageData) templ.Component {
	return layout.Layout(data.Card.Item.Description+" · nutrisync", nav("foods", data.UserName), FoodPagePartial(data), data.Card.Display)
}

// FoodPagePartial renders only the food card.
func FoodPagePartial(data FoodPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeAll(w, `<section id="food">`); err != nil {
			return err
		}
		if err := components.FoodCard(data.Card).Render(ctx, w); err != nil {
			return err
		}
		return writeAll(w, `<p><a href="/app">Back to saved foods</a></p></section>`)
	})
}

// Preferences renders the display preference form.
func Preferences(display, message, userName string) templ.Component {
	def := layout.DisplayByID(display)
	return layout.Layout("Preferences · nutrisync", nav("preferences", userName), PreferencesPartial(def.ID, message), def)
}

// PreferencesPartial renders the preference form only.
func PreferencesPartial(display, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeAll(w, `<section id="preferences"><h1>Preferences</h1>`); err != nil {
			return err
		}
		if err := components.Notice("info", PreferenceStatusMessage(message)).Render(ctx, w); err != nil {
			return err
		}
		if err := writeAll(w, `<form method="post" action="/app/preferences" hx-post="/app/preferences" hx-target="#preferences" hx-swap="outerHTML"><fieldset><legend>Serving display</legend>`); err != nil {
			return err
		}
		for _, option := range layout.DisplayOptions() {
			attr := ""
			if option.ID == display {
				attr = " checked"
			}
			if err := writeAll(w,
				`<label><input type="radio" name="display_system" value="`, option.ID, `"`, attr, `> `,
				templ.EscapeString(option.Label), ` <small>`, templ.EscapeString(option.Description), `</small></label>`,
			); err != nil {
				return err
			}
		}
		return writeAll(w, `</fieldset><button type="submit">Save</button></form></section>`)
	})
}
