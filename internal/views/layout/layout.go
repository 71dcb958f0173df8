package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps page content in the application shell. nav may be nil on
// unauthenticated pages.
func Layout(title string, nav, content templ.Component, display DisplayDefinition) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeAll(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`, templ.EscapeString(title), `</title>`,
			`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`,
			`</head><body class="`, bodyWrapperClass(nav != nil), `" data-display="`, templ.EscapeString(display.ID), `">`,
		); err != nil {
			return err
		}
		if nav != nil {
			if err := nav.Render(ctx, w); err != nil {
				return err
			}
		}
		if err := writeAll(w, `<main class="`, mainClass(nav != nil), `">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		return writeAll(w, `</main></body></html>`)
	})
}

func bodyWrapperClass(withNav bool) string {
	if withNav {
		return "min-h-screen bg-stone-50 text-stone-900"
	}
	return "min-h-screen bg-stone-100 text-stone-900 flex items-center justify-center"
}

func mainClass(withNav bool) string {
	if withNav {
		return "mx-auto max-w-5xl px-6 py-8"
	}
	return "w-full max-w-md px-6 py-12"
}

func writeAll(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}
