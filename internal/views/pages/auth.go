package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"nutrisync/internal/views/components"
	"nutrisync/internal/views/layout"
	"nutrisync/models"
)

// Login renders the full sign-in page.
func Login(message, email string) templ.Component {
	return layout.Layout("Sign in · nutrisync", nil, LoginPartial(message, email), layout.DisplayByID(models.DefaultDisplaySystem))
}

// LoginPartial renders only the sign-in form.
func LoginPartial(message, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeAll(w, `<section id="auth" class="auth-card"><h1>Sign in</h1>`); err != nil {
			return err
		}
		if err := components.Notice("error", message).Render(ctx, w); err != nil {
			return err
		}
		return writeAll(w,
			`<form method="post" action="/login" hx-post="/login" hx-target="#auth" hx-swap="outerHTML">`,
			`<label>Email<input type="email" name="email" required value="`, templ.EscapeString(email), `"></label>`,
			`<label>Password<input type="password" name="password" required></label>`,
			`<button type="submit">Sign in</button></form>`,
			`<p>No account yet? <a href="/signup">Create one</a></p></section>`,
		)
	})
}

// Signup renders the full registration page.
func Signup(message, name, email string) templ.Component {
	return layout.Layout("Create account · nutrisync", nil, SignupPartial(message, name, email), layout.DisplayByID(models.DefaultDisplaySystem))
}

// SignupPartial renders only the registration form.
func SignupPartial(message, name, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeAll(w, `<section id="auth" class="auth-card"><h1>Create account</h1>`); err != nil {
			return err
		}
		if err := components.Notice("error", message).Render(ctx, w); err != nil {
			return err
		}
		return writeAll(w,
			`<form method="post" action="/signup" hx-post="/signup" hx-target="#auth" hx-swap="outerHTML">`,
			`<label>Name<input type="text" name="name" value="`, templ.EscapeString(name), `"></label>`,
			`<label>Email<input type="email" name="email" required value="`, templ.EscapeString(email), `"></label>`,
			`<label>Password<input type="password" name="password" minlength="8" required></label>`,
			`<label>Confirm password<input type="password" name="confirm_password" minlength="8" required></label>`,
			`<button type="submit">Create account</button></form>`,
			`<p>Already registered? <a href="/login">Sign in</a></p></section>`,
		)
	})
}

func writeAll(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}
