package views

import "github.com/a-h/templ"

func csrfInput(p *printer, token string) {
	p.raw(`<input type="hidden" name="_csrf" value="`)
	p.text(token)
	p.raw(`">`)
}

// field renders a labelled input with its inline error.
func field(p *printer, kind, name, label, value, placeholder string, errs FieldErrors) {
	p.raw(`<div class="field"><label for="`, name, `">`, label, `</label>`)
	p.raw(`<input type="`, kind, `" id="`, name, `" name="`, name, `"`)
	if kind != "password" {
		p.raw(` value="`)
		p.text(value)
		p.raw(`"`)
	}
	if placeholder != "" {
		p.raw(` placeholder="`)
		p.text(placeholder)
		p.raw(`"`)
	}
	p.raw(`>`)
	fieldError(p, errs, name)
	p.raw(`</div>`)
}

func fieldError(p *printer, errs FieldErrors, name string) {
	if msg, ok := errs[name]; ok {
		p.raw(`<p class="field-error">`)
		p.text(msg)
		p.raw(`</p>`)
	}
}

// PostForm renders the create form, or the edit form when d.ID is set.
func PostForm(page Page, d Draft) templ.Component {
	editing := d.ID != ""
	heading, action, submit, busy, cancel := "Create New Post", "/create-post", "Create Post", "Creating...", "/"
	if editing {
		heading, action, submit, busy, cancel = "Edit Post", EditPath(d.ID), "Update Post", "Updating...", PostPath(d.ID)
	}
	return Layout(page, component(func(p *printer) {
		p.raw(`<section class="post-form"><h1>`, heading, `</h1><form method="post" action="`)
		p.text(action)
		p.raw(`">`)
		csrfInput(p, page.CSRF)
		field(p, "text", "title", "Title", d.Title, "Enter post title", d.Errors)
		p.raw(`<div class="field"><label for="content">Content</label>`,
			`<textarea id="content" name="content" rows="16" placeholder="Write your post content here...">`)
		p.text(d.Content)
		p.raw(`</textarea>`)
		fieldError(p, d.Errors, "content")
		p.raw(`</div><div class="actions"><a href="`)
		p.text(cancel)
		p.raw(`" class="btn">Cancel</a><button type="submit" class="btn btn-primary" data-busy="`, busy, `">`, submit, `</button></div></form></section>`)
	}))
}

// Login renders the sign-in form.
func Login(page Page, f LoginForm) templ.Component {
	return Layout(page, component(func(p *printer) {
		p.raw(`<section class="auth-form"><h1>Login</h1><form method="post" action="/login">`)
		csrfInput(p, page.CSRF)
		field(p, "email", "email", "Email", f.Email, "your@email.com", f.Errors)
		field(p, "password", "password", "Password", "", "********", f.Errors)
		p.raw(`<button type="submit" class="btn btn-primary" data-busy="Logging in...">Login</button></form>`,
			`<p>Don't have an account? <a href="/register">Register</a></p></section>`)
	}))
}

// Register renders the sign-up form.
func Register(page Page, f RegisterForm) templ.Component {
	return Layout(page, component(func(p *printer) {
		p.raw(`<section class="auth-form"><h1>Register</h1><form method="post" action="/register">`)
		csrfInput(p, page.CSRF)
		field(p, "text", "username", "Username", f.Username, "johndoe", f.Errors)
		field(p, "email", "email", "Email", f.Email, "your@email.com", f.Errors)
		field(p, "password", "password", "Password", "", "********", f.Errors)
		field(p, "password", "confirmPassword", "Confirm Password", "", "********", f.Errors)
		p.raw(`<button type="submit" class="btn btn-success" data-busy="Registering...">Register</button></form>`,
			`<p>Already have an account? <a href="/login">Login</a></p></section>`)
	}))
}
