package views

import "github.com/a-h/templ"

// submitScript disables a form's submit buttons once it is submitted and
// swallows repeat submissions while the request is outstanding.
const submitScript = `document.addEventListener('submit',function(e){var f=e.target;if(f.dataset.submitting){e.preventDefault();return;}f.dataset.submitting='1';f.querySelectorAll('button[type=submit]').forEach(function(b){b.disabled=true;if(b.dataset.busy){b.textContent=b.dataset.busy;}});});`

// Layout wraps body in the document shell with the nav bar and notices.
func Layout(page Page, body templ.Component) templ.Component {
	return component(func(p *printer) {
		title := page.Site.Name
		if page.Title != "" {
			title = page.Title + " | " + page.Site.Name
		}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<meta name="csrf-token" content="`)
		p.text(page.CSRF)
		p.raw(`">`)
		if page.Site.Description != "" {
			p.raw(`<meta name="description" content="`)
			p.text(page.Site.Description)
			p.raw(`">`)
		}
		p.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml">`)
		p.raw(`<title>`)
		p.text(title)
		p.raw(`</title></head><body>`)
		p.render(Nav(page))
		p.raw(`<main class="container">`)
		p.render(Notices(page.Notices))
		p.render(body)
		p.raw(`</main><script>`, submitScript, `</script></body></html>`)
	})
}

// Nav renders the top bar. Its links depend on whether someone is signed in.
func Nav(page Page) templ.Component {
	return component(func(p *printer) {
		p.raw(`<nav class="navbar"><a href="/" class="brand">`)
		p.text(page.Site.Name)
		p.raw(`</a><div class="nav-links"><a href="/">Home</a>`)
		if page.Viewer.Authenticated {
			p.raw(`<a href="/create-post">Create Post</a><a href="/profile">Profile</a>`)
			p.raw(`<form method="post" action="/logout" class="inline"><input type="hidden" name="_csrf" value="`)
			p.text(page.CSRF)
			p.raw(`"><button type="submit" class="btn btn-danger">Logout</button></form>`)
			p.raw(`<span class="welcome">Welcome, `)
			p.text(page.Viewer.Username)
			p.raw(`</span>`)
		} else {
			p.raw(`<a href="/login" class="btn btn-primary">Login</a><a href="/register" class="btn btn-success">Register</a>`)
		}
		p.raw(`</div></nav>`)
	})
}

// Notices renders pending flash messages.
func Notices(notices []Notice) templ.Component {
	return component(func(p *printer) {
		if len(notices) == 0 {
			return
		}
		p.raw(`<div class="notices">`)
		for _, n := range notices {
			kind := "success"
			if n.Kind == "error" {
				kind = "error"
			}
			p.raw(`<div class="notice notice-`, kind, `" role="status">`)
			p.text(n.Message)
			p.raw(`</div>`)
		}
		p.raw(`</div>`)
	})
}

// NotFound is the missing-post page.
func NotFound(page Page) templ.Component {
	return Layout(page, component(func(p *printer) {
		p.raw(`<div class="not-found"><h1>Post not found</h1><a href="/">Return to home page</a></div>`)
	}))
}

// ServerError is rendered for unexpected failures.
func ServerError(page Page) templ.Component {
	return Layout(page, component(func(p *printer) {
		p.raw(`<div class="server-error"><h1>Something went wrong</h1><a href="/">Return to home page</a></div>`)
	}))
}
