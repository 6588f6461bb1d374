package views

import "github.com/eringen/blogfront/api"

// SiteConfig holds site-wide settings populated from environment variables.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // SITE_NAME  (default "Blog Platform")
	URL         string // SITE_URL   (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
}

// Notice is a one-shot message shown at the top of the next rendered page.
type Notice struct {
	Kind    string // "success" or "error"
	Message string
}

// Viewer is what the layout needs to know about the signed-in user.
type Viewer struct {
	Authenticated bool
	UserID        api.ID
	Username      string
	Email         string
}

// Page carries the per-request data every full page renders.
type Page struct {
	Site    SiteConfig
	Title   string
	Viewer  Viewer
	CSRF    string
	Notices []Notice
}

// ListItem is one post on the home page. Hidden items do not match the
// current search and are rendered hidden so the in-page filter can show
// them again.
type ListItem struct {
	Post   api.Post
	Hidden bool
}

// FieldErrors maps form field names to their first validation message.
type FieldErrors map[string]string

// Draft is the transient state of the create and edit forms.
type Draft struct {
	ID      api.ID // empty when creating
	Title   string
	Content string
	Errors  FieldErrors
}

// LoginForm re-populates the login form after a failed attempt.
type LoginForm struct {
	Email  string
	Errors FieldErrors
}

// RegisterForm re-populates the registration form after a failed attempt.
type RegisterForm struct {
	Username string
	Email    string
	Errors   FieldErrors
}
