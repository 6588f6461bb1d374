package blogfront

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"

	"github.com/eringen/blogfront/views"
)

// Session storage backends.
const (
	SessionBackendCookie = "cookie"
	SessionBackendSQLite = "sqlite"
)

// SiteConfig holds all configuration for a blogfront site.
type SiteConfig struct {
	Name        string // Site name (default "Blog Platform")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags

	Addr string // Listen address (default ":3000")

	APIBaseURL string        // Required: backend API root, e.g. "http://localhost:8080/api"
	APITimeout time.Duration // Per-request backend timeout (default 15s)

	SessionSecret       string        // Required: session signing secret
	SessionBackend      string        // "cookie" (default) or "sqlite"
	SessionDatabasePath string        // SQLite path (default "data/sessions.db")
	SessionMaxAge       time.Duration // Session lifetime (default 12h)
	CookieSecure        bool          // Set true for HTTPS

	SanitizeContent bool // Filter post HTML before rendering (default off)

	LoginAttempts int           // Failed sign-in/up attempts allowed per window (default 5)
	LoginWindow   time.Duration // Attempt window (default 1min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog Platform"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.APITimeout == 0 {
		c.APITimeout = 15 * time.Second
	}
	if c.SessionBackend == "" {
		c.SessionBackend = SessionBackendCookie
	}
	if c.SessionDatabasePath == "" {
		c.SessionDatabasePath = "data/sessions.db"
	}
	if c.SessionMaxAge == 0 {
		c.SessionMaxAge = 12 * time.Hour
	}
	if c.LoginAttempts == 0 {
		c.LoginAttempts = 5
	}
	if c.LoginWindow == 0 {
		c.LoginWindow = time.Minute
	}
}

func (c SiteConfig) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithHTTPClient sets the http.Client used to reach the backend API.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *App) {
		a.httpClient = hc
	}
}

// WithSessionStore overrides the session store chosen by SessionBackend.
func WithSessionStore(store sessions.Store) Option {
	return func(a *App) {
		a.sessionStore = store
	}
}
