// Package blogfront is a server-rendered web frontend for a blogging API,
// built with Go, Echo, and templ.
//
// It renders every page on the server, keeps the signed-in user's bearer
// token in a gorilla session, and calls the backend on the browser's behalf.
// All business rules (persistence, token issuance, ownership checks) stay in
// the backend.
package blogfront

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/eringen/blogfront/api"
	"github.com/eringen/blogfront/auth"
	"github.com/eringen/blogfront/content"
)

const sessionName = "blog_session"

// App is the central blogfront application. It wires together the API
// client, session handling, middleware, and handlers.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	API     *api.Client
	Auth    *auth.Manager
	Content *content.Renderer

	sessionStore sessions.Store
	sqliteStore  *auth.SQLiteStore
	stopCleanup  func()
	limiter      *AttemptLimiter
	submits      *submitGuard
	validate     *validator.Validate
	httpClient   *http.Client
	customRoutes []func(*App)
	ready        bool
}

// New creates a new blogfront App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup builds the API client and session store and registers middleware
// and routes. Start calls it; tests call it directly and serve a.Echo.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Config.APIBaseURL == "" {
		return fmt.Errorf("blogfront: APIBaseURL is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("blogfront: SessionSecret is required")
	}

	apiOpts := []api.Option{}
	if a.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(a.httpClient))
	}
	apiOpts = append(apiOpts, api.WithTimeout(a.Config.APITimeout))
	a.API = api.New(a.Config.APIBaseURL, apiOpts...)
	a.Auth = auth.NewManager(a.API, sessionName)
	a.Content = content.NewRenderer(a.Config.SanitizeContent)
	a.limiter = NewAttemptLimiter(a.Config.LoginAttempts, a.Config.LoginWindow)
	a.submits = &submitGuard{}
	a.validate = newValidator()

	if a.sessionStore == nil {
		store, err := a.newSessionStore()
		if err != nil {
			return fmt.Errorf("blogfront: init session store: %w", err)
		}
		a.sessionStore = store
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the app up and serves until the server stops.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo
	protected := auth.RequireSession("/login")

	// Feeds
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public pages
	e.GET("/", a.handleHome)
	e.GET("/posts/:id", a.handlePost)
	e.GET("/login", a.handleLoginForm)
	e.POST("/login", a.handleLogin)
	e.GET("/register", a.handleRegisterForm)
	e.POST("/register", a.handleRegister)
	e.POST("/logout", a.handleLogout)

	// Signed-in pages
	e.GET("/create-post", a.handleCreateForm, protected)
	e.POST("/create-post", a.handleCreate, protected)
	e.GET("/edit-post/:id", a.handleEditForm, protected)
	e.POST("/edit-post/:id", a.handleEdit, protected)
	e.GET("/posts/:id/delete", a.handleDeleteConfirm, protected)
	e.POST("/posts/:id/delete", a.handleDelete, protected)
	e.GET("/profile", a.handleProfile, protected)

	e.Any("/*", handleUnknownRoute)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.sqliteStore != nil {
		return a.sqliteStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("blogfront: required environment variable %s is not set", key)
	}
	return v
}
