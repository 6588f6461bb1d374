package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"github.com/eringen/blogfront"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("blogfront %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	timeout, err := envDuration("API_TIMEOUT")
	if err != nil {
		return err
	}
	cfg := blogfront.SiteConfig{
		Name:                blogfront.EnvOr("SITE_NAME", ""),
		URL:                 blogfront.EnvOr("SITE_URL", ""),
		Description:         blogfront.EnvOr("SITE_DESCRIPTION", ""),
		Addr:                blogfront.EnvOr("ADDR", ""),
		APIBaseURL:          blogfront.EnvOr("API_BASE_URL", "http://localhost:8080/api"),
		APITimeout:          timeout,
		SessionSecret:       blogfront.MustEnv("SESSION_SECRET"),
		SessionBackend:      blogfront.EnvOr("SESSION_BACKEND", blogfront.SessionBackendCookie),
		SessionDatabasePath: blogfront.EnvOr("SESSION_DATABASE_PATH", ""),
		CookieSecure:        envBool("COOKIE_SECURE"),
		SanitizeContent:     envBool("SANITIZE_CONTENT"),
	}

	app := blogfront.New(cfg)
	defer app.Close()
	app.Echo.Logger.SetLevel(log.INFO)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Echo.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

func envDuration(key string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func printUsage() {
	fmt.Println(`blogfront - A server-rendered frontend for a blog API, built with Go, Echo, and templ

Usage:
  blogfront <command>

Commands:
  serve         Start the web server
  version       Print the blogfront version
  help          Show this help message

Environment:
  SESSION_SECRET          Required. Signs session cookies
  API_BASE_URL            Backend API root (default http://localhost:8080/api)
  SITE_NAME, SITE_URL     Site name and canonical URL
  ADDR                    Listen address (default :3000)
  SESSION_BACKEND         cookie or sqlite (default cookie)
  SESSION_DATABASE_PATH   SQLite session database (default data/sessions.db)
  API_TIMEOUT             Backend request timeout, e.g. 10s
  COOKIE_SECURE           Set true behind HTTPS
  SANITIZE_CONTENT        Filter post HTML before rendering`)
}
