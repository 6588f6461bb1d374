// Package auth keeps the signed-in user and bearer token in a gorilla
// session and gates protected routes on it.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eringen/blogfront/api"
)

// Storage keys inside the session. Both are written together on login and
// removed together on logout.
const (
	TokenKey = "token"
	UserKey  = "user"
)

const contextKey = "auth.session"

// ErrIncompleteLogin is returned when the backend accepted the credentials
// but did not return both a token and a user.
var ErrIncompleteLogin = errors.New("auth: login response missing token or user")

// Session is an immutable snapshot of who is signed in.
type Session struct {
	User  api.User
	Token string
}

// Authenticated is true iff both a user and a token are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User.ID != ""
}

// Manager performs session operations against the echo-contrib session
// store and the backend API.
type Manager struct {
	api  *api.Client
	name string
}

// NewManager creates a Manager that stores state in the session called name.
func NewManager(client *api.Client, name string) *Manager {
	return &Manager{api: client, name: name}
}

// Name returns the session name the manager reads and writes.
func (m *Manager) Name() string { return m.name }

// Restore reads the stored token and user. Missing, partial, or corrupt
// state yields the zero Session; it never fails.
func (m *Manager) Restore(c echo.Context) Session {
	sess, err := session.Get(m.name, c)
	if err != nil {
		return Session{}
	}
	token, _ := sess.Values[TokenKey].(string)
	raw, _ := sess.Values[UserKey].(string)
	if token == "" || raw == "" {
		return Session{}
	}
	var u api.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return Session{}
	}
	s := Session{User: u, Token: token}
	if !s.Authenticated() {
		return Session{}
	}
	return s
}

// Login authenticates with the backend and persists the result. On any
// failure the stored session is left as it was.
func (m *Manager) Login(c echo.Context, email, password string) (Session, error) {
	res, err := m.api.Login(c.Request().Context(), api.Credentials{Email: email, Password: password})
	if err != nil {
		return Session{}, err
	}
	s := Session{User: res.User, Token: res.AccessToken}
	if !s.Authenticated() {
		return Session{}, ErrIncompleteLogin
	}
	raw, err := json.Marshal(res.User)
	if err != nil {
		return Session{}, fmt.Errorf("auth: encode user: %w", err)
	}

	// A corrupt cookie still yields a usable fresh session.
	sess, _ := session.Get(m.name, c)
	if sess == nil {
		return Session{}, fmt.Errorf("auth: no session store for %q", m.name)
	}
	sess.Values[TokenKey] = res.AccessToken
	sess.Values[UserKey] = string(raw)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return Session{}, fmt.Errorf("auth: save session: %w", err)
	}
	c.Set(contextKey, s)
	return s, nil
}

// Register creates an account. The caller stays signed out.
func (m *Manager) Register(c echo.Context, username, email, password string) error {
	return m.api.Register(c.Request().Context(), api.Registration{
		Username: username,
		Email:    email,
		Password: password,
	})
}

// Logout removes the stored token and user. The session itself survives so
// a flash notice can still be carried to the next page.
func (m *Manager) Logout(c echo.Context) error {
	c.Set(contextKey, Session{})
	sess, _ := session.Get(m.name, c)
	if sess == nil {
		return nil
	}
	delete(sess.Values, TokenKey)
	delete(sess.Values, UserKey)
	return sess.Save(c.Request(), c.Response())
}

// Middleware restores the session once per request and makes the snapshot
// available through FromContext.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(contextKey, m.Restore(c))
			return next(c)
		}
	}
}

// FromContext returns the snapshot placed by Middleware (or updated by
// Login/Logout during the request).
func FromContext(c echo.Context) Session {
	s, _ := c.Get(contextKey).(Session)
	return s
}

// RequireSession redirects unauthenticated requests to loginPath.
func RequireSession(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !FromContext(c).Authenticated() {
				return c.Redirect(http.StatusFound, loginPath)
			}
			return next(c)
		}
	}
}
