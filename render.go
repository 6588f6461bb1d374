package blogfront

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/blogfront/auth"
	"github.com/eringen/blogfront/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// page builds the shared page state for the current request and consumes
// any pending notices.
func (a *App) page(c echo.Context, title string) views.Page {
	s := auth.FromContext(c)
	return views.Page{
		Site:    a.Config.site(),
		Title:   title,
		Viewer:  viewerOf(s),
		CSRF:    CsrfToken(c),
		Notices: a.takeNotices(c),
	}
}

func viewerOf(s auth.Session) views.Viewer {
	if !s.Authenticated() {
		return views.Viewer{}
	}
	return views.Viewer{
		Authenticated: true,
		UserID:        s.User.ID,
		Username:      s.User.Username,
		Email:         s.User.Email,
	}
}
