package blogfront

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/blogfront/api"
	"github.com/eringen/blogfront/auth"
	"github.com/eringen/blogfront/views"
)

// canceled reports whether the browser went away while a backend call was
// in flight. Handlers write nothing in that case.
func canceled(c echo.Context) bool {
	return c.Request().Context().Err() != nil
}

func (a *App) handleHome(c echo.Context) error {
	s := auth.FromContext(c)
	query := c.QueryParam("q")
	posts, err := a.API.ListPosts(c.Request().Context(), s.Token)
	if canceled(c) {
		return nil
	}
	page := a.page(c, "")
	if err != nil {
		c.Logger().Warnf("list posts: %v", err)
		page.Notices = append(page.Notices, views.Notice{Kind: noticeError, Message: "Failed to load posts"})
		posts = nil
	}
	return Render(c, views.Home(page, FilterPosts(posts, query), query))
}

func (a *App) handlePost(c echo.Context) error {
	s := auth.FromContext(c)
	id := api.ID(c.Param("id"))
	post, err := a.API.GetPost(c.Request().Context(), s.Token, id)
	if canceled(c) {
		return nil
	}
	if err != nil {
		page := a.page(c, "Post not found")
		if api.IsNotFound(err) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(page))
		}
		c.Logger().Warnf("get post %s: %v", id, err)
		page.Notices = append(page.Notices, views.Notice{Kind: noticeError, Message: "Failed to load post"})
		return RenderStatus(c, http.StatusBadGateway, views.NotFound(page))
	}
	canManage := s.Authenticated() && post.OwnedBy(s.User.ID)
	return Render(c, views.PostDetail(a.page(c, post.Title), post, canManage, a.Content.Body(post.Content)))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.API.ListPosts(c.Request().Context(), "")
	if canceled(c) {
		return nil
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "list posts").SetInternal(err)
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.API.ListPosts(c.Request().Context(), "")
	if canceled(c) {
		return nil
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "list posts").SetInternal(err)
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	for _, p := range []string{"/create-post", "/edit-post/", "/profile", "/login", "/register"} {
		fmt.Fprintf(&b, "Disallow: %s\n", p)
	}
	fmt.Fprintf(&b, "\nSitemap: %s\n", BuildURL(a.Config.URL, "sitemap.xml"))
	return c.String(http.StatusOK, b.String())
}

// handleUnknownRoute sends every unmatched path back to the home page.
func handleUnknownRoute(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.page(c, "Not found")))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.page(c, "Error")))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
