package blogfront

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/blogfront/api"
	"github.com/eringen/blogfront/auth"
	"github.com/eringen/blogfront/views"
)

func (a *App) handleCreateForm(c echo.Context) error {
	return Render(c, views.PostForm(a.page(c, "Create Post"), views.Draft{}))
}

func (a *App) handleCreate(c echo.Context) error {
	s := auth.FromContext(c)
	var f postForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	draft := views.Draft{Title: f.Title, Content: f.Content}
	if draft.Errors = a.check(f); draft.Errors != nil {
		return RenderStatus(c, http.StatusUnprocessableEntity, views.PostForm(a.page(c, "Create Post"), draft))
	}
	if strings.TrimSpace(f.Content) == "" {
		return a.rejectDraft(c, "Create Post", draft, "Content is required")
	}

	in := api.PostInput{Title: f.Title, Content: f.Content}
	key := submitKey(s.Token, http.MethodPost, "/create-post", in.Title, in.Content)
	post, _, err := submitOnce(a.submits, key, func() (api.Post, error) {
		return a.API.CreatePost(c.Request().Context(), s.Token, in)
	})
	if canceled(c) {
		return nil
	}
	if err != nil {
		c.Logger().Warnf("create post: %v", err)
		page := a.page(c, "Create Post")
		page.Notices = append(page.Notices, views.Notice{Kind: noticeError, Message: "Failed to create post"})
		return Render(c, views.PostForm(page, draft))
	}

	a.notify(c, noticeSuccess, "Post created successfully!")
	if post.ID == "" {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Redirect(http.StatusSeeOther, views.PostPath(post.ID))
}

func (a *App) handleEditForm(c echo.Context) error {
	s := auth.FromContext(c)
	id := api.ID(c.Param("id"))
	post, err := a.API.GetPost(c.Request().Context(), s.Token, id)
	if canceled(c) {
		return nil
	}
	if err != nil {
		c.Logger().Warnf("load post %s for edit: %v", id, err)
		a.notify(c, noticeError, "Failed to load post")
		return c.Redirect(http.StatusFound, "/")
	}
	draft := views.Draft{ID: id, Title: post.Title, Content: post.Content}
	return Render(c, views.PostForm(a.page(c, "Edit Post"), draft))
}

func (a *App) handleEdit(c echo.Context) error {
	s := auth.FromContext(c)
	id := api.ID(c.Param("id"))
	var f postForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	draft := views.Draft{ID: id, Title: f.Title, Content: f.Content}
	if draft.Errors = a.check(f); draft.Errors != nil {
		return RenderStatus(c, http.StatusUnprocessableEntity, views.PostForm(a.page(c, "Edit Post"), draft))
	}
	if strings.TrimSpace(f.Content) == "" {
		return a.rejectDraft(c, "Edit Post", draft, "Content is required")
	}

	in := api.PostInput{Title: f.Title, Content: f.Content}
	key := submitKey(s.Token, http.MethodPut, views.EditPath(id), in.Title, in.Content)
	_, _, err := submitOnce(a.submits, key, func() (api.Post, error) {
		return a.API.UpdatePost(c.Request().Context(), s.Token, id, in)
	})
	if canceled(c) {
		return nil
	}
	if err != nil {
		c.Logger().Warnf("update post %s: %v", id, err)
		page := a.page(c, "Edit Post")
		page.Notices = append(page.Notices, views.Notice{Kind: noticeError, Message: "Failed to update post"})
		return Render(c, views.PostForm(page, draft))
	}

	a.notify(c, noticeSuccess, "Post updated successfully!")
	return c.Redirect(http.StatusSeeOther, views.PostPath(id))
}

// rejectDraft re-renders the form with an error notice and sends nothing to
// the backend.
func (a *App) rejectDraft(c echo.Context, title string, draft views.Draft, msg string) error {
	page := a.page(c, title)
	page.Notices = append(page.Notices, views.Notice{Kind: noticeError, Message: msg})
	return RenderStatus(c, http.StatusUnprocessableEntity, views.PostForm(page, draft))
}

func (a *App) handleDeleteConfirm(c echo.Context) error {
	s := auth.FromContext(c)
	id := api.ID(c.Param("id"))
	post, err := a.API.GetPost(c.Request().Context(), s.Token, id)
	if canceled(c) {
		return nil
	}
	if err != nil {
		c.Logger().Warnf("load post %s for delete: %v", id, err)
		a.notify(c, noticeError, "Failed to load post")
		return c.Redirect(http.StatusFound, "/")
	}
	if !post.OwnedBy(s.User.ID) {
		return c.Redirect(http.StatusFound, views.PostPath(id))
	}
	return Render(c, views.DeleteConfirm(a.page(c, "Delete post"), post))
}

func (a *App) handleDelete(c echo.Context) error {
	s := auth.FromContext(c)
	id := api.ID(c.Param("id"))
	if c.FormValue("confirm") != "yes" {
		return c.Redirect(http.StatusSeeOther, views.PostPath(id))
	}

	key := submitKey(s.Token, http.MethodDelete, views.PostPath(id))
	_, _, err := submitOnce(a.submits, key, func() (struct{}, error) {
		return struct{}{}, a.API.DeletePost(c.Request().Context(), s.Token, id)
	})
	if canceled(c) {
		return nil
	}
	if err != nil {
		c.Logger().Warnf("delete post %s: %v", id, err)
		a.notify(c, noticeError, "Failed to delete post")
		return c.Redirect(http.StatusSeeOther, views.PostPath(id))
	}

	a.notify(c, noticeSuccess, "Post deleted successfully")
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleProfile(c echo.Context) error {
	s := auth.FromContext(c)
	posts, err := a.API.ListUserPosts(c.Request().Context(), s.Token, s.User.ID)
	if canceled(c) {
		return nil
	}
	page := a.page(c, "Profile")
	if err != nil {
		c.Logger().Warnf("list posts of user %s: %v", s.User.ID, err)
		page.Notices = append(page.Notices, views.Notice{Kind: noticeError, Message: "Failed to load your posts"})
		posts = nil
	}
	return Render(c, views.Profile(page, posts))
}
