package blogfront

import (
	"encoding/gob"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eringen/blogfront/views"
)

const (
	noticeSuccess = "success"
	noticeError   = "error"
)

func init() {
	// Flashes are gob-encoded by securecookie.
	gob.Register(views.Notice{})
}

// notify queues a notice for the next rendered page. It is stored in the
// session so it survives a redirect.
func (a *App) notify(c echo.Context, kind, msg string) {
	sess, _ := session.Get(a.Auth.Name(), c)
	if sess == nil {
		return
	}
	sess.AddFlash(views.Notice{Kind: kind, Message: msg})
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Logger().Warnf("save notice: %v", err)
	}
}

// takeNotices drains the pending notices.
func (a *App) takeNotices(c echo.Context) []views.Notice {
	sess, _ := session.Get(a.Auth.Name(), c)
	if sess == nil {
		return nil
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Logger().Warnf("clear notices: %v", err)
	}
	notices := make([]views.Notice, 0, len(flashes))
	for _, f := range flashes {
		if n, ok := f.(views.Notice); ok {
			notices = append(notices, n)
		}
	}
	return notices
}
