package blogfront

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/blogfront/api"
	"github.com/eringen/blogfront/views"
)

const tooManyAttempts = "Too many attempts. Please try again later."

func (a *App) handleLoginForm(c echo.Context) error {
	return Render(c, views.Login(a.page(c, "Login"), views.LoginForm{}))
}

func (a *App) handleLogin(c echo.Context) error {
	var f loginForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := views.LoginForm{Email: f.Email}
	if form.Errors = a.check(f); form.Errors != nil {
		return RenderStatus(c, http.StatusUnprocessableEntity, views.Login(a.page(c, "Login"), form))
	}

	ip := c.RealIP()
	if !a.limiter.Check(ip) {
		return a.loginFailed(c, http.StatusTooManyRequests, form, tooManyAttempts)
	}

	_, err := a.Auth.Login(c, f.Email, f.Password)
	if canceled(c) {
		return nil
	}
	if err != nil {
		a.limiter.Record(ip)
		c.Logger().Warnf("login %s: %v", ip, err)
		return a.loginFailed(c, http.StatusOK, form, api.MessageOr(err, "Login failed"))
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) loginFailed(c echo.Context, code int, form views.LoginForm, msg string) error {
	page := a.page(c, "Login")
	page.Notices = append(page.Notices, views.Notice{Kind: noticeError, Message: msg})
	return RenderStatus(c, code, views.Login(page, form))
}

func (a *App) handleRegisterForm(c echo.Context) error {
	return Render(c, views.Register(a.page(c, "Register"), views.RegisterForm{}))
}

func (a *App) handleRegister(c echo.Context) error {
	var f registerForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := views.RegisterForm{Username: f.Username, Email: f.Email}
	if form.Errors = a.check(f); form.Errors != nil {
		return RenderStatus(c, http.StatusUnprocessableEntity, views.Register(a.page(c, "Register"), form))
	}

	ip := c.RealIP()
	if !a.limiter.Check(ip) {
		return a.registerFailed(c, http.StatusTooManyRequests, form, tooManyAttempts)
	}

	err := a.Auth.Register(c, f.Username, f.Email, f.Password)
	if canceled(c) {
		return nil
	}
	if err != nil {
		a.limiter.Record(ip)
		c.Logger().Warnf("register %s: %v", ip, err)
		return a.registerFailed(c, http.StatusOK, form, api.MessageOr(err, "Registration failed"))
	}

	a.notify(c, noticeSuccess, "Registration successful! Please login.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (a *App) registerFailed(c echo.Context, code int, form views.RegisterForm, msg string) error {
	page := a.page(c, "Register")
	page.Notices = append(page.Notices, views.Notice{Kind: noticeError, Message: msg})
	return RenderStatus(c, code, views.Register(page, form))
}

func (a *App) handleLogout(c echo.Context) error {
	if err := a.Auth.Logout(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
