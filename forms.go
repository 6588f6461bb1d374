package blogfront

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/eringen/blogfront/views"
)

type postForm struct {
	Title   string `form:"title" validate:"required,min=3"`
	Content string `form:"content"`
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Username        string `form:"username" validate:"required,min=3"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
}

// fieldMessages maps a form field and failed rule to the message shown
// under the field.
var fieldMessages = map[string]map[string]string{
	"title": {
		"required": "Title is required",
		"min":      "Title must be at least 3 characters",
	},
	"username": {
		"required": "Username is required",
		"min":      "Username must be at least 3 characters",
	},
	"email": {
		"required": "Email is required",
		"email":    "Invalid email format",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
	"confirmPassword": {
		"required": "Confirm password is required",
		"eqfield":  "Passwords must match",
	},
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check validates form and returns one message per failing field, or nil.
func (a *App) check(form any) views.FieldErrors {
	err := a.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return views.FieldErrors{"form": err.Error()}
	}
	out := views.FieldErrors{}
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := out[name]; seen {
			continue
		}
		msg, ok := fieldMessages[name][fe.Tag()]
		if !ok {
			msg = "Invalid " + name
		}
		out[name] = msg
	}
	return out
}
