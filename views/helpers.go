package views

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/eringen/blogfront/api"
)

// printer accumulates the first write error so components can be written
// as straight-line code.
type printer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (p *printer) raw(parts ...string) {
	for _, s := range parts {
		if p.err != nil {
			return
		}
		_, p.err = io.WriteString(p.w, s)
	}
}

// text writes s HTML-escaped.
func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *printer) render(c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(p.ctx, p.w)
}

func component(fn func(p *printer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{ctx: ctx, w: w}
		fn(p)
		return p.err
	})
}

// PostPath is the detail route for a post.
func PostPath(id api.ID) string {
	return "/posts/" + url.PathEscape(string(id))
}

// EditPath is the edit route for a post.
func EditPath(id api.ID) string {
	return "/edit-post/" + url.PathEscape(string(id))
}

// DeletePath is the delete confirmation route for a post.
func DeletePath(id api.ID) string {
	return PostPath(id) + "/delete"
}

// Ago formats t like "3 days ago". The zero time formats as "".
func Ago(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// SearchText is the lowercased text the home page filter matches against.
func SearchText(p api.Post) string {
	return strings.ToLower(p.Title) + "\n" + strings.ToLower(p.Content)
}

func hiddenAttr(hidden bool) string {
	if hidden {
		return " hidden"
	}
	return ""
}
