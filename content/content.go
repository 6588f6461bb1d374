// Package content renders post bodies, which the backend stores as HTML.
package content

import (
	"context"
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
)

// PreviewLength is the number of characters shown in a post card.
const PreviewLength = 150

var stripPolicy = bluemonday.StrictPolicy()

// Renderer writes post HTML into pages. With sanitizing off the backend's
// HTML is written as-is.
type Renderer struct {
	policy *bluemonday.Policy
}

// NewRenderer returns a Renderer. sanitize enables a user-generated-content
// policy on every body it renders.
func NewRenderer(sanitize bool) *Renderer {
	r := &Renderer{}
	if sanitize {
		r.policy = bluemonday.UGCPolicy()
	}
	return r
}

// Sanitizing reports whether bodies are filtered before rendering.
func (r *Renderer) Sanitizing() bool {
	return r != nil && r.policy != nil
}

// Body returns a templ.Component that writes the post body.
func (r *Renderer) Body(body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, r.HTML(body))
		return err
	})
}

// HTML returns the markup Body would write.
func (r *Renderer) HTML(body string) string {
	if r.Sanitizing() {
		return r.policy.Sanitize(body)
	}
	return body
}

// Preview returns the post's text with markup removed, cut to
// PreviewLength characters with a trailing "...". The result is plain text.
func Preview(body string) string {
	text := html.UnescapeString(stripPolicy.Sanitize(body))
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:PreviewLength]) + "..."
}
