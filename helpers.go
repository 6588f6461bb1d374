package blogfront

import (
	"net/url"
	"path"
	"strings"

	"github.com/eringen/blogfront/api"
	"github.com/eringen/blogfront/views"
)

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if u.Path == "." {
		u.Path = ""
	}
	return u.String()
}

// FilterPosts marks each post hidden unless its title or content contains
// query, ignoring case. Order is preserved and the empty query matches all.
func FilterPosts(posts []api.Post, query string) []views.ListItem {
	items := make([]views.ListItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, views.ListItem{Post: p, Hidden: !matchesQuery(p, query)})
	}
	return items
}

func matchesQuery(p api.Post, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Content), q)
}
