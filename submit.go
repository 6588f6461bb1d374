package blogfront

import (
	"strings"

	"golang.org/x/sync/singleflight"
)

// submitGuard collapses identical form submissions that arrive while the
// first one is still waiting on the backend.
type submitGuard struct {
	group singleflight.Group
}

// submitKey identifies a submission by session token, route and payload.
func submitKey(token, method, path string, payload ...string) string {
	parts := append([]string{token, method, path}, payload...)
	return strings.Join(parts, "\x00")
}

// submitOnce runs fn unless an identical submission is in flight, in which
// case it waits for and shares that result.
func submitOnce[T any](g *submitGuard, key string, fn func() (T, error)) (T, bool, error) {
	v, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})
	res, _ := v.(T)
	return res, shared, err
}
