package blogfront

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/eringen/blogfront/api"
)

// fakeBackend is an in-memory blog API that records what it was asked.
type fakeBackend struct {
	mu     sync.Mutex
	posts  []api.Post
	nextID int
	calls  []string
	auths  map[string]string
	fail   map[string]int // "METHOD /path" -> status to answer with
	srv    *httptest.Server
}

var (
	ann = api.User{ID: "1", Username: "ann", Email: "ann@example.com"}
	bob = api.User{ID: "2", Username: "bob", Email: "bob@example.com"}
)

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		nextID: 100,
		auths:  map[string]string{},
		fail:   map[string]int{},
	}
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	b.posts = []api.Post{
		{ID: "1", Title: "Alpha", Content: "<p>foo</p>", CreatedAt: created, Author: api.Author{ID: ann.ID, Username: ann.Username}},
		{ID: "2", Title: "Beta", Content: "<p>bar</p>", CreatedAt: created, Author: api.Author{ID: bob.ID, Username: bob.Username}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", b.login)
	mux.HandleFunc("POST /auth/register", b.register)
	mux.HandleFunc("GET /posts", b.listPosts)
	mux.HandleFunc("GET /posts/{id}", b.getPost)
	mux.HandleFunc("POST /posts", b.createPost)
	mux.HandleFunc("PUT /posts/{id}", b.updatePost)
	mux.HandleFunc("DELETE /posts/{id}", b.deletePost)
	mux.HandleFunc("GET /posts/user/{id}", b.userPosts)

	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.calls = append(b.calls, call)
		b.auths[call] = r.Header.Get("Authorization")
		code := b.fail[call]
		b.mu.Unlock()
		if code != 0 {
			writeJSON(w, code, map[string]any{"message": http.StatusText(code)})
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// userFor maps the bearer tokens the fake hands out back to users.
func userFor(r *http.Request) (api.User, bool) {
	switch r.Header.Get("Authorization") {
	case "Bearer tok-ann":
		return ann, true
	case "Bearer tok-bob":
		return bob, true
	}
	return api.User{}, false
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var cred api.Credentials
	json.NewDecoder(r.Body).Decode(&cred)
	switch {
	case cred.Email == ann.Email && cred.Password == "secret1":
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "tok-ann", "user": map[string]any{"id": 1, "username": ann.Username, "email": ann.Email}})
	case cred.Email == bob.Email && cred.Password == "secret2":
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "tok-bob", "user": bob})
	default:
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
	}
}

func (b *fakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var reg api.Registration
	json.NewDecoder(r.Body).Decode(&reg)
	if reg.Username == "taken" {
		writeJSON(w, http.StatusConflict, map[string]any{"message": "Username already exists"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": 9, "username": reg.Username})
}

func (b *fakeBackend) find(id string) (int, bool) {
	for i, p := range b.posts {
		if string(p.ID) == id {
			return i, true
		}
	}
	return 0, false
}

func (b *fakeBackend) listPosts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.posts)
}

func (b *fakeBackend) getPost(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.find(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Post not found"})
		return
	}
	writeJSON(w, http.StatusOK, b.posts[i])
}

func (b *fakeBackend) createPost(w http.ResponseWriter, r *http.Request) {
	u, ok := userFor(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
		return
	}
	var in api.PostInput
	json.NewDecoder(r.Body).Decode(&in)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	p := api.Post{
		ID:        api.ID(fmt.Sprint(b.nextID)),
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: time.Now().UTC(),
		Author:    api.Author{ID: u.ID, Username: u.Username},
	}
	b.posts = append(b.posts, p)
	writeJSON(w, http.StatusCreated, p)
}

func (b *fakeBackend) updatePost(w http.ResponseWriter, r *http.Request) {
	u, ok := userFor(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
		return
	}
	var in api.PostInput
	json.NewDecoder(r.Body).Decode(&in)
	b.mu.Lock()
	defer b.mu.Unlock()
	i, found := b.find(r.PathValue("id"))
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Post not found"})
		return
	}
	if b.posts[i].OwnerID() != u.ID {
		writeJSON(w, http.StatusForbidden, map[string]any{"message": "Forbidden"})
		return
	}
	b.posts[i].Title, b.posts[i].Content = in.Title, in.Content
	writeJSON(w, http.StatusOK, b.posts[i])
}

func (b *fakeBackend) deletePost(w http.ResponseWriter, r *http.Request) {
	u, ok := userFor(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i, found := b.find(r.PathValue("id"))
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Post not found"})
		return
	}
	if b.posts[i].OwnerID() != u.ID {
		writeJSON(w, http.StatusForbidden, map[string]any{"message": "Forbidden"})
		return
	}
	b.posts = append(b.posts[:i], b.posts[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Post deleted"})
}

func (b *fakeBackend) userPosts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []api.Post{}
	for _, p := range b.posts {
		if string(p.OwnerID()) == r.PathValue("id") {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// count returns how many times call ("METHOD /path") was made.
func (b *fakeBackend) count(call string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == call {
			n++
		}
	}
	return n
}

// countMethod counts calls made with method.
func (b *fakeBackend) countMethod(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if strings.HasPrefix(c, method+" ") {
			n++
		}
	}
	return n
}

func (b *fakeBackend) authFor(call string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.auths[call]
}

func (b *fakeBackend) failWith(call string, code int) {
	b.mu.Lock()
	b.fail[call] = code
	b.mu.Unlock()
}

// setupTestApp serves a fully wired App against a fake backend.
func setupTestApp(t *testing.T, opts ...Option) (*App, *fakeBackend, *httptest.Server) {
	t.Helper()
	backend := newFakeBackend(t)
	app := New(SiteConfig{
		URL:           "https://blog.example.com",
		APIBaseURL:    backend.srv.URL,
		SessionSecret: "test-secret-0123456789abcdef0123",
	}, opts...)
	app.Echo.Logger.SetOutput(io.Discard)
	if err := app.Setup(); err != nil {
		t.Fatalf("setup app: %v", err)
	}
	srv := httptest.NewServer(app.Echo)
	t.Cleanup(func() {
		srv.Close()
		app.Close()
	})
	return app, backend, srv
}

var csrfMeta = regexp.MustCompile(`<meta name="csrf-token" content="([^"]*)">`)

// browser keeps cookies across requests and does not follow redirects.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
	csrf   string
}

func newBrowser(t *testing.T, srv *httptest.Server) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &browser{
		t:    t,
		base: srv.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type result struct {
	code     int
	location string
	body     string
}

func (b *browser) do(req *http.Request) result {
	b.t.Helper()
	resp, err := b.client.Do(req)
	if err != nil {
		b.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		b.t.Fatalf("read %s: %v", req.URL.Path, err)
	}
	body := string(data)
	if m := csrfMeta.FindStringSubmatch(body); m != nil && m[1] != "" {
		b.csrf = m[1]
	}
	return result{code: resp.StatusCode, location: resp.Header.Get("Location"), body: body}
}

func (b *browser) get(path string) result {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	if err != nil {
		b.t.Fatalf("new request: %v", err)
	}
	return b.do(req)
}

// post submits form with the CSRF token of the last rendered page, loading
// the login page first when no token has been seen yet.
func (b *browser) post(path string, form url.Values) result {
	b.t.Helper()
	if b.csrf == "" {
		b.get("/login")
	}
	if form == nil {
		form = url.Values{}
	}
	form.Set("_csrf", b.csrf)
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		b.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) login(email, password string) {
	b.t.Helper()
	res := b.post("/login", url.Values{"email": {email}, "password": {password}})
	if res.code != http.StatusSeeOther {
		b.t.Fatalf("login %s: status %d, body %s", email, res.code, res.body)
	}
}

func (b *browser) cookies() []*http.Cookie {
	u, _ := url.Parse(b.base)
	return b.client.Jar.Cookies(u)
}
