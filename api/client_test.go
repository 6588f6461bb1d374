package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAuthorizationHeader(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ListPosts(context.Background(), ""); err != nil {
		t.Fatalf("ListPosts anonymous: %v", err)
	}
	if _, err := c.ListPosts(context.Background(), "tok-1"); err != nil {
		t.Fatalf("ListPosts with token: %v", err)
	}

	if got[0] != "" {
		t.Errorf("anonymous request sent Authorization %q", got[0])
	}
	if got[1] != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want %q", got[1], "Bearer tok-1")
	}
}

func TestLoginDecodesTokenAndUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var cred Credentials
		if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if cred.Email != "ann@example.com" || cred.Password != "secret1" {
			t.Errorf("credentials = %+v", cred)
		}
		w.Write([]byte(`{"access_token":"abc","user":{"id":7,"username":"ann","email":"ann@example.com"}}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL+"/").Login(context.Background(), Credentials{Email: "ann@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.AccessToken != "abc" {
		t.Errorf("AccessToken = %q, want %q", res.AccessToken, "abc")
	}
	if res.User.ID != "7" || res.User.Username != "ann" {
		t.Errorf("User = %+v", res.User)
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		body         string
		notFound     bool
		unauthorized bool
		message      string
	}{
		{"not found", http.StatusNotFound, `{"message":"Post not found"}`, true, false, "Post not found"},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Unauthorized"}`, false, true, "Unauthorized"},
		{"forbidden", http.StatusForbidden, ``, false, true, "fallback"},
		{"validation list", http.StatusBadRequest, `{"message":["email must be an email","password too short"]}`, false, false, "email must be an email; password too short"},
		{"plain text", http.StatusInternalServerError, `boom`, false, false, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL).GetPost(context.Background(), "", "1")
			if err == nil {
				t.Fatal("expected error")
			}
			var se *StatusError
			if !errors.As(err, &se) || se.Code != tt.code {
				t.Fatalf("err = %v, want StatusError %d", err, tt.code)
			}
			if IsNotFound(err) != tt.notFound {
				t.Errorf("IsNotFound = %v, want %v", IsNotFound(err), tt.notFound)
			}
			if IsUnauthorized(err) != tt.unauthorized {
				t.Errorf("IsUnauthorized = %v, want %v", IsUnauthorized(err), tt.unauthorized)
			}
			if got := MessageOr(err, "fallback"); got != tt.message {
				t.Errorf("MessageOr = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPost, http.MethodPut:
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var in PostInput
			json.NewDecoder(r.Body).Decode(&in)
			json.NewEncoder(w).Encode(Post{ID: "p1", Title: in.Title, Content: in.Content})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()
	created, err := c.CreatePost(ctx, "t", PostInput{Title: "Hello", Content: "<p>x</p>"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if created.ID != "p1" || created.Title != "Hello" {
		t.Errorf("created = %+v", created)
	}
	if _, err := c.UpdatePost(ctx, "t", "p1", PostInput{Title: "Hi!", Content: "y"}); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if err := c.DeletePost(ctx, "t", "p1"); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	want := []string{"POST /posts", "PUT /posts/p1", "DELETE /posts/p1"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestContextCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := New(srv.URL).ListUserPosts(ctx, "t", "u1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestPostOwnership(t *testing.T) {
	tests := []struct {
		name string
		post Post
		user ID
		want bool
	}{
		{"author match", Post{Author: Author{ID: "u1"}}, "u1", true},
		{"author mismatch", Post{Author: Author{ID: "u2"}}, "u1", false},
		{"authorId fallback", Post{AuthorID: "u1"}, "u1", true},
		{"anonymous", Post{Author: Author{ID: "u1"}}, "", false},
		{"no owner", Post{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.post.OwnedBy(tt.user); got != tt.want {
				t.Errorf("OwnedBy(%q) = %v, want %v", tt.user, got, tt.want)
			}
		})
	}
}

func TestIDUnmarshal(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"x-1","b":42,"c":null}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.A != "x-1" || v.B != "42" || v.C != "" {
		t.Errorf("got %+v", v)
	}
	if err := json.Unmarshal([]byte(`{"a":true}`), &v); err == nil {
		t.Error("expected error for boolean id")
	}
}
