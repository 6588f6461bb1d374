package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ID is a backend identifier. The API may encode ids as JSON strings or
// numbers; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts a quoted string, a bare number, or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("api: invalid id %s", b)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// User is the account record returned by login.
type User struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Author identifies the owner of a post.
type Author struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
}

// Post is a blog post as served by the backend.
type Post struct {
	ID        ID        `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	AuthorID  ID        `json:"authorId,omitempty"`
	Author    Author    `json:"author"`
}

// OwnerID returns the author's id, preferring the embedded author record.
func (p Post) OwnerID() ID {
	if p.Author.ID != "" {
		return p.Author.ID
	}
	return p.AuthorID
}

// OwnedBy reports whether userID is the post's author. An empty userID
// never owns anything.
func (p Post) OwnedBy(userID ID) bool {
	return userID != "" && p.OwnerID() == userID
}

// PostInput is the body of create and update requests.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the login response body.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
