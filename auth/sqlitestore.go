package auth

import (
	"database/sql"
	"encoding/base32"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	_ "modernc.org/sqlite"
)

// SQLiteStore is a sessions.Store that keeps session values server-side in
// SQLite. The cookie only carries the signed session id.
type SQLiteStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options

	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path. keyPairs are
// passed to securecookie as in sessions.NewCookieStore.
func NewSQLiteStore(path string, keyPairs ...[]byte) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	if path == ":memory:" {
		// Each connection to :memory: is its own database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(4)
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expires_at ON sessions (expires_at);
`); err != nil {
		db.Close()
		return nil, err
	}
	s := &SQLiteStore{
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:   "/",
			MaxAge: 86400 * 30,
		},
		db: db,
	}
	s.MaxAge(s.Options.MaxAge)
	return s, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MaxAge sets the maximum age for the store, its cookies, and the codecs.
func (s *SQLiteStore) MaxAge(age int) {
	s.Options.MaxAge = age
	for _, codec := range s.Codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(age)
		}
	}
}

// Get returns the session registered for this request, loading it once.
func (s *SQLiteStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request's cookie, or returns a fresh
// one. A decode error is returned alongside the fresh session.
func (s *SQLiteStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		return session, err
	}
	found, err := s.load(session)
	if err != nil {
		return session, err
	}
	session.IsNew = !found
	return session, nil
}

// Save persists the session and writes its id cookie. A negative MaxAge
// deletes both.
func (s *SQLiteStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, session.ID); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = strings.TrimRight(
			base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
	}
	data, err := securecookie.EncodeMulti(session.Name(), session.Values, s.Codecs...)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	expires := time.Now().Add(time.Duration(session.Options.MaxAge) * time.Second).Unix()
	if _, err := s.db.Exec(`INSERT INTO sessions (id, data, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`,
		session.ID, data, expires); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("encode session id: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *SQLiteStore) load(session *sessions.Session) (bool, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM sessions WHERE id = ? AND expires_at > ?`,
		session.ID, time.Now().Unix()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := securecookie.DecodeMulti(session.Name(), data, &session.Values, s.Codecs...); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteExpired removes expired sessions and returns how many were removed.
func (s *SQLiteStore) DeleteExpired() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanup deletes expired sessions every interval until the returned
// stop function is called.
func (s *SQLiteStore) StartCleanup(interval time.Duration, logf func(format string, args ...any)) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if _, err := s.DeleteExpired(); err != nil && logf != nil {
					logf("session cleanup: %v", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}
