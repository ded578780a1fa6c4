package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the persisted login state written after a successful
// login, mirroring what the storefront's auth endpoint returns.
type Session struct {
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
}

// Store keeps the session in a JSON file under the user's home
// directory. An absent file simply means "not logged in".
type Store struct {
	Path string
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.shopkart-session.json"
	}
	return filepath.Join(home, ".shopkart", "session.json")
}

func (s *Store) Save(sess Session) error {
	if sess.Token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o600)
}

// Load returns the stored session, or nil when none exists.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	sess.Token = strings.TrimSpace(sess.Token)
	return &sess, nil
}

// Token returns the current credential, or "" when there is none. An
// expired JWT counts as absent so callers short-circuit before wasting
// a network call on a 401.
func (s *Store) Token() (string, error) {
	sess, err := s.Load()
	if err != nil {
		return "", err
	}
	if sess == nil || sess.Token == "" {
		return "", nil
	}
	if expired(sess.Token) {
		return "", nil
	}
	return sess.Token, nil
}

func (s *Store) Clear() error {
	if err := os.Remove(s.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// expired inspects the token's exp claim without verifying the
// signature; verification is the backend's job. Opaque (non-JWT)
// tokens pass through untouched.
func expired(raw string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
