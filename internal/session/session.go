// Package session reads and writes the stored backend credential.
//
// The file holds a single bearer token under a fixed key. Obtaining the
// token (login) happens elsewhere; this package only persists it.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.yaml.in/yaml/v3"
)

// CredentialKey is the fixed name the token is stored under.
const CredentialKey = "authToken"

// Store is a file-backed credential store.
type Store struct {
	path string
}

// NewStore returns a store backed by the YAML file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Credential returns the stored token, or "" when none is stored.
func (s *Store) Credential() (string, error) {
	values, err := s.read()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(values[CredentialKey]), nil
}

// Set stores token, replacing any previous value.
func (s *Store) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	values, err := s.read()
	if err != nil {
		return err
	}
	values[CredentialKey] = token
	return s.write(values)
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[CredentialKey]; !ok {
		return nil
	}
	delete(values, CredentialKey)
	return s.write(values)
}

func (s *Store) read() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

func (s *Store) write(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Claims is the subset of token claims the frontend looks at. The signature
// is never verified here; the backend stays authoritative.
type Claims struct {
	Subject   string
	Roles     []string
	ExpiresAt time.Time // zero when the token carries no exp
}

// IsAdmin reports whether any role is ADMIN (with or without the ROLE_ prefix).
func (c Claims) IsAdmin() bool {
	for _, r := range c.Roles {
		r = strings.TrimPrefix(strings.ToUpper(r), "ROLE_")
		if r == "ADMIN" {
			return true
		}
	}
	return false
}

// Expired reports whether the token's exp is before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}

// ParseClaims decodes token without verifying it. Roles are collected from
// "role", "roles" and "authorities".
func ParseClaims(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("decoding token: %w", err)
	}

	var c Claims
	c.Subject, _ = mc.GetSubject()
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	for _, key := range []string{"role", "roles", "authorities"} {
		c.Roles = append(c.Roles, roleStrings(mc[key])...)
	}
	return c, nil
}

func roleStrings(v any) []string {
	switch v := v.(type) {
	case string:
		return []string{v}
	case []any:
		var out []string
		for _, item := range v {
			switch item := item.(type) {
			case string:
				out = append(out, item)
			case map[string]any:
				// Spring serializes GrantedAuthority as {"authority": "ROLE_X"}.
				if s, ok := item["authority"].(string); ok {
					out = append(out, s)
				}
			}
		}
		return out
	}
	return nil
}

// IsAdmin reports whether token decodes to claims carrying an ADMIN role.
// Undecodable tokens are treated as non-admin.
func IsAdmin(token string) bool {
	if token == "" {
		return false
	}
	c, err := ParseClaims(token)
	if err != nil {
		return false
	}
	return c.IsAdmin()
}
