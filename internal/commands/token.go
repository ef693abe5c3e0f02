package commands

import (
	"errors"
	"time"

	"github.com/almoxarifado/almox/internal/session"
)

// ErrNoToken is returned by ShowToken when nothing is stored.
var ErrNoToken = errors.New("no token stored; run 'almox token set <token>'")

// TokenInfo describes the stored token without revealing it.
type TokenInfo struct {
	Decodable bool
	Subject   string
	Roles     []string
	Admin     bool
	ExpiresAt time.Time
	Expired   bool
}

// SetToken stores token and describes it. A token that does not decode as a
// JWT is still stored; the backend decides whether it is valid.
func SetToken(store *session.Store, token string) (*TokenInfo, error) {
	if err := store.Set(token); err != nil {
		return nil, err
	}
	return describe(token, time.Now()), nil
}

// ShowToken describes the stored token.
func ShowToken(store *session.Store, now time.Time) (*TokenInfo, error) {
	token, err := store.Credential()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoToken
	}
	return describe(token, now), nil
}

// ClearToken removes the stored token.
func ClearToken(store *session.Store) error {
	return store.Clear()
}

func describe(token string, now time.Time) *TokenInfo {
	claims, err := session.ParseClaims(token)
	if err != nil {
		return &TokenInfo{}
	}
	return &TokenInfo{
		Decodable: true,
		Subject:   claims.Subject,
		Roles:     claims.Roles,
		Admin:     claims.IsAdmin(),
		ExpiresAt: claims.ExpiresAt,
		Expired:   claims.Expired(now),
	}
}
