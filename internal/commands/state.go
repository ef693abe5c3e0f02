package commands

import (
	"os"
	"time"

	"github.com/almoxarifado/almox/internal/session"
)

// MenuState holds the detected state used to build the TUI menu.
type MenuState struct {
	ConfigExists bool
	HasToken     bool
	Admin        bool
	Subject      string
	TokenExpired bool
	APIURL       string
}

// DetectMenuState checks the local config and session for menu rendering.
// It never errors; unknown state defaults to false/empty.
func DetectMenuState(configFile string, store *session.Store, apiURL string) MenuState {
	state := MenuState{APIURL: apiURL}

	if _, err := os.Stat(configFile); err == nil {
		state.ConfigExists = true
	}

	token, err := store.Credential()
	if err != nil || token == "" {
		return state
	}
	state.HasToken = true

	claims, err := session.ParseClaims(token)
	if err != nil {
		return state
	}
	state.Subject = claims.Subject
	state.Admin = claims.IsAdmin()
	state.TokenExpired = claims.Expired(time.Now())
	return state
}
