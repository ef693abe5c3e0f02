package main

import (
	"os"
	"testing"

	"github.com/almoxarifado/almox/cmd/almox/tui"
	"github.com/almoxarifado/almox/internal/paths"
	"github.com/charmbracelet/x/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every file and the backend somewhere harmless.
func isolate(t *testing.T) {
	t.Helper()
	if term.IsTerminal(os.Stdin.Fd()) {
		t.Skip("stdin is a terminal; dispatched commands would prompt")
	}
	t.Setenv(paths.HomeEnv, t.TempDir())
	t.Setenv("ALMOX_API_URL", "http://127.0.0.1:1")
	t.Setenv("ALMOX_TIMEOUT", "1s")
}

func TestDispatchAction_AllActionIDsHaveCases(t *testing.T) {
	isolate(t)
	// Commands fail without a backend, token or arguments, but routing
	// must never report "unknown action".
	for _, id := range tui.AllActionIDs() {
		t.Run(id, func(t *testing.T) {
			action := tui.MenuAction{ID: id, Type: tui.ActionCLI}
			var err error
			func() {
				defer func() {
					if r := recover(); r != nil {
						// A panic still means the action reached a command.
					}
				}()
				err = dispatchAction(nil, action)
			}()
			if err != nil {
				assert.NotContains(t, err.Error(), "unknown action",
					"action ID %q has no case in dispatchAction", id)
			}
		})
	}
}

func TestDispatchAction_UnknownAction(t *testing.T) {
	action := tui.MenuAction{ID: "nonexistent", Type: tui.ActionCLI}
	err := dispatchAction(nil, action)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action")
}

func TestValidateBaseURL(t *testing.T) {
	assert.NoError(t, validateBaseURL("http://localhost:8080"))
	assert.NoError(t, validateBaseURL("https://almox.example.com"))
	assert.Error(t, validateBaseURL("localhost:8080"))
	assert.Error(t, validateBaseURL("ftp://host"))
	assert.Error(t, validateBaseURL(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Parafuso", truncate("Parafuso", 30))
	assert.Equal(t, "Parafu…", truncate("Parafuso sextavado", 7))
}

func TestCmdContext_NilFallsBack(t *testing.T) {
	require.NotNil(t, cmdContext(nil))
	require.NotNil(t, cmdContext(statusCmd))
}
