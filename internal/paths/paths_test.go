package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/almoxarifado/almox/internal/paths"
	"github.com/stretchr/testify/assert"
)

func TestAppDir(t *testing.T) {
	t.Setenv(paths.HomeEnv, "")
	home, _ := os.UserHomeDir()
	assert.True(t, strings.HasPrefix(paths.AppDir(), home))
	assert.True(t, strings.HasSuffix(paths.AppDir(), ".almox"))
}

func TestAppDir_Override(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.HomeEnv, dir)
	assert.Equal(t, dir, paths.AppDir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), paths.ConfigFile())
}

func TestConfigFile(t *testing.T) {
	assert.True(t, strings.HasSuffix(paths.ConfigFile(), "config.yaml"))
}

func TestSessionFile(t *testing.T) {
	assert.True(t, strings.HasSuffix(paths.SessionFile(), "session.yaml"))
}

func TestLogFile(t *testing.T) {
	assert.True(t, strings.HasSuffix(paths.LogFile(), "almox.log"))
}
