package paths

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the base directory. Used by tests and by users who keep
// several backends side by side.
const HomeEnv = "ALMOX_HOME"

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// AppDir returns ~/.almox, or $ALMOX_HOME when set.
func AppDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	return filepath.Join(home(), ".almox")
}

// ConfigFile returns ~/.almox/config.yaml.
func ConfigFile() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// SessionFile returns ~/.almox/session.yaml.
func SessionFile() string {
	return filepath.Join(AppDir(), "session.yaml")
}

// LogFile returns ~/.almox/almox.log.
func LogFile() string {
	return filepath.Join(AppDir(), "almox.log")
}
