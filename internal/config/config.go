// Package config handles XDG configuration directory and file paths.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "taskdeck"

	// TokenFile is the stored session token filename.
	TokenFile = "token.json"

	// DefaultAPIURL is the task API base URL used when neither the
	// --api flag nor TASKDECK_API_URL is set.
	DefaultAPIURL = "http://localhost:5000"

	// APIURLEnv is the environment variable overriding the API base URL.
	APIURLEnv = "TASKDECK_API_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the task API base URL, without a trailing slash.
	APIURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory
// and API base URL. If configDir is empty, uses XDG_CONFIG_HOME/taskdeck or
// $HOME/.config/taskdeck. If apiURL is empty, uses TASKDECK_API_URL or the
// built-in default.
func New(configDir, apiURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	if apiURL == "" {
		apiURL = os.Getenv(APIURLEnv)
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Config{Dir: dir, APIURL: trimSlash(apiURL)}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored session token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

func trimSlash(u string) string {
	for len(u) > 1 && u[len(u)-1] == '/' {
		u = u[:len(u)-1]
	}
	return u
}
