package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cg3io/prior/internal/branding"
	"github.com/spf13/viper"
)

const (
	credentialsFile = "config.json"
	logFile         = "prior.log"

	keyBaseURL  = "base_url"
	keyAPIKey   = "api_key"
	keyLogLevel = "log_level"
	keyLogFile  = "log_file"
)

// Settings is the resolved configuration for one CLI invocation.
type Settings struct {
	BaseURL         string
	APIKey          string
	LogLevel        string
	LogFile         string
	CredentialsPath string
}

// Dir returns the path to the Prior config directory (~/.prior/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// CredentialsPath returns the full path to the credential file (~/.prior/config.json).
func CredentialsPath() string {
	return filepath.Join(Dir(), credentialsFile)
}

// Load reads settings from the environment. Empty variables count as unset.
func Load() *Settings {
	v := viper.New()
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault(keyBaseURL, branding.APIURL())
	v.SetDefault(keyLogFile, filepath.Join(Dir(), logFile))

	baseURL := strings.TrimRight(v.GetString(keyBaseURL), "/")
	if baseURL == "" {
		baseURL = branding.APIURL()
	}

	return &Settings{
		BaseURL:         baseURL,
		APIKey:          strings.TrimSpace(v.GetString(keyAPIKey)),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString(keyLogLevel))),
		LogFile:         v.GetString(keyLogFile),
		CredentialsPath: CredentialsPath(),
	}
}
