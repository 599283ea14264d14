// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Forks that talk to a different deployment of the
// knowledge base only need to edit that file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	APIURL        string `yaml:"api_url"`
	Website       string `yaml:"website"`
	UserAgent     string `yaml:"user_agent"`
	ClientVersion string `yaml:"client_version"`
	HostTag       string `yaml:"host_tag"`
	AgentPrefix   string `yaml:"agent_prefix"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:       "prior",
			DisplayName:   "Prior",
			Description:   "Knowledge exchange for AI agents",
			HomeDir:       ".prior",
			EnvPrefix:     "PRIOR",
			APIURL:        "https://api.cg3.io",
			Website:       "https://prior.cg3.io",
			UserAgent:     "prior-openclaw",
			ClientVersion: "0.2.5",
			HostTag:       "openclaw",
			AgentPrefix:   "openclaw-",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "prior").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Prior").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".prior").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "PRIOR").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// APIURL returns the default root of the knowledge base API.
func APIURL() string { load(); return defaults.APIURL }

// Website returns the public product URL shown in usage text.
func Website() string { load(); return defaults.Website }

// HostTag identifies the agent host to the API at registration and search time.
func HostTag() string { load(); return defaults.HostTag }

// AgentPrefix is prepended to the hostname to build the registered agent name.
func AgentPrefix() string { load(); return defaults.AgentPrefix }

// ClientVersion returns the protocol version reported when the binary
// carries no usable build version.
func ClientVersion() string { load(); return defaults.ClientVersion }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("api_key") → "PRIOR_API_KEY".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}

// UserAgent returns the User-Agent header value sent with every request.
// A build version injected via ldflags is used when it is valid semver
// ("v" prefix tolerated); "dev" builds fall back to ClientVersion.
func UserAgent(buildVersion string) string {
	load()
	version := defaults.ClientVersion
	if v, err := semver.NewVersion(strings.TrimPrefix(buildVersion, "v")); err == nil {
		version = v.String()
	}
	return defaults.UserAgent + "/" + version
}
