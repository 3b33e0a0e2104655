// Package config resolves the effective clawgolf configuration from flags,
// environment, persisted agent state and defaults.
package config

import (
	"encoding/json"

	"github.com/harun/clawgolf/internal/state"
)

// Setting keys. Each key is also the flag name and the persisted JSON key.
const (
	KeyServerURL       = "serverUrl"
	KeyStatePath       = "statePath"
	KeyTeeColor        = "teeColor"
	KeyYardsPerCell    = "yardsPerCell"
	KeyMapFormat       = "mapFormat"
	KeyAgentID         = "agentId"
	KeyAPIKey          = "apiKey"
	KeyRegistrationKey = "registrationKey"
	KeyName            = "name"
	KeyLogLevel        = "logLevel"
	KeyLogFile         = "logFile"
	KeyMetricsFile     = "metricsFile"
)

// Environment variables consulted.
const (
	EnvBaseDir         = "OPENCLAW_GOLF_BASE_DIR"
	EnvStatePath       = "OPENCLAW_GOLF_STATE_PATH"
	EnvServerURL       = "OPENCLAW_GOLF_SERVER_URL"
	EnvGameServerURL   = "GAME_SERVER_URL"
	EnvTeeColor        = "OPENCLAW_GOLF_TEE_COLOR"
	EnvYardsPerCell    = "OPENCLAW_GOLF_YARDS_PER_CELL"
	EnvMapFormat       = "OPENCLAW_GOLF_MAP_FORMAT"
	EnvAgentID         = "OPENCLAW_GOLF_AGENT_ID"
	EnvAPIKey          = "OPENCLAW_GOLF_API_KEY"
	EnvRegistrationKey = "OPENCLAW_GOLF_REGISTRATION_KEY"
	EnvLogLevel        = "OPENCLAW_GOLF_LOG_LEVEL"
	EnvLogFile         = "OPENCLAW_GOLF_LOG_FILE"
	EnvMetricsFile     = "OPENCLAW_GOLF_METRICS_FILE"
)

// Defaults
const (
	DefaultServerURL = "https://api.playlooper.xyz"
	DefaultTeeColor  = "white"
	DefaultMapFormat = MapFormatGrid
	DefaultLogLevel  = "warn"

	MapFormatGrid  = "grid"
	MapFormatASCII = "ascii"

	MinYardsPerCell = 2
	MaxYardsPerCell = 20
	MaxNameLength   = 32
)

// Source names the layer a setting was resolved from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceState   Source = "state"
	SourceDefault Source = "default"
	SourceUnset   Source = ""
)

// Explicit reports whether the value was supplied for this invocation
// rather than remembered or defaulted.
func (s Source) Explicit() bool {
	return s == SourceFlag || s == SourceEnv
}

// Config is the effective configuration for one invocation.
type Config struct {
	ServerURL    string `json:"serverUrl"`
	StatePath    string `json:"statePath"`
	TeeColor     string `json:"teeColor"`
	YardsPerCell int    `json:"yardsPerCell,omitempty"`
	MapFormat    string `json:"mapFormat"`

	// Explicit credentials override the stored ones when both are set.
	AgentID         string `json:"agentId,omitempty"`
	APIKey          string `json:"-"`
	RegistrationKey string `json:"-"`
	Name            string `json:"name,omitempty"`

	LogLevel    string `json:"logLevel"`
	LogFile     string `json:"logFile,omitempty"`
	MetricsFile string `json:"metricsFile,omitempty"`

	Sources map[string]Source `json:"sources"`
}

// Source returns where key was resolved from.
func (c *Config) Source(key string) Source {
	return c.Sources[key]
}

// HasExplicitCredentials reports whether both agentId and apiKey were supplied.
func (c *Config) HasExplicitCredentials() bool {
	return c.AgentID != "" && c.APIKey != ""
}

// String returns a JSON representation of the config without secrets.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// Apply copies explicit settings onto the persisted state and reports whether
// the state needs to be written back.
//
// serverUrl is persisted whenever it differs from the stored value. The other
// preferences are persisted only when they came from a flag or the environment.
// Explicit credentials replace the stored ones but do not by themselves force a write.
func (c *Config) Apply(s *state.AgentState) bool {
	changed := false

	if c.HasExplicitCredentials() {
		s.AgentID = c.AgentID
		s.APIKey = c.APIKey
	}

	if s.ServerURL != c.ServerURL {
		s.ServerURL = c.ServerURL
		changed = true
	}
	if c.Source(KeyTeeColor).Explicit() && s.TeeColor != c.TeeColor {
		s.TeeColor = c.TeeColor
		changed = true
	}
	if c.Source(KeyYardsPerCell).Explicit() && s.YardsPerCell != c.YardsPerCell {
		s.YardsPerCell = c.YardsPerCell
		changed = true
	}
	if c.Source(KeyMapFormat).Explicit() && s.MapFormat != c.MapFormat {
		s.MapFormat = c.MapFormat
		changed = true
	}

	return changed
}
