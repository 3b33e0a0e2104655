package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harun/clawgolf/internal/golferr"
	"github.com/harun/clawgolf/internal/state"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// setting describes one resolvable key.
type setting struct {
	key  string
	envs []string
	def  any
}

var settings = []setting{
	{key: KeyServerURL, envs: []string{EnvServerURL, EnvGameServerURL}, def: DefaultServerURL},
	{key: KeyTeeColor, envs: []string{EnvTeeColor}, def: DefaultTeeColor},
	{key: KeyYardsPerCell, envs: []string{EnvYardsPerCell}},
	{key: KeyMapFormat, envs: []string{EnvMapFormat}, def: DefaultMapFormat},
	{key: KeyAgentID, envs: []string{EnvAgentID}},
	{key: KeyAPIKey, envs: []string{EnvAPIKey}},
	{key: KeyRegistrationKey, envs: []string{EnvRegistrationKey}},
	{key: KeyName},
	{key: KeyLogLevel, envs: []string{EnvLogLevel}, def: DefaultLogLevel},
	{key: KeyLogFile, envs: []string{EnvLogFile}},
	{key: KeyMetricsFile, envs: []string{EnvMetricsFile}},
}

// RegisterFlags adds the global configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyServerURL, "", "Game server URL")
	fs.String(KeyStatePath, "", "Path to agent state file")
	fs.String(KeyTeeColor, "", "Tee color (default: white)")
	fs.Int(KeyYardsPerCell, 0, "Map resolution in yards per cell, 2-20 (persisted)")
	fs.String(KeyMapFormat, "", "Map format: grid (default) or ascii (persisted)")
	fs.String(KeyAgentID, "", "Agent ID override")
	fs.String(KeyAPIKey, "", "API key override")
	fs.String(KeyRegistrationKey, "", "Agent registration key")
	fs.String(KeyName, "", "Agent display name (max 32 chars, set at registration)")
	fs.String(KeyLogLevel, "", "Log level: debug, info, warn, error (default: warn)")
	fs.String(KeyLogFile, "", "Append logs to this file")
	fs.String(KeyMetricsFile, "", "Write Prometheus metrics to this textfile on exit")
}

// BaseDir returns the directory that holds agent.json and an optional .env.
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvBaseDir); dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return cwd, nil
}

// ResolveStatePath applies flag > environment > <baseDir>/agent.json.
// It runs before the state file is loaded, so it cannot consult persisted values.
func ResolveStatePath(flags *pflag.FlagSet) (string, error) {
	if flags != nil {
		if p, _ := flags.GetString(KeyStatePath); p != "" {
			return p, nil
		}
	}
	if p := os.Getenv(EnvStatePath); p != "" {
		return p, nil
	}
	dir, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, state.DefaultFileName), nil
}

// LoadDotEnv loads <dir>/.env into the process environment. Variables that are
// already set keep their values. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("Loaded .env")
	return nil
}

func newViper(flags *pflag.FlagSet, persisted map[string]any) (*viper.Viper, error) {
	v := viper.New()

	for _, s := range settings {
		if s.def != nil {
			v.SetDefault(s.key, s.def)
		}
		if len(s.envs) > 0 {
			if err := v.BindEnv(append([]string{s.key}, s.envs...)...); err != nil {
				return nil, fmt.Errorf("bind env %s: %w", s.key, err)
			}
		}
		if flags != nil {
			if f := flags.Lookup(s.key); f != nil {
				if err := v.BindPFlag(s.key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", s.key, err)
				}
			}
		}
	}

	if len(persisted) > 0 {
		if err := v.MergeConfigMap(persisted); err != nil {
			return nil, fmt.Errorf("merge persisted settings: %w", err)
		}
	}

	return v, nil
}

func sourceOf(flags *pflag.FlagSet, s setting, persisted map[string]any) Source {
	if flags != nil {
		if f := flags.Lookup(s.key); f != nil && f.Changed {
			return SourceFlag
		}
	}
	for _, env := range s.envs {
		if os.Getenv(env) != "" {
			return SourceEnv
		}
	}
	if _, ok := persisted[s.key]; ok {
		return SourceState
	}
	if s.def != nil {
		return SourceDefault
	}
	return SourceUnset
}

// Resolve builds the effective configuration. Precedence per setting is
// flag > environment > persisted state > default. Invalid explicit values are
// reported as validation errors before anything touches the network.
func Resolve(flags *pflag.FlagSet, persisted *state.AgentState) (*Config, error) {
	statePath, err := ResolveStatePath(flags)
	if err != nil {
		return nil, err
	}

	stored := persisted.Settings()
	v, err := newViper(flags, stored)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		StatePath: statePath,
		Sources:   make(map[string]Source, len(settings)),
	}
	for _, s := range settings {
		cfg.Sources[s.key] = sourceOf(flags, s, stored)
	}

	validator := NewValidator()

	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(v.GetString(KeyServerURL)), "/")
	if err := validator.ValidateServerURL(cfg.ServerURL); err != nil {
		return nil, err
	}

	cfg.TeeColor = strings.TrimSpace(v.GetString(KeyTeeColor))
	if cfg.TeeColor == "" {
		cfg.TeeColor = DefaultTeeColor
	}

	if raw := strings.TrimSpace(v.GetString(KeyYardsPerCell)); raw != "" && raw != "0" {
		n, convErr := strconv.Atoi(raw)
		err := validator.ValidateYardsPerCell(n)
		if convErr != nil {
			err = errYardsPerCell
		}
		switch {
		case err == nil:
			cfg.YardsPerCell = n
		case cfg.Source(KeyYardsPerCell).Explicit():
			return nil, err
		default:
			log.Warn().Str("value", raw).Msg("Ignoring stored yardsPerCell outside 2-20")
			cfg.Sources[KeyYardsPerCell] = SourceUnset
		}
	}

	cfg.MapFormat = strings.TrimSpace(v.GetString(KeyMapFormat))
	if err := validator.ValidateMapFormat(cfg.MapFormat); err != nil {
		if cfg.Source(KeyMapFormat).Explicit() {
			return nil, err
		}
		log.Warn().Str("value", cfg.MapFormat).Msg("Ignoring stored mapFormat")
		cfg.MapFormat = DefaultMapFormat
		cfg.Sources[KeyMapFormat] = SourceDefault
	}

	cfg.AgentID = strings.TrimSpace(v.GetString(KeyAgentID))
	cfg.APIKey = strings.TrimSpace(v.GetString(KeyAPIKey))
	cfg.RegistrationKey = strings.TrimSpace(v.GetString(KeyRegistrationKey))

	cfg.Name = strings.TrimSpace(v.GetString(KeyName))
	if err := validator.ValidateName(cfg.Name); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel)))
	if err := validator.ValidateLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	cfg.LogFile = v.GetString(KeyLogFile)
	cfg.MetricsFile = v.GetString(KeyMetricsFile)

	return cfg, nil
}

// ResolveLogging returns the log level and file from flags and environment only.
// It runs before the state file is read so that loading can be logged.
func ResolveLogging(flags *pflag.FlagSet) (level, file string, err error) {
	v, err := newViper(flags, nil)
	if err != nil {
		return "", "", err
	}
	level = strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel)))
	if err := NewValidator().ValidateLogLevel(level); err != nil {
		return "", "", err
	}
	return level, v.GetString(KeyLogFile), nil
}

var errYardsPerCell = golferr.Validation("--yardsPerCell must be between 2 and 20")
