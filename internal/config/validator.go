package config

import (
	"net/url"
	"strings"

	"github.com/harun/clawgolf/internal/golferr"
)

// Validator validates configuration values
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateServerURL requires an absolute http(s) URL.
func (v *Validator) ValidateServerURL(raw string) error {
	if raw == "" {
		return golferr.Validation("--serverUrl cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return golferr.Validationf("--serverUrl must be an http(s) URL, got %q", raw)
	}
	return nil
}

// ValidateYardsPerCell validates map resolution
func (v *Validator) ValidateYardsPerCell(n int) error {
	if n < MinYardsPerCell || n > MaxYardsPerCell {
		return golferr.Validation("--yardsPerCell must be between 2 and 20")
	}
	return nil
}

// ValidateMapFormat validates the hole-info map format
func (v *Validator) ValidateMapFormat(format string) error {
	if format == MapFormatGrid || format == MapFormatASCII {
		return nil
	}
	return golferr.Validation(`--mapFormat must be "grid" or "ascii"`)
}

// ValidateName validates the agent display name sent at registration
func (v *Validator) ValidateName(name string) error {
	if len([]rune(name)) > MaxNameLength {
		return golferr.Validationf("--name must be at most %d characters", MaxNameLength)
	}
	return nil
}

// ValidateLogLevel validates log level
func (v *Validator) ValidateLogLevel(level string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	for _, valid := range validLevels {
		if level == valid {
			return nil
		}
	}
	return golferr.Validationf("invalid log level: %s (must be one of: %s)", level, strings.Join(validLevels, ", "))
}
