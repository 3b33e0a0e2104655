// Package shot validates and canonicalizes shot inputs before they are sent.
package shot

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/harun/clawgolf/internal/golferr"
	"github.com/harun/clawgolf/pkg/golfapi"
)

var whitespace = regexp.MustCompile(`\s+`)

// fixedClubs are passed through unchanged.
var fixedClubs = map[string]bool{
	"pw":     true,
	"sw":     true,
	"putter": true,
	"driver": true,
}

// NormalizeClub trims and lower-cases a club name. Known names and names
// ending in -wood or -iron are kept; otherwise whitespace runs become a
// single hyphen. NormalizeClub(NormalizeClub(s)) == NormalizeClub(s).
func NormalizeClub(name string) string {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return ""
	}
	if fixedClubs[trimmed] {
		return trimmed
	}
	if strings.HasSuffix(trimmed, "-wood") || strings.HasSuffix(trimmed, "-iron") {
		return trimmed
	}
	return whitespace.ReplaceAllString(trimmed, "-")
}

// Normalize validates raw CLI values and produces a shot decision.
// Aim must lie in [0,360]; 360 is sent as 0. Power accepts a trailing
// percent sign, treats values above 1 as percentages and must end up in [0,1].
func Normalize(clubRaw, aimRaw, powerRaw string) (golfapi.ShotDecision, error) {
	if strings.TrimSpace(clubRaw) == "" {
		return golfapi.ShotDecision{}, golferr.Validation("Missing --club. Example: --club driver")
	}
	if strings.TrimSpace(aimRaw) == "" {
		return golfapi.ShotDecision{}, golferr.Validation("Missing --aim (degrees 0-360). Example: --aim 355")
	}
	if strings.TrimSpace(powerRaw) == "" {
		return golfapi.ShotDecision{}, golferr.Validation("Missing --power (1-100). Example: --power 90")
	}

	club := NormalizeClub(clubRaw)
	if club == "" {
		return golfapi.ShotDecision{}, golferr.Validation("Missing --club. Example: --club driver")
	}

	aim, err := ParseAim(aimRaw)
	if err != nil {
		return golfapi.ShotDecision{}, err
	}

	power, err := ParsePower(powerRaw)
	if err != nil {
		return golfapi.ShotDecision{}, err
	}

	if aim == 360 {
		aim = 0
	}

	return golfapi.ShotDecision{
		Club:         club,
		AimDirection: aim,
		Power:        power,
	}, nil
}

// ParseAim parses an aim direction in degrees within [0,360].
func ParseAim(raw string) (float64, error) {
	aim, ok := parseNumber(raw)
	if !ok || aim < 0 || aim > 360 {
		return 0, golferr.Validation("--aim must be a number between 0 and 360")
	}
	return aim, nil
}

// ParsePower parses power as a fraction in [0,1] or a percentage in (1,100].
func ParsePower(raw string) (float64, error) {
	power, ok := parseNumber(strings.Replace(raw, "%", "", 1))
	if !ok {
		return 0, golferr.Validation("--power must be a number")
	}
	if power > 1 {
		power /= 100
	}
	if power < 0 || power > 1 {
		return 0, golferr.Validation("--power must be between 0 and 100 (or 0.0 and 1.0)")
	}
	return power, nil
}

// Percent returns the power as a whole-number percentage for display.
func Percent(power float64) int {
	return int(math.Round(power * 100))
}

func parseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
