// Package bearing converts yardage offsets read off the hole map into a
// compass bearing measured clockwise from straight ahead.
package bearing

import (
	"math"
	"strconv"
	"strings"

	"github.com/harun/clawgolf/internal/golferr"
)

// Usage is returned when neither offset is given.
const Usage = `Usage: bearing --ahead <yards> --right <yards>
  Positive ahead = toward the green. Negative = behind you.
  Positive right = right of you. Negative = left of you.
  Read these values from the map rulers.`

// Result is a bearing and distance. Defined is false when the target is
// the ball position.
type Result struct {
	Degrees  float64
	Distance float64
	Defined  bool
}

// Calculate returns the heading to a target ahead and right of the ball.
func Calculate(ahead, right float64) Result {
	if ahead == 0 && right == 0 {
		return Result{}
	}
	degrees := math.Mod(math.Atan2(right, ahead)*180/math.Pi+360, 360)
	return Result{
		Degrees:  degrees,
		Distance: math.Hypot(ahead, right),
		Defined:  true,
	}
}

// Parse reads the --ahead and --right values. Nil means the flag was not
// given; one missing value counts as zero, both missing is a usage error.
func Parse(aheadRaw, rightRaw *string) (ahead, right float64, err error) {
	if aheadRaw == nil && rightRaw == nil {
		return 0, 0, golferr.Validation(Usage)
	}
	if ahead, err = parseOffset(aheadRaw, "--ahead must be a number (yards toward the green, negative = behind)"); err != nil {
		return 0, 0, err
	}
	if right, err = parseOffset(rightRaw, "--right must be a number (yards right of ball, negative = left)"); err != nil {
		return 0, 0, err
	}
	return ahead, right, nil
}

func parseOffset(raw *string, msg string) (float64, error) {
	if raw == nil {
		return 0, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, golferr.Validation(msg)
	}
	return v, nil
}
