package bearing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/clawgolf/internal/golferr"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		ahead, right float64
		wantDegrees  float64
		wantDistance float64
	}{
		{"straight ahead", 10, 0, 0, 10},
		{"right", 0, 10, 90, 10},
		{"behind", -10, 0, 180, 10},
		{"left", 0, -10, 270, 10},
		{"ahead and right", 100, 100, 45, math.Sqrt(20000)},
		{"ahead and left", 100, -100, 315, math.Sqrt(20000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Calculate(tt.ahead, tt.right)
			assert.True(t, r.Defined)
			assert.InDelta(t, tt.wantDegrees, r.Degrees, 1e-9)
			assert.InDelta(t, tt.wantDistance, r.Distance, 1e-9)
			assert.GreaterOrEqual(t, r.Degrees, 0.0)
			assert.Less(t, r.Degrees, 360.0)
		})
	}

	t.Run("no target", func(t *testing.T) {
		assert.False(t, Calculate(0, 0).Defined)
	})
}

func strPtr(s string) *string { return &s }

func TestParse(t *testing.T) {
	t.Run("both given", func(t *testing.T) {
		ahead, right, err := Parse(strPtr("150"), strPtr("-12.5"))
		require.NoError(t, err)
		assert.Equal(t, 150.0, ahead)
		assert.Equal(t, -12.5, right)
	})

	t.Run("one missing counts as zero", func(t *testing.T) {
		ahead, right, err := Parse(nil, strPtr("20"))
		require.NoError(t, err)
		assert.Zero(t, ahead)
		assert.Equal(t, 20.0, right)
	})

	t.Run("both missing", func(t *testing.T) {
		_, _, err := Parse(nil, nil)
		require.Error(t, err)
		assert.True(t, golferr.Is(err, golferr.KindValidation))
		assert.Contains(t, err.Error(), "Usage: bearing")
	})

	t.Run("bad ahead", func(t *testing.T) {
		_, _, err := Parse(strPtr("far"), strPtr("1"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--ahead")
	})

	t.Run("bad right", func(t *testing.T) {
		_, _, err := Parse(strPtr("1"), strPtr("left"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--right")
	})
}
