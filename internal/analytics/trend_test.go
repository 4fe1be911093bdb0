package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrend(t *testing.T) {
	tests := []struct {
		name         string
		current      float64
		previous     float64
		preferHigher bool
		wantDir      Direction
		wantTone     Tone
		wantPct      *float64
	}{
		{"income up", 120, 100, true, Up, Positive, ptr(20)},
		{"expense down", 80, 100, false, Down, Positive, ptr(20)},
		{"expense up", 150, 100, false, Up, Negative, ptr(50)},
		{"income down", 75, 100, true, Down, Negative, ptr(25)},
		{"zero base growth", 50, 0, true, Up, Positive, nil},
		{"zero base drop", -10, 0, true, Down, Negative, nil},
		{"both zero", 0, 0, true, Flat, Neutral, ptr(0)},
		{"unchanged", 42, 42, false, Flat, Neutral, ptr(0)},
		{"negative base", -50, -100, true, Up, Positive, ptr(50)},
		{"infinite base", 10, math.Inf(1), true, Down, Negative, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trend(tt.current, tt.previous, tt.preferHigher)
			assert.Equal(t, tt.wantDir, got.Direction)
			assert.Equal(t, tt.wantTone, got.Tone)
			if tt.wantPct == nil {
				assert.Nil(t, got.Percentage)
				return
			}
			require.NotNil(t, got.Percentage)
			assert.InDelta(t, *tt.wantPct, *got.Percentage, 1e-9)
		})
	}
}

func TestTrendNaNBase(t *testing.T) {
	got := Trend(10, math.NaN(), true)
	assert.Nil(t, got.Percentage)
	assert.Equal(t, Flat, got.Direction)
}

func ptr(v float64) *float64 { return &v }
