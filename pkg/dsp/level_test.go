package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDbConversion(t *testing.T) {
	tests := []struct {
		db     float64
		linear float64
	}{
		{0, 1},
		{-6.0206, 0.5},
		{6.0206, 2},
		{-20, 0.1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.linear, DbToLinear(tt.db), 1e-4, "DbToLinear(%v)", tt.db)
		assert.InDelta(t, tt.db, LinearToDb(tt.linear), 1e-3, "LinearToDb(%v)", tt.linear)
	}
	assert.Equal(t, MinDB, LinearToDb(0))
	assert.Zero(t, DbToLinear(MinDB))
}

func TestPanGains(t *testing.T) {
	tests := []struct {
		name string
		pan  float64
		law  Law
	}{
		{"Center Linear", 0, Linear},
		{"Left Linear", -1, Linear},
		{"Right Linear", 1, Linear},
		{"Center ConstantPower", 0, ConstantPower},
		{"Left ConstantPower", -1, ConstantPower},
		{"Right ConstantPower", 1, ConstantPower},
		{"Center Balanced", 0, Balanced},
		{"Left Balanced", -1, Balanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := PanGains(tt.pan, tt.law)
			assert.True(t, left >= 0 && left <= 1 && right >= 0 && right <= 1, "gains out of range: %v %v", left, right)

			switch tt.pan {
			case -1:
				assert.Greater(t, left, 0.9)
				assert.Less(t, right, 0.1)
			case 0:
				assert.InDelta(t, left, right, 1e-9)
				if tt.law == ConstantPower {
					assert.InDelta(t, 1, left*left+right*right, 1e-9)
				}
			case 1:
				assert.Greater(t, right, 0.9)
				assert.Less(t, left, 0.1)
			}
		})
	}

	l, r := PanGains(5, Linear)
	assert.Equal(t, 0.0, l, "clamped")
	assert.Equal(t, 1.0, r)
}

func TestChannelLevels(t *testing.T) {
	l, r := ChannelLevels(0, 0, ConstantPower)
	assert.InDelta(t, math.Sqrt2/2, l, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, r, 1e-9)

	l, r = ChannelLevels(-6.0206, -1, Balanced)
	assert.InDelta(t, 0.5, l, 1e-4)
	assert.Zero(t, r)
}
