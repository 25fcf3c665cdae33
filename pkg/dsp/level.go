// Package dsp converts between the gain units the built-in plugins show:
// decibels, linear amplitude and per-channel pan gains.
package dsp

import "math"

// MinDB is the minimum dB value (effectively -infinity)
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// Law represents different panning laws
type Law int

const (
	// Linear uses linear panning (constant power not maintained)
	Linear Law = iota
	// ConstantPower uses sine/cosine panning
	ConstantPower
	// Balanced leaves the louder side at unity and attenuates the other
	Balanced
)

// PanGains returns the left and right gains for pan in [-1, 1]
// (-1 hard left, 0 center, 1 hard right).
func PanGains(pan float64, law Law) (left, right float64) {
	pan = min(max(pan, -1), 1)
	switch law {
	case Linear:
		return (1 - pan) / 2, (1 + pan) / 2
	case Balanced:
		if pan < 0 {
			return 1, 1 + pan
		}
		return 1 - pan, 1
	default:
		angle := (pan + 1) * math.Pi / 4
		return math.Cos(angle), math.Sin(angle)
	}
}

// ChannelLevels combines a dB gain and a pan position into linear channel
// levels.
func ChannelLevels(db, pan float64, law Law) (left, right float64) {
	g := DbToLinear(db)
	l, r := PanGains(pan, law)
	return g * l, g * r
}
