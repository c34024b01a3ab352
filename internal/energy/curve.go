// Package energy models a user's energy level over the course of a day.
package energy

import (
	"math"
	"math/rand"

	"github.com/julianstephens/energyflow/internal/constants"
	"github.com/julianstephens/energyflow/internal/models"
)

// Point is one hour of the visualization curve.
type Point struct {
	Hour   int `json:"hour"`
	Energy int `json:"energy"`
}

// EnergyAt returns the modeled energy (0..100) at the given hour of the day.
//
// Energy ramps from 40 towards 70 before the peak window, follows a half sine
// wave scaled by the amplitude score inside it, and declines from 70 towards
// 20 at midnight afterwards. The result is not clamped.
func EnergyAt(hour int, profile models.EnergyProfile) float64 {
	h := float64(hour)
	ps := float64(profile.Chronotype.PeakStart)
	pe := float64(profile.Chronotype.PeakEnd)

	switch {
	case hour < profile.Chronotype.PeakStart && ps > 0:
		return constants.CurveBaseline + (h/ps)*constants.CurveRampSwing
	case hour <= profile.Chronotype.PeakEnd || pe >= 24:
		var wave float64
		if pe > ps {
			wave = math.Sin(math.Pi * (h - ps) / (pe - ps))
		}
		amp := profile.Amplitude.Score / constants.MaxQuizWeight
		return constants.CurvePeakBase + amp*constants.CurvePeakSwing*wave
	default:
		return constants.CurvePeakBase - constants.CurveDeclineSpan*(h-pe)/(24-pe)
	}
}

// Clamp bounds v to the display range.
func Clamp(v float64) float64 {
	return math.Max(constants.CurveDisplayMin, math.Min(constants.CurveDisplayMax, v))
}

// Curve returns the 24 hourly points used for charts. Each point receives
// uniform jitter of up to ±5 drawn from rng; a nil rng yields the exact curve.
func Curve(profile models.EnergyProfile, rng *rand.Rand) []Point {
	points := make([]Point, 0, 24)
	for hour := 0; hour < 24; hour++ {
		v := EnergyAt(hour, profile)
		if rng != nil {
			v += (rng.Float64()*2 - 1) * constants.CurveJitter
		}
		points = append(points, Point{Hour: hour, Energy: int(math.Round(Clamp(v)))})
	}
	return points
}
