package profile

import "github.com/julianstephens/energyflow/internal/models"

type scoreRange struct {
	min, max  float64
	value     string
	label     string
	peakStart int
	peakEnd   int
	breakTime int
}

var (
	chronotypeRanges = []scoreRange{
		{min: 0, max: 1, value: "night-owl", label: "Night Owl", peakStart: 14, peakEnd: 22},
		{min: 1, max: 2, value: "neutral", label: "Neutral", peakStart: 10, peakEnd: 18},
		{min: 2, max: 3, value: "morning-lark", label: "Morning Lark", peakStart: 6, peakEnd: 14},
	}
	peakRanges = []scoreRange{
		{min: 0, max: 1, value: "low", label: "Low Amplitude"},
		{min: 1, max: 2, value: "medium", label: "Medium Amplitude"},
		{min: 2, max: 3, value: "high", label: "High Amplitude"},
	}
	recoveryRanges = []scoreRange{
		{min: 0, max: 1, value: "slow", label: "Slow Recovery", breakTime: 30},
		{min: 1, max: 2, value: "normal", label: "Normal Recovery", breakTime: 15},
		{min: 2, max: 3, value: "fast", label: "Fast Recovery", breakTime: 5},
	}
	externalRanges = []scoreRange{
		{min: 0, max: 1.5, value: "sensitive", label: "Environment Sensitive"},
		{min: 1.5, max: 2.5, value: "moderate", label: "Moderately Flexible"},
		{min: 2.5, max: 3, value: "flexible", label: "Highly Flexible"},
	}
)

func rangesFor(c models.Category) []scoreRange {
	switch c {
	case models.CategoryChronotype:
		return chronotypeRanges
	case models.CategoryPeak:
		return peakRanges
	case models.CategoryRecovery:
		return recoveryRanges
	case models.CategoryExternal:
		return externalRanges
	}
	return nil
}

// lookup returns the first range containing score (bounds inclusive),
// or the last range when none does.
func lookup(ranges []scoreRange, score float64) scoreRange {
	for _, r := range ranges {
		if score >= r.min && score <= r.max {
			return r
		}
	}
	return ranges[len(ranges)-1]
}
