// Package profile turns quiz answers into an energy profile.
package profile

import (
	"time"

	"github.com/julianstephens/energyflow/internal/models"
)

// Scorer computes energy profiles. Now stamps the result; nil means time.Now.
type Scorer struct {
	Now func() time.Time
}

// NewScorer returns a Scorer using the wall clock.
func NewScorer() *Scorer {
	return &Scorer{Now: time.Now}
}

// CategoryScore returns the mean weight of answers in category c, or 0 if there are none.
func CategoryScore(answers []models.QuizAnswer, c models.Category) float64 {
	var sum float64
	var n int
	for _, a := range answers {
		if a.Category == c {
			sum += a.Weight
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Score builds an EnergyProfile from answers. Apart from the timestamp the
// result depends only on the answers.
func (s *Scorer) Score(answers []models.QuizAnswer) models.EnergyProfile {
	now := time.Now
	if s != nil && s.Now != nil {
		now = s.Now
	}

	chronoScore := CategoryScore(answers, models.CategoryChronotype)
	peakScore := CategoryScore(answers, models.CategoryPeak)
	recoveryScore := CategoryScore(answers, models.CategoryRecovery)
	externalScore := CategoryScore(answers, models.CategoryExternal)

	chrono := lookup(rangesFor(models.CategoryChronotype), chronoScore)
	peak := lookup(rangesFor(models.CategoryPeak), peakScore)
	recovery := lookup(rangesFor(models.CategoryRecovery), recoveryScore)
	external := lookup(rangesFor(models.CategoryExternal), externalScore)

	return models.EnergyProfile{
		Chronotype: models.Chronotype{
			Type:      chrono.value,
			Label:     chrono.label,
			PeakStart: chrono.peakStart,
			PeakEnd:   chrono.peakEnd,
			Score:     chronoScore,
		},
		Amplitude: models.Amplitude{
			Level: peak.value,
			Label: peak.label,
			Score: peakScore,
		},
		Recovery: models.Recovery{
			Speed:            recovery.value,
			Label:            recovery.label,
			BreakTimeMinutes: recovery.breakTime,
			Score:            recoveryScore,
		},
		External: models.External{
			Flexibility: external.value,
			Label:       external.label,
			Score:       externalScore,
		},
		Timestamp: now().UTC(),
	}
}
