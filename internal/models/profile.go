package models

import "time"

// Category groups quiz questions; each category feeds one profile attribute.
type Category string

const (
	CategoryChronotype Category = "chronotype"
	CategoryPeak       Category = "peak"
	CategoryRecovery   Category = "recovery"
	CategoryExternal   Category = "external"
)

// Categories lists the quiz categories in scoring order.
var Categories = []Category{CategoryChronotype, CategoryPeak, CategoryRecovery, CategoryExternal}

// QuizAnswer is one answered question.
type QuizAnswer struct {
	QuestionID int      `json:"questionId" validate:"gte=1"`
	Category   Category `json:"category" validate:"required,oneof=chronotype peak recovery external"`
	Weight     float64  `json:"weight" validate:"gte=0,lte=3"`
}

type Chronotype struct {
	Type      string  `json:"type"`
	Label     string  `json:"label"`
	PeakStart int     `json:"peakStart"`
	PeakEnd   int     `json:"peakEnd"`
	Score     float64 `json:"score"`
}

type Amplitude struct {
	Level string  `json:"level"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Recovery struct {
	Speed            string  `json:"speed"`
	Label            string  `json:"label"`
	BreakTimeMinutes int     `json:"breakTimeMinutes"`
	Score            float64 `json:"score"`
}

type External struct {
	Flexibility string  `json:"flexibility"`
	Label       string  `json:"label"`
	Score       float64 `json:"score"`
}

// EnergyProfile is the scored result of the quiz. It is replaced wholesale when the quiz is retaken.
type EnergyProfile struct {
	Chronotype Chronotype `json:"chronotype"`
	Amplitude  Amplitude  `json:"amplitude"`
	Recovery   Recovery   `json:"recovery"`
	External   External   `json:"external"`
	Timestamp  time.Time  `json:"timestamp"`
}

// IsPeakHour reports whether hour falls inside the inclusive peak window.
func (p EnergyProfile) IsPeakHour(hour int) bool {
	return hour >= p.Chronotype.PeakStart && hour <= p.Chronotype.PeakEnd
}
