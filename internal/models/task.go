package models

type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Rank orders levels for sorting; unknown levels rank below low.
func (l Level) Rank() int {
	switch l {
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	case LevelLow:
		return 1
	default:
		return 0
	}
}

// TaskInput is a task entered for a planning session. Duration is in hours.
type TaskInput struct {
	ID                string  `json:"id,omitempty"`
	Name              string  `json:"name" validate:"required,notblank"`
	EnergyConsumption Level   `json:"energyConsumption" validate:"required,oneof=low medium high"`
	Duration          float64 `json:"duration" validate:"gt=0,quarterhour"`
	Priority          Level   `json:"priority" validate:"required,oneof=low medium high"`
}

// DurationMinutes returns the task duration in whole minutes.
func (t TaskInput) DurationMinutes() int {
	return int(t.Duration*60 + 0.5)
}

// Window is the working range [StartHour, EndHour) on Date.
type Window struct {
	StartHour int    `json:"startHour" validate:"gte=0,lte=23"`
	EndHour   int    `json:"endHour" validate:"gtfield=StartHour,lte=24"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

type TimeSlot struct {
	Start     string `json:"start"` // HH:MM format
	End       string `json:"end"`   // HH:MM format
	Date      string `json:"date"`  // YYYY-MM-DD format
	Available bool   `json:"available"`
}

// ScheduledTask is a TaskInput annotated with its placement, or with the reason it was not placed.
type ScheduledTask struct {
	TaskInput
	Scheduled   bool   `json:"scheduled"`
	StartTime   string `json:"startTime,omitempty"` // HH:MM format
	EndTime     string `json:"endTime,omitempty"`   // HH:MM format
	Date        string `json:"date,omitempty"`      // YYYY-MM-DD format
	EnergyLevel int    `json:"energyLevel,omitempty"`
	Reason      string `json:"reason,omitempty"`
}
