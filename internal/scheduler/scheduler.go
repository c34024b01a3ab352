// Package scheduler assigns tasks to hourly slots using an energy profile.
package scheduler

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/energyflow/internal/constants"
	"github.com/julianstephens/energyflow/internal/energy"
	"github.com/julianstephens/energyflow/internal/models"
)

// ErrProfileMissing is returned when scheduling is attempted without an energy profile.
var ErrProfileMissing = errors.New("energy profile not found, complete the quiz first")

// MediumMatch selects how medium-energy tasks score a slot.
type MediumMatch string

const (
	// MediumMatchLiteral scores |e-60|, favouring hours far from moderate energy.
	MediumMatchLiteral MediumMatch = "literal"
	// MediumMatchDistance scores 100-|e-60|, favouring hours close to moderate energy.
	MediumMatchDistance MediumMatch = "distance"
)

// ParseMediumMatch converts a settings value into a MediumMatch.
func ParseMediumMatch(s string) (MediumMatch, error) {
	switch MediumMatch(s) {
	case MediumMatchLiteral, MediumMatchDistance:
		return MediumMatch(s), nil
	case "":
		return MediumMatchLiteral, nil
	}
	return "", fmt.Errorf("invalid medium match mode %q (want literal or distance)", s)
}

type Scheduler struct {
	mediumMatch MediumMatch
}

type Option func(*Scheduler)

// WithMediumMatch sets the medium-energy scoring mode.
func WithMediumMatch(m MediumMatch) Option {
	return func(s *Scheduler) {
		s.mediumMatch = m
	}
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{mediumMatch: MediumMatchLiteral}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MediumMatch reports the configured medium-energy scoring mode.
func (s *Scheduler) MediumMatch() MediumMatch {
	return s.mediumMatch
}

// Slots returns one available slot per whole hour in [StartHour, EndHour).
func (s *Scheduler) Slots(window models.Window) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, max(window.EndHour-window.StartHour, 0))
	for hour := window.StartHour; hour < window.EndHour; hour++ {
		start := hour * constants.SlotMinutes
		slots = append(slots, models.TimeSlot{
			Start:     formatTime(start),
			End:       formatTime(start + constants.SlotMinutes),
			Date:      window.Date,
			Available: true,
		})
	}
	return slots
}

// Schedule places tasks greedily, highest priority first. Every task appears in
// the result, in priority order; tasks without a feasible slot are returned
// unscheduled with a reason.
func (s *Scheduler) Schedule(profile *models.EnergyProfile, tasks []models.TaskInput, window models.Window) ([]models.ScheduledTask, error) {
	if profile == nil {
		return nil, ErrProfileMissing
	}
	if window.Date == "" {
		window.Date = time.Now().Format(constants.DateFormat)
	}

	sorted := make([]models.TaskInput, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() > sorted[j].Priority.Rank()
	})

	slots := s.Slots(window)
	endMinutes := window.EndHour * 60
	result := make([]models.ScheduledTask, 0, len(sorted))

	for _, task := range sorted {
		duration := task.DurationMinutes()

		// Only the start slot and the whole-hour completion bound are checked.
		var candidates []int
		for i, slot := range slots {
			start, err := parseTime(slot.Start)
			if err != nil {
				continue
			}
			if slot.Available && (start+duration)/60*60 <= endMinutes {
				candidates = append(candidates, i)
			}
		}

		if len(candidates) == 0 {
			result = append(result, models.ScheduledTask{
				TaskInput: task,
				Scheduled: false,
				Reason:    constants.ReasonNoSlot,
			})
			continue
		}

		best := s.bestSlot(task, slots, candidates, *profile)
		taskStart, _ := parseTime(slots[best].Start)
		taskEnd := taskStart + duration
		startHour := taskStart / 60

		result = append(result, models.ScheduledTask{
			TaskInput:   task,
			Scheduled:   true,
			StartTime:   slots[best].Start,
			EndTime:     formatTime(taskEnd),
			Date:        slots[best].Date,
			EnergyLevel: int(math.Round(energy.EnergyAt(startHour, *profile))),
		})

		markUnavailable(slots, taskStart, taskEnd)
		if brk := profile.Recovery.BreakTimeMinutes; brk > 0 {
			markUnavailable(slots, taskEnd, taskEnd+brk)
		}
	}

	return result, nil
}

// bestSlot returns the index of the highest scoring candidate. Ties keep the earliest slot.
func (s *Scheduler) bestSlot(task models.TaskInput, slots []models.TimeSlot, candidates []int, profile models.EnergyProfile) int {
	best := candidates[0]
	bestScore := math.Inf(-1)
	for _, i := range candidates {
		start, _ := parseTime(slots[i].Start)
		e := energy.EnergyAt(start/60, profile)
		score := s.energyMatch(task.EnergyConsumption, e) + priorityBonus(task.Priority)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

func (s *Scheduler) energyMatch(level models.Level, e float64) float64 {
	switch level {
	case models.LevelHigh:
		return e
	case models.LevelMedium:
		d := math.Abs(e - constants.MediumEnergyTarget)
		if s.mediumMatch == MediumMatchDistance {
			return 100 - d
		}
		return d
	default:
		return 100 - e
	}
}

func priorityBonus(p models.Level) float64 {
	switch p {
	case models.LevelHigh:
		return constants.PriorityBonusHigh
	case models.LevelMedium:
		return constants.PriorityBonusMedium
	default:
		return constants.PriorityBonusLow
	}
}

// markUnavailable flags every slot starting in [from, to).
func markUnavailable(slots []models.TimeSlot, from, to int) {
	for i := range slots {
		start, err := parseTime(slots[i].Start)
		if err != nil {
			continue
		}
		if start >= from && start < to {
			slots[i].Available = false
		}
	}
}

// parseTime converts HH:MM into minutes from midnight. Hours past 23 are allowed.
func parseTime(timeStr string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(timeStr, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", timeStr, err)
	}
	if h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", timeStr)
	}
	return h*60 + m, nil
}

// formatTime renders minutes from midnight as HH:MM without wrapping at 24h.
func formatTime(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	return fmt.Sprintf("%02d:%02d", hours, mins)
}
