package models

import "fmt"

// Zone is one of the three energy-zone columns on the task board.
type Zone string

const (
	ZoneMorning   Zone = "morning"
	ZoneAfternoon Zone = "afternoon"
	ZoneEvening   Zone = "evening"
)

var Zones = []Zone{ZoneMorning, ZoneAfternoon, ZoneEvening}

// ParseZone converts a zone name into a Zone.
func ParseZone(s string) (Zone, error) {
	for _, z := range Zones {
		if string(z) == s {
			return z, nil
		}
	}
	return "", fmt.Errorf("invalid zone: %q (want morning, afternoon or evening)", s)
}

type BoardTask struct {
	ID           string         `json:"id"`
	Text         string         `json:"text"`
	Completed    bool           `json:"completed"`
	EnergyLevel  int            `json:"energyLevel,omitempty"`
	OriginalTask *ScheduledTask `json:"originalTask,omitempty"`
}

// Board is the persisted task board: three ordered columns.
type Board struct {
	Morning   []BoardTask `json:"morning"`
	Afternoon []BoardTask `json:"afternoon"`
	Evening   []BoardTask `json:"evening"`
}

// NewBoard returns a board with empty, non-nil columns.
func NewBoard() Board {
	return Board{
		Morning:   []BoardTask{},
		Afternoon: []BoardTask{},
		Evening:   []BoardTask{},
	}
}

// Column returns a pointer to the column for zone, or nil for an unknown zone.
func (b *Board) Column(z Zone) *[]BoardTask {
	switch z {
	case ZoneMorning:
		return &b.Morning
	case ZoneAfternoon:
		return &b.Afternoon
	case ZoneEvening:
		return &b.Evening
	default:
		return nil
	}
}

// Normalize replaces nil columns with empty slices so the board always encodes as arrays.
func (b *Board) Normalize() {
	for _, z := range Zones {
		col := b.Column(z)
		if *col == nil {
			*col = []BoardTask{}
		}
	}
}

// Len returns the total number of tasks on the board.
func (b Board) Len() int {
	return len(b.Morning) + len(b.Afternoon) + len(b.Evening)
}
