package energy

import (
	"time"

	"github.com/julianstephens/energyflow/internal/constants"
	"github.com/julianstephens/energyflow/internal/models"
)

// Zone describes the energy zone a point in time falls into.
type Zone struct {
	Zone  models.Zone `json:"zone"`
	Name  string      `json:"name"`
	Focus string      `json:"focus"`
}

// ZoneForHour maps an hour to its board zone.
func ZoneForHour(hour int) models.Zone {
	switch {
	case hour >= constants.MorningStartHour && hour < constants.AfternoonStartHour:
		return models.ZoneMorning
	case hour >= constants.AfternoonStartHour && hour < constants.EveningStartHour:
		return models.ZoneAfternoon
	default:
		return models.ZoneEvening
	}
}

// Describe returns the display names for z.
func Describe(z models.Zone) Zone {
	switch z {
	case models.ZoneMorning:
		return Zone{Zone: z, Name: "Morning Energy", Focus: "Deep Work Mode"}
	case models.ZoneAfternoon:
		return Zone{Zone: z, Name: "Afternoon Energy", Focus: "Light Work Mode"}
	default:
		return Zone{Zone: models.ZoneEvening, Name: "Evening Peak", Focus: "Flow State Work"}
	}
}

// CurrentZone returns the zone for the local hour of t.
func CurrentZone(t time.Time) Zone {
	return Describe(ZoneForHour(t.Hour()))
}
