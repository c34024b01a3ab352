// Package board converts schedules into the three-column task board and
// edits the board in place.
package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/energyflow/internal/energy"
	"github.com/julianstephens/energyflow/internal/models"
)

// newID is swapped in tests.
var newID = uuid.NewString

// ToBoard buckets scheduled tasks by start hour. Unscheduled tasks are dropped
// and every task gets a fresh id.
func ToBoard(scheduled []models.ScheduledTask) models.Board {
	b := models.NewBoard()
	for _, st := range scheduled {
		if !st.Scheduled {
			continue
		}

		hour, err := startHour(st.StartTime)
		if err != nil {
			continue
		}

		original := st
		task := models.BoardTask{
			ID:           newID(),
			Text:         fmt.Sprintf("%s (%s-%s)", st.Name, st.StartTime, st.EndTime),
			EnergyLevel:  st.EnergyLevel,
			OriginalTask: &original,
		}

		col := b.Column(energy.ZoneForHour(hour))
		*col = append(*col, task)
	}
	return b
}

func startHour(hhmm string) (int, error) {
	h, _, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, fmt.Errorf("invalid start time %q", hhmm)
	}
	return strconv.Atoi(h)
}
