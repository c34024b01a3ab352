package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/energyflow/internal/models"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrEmptyText    = errors.New("task text cannot be empty")
	ErrInvalidZone  = errors.New("invalid zone")
)

// Location identifies a task's position on the board.
type Location struct {
	Zone  models.Zone
	Index int
}

// Find returns the location of the task with id.
func Find(b *models.Board, id string) (Location, bool) {
	for _, z := range models.Zones {
		for i, t := range *b.Column(z) {
			if t.ID == id {
				return Location{Zone: z, Index: i}, true
			}
		}
	}
	return Location{}, false
}

// Add appends a new incomplete task to zone.
func Add(b *models.Board, zone models.Zone, text string) (models.BoardTask, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.BoardTask{}, ErrEmptyText
	}
	col := b.Column(zone)
	if col == nil {
		return models.BoardTask{}, fmt.Errorf("%w: %q", ErrInvalidZone, zone)
	}

	task := models.BoardTask{ID: newID(), Text: text}
	*col = append(*col, task)
	return task, nil
}

// Toggle flips the completed flag of the task with id and returns the updated task.
func Toggle(b *models.Board, id string) (models.BoardTask, error) {
	loc, ok := Find(b, id)
	if !ok {
		return models.BoardTask{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	col := *b.Column(loc.Zone)
	col[loc.Index].Completed = !col[loc.Index].Completed
	return col[loc.Index], nil
}

// Delete removes the task with id.
func Delete(b *models.Board, id string) error {
	loc, ok := Find(b, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	col := b.Column(loc.Zone)
	*col = append((*col)[:loc.Index], (*col)[loc.Index+1:]...)
	return nil
}

// Move places the task with id at index within zone. Within its own zone the
// task is reordered; index is clamped to the column. Moving to another zone
// inserts at index, or appends when index is out of range.
func Move(b *models.Board, id string, zone models.Zone, index int) error {
	dst := b.Column(zone)
	if dst == nil {
		return fmt.Errorf("%w: %q", ErrInvalidZone, zone)
	}
	loc, ok := Find(b, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	src := b.Column(loc.Zone)
	task := (*src)[loc.Index]
	*src = append((*src)[:loc.Index], (*src)[loc.Index+1:]...)

	if loc.Zone == zone {
		index = max(0, min(index, len(*dst)))
	} else if index < 0 || index > len(*dst) {
		index = len(*dst)
	}

	*dst = append(*dst, models.BoardTask{})
	copy((*dst)[index+1:], (*dst)[index:])
	(*dst)[index] = task
	return nil
}

// ClearCompleted removes completed tasks from every zone and returns how many were removed.
func ClearCompleted(b *models.Board) int {
	removed := 0
	for _, z := range models.Zones {
		col := b.Column(z)
		kept := (*col)[:0]
		for _, t := range *col {
			if t.Completed {
				removed++
				continue
			}
			kept = append(kept, t)
		}
		*col = kept
	}
	return removed
}

// Count holds per-zone task totals.
type Count struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Counts returns task totals per zone.
func Counts(b *models.Board) map[models.Zone]Count {
	out := make(map[models.Zone]Count, len(models.Zones))
	for _, z := range models.Zones {
		var c Count
		for _, t := range *b.Column(z) {
			c.Total++
			if t.Completed {
				c.Completed++
			}
		}
		out[z] = c
	}
	return out
}
