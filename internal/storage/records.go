package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/energyflow/internal/constants"
	"github.com/julianstephens/energyflow/internal/logger"
	"github.com/julianstephens/energyflow/internal/models"
)

func encodeRecord(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to serialize record: %w", err)
	}
	return string(data), nil
}

// decodeProfile parses a stored profile. Unreadable or inconsistent records
// are treated as absent.
func decodeProfile(raw string) *models.EnergyProfile {
	if raw == "" {
		return nil
	}
	var p models.EnergyProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		logger.Warn("Ignoring malformed record", "key", constants.RecordEnergyProfile, "error", err)
		return nil
	}
	if p.Chronotype.PeakStart >= p.Chronotype.PeakEnd {
		logger.Warn("Ignoring profile with empty peak window", "key", constants.RecordEnergyProfile,
			"peakStart", p.Chronotype.PeakStart, "peakEnd", p.Chronotype.PeakEnd)
		return nil
	}
	return &p
}

// decodeBoard parses a stored board. Unreadable records yield an empty board.
func decodeBoard(raw string) models.Board {
	if raw == "" {
		return models.NewBoard()
	}
	var b models.Board
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		logger.Warn("Ignoring malformed record", "key", constants.RecordTaskBoard, "error", err)
		return models.NewBoard()
	}
	b.Normalize()
	return b
}
