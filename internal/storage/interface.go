package storage

import (
	"errors"

	"github.com/julianstephens/energyflow/internal/models"
)

// ErrNotLoaded is returned by store methods called before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Energy profile. GetProfile returns nil, nil when no usable profile is stored.
	GetProfile() (*models.EnergyProfile, error)
	SaveProfile(models.EnergyProfile) error
	DeleteProfile() error
	GetProfileHistory(limit int) ([]models.EnergyProfile, error)

	// Task board. A missing or unreadable board reads as an empty one.
	GetBoard() (models.Board, error)
	SaveBoard(models.Board) error

	// Utils
	GetConfigPath() string
}
