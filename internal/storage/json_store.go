package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/energyflow/internal/constants"
	"github.com/julianstephens/energyflow/internal/models"
)

// maxJSONHistory bounds the profile history kept in the JSON file.
const maxJSONHistory = 50

// Store is the on-disk layout of the JSON backend. Records hold JSON text
// keyed like the browser storage the app started from.
type Store struct {
	Version  int               `json:"version"`
	Settings models.Settings   `json:"settings"`
	Records  map[string]string `json:"records"`
	History  []string          `json:"profile_history,omitempty"`
}

type JSONStore struct {
	mu    sync.Mutex
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:  1,
		Settings: models.DefaultSettings(),
		Records:  make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Records == nil {
		store.Records = make(map[string]string)
	}
	s.store = store

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write through a temp file so a crash never leaves a truncated store.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return models.Settings{}, ErrNotLoaded
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) GetProfile() (*models.EnergyProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	return decodeProfile(s.store.Records[constants.RecordEnergyProfile]), nil
}

func (s *JSONStore) SaveProfile(profile models.EnergyProfile) error {
	raw, err := encodeRecord(profile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.Records[constants.RecordEnergyProfile] = raw
	s.store.History = append(s.store.History, raw)
	if len(s.store.History) > maxJSONHistory {
		s.store.History = s.store.History[len(s.store.History)-maxJSONHistory:]
	}
	return s.save()
}

func (s *JSONStore) DeleteProfile() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNotLoaded
	}
	delete(s.store.Records, constants.RecordEnergyProfile)
	return s.save()
}

// GetProfileHistory returns past profiles, newest first.
func (s *JSONStore) GetProfileHistory(limit int) ([]models.EnergyProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil, ErrNotLoaded
	}

	var out []models.EnergyProfile
	for i := len(s.store.History) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if p := decodeProfile(s.store.History[i]); p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *JSONStore) GetBoard() (models.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return models.Board{}, ErrNotLoaded
	}
	return decodeBoard(s.store.Records[constants.RecordTaskBoard]), nil
}

func (s *JSONStore) SaveBoard(board models.Board) error {
	board.Normalize()
	raw, err := encodeRecord(board)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.Records[constants.RecordTaskBoard] = raw
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
