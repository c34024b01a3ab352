package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/energyflow/internal/constants"
	"github.com/julianstephens/energyflow/internal/migration"
	"github.com/julianstephens/energyflow/internal/models"
)

// sqlStore holds the queries shared by the SQLite and PostgreSQL backends.
// Queries are written with ? placeholders and rebound per dialect.
type sqlStore struct {
	db      *sql.DB
	dialect migration.Dialect
}

func (s *sqlStore) rebind(query string) string {
	if s.dialect != migration.DialectPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *sqlStore) ready() error {
	if s.db == nil {
		return ErrNotLoaded
	}
	return nil
}

func (s *sqlStore) GetSettings() (models.Settings, error) {
	if err := s.ready(); err != nil {
		return models.Settings{}, err
	}

	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if len(data) == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return models.MapToSettings(data)
}

func (s *sqlStore) SaveSettings(settings models.Settings) error {
	if err := s.ready(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(s.rebind(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range models.SettingsToMap(settings) {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}

func (s *sqlStore) getRecord(key string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRow(s.rebind("SELECT value FROM records WHERE key = ?"), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read record %s: %w", key, err)
	}
	return value, nil
}

func (s *sqlStore) putRecord(exec func(string, ...any) (sql.Result, error), key, value string) error {
	_, err := exec(s.rebind(`
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`), key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	return nil
}

func (s *sqlStore) GetProfile() (*models.EnergyProfile, error) {
	raw, err := s.getRecord(constants.RecordEnergyProfile)
	if err != nil {
		return nil, err
	}
	return decodeProfile(raw), nil
}

func (s *sqlStore) SaveProfile(profile models.EnergyProfile) error {
	if err := s.ready(); err != nil {
		return err
	}
	raw, err := encodeRecord(profile)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.putRecord(tx.Exec, constants.RecordEnergyProfile, raw); err != nil {
		return err
	}
	if _, err := tx.Exec(s.rebind("INSERT INTO profile_history (profile, created_at) VALUES (?, ?)"),
		raw, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to append profile history: %w", err)
	}

	return tx.Commit()
}

func (s *sqlStore) DeleteProfile() error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.db.Exec(s.rebind("DELETE FROM records WHERE key = ?"), constants.RecordEnergyProfile); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// GetProfileHistory returns past profiles, newest first. limit <= 0 returns all.
func (s *sqlStore) GetProfileHistory(limit int) ([]models.EnergyProfile, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := "SELECT profile FROM profile_history ORDER BY id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile history: %w", err)
	}
	defer rows.Close()

	var out []models.EnergyProfile
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		if p := decodeProfile(raw); p != nil {
			out = append(out, *p)
		}
	}
	return out, rows.Err()
}

func (s *sqlStore) GetBoard() (models.Board, error) {
	raw, err := s.getRecord(constants.RecordTaskBoard)
	if err != nil {
		return models.Board{}, err
	}
	return decodeBoard(raw), nil
}

func (s *sqlStore) SaveBoard(board models.Board) error {
	if err := s.ready(); err != nil {
		return err
	}
	board.Normalize()
	raw, err := encodeRecord(board)
	if err != nil {
		return err
	}
	return s.putRecord(s.db.Exec, constants.RecordTaskBoard, raw)
}

// putRawRecord stores value verbatim. Used by tests to plant unreadable records.
func (s *sqlStore) putRawRecord(key, value string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.putRecord(s.db.Exec, key, value)
}

// initDefaults writes default settings when none are stored yet.
func (s *sqlStore) initDefaults() error {
	if _, err := s.GetSettings(); err == nil {
		return nil
	}
	if err := s.SaveSettings(models.DefaultSettings()); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	return nil
}
