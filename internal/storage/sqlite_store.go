package storage

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/energyflow/internal/constants"
	"github.com/julianstephens/energyflow/internal/logger"
	"github.com/julianstephens/energyflow/internal/migration"
	"github.com/julianstephens/energyflow/migrations"
)

type SQLiteStore struct {
	sqlStore
	path string
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		sqlStore: sqlStore{dialect: migration.DialectSQLite},
		path:     path,
	}
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; serialise through one connection.
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return s.initDefaults()
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	if err := s.open(); err != nil {
		return err
	}

	// Pending migrations are applied on load so upgrades need no re-init.
	if err := s.runMigrations(); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg, "backend", "sqlite")
	})
	return err
}

// SchemaVersion reports the applied and latest known schema versions.
func (s *SQLiteStore) SchemaVersion() (current, latest int, err error) {
	if err := s.ready(); err != nil {
		return 0, 0, err
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return 0, 0, err
	}
	runner := migration.NewRunner(s.db, subFS)
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, err
	}
	latest, err = runner.GetLatestVersion()
	return current, latest, err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
