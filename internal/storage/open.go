package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Open returns the provider for dsn without loading it. A postgres:// URL or
// key=value DSN selects PostgreSQL, a *.json path the JSON file store, and
// anything else an SQLite database file.
func Open(dsn string) (Provider, error) {
	if dsn == "" {
		return nil, fmt.Errorf("no storage location configured")
	}

	if IsPostgresDSN(dsn) {
		if err := ValidateConnString(dsn); err != nil {
			return nil, err
		}
		return NewPostgresStore(dsn), nil
	}

	path, err := expandHome(dsn)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path), nil
	}
	return NewSQLiteStore(path), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
