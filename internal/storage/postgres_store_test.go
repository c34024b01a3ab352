package storage

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/energyflow/internal/migration"
	"github.com/julianstephens/energyflow/internal/models"
)

func TestWithSearchPath(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
		want    string
	}{
		{"url without search_path", "postgres://planner@localhost/ef", "search_path=energyflow"},
		{"url keeps explicit search_path", "postgres://planner@localhost/ef?search_path=custom", "search_path=custom"},
		{"dsn without search_path", "host=localhost dbname=ef", "search_path=energyflow"},
		{"dsn keeps explicit search_path", "host=localhost Search_Path=custom", "Search_Path=custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := withSearchPath(tt.connStr)
			if !strings.Contains(got, tt.want) {
				t.Errorf("withSearchPath(%q) = %q, want it to contain %q", tt.connStr, got, tt.want)
			}
			if strings.Count(strings.ToLower(got), "search_path") != 1 {
				t.Errorf("withSearchPath(%q) = %q has duplicate search_path", tt.connStr, got)
			}
		})
	}
}

func TestHasSSLMode(t *testing.T) {
	tests := map[string]bool{
		"":                                  false,
		"postgres://user@localhost:5432/db": false,
		"postgres://user@localhost/db?sslmode=disable": true,
		"host=localhost SSLMODE=require":               true,
		"host=localhost password=sslmode_secret":       false,
	}
	for connStr, want := range tests {
		if got := hasSSLMode(connStr); got != want {
			t.Errorf("hasSSLMode(%q) = %v, want %v", connStr, got, want)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := sqlStore{dialect: migration.DialectPostgres}
	got := pg.rebind("INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)")
	if got != "INSERT INTO records (key, value, updated_at) VALUES ($1, $2, $3)" {
		t.Errorf("rebind = %q", got)
	}

	lite := sqlStore{}
	if q := "SELECT ? "; lite.rebind(q) != q {
		t.Error("sqlite queries must not be rewritten")
	}
}

// TestPostgresStore_Integration runs against a real database.
// Example: POSTGRES_TEST_URL="postgres://energyflow@localhost:5432/energyflow_test?sslmode=disable"
func TestPostgresStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := NewPostgresStore(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	if _, err := store.GetSettings(); err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}

	p := sampleProfile(time.Now().UTC().Truncate(time.Second))
	if err := store.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	got, err := store.GetProfile()
	if err != nil || got == nil || got.Chronotype != p.Chronotype {
		t.Errorf("GetProfile = %+v, %v", got, err)
	}

	if err := store.SaveBoard(models.NewBoard()); err != nil {
		t.Fatalf("SaveBoard failed: %v", err)
	}
	if _, err := store.GetBoard(); err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
}
