package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/julianstephens/energyflow/internal/backup"
	"github.com/julianstephens/energyflow/internal/constants"
	"github.com/julianstephens/energyflow/internal/lockfile"
	"github.com/julianstephens/energyflow/internal/models"
	"github.com/julianstephens/energyflow/internal/planner"
	"github.com/julianstephens/energyflow/internal/scheduler"
	"github.com/julianstephens/energyflow/internal/storage"
	"github.com/julianstephens/energyflow/internal/validation"
)

type DoctorCmd struct{}

// check is one diagnostic. A warn check reports problems without failing the run.
type check struct {
	name    string
	warn    bool
	needsDB bool
	run     func(ctx *Context) error
}

var doctorChecks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Energy profile", needsDB: true, warn: true, run: checkProfile},
	{name: "Task board", needsDB: true, run: checkBoard},
	{name: "Backups present", warn: true, run: checkBackupsPresent},
	{name: "App config", run: checkAppConfig},
	{name: "API server", warn: true, run: checkServer},
	{name: "Clock/timezone", needsDB: true, run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	for i, c := range doctorChecks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
			if i == 0 {
				dbReachable = true
			}
		case c.warn:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	_, err := ctx.Store.GetSettings()
	return err
}

func checkSchemaVersion(ctx *Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return nil
	}
	current, latest, err := sqliteStore.SchemaVersion()
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("schema version %d, expected %d", current, latest)
	}
	return nil
}

func checkSettings(ctx *Context) error {
	settings, err := ctx.Service().Settings()
	if err != nil {
		return err
	}
	w := models.Window{StartHour: settings.DayStartHour, EndHour: settings.DayEndHour, Date: "2006-01-02"}
	if err := validation.New().ValidateWindow(w); err != nil {
		return err
	}
	if _, err := scheduler.ParseMediumMatch(settings.MediumMatch); err != nil {
		return err
	}
	if settings.Timezone != constants.DefaultTimezone {
		if _, err := time.LoadLocation(settings.Timezone); err != nil {
			return fmt.Errorf("unknown timezone %q", settings.Timezone)
		}
	}
	return nil
}

func checkProfile(ctx *Context) error {
	_, err := ctx.Service().Profile()
	if errors.Is(err, planner.ErrProfileMissing) {
		return errors.New("no energy profile stored; run 'energyflow quiz'")
	}
	return err
}

func checkBoard(ctx *Context) error {
	b, err := ctx.Service().Board()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, b.Len())
	for _, z := range models.Zones {
		for _, t := range *b.Column(z) {
			if t.ID == "" || seen[t.ID] {
				return fmt.Errorf("duplicate or empty task id in %s column", z)
			}
			seen[t.ID] = true
		}
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	if _, ok := ctx.Store.(*storage.PostgresStore); ok {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found; run 'energyflow backup'")
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkAppConfig(ctx *Context) error {
	if ctx.Config == nil {
		return nil
	}
	_, err := ctx.Config.Parse()
	return err
}

func checkServer(ctx *Context) error {
	path := serverLockPath(ctx)
	e, ok := lockfile.Running(path)
	if ok {
		fmt.Printf("   running on %s (pid %d)\n", e.Addr, e.PID)
		return nil
	}
	if _, err := lockfile.Read(path); err == nil {
		return fmt.Errorf("stale lockfile at %s", path)
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.Service().Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	name, offset := now.Zone()
	fmt.Printf("   %s (UTC%+03d:%02d)\n", name, offset/3600, abs(offset%3600)/60)
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// serverLockPath places the lockfile next to the file store, or next to the app config for PostgreSQL.
func serverLockPath(ctx *Context) string {
	dir := filepath.Dir(ctx.Store.GetConfigPath())
	if _, ok := ctx.Store.(*storage.PostgresStore); ok && ctx.Config != nil {
		dir = filepath.Dir(ctx.Config.Path())
	}
	return filepath.Join(dir, constants.ServerLockfileName)
}
