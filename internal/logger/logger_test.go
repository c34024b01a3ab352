package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	if _, err := os.Stat(filepath.Dir(LogPath(configDir))); os.IsNotExist(err) {
		t.Errorf("Log directory was not created")
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", Logger.GetLevel())
	}

	Warn("Test warning message", "key", "value")

	data, err := os.ReadFile(LogPath(configDir))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Test warning message") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", Logger.GetLevel())
	}

	SetDebug(false)
	if Logger.GetLevel() != log.InfoLevel {
		t.Errorf("level after SetDebug(false) = %v, want info", Logger.GetLevel())
	}
}

func TestHelpersBeforeInit(t *testing.T) {
	saved := Logger
	Logger = nil
	t.Cleanup(func() { Logger = saved })

	Debug("ignored")
	Info("ignored")
	Warn("ignored")
	Error("ignored")
	SetDebug(true)

	if Named("api") == nil {
		t.Error("Named must return a usable logger before Init")
	}
}
