package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:8787" || cfg.Server.Burst != 20 {
		t.Errorf("unexpected defaults: %+v", cfg.Server)
	}
	if cfg.CleanupSpec() != "0 4 * * *" {
		t.Errorf("CleanupSpec = %q", cfg.CleanupSpec())
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
log:
  debug: true
server:
  addr: ":9000"
  rate_limit: 2.5
jobs:
  board_cleanup: ""
`)
	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Log.Debug || cfg.Server.Addr != ":9000" || cfg.Rate() != 2.5 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Server.Burst != 20 {
		t.Errorf("Burst default not applied: %d", cfg.Server.Burst)
	}
	if cfg.CleanupSpec() != "" {
		t.Errorf("explicit empty cleanup spec should disable the job, got %q", cfg.CleanupSpec())
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": "server:\n  port: 80\n",
		"bad cron":      "jobs:\n  board_cleanup: \"every day\"\n",
		"negative rate": "server:\n  rate_limit: -1\n",
		"bad duration":  "server:\n  shutdown_timeout: soon\n",
		"bad yaml":      "server: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, body)
			if _, err := NewManager(path).Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"server":{"addr":"localhost:1"}}`)
	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != "localhost:1" || cfg.Rate() != 10 {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestPublishKeepsLatest(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	ch := m.Subscribe(1)

	first, second := Default(), Default()
	second.Server.Addr = "second"
	m.publish(first)
	m.publish(second)

	got := <-ch
	if got.Server.Addr != "second" {
		t.Errorf("subscriber got %q, want the latest config", got.Server.Addr)
	}

	m.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Unsubscribe")
	}
}

func TestWatchPublishesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "server:\n  burst: 5\n")

	m := NewManager(path)
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	ch := m.Subscribe(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "server:\n  burst: 7\n")

	select {
	case cfg := <-ch:
		if cfg.Server.Burst != 7 {
			t.Errorf("Burst = %d, want 7", cfg.Server.Burst)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	if m.Get().Server.Burst != 7 {
		t.Error("Get should return the reloaded config")
	}
}

func TestReloadKeepsCurrentOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "server:\n  burst: 5\n")
	m := NewManager(path)
	if _, err := m.Load(); err != nil {
		t.Fatal(err)
	}

	writeFile(t, path, "server:\n  nope: 1\n")
	m.reload()
	if m.Get().Server.Burst != 5 {
		t.Error("invalid file must not replace the current config")
	}
}
