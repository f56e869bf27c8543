package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultServer(t *testing.T) {
	cfg := DefaultServer()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.AutosaveInterval != 4*time.Minute {
		t.Errorf("AutosaveInterval = %v, want 4m", cfg.AutosaveInterval)
	}
	if cfg.Experience.Kill != 30 || cfg.Experience.HeadshotKill != 45 {
		t.Errorf("Experience = %+v, want kill 30 / headshot 45", cfg.Experience)
	}
}

func TestLoadServerMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadServer(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadServer on a missing file: %v", err)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want the default 5432", cfg.Database.Port)
	}
}

func TestLoadServerOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpgserver.yaml")
	raw := `
log_level: debug
autosave_interval: 30s
experience:
  kill: 10
  headshot_kill: 20
database:
  host: db.internal
  port: 5433
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadServer(path)
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.AutosaveInterval != 30*time.Second {
		t.Errorf("AutosaveInterval = %v, want 30s", cfg.AutosaveInterval)
	}
	if cfg.Experience.Kill != 10 || cfg.Experience.HeadshotKill != 20 {
		t.Errorf("Experience = %+v, want kill 10 / headshot 20", cfg.Experience)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Errorf("Database = %+v, partial override must keep defaults elsewhere", cfg.Database)
	}
	if cfg.Database.User != "warmod" {
		t.Errorf("Database.User = %q, unset fields must keep defaults", cfg.Database.User)
	}
}

func TestLoadServerMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("log_level: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadServer(path); err == nil {
		t.Error("LoadServer on malformed yaml must return an error")
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432,
		User: "u", Password: "pw", DBName: "rpg", SSLMode: "disable",
	}
	want := "postgres://u:pw@localhost:5432/rpg?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
