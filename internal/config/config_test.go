package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"discogswatch/internal/sensors"
)

// clearEnv blanks every variable Load consults so tests control exactly
// what is set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DISCOGS_TOKEN", "DISCOGSWATCH_NAME", "DISCOGSWATCH_SENSORS",
		"DISCOGSWATCH_POLL_INTERVAL", "DISCOGSWATCH_CONFIG",
		"PORT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCOGS_TOKEN", "abc123")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Name != "Discogs" {
		t.Errorf("Name = %q, want Discogs", cfg.Name)
	}
	if cfg.PollInterval != 10*time.Minute {
		t.Errorf("PollInterval = %s, want 10m", cfg.PollInterval)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if len(cfg.Sensors) != len(sensors.Keys()) {
		t.Errorf("Sensors defaults to %d keys, want the full catalog of %d", len(cfg.Sensors), len(sensors.Keys()))
	}
}

func TestLoadMissingToken(t *testing.T) {
	clearEnv(t)

	if _, err := Load(""); err == nil {
		t.Fatal("expected error when no token is configured")
	}
}

func TestLoadUnknownSensorKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCOGS_TOKEN", "abc123")
	t.Setenv("DISCOGSWATCH_SENSORS", "collection,tape_deck")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown sensor key")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
token: file-token
name: Record Shelf
poll_interval: 5m
listen_addr: ":9090"
sensors:
  - collection
  - random_record
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Token != "file-token" {
		t.Errorf("Token = %q, want file-token", cfg.Token)
	}
	if cfg.Name != "Record Shelf" {
		t.Errorf("Name = %q, want Record Shelf", cfg.Name)
	}
	if cfg.PollInterval != 5*time.Minute {
		t.Errorf("PollInterval = %s, want 5m", cfg.PollInterval)
	}
	if len(cfg.Sensors) != 2 {
		t.Errorf("Sensors = %v, want the two configured keys", cfg.Sensors)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log config = %s/%s, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("token: file-token\nlisten_addr: \":9090\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DISCOGS_TOKEN", "env-token")
	t.Setenv("PORT", "7070")
	t.Setenv("DISCOGSWATCH_POLL_INTERVAL", "30m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Token != "env-token" {
		t.Errorf("Token = %q, env must override the file", cfg.Token)
	}
	if cfg.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %q, want :7070 from PORT", cfg.ListenAddr)
	}
	if cfg.PollInterval != 30*time.Minute {
		t.Errorf("PollInterval = %s, want 30m", cfg.PollInterval)
	}
}

func TestEnabledSensorsKeepCatalogOrder(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCOGS_TOKEN", "abc123")
	t.Setenv("DISCOGSWATCH_SENSORS", "random_record,collection")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	descriptors := cfg.EnabledSensors()
	if len(descriptors) != 2 {
		t.Fatalf("EnabledSensors() returned %d descriptors, want 2", len(descriptors))
	}
	// Catalog order, not configuration order.
	if descriptors[0].Key != sensors.KeyCollection || descriptors[1].Key != sensors.KeyRandom {
		t.Errorf("descriptor order = %s, %s; want collection, random_record", descriptors[0].Key, descriptors[1].Key)
	}
}
