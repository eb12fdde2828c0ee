package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "OPERATOR_API_KEY", "STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE",
		"MONGO_COLLECTION", "DB_DSN", "SEED_FILE", "LOG_LEVEL", "LOG_FORMAT",
		"DASHBOARD_TITLE", "DASHBOARD_HEADER_IMAGE", "DASHBOARD_PAGE_SIZE",
	} {
		t.Setenv(k, "")
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad_YAMLWithEnvSubstitution(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_MONGO_URI", "mongodb://localhost:27017")

	path := writeTemp(t, `
server:
  addr: ":9000"
store:
  driver: mongo
  mongo_uri: ${TEST_MONGO_URI}
  database: shelter
  collection: outcomes
dashboard:
  title: "Grazioso Salvare"
  map_zoom: 12
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected addr :9000, got %s", cfg.Server.Addr)
	}
	if cfg.Store.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("expected substituted uri, got %s", cfg.Store.MongoURI)
	}
	if cfg.Store.Collection != "outcomes" {
		t.Errorf("expected collection outcomes, got %s", cfg.Store.Collection)
	}
	if cfg.Dashboard.MapZoom != 12 {
		t.Errorf("expected zoom 12, got %d", cfg.Dashboard.MapZoom)
	}
	if cfg.Dashboard.PageSize != 10 {
		t.Errorf("expected default page size 10, got %d", cfg.Dashboard.PageSize)
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Driver != DriverMemory {
		t.Errorf("expected memory driver, got %s", cfg.Store.Driver)
	}
	if cfg.Server.Addr != ":8050" {
		t.Errorf("expected default addr, got %s", cfg.Server.Addr)
	}
	if cfg.Dashboard.HighlightColor != "#D2F3FF" {
		t.Errorf("unexpected highlight color %s", cfg.Dashboard.HighlightColor)
	}
}

func TestLoad_EnvOverridesAndDriverInference(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("DB_DSN", "postgres://localhost/shelter")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("expected :7000, got %s", cfg.Server.Addr)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Errorf("expected postgres inferred from DB_DSN, got %s", cfg.Store.Driver)
	}
}

func TestLoad_Validation(t *testing.T) {
	clearEnv(t)

	cases := map[string]string{
		"unknown driver":  "store:\n  driver: redis\n",
		"mongo no uri":    "store:\n  driver: mongo\n",
		"postgres no dsn": "store:\n  driver: postgres\n",
		"zoom too large":  "dashboard:\n  map_zoom: 42\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, content)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := writeTemp(t, "dashboard:\n  title: before\n")

	got := make(chan string, 4)
	w, err := NewWatcher(path, nil, func(cfg *Config) {
		got <- cfg.Dashboard.Title
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("dashboard:\n  title: after\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case title := <-got:
		if title != "after" {
			t.Fatalf("expected reloaded title 'after', got %q", title)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_ReloadsOnRenameSave(t *testing.T) {
	clearEnv(t)
	path := writeTemp(t, "dashboard:\n  title: before\n")

	got := make(chan string, 4)
	w, err := NewWatcher(path, nil, func(cfg *Config) {
		got <- cfg.Dashboard.Title
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	// guardado estilo vim/IDE: archivo temporal + rename sobre el original
	for i, title := range []string{"first", "second"} {
		tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".config.yaml.%d.tmp", i))
		if err := os.WriteFile(tmp, []byte("dashboard:\n  title: "+title+"\n"), 0o644); err != nil {
			t.Fatalf("write tmp: %v", err)
		}
		if err := os.Rename(tmp, path); err != nil {
			t.Fatalf("rename: %v", err)
		}

		select {
		case reloaded := <-got:
			if reloaded != title {
				t.Fatalf("expected reloaded title %q, got %q", title, reloaded)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for reload after rename save %d", i+1)
		}
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	clearEnv(t)
	path := writeTemp(t, "dashboard:\n  title: before\n")

	got := make(chan string, 4)
	w, err := NewWatcher(path, nil, func(cfg *Config) {
		got <- cfg.Dashboard.Title
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	other := filepath.Join(filepath.Dir(path), "other.yaml")
	if err := os.WriteFile(other, []byte("x: 1\n"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case title := <-got:
		t.Fatalf("unexpected reload (%q) for a sibling file", title)
	case <-time.After(1500 * time.Millisecond):
	}
}

func TestNewWatcher_MissingFile(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing.yaml"), nil, func(*Config) {}); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
