package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/usenativ/nativ-go/pkg/api"
)

// isolate points HOME at an empty directory and clears NATIV_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "NATIV_") {
			t.Setenv(strings.SplitN(env, "=", 2)[0], "")
			os.Unsetenv(strings.SplitN(env, "=", 2)[0])
		}
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != api.DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 120*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	home := isolate(t)

	path := filepath.Join(home, "custom.yaml")
	data := "api_key: file-key\nbase_url: https://file.example.com\ntimeout: 30s\nlogging:\n  level: info\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "file-key" || cfg.BaseURL != "https://file.example.com" || cfg.Timeout != 30*time.Second {
		t.Errorf("file values not loaded: %+v", cfg)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}

	t.Setenv("NATIV_API_KEY", "env-key")
	t.Setenv("NATIV_API_URL", "https://env.example.com")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "env-key" || cfg.BaseURL != "https://env.example.com" {
		t.Errorf("environment should win over file: %+v", cfg)
	}
}

func TestLoadDefaultConfigFile(t *testing.T) {
	home := isolate(t)

	dir := filepath.Join(home, ".nativ")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_key: home-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "home-key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	home := isolate(t)
	if _, err := Load(filepath.Join(home, "nope.yaml")); err == nil {
		t.Error("an explicit config path that does not exist should fail")
	}
}

func TestWriteFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".nativ", "config.yaml")

	cfg := DefaultConfig()
	cfg.APIKey = "secret-key"
	if err := cfg.WriteFile(path, false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, want 600", perm)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := yaml.Unmarshal(raw, &out); err != nil {
		t.Fatalf("written file is not YAML: %v", err)
	}
	if out["api_key"] != "secret-key" || out["timeout"] != "2m0s" {
		t.Errorf("written config = %v", out)
	}

	if err := cfg.WriteFile(path, false); err == nil {
		t.Error("WriteFile should refuse to overwrite without force")
	}
	if err := cfg.WriteFile(path, true); err != nil {
		t.Errorf("WriteFile with force: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.APIKey != "secret-key" || loaded.Timeout != 2*time.Minute {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestRedacted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "nativ_abcdef123"

	if got := cfg.Redacted().APIKey; got != "nati****" {
		t.Errorf("Redacted key = %q", got)
	}
	if cfg.APIKey != "nativ_abcdef123" {
		t.Error("Redacted must not modify the original")
	}
	if MaskKey("") != "" || MaskKey("abc") != "****" {
		t.Error("MaskKey edge cases")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("NATIV_CONFIG_TEST_VALUE=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("NATIV_CONFIG_TEST_VALUE") })

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("NATIV_CONFIG_TEST_VALUE"); got != "from-dotenv" {
		t.Errorf("env value = %q", got)
	}

	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err == nil {
		t.Error("a missing explicit env file should fail")
	}
}
