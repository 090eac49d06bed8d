package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// isolate points every lookup path at a temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, envs := range envBindings {
		for _, env := range envs {
			t.Setenv(env, "")
			os.Unsetenv(env)
		}
	}
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Assistant.Name != "Vox" {
		t.Errorf("expected assistant name 'Vox', got %q", cfg.Assistant.Name)
	}
	if cfg.Classifier.MaxRetries != 2 {
		t.Errorf("expected classifier max retries 2, got %d", cfg.Classifier.MaxRetries)
	}
	if cfg.TUI.RefreshRate != 100*time.Millisecond {
		t.Errorf("expected refresh rate 100ms, got %v", cfg.TUI.RefreshRate)
	}
	if cfg.Orchestrator.IdlePoll != 100*time.Millisecond {
		t.Errorf("expected idle poll 100ms, got %v", cfg.Orchestrator.IdlePoll)
	}
	if !reflect.DeepEqual(cfg.Automation.ProtectedApps, []string{"chrome"}) {
		t.Errorf("expected protected apps [chrome], got %v", cfg.Automation.ProtectedApps)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")

	writeFile(t, configPath, `
assistant:
  name: Jarvis
  username: Ana
anthropic:
  api_key: test-key
classifier:
  max_retries: 1
tui:
  refresh_rate: 200ms
automation:
  protected_apps: [chrome, firefox]
  handler_timeout: 5s
data_dir: /tmp/vox-data
`)

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Assistant.Name != "Jarvis" || cfg.Assistant.Username != "Ana" {
		t.Errorf("unexpected assistant config: %+v", cfg.Assistant)
	}
	if cfg.Anthropic.APIKey != "test-key" {
		t.Errorf("expected api_key 'test-key', got %q", cfg.Anthropic.APIKey)
	}
	if cfg.Classifier.MaxRetries != 1 {
		t.Errorf("expected max_retries 1, got %d", cfg.Classifier.MaxRetries)
	}
	if cfg.TUI.RefreshRate != 200*time.Millisecond {
		t.Errorf("expected refresh rate 200ms, got %v", cfg.TUI.RefreshRate)
	}
	if cfg.Automation.HandlerTimeout != 5*time.Second {
		t.Errorf("expected handler timeout 5s, got %v", cfg.Automation.HandlerTimeout)
	}
	if !reflect.DeepEqual(cfg.Automation.ProtectedApps, []string{"chrome", "firefox"}) {
		t.Errorf("unexpected protected apps %v", cfg.Automation.ProtectedApps)
	}
	// Unset keys keep their defaults.
	if cfg.Chat.MaxTokens != 1024 {
		t.Errorf("expected default chat max tokens 1024, got %d", cfg.Chat.MaxTokens)
	}
	if got, want := cfg.DBPath(), filepath.Join("/tmp/vox-data", "vox.db"); got != want {
		t.Errorf("DBPath() = %q, want %q", got, want)
	}
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", "vox", "config.yaml"), `
search:
  google_api_key: from-file
`)
	t.Setenv("GOOGLE_API_KEY", "from-env")
	t.Setenv("SEARCH_ENGINE_ID", "cx-1")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Search.GoogleAPIKey != "from-env" {
		t.Errorf("expected env to win, got %q", cfg.Search.GoogleAPIKey)
	}
	if cfg.Search.EngineID != "cx-1" {
		t.Errorf("expected engine id from env, got %q", cfg.Search.EngineID)
	}
	if cfg.Enhanced.SMTP.Port != 2525 {
		t.Errorf("expected smtp port 2525, got %d", cfg.Enhanced.SMTP.Port)
	}
}

func TestLoad_ProjectOverridesUser(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", "vox", "config.yaml"), `
assistant:
  name: FromUser
  username: Ana
`)
	writeFile(t, filepath.Join(dir, ".vox.yaml"), `
assistant:
  name: FromProject
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Assistant.Name != "FromProject" {
		t.Errorf("expected project override, got %q", cfg.Assistant.Name)
	}
	if cfg.Assistant.Username != "Ana" {
		t.Errorf("expected user config username, got %q", cfg.Assistant.Username)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "OPENWEATHER_API_KEY=weather-from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("OPENWEATHER_API_KEY") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Enhanced.OpenWeatherAPIKey != "weather-from-dotenv" {
		t.Errorf("expected key from .env, got %q", cfg.Enhanced.OpenWeatherAPIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"negative retries", func(c *Config) { c.Classifier.MaxRetries = -1 }},
		{"zero refresh", func(c *Config) { c.TUI.RefreshRate = 0 }},
		{"bedrock without region", func(c *Config) { c.Anthropic.UseBedrock = true }},
		{"bad sender", func(c *Config) { c.Enhanced.SMTP.From = "not-an-email" }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")
	writeFile(t, configPath, "log:\n  level: shouty\n")

	if _, err := LoadFromPath(configPath); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "expanded-value")

	result := expandEnv("${TEST_VAR}")
	if result != "expanded-value" {
		t.Errorf("expected 'expanded-value', got %q", result)
	}

	result = expandEnv("prefix-${TEST_VAR}-suffix")
	if result != "prefix-expanded-value-suffix" {
		t.Errorf("expected 'prefix-expanded-value-suffix', got %q", result)
	}
}

func TestGetUserConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	dir := getUserConfigDir()
	expected := "/custom/config/vox"
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "saved", "config.yaml")

	cfg := Default()
	cfg.Assistant.Name = "Jarvis"
	cfg.Search.CacheTTL = 3 * time.Minute
	cfg.Automation.ProtectedApps = []string{"chrome", "brave"}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Assistant.Name != "Jarvis" {
		t.Errorf("expected name 'Jarvis', got %q", loaded.Assistant.Name)
	}
	if loaded.Search.CacheTTL != 3*time.Minute {
		t.Errorf("expected cache ttl 3m, got %v", loaded.Search.CacheTTL)
	}
	if !reflect.DeepEqual(loaded.Automation.ProtectedApps, []string{"chrome", "brave"}) {
		t.Errorf("unexpected protected apps %v", loaded.Automation.ProtectedApps)
	}
}

func TestSetValueIn(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")

	if err := SetValueIn(path, "assistant.name", "Friday"); err != nil {
		t.Fatalf("SetValueIn failed: %v", err)
	}
	if err := SetValueIn(path, "automation.protected_apps", "chrome, edge"); err != nil {
		t.Fatalf("SetValueIn failed: %v", err)
	}
	if err := SetValueIn(path, "no.such.key", "x"); err == nil {
		t.Error("expected error for unknown key")
	}

	got, err := Lookup(path, "assistant.name")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got != "Friday" {
		t.Errorf("expected 'Friday', got %v", got)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.Automation.ProtectedApps, []string{"chrome", "edge"}) {
		t.Errorf("unexpected protected apps %v", cfg.Automation.ProtectedApps)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	for _, want := range []string{"assistant.name", "classifier.max_retries", "events.nats_url", "state.db_path"} {
		found := false
		for _, k := range keys {
			if k == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Keys() missing %q", want)
		}
	}
}
