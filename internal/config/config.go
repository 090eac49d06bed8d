// Package config handles configuration loading and management for vox.
// It supports XDG config paths, project-level overrides, a .env file and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const (
	appName           = "vox"
	configFileName    = "config.yaml"
	projectConfigName = ".vox.yaml"
)

// Config holds all configuration for vox.
type Config struct {
	Assistant    AssistantConfig    `mapstructure:"assistant"`
	Anthropic    AnthropicConfig    `mapstructure:"anthropic"`
	Classifier   ClassifierConfig   `mapstructure:"classifier"`
	Chat         ChatConfig         `mapstructure:"chat"`
	Search       SearchConfig       `mapstructure:"search"`
	Enhanced     EnhancedConfig     `mapstructure:"enhanced"`
	Health       HealthConfig       `mapstructure:"health"`
	Automation   AutomationConfig   `mapstructure:"automation"`
	Orchestrator OrchestratorConfig `mapstructure:"orchestrator"`
	Voice        VoiceConfig        `mapstructure:"voice"`
	TUI          TUIConfig          `mapstructure:"tui"`
	DataDir      string             `mapstructure:"data_dir" validate:"required"`
	Log          LogConfig          `mapstructure:"log"`
	Events       EventsConfig       `mapstructure:"events"`
	State        StateConfig        `mapstructure:"state"`
}

// AssistantConfig names the two sides of the conversation.
type AssistantConfig struct {
	Name     string `mapstructure:"name" validate:"required"`
	Username string `mapstructure:"username" validate:"required"`
	Voice    string `mapstructure:"voice"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey          string `mapstructure:"api_key"`
	BaseURL         string `mapstructure:"base_url" validate:"omitempty,url"`
	Model           string `mapstructure:"model" validate:"required"`
	ClassifierModel string `mapstructure:"classifier_model"`
	UseBedrock      bool   `mapstructure:"use_bedrock"`
	AWSRegion       string `mapstructure:"aws_region" validate:"required_if=UseBedrock true"`
	AWSProfile      string `mapstructure:"aws_profile"`
}

// ClassifierConfig tunes intent classification.
type ClassifierConfig struct {
	MaxRetries  int     `mapstructure:"max_retries" validate:"min=0,max=10"`
	Temperature float64 `mapstructure:"temperature" validate:"min=0,max=1"`
	// TranscriptLimit bounds the messages kept as classifier context.
	TranscriptLimit int `mapstructure:"transcript_limit" validate:"min=0"`
}

// ChatConfig tunes the conversational chatbot.
type ChatConfig struct {
	MaxTokens   int64   `mapstructure:"max_tokens" validate:"gt=0"`
	Temperature float64 `mapstructure:"temperature" validate:"min=0,max=1"`
}

// SearchConfig holds realtime search settings.
type SearchConfig struct {
	GoogleAPIKey string        `mapstructure:"google_api_key"`
	EngineID     string        `mapstructure:"engine_id"`
	FallbackURL  string        `mapstructure:"fallback_url" validate:"omitempty,url"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl" validate:"min=0"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// EnhancedConfig holds API keys for the enhanced features.
type EnhancedConfig struct {
	OpenWeatherAPIKey  string        `mapstructure:"openweather_api_key"`
	NewsAPIKey         string        `mapstructure:"news_api_key"`
	AlphaVantageAPIKey string        `mapstructure:"alpha_vantage_api_key"`
	OpenCageAPIKey     string        `mapstructure:"opencage_api_key"`
	CricketAPIKey      string        `mapstructure:"cricket_api_key"`
	DefaultCity        string        `mapstructure:"default_city"`
	NewsCountry        string        `mapstructure:"news_country" validate:"omitempty,len=2"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"gt=0"`
	SMTP               SMTPConfig    `mapstructure:"smtp"`
}

// SMTPConfig configures outgoing email.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from" validate:"omitempty,email"`
}

// HealthConfig configures the healthcare assistant.
type HealthConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	DoctorName      string `mapstructure:"doctor_name"`
	DoctorPhone     string `mapstructure:"doctor_phone"`
	EmergencyNumber string `mapstructure:"emergency_number"`
}

// AutomationConfig tunes the automation handlers.
type AutomationConfig struct {
	HandlerTimeout time.Duration `mapstructure:"handler_timeout" validate:"gt=0"`
	ProtectedApps  []string      `mapstructure:"protected_apps"`
	Editor         string        `mapstructure:"editor"`
}

// OrchestratorConfig tunes the main loop.
type OrchestratorConfig struct {
	IdlePoll time.Duration `mapstructure:"idle_poll" validate:"gt=0"`
}

// VoiceConfig selects speech capture and synthesis.
type VoiceConfig struct {
	ListenTimeout time.Duration `mapstructure:"listen_timeout" validate:"gt=0"`
	// Speaker is "auto", "none" or the name of a synthesizer command.
	Speaker string `mapstructure:"speaker" validate:"required"`
}

// TUIConfig holds TUI display settings.
type TUIConfig struct {
	RefreshRate time.Duration `mapstructure:"refresh_rate" validate:"gt=0"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	File      string `mapstructure:"file"`
	Level     string `mapstructure:"level" validate:"oneof=debug info warn error"`
	MaxSizeMB int    `mapstructure:"max_size_mb" validate:"min=1"`
}

// EventsConfig configures the NATS status publisher. An empty URL
// disables it.
type EventsConfig struct {
	NATSURL       string `mapstructure:"nats_url"`
	SubjectPrefix string `mapstructure:"subject_prefix" validate:"required"`
}

// StateConfig locates the journal database.
type StateConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// DBPath returns the journal database path, defaulting to data_dir/vox.db.
func (c *Config) DBPath() string {
	if c.State.DBPath != "" {
		return c.State.DBPath
	}
	return filepath.Join(c.DataDir, "vox.db")
}

// LogPath returns the log file path, defaulting to data_dir/vox.log.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "vox.log")
}

// envBindings maps config keys to the environment variables that override
// them.
var envBindings = map[string][]string{
	"assistant.name":                 {"VOX_ASSISTANT_NAME", "Assistantname"},
	"assistant.username":             {"VOX_USERNAME", "Username"},
	"anthropic.api_key":              {"ANTHROPIC_API_KEY"},
	"search.google_api_key":          {"GOOGLE_API_KEY"},
	"search.engine_id":               {"SEARCH_ENGINE_ID"},
	"enhanced.openweather_api_key":   {"OPENWEATHER_API_KEY"},
	"enhanced.news_api_key":          {"NEWS_API_KEY"},
	"enhanced.alpha_vantage_api_key": {"ALPHA_VANTAGE_API_KEY"},
	"enhanced.opencage_api_key":      {"OPENCAGE_API_KEY"},
	"enhanced.cricket_api_key":       {"CRICKET_API_KEY"},
	"enhanced.smtp.host":             {"SMTP_SERVER", "SMTP_HOST"},
	"enhanced.smtp.port":             {"SMTP_PORT"},
	"enhanced.smtp.username":         {"USER_EMAIL"},
	"enhanced.smtp.password":         {"USER_EMAIL_PASSWORD"},
	"events.nats_url":                {"NATS_URL"},
	"data_dir":                       {"VOX_DATA_DIR"},
}

// Load loads configuration from XDG paths, project overrides, .env and
// environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (including values loaded from .env)
// 2. Project config (.vox.yaml in current directory or parent)
// 3. User config (~/.config/vox/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v, err := newViper("")
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// LoadFromPath loads configuration from a specific file instead of the
// user and project files. Environment variables still apply.
func LoadFromPath(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// Lookup returns the effective value of a single key, e.g.
// "assistant.name". path selects a config file as in LoadFromPath.
func Lookup(path, key string) (any, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	if !v.IsSet(key) {
		return nil, fmt.Errorf("unknown config key %q", key)
	}
	return v.Get(key), nil
}

// Keys returns every known config key, sorted.
func Keys() []string {
	v := viper.New()
	setDefaults(v)
	keys := v.AllKeys()
	slices.Sort(keys)
	return keys
}

func newViper(path string) (*viper.Viper, error) {
	loadDotEnv()

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(getUserConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading user config: %w", err)
			}
		}

		if projectConfig := findProjectConfig(); projectConfig != "" {
			projectViper := viper.New()
			projectViper.SetConfigFile(projectConfig)
			if err := projectViper.ReadInConfig(); err == nil {
				if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
					return nil, fmt.Errorf("merging project config: %w", err)
				}
			}
		}
	}

	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}
	return v, nil
}

// loadDotEnv loads .env from the working directory. Existing environment
// variables win over the file.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.expand()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expand expands ${VAR} references in secrets and paths.
func (c *Config) expand() {
	for _, s := range []*string{
		&c.Anthropic.APIKey,
		&c.Search.GoogleAPIKey,
		&c.Search.EngineID,
		&c.Enhanced.OpenWeatherAPIKey,
		&c.Enhanced.NewsAPIKey,
		&c.Enhanced.AlphaVantageAPIKey,
		&c.Enhanced.OpenCageAPIKey,
		&c.Enhanced.CricketAPIKey,
		&c.Enhanced.SMTP.Password,
		&c.Events.NATSURL,
		&c.DataDir,
		&c.Log.File,
		&c.State.DBPath,
	} {
		*s = expandEnv(*s)
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags. Errors wrap ErrInvalid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	return SaveTo(GetUserConfigPath(), cfg)
}

// SaveTo writes the configuration to path.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("assistant.name", cfg.Assistant.Name)
	v.Set("assistant.username", cfg.Assistant.Username)
	v.Set("assistant.voice", cfg.Assistant.Voice)
	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.base_url", cfg.Anthropic.BaseURL)
	v.Set("anthropic.model", cfg.Anthropic.Model)
	v.Set("anthropic.classifier_model", cfg.Anthropic.ClassifierModel)
	v.Set("anthropic.use_bedrock", cfg.Anthropic.UseBedrock)
	v.Set("anthropic.aws_region", cfg.Anthropic.AWSRegion)
	v.Set("anthropic.aws_profile", cfg.Anthropic.AWSProfile)
	v.Set("classifier.max_retries", cfg.Classifier.MaxRetries)
	v.Set("classifier.temperature", cfg.Classifier.Temperature)
	v.Set("classifier.transcript_limit", cfg.Classifier.TranscriptLimit)
	v.Set("chat.max_tokens", cfg.Chat.MaxTokens)
	v.Set("chat.temperature", cfg.Chat.Temperature)
	v.Set("search.google_api_key", cfg.Search.GoogleAPIKey)
	v.Set("search.engine_id", cfg.Search.EngineID)
	v.Set("search.fallback_url", cfg.Search.FallbackURL)
	v.Set("search.cache_ttl", cfg.Search.CacheTTL.String())
	v.Set("search.timeout", cfg.Search.Timeout.String())
	v.Set("enhanced.openweather_api_key", cfg.Enhanced.OpenWeatherAPIKey)
	v.Set("enhanced.news_api_key", cfg.Enhanced.NewsAPIKey)
	v.Set("enhanced.alpha_vantage_api_key", cfg.Enhanced.AlphaVantageAPIKey)
	v.Set("enhanced.opencage_api_key", cfg.Enhanced.OpenCageAPIKey)
	v.Set("enhanced.cricket_api_key", cfg.Enhanced.CricketAPIKey)
	v.Set("enhanced.default_city", cfg.Enhanced.DefaultCity)
	v.Set("enhanced.news_country", cfg.Enhanced.NewsCountry)
	v.Set("enhanced.timeout", cfg.Enhanced.Timeout.String())
	v.Set("enhanced.smtp.host", cfg.Enhanced.SMTP.Host)
	v.Set("enhanced.smtp.port", cfg.Enhanced.SMTP.Port)
	v.Set("enhanced.smtp.username", cfg.Enhanced.SMTP.Username)
	v.Set("enhanced.smtp.password", cfg.Enhanced.SMTP.Password)
	v.Set("enhanced.smtp.from", cfg.Enhanced.SMTP.From)
	v.Set("health.enabled", cfg.Health.Enabled)
	v.Set("health.doctor_name", cfg.Health.DoctorName)
	v.Set("health.doctor_phone", cfg.Health.DoctorPhone)
	v.Set("health.emergency_number", cfg.Health.EmergencyNumber)
	v.Set("automation.handler_timeout", cfg.Automation.HandlerTimeout.String())
	v.Set("automation.protected_apps", cfg.Automation.ProtectedApps)
	v.Set("automation.editor", cfg.Automation.Editor)
	v.Set("orchestrator.idle_poll", cfg.Orchestrator.IdlePoll.String())
	v.Set("voice.listen_timeout", cfg.Voice.ListenTimeout.String())
	v.Set("voice.speaker", cfg.Voice.Speaker)
	v.Set("tui.refresh_rate", cfg.TUI.RefreshRate.String())
	v.Set("data_dir", cfg.DataDir)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.Set("events.nats_url", cfg.Events.NATSURL)
	v.Set("events.subject_prefix", cfg.Events.SubjectPrefix)
	v.Set("state.db_path", cfg.State.DBPath)

	return v.WriteConfig()
}

// SetValue sets one key in the user config file, keeping the other keys
// already stored there.
func SetValue(key, value string) error {
	return SetValueIn(GetUserConfigPath(), key, value)
}

// SetValueIn sets one key in the config file at path.
func SetValueIn(path, key, value string) error {
	defaults := viper.New()
	setDefaults(defaults)
	if !slices.Contains(defaults.AllKeys(), key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}

	if _, isList := defaults.Get(key).([]string); isList {
		v.Set(key, splitList(value))
	} else {
		v.Set(key, value)
	}
	return v.WriteConfig()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), configFileName)
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("assistant.name", d.Assistant.Name)
	v.SetDefault("assistant.username", d.Assistant.Username)
	v.SetDefault("assistant.voice", d.Assistant.Voice)

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.base_url", "")
	v.SetDefault("anthropic.model", d.Anthropic.Model)
	v.SetDefault("anthropic.classifier_model", d.Anthropic.ClassifierModel)
	v.SetDefault("anthropic.use_bedrock", false)
	v.SetDefault("anthropic.aws_region", "")
	v.SetDefault("anthropic.aws_profile", "")

	v.SetDefault("classifier.max_retries", d.Classifier.MaxRetries)
	v.SetDefault("classifier.temperature", d.Classifier.Temperature)
	v.SetDefault("classifier.transcript_limit", d.Classifier.TranscriptLimit)

	v.SetDefault("chat.max_tokens", d.Chat.MaxTokens)
	v.SetDefault("chat.temperature", d.Chat.Temperature)

	v.SetDefault("search.google_api_key", "")
	v.SetDefault("search.engine_id", "")
	v.SetDefault("search.fallback_url", d.Search.FallbackURL)
	v.SetDefault("search.cache_ttl", d.Search.CacheTTL.String())
	v.SetDefault("search.timeout", d.Search.Timeout.String())

	v.SetDefault("enhanced.openweather_api_key", "")
	v.SetDefault("enhanced.news_api_key", "")
	v.SetDefault("enhanced.alpha_vantage_api_key", "")
	v.SetDefault("enhanced.opencage_api_key", "")
	v.SetDefault("enhanced.cricket_api_key", "")
	v.SetDefault("enhanced.default_city", d.Enhanced.DefaultCity)
	v.SetDefault("enhanced.news_country", d.Enhanced.NewsCountry)
	v.SetDefault("enhanced.timeout", d.Enhanced.Timeout.String())
	v.SetDefault("enhanced.smtp.host", d.Enhanced.SMTP.Host)
	v.SetDefault("enhanced.smtp.port", d.Enhanced.SMTP.Port)
	v.SetDefault("enhanced.smtp.username", "")
	v.SetDefault("enhanced.smtp.password", "")
	v.SetDefault("enhanced.smtp.from", "")

	v.SetDefault("health.enabled", d.Health.Enabled)
	v.SetDefault("health.doctor_name", "")
	v.SetDefault("health.doctor_phone", "")
	v.SetDefault("health.emergency_number", d.Health.EmergencyNumber)

	v.SetDefault("automation.handler_timeout", d.Automation.HandlerTimeout.String())
	v.SetDefault("automation.protected_apps", d.Automation.ProtectedApps)
	v.SetDefault("automation.editor", "")

	v.SetDefault("orchestrator.idle_poll", d.Orchestrator.IdlePoll.String())

	v.SetDefault("voice.listen_timeout", d.Voice.ListenTimeout.String())
	v.SetDefault("voice.speaker", d.Voice.Speaker)

	v.SetDefault("tui.refresh_rate", d.TUI.RefreshRate.String())

	v.SetDefault("data_dir", d.DataDir)

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)

	v.SetDefault("events.nats_url", "")
	v.SetDefault("events.subject_prefix", d.Events.SubjectPrefix)

	v.SetDefault("state.db_path", "")
}

// getUserConfigDir returns the XDG config directory for vox.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", appName)
	}
	return filepath.Join(home, ".config", appName)
}

// defaultDataDir returns the XDG data directory for vox.
func defaultDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, appName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "data")
	}
	return filepath.Join(home, ".local", "share", appName)
}

// findProjectConfig searches for .vox.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, projectConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Assistant: AssistantConfig{
			Name:     "Vox",
			Username: "User",
		},
		Anthropic: AnthropicConfig{
			Model:           "claude-sonnet-4-20250514",
			ClassifierModel: "claude-3-5-haiku-20241022",
		},
		Classifier: ClassifierConfig{
			MaxRetries:      2,
			Temperature:     0.2,
			TranscriptLimit: 40,
		},
		Chat: ChatConfig{
			MaxTokens:   1024,
			Temperature: 0.7,
		},
		Search: SearchConfig{
			FallbackURL: "https://html.duckduckgo.com/html/?q=",
			CacheTTL:    10 * time.Minute,
			Timeout:     8 * time.Second,
		},
		Enhanced: EnhancedConfig{
			DefaultCity: "London",
			NewsCountry: "us",
			Timeout:     10 * time.Second,
			SMTP: SMTPConfig{
				Host: "smtp.gmail.com",
				Port: 587,
			},
		},
		Health: HealthConfig{
			Enabled:         true,
			EmergencyNumber: "911",
		},
		Automation: AutomationConfig{
			HandlerTimeout: 15 * time.Second,
			ProtectedApps:  []string{"chrome"},
		},
		Orchestrator: OrchestratorConfig{
			IdlePoll: 100 * time.Millisecond,
		},
		Voice: VoiceConfig{
			ListenTimeout: 30 * time.Second,
			Speaker:       "auto",
		},
		TUI: TUIConfig{
			RefreshRate: 100 * time.Millisecond,
		},
		DataDir: defaultDataDir(),
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
		Events: EventsConfig{
			SubjectPrefix: "events",
		},
	}
}
