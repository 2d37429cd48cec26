package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultAPIURL         = "https://samsas-legal-flow.hf.space/api/v1/chat"
	DefaultTimeoutSeconds = 30
	DefaultServerAddr     = ":8080"

	envPrefix = "LEGALFLOW_"
	appDir    = ".legalflow"
)

// Config represents the application configuration
type Config struct {
	API       APIConfig     `json:"api" envPrefix:"API_"`
	Session   SessionConfig `json:"session"`
	Server    ServerConfig  `json:"server" envPrefix:"SERVER_"`
	LogLevel  string        `json:"log_level" env:"LOG_LEVEL"`
	LogFile   string        `json:"log_file" env:"LOG_FILE"`
	LogFormat string        `json:"log_format" env:"LOG_FORMAT"`
}

// APIConfig holds the remote compliance endpoint settings
type APIConfig struct {
	URL            string `json:"url" env:"URL"`
	TimeoutSeconds int    `json:"timeout_seconds" env:"TIMEOUT_SECONDS"`
}

// SessionConfig controls where the thread identifier is kept
type SessionConfig struct {
	ThreadFile string `json:"thread_file" env:"THREAD_FILE"` // empty means ~/.legalflow/thread_id
}

// ServerConfig holds the web server settings
type ServerConfig struct {
	Addr string `json:"addr" env:"ADDR"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		API: APIConfig{
			URL:            DefaultAPIURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load loads configuration from the specified path
// If the file doesn't exist, creates one with default values.
// LEGALFLOW_* environment variables override file values.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		cfg = Default()
		if err := Save(configPath, cfg); err != nil {
			return Config{}, fmt.Errorf("failed to create default config: %w", err)
		}
	} else {
		cfg = Default()
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with LEGALFLOW_* environment variables.
// Unset variables leave the current values untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	apiURL := strings.TrimSpace(c.API.URL)
	if apiURL == "" {
		return fmt.Errorf("api url is required")
	}
	u, err := url.Parse(apiURL)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", apiURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api url must use http or https, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api url has no host: %q", apiURL)
	}

	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api timeout_seconds must be positive, got: %d", c.API.TimeoutSeconds)
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server addr is required")
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("log_format must be json or text, got: %q", c.LogFormat)
	}

	return nil
}

// ThreadFilePath returns the configured thread file or the default location.
func (c Config) ThreadFilePath() string {
	if p := strings.TrimSpace(c.Session.ThreadFile); p != "" {
		return p
	}
	return filepath.Join(AppHome(), "thread_id")
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	return filepath.Join(AppHome(), "config.json")
}

// AppHome returns the per-user LegalFlow directory, ~/.legalflow.
func AppHome() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return appDir
	}
	return filepath.Join(homeDir, appDir)
}
