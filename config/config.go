package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seracht/gpterm/log"
)

const (
	ConfigFileName = "config.json"
	// DefaultModel is used when the config file does not name one.
	DefaultModel = "gpt-4o-mini"
)

// GetConfigDir returns the path to the application's configuration directory,
// XDG-compliant ~/.config/gpterm/.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "gpterm"), nil
}

// Config represents the application configuration
type Config struct {
	// APIKey is the OpenAI API key used for chat completions.
	APIKey string `json:"api_key"`
	// Model is the chat model requested for new conversations.
	Model string `json:"model,omitempty"`
	// TelemetryEnabled controls whether crash reporting via Sentry is active.
	// Defaults to true when not set.
	TelemetryEnabled *bool `json:"telemetry_enabled,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Model: DefaultModel,
	}
}

// ModelName returns the configured model, falling back to the default.
func (c *Config) ModelName() string {
	if c.Model == "" {
		return DefaultModel
	}
	return c.Model
}

// IsTelemetryEnabled returns whether Sentry telemetry is enabled.
// Defaults to true when the field is not set.
func (c *Config) IsTelemetryEnabled() bool {
	if c.TelemetryEnabled == nil {
		return true
	}
	return *c.TelemetryEnabled
}

// HasAPIKey reports whether an API key is available, from the environment or
// the config file.
func (c *Config) HasAPIKey() bool {
	return c.ResolveAPIKey() != ""
}

// ResolveAPIKey returns the key to use for API calls: the OPENAI_API_KEY
// environment variable when set, otherwise the stored key.
func (c *Config) ResolveAPIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return c.APIKey
}

// LoadConfig reads the config file, creating a default one on first run.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}

	return &config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0600)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
