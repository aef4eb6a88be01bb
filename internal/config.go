package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default endpoint settings for the completion API
const (
	DefaultAPIURL   = "https://open.bigmodel.cn/api/paas/v4/chat/completions"
	DefaultModel    = "glm-4.6"
	DefaultThinking = "enabled"
)

// Config controls the completion endpoint and model behavior
type Config struct {
	APIURL       string `yaml:"api_url"`
	Model        string `yaml:"model"`
	Thinking     string `yaml:"thinking"` // "enabled" or "disabled"
	SystemPrompt string `yaml:"system_prompt,omitempty"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		APIURL:   DefaultAPIURL,
		Model:    DefaultModel,
		Thinking: DefaultThinking,
	}
}

// LoadConfig reads the YAML config at path. A missing file yields the
// defaults; fields left unset in the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	return cfg, nil
}

// SaveConfig writes the config as YAML to path
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
