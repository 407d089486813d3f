// Package config loads the host configuration for the tableqa binary.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ValidProviders lists the supported LLM providers.
var ValidProviders = []string{"anthropic", "openai"}

// Config holds all tableqa configuration.
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Workflow WorkflowConfig `yaml:"workflow"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LLMConfig configures the model client.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // anthropic, openai
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens int64  `yaml:"max_tokens"`
}

// WorkflowConfig configures the control loop and the sandbox.
type WorkflowConfig struct {
	MaxAttempts int      `yaml:"max_attempts"`
	ExecTimeout string   `yaml:"exec_timeout"`
	PreviewRows int      `yaml:"preview_rows"`
	Concurrency int      `yaml:"concurrency"`
	AllowList   []string `yaml:"allow_list"` // Empty means the default catalog
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "anthropic",
			MaxTokens: 4096,
		},
		Workflow: WorkflowConfig{
			MaxAttempts: 3,
			ExecTimeout: "10s",
			PreviewRows: 2,
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file and applies environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("TABLEQA_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("TABLEQA_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("TABLEQA_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("TABLEQA_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TABLEQA_MAX_ATTEMPTS %q: %w", v, err)
		}
		c.Workflow.MaxAttempts = n
	}
	if v := os.Getenv("TABLEQA_EXEC_TIMEOUT"); v != "" {
		c.Workflow.ExecTimeout = v
	}
	if v := os.Getenv("TABLEQA_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	// The provider's own key variable wins over a key in the file.
	switch c.LLM.Provider {
	case "anthropic":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			c.LLM.APIKey = key
		}
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			c.LLM.APIKey = key
		}
	}
	return nil
}

// ExecTimeoutDuration returns the sandbox timeout as a duration.
func (c *Config) ExecTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Workflow.ExecTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidProviders, c.LLM.Provider) {
		return fmt.Errorf("invalid LLM provider: %s (valid: %v)", c.LLM.Provider, ValidProviders)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM API key not configured (set ANTHROPIC_API_KEY or OPENAI_API_KEY)")
	}
	if c.Workflow.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", c.Workflow.MaxAttempts)
	}
	if d, err := time.ParseDuration(c.Workflow.ExecTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid exec_timeout %q", c.Workflow.ExecTimeout)
	}
	if c.Workflow.PreviewRows < 0 {
		return fmt.Errorf("preview_rows must not be negative, got %d", c.Workflow.PreviewRows)
	}
	if c.Workflow.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Workflow.Concurrency)
	}
	return nil
}
