package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TABLEQA_PROVIDER", "TABLEQA_MODEL", "TABLEQA_BASE_URL", "TABLEQA_MAX_ATTEMPTS",
		"TABLEQA_EXEC_TIMEOUT", "TABLEQA_LOG_LEVEL", "ANTHROPIC_API_KEY", "OPENAI_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tableqa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.Workflow.MaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.ExecTimeoutDuration())
	assert.Equal(t, 2, cfg.Workflow.PreviewRows)
	assert.Equal(t, 4, cfg.Workflow.Concurrency)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
llm:
  provider: openai
  model: gpt-4o
  api_key: file-key
workflow:
  max_attempts: 5
  exec_timeout: 2s
  allow_list: [tableqa/frame, strings]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "file-key", cfg.LLM.APIKey)
	assert.Equal(t, 5, cfg.Workflow.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.ExecTimeoutDuration())
	assert.Equal(t, []string{"tableqa/frame", "strings"}, cfg.Workflow.AllowList)
	assert.Equal(t, 2, cfg.Workflow.PreviewRows, "unset fields keep defaults")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "llm:\n  provider: anthropic\n  api_key: file-key\n")
	t.Setenv("TABLEQA_PROVIDER", "openai")
	t.Setenv("TABLEQA_MODEL", "gpt-4o-mini")
	t.Setenv("TABLEQA_MAX_ATTEMPTS", "2")
	t.Setenv("TABLEQA_EXEC_TIMEOUT", "500ms")
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("ANTHROPIC_API_KEY", "ignored")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, 2, cfg.Workflow.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.ExecTimeoutDuration())
}

func TestLoad_InvalidInput(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "llm: [not, a, map]"))
	require.ErrorContains(t, err, "failed to parse config")

	t.Setenv("TABLEQA_MAX_ATTEMPTS", "three")
	_, err = Load("")
	require.ErrorContains(t, err, "TABLEQA_MAX_ATTEMPTS")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := DefaultConfig()
		c.LLM.APIKey = "k"
		return c
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"provider", func(c *Config) { c.LLM.Provider = "gemini" }, "invalid LLM provider"},
		{"api key", func(c *Config) { c.LLM.APIKey = "" }, "API key"},
		{"attempts", func(c *Config) { c.Workflow.MaxAttempts = 0 }, "max_attempts"},
		{"timeout", func(c *Config) { c.Workflow.ExecTimeout = "soon" }, "exec_timeout"},
		{"preview", func(c *Config) { c.Workflow.PreviewRows = -1 }, "preview_rows"},
		{"concurrency", func(c *Config) { c.Workflow.Concurrency = 0 }, "concurrency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			require.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}
