package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadRequiresHostAndToken(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABRICKS_HOST is unset")
	}

	t.Setenv("DATABRICKS_HOST", "https://adb-1.azuredatabricks.net")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABRICKS_TOKEN is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABRICKS_HOST", "https://adb-1.azuredatabricks.net/")
	t.Setenv("DATABRICKS_TOKEN", "dapi123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Host != "https://adb-1.azuredatabricks.net" {
		t.Errorf("Host = %q, trailing slash should be trimmed", cfg.Host)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if !cfg.Filter.Enabled("jobs") {
		t.Error("default filter should enable every group")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABRICKS_HOST", "https://example.cloud.databricks.com")
	t.Setenv("DATABRICKS_TOKEN", "dapi123")
	t.Setenv("DATABRICKS_TIMEOUT", "5s")
	t.Setenv("DATABRICKS_MAX_RETRIES", "1")
	t.Setenv("DATABRICKS_MCP_TOOLS_EXCLUDE", "secrets")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want 1", cfg.MaxRetries)
	}
	if cfg.Filter.Enabled("secrets") {
		t.Error("secrets group should be excluded")
	}
	if !cfg.Filter.Enabled("sql") {
		t.Error("sql group should remain enabled")
	}
}

func TestLoadTOMLFileWithEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "mcp.toml")
	content := `
host = "https://file.cloud.databricks.com"
token = "dapi-from-file"
timeout = "10s"
include_tools = "sql,jobs"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DATABRICKS_MCP_CONFIG", path)
	t.Setenv("DATABRICKS_HOST", "https://env.cloud.databricks.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Host != "https://env.cloud.databricks.com" {
		t.Errorf("Host = %q, env must override file", cfg.Host)
	}
	if cfg.Token != "dapi-from-file" {
		t.Errorf("Token = %q, want file value", cfg.Token)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s from file", cfg.Timeout)
	}
	if cfg.Filter.Enabled("secrets") {
		t.Error("file include list should disable unlisted groups")
	}
}

func TestLoadBadConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABRICKS_MCP_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("DATABRICKS_HOST", "https://x")
	t.Setenv("DATABRICKS_TOKEN", "y")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unreadable config file")
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABRICKS_HOST", "DATABRICKS_TOKEN", "DATABRICKS_TIMEOUT",
		"DATABRICKS_MAX_RETRIES", "DATABRICKS_MCP_CONFIG",
		"DATABRICKS_MCP_TOOLS_INCLUDE", "DATABRICKS_MCP_TOOLS_EXCLUDE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
