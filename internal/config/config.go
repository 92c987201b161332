// Package config resolves server configuration from the environment,
// with an optional TOML file for settings that are awkward as env vars.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds Databricks workspace connection settings and the tool
// filter. It is resolved once at startup and passed by reference;
// nothing re-reads the environment after Load returns.
type Config struct {
	// Host is the workspace URL (e.g. https://adb-1234.5.azuredatabricks.net)
	Host string

	// Token is a personal access token or OAuth token for the workspace
	Token string

	// Timeout for upstream API requests
	Timeout time.Duration

	// UserAgent identifies this server to the Databricks API
	UserAgent string

	// MaxRetries for failed upstream requests
	MaxRetries int

	// Filter controls which capability groups get registered
	Filter ToolFilter
}

// fileConfig mirrors the optional TOML file pointed at by
// DATABRICKS_MCP_CONFIG. Environment variables override file values.
type fileConfig struct {
	Host         string `toml:"host"`
	Token        string `toml:"token"`
	Timeout      string `toml:"timeout"`
	MaxRetries   int    `toml:"max_retries"`
	IncludeTools string `toml:"include_tools"`
	ExcludeTools string `toml:"exclude_tools"`
}

// Load builds a Config from DATABRICKS_* environment variables, layered
// over the optional TOML file named by DATABRICKS_MCP_CONFIG.
func Load() (*Config, error) {
	var file fileConfig
	if path := os.Getenv("DATABRICKS_MCP_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	host := firstOf(os.Getenv("DATABRICKS_HOST"), file.Host)
	if host == "" {
		return nil, errors.New("DATABRICKS_HOST environment variable is required")
	}

	token := firstOf(os.Getenv("DATABRICKS_TOKEN"), file.Token)
	if token == "" {
		return nil, errors.New("DATABRICKS_TOKEN environment variable is required")
	}

	timeout := 30 * time.Second
	if t := firstOf(os.Getenv("DATABRICKS_TIMEOUT"), file.Timeout); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	maxRetries := 3
	if file.MaxRetries > 0 {
		maxRetries = file.MaxRetries
	}
	if r := os.Getenv("DATABRICKS_MAX_RETRIES"); r != "" {
		if n, err := strconv.Atoi(r); err == nil && n >= 0 {
			maxRetries = n
		}
	}

	filter := ParseToolFilter(
		firstOf(os.Getenv("DATABRICKS_MCP_TOOLS_INCLUDE"), file.IncludeTools),
		firstOf(os.Getenv("DATABRICKS_MCP_TOOLS_EXCLUDE"), file.ExcludeTools),
	)

	return &Config{
		Host:       trimTrailingSlash(host),
		Token:      token,
		Timeout:    timeout,
		UserAgent:  "databricks-mcp-server/1.0",
		MaxRetries: maxRetries,
		Filter:     filter,
	}, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
