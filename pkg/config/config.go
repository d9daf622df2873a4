// Package config reads the provisioner settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Default endpoints and headers for the hosted services.
const (
	DefaultNotionBaseURL  = "https://api.notion.com/v1"
	DefaultNotionVersion  = "2022-06-28"
	DefaultClickUpBaseURL = "https://api.clickup.com/api/v2"
)

// Config is built once at start and passed to each provisioner.
// Field tags name the environment variable each value is read from.
type Config struct {
	NotionAPIKey     string `mapstructure:"NOTION_API_KEY"`
	NotionRootPageID string `mapstructure:"NOTION_ROOT_PAGE_ID"`
	NotionBaseURL    string `mapstructure:"NOTION_BASE_URL"`
	NotionVersion    string `mapstructure:"NOTION_VERSION"`

	ClickUpAPIKey  string `mapstructure:"CLICKUP_API_KEY"`
	ClickUpTeamID  string `mapstructure:"CLICKUP_TEAM_ID"`
	ClickUpBaseURL string `mapstructure:"CLICKUP_BASE_URL"`

	RedisURL      string `mapstructure:"GROUNDWORK_REDIS_URL"`
	BlueprintPath string `mapstructure:"GROUNDWORK_BLUEPRINT"`
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnv reads the process environment.
func FromEnv() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from the variables visible through lookup.
// Values are trimmed; empty values count as absent.
func FromLookup(lookup LookupFunc) (Config, error) {
	raw := make(map[string]any)
	for _, key := range envKeys() {
		if v, ok := lookup(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				raw[key] = v
			}
		}
	}

	var cfg Config
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode environment: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.NotionBaseURL == "" {
		c.NotionBaseURL = DefaultNotionBaseURL
	}
	if c.NotionVersion == "" {
		c.NotionVersion = DefaultNotionVersion
	}
	if c.ClickUpBaseURL == "" {
		c.ClickUpBaseURL = DefaultClickUpBaseURL
	}
	c.NotionBaseURL = strings.TrimRight(c.NotionBaseURL, "/")
	c.ClickUpBaseURL = strings.TrimRight(c.ClickUpBaseURL, "/")
}

// HasNotion reports whether the document workspace credential is present.
func (c Config) HasNotion() bool { return c.NotionAPIKey != "" }

// HasClickUp reports whether the task workspace credential is present.
func (c Config) HasClickUp() bool { return c.ClickUpAPIKey != "" }

// WithSandbox points both services at a local sandbox listening on baseURL.
// Credentials and the root anchor are filled in only when absent.
func (c Config) WithSandbox(baseURL, rootPageID string) Config {
	baseURL = strings.TrimRight(baseURL, "/")
	c.NotionBaseURL = baseURL + "/notion/v1"
	c.ClickUpBaseURL = baseURL + "/clickup/api/v2"
	if c.NotionAPIKey == "" {
		c.NotionAPIKey = "sandbox-notion-key"
	}
	if c.ClickUpAPIKey == "" {
		c.ClickUpAPIKey = "sandbox-clickup-key"
	}
	if c.NotionRootPageID == "" {
		c.NotionRootPageID = rootPageID
	}
	return c
}

// envKeys lists the variable names declared by the Config tags.
func envKeys() []string {
	return []string{
		"NOTION_API_KEY",
		"NOTION_ROOT_PAGE_ID",
		"NOTION_BASE_URL",
		"NOTION_VERSION",
		"CLICKUP_API_KEY",
		"CLICKUP_TEAM_ID",
		"CLICKUP_BASE_URL",
		"GROUNDWORK_REDIS_URL",
		"GROUNDWORK_BLUEPRINT",
	}
}
