package config

import "strings"

type RegistryConfig struct {
	// Path selects the registry source:
	//   ""                 built-in registry
	//   "sqlite:<path>"    SQLite catalog
	//   anything else      YAML or JSON document on disk
	Path string `env:"AGENTEVAL_REGISTRY"`

	// MaxResults bounds the ranker output. Values <= 0 mean 4.
	MaxResults int `env:"AGENTEVAL_MAX_RESULTS"`

	// PreferSimulation makes the full pipeline score registry-known agents
	// with the simulator instead of the rubric skill.
	PreferSimulation bool `env:"AGENTEVAL_PREFER_SIMULATION"`
}

const sqlitePrefix = "sqlite:"

func NewRegistryConfig() *RegistryConfig {
	return &RegistryConfig{
		MaxResults: 4,
	}
}

// SQLitePath returns the database path and true when Path names a SQLite catalog.
func (c *RegistryConfig) SQLitePath() (string, bool) {
	if !strings.HasPrefix(c.Path, sqlitePrefix) {
		return "", false
	}
	return strings.TrimPrefix(c.Path, sqlitePrefix), true
}
