package graph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the store connection settings.
type Config struct {
	URI      string `yaml:"uri"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Validate reports whether the config is complete enough to connect.
func (c Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("graph config: uri must not be empty")
	}
	if c.User == "" {
		return fmt.Errorf("graph config: user must not be empty")
	}
	if c.Password == "" {
		return fmt.Errorf("graph config: password must not be empty")
	}
	return nil
}

// LoadConfig builds a Config from an optional yaml file overridden by
// the NEO4J_URI, NEO4J_USER and NEO4J_PASSWORD environment variables.
// Pass "" to skip the file.  Unset values fall back to the local
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		URI:      "bolt://localhost:7687",
		User:     "neo4j",
		Password: "neo4j",
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("NEO4J_URI"); v != "" {
		cfg.URI = v
	}
	if v := os.Getenv("NEO4J_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("NEO4J_PASSWORD"); v != "" {
		cfg.Password = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
