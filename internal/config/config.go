package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the TaskFlow CLI.
type Config struct {
	// StateDSN is the file-backed SQLite database the session survives in.
	StateDSN string
	// TasksDSN holds the task collection; in memory by default so tasks
	// reset on every start.
	TasksDSN string

	SecretKey     string
	TokenValidity time.Duration

	LatencyEnabled bool

	// MockPassword is the password every account accepts with the "mock"
	// credential verifier.
	MockPassword string
	// CredentialVerifier is "mock" or "argon2".
	CredentialVerifier string

	SeedTasks bool
	LogLevel  string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.StateDSN = "taskflow.db"
	c.TasksDSN = ":memory:"
	c.SecretKey = "taskflow-dev-secret"
	c.TokenValidity = 720 * time.Hour
	c.LatencyEnabled = true
	c.MockPassword = "password123"
	c.CredentialVerifier = "mock"
	c.SeedTasks = true
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the JSON file named in args
// (if any), then the flags in args. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.StateDSN == "":
		return fmt.Errorf("state_dsn must not be empty")
	case c.TasksDSN == "":
		return fmt.Errorf("tasks_dsn must not be empty")
	case c.SecretKey == "":
		return fmt.Errorf("secret_key must not be empty")
	case c.TokenValidity <= 0:
		return fmt.Errorf("token_validity must be positive, got %s", c.TokenValidity)
	}
	switch c.CredentialVerifier {
	case "mock", "argon2":
	default:
		return fmt.Errorf("credential_verifier must be mock or argon2, got %q", c.CredentialVerifier)
	}
	return nil
}
