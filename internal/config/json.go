package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskflow/internal/flagx"
	"github.com/dmitrijs2005/taskflow/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration. Pointer fields tell
// "absent" apart from zero values.
type JsonConfig struct {
	StateDSN           *string         `json:"state_dsn"`
	TasksDSN           *string         `json:"tasks_dsn"`
	SecretKey          *string         `json:"secret_key"`
	TokenValidity      *timex.Duration `json:"token_validity"`
	LatencyEnabled     *bool           `json:"latency_enabled"`
	MockPassword       *string         `json:"mock_password"`
	CredentialVerifier *string         `json:"credential_verifier"`
	SeedTasks          *bool           `json:"seed_tasks"`
	LogLevel           *string         `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	setIf(&cfg.StateDSN, jc.StateDSN)
	setIf(&cfg.TasksDSN, jc.TasksDSN)
	setIf(&cfg.SecretKey, jc.SecretKey)
	if jc.TokenValidity != nil {
		cfg.TokenValidity = jc.TokenValidity.Duration
	}
	setIf(&cfg.LatencyEnabled, jc.LatencyEnabled)
	setIf(&cfg.MockPassword, jc.MockPassword)
	setIf(&cfg.CredentialVerifier, jc.CredentialVerifier)
	setIf(&cfg.SeedTasks, jc.SeedTasks)
	setIf(&cfg.LogLevel, jc.LogLevel)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
