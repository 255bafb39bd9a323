// Package config loads runtime configuration for the TaskFlow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   DSN of the SQLite database holding the persisted session
//	-s string   HMAC secret used to sign session tokens
//	-l          simulate backend latency (use -l=false to switch it off)
//	-v string   log level: debug, info, warn or error
//
// # JSON schema
//
// Durations may be strings like "24h" or integer nanoseconds. Keys that are
// absent leave the current value alone:
//
//	{
//	  "state_dsn": "taskflow.db",
//	  "tasks_dsn": ":memory:",
//	  "secret_key": "change-me",
//	  "token_validity": "720h",
//	  "latency_enabled": true,
//	  "mock_password": "password123",
//	  "credential_verifier": "mock",
//	  "seed_tasks": true,
//	  "log_level": "info"
//	}
package config
