// Package config assembles node configuration from the environment. A .env
// file is loaded best-effort first, then, when VAULT_ADDR is set, secrets
// fetched from Vault override whatever the environment carried. The gate and
// the backend are separate processes with separate knobs, so each gets its
// own loader.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Sync defaults, overridable per node.
const (
	DefaultSyncBatchSize = 200
	DefaultSyncInterval  = 5 * time.Second
	DefaultSyncTimeout   = 10 * time.Second
	DefaultSyncMaxEvents = 500
	DefaultBackendPort   = "8080"
)

// Gate is the configuration of the gate node: local database, the backend
// sync link, and the credential verification key.
type Gate struct {
	DatabaseURL      string
	BackendSyncURL   string
	GateAPIKey       string
	SyncBatchSize    int
	SyncInterval     time.Duration
	SyncTimeout      time.Duration
	GateDeviceID     string
	PublicKeyPath    string
	AutoExitHours    int
	AutoExitSchedule string
	OTELEndpoint     string
}

// Backend is the configuration of the backend node: canonical database, the
// shared gate key, the signing key, and the kiosk dashboard token.
type Backend struct {
	DatabaseURL       string
	GateAPIKey        string
	SyncMaxEvents     int
	PrivateKeyPath    string
	Port              string
	KioskToken        string
	DashboardTimezone string
	OTELEndpoint      string
}

// LoadGate reads the gate configuration. Only the database URL is required
// here; the sync worker validates its own knobs when it starts, so scan-only
// invocations work without a backend link configured.
func LoadGate() (*Gate, error) {
	env, err := loadEnv()
	if err != nil {
		return nil, err
	}

	cfg := &Gate{
		DatabaseURL:      env("DATABASE_URL"),
		BackendSyncURL:   env("BACKEND_SYNC_URL"),
		GateAPIKey:       env("GATE_API_KEY"),
		SyncBatchSize:    DefaultSyncBatchSize,
		SyncInterval:     DefaultSyncInterval,
		SyncTimeout:      DefaultSyncTimeout,
		GateDeviceID:     env("GATE_DEVICE_ID"),
		PublicKeyPath:    env("JWT_PUBLIC_KEY_PATH"),
		AutoExitHours:    20,
		AutoExitSchedule: env("AUTO_EXIT_SCHEDULE"),
		OTELEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	if err := overrideInt(env, "SYNC_BATCH_SIZE", &cfg.SyncBatchSize); err != nil {
		return nil, err
	}
	if err := overrideSeconds(env, "SYNC_INTERVAL_SECONDS", &cfg.SyncInterval); err != nil {
		return nil, err
	}
	if err := overrideSeconds(env, "SYNC_TIMEOUT_SECONDS", &cfg.SyncTimeout); err != nil {
		return nil, err
	}
	if err := overrideInt(env, "AUTO_EXIT_HOURS", &cfg.AutoExitHours); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadBackend reads the backend configuration. The database URL and the
// signing key path are required; an empty GATE_API_KEY is allowed here and
// rejected at the sync endpoint instead, which answers 500 so the
// misconfiguration is loud but the rest of the API still serves.
func LoadBackend() (*Backend, error) {
	env, err := loadEnv()
	if err != nil {
		return nil, err
	}

	cfg := &Backend{
		DatabaseURL:       env("DATABASE_URL"),
		GateAPIKey:        env("GATE_API_KEY"),
		SyncMaxEvents:     DefaultSyncMaxEvents,
		PrivateKeyPath:    env("JWT_PRIVATE_KEY_PATH"),
		Port:              env("BACKEND_PORT"),
		KioskToken:        env("KIOSK_TOKEN"),
		DashboardTimezone: env("DASHBOARD_TIMEZONE"),
		OTELEndpoint:      os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.PrivateKeyPath == "" {
		return nil, fmt.Errorf("JWT_PRIVATE_KEY_PATH is not set")
	}
	if cfg.Port == "" {
		cfg.Port = DefaultBackendPort
	}
	if cfg.DashboardTimezone == "" {
		cfg.DashboardTimezone = "UTC"
	}

	if err := overrideInt(env, "SYNC_MAX_EVENTS", &cfg.SyncMaxEvents); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnv layers the sources: process environment under .env under Vault.
// The returned lookup consults the Vault secrets first and falls back to the
// environment, so a key present in both places resolves to the Vault value.
func loadEnv() (func(string) string, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	secrets, err := loadVaultSecrets()
	if err != nil {
		return nil, err
	}
	return func(key string) string {
		if v, ok := secrets[key]; ok && v != "" {
			return v
		}
		return os.Getenv(key)
	}, nil
}

func overrideInt(env func(string) string, key string, dst *int) error {
	raw := env(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	*dst = v
	return nil
}

func overrideSeconds(env func(string) string, key string, dst *time.Duration) error {
	var secs int
	if err := overrideInt(env, key, &secs); err != nil {
		return err
	}
	if secs > 0 {
		*dst = time.Duration(secs) * time.Second
	}
	return nil
}
