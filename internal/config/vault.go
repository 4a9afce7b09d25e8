package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/vault/api"
)

// DefaultVaultSecretPath is where both nodes keep their secrets unless
// VAULT_SECRET_PATH says otherwise.
const DefaultVaultSecretPath = "secret/data/gatehouse"

// SecretManager wraps the Vault API client for reading node secrets.
type SecretManager struct {
	client *api.Client
}

// NewSecretManager creates a Vault client pointed at the given address and
// authenticated with the provided token.
func NewSecretManager(address, token string) (*SecretManager, error) {
	cfg := api.DefaultConfig()
	cfg.Address = address

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault client initialization failed: %w", err)
	}
	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

// GetKV2 reads a secret from a KV v2 backend and returns the inner "data"
// map, unwrapping the v2 envelope. Values are returned as strings; non-string
// values are skipped, this store only holds keys, URLs and tokens.
func (s *SecretManager) GetKV2(path string) (map[string]string, error) {
	secret, err := s.client.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret at %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no data found at %s", path)
	}
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected data format at %s", path)
	}

	out := make(map[string]string, len(data))
	for k, v := range data {
		if str, ok := v.(string); ok {
			out[k] = str
		}
	}
	return out, nil
}

// loadVaultSecrets fetches the node's secret map when a Vault address is
// configured. No VAULT_ADDR means no Vault: the environment alone decides.
func loadVaultSecrets() (map[string]string, error) {
	addr := os.Getenv("VAULT_ADDR")
	if addr == "" {
		return nil, nil
	}

	token := os.Getenv("VAULT_TOKEN")
	path := os.Getenv("VAULT_SECRET_PATH")
	if path == "" {
		path = DefaultVaultSecretPath
	}

	manager, err := NewSecretManager(addr, token)
	if err != nil {
		return nil, err
	}
	secrets, err := manager.GetKV2(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets from Vault: %w", err)
	}
	return secrets, nil
}
