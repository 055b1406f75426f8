package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/vault/api"
)

// resolveVault fetches one field of a Vault secret. A reference names
// the secret path and the field, separated by '#', e.g.
// secret/data/erplens#staging_uri. This is the form the ${VAULT:...}
// config syntax carries for gateway DSNs and staging connections.
func resolveVault(ref string) (string, error) {
	path, field, ok := strings.Cut(ref, "#")
	if !ok || path == "" || field == "" {
		return "", fmt.Errorf("vault reference %q must look like path#field", ref)
	}

	client, err := vaultClient()
	if err != nil {
		return "", err
	}

	secret, err := client.Logical().Read(path)
	if err != nil {
		return "", fmt.Errorf("reading vault path %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("vault path %s holds no secret", path)
	}

	// KV v2 nests the payload one level down.
	data := secret.Data
	if nested, ok := data["data"].(map[string]interface{}); ok {
		data = nested
	}

	v, ok := data[field]
	if !ok {
		return "", fmt.Errorf("field %q missing from vault secret at %s", field, path)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q at vault path %s is not a string", field, path)
	}
	return s, nil
}

// vaultClient builds a client from the standard VAULT_ADDR/VAULT_TOKEN
// environment; both must be set before a reference can resolve.
func vaultClient() (*api.Client, error) {
	addr := os.Getenv("VAULT_ADDR")
	token := os.Getenv("VAULT_TOKEN")
	if addr == "" || token == "" {
		return nil, fmt.Errorf("VAULT_ADDR and VAULT_TOKEN must be set to resolve vault references")
	}

	cfg := api.DefaultConfig()
	cfg.Address = addr
	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating vault client: %w", err)
	}
	client.SetToken(token)
	return client, nil
}
