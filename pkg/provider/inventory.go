package provider

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Inventory is the operator-editable provider set: which providers exist,
// which are enabled, how they order in a login widget, and their credential
// material. It is loaded once at startup from a YAML file.
//
// Example:
//
//	providers:
//	  - id: google
//	    enabled: true
//	    order: 0
//	    key: xxxx.apps.googleusercontent.com
//	    secret: shhh
//	  - id: linkedin
//	    enabled: false
//	    order: 1
type Inventory struct {
	Providers []InventoryEntry `yaml:"providers"`
}

type InventoryEntry struct {
	ID      string `yaml:"id"`
	Enabled bool   `yaml:"enabled"`
	Order   int    `yaml:"order"`
	Key     string `yaml:"key"`
	Secret  string `yaml:"secret"`
}

// Config locates the inventory file via the environment.
type Config struct {
	InventoryPath string `env:"SOCIALAUTH_PROVIDERS_FILE" envDefault:"providers.yaml"` // InventoryPath is the path to the provider inventory YAML file.
}

// LoadInventory reads and parses the inventory file, returning the
// descriptors for a Registry and the secrets source for a Resolver.
func LoadInventory(path string) ([]Descriptor, StaticSecrets, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read provider inventory: %w", err)
	}
	return ParseInventory(raw)
}

// ParseInventory parses YAML inventory content. Entries must have unique,
// non-empty ids; credential completeness is deliberately not validated here
// so a disabled provider can be listed before its keys exist.
func ParseInventory(raw []byte) ([]Descriptor, StaticSecrets, error) {
	var inv Inventory
	if err := yaml.Unmarshal(raw, &inv); err != nil {
		return nil, nil, errors.Join(ErrInvalidInventory, err)
	}
	if len(inv.Providers) == 0 {
		return nil, nil, fmt.Errorf("%w: no providers listed", ErrInvalidInventory)
	}

	descriptors := make([]Descriptor, 0, len(inv.Providers))
	secrets := make(StaticSecrets, len(inv.Providers))
	seen := make(map[string]struct{}, len(inv.Providers))

	for _, e := range inv.Providers {
		if e.ID == "" {
			return nil, nil, fmt.Errorf("%w: entry with empty id", ErrInvalidInventory)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidInventory, e.ID)
		}
		seen[e.ID] = struct{}{}

		descriptors = append(descriptors, Descriptor{
			ID:      e.ID,
			Enabled: e.Enabled,
			Order:   e.Order,
		})
		secrets[e.ID] = KeyPair{Key: e.Key, Secret: e.Secret}
	}

	return descriptors, secrets, nil
}
