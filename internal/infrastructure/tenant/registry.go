// Package tenant handles loading and providing store-specific configurations.
// Each tenant is one store with its own database and caches.
package tenant

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the structure of a single store's configuration
type Config struct {
	StoreID         string     `json:"storeId"`
	Domains         []string   `json:"domains"`
	Status          string     `json:"status"`
	DatabaseType    string     `json:"databaseType"`
	TursoDatabase   string     `json:"TURSO_DATABASE_URL"`
	TursoToken      string     `json:"TURSO_AUTH_TOKEN"`
	TursoEnabled    bool       `json:"TURSO_ENABLED"`
	JWTSecret       string     `json:"JWT_SECRET"`
	AdminEmail      string     `json:"ADMIN_EMAIL,omitempty"`
	AdminPassword   string     `json:"ADMIN_PASSWORD,omitempty"`
	EditorPassword  string     `json:"EDITOR_PASSWORD,omitempty"`
	ActivationToken string     `json:"ACTIVATION_TOKEN,omitempty"`
	ReservedAt      *time.Time `json:"RESERVED_AT,omitempty"`
	BaseURL         string     `json:"BASE_URL,omitempty"`
	SQLitePath      string     `json:"-"`
}

// configRoot resolves the server data directory
func configRoot() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, "dainostore-server"), nil
}

// LoadStoreConfig loads configuration for a specific store from its env.json file.
func LoadStoreConfig(storeID string) (*Config, error) {
	root, err := configRoot()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(root, "config", storeID, "env.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("store config file not found at %s", configPath)
	}

	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read store config file: %w", err)
	}

	var storeConfig Config
	if err := json.Unmarshal(configFile, &storeConfig); err != nil {
		return nil, fmt.Errorf("could not parse store config json: %w", err)
	}

	// Set computed fields
	storeConfig.StoreID = storeID
	storeConfig.SQLitePath = filepath.Join(root, "db", storeID, "store.db")

	return &storeConfig, nil
}

// SaveStoreConfig persists a store's env.json, used by provisioning
func SaveStoreConfig(cfg *Config) error {
	root, err := configRoot()
	if err != nil {
		return err
	}

	configDir := filepath.Join(root, "config", cfg.StoreID)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create store config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, "env.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write store config: %w", err)
	}
	return nil
}

// StoreRegistry holds the global store configuration
type StoreRegistry struct {
	Stores map[string]StoreInfo `json:"stores"`
}

// StoreInfo holds store metadata
type StoreInfo struct {
	StoreID      string   `json:"storeId"`
	Domains      []string `json:"domains"`
	Status       string   `json:"status"`       // "reserved", "activating", "active", "inactive"
	DatabaseType string   `json:"databaseType"` // "turso", "sqlite3"
}

func registryPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "config", "dainostore", "stores.json"), nil
}

// LoadStoreRegistry loads the global store registry
func LoadStoreRegistry() (*StoreRegistry, error) {
	path, err := registryPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Create default registry if it doesn't exist
		return &StoreRegistry{
			Stores: map[string]StoreInfo{
				"default": {
					StoreID:      "default",
					Domains:      []string{"*"},
					Status:       "inactive",
					DatabaseType: "",
				},
			},
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store registry: %w", err)
	}

	var registry StoreRegistry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse store registry: %w", err)
	}

	return &registry, nil
}

// SaveStoreRegistry persists the registry to disk
func SaveStoreRegistry(registry *StoreRegistry) error {
	path, err := registryPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// RegisterStore adds a new store to the registry with the given status
func RegisterStore(storeID, status string, domains []string) error {
	registry, err := LoadStoreRegistry()
	if err != nil {
		return err
	}

	if _, exists := registry.Stores[storeID]; exists {
		return fmt.Errorf("store %s already registered", storeID)
	}

	if len(domains) == 0 {
		domains = []string{"*"}
	}
	registry.Stores[storeID] = StoreInfo{
		StoreID:      storeID,
		Domains:      domains,
		Status:       status,
		DatabaseType: "",
	}

	return SaveStoreRegistry(registry)
}

// UpdateRegistryStatus updates a store's status on disk
func UpdateRegistryStatus(storeID, status, dbType string) error {
	registry, err := LoadStoreRegistry()
	if err != nil {
		return err
	}

	info, exists := registry.Stores[storeID]
	if !exists {
		return fmt.Errorf("store %s not found in registry", storeID)
	}

	info.Status = status
	if dbType != "" {
		info.DatabaseType = dbType
	}
	registry.Stores[storeID] = info

	return SaveStoreRegistry(registry)
}
