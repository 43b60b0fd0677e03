package services

import (
	"fmt"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
)

// Store settings consumed by the render path.
const (
	SettingCurrencyCode = "currency_code"
	SettingLocale       = "locale"
	SettingStoreName    = "store_name"
)

// ConfigService reads and writes the merchant-configured settings bag.
// Settings feed conditionalDisplay predicates, so every write drops
// the store's rendered fragments.
type ConfigService struct{}

// NewConfigService creates a new config service.
func NewConfigService() *ConfigService {
	return &ConfigService{}
}

// GetSettings returns the full settings bag.
func (s *ConfigService) GetSettings(storeCtx *tenant.Context) (map[string]any, error) {
	settings, err := storeCtx.SettingsRepo().FindAll(storeCtx.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// UpdateSetting writes one setting.
func (s *ConfigService) UpdateSetting(storeCtx *tenant.Context, key string, value any) error {
	if key == "" {
		return fmt.Errorf("setting key is required")
	}
	if err := storeCtx.SettingsRepo().Set(storeCtx.StoreID, key, value); err != nil {
		return fmt.Errorf("failed to update setting: %w", err)
	}
	storeCtx.CacheManager.InvalidateFragmentCache(storeCtx.StoreID)
	return nil
}

// DeleteSetting removes one setting, reverting it to its default.
func (s *ConfigService) DeleteSetting(storeCtx *tenant.Context, key string) error {
	if err := storeCtx.SettingsRepo().Delete(storeCtx.StoreID, key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	storeCtx.CacheManager.InvalidateFragmentCache(storeCtx.StoreID)
	return nil
}

// SettingString reads a string setting with a fallback.
func SettingString(settings map[string]any, key, fallback string) string {
	if settings != nil {
		if value, ok := settings[key].(string); ok && value != "" {
			return value
		}
	}
	return fallback
}
