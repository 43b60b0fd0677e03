package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingString(t *testing.T) {
	settings := map[string]any{
		"store_name":    "Demo Store",
		"currency_code": "EUR",
		"max_items":     12,
		"empty":         "",
	}

	assert.Equal(t, "Demo Store", SettingString(settings, SettingStoreName, "fallback"))
	assert.Equal(t, "EUR", SettingString(settings, SettingCurrencyCode, "USD"))
	assert.Equal(t, "fallback", SettingString(settings, "missing", "fallback"))
	assert.Equal(t, "fallback", SettingString(settings, "empty", "fallback"))
	assert.Equal(t, "fallback", SettingString(settings, "max_items", "fallback"))
	assert.Equal(t, "fallback", SettingString(nil, SettingLocale, "fallback"))
}
