// Package i18n defines language and translation domain entities.
package i18n

import "time"

// Language is one storefront language configured for a store.
type Language struct {
	ID        string `json:"id"`
	Code      string `json:"code"` // BCP 47-ish, e.g. "en", "pt-BR"
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
	IsActive  bool   `json:"isActive"`
}

// Translation is one translated value, either a UI label
// (EntityType "ui") or an entity field such as a product name.
type Translation struct {
	ID         string     `json:"id"`
	Language   string     `json:"language"`
	EntityType string     `json:"entityType"` // "ui", "product", "category", "attribute"
	EntityID   string     `json:"entityId,omitempty"`
	Key        string     `json:"key"`
	Value      string     `json:"value"`
	Changed    *time.Time `json:"changed,omitempty"`
}

// TranslationKey identifies one translatable unit across languages.
type TranslationKey struct {
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId,omitempty"`
	Key        string `json:"key"`
}
