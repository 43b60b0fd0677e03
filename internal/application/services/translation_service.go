package services

import (
	"fmt"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/i18n"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
)

// Entity types that carry per-language field translations.
var translatableEntityTypes = []string{"product", "category", "attribute"}

// TranslationService manages storefront languages, UI labels, and
// entity-field translations, and projects them onto catalog entities
// for rendering.
type TranslationService struct {
	credits *CreditService
}

// NewTranslationService creates a new translation service.
func NewTranslationService(credits *CreditService) *TranslationService {
	return &TranslationService{credits: credits}
}

// ListLanguages returns the store's configured languages, default first.
func (s *TranslationService) ListLanguages(storeCtx *tenant.Context) ([]*i18n.Language, error) {
	languages, err := storeCtx.LanguageRepo().FindAll(storeCtx.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return languages, nil
}

// ResolveLanguage picks the language a page renders in: the requested
// code when it names an active language, otherwise the store default.
// Both the effective and the default code are returned since name
// fallback needs the default.
func (s *TranslationService) ResolveLanguage(storeCtx *tenant.Context, requested string) (language, defaultLanguage string, err error) {
	languages, err := storeCtx.LanguageRepo().FindAll(storeCtx.StoreID)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve language: %w", err)
	}

	for _, l := range languages {
		if l.IsDefault {
			defaultLanguage = l.Code
		}
	}
	if defaultLanguage == "" && len(languages) > 0 {
		defaultLanguage = languages[0].Code
	}

	language = defaultLanguage
	if requested != "" {
		for _, l := range languages {
			if l.IsActive && l.Code == requested {
				language = requested
				break
			}
		}
	}
	return language, defaultLanguage, nil
}

// GetUILabels returns the UI label map for a language.
func (s *TranslationService) GetUILabels(storeCtx *tenant.Context, language string) (map[string]string, error) {
	labels, err := storeCtx.TranslationRepo().FindUILabels(storeCtx.StoreID, language)
	if err != nil {
		return nil, fmt.Errorf("failed to get ui labels: %w", err)
	}
	return labels, nil
}

// TranslateProducts returns copies of the products with the language's
// translated names merged in. Copies keep the shared cache entries
// untouched across concurrent renders.
func (s *TranslationService) TranslateProducts(storeCtx *tenant.Context, language string, products []*catalog.Product) ([]*catalog.Product, error) {
	values, err := storeCtx.TranslationRepo().FindEntityValues(storeCtx.StoreID, language, "product")
	if err != nil {
		return nil, fmt.Errorf("failed to get product translations: %w", err)
	}
	if len(values) == 0 {
		return products, nil
	}

	out := make([]*catalog.Product, len(products))
	for i, p := range products {
		if p == nil {
			continue
		}
		fields, ok := values[p.ID]
		if !ok {
			out[i] = p
			continue
		}
		clone := *p
		clone.Names = cloneStringMap(p.Names)
		if name := fields["name"]; name != "" {
			clone.Names[language] = name
		}
		if desc := fields["description"]; desc != "" {
			clone.Description = desc
		}
		out[i] = &clone
	}
	return out, nil
}

// TranslateCategory returns a copy of the category with the language's
// translated name merged in, or the original when untranslated.
func (s *TranslationService) TranslateCategory(storeCtx *tenant.Context, language string, category *catalog.Category) (*catalog.Category, error) {
	if category == nil {
		return nil, nil
	}
	values, err := storeCtx.TranslationRepo().FindEntityValues(storeCtx.StoreID, language, "category")
	if err != nil {
		return nil, fmt.Errorf("failed to get category translations: %w", err)
	}
	fields, ok := values[category.ID]
	if !ok {
		return category, nil
	}

	clone := *category
	clone.Names = cloneStringMap(category.Names)
	if name := fields["name"]; name != "" {
		clone.Names[language] = name
	}
	return &clone, nil
}

// TranslateAttributes returns copies of the attributes with the
// language's labels and value labels merged in.
func (s *TranslationService) TranslateAttributes(storeCtx *tenant.Context, language string, attributes []*catalog.Attribute) ([]*catalog.Attribute, error) {
	values, err := storeCtx.TranslationRepo().FindEntityValues(storeCtx.StoreID, language, "attribute")
	if err != nil {
		return nil, fmt.Errorf("failed to get attribute translations: %w", err)
	}
	if len(values) == 0 {
		return attributes, nil
	}

	out := make([]*catalog.Attribute, len(attributes))
	for i, a := range attributes {
		if a == nil {
			continue
		}
		fields, ok := values[a.ID]
		if !ok {
			out[i] = a
			continue
		}
		clone := *a
		clone.Labels = cloneStringMap(a.Labels)
		clone.ValueLabels = make(map[string]map[string]string, len(a.ValueLabels)+1)
		for lang, m := range a.ValueLabels {
			clone.ValueLabels[lang] = m
		}
		valueLabels := cloneStringMap(clone.ValueLabels[language])
		for key, value := range fields {
			if key == "label" {
				clone.Labels[language] = value
				continue
			}
			// Remaining keys are raw attribute values.
			valueLabels[key] = value
		}
		if len(valueLabels) > 0 {
			clone.ValueLabels[language] = valueLabels
		}
		out[i] = &clone
	}
	return out, nil
}

// ListTranslations returns every stored translation row for a language.
func (s *TranslationService) ListTranslations(storeCtx *tenant.Context, language string) ([]*i18n.Translation, error) {
	translations, err := storeCtx.TranslationRepo().FindByLanguage(storeCtx.StoreID, language)
	if err != nil {
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}
	return translations, nil
}

// UpsertTranslation writes one translation row and drops fragments
// rendered with the previous value.
func (s *TranslationService) UpsertTranslation(storeCtx *tenant.Context, translation *i18n.Translation) error {
	if translation.Language == "" || translation.Key == "" {
		return fmt.Errorf("translation language and key are required")
	}
	if translation.ID == "" {
		translation.ID = security.GenerateULID()
	}
	if err := storeCtx.TranslationRepo().Upsert(storeCtx.StoreID, translation); err != nil {
		return fmt.Errorf("failed to upsert translation: %w", err)
	}
	storeCtx.CacheManager.InvalidateFragmentCache(storeCtx.StoreID)
	return nil
}

// DeleteTranslation removes one translation row.
func (s *TranslationService) DeleteTranslation(storeCtx *tenant.Context, id string) error {
	if err := storeCtx.TranslationRepo().Delete(storeCtx.StoreID, id); err != nil {
		return fmt.Errorf("failed to delete translation: %w", err)
	}
	storeCtx.CacheManager.InvalidateFragmentCache(storeCtx.StoreID)
	return nil
}

// CreateLanguage adds a storefront language. The first language ever
// created becomes the default.
func (s *TranslationService) CreateLanguage(storeCtx *tenant.Context, language *i18n.Language) error {
	if language.Code == "" {
		return fmt.Errorf("language code is required")
	}
	if language.ID == "" {
		language.ID = security.GenerateULID()
	}

	existing, err := storeCtx.LanguageRepo().FindAll(storeCtx.StoreID)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	if len(existing) == 0 {
		language.IsDefault = true
	}
	for _, l := range existing {
		if l.Code == language.Code {
			return fmt.Errorf("language already exists: %s", language.Code)
		}
	}

	if err := storeCtx.LanguageRepo().Store(storeCtx.StoreID, language); err != nil {
		return fmt.Errorf("failed to create language: %w", err)
	}
	return nil
}

// UpdateLanguage persists language changes. Demoting the default
// language is rejected; promote another one instead.
func (s *TranslationService) UpdateLanguage(storeCtx *tenant.Context, language *i18n.Language) error {
	if language.ID == "" {
		return fmt.Errorf("language id is required")
	}

	if language.IsDefault {
		existing, err := storeCtx.LanguageRepo().FindAll(storeCtx.StoreID)
		if err != nil {
			return fmt.Errorf("failed to list languages: %w", err)
		}
		for _, l := range existing {
			if l.IsDefault && l.ID != language.ID {
				demoted := *l
				demoted.IsDefault = false
				if err := storeCtx.LanguageRepo().Update(storeCtx.StoreID, &demoted); err != nil {
					return fmt.Errorf("failed to demote default language: %w", err)
				}
			}
		}
	} else {
		current, err := storeCtx.LanguageRepo().FindDefault(storeCtx.StoreID)
		if err != nil {
			return fmt.Errorf("failed to find default language: %w", err)
		}
		if current != nil && current.ID == language.ID {
			return fmt.Errorf("cannot demote the default language, promote another language first")
		}
	}

	if err := storeCtx.LanguageRepo().Update(storeCtx.StoreID, language); err != nil {
		return fmt.Errorf("failed to update language: %w", err)
	}
	return nil
}

// DeleteLanguage removes a non-default language.
func (s *TranslationService) DeleteLanguage(storeCtx *tenant.Context, id string) error {
	current, err := storeCtx.LanguageRepo().FindDefault(storeCtx.StoreID)
	if err != nil {
		return fmt.Errorf("failed to find default language: %w", err)
	}
	if current != nil && current.ID == id {
		return fmt.Errorf("cannot delete the default language")
	}
	if err := storeCtx.LanguageRepo().Delete(storeCtx.StoreID, id); err != nil {
		return fmt.Errorf("failed to delete language: %w", err)
	}
	return nil
}

// QuickTranslate seeds a target language by copying every
// default-language value the target is missing. Existing target values
// are never overwritten. The operation is credit-metered and fails
// before writing anything when the balance cannot cover it.
func (s *TranslationService) QuickTranslate(storeCtx *tenant.Context, targetLanguage string) (int, error) {
	_, defaultLanguage, err := s.ResolveLanguage(storeCtx, "")
	if err != nil {
		return 0, err
	}
	if targetLanguage == "" || targetLanguage == defaultLanguage {
		return 0, fmt.Errorf("quick translate needs a non-default target language")
	}

	if _, err := s.credits.Spend(storeCtx, "quick_translate", "quick translate to "+targetLanguage); err != nil {
		return 0, err
	}

	repo := storeCtx.TranslationRepo()
	filled := 0

	sourceLabels, err := repo.FindUILabels(storeCtx.StoreID, defaultLanguage)
	if err != nil {
		return filled, fmt.Errorf("failed to read source ui labels: %w", err)
	}
	targetLabels, err := repo.FindUILabels(storeCtx.StoreID, targetLanguage)
	if err != nil {
		return filled, fmt.Errorf("failed to read target ui labels: %w", err)
	}
	for key, value := range sourceLabels {
		if _, exists := targetLabels[key]; exists {
			continue
		}
		err := repo.Upsert(storeCtx.StoreID, &i18n.Translation{
			ID:         security.GenerateULID(),
			Language:   targetLanguage,
			EntityType: "ui",
			Key:        key,
			Value:      value,
		})
		if err != nil {
			return filled, fmt.Errorf("failed to copy ui label %s: %w", key, err)
		}
		filled++
	}

	for _, entityType := range translatableEntityTypes {
		source, err := repo.FindEntityValues(storeCtx.StoreID, defaultLanguage, entityType)
		if err != nil {
			return filled, fmt.Errorf("failed to read source %s translations: %w", entityType, err)
		}
		target, err := repo.FindEntityValues(storeCtx.StoreID, targetLanguage, entityType)
		if err != nil {
			return filled, fmt.Errorf("failed to read target %s translations: %w", entityType, err)
		}
		for entityID, fields := range source {
			for key, value := range fields {
				if _, exists := target[entityID][key]; exists {
					continue
				}
				err := repo.Upsert(storeCtx.StoreID, &i18n.Translation{
					ID:         security.GenerateULID(),
					Language:   targetLanguage,
					EntityType: entityType,
					EntityID:   entityID,
					Key:        key,
					Value:      value,
				})
				if err != nil {
					return filled, fmt.Errorf("failed to copy %s translation: %w", entityType, err)
				}
				filled++
			}
		}
	}

	storeCtx.CacheManager.InvalidateFragmentCache(storeCtx.StoreID)
	storeCtx.Logger.Store().Info("Quick translate completed",
		"storeId", storeCtx.StoreID, "target", targetLanguage, "filled", filled)
	return filled, nil
}

func cloneStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
