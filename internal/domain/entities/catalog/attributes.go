// Package catalog defines the application's core catalog domain entities.
package catalog

// Attribute filter types supported by the layered navigation.
const (
	FilterTypeSelect = "select"
	FilterTypeSlider = "slider"
)

// Attribute describes a filterable product property.
type Attribute struct {
	ID           string                       `json:"id"`
	Code         string                       `json:"code"`
	Label        string                       `json:"label"`
	FilterType   string                       `json:"filterType"`
	IsFilterable bool                         `json:"isFilterable"`
	SortOrder    int                          `json:"sortOrder"`
	Labels       map[string]string            `json:"labels,omitempty"`      // language code -> translated label
	ValueLabels  map[string]map[string]string `json:"valueLabels,omitempty"` // language -> raw value -> label
}

// TranslatedLabel returns the attribute label for the given language
// code, falling back to the configured label and finally the code.
func (a *Attribute) TranslatedLabel(lang string) string {
	if a.Labels != nil {
		if label, ok := a.Labels[lang]; ok && label != "" {
			return label
		}
	}
	if a.Label != "" {
		return a.Label
	}
	return a.Code
}

// TranslatedValueLabel returns the display label for one raw attribute
// value, falling back to the raw value itself.
func (a *Attribute) TranslatedValueLabel(lang, value string) string {
	if byLang, ok := a.ValueLabels[lang]; ok {
		if label, ok := byLang[value]; ok && label != "" {
			return label
		}
	}
	return value
}
