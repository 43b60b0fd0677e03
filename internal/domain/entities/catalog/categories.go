// Package catalog defines the application's core catalog domain entities.
package catalog

import "time"

// Category is a node in a store's category tree.
type Category struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	ParentID    string            `json:"parentId,omitempty"`
	Description string            `json:"description,omitempty"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	SortOrder   int               `json:"sortOrder"`
	IsActive    bool              `json:"isActive"`
	Names       map[string]string `json:"names,omitempty"` // language code -> translated name
	Created     time.Time         `json:"created"`
	Changed     *time.Time        `json:"changed,omitempty"`
}

// TranslatedName returns the category name for the given language code,
// falling back to the default-language name.
func (c *Category) TranslatedName(lang string) string {
	if c.Names != nil {
		if name, ok := c.Names[lang]; ok && name != "" {
			return name
		}
	}
	return c.Name
}

// Breadcrumb is one entry of a category ancestry chain, root first.
type Breadcrumb struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}
