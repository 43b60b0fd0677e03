// Package catalog defines the application's core catalog domain entities.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon discount types.
const (
	CouponTypePercent = "percent"
	CouponTypeFixed   = "fixed"
)

// Coupon is a merchant-configured discount code.
type Coupon struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Type       string          `json:"type"`
	Value      decimal.Decimal `json:"value"`
	UsageLimit int             `json:"usageLimit"` // 0 = unlimited
	UsedCount  int             `json:"usedCount"`
	StartsAt   *time.Time      `json:"startsAt,omitempty"`
	EndsAt     *time.Time      `json:"endsAt,omitempty"`
	IsActive   bool            `json:"isActive"`
	Created    time.Time       `json:"created"`
}

// Usable reports whether the coupon can be applied at the given time.
func (c *Coupon) Usable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return false
	}
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return false
	}
	if c.EndsAt != nil && now.After(*c.EndsAt) {
		return false
	}
	return true
}

// SeoTemplate is a per-entity-type pattern for generated meta tags.
// Patterns may contain {{variable}} placeholders resolved through the
// same substitution used for slot text content.
type SeoTemplate struct {
	ID          string     `json:"id"`
	EntityType  string     `json:"entityType"` // "product", "category", "page"
	TitlePat    string     `json:"titlePattern"`
	DescPat     string     `json:"descriptionPattern"`
	KeywordsPat string     `json:"keywordsPattern,omitempty"`
	IsActive    bool       `json:"isActive"`
	Created     time.Time  `json:"created"`
	Changed     *time.Time `json:"changed,omitempty"`
}

// AbTest is a weighted experiment across named variants.
type AbTest struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Status   string           `json:"status"` // "draft", "running", "completed"
	Variants []*AbTestVariant `json:"variants"`
	Created  time.Time        `json:"created"`
}

// AbTestVariant is one arm of an experiment.
type AbTestVariant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Weight      int    `json:"weight"` // relative traffic share
	Impressions int    `json:"impressions"`
	Conversions int    `json:"conversions"`
}
