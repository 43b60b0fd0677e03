package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
)

var oneHundred = decimal.NewFromInt(100)

// CouponService manages discount codes and computes their effect on a
// cart subtotal.
type CouponService struct{}

// NewCouponService creates a new coupon service.
func NewCouponService() *CouponService {
	return &CouponService{}
}

// Validate checks a code against its usage and validity rules and
// returns the coupon with the discount it grants on the subtotal. The
// discount never exceeds the subtotal.
func (s *CouponService) Validate(storeCtx *tenant.Context, code string, subtotal decimal.Decimal) (*catalog.Coupon, decimal.Decimal, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if code == "" {
		return nil, decimal.Zero, fmt.Errorf("coupon code is required")
	}

	coupon, err := storeCtx.CouponRepo().FindByCode(storeCtx.StoreID, code)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if coupon == nil {
		return nil, decimal.Zero, fmt.Errorf("coupon not found: %s", code)
	}
	if !coupon.Usable(time.Now().UTC()) {
		return nil, decimal.Zero, fmt.Errorf("coupon is not usable: %s", code)
	}

	return coupon, s.Discount(coupon, subtotal), nil
}

// Discount computes the amount a coupon takes off a subtotal, clamped
// to the subtotal itself.
func (s *CouponService) Discount(coupon *catalog.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch coupon.Type {
	case catalog.CouponTypePercent:
		discount = subtotal.Mul(coupon.Value).Div(oneHundred).Round(2)
	case catalog.CouponTypeFixed:
		discount = coupon.Value
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}

// Redeem counts one use of a validated coupon.
func (s *CouponService) Redeem(storeCtx *tenant.Context, coupon *catalog.Coupon) error {
	if err := storeCtx.CouponRepo().IncrementUsage(storeCtx.StoreID, coupon.ID); err != nil {
		return fmt.Errorf("failed to redeem coupon: %w", err)
	}
	return nil
}

// ListCoupons returns every coupon for the admin UI.
func (s *CouponService) ListCoupons(storeCtx *tenant.Context) ([]*catalog.Coupon, error) {
	coupons, err := storeCtx.CouponRepo().FindAll(storeCtx.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

// CreateCoupon stores a new coupon. Codes are normalized to upper case
// so lookups are case-insensitive.
func (s *CouponService) CreateCoupon(storeCtx *tenant.Context, coupon *catalog.Coupon) error {
	coupon.Code = strings.TrimSpace(strings.ToUpper(coupon.Code))
	if coupon.Code == "" {
		return fmt.Errorf("coupon code is required")
	}
	if coupon.Type != catalog.CouponTypePercent && coupon.Type != catalog.CouponTypeFixed {
		return fmt.Errorf("unknown coupon type: %s", coupon.Type)
	}
	if coupon.Value.IsNegative() {
		return fmt.Errorf("coupon value cannot be negative")
	}
	if coupon.ID == "" {
		coupon.ID = security.GenerateULID()
	}
	if coupon.Created.IsZero() {
		coupon.Created = time.Now().UTC()
	}

	existing, err := storeCtx.CouponRepo().FindByCode(storeCtx.StoreID, coupon.Code)
	if err != nil {
		return fmt.Errorf("failed to check coupon code: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("coupon code already exists: %s", coupon.Code)
	}

	if err := storeCtx.CouponRepo().Store(storeCtx.StoreID, coupon); err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

// UpdateCoupon persists coupon changes.
func (s *CouponService) UpdateCoupon(storeCtx *tenant.Context, coupon *catalog.Coupon) error {
	if coupon.ID == "" {
		return fmt.Errorf("coupon id is required")
	}
	coupon.Code = strings.TrimSpace(strings.ToUpper(coupon.Code))
	if err := storeCtx.CouponRepo().Update(storeCtx.StoreID, coupon); err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	return nil
}

// DeleteCoupon removes a coupon.
func (s *CouponService) DeleteCoupon(storeCtx *tenant.Context, id string) error {
	if err := storeCtx.CouponRepo().Delete(storeCtx.StoreID, id); err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	return nil
}
