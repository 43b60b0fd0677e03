package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
)

func TestDiscountPercentRoundsToCents(t *testing.T) {
	s := NewCouponService()
	coupon := &catalog.Coupon{Type: catalog.CouponTypePercent, Value: decimal.NewFromInt(15)}

	discount := s.Discount(coupon, decimal.NewFromFloat(19.99))
	assert.True(t, discount.Equal(decimal.NewFromFloat(3.00)), "got %s", discount)
}

func TestDiscountFixed(t *testing.T) {
	s := NewCouponService()
	coupon := &catalog.Coupon{Type: catalog.CouponTypeFixed, Value: decimal.NewFromInt(5)}

	discount := s.Discount(coupon, decimal.NewFromInt(40))
	assert.True(t, discount.Equal(decimal.NewFromInt(5)))
}

func TestDiscountClampedToSubtotal(t *testing.T) {
	s := NewCouponService()
	coupon := &catalog.Coupon{Type: catalog.CouponTypeFixed, Value: decimal.NewFromInt(50)}

	discount := s.Discount(coupon, decimal.NewFromInt(20))
	assert.True(t, discount.Equal(decimal.NewFromInt(20)))
}

func TestDiscountNegativeValueClampedToZero(t *testing.T) {
	s := NewCouponService()
	coupon := &catalog.Coupon{Type: catalog.CouponTypeFixed, Value: decimal.NewFromInt(-5)}

	discount := s.Discount(coupon, decimal.NewFromInt(20))
	assert.True(t, discount.IsZero())
}

func TestDiscountUnknownTypeIsZero(t *testing.T) {
	s := NewCouponService()
	coupon := &catalog.Coupon{Type: "bogo", Value: decimal.NewFromInt(10)}

	assert.True(t, s.Discount(coupon, decimal.NewFromInt(100)).IsZero())
}
