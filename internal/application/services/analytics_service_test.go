package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/analytics"
)

func TestSummaryCacheKeyNameOrderIndependent(t *testing.T) {
	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	until := since.Add(24 * time.Hour)

	a := summaryCacheKey(analytics.EventQuery{Names: []string{"page_view", "add_to_cart"}, Since: since, Until: until})
	b := summaryCacheKey(analytics.EventQuery{Names: []string{"add_to_cart", "page_view"}, Since: since, Until: until})
	assert.Equal(t, a, b)
}

func TestSummaryCacheKeyDiscriminatesWindow(t *testing.T) {
	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	a := summaryCacheKey(analytics.EventQuery{Since: since, Until: since.Add(time.Hour)})
	b := summaryCacheKey(analytics.EventQuery{Since: since, Until: since.Add(2 * time.Hour)})
	assert.NotEqual(t, a, b)
}
