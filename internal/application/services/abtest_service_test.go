package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
)

func weightedTest(weights ...int) *catalog.AbTest {
	test := &catalog.AbTest{ID: "test-1"}
	for i, w := range weights {
		test.Variants = append(test.Variants, &catalog.AbTestVariant{
			ID:     string(rune('a' + i)),
			Name:   string(rune('a' + i)),
			Weight: w,
		})
	}
	return test
}

func TestPickVariantIsDeterministic(t *testing.T) {
	test := weightedTest(50, 50)

	first := pickVariant(test, "session-123")
	assert.NotNil(t, first)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.ID, pickVariant(test, "session-123").ID)
	}
}

func TestPickVariantSpreadsAcrossSessions(t *testing.T) {
	test := weightedTest(50, 50)

	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		v := pickVariant(test, "session-"+string(rune('a'+i%26))+string(rune('a'+i/26)))
		seen[v.ID] = true
	}
	assert.Len(t, seen, 2)
}

func TestPickVariantSkipsZeroWeight(t *testing.T) {
	test := weightedTest(0, 100)

	for i := 0; i < 20; i++ {
		v := pickVariant(test, "session-"+string(rune('a'+i)))
		assert.Equal(t, "b", v.ID)
	}
}

func TestPickVariantNoWeightReturnsNil(t *testing.T) {
	assert.Nil(t, pickVariant(weightedTest(0, 0), "session-1"))
}

func TestValidateVariants(t *testing.T) {
	assert.Error(t, validateVariants(nil))
	assert.Error(t, validateVariants([]*catalog.AbTestVariant{{Name: "only", Weight: 1}}))
	assert.Error(t, validateVariants([]*catalog.AbTestVariant{
		{Name: "a", Weight: 1}, {Name: "", Weight: 1},
	}))
	assert.Error(t, validateVariants([]*catalog.AbTestVariant{
		{Name: "a", Weight: -1}, {Name: "b", Weight: 5},
	}))
	assert.Error(t, validateVariants([]*catalog.AbTestVariant{
		{Name: "a", Weight: 0}, {Name: "b", Weight: 0},
	}))
	assert.NoError(t, validateVariants([]*catalog.AbTestVariant{
		{Name: "a", Weight: 90}, {Name: "b", Weight: 10},
	}))
}
