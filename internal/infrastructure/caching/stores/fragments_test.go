package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
)

func TestBuildFragmentKey(t *testing.T) {
	fs := NewFragmentsStore()

	key := fs.BuildFragmentKey("l-1", types.FragmentVariant{PageType: "product", ViewMode: "grid", Language: "en"})
	assert.Equal(t, "l-1:product:grid:en", key)

	withQuery := fs.BuildFragmentKey("l-1", types.FragmentVariant{PageType: "category", ViewMode: "list", Language: "fr", QueryHash: "abc123"})
	assert.Equal(t, "l-1:category:list:fr:abc123", withQuery)
}

func TestFragmentRoundTrip(t *testing.T) {
	fs := NewFragmentsStore()
	fs.InitializeStore("store-1")

	variant := types.FragmentVariant{PageType: "home", ViewMode: "grid", Language: "en"}
	fs.SetFragment("store-1", "l-1", variant, "<section>home</section>", []string{"layout:l-1"})

	fragment, found := fs.GetFragment("store-1", "l-1", variant)
	require.True(t, found)
	assert.Equal(t, "<section>home</section>", fragment.HTML)
	assert.Equal(t, "l-1", fragment.LayoutID)

	// Different variant of the same layout is a separate entry
	_, found = fs.GetFragment("store-1", "l-1", types.FragmentVariant{PageType: "home", ViewMode: "grid", Language: "fr"})
	assert.False(t, found)
}

func TestExpiredFragmentIsMiss(t *testing.T) {
	fs := NewFragmentsStore()
	fs.InitializeStore("store-1")

	variant := types.FragmentVariant{PageType: "home", ViewMode: "grid", Language: "en"}
	fs.SetFragment("store-1", "l-1", variant, "<a>", nil)

	cache, exists := fs.GetStoreCache("store-1")
	require.True(t, exists)
	key := fs.BuildFragmentKey("l-1", variant)
	cache.Mu.Lock()
	cache.Fragments[key].LastUpdated = time.Now().Add(-2 * time.Hour)
	cache.Mu.Unlock()

	_, found := fs.GetFragment("store-1", "l-1", variant)
	assert.False(t, found)
}

func TestInvalidateByDependency(t *testing.T) {
	fs := NewFragmentsStore()
	fs.InitializeStore("store-1")

	gridVariant := types.FragmentVariant{PageType: "category", ViewMode: "grid", Language: "en"}
	listVariant := types.FragmentVariant{PageType: "category", ViewMode: "list", Language: "en"}
	homeVariant := types.FragmentVariant{PageType: "home", ViewMode: "grid", Language: "en"}

	fs.SetFragment("store-1", "l-1", gridVariant, "<grid>", []string{"product:p-1", "category:c-1"})
	fs.SetFragment("store-1", "l-1", listVariant, "<list>", []string{"product:p-1"})
	fs.SetFragment("store-1", "l-2", homeVariant, "<home>", []string{"category:c-1"})

	fs.InvalidateByDependency("store-1", "product:p-1")

	_, found := fs.GetFragment("store-1", "l-1", gridVariant)
	assert.False(t, found)
	_, found = fs.GetFragment("store-1", "l-1", listVariant)
	assert.False(t, found)

	// Fragments without the dependency survive
	_, found = fs.GetFragment("store-1", "l-2", homeVariant)
	assert.True(t, found)
}

func TestInvalidateByDependencyCleansOrphanedEntries(t *testing.T) {
	fs := NewFragmentsStore()
	fs.InitializeStore("store-1")

	variant := types.FragmentVariant{PageType: "product", ViewMode: "grid", Language: "en"}
	fs.SetFragment("store-1", "l-1", variant, "<a>", []string{"product:p-1", "category:c-1"})

	fs.InvalidateByDependency("store-1", "product:p-1")

	// The deleted fragment's key must not linger under other entities
	_, found := fs.GetFragmentDependencies("store-1", "category:c-1")
	assert.False(t, found)
}

func TestInvalidateByPattern(t *testing.T) {
	fs := NewFragmentsStore()
	fs.InitializeStore("store-1")

	fs.SetFragment("store-1", "l-1", types.FragmentVariant{PageType: "home", ViewMode: "grid", Language: "en"}, "<a>", nil)
	fs.SetFragment("store-1", "l-1", types.FragmentVariant{PageType: "home", ViewMode: "grid", Language: "fr"}, "<b>", nil)
	fs.SetFragment("store-1", "l-2", types.FragmentVariant{PageType: "home", ViewMode: "grid", Language: "en"}, "<c>", nil)

	fs.InvalidateByPattern("store-1", "l-1:*")

	keys := fs.GetAllFragmentKeys("store-1")
	require.Len(t, keys, 1)
	assert.Equal(t, "l-2:home:grid:en", keys[0])
}

func TestPurgeExpiredFragments(t *testing.T) {
	fs := NewFragmentsStore()
	fs.InitializeStore("store-1")

	fresh := types.FragmentVariant{PageType: "home", ViewMode: "grid", Language: "en"}
	stale := types.FragmentVariant{PageType: "home", ViewMode: "list", Language: "en"}
	fs.SetFragment("store-1", "l-1", fresh, "<a>", nil)
	fs.SetFragment("store-1", "l-1", stale, "<b>", nil)

	cache, _ := fs.GetStoreCache("store-1")
	staleKey := fs.BuildFragmentKey("l-1", stale)
	cache.Mu.Lock()
	cache.Fragments[staleKey].LastUpdated = time.Now().Add(-25 * time.Hour)
	cache.Mu.Unlock()

	purged := fs.PurgeExpiredFragments("store-1")
	assert.Equal(t, 1, purged)

	_, found := fs.GetFragment("store-1", "l-1", fresh)
	assert.True(t, found)
}
