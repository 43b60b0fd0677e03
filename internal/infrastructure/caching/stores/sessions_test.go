package stores

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

func TestSessionRoundTrip(t *testing.T) {
	ss := NewSessionsStore()
	ss.InitializeStore("store-1")

	ss.SetSession("store-1", &types.SessionData{
		SessionID:  "s-1",
		VisitorID:  "v-1",
		Language:   "en",
		ViewMode:   "grid",
		AbVariants: map[string]string{"t-1": "variant-b"},
	})

	session, found := ss.GetSession("store-1", "s-1")
	require.True(t, found)
	assert.Equal(t, "v-1", session.VisitorID)
	assert.Equal(t, "variant-b", session.AbVariants["t-1"])
	assert.False(t, session.ExpiresAt.IsZero())
}

func TestExpiredSessionIsMiss(t *testing.T) {
	ss := NewSessionsStore()
	ss.InitializeStore("store-1")

	ss.SetSession("store-1", &types.SessionData{
		SessionID: "s-1",
		VisitorID: "v-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	_, found := ss.GetSession("store-1", "s-1")
	assert.False(t, found)
}

func TestSessionCapEvictsOldest(t *testing.T) {
	original := config.MaxSessionsPerStore
	config.MaxSessionsPerStore = 2
	defer func() { config.MaxSessionsPerStore = original }()

	ss := NewSessionsStore()
	ss.InitializeStore("store-1")

	now := time.Now()
	for i := 1; i <= 3; i++ {
		ss.SetSession("store-1", &types.SessionData{
			SessionID:    fmt.Sprintf("s-%d", i),
			VisitorID:    "v-1",
			LastActivity: now.Add(time.Duration(i) * time.Minute),
		})
	}

	// The stalest session is dropped once the cap is hit
	_, found := ss.GetSession("store-1", "s-1")
	assert.False(t, found)
	_, found = ss.GetSession("store-1", "s-2")
	assert.True(t, found)
	_, found = ss.GetSession("store-1", "s-3")
	assert.True(t, found)
}

func TestVisitorSessionLinks(t *testing.T) {
	ss := NewSessionsStore()
	ss.InitializeStore("store-1")

	ss.SetSession("store-1", &types.SessionData{SessionID: "s-1", VisitorID: "v-1"})
	ss.SetSession("store-1", &types.SessionData{SessionID: "s-2", VisitorID: "v-1"})
	ss.SetSession("store-1", &types.SessionData{SessionID: "s-3", VisitorID: "v-2"})

	assert.ElementsMatch(t, []string{"s-1", "s-2"}, ss.GetSessionsByVisitor("store-1", "v-1"))

	ss.RemoveSession("store-1", "s-1")
	assert.Equal(t, []string{"s-2"}, ss.GetSessionsByVisitor("store-1", "v-1"))
}

func TestKnownVisitors(t *testing.T) {
	ss := NewSessionsStore()
	ss.InitializeStore("store-1")

	assert.False(t, ss.IsKnownVisitor("store-1", "v-1"))

	ss.SetKnownVisitor("store-1", "v-1", true)
	assert.True(t, ss.IsKnownVisitor("store-1", "v-1"))

	ss.LoadKnownVisitors("store-1", map[string]bool{"v-2": true, "v-3": true})
	assert.True(t, ss.IsKnownVisitor("store-1", "v-2"))
	assert.True(t, ss.IsKnownVisitor("store-1", "v-3"))
}

func TestPurgeExpiredSessions(t *testing.T) {
	ss := NewSessionsStore()
	ss.InitializeStore("store-1")

	ss.SetSession("store-1", &types.SessionData{SessionID: "s-live", VisitorID: "v-1"})
	ss.SetSession("store-1", &types.SessionData{
		SessionID: "s-dead",
		VisitorID: "v-1",
		ExpiresAt: time.Now().Add(-time.Hour),
	})

	purged := ss.PurgeExpiredSessions("store-1")
	assert.Equal(t, 1, purged)
	assert.Equal(t, []string{"s-live"}, ss.GetAllSessionIDs("store-1"))
	assert.Equal(t, []string{"s-live"}, ss.GetSessionsByVisitor("store-1", "v-1"))
}
