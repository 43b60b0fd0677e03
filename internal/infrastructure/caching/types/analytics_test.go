package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHourKeyUsesUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	local := time.Date(2026, 3, 14, 22, 30, 0, 0, est)

	// 22:30 EST is 03:30 UTC on the next day
	assert.Equal(t, "2026-03-15-03", FormatHourKey(local))
}

func TestCurrentHourKeyTruncatesToHour(t *testing.T) {
	now := time.Date(2026, 7, 1, 9, 59, 59, 0, time.UTC)
	assert.Equal(t, "2026-07-01-09", CurrentHourKey(now))
}

func TestHourKeysForRange(t *testing.T) {
	keys := HourKeysForRange(2, 0)
	require.Len(t, keys, 3)

	now := time.Now().UTC()
	assert.Equal(t, FormatHourKey(now), keys[0])
	assert.Equal(t, FormatHourKey(now.Add(-time.Hour)), keys[1])
	assert.Equal(t, FormatHourKey(now.Add(-2*time.Hour)), keys[2])
}

func TestHourKeysForRangeSwapsInvertedBounds(t *testing.T) {
	assert.Equal(t, HourKeysForRange(0, 2), HourKeysForRange(2, 0))
}
