package caching

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarmingLockTryLockIsExclusivePerKey(t *testing.T) {
	lock := NewWarmingLock()

	assert.True(t, lock.TryLock("store-a"))
	assert.False(t, lock.TryLock("store-a"))
	assert.True(t, lock.TryLock("store-b"))

	lock.Unlock("store-a")
	assert.True(t, lock.TryLock("store-a"))
}

func TestWarmingLockUnlockUnheldKeyIsHarmless(t *testing.T) {
	lock := NewWarmingLock()

	lock.Unlock("never-locked")
	assert.True(t, lock.TryLock("never-locked"))
}

func TestWarmingLockConcurrentAcquisitionAdmitsOne(t *testing.T) {
	lock := NewWarmingLock()

	var wg sync.WaitGroup
	acquired := make(chan bool, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acquired <- lock.TryLock("store-a")
		}()
	}
	wg.Wait()
	close(acquired)

	winners := 0
	for ok := range acquired {
		if ok {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}
