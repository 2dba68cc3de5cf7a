package keymutex_test

import (
	"sync"
	"testing"

	"fulfillment/internal/pkg/keymutex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyMutex_SerializesSameKey(t *testing.T) {
	km := keymutex.New()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			km.Lock("restaurant-1")
			defer km.Unlock("restaurant-1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestKeyMutex_IndependentKeysDoNotBlock(t *testing.T) {
	km := keymutex.New()

	km.Lock("restaurant-1")
	defer km.Unlock("restaurant-1")

	// Must complete even though restaurant-1 stays locked.
	done := make(chan struct{})
	go func() {
		km.Lock("restaurant-2")
		km.Unlock("restaurant-2")
		close(done)
	}()

	<-done
}

func TestKeyMutex_UnlockUnknownKeyPanics(t *testing.T) {
	km := keymutex.New()

	require.Panics(t, func() {
		km.Unlock("never-locked")
	})
}
