package sync

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShardedMutex_SameKeySerializes(t *testing.T) {
	m := NewShardedMutex()
	counter := 0

	var wg sync.WaitGroup
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Do("property-1|10.0.0.1", func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, counter)
}

func TestShardedMutex_DoReturnsError(t *testing.T) {
	m := NewShardedMutex()
	want := errors.New("insert failed")

	assert.ErrorIs(t, m.Do("k", func() error { return want }), want)

	// The shard must be released after an error.
	m.Lock("k")
	m.Unlock("k")
}

func TestShardedMutex_ShardInRange(t *testing.T) {
	m := NewShardedMutex()
	for _, key := range []string{"", "a", "property-42|user-7", "🏠"} {
		shard := m.shardFor(key)
		assert.GreaterOrEqual(t, shard, 0)
		assert.Less(t, shard, len(m.shards))
	}
}
