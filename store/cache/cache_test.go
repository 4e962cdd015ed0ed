package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_BasicOperations(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute, MaxItems: 100})
	defer c.Close()

	t.Run("SetAndGet", func(t *testing.T) {
		c.Set("key1", "value1")

		val, ok := c.Get("key1")
		assert.True(t, ok)
		assert.Equal(t, "value1", val)
	})

	t.Run("GetNonExistent", func(t *testing.T) {
		val, ok := c.Get("nonexistent")
		assert.False(t, ok)
		assert.Nil(t, val)
	})

	t.Run("UpdateExisting", func(t *testing.T) {
		c.Set("key2", "original")
		c.Set("key2", "updated")

		val, ok := c.Get("key2")
		assert.True(t, ok)
		assert.Equal(t, "updated", val)
	})

	t.Run("Delete", func(t *testing.T) {
		c.Set("key3", "value3")
		c.Delete("key3")

		_, ok := c.Get("key3")
		assert.False(t, ok)
	})
}

func TestCache_Expiration(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute, MaxItems: 100})
	defer c.Close()

	c.SetWithTTL("expiring", "value", 30*time.Millisecond)

	val, ok := c.Get("expiring")
	assert.True(t, ok)
	assert.Equal(t, "value", val)

	time.Sleep(40 * time.Millisecond)

	_, ok = c.Get("expiring")
	assert.False(t, ok)
}

func TestCache_Eviction(t *testing.T) {
	evicted := []string{}
	c := New(Config{
		DefaultTTL: time.Minute,
		MaxItems:   3,
		OnEviction: func(key string, value any) { evicted = append(evicted, key) },
	})
	defer c.Close()

	c.Set("key1", 1)
	c.Set("key2", 2)
	c.Set("key3", 3)
	assert.Equal(t, 3, c.Size())

	// Touch key1 so key2 becomes the eviction candidate.
	c.Get("key1")
	c.Set("key4", 4)

	assert.Equal(t, 3, c.Size())
	assert.Contains(t, evicted, "key2")

	_, ok := c.Get("key1")
	assert.True(t, ok)
	_, ok = c.Get("key2")
	assert.False(t, ok)
}
