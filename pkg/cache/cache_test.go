package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	c := NewCache()

	c.Set("key", "value")
	value, found := c.Get("key")
	require.True(t, found)
	assert.Equal(t, "value", value)
}

func TestGetMissing(t *testing.T) {
	c := NewCache()

	_, found := c.Get("absent")
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	c := NewCache()

	c.Set("key", "value")
	c.Delete("key")

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestExpiration(t *testing.T) {
	c := NewCache()

	c.SetWithExpiration("key", "value", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestFlush(t *testing.T) {
	c := NewCache()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Flush()

	assert.Equal(t, 0, c.Count())
}
