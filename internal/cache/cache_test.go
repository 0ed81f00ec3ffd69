package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := New[uint, string](time.Minute)

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Set(1, "a")
	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	c.Set(1, "b")
	v, _ = c.Get(1)
	assert.Equal(t, "b", v)
}

func TestCacheExpiry(t *testing.T) {
	c := New[uint, string](10 * time.Millisecond)
	c.Set(1, "a")

	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestCacheZeroTTLDisables(t *testing.T) {
	c := New[uint, string](0)
	c.Set(1, "a")
	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestCacheDeleteAndFlush(t *testing.T) {
	c := New[uint, string](time.Minute)
	c.Set(1, "a")
	c.Set(2, "b")

	c.Delete(1)
	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(2)
	assert.True(t, ok)

	c.Flush()
	_, ok = c.Get(2)
	assert.False(t, ok)
}
