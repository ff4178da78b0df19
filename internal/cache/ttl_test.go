package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTTL_GetSet(t *testing.T) {
	clk := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewTTL[string, int](10*time.Minute, clk.Now)

	_, ok := c.Get("berlin")
	assert.False(t, ok)

	c.Set("berlin", 21)
	v, ok := c.Get("berlin")
	assert.True(t, ok)
	assert.Equal(t, 21, v)
}

func TestTTL_Expiry(t *testing.T) {
	clk := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewTTL[string, int](10*time.Minute, clk.Now)

	c.Set("berlin", 21)

	clk.Advance(10*time.Minute - time.Second)
	_, ok := c.Get("berlin")
	assert.True(t, ok)

	clk.Advance(time.Second)
	_, ok = c.Get("berlin")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on read")
}

func TestTTL_Purge(t *testing.T) {
	clk := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewTTL[string, int](time.Minute, clk.Now)

	c.Set("a", 1)
	clk.Advance(30 * time.Second)
	c.Set("b", 2)
	clk.Advance(45 * time.Second)

	assert.Equal(t, 1, c.Purge())
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("b")
	assert.True(t, ok)
}

func TestTTL_Delete(t *testing.T) {
	c := NewTTL[int, string](time.Minute, nil)
	c.Set(1, "x")
	c.Delete(1)

	_, ok := c.Get(1)
	assert.False(t, ok)
}
