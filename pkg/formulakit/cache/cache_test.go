package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New[string, int](4)
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
}

func TestPutAndGet(t *testing.T) {
	c := New[string, int](0)

	c.Put("one", 1)
	c.Put("two", 2)

	v, ok := c.Get("one")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = c.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestPutReplace(t *testing.T) {
	c := New[string, string](2)

	c.Put("key", "old")
	c.Put("key", "new")

	v, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, c.Len())
}

func TestEvictsOldestFirst(t *testing.T) {
	c := New[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestReplaceKeepsPosition(t *testing.T) {
	c := New[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10) // still the oldest
	c.Put("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok)
	v, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestDeleteThenReinsert(t *testing.T) {
	c := New[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Delete("a")
	c.Put("a", 3) // newest now, stale slot for the old "a" must not evict it
	c.Put("c", 4)

	_, ok := c.Get("b")
	assert.False(t, ok, "b is the oldest live entry")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, c.Len())
}

func TestDeleteNonexistent(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)

	c.Delete("missing")

	assert.Equal(t, 1, c.Len())
}

func TestDeleteCompactsStaleSlots(t *testing.T) {
	c := New[int, int](2)
	for i := range 100 {
		c.Put(i, i)
		c.Delete(i)
	}

	assert.Equal(t, 0, c.Len())
	assert.LessOrEqual(t, c.order.Len(), 2*2+1)
}

func TestUnbounded(t *testing.T) {
	c := New[int, int](0)
	for i := range 1000 {
		c.Put(i, i)
	}
	assert.Equal(t, 1000, c.Len())
	assert.Equal(t, 0, c.order.Len())
}

func TestPurge(t *testing.T) {
	c := New[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)

	c.Purge()

	assert.Equal(t, 0, c.Len())
	c.Put("c", 3)
	assert.Equal(t, 1, c.Len())
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](0)
	calls := 0
	factory := func() int {
		calls++
		return 42
	}

	assert.Equal(t, 42, c.GetOrCreate("key", factory))
	assert.Equal(t, 42, c.GetOrCreate("key", factory))
	assert.Equal(t, 1, calls)
}

func TestConcurrentGetOrCreate(t *testing.T) {
	c := New[string, int](8)
	var wg sync.WaitGroup
	var callCount atomic.Int32

	factory := func() int {
		callCount.Add(1)
		return 42
	}

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, 42, c.GetOrCreate("key", factory))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), callCount.Load())
	assert.Equal(t, 1, c.Len())
}

func TestConcurrentReadWrite(t *testing.T) {
	c := New[string, int](16)
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range 20 {
				key := fmt.Sprintf("k%d", (id+j)%40)
				switch j % 3 {
				case 0:
					c.Put(key, j)
				case 1:
					_, _ = c.Get(key)
				case 2:
					c.Delete(key)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 16)
}
