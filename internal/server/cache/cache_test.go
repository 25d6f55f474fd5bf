package cache

import (
	"sync"
	"testing"
	"time"
)

// TestCache_BasicOperations tests Get, Set, and Delete.
func TestCache_BasicOperations(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	t.Run("Set and Get", func(t *testing.T) {
		c.Set("key1", "value1")

		val, found := c.Get("key1")
		if !found {
			t.Error("expected key1 to be found")
		}
		if val != "value1" {
			t.Errorf("expected value1, got %v", val)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, found := c.Get("nonexistent")
		if found {
			t.Error("expected nonexistent key to not be found")
		}
	})

	t.Run("Set and Delete", func(t *testing.T) {
		c.Set("key2", "value2")
		c.Delete("key2")

		_, found := c.Get("key2")
		if found {
			t.Error("expected key2 to be deleted")
		}
	})
}

// TestCache_ItemKey tests key construction for single items.
func TestCache_ItemKey(t *testing.T) {
	key := ItemKey("4c9f6f3e-0001-4d7a-9b3d-2f6f1f2a0001")
	if key != "items:id:4c9f6f3e-0001-4d7a-9b3d-2f6f1f2a0001" {
		t.Errorf("unexpected item key %q", key)
	}
	if key == ListKey {
		t.Error("item key must not collide with the list key")
	}
}

// TestCache_InvalidateItem tests that a mutation evicts both the item
// entry and the listing.
func TestCache_InvalidateItem(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	c.Set(ListKey, []string{"all items"})
	c.Set(ItemKey("abc"), "item abc")
	c.Set(ItemKey("def"), "item def")

	c.InvalidateItem("abc")

	if _, found := c.Get(ItemKey("abc")); found {
		t.Error("expected mutated item entry to be evicted")
	}
	if _, found := c.Get(ListKey); found {
		t.Error("expected listing to be evicted")
	}
	if _, found := c.Get(ItemKey("def")); !found {
		t.Error("expected unrelated item entry to survive")
	}
}

// TestCache_SetWithTTL tests custom TTL.
func TestCache_SetWithTTL(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	c.SetWithTTL("expiring", "value", 50*time.Millisecond)

	_, found := c.Get("expiring")
	if !found {
		t.Error("expected key to exist immediately")
	}

	time.Sleep(100 * time.Millisecond)

	_, found = c.Get("expiring")
	if found {
		t.Error("expected key to be expired")
	}
}

// TestCache_Clear tests clearing all items.
func TestCache_Clear(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")

	if count := c.ItemCount(); count != 3 {
		t.Errorf("expected 3 items, got %d", count)
	}

	c.Clear()

	if count := c.ItemCount(); count != 0 {
		t.Errorf("expected 0 items after clear, got %d", count)
	}
}

// TestCache_GetStats tests hit/miss accounting.
func TestCache_GetStats(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	c.Set("key1", "value1")
	c.Get("key1")        // hit
	c.Get("key1")        // hit
	c.Get("nonexistent") // miss

	stats := c.GetStats()
	if stats.ItemCount != 1 {
		t.Errorf("expected ItemCount=1, got %d", stats.ItemCount)
	}
	if stats.Hits != 2 {
		t.Errorf("expected Hits=2, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("expected Misses=1, got %d", stats.Misses)
	}
}

// TestCache_ConcurrentAccess tests thread-safety with concurrent operations.
func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	const numGoroutines = 50
	const numOperations = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 3)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				c.Set(ItemKey(string(rune('a'+id%26))), j)
			}
		}(i)
	}
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				c.Get(ItemKey(string(rune('a' + id%26))))
			}
		}(i)
	}
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				c.InvalidateItem(string(rune('a' + id%26)))
			}
		}(i)
	}

	wg.Wait()
	// Test passes if no race or panic occurred.
}

// TestCache_Overwrite tests overwriting existing keys.
func TestCache_Overwrite(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	c.Set("key", "value1")
	c.Set("key", "value2")

	val, _ := c.Get("key")
	if val != "value2" {
		t.Errorf("expected value2, got %v", val)
	}
	if count := c.ItemCount(); count != 1 {
		t.Errorf("expected 1 item, got %d", count)
	}
}
