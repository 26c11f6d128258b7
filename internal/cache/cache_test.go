package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestNewCache(t *testing.T) {
	t.Run("String cache", func(t *testing.T) {
		cache := NewCache[string, string]()
		if cache == nil {
			t.Fatal("Expected non-nil cache")
		}
		if cache.items == nil {
			t.Fatal("Expected items map to be initialized")
		}
	})

	t.Run("Integer cache", func(t *testing.T) {
		cache := NewCache[int, string]()
		if cache == nil {
			t.Fatal("Expected non-nil cache")
		}
	})
}

func TestCache_BasicOperations(t *testing.T) {
	cache := NewCache[string, string]()

	t.Run("Set and Get", func(t *testing.T) {
		key := "test-key"
		value := "test-value"

		cache.Set(key, value)

		got, exists := cache.Get(key)
		if !exists {
			t.Error("Expected key to exist")
		}
		if got != value {
			t.Errorf("Expected %q, got %q", value, got)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, exists := cache.Get("non-existent")
		if exists {
			t.Error("Expected key to not exist")
		}
	})

	t.Run("Overwrite existing key", func(t *testing.T) {
		key := "overwrite-key"

		cache.Set(key, "value1")
		cache.Set(key, "value2")

		got, exists := cache.Get(key)
		if !exists {
			t.Error("Expected key to exist")
		}
		if got != "value2" {
			t.Errorf("Expected %q, got %q", "value2", got)
		}
	})
}

func TestCache_Delete(t *testing.T) {
	cache := NewCache[string, string]()

	t.Run("Delete existing key", func(t *testing.T) {
		cache.Set("delete-key", "delete-value")
		cache.Delete("delete-key")

		_, exists := cache.Get("delete-key")
		if exists {
			t.Error("Expected key to be deleted")
		}
	})

	t.Run("Delete non-existent key", func(t *testing.T) {
		// Should not panic
		cache.Delete("non-existent")
	})
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache[string, string]()

	t.Run("Clear populated cache", func(t *testing.T) {
		cache.Set("key1", "value1")
		cache.Set("key2", "value2")
		cache.Set("key3", "value3")

		cache.Clear()

		_, exists1 := cache.Get("key1")
		_, exists2 := cache.Get("key2")
		_, exists3 := cache.Get("key3")

		if exists1 || exists2 || exists3 {
			t.Error("Expected all keys to be cleared")
		}
	})

	t.Run("Clear empty cache", func(t *testing.T) {
		cache.Clear() // Should not panic
	})
}

func TestCache_SetTo(t *testing.T) {
	cache := NewCache[string, string]()

	t.Run("SetTo replaces existing items", func(t *testing.T) {
		cache.Set("old1", "oldvalue1")
		cache.Set("old2", "oldvalue2")

		newItems := map[string]string{
			"new1": "newvalue1",
			"new2": "newvalue2",
		}
		cache.SetTo(newItems)

		_, exists1 := cache.Get("old1")
		_, exists2 := cache.Get("old2")
		if exists1 || exists2 {
			t.Error("Expected old items to be replaced")
		}

		got1, exists1 := cache.Get("new1")
		got2, exists2 := cache.Get("new2")
		if !exists1 || !exists2 {
			t.Error("Expected new items to exist")
		}
		if got1 != "newvalue1" || got2 != "newvalue2" {
			t.Error("Expected new values to be set correctly")
		}
	})

	t.Run("SetTo with empty map", func(t *testing.T) {
		cache.Set("test", "value")
		cache.SetTo(map[string]string{})

		_, exists := cache.Get("test")
		if exists {
			t.Error("Expected cache to be empty after SetTo with empty map")
		}
	})
}

func TestCache_Concurrency(t *testing.T) {
	cache := NewCache[int, string]()
	const numGoroutines = 100
	const numOperations = 1000

	t.Run("Concurrent reads and writes", func(t *testing.T) {
		var wg sync.WaitGroup

		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := 0; j < numOperations; j++ {
					key := id*numOperations + j
					cache.Set(key, fmt.Sprintf("value-%d-%d", id, j))
				}
			}(i)
		}

		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := 0; j < numOperations; j++ {
					key := id*numOperations + j
					cache.Get(key) // Don't check result as it may not exist yet
				}
			}(i)
		}

		wg.Wait()
	})

	t.Run("Concurrent clear operations", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				cache.Clear()
			}()
		}

		wg.Wait()
	})
}

func TestRenderedPreviewCache(t *testing.T) {
	ClearRenderedPreviewCache()

	t.Run("Set and get rendered preview", func(t *testing.T) {
		SetRenderedPreview("test-hash", "github", "<h1>Test</h1>")

		cached, found := GetRenderedPreview("test-hash", "github")
		if !found {
			t.Error("Expected cached content to be found")
		}
		if cached != "<h1>Test</h1>" {
			t.Errorf("Expected HTML %q, got %q", "<h1>Test</h1>", cached)
		}
	})

	t.Run("Different content hash creates separate entries", func(t *testing.T) {
		SetRenderedPreview("hash1", "monokai", "<h1>Content 1</h1>")
		SetRenderedPreview("hash2", "monokai", "<h1>Content 2</h1>")

		cached1, found1 := GetRenderedPreview("hash1", "monokai")
		cached2, found2 := GetRenderedPreview("hash2", "monokai")

		if !found1 || !found2 {
			t.Error("Expected both cached contents to be found")
		}
		if cached1 == cached2 {
			t.Error("Expected different HTML content for different hashes")
		}
	})

	t.Run("Different syntax theme creates separate entries", func(t *testing.T) {
		SetRenderedPreview("same-hash", "github", "github-render")
		SetRenderedPreview("same-hash", "monokai", "monokai-render")

		cached1, found1 := GetRenderedPreview("same-hash", "github")
		cached2, found2 := GetRenderedPreview("same-hash", "monokai")

		if !found1 || !found2 {
			t.Error("Expected both cached contents to be found")
		}
		if cached1 == cached2 {
			t.Error("Expected different content for different themes")
		}
	})

	t.Run("Clear rendered preview cache", func(t *testing.T) {
		SetRenderedPreview("hash1", "theme1", "html1")
		SetRenderedPreview("hash2", "theme2", "html2")

		ClearRenderedPreviewCache()

		_, found1 := GetRenderedPreview("hash1", "theme1")
		_, found2 := GetRenderedPreview("hash2", "theme2")

		if found1 || found2 {
			t.Error("Expected all cached content to be cleared")
		}
	})

	t.Run("Get non-existent cached content", func(t *testing.T) {
		_, found := GetRenderedPreview("non-existent", "theme")
		if found {
			t.Error("Expected non-existent content to not be found")
		}
	})
}

func BenchmarkCache_Set(b *testing.B) {
	cache := NewCache[int, string]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(i, fmt.Sprintf("value-%d", i))
	}
}

func BenchmarkCache_Get(b *testing.B) {
	cache := NewCache[int, string]()

	for i := 0; i < 10000; i++ {
		cache.Set(i, fmt.Sprintf("value-%d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(i % 10000)
	}
}
