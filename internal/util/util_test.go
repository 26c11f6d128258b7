package util

import "testing"

func TestContentHash(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		a := ContentHash([]byte("hello"))
		b := ContentHash([]byte("hello"))
		if a != b {
			t.Errorf("Expected identical hashes, got %q and %q", a, b)
		}
	})

	t.Run("Distinct content", func(t *testing.T) {
		a := ContentHash([]byte("hello"))
		b := ContentHash([]byte("hello!"))
		if a == b {
			t.Error("Expected different hashes for different content")
		}
	})

	t.Run("Hex encoded sha256", func(t *testing.T) {
		h := ContentHash([]byte(""))
		if len(h) != 64 {
			t.Errorf("Expected 64 hex characters, got %d", len(h))
		}
	})

	t.Run("String variant matches bytes", func(t *testing.T) {
		if ContentHashString("draft") != ContentHash([]byte("draft")) {
			t.Error("Expected string and byte variants to agree")
		}
	})
}
