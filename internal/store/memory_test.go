package store

import (
	"errors"
	"testing"
)

func TestMemoryStoreBasicOperations(t *testing.T) {
	st := NewMemoryStore(0)

	if _, ok := st.Get("missing"); ok {
		t.Error("Expected a miss for an unknown key")
	}

	if err := st.Set("key", "value"); err != nil {
		t.Fatalf("Error setting key: %v", err)
	}
	if got, ok := st.Get("key"); !ok || got != "value" {
		t.Errorf("Expected value, got %q (ok=%v)", got, ok)
	}

	if err := st.Set("key", "updated"); err != nil {
		t.Fatalf("Error overwriting key: %v", err)
	}
	if got, _ := st.Get("key"); got != "updated" {
		t.Errorf("Expected overwritten value, got %q", got)
	}

	st.Remove("key")
	if _, ok := st.Get("key"); ok {
		t.Error("Expected the key to be removed")
	}

	st.Remove("missing") // no-op
}

func TestMemoryStoreQuota(t *testing.T) {
	st := NewMemoryStore(10)

	if err := st.Set("a", "12345"); err != nil {
		t.Fatalf("Error setting within quota: %v", err)
	}

	err := st.Set("b", "123456")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Expected ErrQuotaExceeded, got %v", err)
	}
	if _, ok := st.Get("b"); ok {
		t.Error("Expected the rejected value to be absent")
	}

	// Overwriting counts the new value in place of the old one.
	if err := st.Set("a", "1234567890"); err != nil {
		t.Errorf("Expected an overwrite within quota to succeed, got %v", err)
	}

	st.Remove("a")
	if err := st.Set("b", "123456"); err != nil {
		t.Errorf("Expected room after removal, got %v", err)
	}
}
