package store

import (
	"path/filepath"
	"strings"
	"testing"
)

func newTestSQLiteStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("Error opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t, filepath.Join(t.TempDir(), "test.db"))

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
}

func TestSQLiteStoreCompressesTransparently(t *testing.T) {
	st := newTestSQLiteStore(t, filepath.Join(t.TempDir(), "test.db"))

	// Large repetitive payloads exercise the compression path.
	payload := strings.Repeat(`{"ops":[{"insert":"hello world\n"}]}`, 2000)
	if err := st.Set("draft", payload); err != nil {
		t.Fatalf("Error setting payload: %v", err)
	}
	if got, ok := st.Get("draft"); !ok || got != payload {
		t.Error("Expected the payload to survive the compression round trip")
	}
}

func TestSQLiteStorePersistsAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("Error opening store: %v", err)
	}
	if err := st.Set("key", "persisted"); err != nil {
		t.Fatalf("Error setting key: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Error closing store: %v", err)
	}

	reopened := newTestSQLiteStore(t, path)
	if got, ok := reopened.Get("key"); !ok || got != "persisted" {
		t.Errorf("Expected the value after reopening, got %q (ok=%v)", got, ok)
	}
}
