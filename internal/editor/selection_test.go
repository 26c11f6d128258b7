package editor

import (
	"testing"

	"github.com/debemdeboas/the-draft/internal/document"
)

func newTrackedSurface(t *testing.T, text string) (*HeadlessSurface, *Tracker) {
	t.Helper()
	surface := NewHeadlessSurface()
	if text != "" {
		if err := surface.InsertText(0, text, nil); err != nil {
			t.Fatalf("Error seeding surface: %v", err)
		}
	}
	tracker := NewTracker(surface)
	t.Cleanup(tracker.Close)
	return surface, tracker
}

func TestTrackerResolveLiveSelection(t *testing.T) {
	surface, tracker := newTrackedSurface(t, "hello world")

	surface.SetSelection(document.Selection{Index: 2, Length: 3})

	if got := tracker.Resolve(); got != (document.Selection{Index: 2, Length: 3}) {
		t.Errorf("Expected live selection {2,3}, got %+v", got)
	}
}

func TestTrackerResolveDefaultsToEndCaret(t *testing.T) {
	_, tracker := newTrackedSurface(t, "hello world")

	if got := tracker.Resolve(); got != document.Caret(11) {
		t.Errorf("Expected end caret {11,0}, got %+v", got)
	}
}

func TestTrackerBlurFallsBackToEndCaret(t *testing.T) {
	surface, tracker := newTrackedSurface(t, "hello world")

	surface.SetSelection(document.Selection{Index: 2, Length: 3})
	surface.Blur()

	// The blur reported no outstanding selection, invalidating the cache.
	if got := tracker.Resolve(); got != document.Caret(11) {
		t.Errorf("Expected end caret after blur, got %+v", got)
	}
}

func TestTrackerCaptureSurvivesBlur(t *testing.T) {
	surface, tracker := newTrackedSurface(t, "hello world")

	surface.SetSelection(document.Selection{Index: 2, Length: 3})
	tracker.Capture()
	surface.Blur()

	sel, ok := tracker.Consume()
	if !ok {
		t.Fatal("Expected an outstanding capture")
	}
	if sel != (document.Selection{Index: 2, Length: 3}) {
		t.Errorf("Expected captured selection {2,3}, got %+v", sel)
	}

	if _, ok := tracker.Consume(); ok {
		t.Error("Expected capture to be cleared after consumption")
	}
}

func TestTrackerClampsStaleOffsets(t *testing.T) {
	surface, tracker := newTrackedSurface(t, "hello world")

	surface.SetSelection(document.Selection{Index: 8, Length: 3})
	if err := surface.DeleteRange(5, 6); err != nil {
		t.Fatalf("Error deleting range: %v", err)
	}

	got := tracker.Resolve()
	if got.Index != 5 || got.End() > surface.Length() {
		t.Errorf("Expected selection clamped to document length 5, got %+v", got)
	}
}

func TestTrackerCapturedSelectionClampedOnConsume(t *testing.T) {
	surface, tracker := newTrackedSurface(t, "hello world")

	surface.SetSelection(document.Selection{Index: 6, Length: 5})
	tracker.Capture()
	surface.Blur()
	if err := surface.DeleteRange(3, 8); err != nil {
		t.Fatalf("Error deleting range: %v", err)
	}

	sel, ok := tracker.Consume()
	if !ok {
		t.Fatal("Expected an outstanding capture")
	}
	if sel.End() > surface.Length() {
		t.Errorf("Expected consumed selection within document bounds, got %+v against length %d", sel, surface.Length())
	}
}

func TestTrackerCachesFromPointerEvents(t *testing.T) {
	surface, tracker := newTrackedSurface(t, "hello world")

	surface.Click(4)

	if got := tracker.Resolve(); got != document.Caret(4) {
		t.Errorf("Expected caret {4,0} from click, got %+v", got)
	}
}
