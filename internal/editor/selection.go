package editor

import (
	"github.com/debemdeboas/the-draft/internal/document"
)

// Tracker answers "what selection should the next operation use?" It
// combines, in priority order, the live surface selection, a cached
// snapshot updated opportunistically from surface events, and a default
// caret at end-of-document. A separate single-slot capture survives
// modal dialogs stealing focus.
type Tracker struct {
	surface Surface

	cached   *document.Selection
	captured *document.Selection

	unsubscribe func()
}

func NewTracker(surface Surface) *Tracker {
	t := &Tracker{surface: surface}
	t.unsubscribe = surface.Subscribe(t.handle)
	return t
}

func (t *Tracker) handle(ev Event) {
	switch ev.Kind {
	case EventSelectionChange:
		if ev.Selection != nil {
			sel := *ev.Selection
			t.cached = &sel
			return
		}
		// The live selection reports none outstanding.
		t.cached = nil
	case EventContentChange, EventPointerUp, EventKeyUp:
		if sel, ok := t.surface.Selection(); ok {
			t.cached = &sel
		}
	}
}

// clamp revalidates a selection against the current document length.
// Cached offsets may be stale after content mutations.
func (t *Tracker) clamp(sel document.Selection) document.Selection {
	length := t.surface.Length()
	if sel.Index > length {
		sel.Index = length
	}
	if sel.Index < 0 {
		sel.Index = 0
	}
	if sel.End() > length {
		sel.Length = length - sel.Index
	}
	return sel
}

// Resolve returns the selection the next operation should use.
func (t *Tracker) Resolve() document.Selection {
	if sel, ok := t.surface.Selection(); ok {
		return t.clamp(sel)
	}
	if t.cached != nil {
		return t.clamp(*t.cached)
	}
	return document.Caret(t.surface.Length())
}

// Capture snapshots the resolved selection at the moment a
// focus-stealing action (a modal dialog) begins.
func (t *Tracker) Capture() {
	sel := t.Resolve()
	t.captured = &sel
}

// Consume returns and clears the captured selection. ok is false when
// no capture is outstanding.
func (t *Tracker) Consume() (document.Selection, bool) {
	if t.captured == nil {
		return document.Selection{}, false
	}
	sel := t.clamp(*t.captured)
	t.captured = nil
	return sel, true
}

// Close tears down the surface subscription.
func (t *Tracker) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}
