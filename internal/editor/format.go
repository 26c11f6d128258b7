package editor

import (
	"fmt"

	"github.com/debemdeboas/the-draft/internal/document"
)

// Formatter validates and applies format operations against the
// resolved selection.
type Formatter struct {
	surface Surface
	tracker *Tracker
}

func NewFormatter(surface Surface, tracker *Tracker) *Formatter {
	return &Formatter{surface: surface, tracker: tracker}
}

func isToggleAttr(attr string) bool {
	switch attr {
	case document.AttrBold, document.AttrItalic, document.AttrUnderline, document.AttrStrike:
		return true
	}
	return false
}

// requireRange resolves the selection and rejects carets: character- and
// line-level formats never apply silently at a caret.
func (f *Formatter) requireRange() (document.Selection, error) {
	sel := f.tracker.Resolve()
	if sel.IsCaret() {
		return document.Selection{}, ErrEmptySelection
	}
	return sel, nil
}

// caretAfter places the caret immediately after the formatted range and
// holds a format-neutral input mode so continued typing is not
// auto-formatted.
func (f *Formatter) caretAfter(sel document.Selection) {
	f.surface.SetSelection(document.Caret(sel.End()))
	f.surface.HoldNeutralFormat()
}

// Toggle flips a character-level attribute over the resolved range.
// A mixed-format range counts as disabled: any unformatted character
// means the whole range gets formatted.
func (f *Formatter) Toggle(attr string) error {
	if !isToggleAttr(attr) {
		return fmt.Errorf("not a toggle attribute: %s", attr)
	}
	sel, err := f.requireRange()
	if err != nil {
		return err
	}
	attrs, err := f.surface.Formats(sel.Index, sel.Length)
	if err != nil {
		return err
	}
	var value any = true
	if attrs.Enabled(attr) {
		value = false
	}
	if err := f.surface.FormatRange(sel.Index, sel.Length, attr, value); err != nil {
		return err
	}
	f.caretAfter(sel)
	return nil
}

// SetSize applies a 1-6 size ladder level over the resolved range.
// Level 0 clears the size with the false sentinel.
func (f *Formatter) SetSize(level int) error {
	var value any = false
	if level != 0 {
		size, ok := document.SizeForLevel(level)
		if !ok {
			return fmt.Errorf("invalid size level: %d", level)
		}
		value = size
	}
	sel, err := f.requireRange()
	if err != nil {
		return err
	}
	if err := f.surface.FormatRange(sel.Index, sel.Length, document.AttrSize, value); err != nil {
		return err
	}
	f.caretAfter(sel)
	return nil
}

// ToggleList applies or removes a line-level list attribute over every
// line touched by the resolved range.
func (f *Formatter) ToggleList(kind string) error {
	if kind != document.ListOrdered && kind != document.ListBullet {
		return fmt.Errorf("not a list kind: %s", kind)
	}
	sel, err := f.requireRange()
	if err != nil {
		return err
	}
	// List state rides on the newline runes, which most selections do
	// not cover; read it from the touched lines, not the selection.
	attrs, err := f.surface.LineFormats(sel.Index, sel.Length)
	if err != nil {
		return err
	}
	var value any = kind
	if current, _ := attrs[document.AttrList].(string); current == kind {
		value = false
	}
	if err := f.surface.FormatRange(sel.Index, sel.Length, document.AttrList, value); err != nil {
		return err
	}
	f.caretAfter(sel)
	return nil
}

// InsertLink applies a link over the captured or resolved range, or
// inserts new linked text at a caret. Link insertion is dialog-driven,
// so the modal capture takes priority over the live selection.
func (f *Formatter) InsertLink(text, href string) error {
	if href == "" {
		return fmt.Errorf("link url required")
	}
	sel, ok := f.tracker.Consume()
	if !ok {
		sel = f.tracker.Resolve()
	}
	if sel.Length > 0 {
		if err := f.surface.FormatRange(sel.Index, sel.Length, document.AttrLink, href); err != nil {
			return err
		}
		f.caretAfter(sel)
		return nil
	}
	if text == "" {
		text = href
	}
	attrs := document.Attributes{document.AttrLink: href}
	if err := f.surface.InsertText(sel.Index, text, attrs); err != nil {
		return err
	}
	f.caretAfter(document.Selection{Index: sel.Index, Length: len([]rune(text))})
	return nil
}
