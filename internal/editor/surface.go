// Package editor implements the editing-session engine: selection
// tracking across focus changes, format application, the embedded-image
// lifecycle and the session glue feeding draft persistence.
package editor

import (
	"github.com/rs/zerolog"

	"github.com/debemdeboas/the-draft/internal/document"
)

var editorLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	editorLogger = l
}

type EventKind int

const (
	EventSelectionChange EventKind = iota
	EventContentChange
	EventPointerUp
	EventKeyUp
	EventEmbedRendered
)

// Event is a notification from the editing surface. Selection is set on
// selection events when a selection exists, HTML on content changes and
// EmbedID when a deferred render pass materializes an embed.
type Event struct {
	Kind      EventKind
	Selection *document.Selection
	HTML      string
	EmbedID   string
}

type Handler func(Event)

// Surface is the rendering surface the engine edits through. A real
// deployment backs it with a browser editing widget; HeadlessSurface
// backs it with a Document directly.
type Surface interface {
	// Selection returns the live selection. ok is false when focus is
	// elsewhere or no selection is outstanding.
	Selection() (sel document.Selection, ok bool)
	SetSelection(sel document.Selection)

	InsertText(index int, text string, attrs document.Attributes) error
	InsertEmbed(index int, embed document.Embed) error
	DeleteRange(index, length int) error
	FormatRange(index, length int, attr string, value any) error
	Formats(index, length int) (document.Attributes, error)
	LineFormats(index, length int) (document.Attributes, error)
	SetEmbedSize(index int, width, height string) error
	Length() int

	HTML() string
	Content() (string, error)
	EmbedAt(index int) (document.Embed, bool)
	FindEmbed(id string) (index int, embed document.Embed, ok bool)

	// OffsetAt maps a pointer position to a document offset,
	// best-effort. ok is false when no mapping is available.
	OffsetAt(x, y int) (offset int, ok bool)

	// AttachEmbedHandles attaches interactive behavior (resize, drag
	// handles) to a rendered embed. Returns ErrNotRendered until the
	// deferred render pass has materialized the element.
	AttachEmbedHandles(id string) error

	// HoldNeutralFormat keeps the next typed input format-neutral
	// instead of inheriting the formats at the caret.
	HoldNeutralFormat()

	Subscribe(h Handler) (unsubscribe func())
}

// HeadlessSurface implements Surface over a Document with simulated
// focus, pointer lookup and deferred embed rendering. It drives every
// engine test and the demo server.
type HeadlessSurface struct {
	doc     *document.Document
	sel     *document.Selection
	focused bool
	neutral bool

	handlers map[int]Handler
	nextID   int

	unrendered map[string]bool
	pending    []string
	attached   map[string]bool

	pointerOffset *int
}

func NewHeadlessSurface() *HeadlessSurface {
	return &HeadlessSurface{
		doc:        document.New(),
		focused:    true,
		handlers:   make(map[int]Handler),
		unrendered: make(map[string]bool),
		attached:   make(map[string]bool),
	}
}

func (s *HeadlessSurface) emit(ev Event) {
	for _, h := range s.handlers {
		h(ev)
	}
}

func (s *HeadlessSurface) emitContentChange() {
	s.emit(Event{Kind: EventContentChange, HTML: s.doc.HTML()})
}

func (s *HeadlessSurface) Subscribe(h Handler) func() {
	id := s.nextID
	s.nextID++
	s.handlers[id] = h
	return func() {
		delete(s.handlers, id)
	}
}

func (s *HeadlessSurface) Selection() (document.Selection, bool) {
	if !s.focused || s.sel == nil {
		return document.Selection{}, false
	}
	return *s.sel, true
}

func (s *HeadlessSurface) SetSelection(sel document.Selection) {
	s.focused = true
	s.sel = &sel
	s.emit(Event{Kind: EventSelectionChange, Selection: &sel})
}

// Blur simulates focus leaving the surface, e.g. to a modal dialog.
// The live selection is gone afterwards.
func (s *HeadlessSurface) Blur() {
	s.focused = false
	s.sel = nil
	s.emit(Event{Kind: EventSelectionChange})
}

// Click simulates a pointer click placing a caret.
func (s *HeadlessSurface) Click(index int) {
	s.focused = true
	sel := document.Caret(index)
	s.sel = &sel
	s.emit(Event{Kind: EventPointerUp, Selection: &sel})
}

// KeyUp simulates a key release.
func (s *HeadlessSurface) KeyUp() {
	s.emit(Event{Kind: EventKeyUp, Selection: s.sel})
}

// TypeText inserts text at the current selection the way typing does:
// a range selection is replaced, and the inserted text inherits the
// formats at the caret unless a neutral hold is in effect.
func (s *HeadlessSurface) TypeText(text string) error {
	sel := document.Caret(s.doc.Length())
	if s.sel != nil {
		sel = *s.sel
	}
	if sel.Length > 0 {
		if err := s.doc.DeleteRange(sel.Index, sel.Length); err != nil {
			return err
		}
	}
	var attrs document.Attributes
	if !s.neutral {
		attrs, _ = s.doc.Formats(sel.Index, 0)
	}
	s.neutral = false
	if err := s.doc.InsertText(sel.Index, text, attrs); err != nil {
		return err
	}
	caret := document.Caret(sel.Index + len([]rune(text)))
	s.sel = &caret
	s.emitContentChange()
	return nil
}

func (s *HeadlessSurface) InsertText(index int, text string, attrs document.Attributes) error {
	if err := s.doc.InsertText(index, text, attrs); err != nil {
		return err
	}
	s.emitContentChange()
	return nil
}

func (s *HeadlessSurface) InsertEmbed(index int, embed document.Embed) error {
	if err := s.doc.InsertEmbed(index, embed); err != nil {
		return err
	}
	// The visual element materializes in a later deferred pass.
	if embed.ID != "" {
		s.unrendered[embed.ID] = true
		s.pending = append(s.pending, embed.ID)
	}
	s.emitContentChange()
	return nil
}

func (s *HeadlessSurface) DeleteRange(index, length int) error {
	if err := s.doc.DeleteRange(index, length); err != nil {
		return err
	}
	s.emitContentChange()
	return nil
}

func (s *HeadlessSurface) FormatRange(index, length int, attr string, value any) error {
	if err := s.doc.FormatRange(index, length, attr, value); err != nil {
		return err
	}
	s.emitContentChange()
	return nil
}

func (s *HeadlessSurface) Formats(index, length int) (document.Attributes, error) {
	return s.doc.Formats(index, length)
}

func (s *HeadlessSurface) LineFormats(index, length int) (document.Attributes, error) {
	return s.doc.LineFormats(index, length)
}

func (s *HeadlessSurface) SetEmbedSize(index int, width, height string) error {
	if err := s.doc.SetEmbedSize(index, width, height); err != nil {
		return err
	}
	s.emitContentChange()
	return nil
}

func (s *HeadlessSurface) Length() int {
	return s.doc.Length()
}

func (s *HeadlessSurface) HTML() string {
	return s.doc.HTML()
}

func (s *HeadlessSurface) Content() (string, error) {
	return s.doc.JSON()
}

// LoadContent replaces the document with a serialized one, as when a
// persisted draft repopulates the editor at session start.
func (s *HeadlessSurface) LoadContent(content string) error {
	if content == "" {
		s.doc = document.New()
		s.emitContentChange()
		return nil
	}
	doc, err := document.FromJSON(content)
	if err != nil {
		return err
	}
	s.doc = doc
	for _, embed := range doc.Embeds() {
		s.unrendered[embed.ID] = true
		s.pending = append(s.pending, embed.ID)
	}
	s.emitContentChange()
	return nil
}

func (s *HeadlessSurface) EmbedAt(index int) (document.Embed, bool) {
	return s.doc.EmbedAt(index)
}

func (s *HeadlessSurface) FindEmbed(id string) (int, document.Embed, bool) {
	return s.doc.FindEmbed(id)
}

func (s *HeadlessSurface) OffsetAt(x, y int) (int, bool) {
	if s.pointerOffset == nil {
		return 0, false
	}
	return *s.pointerOffset, true
}

// SetPointerOffset configures the best-effort pointer lookup. Pass a
// negative value to make the lookup unavailable again.
func (s *HeadlessSurface) SetPointerOffset(offset int) {
	if offset < 0 {
		s.pointerOffset = nil
		return
	}
	s.pointerOffset = &offset
}

func (s *HeadlessSurface) AttachEmbedHandles(id string) error {
	if s.unrendered[id] {
		return ErrNotRendered
	}
	if _, _, ok := s.doc.FindEmbed(id); !ok {
		return ErrNotRendered
	}
	s.attached[id] = true
	return nil
}

// Attached reports whether interactive handles were attached to an embed.
func (s *HeadlessSurface) Attached(id string) bool {
	return s.attached[id]
}

// FlushRendered runs the deferred render pass, materializing every
// pending embed and emitting a rendered event for each.
func (s *HeadlessSurface) FlushRendered() {
	pending := s.pending
	s.pending = nil
	for _, id := range pending {
		if !s.unrendered[id] {
			continue
		}
		delete(s.unrendered, id)
		s.emit(Event{Kind: EventEmbedRendered, EmbedID: id})
	}
}

func (s *HeadlessSurface) HoldNeutralFormat() {
	s.neutral = true
}
