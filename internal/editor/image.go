package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/debemdeboas/the-draft/internal/document"
	"github.com/debemdeboas/the-draft/internal/imagestore"
	"github.com/debemdeboas/the-draft/internal/model"
)

const defaultAttachRetries = 5

// Manager owns the embedded-image lifecycle: insert, drag-move, resize,
// and the parallel image-metadata list. Metadata entries correlate to
// embeds by canonical embed identity, never by source URL, so embeds
// sharing one source cannot cross-talk.
type Manager struct {
	surface Surface
	tracker *Tracker
	images  imagestore.Store
	sched   Scheduler

	records []model.ImageRecord
	drag    *dragState

	attachRetries int
	onChange      func([]model.ImageRecord)
}

type dragState struct {
	embed  document.Embed
	origin int
}

type ManagerOption func(*Manager)

// WithAttachRetries bounds the deferred attachment retry loop.
func WithAttachRetries(n int) ManagerOption {
	return func(m *Manager) { m.attachRetries = n }
}

// WithRecordsChanged registers a hook invoked on every image-list
// change. The draft controller uses it to write immediately, bypassing
// the debounce.
func WithRecordsChanged(fn func([]model.ImageRecord)) ManagerOption {
	return func(m *Manager) { m.onChange = fn }
}

func NewManager(surface Surface, tracker *Tracker, images imagestore.Store, sched Scheduler, opts ...ManagerOption) *Manager {
	m := &Manager{
		surface:       surface,
		tracker:       tracker,
		images:        images,
		sched:         sched,
		attachRetries: defaultAttachRetries,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) notifyChange() {
	if m.onChange != nil {
		m.onChange(m.Records())
	}
}

// Records returns a copy of the image-metadata list.
func (m *Manager) Records() []model.ImageRecord {
	records := make([]model.ImageRecord, len(m.records))
	copy(records, m.records)
	return records
}

// LoadRecords replaces the metadata list, as when a persisted draft is
// reloaded at session start.
func (m *Manager) LoadRecords(records []model.ImageRecord) {
	m.records = make([]model.ImageRecord, len(records))
	copy(m.records, records)
}

// Insert stores the image bytes, inserts an embed at the resolved
// selection (falling back to end-of-document), advances the caret past
// the embed and appends a metadata record. Interactive attachment is
// scheduled to run after the surface's deferred render pass.
func (m *Manager) Insert(name string, data []byte) (model.ImageRecord, error) {
	url, err := m.images.Put(name, data)
	if err != nil {
		return model.ImageRecord{}, fmt.Errorf("storing image: %w", err)
	}

	sel, ok := m.tracker.Consume()
	if !ok {
		sel = m.tracker.Resolve()
	}

	embed := document.Embed{ID: document.NewEmbedID(), Kind: document.EmbedKindImage, Src: url}
	if err := m.surface.InsertEmbed(sel.Index, embed); err != nil {
		return model.ImageRecord{}, err
	}
	m.surface.SetSelection(document.Caret(sel.Index + 1))

	record := model.ImageRecord{
		ID:      model.NewImageID(),
		EmbedID: embed.ID,
		Name:    name,
		URL:     url,
	}
	m.records = append(m.records, record)
	m.notifyChange()

	m.scheduleAttach(embed.ID, 0)
	return record, nil
}

// scheduleAttach retries attachment across deferred passes until the
// embed's element exists, giving up quietly after the retry budget:
// a missing target is non-fatal by design.
func (m *Manager) scheduleAttach(id string, attempt int) {
	m.sched.Defer(func() {
		err := m.surface.AttachEmbedHandles(id)
		if err == nil {
			return
		}
		if errors.Is(err, ErrNotRendered) && attempt+1 < m.attachRetries {
			m.scheduleAttach(id, attempt+1)
			return
		}
		editorLogger.Debug().Str("embed_id", id).Err(err).Msg("Giving up on embed attachment")
	})
}

// BeginDrag records the dragged embed's identity and current offset.
func (m *Manager) BeginDrag(embedID string) error {
	origin, embed, ok := m.surface.FindEmbed(embedID)
	if !ok {
		return fmt.Errorf("unknown embed: %s", embedID)
	}
	m.drag = &dragState{embed: embed, origin: origin}
	return nil
}

// dropIndex resolves the drop destination: live selection, then the
// best-effort pointer lookup, then end-of-document.
func (m *Manager) dropIndex(x, y int) int {
	if sel, ok := m.surface.Selection(); ok {
		return sel.Index
	}
	if offset, ok := m.surface.OffsetAt(x, y); ok {
		return offset
	}
	return m.surface.Length()
}

// Drop completes a drag-move. The embed is inserted at the destination
// first, then the original is deleted at its post-insert offset; if the
// original cannot be re-resolved the move degrades to a copy, which is
// tolerated rather than surfaced.
func (m *Manager) Drop(x, y int) error {
	if m.drag == nil {
		return nil
	}
	drag := m.drag
	m.drag = nil

	dest := m.dropIndex(x, y)
	if length := m.surface.Length(); dest > length {
		dest = length
	}

	srcIdx, _, found := m.surface.FindEmbed(drag.embed.ID)
	if err := m.surface.InsertEmbed(dest, drag.embed); err != nil {
		return err
	}

	final := dest
	if found {
		// Inserting before the source shifted it right by one.
		adjusted := srcIdx
		if dest <= srcIdx {
			adjusted = srcIdx + 1
		} else {
			final = dest - 1
		}
		if embed, ok := m.surface.EmbedAt(adjusted); ok && embed.ID == drag.embed.ID {
			if err := m.surface.DeleteRange(adjusted, 1); err != nil {
				editorLogger.Warn().Str("embed_id", drag.embed.ID).Err(err).Msg("Drag source removal failed, keeping copy")
				final = dest
			}
		} else {
			editorLogger.Warn().Str("embed_id", drag.embed.ID).Msg("Drag source lost, keeping copy")
			final = dest
		}
	}

	m.surface.SetSelection(document.Caret(final + 1))
	return nil
}

// NormalizeDimension canonicalizes a user-supplied size: bare integers
// become pixels, anything already carrying a unit passes through.
func NormalizeDimension(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if _, err := strconv.Atoi(v); err == nil {
		return v + "px"
	}
	return v
}

// Resize applies a new size to the embed at or immediately before the
// caret and updates the matching metadata record by embed identity.
func (m *Manager) Resize(width, height string) error {
	w := NormalizeDimension(width)
	h := NormalizeDimension(height)
	if w == "" && h == "" {
		return nil
	}

	sel := m.tracker.Resolve()
	idx := sel.Index
	embed, ok := m.surface.EmbedAt(idx)
	if !ok && idx > 0 {
		idx--
		embed, ok = m.surface.EmbedAt(idx)
	}
	if !ok {
		return ErrNoImageAtCaret
	}

	if err := m.surface.SetEmbedSize(idx, w, h); err != nil {
		return err
	}
	for i := range m.records {
		if m.records[i].EmbedID != embed.ID {
			continue
		}
		if w != "" {
			m.records[i].Width = w
		}
		if h != "" {
			m.records[i].Height = h
		}
	}
	m.notifyChange()
	return nil
}

// RemoveRecord deletes a metadata entry only. The embed stays in the
// document; removal does not cascade.
func (m *Manager) RemoveRecord(id model.ImageID) bool {
	for i, record := range m.records {
		if record.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			m.notifyChange()
			return true
		}
	}
	return false
}
