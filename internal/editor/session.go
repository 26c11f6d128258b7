package editor

import (
	"errors"

	"github.com/debemdeboas/the-draft/internal/draft"
	"github.com/debemdeboas/the-draft/internal/imagestore"
	"github.com/debemdeboas/the-draft/internal/model"
	"github.com/debemdeboas/the-draft/internal/notify"
)

// Session reconciles user intents, the surface's event stream and draft
// persistence into one editing session. All recoverable failures become
// advisory notifications; none of them is fatal to the session.
type Session struct {
	surface  Surface
	tracker  *Tracker
	format   *Formatter
	images   *Manager
	drafts   *draft.Controller
	notifier notify.Notifier

	unsubscribe func()

	title string
	tags  []string
}

type SessionConfig struct {
	Surface       Surface
	Images        imagestore.Store
	Drafts        *draft.Controller
	Notifier      notify.Notifier
	Scheduler     Scheduler
	AttachRetries int
}

func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		surface:  cfg.Surface,
		drafts:   cfg.Drafts,
		notifier: cfg.Notifier,
	}
	s.tracker = NewTracker(cfg.Surface)
	s.format = NewFormatter(cfg.Surface, s.tracker)

	opts := []ManagerOption{
		WithRecordsChanged(func(records []model.ImageRecord) {
			if s.drafts != nil {
				s.drafts.UpdateImages(records)
			}
		}),
	}
	if cfg.AttachRetries > 0 {
		opts = append(opts, WithAttachRetries(cfg.AttachRetries))
	}
	s.images = NewManager(cfg.Surface, s.tracker, cfg.Images, cfg.Scheduler, opts...)

	s.unsubscribe = cfg.Surface.Subscribe(func(ev Event) {
		if ev.Kind == EventContentChange {
			s.pushDraft()
		}
	})
	return s
}

// Load reads the persisted draft once and repopulates the session.
func (s *Session) Load() bool {
	if s.drafts == nil {
		return false
	}
	d, ok := s.drafts.Load()
	if !ok {
		return false
	}

	s.title = d.Title
	s.tags = append([]string(nil), d.Tags...)
	s.images.LoadRecords(d.Images)

	if loader, canLoad := s.surface.(interface{ LoadContent(string) error }); canLoad {
		if err := loader.LoadContent(d.Content); err != nil {
			editorLogger.Warn().Err(err).Msg("Error restoring draft content")
			s.warn("Could not restore draft content")
		}
	}
	return true
}

func (s *Session) warn(msg string) {
	if s.notifier != nil {
		notify.Warn(s.notifier, msg)
	}
}

func (s *Session) error(msg string) {
	if s.notifier != nil {
		notify.Error(s.notifier, msg)
	}
}

// snapshot builds the full draft state for persistence.
func (s *Session) snapshot() model.Draft {
	content, err := s.surface.Content()
	if err != nil {
		editorLogger.Error().Err(err).Msg("Error serializing document")
		content = ""
	}
	// An empty document serializes to an empty op list; treat it as no
	// content so all-empty drafts stay out of storage.
	if s.surface.Length() == 0 {
		content = ""
	}
	return model.Draft{
		Title:   s.title,
		Content: content,
		Tags:    append([]string(nil), s.tags...),
		Images:  s.images.Records(),
	}
}

func (s *Session) pushDraft() {
	if s.drafts != nil {
		s.drafts.Update(s.snapshot())
	}
}

func (s *Session) SetTitle(title string) {
	s.title = title
	s.pushDraft()
}

func (s *Session) Title() string {
	return s.title
}

func (s *Session) SetTags(tags []string) {
	// Ordered set: keep first occurrence of each tag.
	seen := make(map[string]bool, len(tags))
	deduped := tags[:0:0]
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		deduped = append(deduped, tag)
	}
	s.tags = deduped
	s.pushDraft()
}

func (s *Session) Tags() []string {
	return append([]string(nil), s.tags...)
}

// ToggleFormat flips a character-level attribute over the resolved
// range. Empty selections are advisory, not errors.
func (s *Session) ToggleFormat(attr string) error {
	err := s.format.Toggle(attr)
	if errors.Is(err, ErrEmptySelection) {
		s.warn("Select some text first")
	}
	return err
}

func (s *Session) SetSizeLevel(level int) error {
	err := s.format.SetSize(level)
	if errors.Is(err, ErrEmptySelection) {
		s.warn("Select some text first")
	}
	return err
}

func (s *Session) ToggleList(kind string) error {
	err := s.format.ToggleList(kind)
	if errors.Is(err, ErrEmptySelection) {
		s.warn("Select some text first")
	}
	return err
}

// BeginDialog snapshots the selection before a modal dialog steals
// focus. Link and image dialogs both go through here.
func (s *Session) BeginDialog() {
	s.tracker.Capture()
}

func (s *Session) InsertLink(text, href string) error {
	return s.format.InsertLink(text, href)
}

// InsertImage stores the uploaded bytes and embeds the image at the
// captured or resolved selection. Read failures abort the upload with
// an advisory.
func (s *Session) InsertImage(name string, data []byte) (model.ImageRecord, error) {
	record, err := s.images.Insert(name, data)
	if err != nil {
		s.error("Could not read image")
		return model.ImageRecord{}, err
	}
	return record, nil
}

func (s *Session) BeginImageDrag(embedID string) error {
	return s.images.BeginDrag(embedID)
}

func (s *Session) DropImage(x, y int) error {
	return s.images.Drop(x, y)
}

func (s *Session) ResizeImage(width, height string) error {
	err := s.images.Resize(width, height)
	if errors.Is(err, ErrNoImageAtCaret) {
		s.warn("Place the cursor on an image to resize it")
	}
	return err
}

func (s *Session) RemoveImage(id model.ImageID) bool {
	return s.images.RemoveRecord(id)
}

func (s *Session) Images() []model.ImageRecord {
	return s.images.Records()
}

// Snapshot returns the current draft state, e.g. for publishing.
func (s *Session) Snapshot() model.Draft {
	return s.snapshot()
}

// Reset clears the session and deletes the draft slot, on publish or
// explicit new post.
func (s *Session) Reset() {
	s.title = ""
	s.tags = nil
	s.images.LoadRecords(nil)
	if loader, canLoad := s.surface.(interface{ LoadContent(string) error }); canLoad {
		_ = loader.LoadContent("")
	}
	if s.drafts != nil {
		s.drafts.Clear()
	}
}

// Close tears down every surface subscription owned by the session.
func (s *Session) Close() {
	s.tracker.Close()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
