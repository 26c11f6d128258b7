// Package draft keeps the persisted draft slot consistent with
// in-memory editing state without excessive write volume.
package draft

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/the-draft/internal/model"
	"github.com/debemdeboas/the-draft/internal/notify"
	"github.com/debemdeboas/the-draft/internal/store"
)

var draftLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	draftLogger = l
}

// DefaultDelay is the autosave quiet period.
const DefaultDelay = 30 * time.Second

// Clock abstracts timer scheduling so tests can drive virtual time.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Controller debounces draft writes: each change restarts the timer, so
// only the last state before a quiet period is persisted. Image-list
// changes bypass the debounce entirely, since losing an upload to a
// refresh is unacceptable.
type Controller struct {
	mu sync.Mutex

	store    store.Store
	key      string
	delay    time.Duration
	clock    Clock
	notifier notify.Notifier

	timer   Timer
	current model.Draft
}

type Option func(*Controller)

func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

func WithNotifier(n notify.Notifier) Option {
	return func(ctl *Controller) { ctl.notifier = n }
}

func NewController(st store.Store, key string, delay time.Duration, opts ...Option) *Controller {
	if delay <= 0 {
		delay = DefaultDelay
	}
	c := &Controller{
		store: st,
		key:   key,
		delay: delay,
		clock: realClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads the draft slot once at session start. A malformed payload
// is removed from the store rather than surfaced as a blocking error.
func (c *Controller) Load() (model.Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.store.Get(c.key)
	if !ok {
		return model.Draft{}, false
	}

	var d model.Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		draftLogger.Warn().Err(err).Str("key", c.key).Msg("Discarding malformed draft")
		c.store.Remove(c.key)
		return model.Draft{}, false
	}

	c.current = d
	return d, true
}

// Update records a new draft state and (re)starts the autosave timer.
func (c *Controller) Update(d model.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = d
	c.stopTimer()
	c.timer = c.clock.AfterFunc(c.delay, c.expire)
}

// UpdateImages records an image-list change and writes immediately.
// The snapshot includes whatever title/content/tags are mid-debounce,
// so the pending timer is redundant and canceled.
func (c *Controller) UpdateImages(images []model.ImageRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current.Images = images
	c.stopTimer()
	c.write()
}

// Flush cancels any pending timer and writes the current state now.
func (c *Controller) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimer()
	c.write()
}

// Clear deletes the draft slot, on publish or explicit new post.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimer()
	c.current = model.Draft{}
	c.store.Remove(c.key)
}

// Current returns the last recorded draft state.
func (c *Controller) Current() model.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer = nil
	c.write()
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// write persists the current snapshot. All-empty drafts are never
// written. Store failures are advisory; state is kept so the next
// attempt may succeed.
func (c *Controller) write() {
	if c.current.Empty() {
		return
	}

	data, err := json.Marshal(c.current)
	if err != nil {
		draftLogger.Error().Err(err).Msg("Error serializing draft")
		return
	}

	if err := c.store.Set(c.key, string(data)); err != nil {
		draftLogger.Error().Err(err).Str("key", c.key).Msg("Error saving draft")
		if c.notifier != nil {
			notify.Error(c.notifier, "Failed to save draft")
		}
		return
	}
	draftLogger.Debug().Str("key", c.key).Int("bytes", len(data)).Msg("Draft saved")
}
