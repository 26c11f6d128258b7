package repository

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/debemdeboas/the-draft/internal/document"
	"github.com/debemdeboas/the-draft/internal/model"
	"github.com/debemdeboas/the-draft/internal/normalize"
	"github.com/debemdeboas/the-draft/internal/store"
)

// StorePostRepository keeps the post list in a single store slot as a
// JSON array, newest first. Last-write-wins; the draft slot and the
// post-list slot are independent keys.
type StorePostRepository struct { // implements PostRepository
	st  store.Store
	key string

	mu    sync.RWMutex
	posts []model.Post
}

func NewStorePostRepository(st store.Store, key string) *StorePostRepository {
	r := &StorePostRepository{st: st, key: key}
	r.load()
	return r
}

func (r *StorePostRepository) load() {
	raw, ok := r.st.Get(r.key)
	if !ok {
		return
	}
	var posts []model.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		repoLogger.Warn().Err(err).Str("key", r.key).Msg("Discarding malformed post list")
		r.st.Remove(r.key)
		return
	}
	r.posts = posts
}

func (r *StorePostRepository) List() []model.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	posts := make([]model.Post, len(r.posts))
	copy(posts, r.posts)
	return posts
}

func (r *StorePostRepository) Get(id model.PostID) (*model.Post, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.posts {
		if r.posts[i].ID == id {
			post := r.posts[i]
			return &post, true
		}
	}
	return nil, false
}

func (r *StorePostRepository) Publish(d model.Draft) (*model.Post, error) {
	doc := document.New()
	if d.Content != "" {
		var err error
		doc, err = document.FromJSON(d.Content)
		if err != nil {
			return nil, fmt.Errorf("reading draft content: %w", err)
		}
	}

	post := model.Post{
		ID:           model.NewPostID(),
		Title:        d.Title,
		ContentHTML:  normalize.Normalize(doc.HTML()),
		ContentPlain: doc.Text(),
		Content:      d.Content,
		Tags:         append([]string(nil), d.Tags...),
		Images:       append([]model.ImageRecord(nil), d.Images...),
		CreatedDate:  time.Now(),
	}
	if post.Title == "" {
		post.Title = "Untitled - " + post.CreatedDate.Format("2006-01-02")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated := append([]model.Post{post}, r.posts...)
	data, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("serializing post list: %w", err)
	}
	if err := r.st.Set(r.key, string(data)); err != nil {
		return nil, fmt.Errorf("saving post list: %w", err)
	}

	r.posts = updated
	repoLogger.Info().Str("post_id", string(post.ID)).Str("title", post.Title).Msg("Published post")
	return &post, nil
}
