// Package repository persists the published-post list.
package repository

import (
	"github.com/rs/zerolog"

	"github.com/debemdeboas/the-draft/internal/model"
)

var repoLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}

// PostRepository holds immutable published snapshots, newest first.
// Posts are never mutated after creation; re-editing loads a fresh
// draft and re-publishing appends a new post.
type PostRepository interface {
	List() []model.Post
	Get(id model.PostID) (*model.Post, bool)

	// Publish freezes a draft into a post and prepends it to the list.
	Publish(d model.Draft) (*model.Post, error)
}
