// Package model defines core data structures and types for the editing engine.
package model

import (
	"time"

	"github.com/google/uuid"
)

type PostID string

type DraftID string

type ImageID string

// ImageRecord is a metadata entry for one uploaded image. It is bound to
// exactly one embed node through EmbedID, assigned when the embed is
// inserted into the document.
type ImageRecord struct {
	ID      ImageID `json:"id"`
	EmbedID string  `json:"embed_id"`
	Name    string  `json:"name"`
	URL     string  `json:"url"`
	Width   string  `json:"width,omitempty"`
	Height  string  `json:"height,omitempty"`
}

func NewImageID() ImageID {
	return ImageID(uuid.New().String())
}

// Draft is the mutable editing state persisted between sessions. Content
// holds the serialized document (delta-style JSON op list).
type Draft struct {
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Tags    []string      `json:"tags"`
	Images  []ImageRecord `json:"images"`
}

// Empty reports whether every field of the draft is empty. All-empty
// drafts are never written to the store.
func (d Draft) Empty() bool {
	return d.Title == "" && d.Content == "" && len(d.Tags) == 0 && len(d.Images) == 0
}

// Post is an immutable published snapshot. Content retains the serialized
// document so a post can be reloaded into a fresh draft for re-editing;
// re-publishing produces a new post, never an update.
type Post struct {
	ID PostID `json:"id"`

	Title        string `json:"title"`
	ContentHTML  string `json:"content_html"`
	ContentPlain string `json:"content_plain"`
	Content      string `json:"content"`

	Tags   []string      `json:"tags"`
	Images []ImageRecord `json:"images"`

	CreatedDate time.Time `json:"created_at"`
}

func NewPostID() PostID {
	return PostID(uuid.New().String())
}

// ToDraft reloads a published post into a fresh draft for re-editing.
func (p *Post) ToDraft() Draft {
	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)
	images := make([]ImageRecord, len(p.Images))
	copy(images, p.Images)

	return Draft{
		Title:   p.Title,
		Content: p.Content,
		Tags:    tags,
		Images:  images,
	}
}
