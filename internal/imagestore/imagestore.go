// Package imagestore turns uploaded image bytes into addressable URLs.
package imagestore

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

var imageLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	imageLogger = l
}

// ErrEmptyImage indicates the upload produced no bytes, usually a
// failed or aborted file read.
var ErrEmptyImage = errors.New("empty image data")

// Store persists image bytes and returns the URL an embed should use
// as its source.
type Store interface {
	Put(name string, data []byte) (string, error)
}

// DataURLStore inlines the image as a base64 data URL. No external
// storage involved; the URL travels inside the document itself.
type DataURLStore struct{}

func NewDataURLStore() DataURLStore {
	return DataURLStore{}
}

func (DataURLStore) Put(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
