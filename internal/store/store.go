// Package store provides the key-value persistence slots the editing
// session writes through: single mutable value per key, last-write-wins,
// no multi-key consistency.
package store

import (
	"errors"

	"github.com/rs/zerolog"
)

var storeLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storeLogger = l
}

// ErrQuotaExceeded indicates a write was rejected because the store is
// out of space. Writes failing with it are advisory; in-memory state is
// kept for the next attempt.
var ErrQuotaExceeded = errors.New("store quota exceeded")

type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string)
}
