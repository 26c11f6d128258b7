// Package render turns serialized document HTML into a publishable
// preview and imports markdown into the document model.
package render

import (
	"fmt"
	"html"
	"regexp"
	"sync"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/the-draft/internal/cache"
	"github.com/debemdeboas/the-draft/internal/normalize"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

var reCodeBlock = regexp.MustCompile(`(?s)<pre><code class="language-([^"]*)">(.*?)</code></pre>`)

// Preview normalizes serialized document HTML and syntax-highlights its
// code blocks. The input is trusted editor output, not arbitrary user
// HTML.
func Preview(docHTML, syntaxTheme string) string {
	s := normalize.Normalize(docHTML)
	return reCodeBlock.ReplaceAllStringFunc(s, func(block string) string {
		m := reCodeBlock.FindStringSubmatch(block)
		language := m[1]
		code := html.UnescapeString(m[2])
		highlighted := HighlightCode(code, language, syntaxTheme)
		return fmt.Sprintf(
			`<div class="highlight"><pre><code class="language-%s">%s</code></pre></div>`,
			language, highlighted,
		)
	})
}

// Mutex to protect the check-render-set operation in PreviewCached
var previewCacheMutex sync.Mutex

// PreviewCached is Preview behind the content-hash keyed cache.
func PreviewCached(docHTML, contentHash, syntaxTheme string) string {
	if contentHash == "" {
		renderLogger.Warn().Msg("Content hash is empty, skipping cache check")
		return Preview(docHTML, syntaxTheme)
	}

	// First check cache without locking (fast path for cache hits)
	if cached, found := cache.GetRenderedPreview(contentHash, syntaxTheme); found {
		renderLogger.Debug().Str("contentHash", contentHash).Str("syntaxTheme", syntaxTheme).Msg("Cache hit for rendered preview")
		return cached
	}

	renderLogger.Debug().Str("contentHash", contentHash).Str("syntaxTheme", syntaxTheme).Msg("Cache miss for rendered preview")
	previewCacheMutex.Lock()
	defer previewCacheMutex.Unlock()

	rendered := Preview(docHTML, syntaxTheme)
	cache.SetRenderedPreview(contentHash, syntaxTheme, rendered)
	return rendered
}

// WarmCache pre-renders a preview asynchronously to warm the cache
func WarmCache(docHTML, contentHash, syntaxTheme string) {
	go func() {
		PreviewCached(docHTML, contentHash, syntaxTheme)
		renderLogger.Debug().Str("contentHash", contentHash).Msg("Cache warming completed")
	}()
}
