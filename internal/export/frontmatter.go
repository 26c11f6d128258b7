package export

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/gomarkdown/markdown"
)

// ParsedFrontMatter is front matter read back from an exported file.
// Consumed is the byte offset where the markdown body starts.
type ParsedFrontMatter struct {
	FrontMatter
	Consumed int
}

// ParseFrontMatter reads the leading %%%-delimited TOML block of an
// exported markdown file.
func ParseFrontMatter(md []byte) (*ParsedFrontMatter, error) {
	md = markdown.NormalizeNewlines(md)
	md = bytes.TrimLeft(md, "\n \t\r")

	delimiter := []byte("%%%")

	// Check if md is long enough to contain the delimiter
	if len(md) < 2*len(delimiter) {
		return nil, fmt.Errorf("invalid front matter format")
	}

	first := bytes.Index(md[:len(delimiter)+1], delimiter)
	if first == -1 {
		return nil, fmt.Errorf("invalid front matter format")
	}

	second := bytes.Index(md[first+len(delimiter):], delimiter)
	if second == -1 {
		return nil, fmt.Errorf("invalid front matter format")
	}

	end := second + 2*len(delimiter) + 1
	if end > len(md) {
		return nil, fmt.Errorf("invalid front matter format")
	}

	frontMatter := md[len(delimiter) : end-len(delimiter)-1]
	info := &ParsedFrontMatter{}

	if _, err := toml.Decode(string(frontMatter), &info.FrontMatter); err != nil {
		return nil, fmt.Errorf("failed to decode front matter: %w", err)
	}

	info.Consumed = end
	return info, nil
}
