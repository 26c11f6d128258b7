// Package export turns published posts into portable markdown files
// with TOML front matter.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/debemdeboas/the-draft/internal/document"
	"github.com/debemdeboas/the-draft/internal/model"
)

// FrontMatter is the post metadata carried between the %%% delimiters.
type FrontMatter struct {
	Title string    `toml:"title"`
	Date  time.Time `toml:"date"`
	Tags  []string  `toml:"tags,omitempty"`
}

// Markdown serializes a post as front matter plus a markdown body. The
// body comes from the post's editable content; posts published without
// it fall back to their plain text.
func Markdown(post model.Post) (string, error) {
	fm := FrontMatter{
		Title: post.Title,
		Date:  post.CreatedDate,
		Tags:  post.Tags,
	}

	var buf bytes.Buffer
	buf.WriteString("%%%\n")
	if err := toml.NewEncoder(&buf).Encode(fm); err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	buf.WriteString("%%%\n\n")

	if post.Content == "" {
		buf.WriteString(post.ContentPlain)
		return buf.String(), nil
	}

	doc, err := document.FromJSON(post.Content)
	if err != nil {
		return "", fmt.Errorf("reading post content: %w", err)
	}
	buf.WriteString(Body(doc))
	return buf.String(), nil
}

type exportLine struct {
	segs []document.Node
	list string
	code string
}

func docLines(doc *document.Document) []exportLine {
	var lines []exportLine
	cur := exportLine{}
	for _, n := range doc.Nodes() {
		if n.Embed != nil {
			cur.segs = append(cur.segs, n)
			continue
		}
		parts := strings.Split(n.Text, "\n")
		for pi, part := range parts {
			if part != "" {
				cur.segs = append(cur.segs, document.Node{Text: part, Attrs: n.Attrs})
			}
			if pi < len(parts)-1 {
				if v, ok := n.Attrs[document.AttrList].(string); ok {
					cur.list = v
				}
				switch v := n.Attrs[document.AttrCodeBlock].(type) {
				case string:
					cur.code = v
				case bool:
					if v {
						cur.code = "plaintext"
					}
				}
				lines = append(lines, cur)
				cur = exportLine{}
			}
		}
	}
	if len(cur.segs) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// Body renders the document as markdown. Underline has no markdown
// equivalent and is dropped.
func Body(doc *document.Document) string {
	lines := docLines(doc)
	var b strings.Builder
	i := 0
	for i < len(lines) {
		ln := lines[i]
		if ln.code != "" {
			language := ln.code
			if language == "plaintext" {
				language = ""
			}
			b.WriteString("```" + language + "\n")
			for i < len(lines) && lines[i].code == ln.code {
				for _, seg := range lines[i].segs {
					b.WriteString(seg.Text)
				}
				b.WriteString("\n")
				i++
			}
			b.WriteString("```\n\n")
			continue
		}
		if ln.list != "" {
			ordinal := 1
			for i < len(lines) && lines[i].list == ln.list {
				if ln.list == document.ListOrdered {
					fmt.Fprintf(&b, "%d. ", ordinal)
					ordinal++
				} else {
					b.WriteString("- ")
				}
				writeInline(&b, lines[i].segs)
				b.WriteString("\n")
				i++
			}
			b.WriteString("\n")
			continue
		}
		if prefix, ok := headingPrefix(ln.segs); ok {
			b.WriteString(prefix)
		}
		writeInline(&b, ln.segs)
		b.WriteString("\n\n")
		i++
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// headingPrefix maps a line whose text uniformly carries a ladder size
// onto a markdown heading, the inverse of the import mapping.
func headingPrefix(segs []document.Node) (string, bool) {
	size := ""
	for _, seg := range segs {
		if seg.Embed != nil {
			return "", false
		}
		v, ok := seg.Attrs[document.AttrSize].(string)
		if !ok || (size != "" && v != size) {
			return "", false
		}
		size = v
	}
	if size == "" {
		return "", false
	}
	for p, s := range document.SizeLadder {
		if s == size {
			level := len(document.SizeLadder) - p
			return strings.Repeat("#", level) + " ", true
		}
	}
	return "", false
}

func writeInline(b *strings.Builder, segs []document.Node) {
	for _, seg := range segs {
		if seg.Embed != nil {
			fmt.Fprintf(b, "![](%s)", seg.Embed.Src)
			continue
		}
		s := seg.Text
		if seg.Attrs.Enabled(document.AttrStrike) {
			s = "~~" + s + "~~"
		}
		if seg.Attrs.Enabled(document.AttrItalic) {
			s = "*" + s + "*"
		}
		if seg.Attrs.Enabled(document.AttrBold) {
			s = "**" + s + "**"
		}
		if href, ok := seg.Attrs[document.AttrLink].(string); ok && href != "" {
			s = fmt.Sprintf("[%s](%s)", s, href)
		}
		b.WriteString(s)
	}
}
