package render

import (
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/debemdeboas/the-draft/internal/document"
)

// MarkdownToDocument parses markdown and rebuilds it in the document
// model. Constructs without an equivalent in the model degrade to
// their plain text.
func MarkdownToDocument(md []byte) *document.Document {
	p := parser.NewWithExtensions(
		parser.FencedCode | parser.Autolink | parser.Strikethrough |
			parser.SpaceHeadings | parser.NoIntraEmphasis,
	)
	b := &mdBuilder{
		doc:   document.New(),
		attrs: document.Attributes{},
	}
	ast.WalkFunc(p.Parse(md), b.visit)
	return b.doc
}

type mdBuilder struct {
	doc   *document.Document
	attrs document.Attributes
	lists []string // active list kinds, innermost last
}

func (b *mdBuilder) text(s string) {
	if s == "" {
		return
	}
	var attrs document.Attributes
	if len(b.attrs) > 0 {
		attrs = b.attrs.Clone()
	}
	_ = b.doc.InsertText(b.doc.Length(), s, attrs)
}

// newline ends the current line; attrs ride on the newline rune and
// mark the whole line.
func (b *mdBuilder) newline(attrs document.Attributes) {
	_ = b.doc.InsertText(b.doc.Length(), "\n", attrs)
}

func (b *mdBuilder) toggle(attr string, entering bool) {
	if entering {
		b.attrs[attr] = true
	} else {
		delete(b.attrs, attr)
	}
}

func (b *mdBuilder) visit(node ast.Node, entering bool) ast.WalkStatus {
	switch n := node.(type) {
	case *ast.Text:
		if entering {
			b.text(string(n.Literal))
		}
	case *ast.Code:
		if entering {
			b.text(string(n.Literal))
		}
	case *ast.Strong:
		b.toggle(document.AttrBold, entering)
	case *ast.Emph:
		b.toggle(document.AttrItalic, entering)
	case *ast.Del:
		b.toggle(document.AttrStrike, entering)
	case *ast.Link:
		if entering {
			b.attrs[document.AttrLink] = string(n.Destination)
		} else {
			delete(b.attrs, document.AttrLink)
		}
	case *ast.Image:
		if entering {
			_ = b.doc.InsertEmbed(b.doc.Length(), document.Embed{Src: string(n.Destination)})
		}
		return ast.SkipChildren
	case *ast.Heading:
		// Heading level 1 maps to the top of the size ladder.
		size, ok := document.SizeForLevel(len(document.SizeLadder) + 1 - n.Level)
		if entering {
			if ok {
				b.attrs[document.AttrSize] = size
			}
		} else {
			delete(b.attrs, document.AttrSize)
			b.newline(nil)
		}
	case *ast.Paragraph:
		// List items close their own lines.
		if !entering && len(b.lists) == 0 {
			b.newline(nil)
		}
	case *ast.List:
		kind := document.ListBullet
		if n.ListFlags&ast.ListTypeOrdered != 0 {
			kind = document.ListOrdered
		}
		if entering {
			b.lists = append(b.lists, kind)
		} else {
			b.lists = b.lists[:len(b.lists)-1]
		}
	case *ast.ListItem:
		if !entering {
			b.newline(document.Attributes{document.AttrList: b.lists[len(b.lists)-1]})
		}
	case *ast.CodeBlock:
		if entering {
			language := string(n.Info)
			if language == "" {
				language = "plaintext"
			}
			literal := strings.TrimSuffix(string(n.Literal), "\n")
			for _, line := range strings.Split(literal, "\n") {
				b.text(line)
				b.newline(document.Attributes{document.AttrCodeBlock: language})
			}
		}
	case *ast.Softbreak:
		if entering {
			b.text(" ")
		}
	case *ast.Hardbreak:
		if entering {
			b.newline(nil)
		}
	}
	return ast.GoToNext
}
