package render

import (
	"strings"
	"testing"

	"github.com/debemdeboas/the-draft/internal/document"
)

func TestMarkdownToDocument(t *testing.T) {
	md := strings.Join([]string{
		"# Title",
		"",
		"Hello **bold** and *italic* and ~~gone~~.",
		"",
		"A [link](https://example.com) in prose.",
		"",
		"- first",
		"- second",
		"",
		"1. one",
		"2. two",
		"",
		"```go",
		"x := 1",
		"```",
		"",
		"![diagram](https://example.com/pic.png)",
		"",
	}, "\n")

	doc := MarkdownToDocument([]byte(md))
	html := doc.HTML()

	t.Run("heading", func(t *testing.T) {
		// Level 1 maps to the top of the size ladder.
		top := document.SizeLadder[len(document.SizeLadder)-1]
		if !strings.Contains(html, top) {
			t.Errorf("Expected heading size %s in %q", top, html)
		}
	})

	t.Run("inline formats", func(t *testing.T) {
		if !strings.Contains(html, "<strong>bold</strong>") {
			t.Errorf("Expected bold text in %q", html)
		}
		if !strings.Contains(html, "<em>italic</em>") {
			t.Errorf("Expected italic text in %q", html)
		}
		if !strings.Contains(html, "<s>gone</s>") {
			t.Errorf("Expected strikethrough text in %q", html)
		}
	})

	t.Run("link", func(t *testing.T) {
		if !strings.Contains(html, `href="https://example.com"`) {
			t.Errorf("Expected the link target in %q", html)
		}
		if !strings.Contains(html, ">link</a>") {
			t.Errorf("Expected the link text in %q", html)
		}
	})

	t.Run("lists", func(t *testing.T) {
		if !strings.Contains(html, "<ul>") || !strings.Contains(html, "<li>first</li>") {
			t.Errorf("Expected a bullet list in %q", html)
		}
		if !strings.Contains(html, "<ol>") || !strings.Contains(html, "<li>one</li>") {
			t.Errorf("Expected an ordered list in %q", html)
		}
	})

	t.Run("code block", func(t *testing.T) {
		if !strings.Contains(html, `language-go`) {
			t.Errorf("Expected a go code block in %q", html)
		}
		if !strings.Contains(doc.Text(), "x := 1") {
			t.Errorf("Expected the code text in %q", doc.Text())
		}
	})

	t.Run("image", func(t *testing.T) {
		embeds := doc.Embeds()
		if len(embeds) != 1 {
			t.Fatalf("Expected 1 embed, got %d", len(embeds))
		}
		if embeds[0].Src != "https://example.com/pic.png" {
			t.Errorf("Expected the image source, got %q", embeds[0].Src)
		}
		if embeds[0].ID == "" {
			t.Error("Expected the embed to get an identity")
		}
	})
}

func TestMarkdownToDocumentUnfencedCode(t *testing.T) {
	doc := MarkdownToDocument([]byte("    indented code\n"))
	if !strings.Contains(doc.HTML(), "language-plaintext") {
		t.Errorf("Expected a plaintext code block in %q", doc.HTML())
	}
}

func TestMarkdownToDocumentEmpty(t *testing.T) {
	doc := MarkdownToDocument(nil)
	if doc.Length() != 0 {
		t.Errorf("Expected an empty document, got length %d", doc.Length())
	}
}

func TestMarkdownToDocumentRoundTripsThroughSerialization(t *testing.T) {
	doc := MarkdownToDocument([]byte("Hello **world**\n"))
	content, err := doc.JSON()
	if err != nil {
		t.Fatalf("Error serializing: %v", err)
	}

	restored, err := document.FromJSON(content)
	if err != nil {
		t.Fatalf("Error deserializing: %v", err)
	}
	if restored.HTML() != doc.HTML() {
		t.Errorf("Expected identical rendering after a round trip:\n%q\n%q", doc.HTML(), restored.HTML())
	}
}
