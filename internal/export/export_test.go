package export

import (
	"strings"
	"testing"
	"time"

	"github.com/debemdeboas/the-draft/internal/document"
	"github.com/debemdeboas/the-draft/internal/model"
)

func TestBody(t *testing.T) {
	t.Run("plain paragraphs", func(t *testing.T) {
		doc := document.New()
		doc.InsertText(0, "first\nsecond\n", nil)

		got := Body(doc)
		want := "first\n\nsecond\n"
		if got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("inline formats", func(t *testing.T) {
		doc := document.New()
		doc.InsertText(0, "plain bold italic", nil)
		doc.FormatRange(6, 4, document.AttrBold, true)
		doc.FormatRange(11, 6, document.AttrItalic, true)

		got := Body(doc)
		if !strings.Contains(got, "**bold**") {
			t.Errorf("Expected bold markers, got %q", got)
		}
		if !strings.Contains(got, "*italic*") {
			t.Errorf("Expected italic markers, got %q", got)
		}
	})

	t.Run("links", func(t *testing.T) {
		doc := document.New()
		doc.InsertText(0, "docs", document.Attributes{document.AttrLink: "https://example.com"})

		got := Body(doc)
		if !strings.Contains(got, "[docs](https://example.com)") {
			t.Errorf("Expected markdown link, got %q", got)
		}
	})

	t.Run("ordered list", func(t *testing.T) {
		doc := document.New()
		doc.InsertText(0, "one\ntwo\n", nil)
		doc.FormatRange(0, 8, document.AttrList, document.ListOrdered)

		got := Body(doc)
		if !strings.Contains(got, "1. one\n2. two\n") {
			t.Errorf("Expected ordered list items, got %q", got)
		}
	})

	t.Run("code block with language", func(t *testing.T) {
		doc := document.New()
		doc.InsertText(0, "x := 1\n", nil)
		doc.FormatRange(0, 7, document.AttrCodeBlock, "go")

		got := Body(doc)
		if !strings.Contains(got, "```go\nx := 1\n```") {
			t.Errorf("Expected fenced code block, got %q", got)
		}
	})

	t.Run("heading from uniform size", func(t *testing.T) {
		doc := document.New()
		size, _ := document.SizeForLevel(len(document.SizeLadder))
		doc.InsertText(0, "Title", document.Attributes{document.AttrSize: size})

		got := Body(doc)
		if !strings.HasPrefix(got, "# Title") {
			t.Errorf("Expected h1 heading, got %q", got)
		}
	})

	t.Run("embed becomes image", func(t *testing.T) {
		doc := document.New()
		doc.InsertEmbed(0, document.Embed{Src: "https://img.example/cat.png"})

		got := Body(doc)
		if !strings.Contains(got, "![](https://img.example/cat.png)") {
			t.Errorf("Expected markdown image, got %q", got)
		}
	})
}

func TestMarkdown(t *testing.T) {
	doc := document.New()
	doc.InsertText(0, "hello world", nil)
	content, err := doc.JSON()
	if err != nil {
		t.Fatalf("Failed to serialize document: %v", err)
	}

	post := model.Post{
		ID:          model.NewPostID(),
		Title:       "Hello",
		Content:     content,
		Tags:        []string{"intro", "test"},
		CreatedDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	out, err := Markdown(post)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.HasPrefix(out, "%%%\n") {
		t.Errorf("Expected front matter delimiter, got %q", out)
	}
	if !strings.Contains(out, `title = "Hello"`) {
		t.Errorf("Expected title in front matter, got %q", out)
	}
	if !strings.Contains(out, "hello world") {
		t.Errorf("Expected body content, got %q", out)
	}

	t.Run("round trips through front matter parser", func(t *testing.T) {
		info, err := ParseFrontMatter([]byte(out))
		if err != nil {
			t.Fatalf("Expected front matter to parse, got %v", err)
		}
		if info.Title != "Hello" {
			t.Errorf("Expected title 'Hello', got %q", info.Title)
		}
		if !info.Date.Equal(post.CreatedDate) {
			t.Errorf("Expected date %v, got %v", post.CreatedDate, info.Date)
		}
		if len(info.Tags) != 2 || info.Tags[0] != "intro" {
			t.Errorf("Expected tags to round trip, got %v", info.Tags)
		}
	})
}

func TestParseFrontMatter(t *testing.T) {
	testCases := []struct {
		name          string
		markdown      []byte
		expectError   bool
		expectedTitle string
		expectedDate  time.Time
	}{
		{
			name: "Valid Front Matter",
			markdown: []byte(`%%%
title = "Hello World"
date = 2025-01-01T00:00:00Z
%%%
# Content`),
			expectError:   false,
			expectedTitle: "Hello World",
			expectedDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "No Front Matter",
			markdown: []byte(`# Just Content
No front matter here.`),
			expectError: true,
		},
		{
			name:        "Empty File",
			markdown:    []byte(""),
			expectError: true,
		},
		{
			name: "Content Before Front Matter",
			markdown: []byte(`
# This should be ignored
%%%
title = "Hello World"
%%%
# Content`),
			expectError: true,
		},
		{
			name: "Malformed Front Matter",
			markdown: []byte(`%%%
title = "Incomplete
# Content`),
			expectError: true,
		},
		{
			name: "Front Matter with No Title",
			markdown: []byte(`%%%
date = 2025-01-01T00:00:00Z
%%%
# Content`),
			expectError:   false,
			expectedTitle: "",
			expectedDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "Only Delimiters",
			markdown:    []byte("%%% %%%"),
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info, err := ParseFrontMatter(tc.markdown)

			if tc.expectError {
				if err == nil {
					t.Errorf("Expected error, but got none")
				}
				if info != nil {
					t.Errorf("Expected nil info when error occurs, but got %+v", info)
				}
				return
			}

			if err != nil {
				t.Fatalf("Expected no error, but got: %v", err)
			}

			if info == nil {
				t.Fatal("Expected front matter info, but got nil")
			}

			if info.Title != tc.expectedTitle {
				t.Errorf("Expected title '%s', but got '%s'", tc.expectedTitle, info.Title)
			}

			if !info.Date.Equal(tc.expectedDate) {
				t.Errorf("Expected date '%v', but got '%v'", tc.expectedDate, info.Date)
			}
		})
	}
}
