package document

import (
	"fmt"
	"html"
	"strings"
)

// HTML serialization. Lines are delimited by newline runes; consecutive
// lines sharing a list attribute render as one <ol>/<ul> block, plain
// lines render as paragraphs, and empty lines render as the canonical
// empty paragraph marker.

type segment struct {
	text  string
	embed *Embed
	attrs Attributes
}

type htmlLine struct {
	segs []segment
	list string
	code string
}

func (d *Document) lines() []htmlLine {
	var lines []htmlLine
	cur := htmlLine{}
	for _, n := range d.nodes {
		if n.Embed != nil {
			cur.segs = append(cur.segs, segment{embed: n.Embed, attrs: n.Attrs})
			continue
		}
		parts := strings.Split(n.Text, "\n")
		for pi, part := range parts {
			if part != "" {
				cur.segs = append(cur.segs, segment{text: part, attrs: n.Attrs})
			}
			if pi < len(parts)-1 {
				// The newline rune carries its line's attributes.
				if v, ok := n.Attrs[AttrList].(string); ok {
					cur.list = v
				}
				switch v := n.Attrs[AttrCodeBlock].(type) {
				case string:
					cur.code = v
				case bool:
					if v {
						cur.code = "plaintext"
					}
				}
				lines = append(lines, cur)
				cur = htmlLine{}
			}
		}
	}
	if len(cur.segs) > 0 || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

// HTML returns the serialized document HTML. The output is canonical up
// to empty-line placement; the normalizer finishes the job before
// storage or publish.
func (d *Document) HTML() string {
	if d.Length() == 0 {
		return ""
	}

	lines := d.lines()
	var b strings.Builder
	i := 0
	for i < len(lines) {
		ln := lines[i]
		if ln.code != "" {
			fmt.Fprintf(&b, `<pre><code class="language-%s">`, ln.code)
			first := true
			for i < len(lines) && lines[i].code == ln.code {
				if !first {
					b.WriteString("\n")
				}
				first = false
				for _, seg := range lines[i].segs {
					if seg.embed == nil {
						b.WriteString(html.EscapeString(seg.text))
					}
				}
				i++
			}
			b.WriteString("</code></pre>")
			continue
		}
		if ln.list != "" {
			tag := "ol"
			if ln.list == ListBullet {
				tag = "ul"
			}
			b.WriteString("<" + tag + ">")
			for i < len(lines) && lines[i].list == ln.list {
				b.WriteString("<li>")
				writeSegments(&b, lines[i].segs)
				b.WriteString("</li>")
				i++
			}
			b.WriteString("</" + tag + ">")
			continue
		}
		if len(ln.segs) == 0 {
			b.WriteString("<p><br></p>")
		} else {
			b.WriteString("<p>")
			writeSegments(&b, ln.segs)
			b.WriteString("</p>")
		}
		i++
	}
	return b.String()
}

func writeSegments(b *strings.Builder, segs []segment) {
	for _, seg := range segs {
		if seg.embed != nil {
			writeEmbed(b, seg.embed)
			continue
		}
		b.WriteString(renderRun(seg.text, seg.attrs))
	}
}

func writeEmbed(b *strings.Builder, e *Embed) {
	var style string
	if e.Width != "" {
		style += "width:" + e.Width + ";"
	}
	if e.Height != "" {
		style += "height:" + e.Height + ";"
	}
	if style != "" {
		fmt.Fprintf(b, `<img src=%q data-embed-id=%q style=%q>`, e.Src, e.ID, style)
		return
	}
	fmt.Fprintf(b, `<img src=%q data-embed-id=%q>`, e.Src, e.ID)
}

func renderRun(text string, attrs Attributes) string {
	s := html.EscapeString(text)
	if attrs.Enabled(AttrStrike) {
		s = "<s>" + s + "</s>"
	}
	if attrs.Enabled(AttrUnderline) {
		s = "<u>" + s + "</u>"
	}
	if attrs.Enabled(AttrItalic) {
		s = "<em>" + s + "</em>"
	}
	if attrs.Enabled(AttrBold) {
		s = "<strong>" + s + "</strong>"
	}
	if size, ok := attrs[AttrSize].(string); ok && size != "" {
		s = fmt.Sprintf(`<span style="font-size:%s">%s</span>`, size, s)
	}
	if href, ok := attrs[AttrLink].(string); ok && href != "" {
		s = fmt.Sprintf(`<a href=%q>%s</a>`, href, s)
	}
	return s
}
