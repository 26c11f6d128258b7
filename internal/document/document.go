// Package document implements the linear offset-addressed content model:
// an ordered sequence of text runs and embed nodes sharing one offset
// space. Text offsets are rune-based; every embed occupies exactly one
// offset unit.
package document

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrOutOfRange indicates an offset or length outside the valid
	// document range. Callers passing user-driven selections should
	// never trigger it.
	ErrOutOfRange = errors.New("offset out of range")

	// ErrNotEmbed indicates the node at the given offset is not an embed.
	ErrNotEmbed = errors.New("node at offset is not an embed")
)

// EmbedKindImage is the only embed kind currently supported.
const EmbedKindImage = "image"

// Embed is a non-text node occupying one offset unit. ID is the canonical
// embed identity assigned at insertion; metadata records correlate to
// embeds through it, never through Src equality.
type Embed struct {
	ID     string
	Kind   string
	Src    string
	Width  string
	Height string
}

// NewEmbedID returns a fresh canonical embed identity.
func NewEmbedID() string {
	return uuid.New().String()
}

// Node is a single content node: a text run when Embed is nil, otherwise
// an embed.
type Node struct {
	Text  string
	Embed *Embed
	Attrs Attributes
}

func (n Node) length() int {
	if n.Embed != nil {
		return 1
	}
	return len([]rune(n.Text))
}

// Document holds the canonical content. The zero value is not usable;
// construct with New.
type Document struct {
	nodes []Node
}

func New() *Document {
	return &Document{}
}

// Length returns the total length of the document in offset units.
func (d *Document) Length() int {
	total := 0
	for _, n := range d.nodes {
		total += n.length()
	}
	return total
}

func (d *Document) validRange(index, length int) bool {
	return index >= 0 && length >= 0 && index+length <= d.Length()
}

// splitAt ensures a node boundary exists at offset and returns the index
// of the node starting there. offset must already be validated.
func (d *Document) splitAt(offset int) int {
	pos := 0
	for i := 0; i < len(d.nodes); i++ {
		if pos == offset {
			return i
		}
		nl := d.nodes[i].length()
		if offset < pos+nl {
			r := []rune(d.nodes[i].Text)
			k := offset - pos
			left := Node{Text: string(r[:k]), Attrs: d.nodes[i].Attrs.Clone()}
			right := Node{Text: string(r[k:]), Attrs: d.nodes[i].Attrs.Clone()}
			d.nodes = append(d.nodes[:i], append([]Node{left, right}, d.nodes[i+1:]...)...)
			return i + 1
		}
		pos += nl
	}
	return len(d.nodes)
}

// coalesce merges adjacent text runs with equal attributes and drops
// empty runs.
func (d *Document) coalesce() {
	merged := d.nodes[:0]
	for _, n := range d.nodes {
		if n.Embed == nil && n.Text == "" {
			continue
		}
		if len(merged) > 0 {
			last := &merged[len(merged)-1]
			if last.Embed == nil && n.Embed == nil && last.Attrs.Equal(n.Attrs) {
				last.Text += n.Text
				continue
			}
		}
		merged = append(merged, n)
	}
	d.nodes = merged
}

// InsertText inserts text at index with the given attributes. Every node
// at or after index shifts forward by the inserted length.
func (d *Document) InsertText(index int, text string, attrs Attributes) error {
	if index < 0 || index > d.Length() {
		return ErrOutOfRange
	}
	if text == "" {
		return nil
	}
	i := d.splitAt(index)
	node := Node{Text: text, Attrs: attrs.Clone()}
	d.nodes = append(d.nodes[:i], append([]Node{node}, d.nodes[i:]...)...)
	d.coalesce()
	return nil
}

// InsertEmbed inserts an embed node at index. The embed occupies exactly
// one offset unit. An empty ID is assigned a fresh identity.
func (d *Document) InsertEmbed(index int, embed Embed) error {
	if index < 0 || index > d.Length() {
		return ErrOutOfRange
	}
	if embed.ID == "" {
		embed.ID = NewEmbedID()
	}
	if embed.Kind == "" {
		embed.Kind = EmbedKindImage
	}
	i := d.splitAt(index)
	node := Node{Embed: &embed}
	d.nodes = append(d.nodes[:i], append([]Node{node}, d.nodes[i:]...)...)
	return nil
}

// DeleteRange removes length offset units starting at index. Every node
// after the deleted range shifts backward by the deleted length.
func (d *Document) DeleteRange(index, length int) error {
	if !d.validRange(index, length) {
		return ErrOutOfRange
	}
	if length == 0 {
		return nil
	}
	i := d.splitAt(index)
	j := d.splitAt(index + length)
	d.nodes = append(d.nodes[:i], d.nodes[j:]...)
	d.coalesce()
	return nil
}

// FormatRange applies an attribute value over [index, index+length).
// A false, nil or empty value clears the attribute. Line-level attributes
// expand to every full line touched by the range.
func (d *Document) FormatRange(index, length int, attr string, value any) error {
	if !d.validRange(index, length) {
		return ErrOutOfRange
	}
	if IsLineAttr(attr) {
		index, length = d.lineSpan(index, length)
	}
	if length == 0 {
		return nil
	}
	i := d.splitAt(index)
	j := d.splitAt(index + length)
	for k := i; k < j; k++ {
		if unset(value) {
			delete(d.nodes[k].Attrs, attr)
			continue
		}
		if d.nodes[k].Attrs == nil {
			d.nodes[k].Attrs = Attributes{}
		}
		d.nodes[k].Attrs[attr] = value
	}
	d.coalesce()
	return nil
}

// Formats returns the attribute set common to the entire range, or the
// attribute set at a single caret when length is zero. Caret formats are
// those of the preceding character, matching continued-typing behavior.
func (d *Document) Formats(index, length int) (Attributes, error) {
	if !d.validRange(index, length) {
		return nil, ErrOutOfRange
	}
	if length == 0 {
		if index > 0 {
			index--
		}
		if d.Length() == 0 {
			return Attributes{}, nil
		}
		length = 1
	}

	var common Attributes
	pos := 0
	for _, n := range d.nodes {
		nl := n.length()
		if pos+nl > index && pos < index+length {
			if common == nil {
				common = n.Attrs.Clone()
				if common == nil {
					common = Attributes{}
				}
			} else {
				for k, v := range common {
					if nv, ok := n.Attrs[k]; !ok || nv != v {
						delete(common, k)
					}
				}
			}
		}
		pos += nl
		if pos >= index+length {
			break
		}
	}
	if common == nil {
		common = Attributes{}
	}
	return common, nil
}

// LineFormats returns the attribute set common to the newline runes of
// every line touched by the range. Line attributes ride on newline
// runes, so this is the authoritative read for line-level state; an
// unterminated final line contributes nothing.
func (d *Document) LineFormats(index, length int) (Attributes, error) {
	if !d.validRange(index, length) {
		return nil, ErrOutOfRange
	}
	start, span := d.lineSpan(index, length)
	text := d.chars()

	var common Attributes
	for i := start; i < start+span; i++ {
		if text[i] != '\n' {
			continue
		}
		attrs, err := d.Formats(i, 1)
		if err != nil {
			return nil, err
		}
		if common == nil {
			common = attrs
			continue
		}
		for k, v := range common {
			if nv, ok := attrs[k]; !ok || nv != v {
				delete(common, k)
			}
		}
	}
	if common == nil {
		common = Attributes{}
	}
	return common, nil
}

// SetEmbedSize updates the visual size of the embed at index. Empty
// dimension strings leave the current value untouched.
func (d *Document) SetEmbedSize(index int, width, height string) error {
	if index < 0 || index >= d.Length() {
		return ErrOutOfRange
	}
	pos := 0
	for i := range d.nodes {
		nl := d.nodes[i].length()
		if index < pos+nl {
			if d.nodes[i].Embed == nil {
				return ErrNotEmbed
			}
			if width != "" {
				d.nodes[i].Embed.Width = width
			}
			if height != "" {
				d.nodes[i].Embed.Height = height
			}
			return nil
		}
		pos += nl
	}
	return ErrOutOfRange
}

// EmbedAt returns a copy of the embed occupying the given offset.
func (d *Document) EmbedAt(index int) (Embed, bool) {
	if index < 0 || index >= d.Length() {
		return Embed{}, false
	}
	pos := 0
	for _, n := range d.nodes {
		nl := n.length()
		if index < pos+nl {
			if n.Embed == nil {
				return Embed{}, false
			}
			return *n.Embed, true
		}
		pos += nl
	}
	return Embed{}, false
}

// FindEmbed locates an embed by its canonical identity and returns its
// current offset.
func (d *Document) FindEmbed(id string) (int, Embed, bool) {
	pos := 0
	for _, n := range d.nodes {
		if n.Embed != nil && n.Embed.ID == id {
			return pos, *n.Embed, true
		}
		pos += n.length()
	}
	return 0, Embed{}, false
}

// Embeds returns copies of every embed node in document order.
func (d *Document) Embeds() []Embed {
	var embeds []Embed
	for _, n := range d.nodes {
		if n.Embed != nil {
			embeds = append(embeds, *n.Embed)
		}
	}
	return embeds
}

// Nodes returns a copy of the node sequence in document order.
func (d *Document) Nodes() []Node {
	nodes := make([]Node, len(d.nodes))
	for i, n := range d.nodes {
		nodes[i] = n
		nodes[i].Attrs = n.Attrs.Clone()
		if n.Embed != nil {
			e := *n.Embed
			nodes[i].Embed = &e
		}
	}
	return nodes
}

// Text returns the plain text content. Embeds contribute nothing.
func (d *Document) Text() string {
	var b strings.Builder
	for _, n := range d.nodes {
		if n.Embed == nil {
			b.WriteString(n.Text)
		}
	}
	return b.String()
}

// chars returns the document as a rune sequence with embeds replaced by
// the object replacement character, preserving offset arithmetic.
func (d *Document) chars() []rune {
	var b []rune
	for _, n := range d.nodes {
		if n.Embed != nil {
			b = append(b, '￼')
			continue
		}
		b = append(b, []rune(n.Text)...)
	}
	return b
}

// lineSpan expands [index, index+length) to cover every full line it
// touches, including each line's terminating newline so line attributes
// travel with it.
func (d *Document) lineSpan(index, length int) (int, int) {
	text := d.chars()
	start := index
	for start > 0 && text[start-1] != '\n' {
		start--
	}
	end := index + length
	for end < len(text) && text[end] != '\n' {
		end++
	}
	if end < len(text) {
		end++
	}
	return start, end - start
}
