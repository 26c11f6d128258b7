package document

// Attribute keys understood by the document model.
const (
	AttrBold      = "bold"
	AttrItalic    = "italic"
	AttrUnderline = "underline"
	AttrStrike    = "strike"
	AttrSize      = "size"
	AttrList      = "list"
	AttrLink      = "link"
	AttrCodeBlock = "code-block"
)

// List attribute values.
const (
	ListOrdered = "ordered"
	ListBullet  = "bullet"
)

// SizeLadder is the fixed set of discrete text sizes, smallest to largest.
// Sizes are applied as level 1-6 and cleared with a false sentinel.
var SizeLadder = []string{"12px", "14px", "16px", "20px", "24px", "32px"}

// SizeForLevel maps a 1-based ladder level to its size value.
func SizeForLevel(level int) (string, bool) {
	if level < 1 || level > len(SizeLadder) {
		return "", false
	}
	return SizeLadder[level-1], true
}

// IsLineAttr reports whether an attribute applies to whole lines rather
// than character runs.
func IsLineAttr(attr string) bool {
	return attr == AttrList || attr == AttrCodeBlock
}

// Attributes is the format attribute set of a text run or embed.
type Attributes map[string]any

func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	c := make(Attributes, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Enabled reports whether a boolean attribute is set to true.
func (a Attributes) Enabled(attr string) bool {
	v, ok := a[attr]
	return ok && v == true
}

func (a Attributes) Equal(b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// unset reports whether a value is the clearing sentinel for an attribute.
func unset(value any) bool {
	return value == nil || value == false || value == ""
}
