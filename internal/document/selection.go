package document

// Selection addresses a range of the document's linear offset space.
// Length zero denotes a caret.
type Selection struct {
	Index  int `json:"index"`
	Length int `json:"length"`
}

// Caret returns a zero-length selection at the given offset.
func Caret(index int) Selection {
	return Selection{Index: index}
}

func (s Selection) IsCaret() bool {
	return s.Length == 0
}

// End returns the exclusive upper bound of the selection.
func (s Selection) End() int {
	return s.Index + s.Length
}

// Valid reports whether the selection fits a document of the given length.
func (s Selection) Valid(docLength int) bool {
	return s.Index >= 0 && s.Length >= 0 && s.End() <= docLength
}
