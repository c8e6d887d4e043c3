package pitchdeck

import "io"

// Part is a page range of one source document. From and To are 1-based and
// inclusive; a zero From selects every page.
type Part struct {
	Name string
	Data []byte
	From int
	To   int
}

// Whole reports whether the part spans the entire document.
func (p Part) Whole() bool {
	return p.From == 0
}

// Codec reads and writes the binary document format.
type Codec interface {
	PageCount(data []byte) (int, error)
	Merge(w io.Writer, parts []Part) error
}
