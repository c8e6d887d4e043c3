package pitchdeck

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// pdfcpu otherwise writes a config directory under the user's home on first use.
	api.DisableConfigDir()
}

// PDFCodec implements Codec for PDF. Page counts come from ledongthuc/pdf,
// trimming and merging from pdfcpu.
type PDFCodec struct {
	conf *model.Configuration
}

// NewPDFCodec returns a codec using pdfcpu's relaxed validation mode.
func NewPDFCodec() *PDFCodec {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCodec{conf: conf}
}

// PageCount returns the number of pages in data.
func (c *PDFCodec) PageCount(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, errors.New("empty pdf data")
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	n := r.NumPage()
	if n <= 0 {
		return 0, errors.New("pdf has no pages")
	}
	return n, nil
}

// Merge writes the parts, in order, as a single PDF to w.
func (c *PDFCodec) Merge(w io.Writer, parts []Part) error {
	if len(parts) == 0 {
		return errors.New("merge: no parts")
	}
	readers := make([]io.ReadSeeker, 0, len(parts))
	for _, part := range parts {
		rs, err := c.selectPages(part)
		if err != nil {
			return fmt.Errorf("merge %s: %w", part.Name, err)
		}
		readers = append(readers, rs)
	}
	if len(readers) == 1 {
		_, err := io.Copy(w, readers[0])
		return err
	}
	if err := api.MergeRaw(readers, w, false, c.conf); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	return nil
}

func (c *PDFCodec) selectPages(part Part) (io.ReadSeeker, error) {
	src := bytes.NewReader(part.Data)
	if part.Whole() {
		return src, nil
	}
	if part.From < 1 || part.To < part.From {
		return nil, fmt.Errorf("invalid page range %d-%d", part.From, part.To)
	}
	var out bytes.Buffer
	selection := []string{fmt.Sprintf("%d-%d", part.From, part.To)}
	if err := api.Trim(src, &out, selection, c.conf); err != nil {
		return nil, fmt.Errorf("trim pages %d-%d: %w", part.From, part.To, err)
	}
	return bytes.NewReader(out.Bytes()), nil
}
