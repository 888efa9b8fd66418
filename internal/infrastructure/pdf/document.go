package pdf

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/iho/goreceipts/internal/receipt"
)

// ErrNotRendered is returned by Output before any page was added.
var ErrNotRendered = errors.New("pdf: document has no pages")

// Document is a receipt.Document backed by gofpdf. Text is converted to
// cp1252 so the core fonts can print accented Spanish characters.
type Document struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
}

var _ receipt.Document = (*Document)(nil)

// Factory creates documents sized for a layout.
type Factory struct {
	Title   string
	Creator string
}

// NewDocument creates an empty document for the layout's page format.
func (f Factory) NewDocument(layout receipt.Layout) (receipt.Document, error) {
	return New(layout.PageFormat, f.Title, f.Creator)
}

// New creates an empty portrait document in millimetres.
func New(pageFormat, title, creator string) (*Document, error) {
	if pageFormat == "" {
		pageFormat = "Letter"
	}

	p := gofpdf.New("P", "mm", pageFormat, "")
	if p.Err() {
		return nil, fmt.Errorf("pdf: new document: %w", p.Error())
	}

	p.SetAutoPageBreak(false, 0)
	p.SetMargins(0, 0, 0)

	translate := p.UnicodeTranslatorFromDescriptor("")
	if title != "" {
		p.SetTitle(title, true)
	}
	if creator != "" {
		p.SetCreator(creator, true)
	}

	return &Document{pdf: p, translate: translate}, nil
}

func (d *Document) PageSize() (float64, float64) {
	return d.pdf.GetPageSize()
}

func (d *Document) AddPage() {
	d.pdf.AddPage()
}

func (d *Document) Rect(x, y, w, h float64, stroke *receipt.Stroke, fill *receipt.Color) {
	style := ""
	if stroke != nil {
		d.setStroke(*stroke)
		style += "D"
	}
	if fill != nil {
		d.pdf.SetFillColor(fill.R, fill.G, fill.B)
		style += "F"
	}
	if style == "" {
		return
	}
	if style == "DF" {
		style = "FD"
	}
	d.pdf.Rect(x, y, w, h, style)
}

func (d *Document) Circle(x, y, r float64, fill receipt.Color) {
	d.pdf.SetFillColor(fill.R, fill.G, fill.B)
	d.pdf.Circle(x, y, r, "F")
}

func (d *Document) Line(x1, y1, x2, y2 float64, stroke receipt.Stroke) {
	d.setStroke(stroke)
	d.pdf.Line(x1, y1, x2, y2)
}

// Text draws text with its first baseline at y. With a positive MaxWidth the
// text is wrapped on word boundaries.
func (d *Document) Text(x, y float64, text string, opts receipt.TextOptions) int {
	d.pdf.SetFont(opts.Font.Family, opts.Font.Style, opts.Font.Size)
	d.pdf.SetTextColor(opts.Color.R, opts.Color.G, opts.Color.B)

	encoded := d.translate(text)
	lines := []string{encoded}
	if opts.MaxWidth > 0 && d.pdf.GetStringWidth(encoded) > opts.MaxWidth {
		lines = lines[:0]
		for _, l := range d.pdf.SplitLines([]byte(encoded), opts.MaxWidth) {
			lines = append(lines, strings.TrimRight(string(l), " "))
		}
		if len(lines) == 0 {
			lines = []string{encoded}
		}
	}

	lineHeight := opts.LineHeight
	if lineHeight <= 0 {
		lineHeight = receipt.DefaultLineHeight(opts.Font.Size)
	}

	for i, line := range lines {
		lx := x
		switch opts.Align {
		case receipt.AlignCenter:
			lx = x - d.pdf.GetStringWidth(line)/2
		case receipt.AlignRight:
			lx = x - d.pdf.GetStringWidth(line)
		}
		d.pdf.Text(lx, y+float64(i)*lineHeight, line)
	}

	return len(lines)
}

func (d *Document) Err() error {
	if d.pdf.Err() {
		return d.pdf.Error()
	}
	return nil
}

func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// Output writes the finished PDF to w.
func (d *Document) Output(w io.Writer) error {
	if d.pdf.PageCount() == 0 {
		return ErrNotRendered
	}
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: output: %w", err)
	}
	return nil
}

func (d *Document) setStroke(s receipt.Stroke) {
	d.pdf.SetDrawColor(s.Color.R, s.Color.G, s.Color.B)
	d.pdf.SetLineWidth(s.Width)
}
