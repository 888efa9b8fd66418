package receipt

import "io"

// Color is an RGB colour with 0-255 components.
type Color struct {
	R, G, B int
}

// Stroke describes a line colour and width in millimetres.
type Stroke struct {
	Color Color
	Width float64
}

// Font selects a typeface. Style is a combination of "B", "I" or "" for regular.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// Align is horizontal text alignment relative to the x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextOptions controls how a text run is drawn. A positive MaxWidth wraps the
// text into several lines spaced LineHeight apart (or a font-derived height).
type TextOptions struct {
	Font       Font
	Color      Color
	Align      Align
	MaxWidth   float64
	LineHeight float64
}

// Canvas is the set of drawing primitives the composer needs. Coordinates are
// millimetres from the top-left corner of the current page; text y is the
// baseline of the first line.
type Canvas interface {
	PageSize() (width, height float64)
	AddPage()
	Rect(x, y, w, h float64, stroke *Stroke, fill *Color)
	Circle(x, y, r float64, fill Color)
	Line(x1, y1, x2, y2 float64, stroke Stroke)
	// Text draws text and returns the number of lines used.
	Text(x, y float64, text string, opts TextOptions) int
	// Err returns the first error raised by the backend, if any.
	Err() error
}

// Document is a Canvas that can be exported once composition is done.
type Document interface {
	Canvas
	PageCount() int
	Output(w io.Writer) error
}

// DefaultLineHeight returns the line height for a font size given in points.
func DefaultLineHeight(size float64) float64 {
	const ptToMM = 25.4 / 72
	return size * ptToMM * 1.15
}
