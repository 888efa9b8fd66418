package receipt

import (
	"errors"
	"fmt"
	"strings"
)

// Layout names
const (
	LayoutStacked = "stacked"
	LayoutGrid    = "grid"
)

// US Letter, in millimetres.
const (
	LetterWidth  = 215.9
	LetterHeight = 279.4
)

// ErrInvalidLayout is returned for layouts whose blocks do not fit the page.
var ErrInvalidLayout = errors.New("invalid layout")

// Layout describes page geometry and the grid of receipt blocks on a page.
// All lengths are in millimetres.
type Layout struct {
	Name        string
	PageFormat  string
	PageWidth   float64
	PageHeight  float64
	Margin      float64
	Gap         float64
	Columns     int
	Rows        int
	BlockWidth  float64
	BlockHeight float64
}

// StackedLayout is one full-width, 90 mm tall receipt per row, as many rows
// as fit between the margins (two on letter paper).
func StackedLayout() Layout {
	l := Layout{
		Name:        LayoutStacked,
		PageFormat:  "Letter",
		PageWidth:   LetterWidth,
		PageHeight:  LetterHeight,
		Margin:      12,
		Gap:         8,
		Columns:     1,
		BlockHeight: 90,
	}
	l.BlockWidth = l.PageWidth - 2*l.Margin
	l.Rows = l.rowsThatFit()
	return l
}

// GridLayout is a 2x3 grid with equal margins and gutters (six per page).
func GridLayout() Layout {
	l := Layout{
		Name:       LayoutGrid,
		PageFormat: "Letter",
		PageWidth:  LetterWidth,
		PageHeight: LetterHeight,
		Margin:     10,
		Gap:        10,
		Columns:    2,
		Rows:       3,
	}
	l.BlockWidth = (l.PageWidth - float64(l.Columns+1)*l.Margin) / float64(l.Columns)
	l.BlockHeight = (l.PageHeight - float64(l.Rows+1)*l.Margin) / float64(l.Rows)
	return l
}

// LayoutByName returns a preset layout.
func LayoutByName(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LayoutStacked:
		return StackedLayout(), nil
	case LayoutGrid:
		return GridLayout(), nil
	default:
		return Layout{}, fmt.Errorf("%w: unknown layout %q", ErrInvalidLayout, name)
	}
}

// BlocksPerPage returns how many receipts fit on one page.
func (l Layout) BlocksPerPage() int {
	return l.Columns * l.Rows
}

// Slot returns the top-left corner of the i-th block on a page.
func (l Layout) Slot(i int) (x, y float64) {
	col := i % l.Columns
	row := i / l.Columns
	x = l.Margin + float64(col)*(l.BlockWidth+l.Gap)
	y = l.Margin + float64(row)*(l.BlockHeight+l.Gap)
	return x, y
}

// PagesFor returns the number of pages needed for n receipts.
func (l Layout) PagesFor(n int) int {
	per := l.BlocksPerPage()
	if n <= 0 || per <= 0 {
		return 0
	}
	return (n + per - 1) / per
}

// Validate checks that every block lies inside the page margins.
func (l Layout) Validate() error {
	if l.Columns < 1 || l.Rows < 1 {
		return fmt.Errorf("%w: grid must have at least one row and column", ErrInvalidLayout)
	}
	if l.BlockWidth <= 0 || l.BlockHeight <= 0 {
		return fmt.Errorf("%w: block size must be positive", ErrInvalidLayout)
	}

	const epsilon = 0.01
	x, y := l.Slot(l.BlocksPerPage() - 1)
	if x+l.BlockWidth > l.PageWidth-l.Margin+epsilon {
		return fmt.Errorf("%w: %d columns do not fit the page width", ErrInvalidLayout, l.Columns)
	}
	if y+l.BlockHeight > l.PageHeight-l.Margin+epsilon {
		return fmt.Errorf("%w: %d rows do not fit the page height", ErrInvalidLayout, l.Rows)
	}
	return nil
}

func (l Layout) rowsThatFit() int {
	rows := 0
	for {
		y := l.Margin + float64(rows)*(l.BlockHeight+l.Gap)
		if y+l.BlockHeight > l.PageHeight-l.Margin {
			break
		}
		rows++
	}
	return rows
}
