package receipt

import (
	"errors"
	"testing"
)

func TestStackedLayout(t *testing.T) {
	l := StackedLayout()

	if err := l.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if l.BlocksPerPage() != 2 {
		t.Fatalf("BlocksPerPage = %d, want 2", l.BlocksPerPage())
	}

	x, y := l.Slot(1)
	if x != 12 || y != 12+90+8 {
		t.Fatalf("Slot(1) = (%v, %v), want (12, 110)", x, y)
	}
}

func TestGridLayout(t *testing.T) {
	l := GridLayout()

	if err := l.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if l.BlocksPerPage() != 6 {
		t.Fatalf("BlocksPerPage = %d, want 6", l.BlocksPerPage())
	}

	x0, y0 := l.Slot(0)
	x1, y1 := l.Slot(1)
	x2, y2 := l.Slot(2)
	if x0 != 10 || y0 != 10 {
		t.Fatalf("Slot(0) = (%v, %v), want (10, 10)", x0, y0)
	}
	if y1 != y0 || x1 <= x0 {
		t.Fatalf("Slot(1) = (%v, %v), want same row to the right", x1, y1)
	}
	if x2 != x0 || y2 <= y0 {
		t.Fatalf("Slot(2) = (%v, %v), want next row", x2, y2)
	}
}

func TestLayoutBlocksStayInsideMargins(t *testing.T) {
	for _, l := range []Layout{StackedLayout(), GridLayout()} {
		for i := 0; i < l.BlocksPerPage(); i++ {
			x, y := l.Slot(i)
			if x < l.Margin || y < l.Margin {
				t.Fatalf("%s slot %d starts inside the margin", l.Name, i)
			}
			if x+l.BlockWidth > l.PageWidth-l.Margin+0.01 || y+l.BlockHeight > l.PageHeight-l.Margin+0.01 {
				t.Fatalf("%s slot %d overflows the page", l.Name, i)
			}
		}
	}
}

func TestLayoutPagesFor(t *testing.T) {
	tests := []struct {
		layout Layout
		n      int
		want   int
	}{
		{StackedLayout(), 0, 0},
		{StackedLayout(), 1, 1},
		{StackedLayout(), 2, 1},
		{StackedLayout(), 3, 2},
		{StackedLayout(), 30, 15},
		{GridLayout(), 6, 1},
		{GridLayout(), 7, 2},
		{GridLayout(), 30, 5},
	}

	for _, tt := range tests {
		if got := tt.layout.PagesFor(tt.n); got != tt.want {
			t.Fatalf("%s PagesFor(%d) = %d, want %d", tt.layout.Name, tt.n, got, tt.want)
		}
	}
}

func TestLayoutByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", LayoutStacked, false},
		{"stacked", LayoutStacked, false},
		{" GRID ", LayoutGrid, false},
		{"poster", "", true},
	}

	for _, tt := range tests {
		l, err := LayoutByName(tt.name)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidLayout) {
				t.Fatalf("LayoutByName(%q) error = %v, want ErrInvalidLayout", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("LayoutByName(%q): %v", tt.name, err)
		}
		if l.Name != tt.want {
			t.Fatalf("LayoutByName(%q) = %q, want %q", tt.name, l.Name, tt.want)
		}
	}
}

func TestLayoutValidateRejectsOverflow(t *testing.T) {
	l := StackedLayout()
	l.Rows = 3

	if err := l.Validate(); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("Validate() = %v, want ErrInvalidLayout", err)
	}
}
