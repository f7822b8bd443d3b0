package asf

import (
	"slices"
	"testing"
)

func TestContourInsertEmpty(t *testing.T) {
	c := NewContour()
	c.Insert(0, 0, 4, 2)

	want := [][2]int{{0, 2}, {4, 0}}
	if got := c.Points(); !slices.Equal(got, want) {
		t.Errorf("Points() = %v, want %v", got, want)
	}
}

func TestContourHeightAt(t *testing.T) {
	c := NewContour()
	c.Insert(0, 0, 4, 2)
	c.Insert(4, 0, 2, 5)

	tests := []struct {
		name string
		x    int
		want int
	}{
		{"left of contour", -1, 0},
		{"first segment", 0, 2},
		{"inside first segment", 3, 2},
		{"second segment", 4, 5},
		{"inside second segment", 5, 5},
		{"past the end", 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.HeightAt(tt.x); got != tt.want {
				t.Errorf("HeightAt(%d) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}

func TestContourMaxHeightOver(t *testing.T) {
	c := NewContour()
	c.Insert(0, 0, 4, 2)
	c.Insert(4, 0, 2, 5)

	tests := []struct {
		name     string
		x, width int
		want     int
	}{
		{"first segment only", 0, 4, 2},
		{"spanning both", 2, 4, 5},
		{"second segment only", 4, 2, 5},
		{"past the end", 10, 3, 0},
		{"tail of first segment", 3, 1, 2},
		{"straddling the end", 5, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.MaxHeightOver(tt.x, tt.width); got != tt.want {
				t.Errorf("MaxHeightOver(%d, %d) = %d, want %d", tt.x, tt.width, got, tt.want)
			}
		})
	}
}

func TestContourInsertRaisesLeftEdge(t *testing.T) {
	c := NewContour()
	c.Insert(0, 0, 4, 2)
	// A narrower rectangle stacked on the left keeps the skyline height of
	// the uncovered tail [3, 4).
	c.Insert(0, 2, 3, 3)

	want := [][2]int{{0, 5}, {3, 2}, {4, 0}}
	if got := c.Points(); !slices.Equal(got, want) {
		t.Errorf("Points() = %v, want %v", got, want)
	}
	if got := c.HeightAt(3); got != 2 {
		t.Errorf("HeightAt(3) = %d, want 2", got)
	}
}

func TestContourInsertSwallowsIntermediatePoints(t *testing.T) {
	c := NewContour()
	c.Insert(0, 0, 2, 1)
	c.Insert(2, 0, 2, 3)
	c.Insert(4, 0, 2, 2)
	// Cover everything with one tall rectangle; the old points fall away.
	c.Insert(0, 0, 6, 7)

	want := [][2]int{{0, 7}, {6, 0}}
	if got := c.Points(); !slices.Equal(got, want) {
		t.Errorf("Points() = %v, want %v", got, want)
	}
}

func TestContourInsertKeepsTallerPoints(t *testing.T) {
	c := NewContour()
	c.Insert(0, 0, 2, 1)
	c.Insert(2, 0, 2, 6)
	// A lower rectangle across the whole range must not clip the tower at 2.
	c.Insert(0, 1, 4, 1)

	want := [][2]int{{0, 2}, {2, 6}, {4, 0}}
	if got := c.Points(); !slices.Equal(got, want) {
		t.Errorf("Points() = %v, want %v", got, want)
	}
}

func TestContourReset(t *testing.T) {
	c := NewContour()
	c.Insert(0, 0, 4, 2)
	c.Reset()

	if got := c.Points(); got != nil {
		t.Errorf("Points() after Reset = %v, want nil", got)
	}
	if got := c.MaxHeightOver(0, 100); got != 0 {
		t.Errorf("MaxHeightOver after Reset = %d, want 0", got)
	}
}

func TestContourInsertDisjointSegments(t *testing.T) {
	c := NewContour()
	c.Insert(0, 0, 2, 2)
	c.Insert(6, 0, 2, 3)

	want := [][2]int{{0, 2}, {2, 0}, {6, 3}, {8, 0}}
	if got := c.Points(); !slices.Equal(got, want) {
		t.Errorf("Points() = %v, want %v", got, want)
	}
	if got := c.MaxHeightOver(2, 4); got != 0 {
		t.Errorf("MaxHeightOver over the gap = %d, want 0", got)
	}
}
