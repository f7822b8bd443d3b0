package floorplan

import "testing"

func TestModuleRotation(t *testing.T) {
	m := NewModule("a", 4, 2)

	if m.Width() != 4 || m.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 4x2", m.Width(), m.Height())
	}

	m.Rotate()
	if m.Width() != 2 || m.Height() != 4 {
		t.Errorf("rotated dimensions = %dx%d, want 2x4", m.Width(), m.Height())
	}
	if !m.Rotated() {
		t.Error("Rotated() = false after Rotate()")
	}

	m.Rotate()
	if m.Width() != 4 || m.Height() != 2 {
		t.Errorf("double-rotated dimensions = %dx%d, want 4x2", m.Width(), m.Height())
	}

	m.SetRotation(true)
	if m.Width() != 2 {
		t.Errorf("SetRotation(true): width = %d, want 2", m.Width())
	}
}

func TestModuleGeometry(t *testing.T) {
	m := NewModule("a", 4, 2)
	m.SetPosition(3, 5)

	if m.Right() != 7 || m.Top() != 7 {
		t.Errorf("edges = (%d, %d), want (7, 7)", m.Right(), m.Top())
	}
	if m.CenterX() != 5.0 || m.CenterY() != 6.0 {
		t.Errorf("center = (%v, %v), want (5, 6)", m.CenterX(), m.CenterY())
	}
}

func TestModuleOverlaps(t *testing.T) {
	tests := []struct {
		name string
		ax, ay, bx, by int
		want bool
	}{
		{"identical", 0, 0, 0, 0, true},
		{"interior overlap", 0, 0, 1, 1, true},
		{"shared vertical edge", 0, 0, 2, 0, false},
		{"shared horizontal edge", 0, 0, 0, 2, false},
		{"disjoint", 0, 0, 10, 10, false},
		{"corner contact", 0, 0, 2, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewModule("a", 2, 2)
			b := NewModule("b", 2, 2)
			a.SetPosition(tt.ax, tt.ay)
			b.SetPosition(tt.bx, tt.by)
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}
