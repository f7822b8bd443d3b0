package floorplan

import (
	"bytes"
	"slices"
	"testing"
)

func samplePlacement() (Placement, map[string]*Module) {
	a := NewModule("blk2", 4, 2)
	b := NewModule("blk10", 3, 3)
	a.SetPosition(0, 0)
	b.SetPosition(4, 0)
	b.SetRotation(true)
	table := map[string]*Module{"blk2": a, "blk10": b}

	g := NewSymmetryGroup("sg", Vertical)
	g.SetAxisPosition(5)
	return Snapshot(table, g), table
}

func TestSnapshotNaturalOrder(t *testing.T) {
	p, _ := samplePlacement()

	var names []string
	for _, b := range p.Blocks {
		names = append(names, b.Name)
	}
	// Natural ordering puts blk2 before blk10.
	if want := []string{"blk2", "blk10"}; !slices.Equal(names, want) {
		t.Errorf("block order = %v, want %v", names, want)
	}
	if len(p.Groups) != 1 || p.Groups[0].Position != 5 {
		t.Errorf("groups = %+v", p.Groups)
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	p, _ := samplePlacement()

	data, err := MarshalPlacement(p)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadPlacement(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(got.Blocks, p.Blocks) {
		t.Errorf("round-trip blocks = %+v, want %+v", got.Blocks, p.Blocks)
	}
	if !slices.Equal(got.Groups, p.Groups) {
		t.Errorf("round-trip groups = %+v, want %+v", got.Groups, p.Groups)
	}
}

func TestPlacementApply(t *testing.T) {
	p, table := samplePlacement()

	// Scramble, then restore from the snapshot.
	table["blk2"].SetPosition(99, 99)
	table["blk10"].SetRotation(false)
	if err := p.Apply(table); err != nil {
		t.Fatal(err)
	}
	if table["blk2"].X() != 0 || table["blk2"].Y() != 0 {
		t.Errorf("blk2 at (%d, %d), want (0, 0)", table["blk2"].X(), table["blk2"].Y())
	}
	if !table["blk10"].Rotated() {
		t.Error("blk10 rotation not restored")
	}

	if err := p.Apply(map[string]*Module{}); err == nil {
		t.Error("Apply() on empty table = nil, want error")
	}
}

func TestPlacementBoundingBox(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
		wantW  int
		wantH  int
	}{
		{
			name: "two blocks",
			blocks: []Block{
				{Name: "a", X: 0, Y: 0, Width: 4, Height: 2},
				{Name: "b", X: 4, Y: 0, Width: 3, Height: 3},
			},
			wantW: 7,
			wantH: 3,
		},
		{
			name:  "empty",
			wantW: 0,
			wantH: 0,
		},
		{
			name: "offset origin",
			blocks: []Block{
				{Name: "a", X: 2, Y: 3, Width: 2, Height: 2},
			},
			wantW: 2,
			wantH: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Placement{Blocks: tt.blocks}
			w, h := p.BoundingBox()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("BoundingBox() = (%d, %d), want (%d, %d)", w, h, tt.wantW, tt.wantH)
			}
			if got := p.Area(); got != tt.wantW*tt.wantH {
				t.Errorf("Area() = %d, want %d", got, tt.wantW*tt.wantH)
			}
		})
	}
}
