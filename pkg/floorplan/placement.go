package floorplan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/maruel/natural"
)

// =============================================================================
// Placement - Serialization Format
// =============================================================================

// Placement is the canonical serialization format for a placed design.
// Used for CLI output, archival storage, and API responses.
//
// The format is human-readable and round-trips: export → re-import produces
// an identical placement. Blocks are sorted in natural name order so output
// is deterministic.
type Placement struct {
	Blocks []Block `json:"blocks" bson:"blocks"`
	Groups []Axis  `json:"groups,omitempty" bson:"groups,omitempty"`
}

// Block is one placed module.
type Block struct {
	Name    string `json:"name" bson:"name"`
	X       int    `json:"x" bson:"x"`
	Y       int    `json:"y" bson:"y"`
	Width   int    `json:"width" bson:"width"`
	Height  int    `json:"height" bson:"height"`
	Rotated bool   `json:"rotated,omitempty" bson:"rotated,omitempty"`
}

// Axis records a symmetry group's computed axis.
type Axis struct {
	Group    string  `json:"group" bson:"group"`
	Type     string  `json:"type" bson:"type"`
	Position float64 `json:"position" bson:"position"`
}

// Right returns the x-coordinate just past the block's right edge.
func (b Block) Right() int { return b.X + b.Width }

// Top returns the y-coordinate just past the block's top edge.
func (b Block) Top() int { return b.Y + b.Height }

// BoundingBox returns the width and height of the smallest rectangle
// enclosing all blocks. Both are 0 for an empty placement.
func (p Placement) BoundingBox() (width, height int) {
	if len(p.Blocks) == 0 {
		return 0, 0
	}
	minX, minY := p.Blocks[0].X, p.Blocks[0].Y
	maxX, maxY := p.Blocks[0].Right(), p.Blocks[0].Top()
	for _, b := range p.Blocks[1:] {
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.Right())
		maxY = max(maxY, b.Top())
	}
	return maxX - minX, maxY - minY
}

// Area returns the bounding-box area of the placement.
func (p Placement) Area() int {
	w, h := p.BoundingBox()
	return w * h
}

// =============================================================================
// Module ↔ Placement Conversion
// =============================================================================

// Snapshot captures the current positions of the given modules as a
// Placement. Blocks are sorted in natural name order; group axes are taken
// from groups that have a computed axis.
func Snapshot(modules map[string]*Module, groups ...*SymmetryGroup) Placement {
	p := Placement{Blocks: make([]Block, 0, len(modules))}
	for _, m := range modules {
		p.Blocks = append(p.Blocks, Block{
			Name:    m.Name(),
			X:       m.X(),
			Y:       m.Y(),
			Width:   m.Width(),
			Height:  m.Height(),
			Rotated: m.Rotated(),
		})
	}
	slices.SortFunc(p.Blocks, func(a, b Block) int {
		if a.Name == b.Name {
			return 0
		}
		if natural.Less(a.Name, b.Name) {
			return -1
		}
		return 1
	})
	for _, g := range groups {
		if axis, ok := g.AxisPosition(); ok {
			p.Groups = append(p.Groups, Axis{Group: g.Name(), Type: g.Type().String(), Position: axis})
		}
	}
	return p
}

// Apply writes the placement's block positions and rotation state back onto
// the module table. Blocks naming unknown modules are reported as an error.
func (p Placement) Apply(modules map[string]*Module) error {
	for _, b := range p.Blocks {
		m, ok := modules[b.Name]
		if !ok {
			return fmt.Errorf("placement references unknown module %q", b.Name)
		}
		m.SetRotation(b.Rotated)
		m.SetPosition(b.X, b.Y)
	}
	return nil
}

// =============================================================================
// Placement Serialization API
// =============================================================================

// MarshalPlacement converts a placement to indented JSON bytes.
func MarshalPlacement(p Placement) ([]byte, error) {
	var buf bytes.Buffer
	if err := writePlacementTo(p, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePlacement writes a placement as JSON to an io.Writer.
func WritePlacement(p Placement, w io.Writer) error {
	return writePlacementTo(p, w)
}

// WritePlacementFile writes a placement to a JSON file.
// The file is created with os.Create (mode 0666 before umask).
func WritePlacementFile(p Placement, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writePlacementTo(p, f)
}

// ReadPlacement decodes a JSON placement from an io.Reader.
func ReadPlacement(r io.Reader) (Placement, error) {
	var p Placement
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Placement{}, fmt.Errorf("decode: %w", err)
	}
	return p, nil
}

// ReadPlacementFile reads a JSON file and returns the decoded placement.
func ReadPlacementFile(path string) (Placement, error) {
	f, err := os.Open(path)
	if err != nil {
		return Placement{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPlacement(f)
}

func writePlacementTo(p Placement, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
