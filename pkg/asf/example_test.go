package asf_test

import (
	"fmt"

	"github.com/symplace/symplace/pkg/asf"
	"github.com/symplace/symplace/pkg/floorplan"
)

// Example places a small vertical symmetry group: one mirror pair and one
// self-symmetric module that straddles the axis.
func Example() {
	modules := map[string]*floorplan.Module{
		"d":  floorplan.NewModule("d", 2, 2),
		"d2": floorplan.NewModule("d2", 2, 2),
		"c":  floorplan.NewModule("c", 6, 2),
	}

	group := floorplan.NewSymmetryGroup("input_pair", floorplan.Vertical)
	if err := group.AddPair("d", "d2"); err != nil {
		panic(err)
	}
	if err := group.AddSelfSymmetric("c"); err != nil {
		panic(err)
	}

	engine, err := asf.New(group, modules)
	if err != nil {
		panic(err)
	}
	if err := engine.BuildInitialTree(); err != nil {
		panic(err)
	}
	if !engine.Pack() {
		panic(engine.Err())
	}

	axis, _ := engine.Axis()
	fmt.Printf("axis x=%.1f\n", axis)
	for _, name := range []string{"d", "d2", "c"} {
		m := modules[name]
		fmt.Printf("%s at (%d, %d)\n", name, m.X(), m.Y())
	}

	// Output:
	// axis x=3.0
	// d at (0, 0)
	// d2 at (4, 0)
	// c at (0, 2)
}
