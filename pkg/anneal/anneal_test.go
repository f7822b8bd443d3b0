package anneal

import (
	"testing"

	"github.com/symplace/symplace/pkg/asf"
	"github.com/symplace/symplace/pkg/floorplan"
)

func newTestEngine(t *testing.T) *asf.Engine {
	t.Helper()

	table := map[string]*floorplan.Module{
		"a":  floorplan.NewModule("a", 4, 2),
		"a2": floorplan.NewModule("a2", 4, 2),
		"b":  floorplan.NewModule("b", 3, 3),
		"b2": floorplan.NewModule("b2", 3, 3),
		"c":  floorplan.NewModule("c", 6, 2),
	}
	g := floorplan.NewSymmetryGroup("sg", floorplan.Vertical)
	for _, p := range [][2]string{{"a", "a2"}, {"b", "b2"}} {
		if err := g.AddPair(p[0], p[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddSelfSymmetric("c"); err != nil {
		t.Fatal(err)
	}

	e, err := asf.New(g, table)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.BuildInitialTree(); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestRunNeverWorsensArea(t *testing.T) {
	e := newTestEngine(t)
	if !e.Pack() {
		t.Fatalf("initial Pack() failed: %v", e.Err())
	}
	initial := groupArea(e)

	res, err := Run(e, Options{Iterations: 300})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if res.BestArea > initial {
		t.Errorf("BestArea = %d, worse than initial %d", res.BestArea, initial)
	}
	if res.BestArea <= 0 {
		t.Errorf("BestArea = %d, want > 0", res.BestArea)
	}
}

func TestRunReproducible(t *testing.T) {
	res1, err := Run(newTestEngine(t), Options{Iterations: 200, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	res2, err := Run(newTestEngine(t), Options{Iterations: 200, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}

	if res1.BestArea != res2.BestArea {
		t.Errorf("BestArea differs: %d vs %d", res1.BestArea, res2.BestArea)
	}
	if len(res1.Best.Blocks) != len(res2.Best.Blocks) {
		t.Fatalf("block counts differ")
	}
	for i := range res1.Best.Blocks {
		if res1.Best.Blocks[i] != res2.Best.Blocks[i] {
			t.Errorf("block %d differs: %+v vs %+v", i, res1.Best.Blocks[i], res2.Best.Blocks[i])
		}
	}
}

func TestRunBestPlacementDisjoint(t *testing.T) {
	res, err := Run(newTestEngine(t), Options{Iterations: 300})
	if err != nil {
		t.Fatal(err)
	}

	blocks := res.Best.Blocks
	for i, a := range blocks {
		for _, b := range blocks[i+1:] {
			xOverlap := a.X < b.Right() && b.X < a.Right()
			yOverlap := a.Y < b.Top() && b.Y < a.Top()
			if xOverlap && yOverlap {
				t.Errorf("blocks %s and %s overlap: %+v / %+v", a.Name, b.Name, a, b)
			}
		}
	}
	for _, b := range blocks {
		if b.X < 0 || b.Y < 0 {
			t.Errorf("block %s at (%d, %d), want non-negative", b.Name, b.X, b.Y)
		}
	}
}

func TestRunCountsOutcomes(t *testing.T) {
	res, err := Run(newTestEngine(t), Options{Iterations: 250})
	if err != nil {
		t.Fatal(err)
	}
	total := res.Accepted + res.Rejected + res.Invalid
	if total > res.Iterations {
		t.Errorf("outcome counts %d exceed iterations %d", total, res.Iterations)
	}
}
