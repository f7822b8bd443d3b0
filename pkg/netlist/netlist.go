// Package netlist parses design descriptions: the module table and the
// symmetry groups to place. The input format is TOML:
//
//	[[modules]]
//	name = "a"
//	width = 4
//	height = 2
//
//	[[groups]]
//	name = "sg1"
//	type = "vertical"
//	pairs = [["a", "a2"]]
//	self = ["c"]
//
// Group type is "vertical" or "horizontal". Every name referenced by a
// group must be declared in the module table, and a module can hold at
// most one role across all groups.
package netlist

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/maruel/natural"

	"github.com/symplace/symplace/pkg/errors"
	"github.com/symplace/symplace/pkg/floorplan"
)

// Design is a parsed netlist: the module table plus the symmetry groups
// defined over it.
type Design struct {
	Modules map[string]*floorplan.Module
	Groups  []*floorplan.SymmetryGroup
}

// Group returns the named group, or nil.
func (d *Design) Group(name string) *floorplan.SymmetryGroup {
	for _, g := range d.Groups {
		if g.Name() == name {
			return g
		}
	}
	return nil
}

// ModuleNames returns all module names in natural sort order.
func (d *Design) ModuleNames() []string {
	names := make([]string, 0, len(d.Modules))
	for name := range d.Modules {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if a == b {
			return 0
		}
		if natural.Less(a, b) {
			return -1
		}
		return 1
	})
	return names
}

// rawDesign mirrors the TOML schema.
type rawDesign struct {
	Modules []rawModule `toml:"modules"`
	Groups  []rawGroup  `toml:"groups"`
}

type rawModule struct {
	Name   string `toml:"name"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type rawGroup struct {
	Name  string     `toml:"name"`
	Type  string     `toml:"type"`
	Pairs [][]string `toml:"pairs"`
	Self  []string   `toml:"self"`
}

// Load reads and parses a netlist file.
func Load(path string) (*Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a TOML netlist from r and validates it.
func Parse(r io.Reader) (*Design, error) {
	var raw rawDesign
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidNetlist, err, "decode netlist")
	}
	return build(raw)
}

func build(raw rawDesign) (*Design, error) {
	if len(raw.Modules) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidNetlist, "netlist declares no modules")
	}

	design := &Design{Modules: make(map[string]*floorplan.Module, len(raw.Modules))}

	for _, m := range raw.Modules {
		if m.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidNetlist, "module with empty name")
		}
		if m.Width <= 0 || m.Height <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidNetlist,
				"module %s has non-positive dimensions %dx%d", m.Name, m.Width, m.Height)
		}
		if _, exists := design.Modules[m.Name]; exists {
			return nil, errors.New(errors.ErrCodeInvalidNetlist, "duplicate module %q", m.Name)
		}
		design.Modules[m.Name] = floorplan.NewModule(m.Name, m.Width, m.Height)
	}

	claimed := make(map[string]string) // module -> group that owns it
	for _, rg := range raw.Groups {
		if rg.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidNetlist, "group with empty name")
		}
		typ, err := parseType(rg.Type)
		if err != nil {
			return nil, err
		}
		g := floorplan.NewSymmetryGroup(rg.Name, typ)

		for _, p := range rg.Pairs {
			if len(p) != 2 {
				return nil, errors.New(errors.ErrCodeInvalidNetlist,
					"group %s: pair must name exactly two modules, got %v", rg.Name, p)
			}
			if err := claim(design, claimed, rg.Name, p[0]); err != nil {
				return nil, err
			}
			if err := claim(design, claimed, rg.Name, p[1]); err != nil {
				return nil, err
			}
			if err := g.AddPair(p[0], p[1]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidNetlist, err,
					"group %s: pair (%s, %s)", rg.Name, p[0], p[1])
			}
		}
		for _, name := range rg.Self {
			if err := claim(design, claimed, rg.Name, name); err != nil {
				return nil, err
			}
			if err := g.AddSelfSymmetric(name); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidNetlist, err,
					"group %s: self-symmetric %s", rg.Name, name)
			}
		}
		design.Groups = append(design.Groups, g)
	}

	return design, nil
}

func claim(d *Design, claimed map[string]string, group, module string) error {
	if _, ok := d.Modules[module]; !ok {
		return errors.New(errors.ErrCodeInvalidNetlist,
			"group %s references undeclared module %q", group, module)
	}
	if owner, taken := claimed[module]; taken {
		return errors.New(errors.ErrCodeInvalidNetlist,
			"module %q claimed by both %s and %s", module, owner, group)
	}
	claimed[module] = group
	return nil
}

func parseType(s string) (floorplan.SymmetryType, error) {
	switch s {
	case "vertical", "":
		return floorplan.Vertical, nil
	case "horizontal":
		return floorplan.Horizontal, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidNetlist, "unknown group type %q", s)
	}
}
