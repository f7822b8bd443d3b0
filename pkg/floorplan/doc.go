// Package floorplan defines the value objects shared by the placement
// engine and its collaborators: modules (rectangular blocks with mutable
// positions), symmetry groups (mirror-pair and self-symmetric constraints),
// and the serializable placement format.
//
// Modules are identified by a stable name; positions are assigned by the
// packing engine and are not part of a module's identity. Symmetry groups
// partition their members into representatives, mirrored partners, and
// self-symmetric modules - the engine places representatives and derives
// the rest.
package floorplan
