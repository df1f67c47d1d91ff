// Package pattern defines the core knitting-pattern data model.
//
// A knitting pattern is a graph of rows. Each row owns an ordered sequence of
// instructions, and each instruction owns two fixed-length sequences of meshes:
// the meshes it consumes from below and the meshes it produces for the row
// above. Connections between rows are expressed as mutual links between a
// produced mesh and a consumed mesh.
//
// # Structure
//
//	Set ──▶ Pattern ──▶ Row ──▶ Instruction ──▶ Mesh
//
// Mesh links are symmetric: if a produced mesh is linked to a consumed mesh,
// the consumed mesh is linked back to the produced mesh. A mesh with no link
// is a boundary mesh — a pattern edge such as a cast-on, a bind-off, or an
// external attachment point.
//
// All types in this package are created during parsing and are effectively
// immutable afterwards, with two exceptions used by the two-phase parser:
// rows can have instructions appended, and meshes can be (re)linked. Neither
// operation reorders or resizes an existing mesh sequence.
//
// The package has no I/O and no concurrency: a pattern graph is built once by
// a single goroutine and then only read.
package pattern
