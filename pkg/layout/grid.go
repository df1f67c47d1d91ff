package layout

import (
	"github.com/knitgrid/knitgrid/pkg/pattern"
)

// InstructionInGrid is an instruction placed on the grid.
// All coordinates are in grid units; one unit is one mesh.
type InstructionInGrid struct {
	instruction *pattern.Instruction
	x, y        int
}

// Instruction returns the placed instruction.
func (i *InstructionInGrid) Instruction() *pattern.Instruction { return i.instruction }

// X returns the column of the instruction's left edge.
func (i *InstructionInGrid) X() int { return i.x }

// Y returns the row line the instruction sits on.
func (i *InstructionInGrid) Y() int { return i.y }

// Width returns the horizontal span in grid units. The default is the
// number of produced meshes, so instructions that produce no meshes
// have width zero. A "grid-layout" attribute with a "width" entry on
// the instruction overrides the default.
func (i *InstructionInGrid) Width() int {
	if w, ok := widthOverride(i.instruction); ok {
		return w
	}
	return i.instruction.NumberOfProducedMeshes()
}

func widthOverride(in *pattern.Instruction) (int, bool) {
	raw, ok := in.Attribute("grid-layout")
	if !ok {
		return 0, false
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return 0, false
	}
	switch w := m["width"].(type) {
	case float64:
		return int(w), true
	case int:
		return w, true
	}
	return 0, false
}

// Height returns the vertical span. Every instruction is one unit tall.
func (i *InstructionInGrid) Height() int { return 1 }

// Color returns the instruction's display color, if any.
func (i *InstructionInGrid) Color() string { return i.instruction.Color() }

// RowInGrid is a row placed on the grid. The row spans the instructions
// it contains.
type RowInGrid struct {
	row   *pattern.Row
	x, y  int
	width int
}

// Row returns the placed row.
func (r *RowInGrid) Row() *pattern.Row { return r.row }

// X returns the column of the row's left edge.
func (r *RowInGrid) X() int { return r.x }

// Y returns the row's line on the grid.
func (r *RowInGrid) Y() int { return r.y }

// Width returns the horizontal span of the row in grid units.
func (r *RowInGrid) Width() int { return r.width }

// Height returns the vertical span. Every row is one unit tall.
func (r *RowInGrid) Height() int { return 1 }

// Connection marks a mesh flow between two instructions whose rows are
// not vertically adjacent. Renderers draw these explicitly; adjacency is
// implied by stacking.
type Connection struct {
	Start *InstructionInGrid
	Stop  *InstructionInGrid
}

// Bounds is the axis-aligned bounding box of a layout, in grid units.
// Max coordinates are exclusive.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Width returns the horizontal extent of the bounds.
func (b Bounds) Width() int { return b.MaxX - b.MinX }

// Height returns the vertical extent of the bounds.
func (b Bounds) Height() int { return b.MaxY - b.MinY }
