// Package layout places resolved knitting patterns on a two-dimensional
// grid. Rows are stacked bottom-up along y by following mesh flow, and
// instructions are lined up along x so that linked meshes of consecutive
// rows share a column. Coordinates may be negative; consumers anchor to
// their producers, not to the origin.
package layout

import (
	"github.com/knitgrid/knitgrid/pkg/errors"
	"github.com/knitgrid/knitgrid/pkg/pattern"
)

// GridLayout is the computed placement of one pattern. It is immutable
// after construction and safe for concurrent reads.
type GridLayout struct {
	pattern *pattern.Pattern

	rows         []*RowInGrid
	instructions []*InstructionInGrid
	connections  []Connection

	rowGrid   map[*pattern.Row]*RowInGrid
	instrGrid map[*pattern.Instruction]*InstructionInGrid
}

// NewGridLayout places the pattern's rows and instructions on the grid.
// It fails if mesh flow between rows is circular, since no consistent
// vertical order exists for such a pattern.
func NewGridLayout(pat *pattern.Pattern) (*GridLayout, error) {
	g := &GridLayout{
		pattern:   pat,
		rowGrid:   make(map[*pattern.Row]*RowInGrid, pat.NumberOfRows()),
		instrGrid: make(map[*pattern.Instruction]*InstructionInGrid),
	}
	rowY, err := g.assignRowLines()
	if err != nil {
		return nil, err
	}
	g.placeRows(rowY)
	g.collectConnections()
	return g, nil
}

// assignRowLines assigns a y line to every row. A row is placeable once
// all rows producing its consumed meshes are placed; its line is one
// above the highest producer. Rows consuming only boundary meshes sit at
// line zero.
func (g *GridLayout) assignRowLines() (map[*pattern.Row]int, error) {
	rows := g.pattern.Rows()
	rowY := make(map[*pattern.Row]int, len(rows))

	for len(rowY) < len(rows) {
		progress := false
		for _, row := range rows {
			if _, done := rowY[row]; done {
				continue
			}
			line, ok := g.lineFor(row, rowY)
			if !ok {
				continue
			}
			rowY[row] = line
			progress = true
		}
		if !progress {
			return nil, errors.New(errors.ErrCodeCyclicPattern,
				"pattern %q: rows form a cycle, no grid placement exists", g.pattern.ID())
		}
	}
	return rowY, nil
}

// lineFor computes the y line of row from its producers, or reports
// false while any producer is still unplaced.
func (g *GridLayout) lineFor(row *pattern.Row, rowY map[*pattern.Row]int) (int, bool) {
	line := 0
	for _, mesh := range row.ConsumedMeshes() {
		producer := mesh.Counterpart()
		if producer == nil {
			continue
		}
		producerY, placed := rowY[producer.Instruction().Row()]
		if !placed {
			return 0, false
		}
		if producerY+1 > line {
			line = producerY + 1
		}
	}
	return line, true
}

// placeRows assigns x coordinates. Rows are processed bottom-up so that
// every producer is placed before its consumers. A row's origin is the
// column at which its consumed mesh sequence would start for its first
// linked mesh to sit directly above its producer; instructions then fill
// the row left to right by their produced widths.
func (g *GridLayout) placeRows(rowY map[*pattern.Row]int) {
	ordered := g.rowsByLine(rowY)
	for _, row := range ordered {
		origin := g.rowOrigin(row)
		x := origin
		for _, in := range row.Instructions() {
			placed := &InstructionInGrid{instruction: in, x: x, y: rowY[row]}
			g.instrGrid[in] = placed
			g.instructions = append(g.instructions, placed)
			x += placed.Width()
		}
		placed := &RowInGrid{row: row, x: origin, y: rowY[row], width: x - origin}
		g.rowGrid[row] = placed
		g.rows = append(g.rows, placed)
	}
}

// rowOrigin finds the leftmost column of row. The first linked consumed
// mesh pins the row: its column equals the column of the produced mesh
// it consumes. Rows with only boundary meshes start at column zero.
func (g *GridLayout) rowOrigin(row *pattern.Row) int {
	for i, mesh := range row.ConsumedMeshes() {
		producer := mesh.Counterpart()
		if producer == nil {
			continue
		}
		owner := g.instrGrid[producer.Instruction()]
		return owner.x + producer.Index() - i
	}
	return 0
}

// rowsByLine orders rows by grid line, preserving pattern order within a
// line. The result is the canonical walk order.
func (g *GridLayout) rowsByLine(rowY map[*pattern.Row]int) []*pattern.Row {
	maxLine := 0
	for _, y := range rowY {
		if y > maxLine {
			maxLine = y
		}
	}
	byLine := make([][]*pattern.Row, maxLine+1)
	for _, row := range g.pattern.Rows() {
		y := rowY[row]
		byLine[y] = append(byLine[y], row)
	}
	ordered := make([]*pattern.Row, 0, g.pattern.NumberOfRows())
	for _, line := range byLine {
		ordered = append(ordered, line...)
	}
	return ordered
}

// collectConnections finds instruction pairs whose mesh flow skips grid
// lines. Pairs stacked on adjacent lines need no explicit connection;
// renderers imply those by adjacency. One connection is recorded per
// pair no matter how many meshes flow between them, ordered by the
// consuming instruction's walk position.
func (g *GridLayout) collectConnections() {
	type pair struct {
		start, stop *InstructionInGrid
	}
	seen := make(map[pair]bool)
	for _, stop := range g.instructions {
		for _, mesh := range stop.instruction.ConsumedMeshes() {
			producer := mesh.Counterpart()
			if producer == nil {
				continue
			}
			start := g.instrGrid[producer.Instruction()]
			if stop.y-start.y == 1 {
				continue
			}
			p := pair{start, stop}
			if seen[p] {
				continue
			}
			seen[p] = true
			g.connections = append(g.connections, Connection{Start: start, Stop: stop})
		}
	}
}

// Pattern returns the pattern this layout was computed for.
func (g *GridLayout) Pattern() *pattern.Pattern { return g.pattern }

// InstructionInGrid returns the placement of in, if in belongs to the
// laid-out pattern.
func (g *GridLayout) InstructionInGrid(in *pattern.Instruction) (*InstructionInGrid, bool) {
	placed, ok := g.instrGrid[in]
	return placed, ok
}

// RowInGrid returns the placement of row, if row belongs to the laid-out
// pattern.
func (g *GridLayout) RowInGrid(row *pattern.Row) (*RowInGrid, bool) {
	placed, ok := g.rowGrid[row]
	return placed, ok
}

// WalkInstructions visits every placed instruction bottom-up, left to
// right. Walks are restartable; repeated walks visit the same placements
// in the same order.
func (g *GridLayout) WalkInstructions(visit func(*InstructionInGrid)) {
	for _, in := range g.instructions {
		visit(in)
	}
}

// WalkRows visits every placed row bottom-up.
func (g *GridLayout) WalkRows(visit func(*RowInGrid)) {
	for _, row := range g.rows {
		visit(row)
	}
}

// WalkConnections visits every line-skipping connection in the walk
// order of its starting instruction.
func (g *GridLayout) WalkConnections(visit func(Connection)) {
	for _, c := range g.connections {
		visit(c)
	}
}

// BoundingBox returns the smallest bounds containing every placed row
// and instruction. The zero Bounds is returned for an empty pattern.
func (g *GridLayout) BoundingBox() Bounds {
	if len(g.instructions) == 0 && len(g.rows) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: g.rows[0].x, MinY: g.rows[0].y, MaxX: g.rows[0].x, MaxY: g.rows[0].y}
	for _, row := range g.rows {
		b = b.expand(row.x, row.y, row.x+row.width, row.y+1)
	}
	for _, in := range g.instructions {
		b = b.expand(in.x, in.y, in.x+in.Width(), in.y+1)
	}
	return b
}

func (b Bounds) expand(minX, minY, maxX, maxY int) Bounds {
	if minX < b.MinX {
		b.MinX = minX
	}
	if minY < b.MinY {
		b.MinY = minY
	}
	if maxX > b.MaxX {
		b.MaxX = maxX
	}
	if maxY > b.MaxY {
		b.MaxY = maxY
	}
	return b
}
