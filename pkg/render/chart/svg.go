package chart

import (
	"bytes"
	"fmt"

	"github.com/knitgrid/knitgrid/pkg/layout"
)

const (
	defaultCellSize = 25.0
	defaultFill     = "#ffffff"
	strokeColor     = "#333333"
	connectionColor = "#888888"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cellSize    float64
	fill        string
	labels      bool
	connections bool
}

// WithCellSize sets the pixel size of one grid cell.
func WithCellSize(px float64) SVGOption { return func(r *svgRenderer) { r.cellSize = px } }

// WithFill sets the fill color for instructions that carry no color of
// their own.
func WithFill(color string) SVGOption { return func(r *svgRenderer) { r.fill = color } }

// WithLabels draws the instruction type inside each cell.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithConnections draws dashed lines for mesh flow that skips rows.
func WithConnections() SVGOption { return func(r *svgRenderer) { r.connections = true } }

// RenderSVG renders the layout as an SVG chart. The first row of the
// pattern ends up at the bottom of the image.
func RenderSVG(g *layout.GridLayout, opts ...SVGOption) []byte {
	r := svgRenderer{cellSize: defaultCellSize, fill: defaultFill}
	for _, opt := range opts {
		opt(&r)
	}

	b := g.BoundingBox()
	width := float64(b.Width()) * r.cellSize
	height := float64(b.Height()) * r.cellSize

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	g.WalkInstructions(func(in *layout.InstructionInGrid) {
		r.renderCell(&buf, b, in)
	})
	if r.connections {
		g.WalkConnections(func(c layout.Connection) {
			r.renderConnection(&buf, b, c)
		})
	}
	if r.labels {
		g.WalkInstructions(func(in *layout.InstructionInGrid) {
			r.renderLabel(&buf, b, in)
		})
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// cellOrigin maps a grid position to the top-left pixel of its cell.
func (r *svgRenderer) cellOrigin(b layout.Bounds, x, y int) (float64, float64) {
	px := float64(x-b.MinX) * r.cellSize
	py := float64(b.MaxY-1-y) * r.cellSize
	return px, py
}

func (r *svgRenderer) renderCell(buf *bytes.Buffer, b layout.Bounds, in *layout.InstructionInGrid) {
	if in.Width() == 0 {
		return
	}
	x, y := r.cellOrigin(b, in.X(), in.Y())
	fill := in.Color()
	if fill == "" {
		fill = r.fill
	}
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"><title>%s</title></rect>`+"\n",
		x, y, float64(in.Width())*r.cellSize, r.cellSize, fill, strokeColor, escapeText(in.Instruction().Type()))
}

func (r *svgRenderer) renderLabel(buf *bytes.Buffer, b layout.Bounds, in *layout.InstructionInGrid) {
	if in.Width() == 0 {
		return
	}
	x, y := r.cellOrigin(b, in.X(), in.Y())
	cx := x + float64(in.Width())*r.cellSize/2
	cy := y + r.cellSize/2
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		cx, cy, r.cellSize*0.36, escapeText(in.Instruction().Type()))
}

func (r *svgRenderer) renderConnection(buf *bytes.Buffer, b layout.Bounds, c layout.Connection) {
	x1, y1 := r.cellCenter(b, c.Start)
	x2, y2 := r.cellCenter(b, c.Stop)
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5" stroke-dasharray="4 3"/>`+"\n",
		x1, y1, x2, y2, connectionColor)
}

func (r *svgRenderer) cellCenter(b layout.Bounds, in *layout.InstructionInGrid) (float64, float64) {
	x, y := r.cellOrigin(b, in.X(), in.Y())
	w := float64(in.Width())
	if w == 0 {
		w = 1
	}
	return x + w*r.cellSize/2, y + r.cellSize/2
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, c := range s {
		switch c {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(c)
		}
	}
	return buf.String()
}
