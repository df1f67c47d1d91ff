package chart

import (
	"encoding/json"

	"github.com/knitgrid/knitgrid/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
}

// WithJSONCompact emits the document without indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Pattern      string            `json:"pattern"`
	Name         string            `json:"name,omitempty"`
	Bounds       jsonBounds        `json:"bounds"`
	Rows         []jsonRow         `json:"rows"`
	Instructions []jsonInstruction `json:"instructions"`
	Connections  []jsonConnection  `json:"connections,omitempty"`
}

type jsonBounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

type jsonRow struct {
	ID    string `json:"id"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Width int    `json:"width"`
}

type jsonInstruction struct {
	Row    string `json:"row"`
	Index  int    `json:"index"`
	Type   string `json:"type"`
	Color  string `json:"color,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type jsonConnection struct {
	From jsonEndpoint `json:"from"`
	To   jsonEndpoint `json:"to"`
}

type jsonEndpoint struct {
	Row   string `json:"row"`
	Index int    `json:"index"`
}

// RenderJSON exports the layout as a JSON document. This is the data
// interchange format for computed charts, usable to cache layouts or to
// feed external visualization tools without recomputing placement.
//
// RenderJSON returns an error only if marshaling fails. It does not
// modify the layout and is safe to call concurrently.
func RenderJSON(g *layout.GridLayout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	b := g.BoundingBox()
	out := jsonOutput{
		Pattern:      g.Pattern().ID(),
		Name:         g.Pattern().Name(),
		Bounds:       jsonBounds{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY},
		Rows:         buildJSONRows(g),
		Instructions: buildJSONInstructions(g),
		Connections:  buildJSONConnections(g),
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONRows(g *layout.GridLayout) []jsonRow {
	rows := make([]jsonRow, 0, g.Pattern().NumberOfRows())
	g.WalkRows(func(r *layout.RowInGrid) {
		rows = append(rows, jsonRow{
			ID:    r.Row().ID(),
			X:     r.X(),
			Y:     r.Y(),
			Width: r.Width(),
		})
	})
	return rows
}

func buildJSONInstructions(g *layout.GridLayout) []jsonInstruction {
	var out []jsonInstruction
	g.WalkInstructions(func(in *layout.InstructionInGrid) {
		out = append(out, jsonInstruction{
			Row:    in.Instruction().Row().ID(),
			Index:  in.Instruction().Index(),
			Type:   in.Instruction().Type(),
			Color:  in.Color(),
			X:      in.X(),
			Y:      in.Y(),
			Width:  in.Width(),
			Height: in.Height(),
		})
	})
	return out
}

func buildJSONConnections(g *layout.GridLayout) []jsonConnection {
	var out []jsonConnection
	g.WalkConnections(func(c layout.Connection) {
		out = append(out, jsonConnection{
			From: jsonEndpoint{Row: c.Start.Instruction().Row().ID(), Index: c.Start.Instruction().Index()},
			To:   jsonEndpoint{Row: c.Stop.Instruction().Row().ID(), Index: c.Stop.Instruction().Index()},
		})
	})
	return out
}
