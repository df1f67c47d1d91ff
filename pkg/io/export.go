package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/knitgrid/knitgrid/pkg/errors"
	"github.com/knitgrid/knitgrid/pkg/pattern"
)

// WriteJSON encodes a resolved pattern set and writes it to w. The
// output uses the same file format [ReadJSON] consumes; connection
// descriptors are reconstructed from the mesh links, merging runs of
// adjacent meshes flowing between the same pair of rows.
func WriteJSON(set *pattern.Set, w io.Writer) error {
	out := map[string]any{
		"type":     set.Type(),
		"version":  set.Version(),
		"patterns": buildPatterns(set),
	}
	if set.Comment() != "" {
		out["comment"] = set.Comment()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode pattern set")
	}
	return nil
}

// ExportJSON writes a pattern set to a JSON file at path.
func ExportJSON(set *pattern.Set, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(set, f)
}

func buildPatterns(set *pattern.Set) []any {
	patterns := make([]any, 0, len(set.Patterns()))
	for _, pat := range set.Patterns() {
		rows := make([]any, 0, pat.NumberOfRows())
		for _, row := range pat.Rows() {
			rows = append(rows, buildRow(row))
		}
		patterns = append(patterns, map[string]any{
			"id":          pat.ID(),
			"name":        pat.Name(),
			"rows":        rows,
			"connections": buildConnections(pat),
		})
	}
	return patterns
}

func buildRow(row *pattern.Row) map[string]any {
	instructions := make([]any, 0, len(row.Instructions()))
	for _, in := range row.Instructions() {
		instructions = append(instructions, buildInstruction(in))
	}
	return map[string]any{
		"id":           row.ID(),
		"instructions": instructions,
	}
}

// buildInstruction emits the descriptor for one instruction. Mesh
// counts are written out explicitly so the document reparses the same
// way under any instruction library.
func buildInstruction(in *pattern.Instruction) any {
	desc := map[string]any{
		"type":                      in.Type(),
		"number of consumed meshes": in.NumberOfConsumedMeshes(),
		"number of produced meshes": in.NumberOfProducedMeshes(),
	}
	if in.Color() != "" {
		desc["color"] = in.Color()
	}
	for k, v := range in.Attributes() {
		desc[k] = v
	}
	return desc
}

// buildConnections reconstructs connection descriptors from mesh links.
// Adjacent produced meshes linking to adjacent consumed meshes of the
// same row merge into a single descriptor.
func buildConnections(pat *pattern.Pattern) []any {
	connections := make([]any, 0)
	for _, row := range pat.Rows() {
		produced := row.ProducedMeshes()
		for i := 0; i < len(produced); {
			consumer := produced[i].Counterpart()
			if consumer == nil {
				i++
				continue
			}
			toRow := consumer.Instruction().Row()
			toStart := rowConsumedIndex(toRow, consumer)
			length := 1
			for i+length < len(produced) {
				next := produced[i+length].Counterpart()
				if next == nil || next.Instruction().Row() != toRow {
					break
				}
				if rowConsumedIndex(toRow, next) != toStart+length {
					break
				}
				length++
			}
			connections = append(connections, connectionDescriptor(row.ID(), i, toRow.ID(), toStart, length))
			i += length
		}
	}
	return connections
}

func connectionDescriptor(fromID string, fromStart int, toID string, toStart, meshes int) map[string]any {
	from := map[string]any{"id": fromID}
	if fromStart != 0 {
		from["start"] = fromStart
	}
	to := map[string]any{"id": toID}
	if toStart != 0 {
		to["start"] = toStart
	}
	return map[string]any{"from": from, "to": to, "meshes": meshes}
}

// rowConsumedIndex locates a mesh within its row's consumed sequence.
func rowConsumedIndex(row *pattern.Row, mesh *pattern.Mesh) int {
	offset := 0
	for _, in := range row.Instructions() {
		if in == mesh.Instruction() {
			return offset + mesh.Index()
		}
		offset += in.NumberOfConsumedMeshes()
	}
	return -1
}
