package parse

import (
	"testing"

	"github.com/knitgrid/knitgrid/pkg/errors"
	"github.com/knitgrid/knitgrid/pkg/pattern"
)

// connection builds a connection descriptor with an optional mesh count.
func connection(from, to map[string]any, meshes int) map[string]any {
	m := map[string]any{"from": from, "to": to}
	if meshes >= 0 {
		m["meshes"] = float64(meshes)
	}
	return m
}

// linkedTo returns the instruction producing the i-th consumed mesh of row,
// or nil for a boundary mesh.
func linkedTo(row *pattern.Row, i int) *pattern.Instruction {
	m := row.ConsumedMeshes()[i].Counterpart()
	if m == nil {
		return nil
	}
	return m.Instruction()
}

func TestResolveFullWidthDefault(t *testing.T) {
	// No mesh count given: defaults to min(available-from, available-to).
	pat := mustParse(t, patternSet(
		[]any{knitRow(float64(1), 4), knitRow(float64(2), 4)},
		[]any{connection(end(float64(1), 0), end(float64(2), 0), -1)},
	))

	row1, _ := pat.Row("1")
	row2, _ := pat.Row("2")
	for i := 0; i < 4; i++ {
		produced := row1.ProducedMeshes()[i]
		consumed := row2.ConsumedMeshes()[i]
		if produced.Counterpart() != consumed {
			t.Errorf("mesh %d not linked in order", i)
		}
		if consumed.Counterpart() != produced {
			t.Errorf("mesh %d link not mutual", i)
		}
	}
}

func TestResolveMinOfAvailable(t *testing.T) {
	// Producer has 5 meshes, consumer 3: only 3 pairs are linked.
	pat := mustParse(t, patternSet(
		[]any{knitRow(float64(1), 5), knitRow(float64(2), 3)},
		[]any{connection(end(float64(1), 0), end(float64(2), 0), -1)},
	))

	row1, _ := pat.Row("1")
	if !row1.ProducedMeshes()[3].IsBoundary() || !row1.ProducedMeshes()[4].IsBoundary() {
		t.Error("meshes beyond the consumer's capacity should stay boundary meshes")
	}
	if row1.ProducedMeshes()[2].IsBoundary() {
		t.Error("mesh 2 should be linked")
	}
}

func TestResolveStartOffsets(t *testing.T) {
	// Link row 1 meshes [0:3] to row 2 consumed meshes [1:4].
	pat := mustParse(t, patternSet(
		[]any{knitRow(float64(1), 3), knitRow(float64(2), 5)},
		[]any{connection(end(float64(1), 0), end(float64(2), 1), -1)},
	))

	row1, _ := pat.Row("1")
	row2, _ := pat.Row("2")
	if !row2.ConsumedMeshes()[0].IsBoundary() {
		t.Error("consumed mesh 0 before the start offset should be a boundary mesh")
	}
	for i := 0; i < 3; i++ {
		if row2.ConsumedMeshes()[i+1].Counterpart() != row1.ProducedMeshes()[i] {
			t.Errorf("consumed mesh %d should link to produced mesh %d", i+1, i)
		}
	}
	if !row2.ConsumedMeshes()[4].IsBoundary() {
		t.Error("consumed mesh 4 past the range should be a boundary mesh")
	}
}

func TestResolveExplicitMeshCount(t *testing.T) {
	pat := mustParse(t, patternSet(
		[]any{knitRow(float64(1), 4), knitRow(float64(2), 4)},
		[]any{connection(end(float64(1), 2), end(float64(2), 2), 2)},
	))

	row2, _ := pat.Row("2")
	if !row2.ConsumedMeshes()[0].IsBoundary() || !row2.ConsumedMeshes()[1].IsBoundary() {
		t.Error("meshes before the explicit range should stay boundary meshes")
	}
	if row2.ConsumedMeshes()[2].IsBoundary() || row2.ConsumedMeshes()[3].IsBoundary() {
		t.Error("explicit range should be linked")
	}
}

func TestResolveDisjointRanges(t *testing.T) {
	// Two descriptors targeting disjoint ranges of the same rows coexist.
	pat := mustParse(t, patternSet(
		[]any{knitRow(float64(1), 4), knitRow(float64(2), 4)},
		[]any{
			connection(end(float64(1), 0), end(float64(2), 0), 2),
			connection(end(float64(1), 2), end(float64(2), 2), 2),
		},
	))

	row2, _ := pat.Row("2")
	for i := 0; i < 4; i++ {
		if row2.ConsumedMeshes()[i].IsBoundary() {
			t.Errorf("mesh %d should be linked", i)
		}
	}
}

func TestResolveOverlapOverwrites(t *testing.T) {
	// Later descriptors silently overwrite earlier links on shared meshes.
	pat := mustParse(t, patternSet(
		[]any{knitRow(float64(1), 2), knitRow(float64(2), 2), knitRow(float64(3), 2)},
		[]any{
			connection(end(float64(1), 0), end(float64(3), 0), -1),
			connection(end(float64(2), 0), end(float64(3), 0), -1),
		},
	))

	row1, _ := pat.Row("1")
	row2, _ := pat.Row("2")
	row3, _ := pat.Row("3")
	if linkedTo(row3, 0) != row2.Instructions()[0] {
		t.Error("later descriptor should win")
	}
	if !row1.ProducedMeshes()[0].IsBoundary() {
		t.Error("overwritten producer should be disconnected")
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		rows     []any
		conns    []any
		wantCode errors.Code
	}{
		{
			name:     "UnknownFromRow",
			rows:     []any{knitRow(float64(1), 2)},
			conns:    []any{connection(end("ghost", 0), end(float64(1), 0), -1)},
			wantCode: errors.ErrCodeUnknownRow,
		},
		{
			name:     "UnknownToRow",
			rows:     []any{knitRow(float64(1), 2)},
			conns:    []any{connection(end(float64(1), 0), end("ghost", 0), -1)},
			wantCode: errors.ErrCodeUnknownRow,
		},
		{
			name:     "FromRangeTooLarge",
			rows:     []any{knitRow(float64(1), 2), knitRow(float64(2), 4)},
			conns:    []any{connection(end(float64(1), 0), end(float64(2), 0), 3)},
			wantCode: errors.ErrCodeMeshRange,
		},
		{
			name:     "ToRangeTooLarge",
			rows:     []any{knitRow(float64(1), 4), knitRow(float64(2), 2)},
			conns:    []any{connection(end(float64(1), 0), end(float64(2), 0), 3)},
			wantCode: errors.ErrCodeMeshRange,
		},
		{
			name:     "NegativeStart",
			rows:     []any{knitRow(float64(1), 2), knitRow(float64(2), 2)},
			conns:    []any{connection(end(float64(1), -1), end(float64(2), 0), 1)},
			wantCode: errors.ErrCodeMeshRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(nil).PatternSet(patternSet(tt.rows, tt.conns))
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestResolveDeterminism(t *testing.T) {
	build := func() *pattern.Pattern {
		return mustParse(t, patternSet(
			[]any{knitRow(float64(1), 4), knitRow(float64(2), 4), knitRow(float64(3), 4)},
			[]any{
				connection(end(float64(1), 0), end(float64(2), 0), -1),
				connection(end(float64(2), 0), end(float64(3), 0), -1),
			},
		))
	}

	a, b := build(), build()
	for r := range a.Rows() {
		ra, rb := a.Rows()[r], b.Rows()[r]
		for i := range ra.ConsumedMeshes() {
			la, lb := linkedTo(ra, i), linkedTo(rb, i)
			if (la == nil) != (lb == nil) {
				t.Fatalf("row %d mesh %d: runs disagree on linkage", r, i)
			}
			if la != nil && (la.Index() != lb.Index() || la.Row().ID() != lb.Row().ID()) {
				t.Fatalf("row %d mesh %d: runs linked different producers", r, i)
			}
		}
	}
}
