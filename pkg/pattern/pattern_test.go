package pattern

import "testing"

// plainRow builds a row of n single-mesh instructions (consume 1, produce 1).
func plainRow(id string, n int) *Row {
	r := NewRow(id, nil)
	for i := 0; i < n; i++ {
		r.AddInstruction(NewInstruction(InstructionSpec{Type: "knit", Consumes: 1, Produces: 1}))
	}
	return r
}

func TestMeshLinkSymmetry(t *testing.T) {
	a := NewInstruction(InstructionSpec{Type: "knit", Consumes: 1, Produces: 1})
	b := NewInstruction(InstructionSpec{Type: "knit", Consumes: 1, Produces: 1})

	produced := a.ProducedMeshes()[0]
	consumed := b.ConsumedMeshes()[0]

	produced.ConnectTo(consumed)

	if produced.Counterpart() != consumed {
		t.Error("produced mesh not linked to consumed mesh")
	}
	if consumed.Counterpart() != produced {
		t.Error("link is not mutual")
	}
	if produced.IsBoundary() || consumed.IsBoundary() {
		t.Error("linked meshes must not be boundary meshes")
	}
}

func TestMeshRelinkOverwrites(t *testing.T) {
	a := NewInstruction(InstructionSpec{Type: "knit", Produces: 1})
	b := NewInstruction(InstructionSpec{Type: "knit", Consumes: 1})
	c := NewInstruction(InstructionSpec{Type: "knit", Consumes: 1})

	produced := a.ProducedMeshes()[0]
	produced.ConnectTo(b.ConsumedMeshes()[0])
	produced.ConnectTo(c.ConsumedMeshes()[0])

	if got := produced.Counterpart(); got != c.ConsumedMeshes()[0] {
		t.Error("relink should point at the newest counterpart")
	}
	if !b.ConsumedMeshes()[0].IsBoundary() {
		t.Error("overwritten counterpart should be disconnected")
	}
}

func TestMeshDisconnect(t *testing.T) {
	a := NewInstruction(InstructionSpec{Type: "knit", Produces: 1})
	b := NewInstruction(InstructionSpec{Type: "knit", Consumes: 1})

	a.ProducedMeshes()[0].ConnectTo(b.ConsumedMeshes()[0])
	a.ProducedMeshes()[0].Disconnect()

	if !a.ProducedMeshes()[0].IsBoundary() || !b.ConsumedMeshes()[0].IsBoundary() {
		t.Error("both ends should be boundary meshes after Disconnect")
	}
}

func TestInstructionMeshCounts(t *testing.T) {
	tests := []struct {
		name     string
		spec     InstructionSpec
		consumes int
		produces int
	}{
		{"Knit", InstructionSpec{Type: "knit", Consumes: 1, Produces: 1}, 1, 1},
		{"KnitTwoTogether", InstructionSpec{Type: "k2tog", Consumes: 2, Produces: 1}, 2, 1},
		{"YarnOver", InstructionSpec{Type: "yo", Consumes: 0, Produces: 1}, 0, 1},
		{"BindOff", InstructionSpec{Type: "bo", Consumes: 1, Produces: 0}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInstruction(tt.spec)
			if got := in.NumberOfConsumedMeshes(); got != tt.consumes {
				t.Errorf("consumed = %d, want %d", got, tt.consumes)
			}
			if got := in.NumberOfProducedMeshes(); got != tt.produces {
				t.Errorf("produced = %d, want %d", got, tt.produces)
			}
			for i, m := range in.ProducedMeshes() {
				if m.Instruction() != in || m.Index() != i || m.Role() != MeshProduced {
					t.Errorf("produced mesh %d has wrong ownership", i)
				}
			}
			for i, m := range in.ConsumedMeshes() {
				if m.Instruction() != in || m.Index() != i || m.Role() != MeshConsumed {
					t.Errorf("consumed mesh %d has wrong ownership", i)
				}
			}
		})
	}
}

func TestRowMeshConcatenation(t *testing.T) {
	r := NewRow("1", nil)
	r.AddInstruction(NewInstruction(InstructionSpec{Type: "knit", Consumes: 1, Produces: 1}))
	r.AddInstruction(NewInstruction(InstructionSpec{Type: "k2tog", Consumes: 2, Produces: 1}))
	r.AddInstruction(NewInstruction(InstructionSpec{Type: "yo", Consumes: 0, Produces: 1}))

	if got := r.NumberOfConsumedMeshes(); got != 3 {
		t.Errorf("row consumed = %d, want 3", got)
	}
	if got := r.NumberOfProducedMeshes(); got != 3 {
		t.Errorf("row produced = %d, want 3", got)
	}

	consumed := r.ConsumedMeshes()
	if len(consumed) != 3 {
		t.Fatalf("len(ConsumedMeshes) = %d, want 3", len(consumed))
	}
	// Concatenation preserves instruction order.
	if consumed[0].Instruction() != r.Instructions()[0] {
		t.Error("consumed[0] should belong to instruction 0")
	}
	if consumed[1].Instruction() != r.Instructions()[1] || consumed[2].Instruction() != r.Instructions()[1] {
		t.Error("consumed[1:3] should belong to instruction 1")
	}
}

func TestRowInstructionOwnership(t *testing.T) {
	r := plainRow("1", 3)
	for i, in := range r.Instructions() {
		if in.Row() != r {
			t.Errorf("instruction %d has wrong row", i)
		}
		if in.Index() != i {
			t.Errorf("instruction %d index = %d", i, in.Index())
		}
	}
}

func TestRowAttributeInheritance(t *testing.T) {
	parent := NewRow("1", map[string]any{"color": "blue", "comment": "base"})
	child := NewRow("2", map[string]any{"comment": "override"})
	child.InheritFrom(parent)

	if v, ok := child.Attribute("color"); !ok || v != "blue" {
		t.Errorf("inherited color = %v, %v", v, ok)
	}
	if v, _ := child.Attribute("comment"); v != "override" {
		t.Errorf("local attribute should win, got %v", v)
	}
	if _, ok := child.Attribute("missing"); ok {
		t.Error("missing attribute should not resolve")
	}
}

func TestProducingAndConsumingInstructions(t *testing.T) {
	below := plainRow("1", 2)
	above := plainRow("2", 2)

	below.ProducedMeshes()[0].ConnectTo(above.ConsumedMeshes()[0])

	producing := above.Instructions()[0].ProducingInstructions()
	if len(producing) != 1 || producing[0] != below.Instructions()[0] {
		t.Errorf("ProducingInstructions = %v", producing)
	}
	if got := above.Instructions()[1].ProducingInstructions()[0]; got != nil {
		t.Errorf("boundary mesh should yield nil producer, got %v", got)
	}

	consuming := below.Instructions()[0].ConsumingInstructions()
	if len(consuming) != 1 || consuming[0] != above.Instructions()[0] {
		t.Errorf("ConsumingInstructions = %v", consuming)
	}
}

func TestPatternDuplicateRowID(t *testing.T) {
	p := NewPattern("knit", "Knit")
	if err := p.AddRow(NewRow("1", nil)); err != nil {
		t.Fatalf("first AddRow: %v", err)
	}
	if err := p.AddRow(NewRow("1", nil)); err == nil {
		t.Fatal("duplicate row id should be rejected")
	}
}

func TestSetLookup(t *testing.T) {
	s := NewSet(SetType, "0.1", "")
	p := NewPattern("a", "A")
	if err := s.AddPattern(p); err != nil {
		t.Fatalf("AddPattern: %v", err)
	}
	if err := s.AddPattern(NewPattern("a", "again")); err == nil {
		t.Fatal("duplicate pattern id should be rejected")
	}
	got, ok := s.Pattern("a")
	if !ok || got != p {
		t.Errorf("Pattern(a) = %v, %v", got, ok)
	}
}
