package pattern

// InstructionSpec describes a single instruction before it is attached to a
// row. The mesh counts come from the instruction library, possibly overridden
// by the row's instruction descriptor.
type InstructionSpec struct {
	Type       string         // instruction type name, e.g. "knit", "k2tog", "yo"
	Consumes   int            // number of consumed meshes
	Produces   int            // number of produced meshes
	Color      string         // render color, empty for the default
	Attributes map[string]any // raw descriptor attributes beyond the typed fields
}

// Instruction is one step within a row. It owns an ordered, fixed-length
// sequence of produced meshes and an ordered, fixed-length sequence of
// consumed meshes; the lengths are set at construction and never change.
type Instruction struct {
	row      *Row
	index    int
	typ      string
	color    string
	attrs    map[string]any
	produced []*Mesh
	consumed []*Mesh
}

// NewInstruction creates a detached instruction with fully-sized mesh
// sequences. Attach it to a row with Row.AddInstruction.
func NewInstruction(spec InstructionSpec) *Instruction {
	in := &Instruction{
		typ:   spec.Type,
		color: spec.Color,
		attrs: spec.Attributes,
		index: -1,
	}
	in.produced = newMeshes(in, MeshProduced, spec.Produces)
	in.consumed = newMeshes(in, MeshConsumed, spec.Consumes)
	return in
}

// Type returns the instruction type name.
func (in *Instruction) Type() string { return in.typ }

// Color returns the render color for chart output, or "" if unset.
func (in *Instruction) Color() string { return in.color }

// Attribute returns a raw descriptor attribute by key.
func (in *Instruction) Attribute(key string) (any, bool) {
	v, ok := in.attrs[key]
	return v, ok
}

// Attributes returns all extra descriptor attributes. The returned map
// must not be modified.
func (in *Instruction) Attributes() map[string]any { return in.attrs }

// Row returns the row this instruction belongs to, or nil while detached.
func (in *Instruction) Row() *Row { return in.row }

// Index returns the instruction's position within its row, or -1 while
// detached.
func (in *Instruction) Index() int { return in.index }

// ProducedMeshes returns the ordered produced mesh sequence.
// The returned slice must not be modified.
func (in *Instruction) ProducedMeshes() []*Mesh { return in.produced }

// ConsumedMeshes returns the ordered consumed mesh sequence.
// The returned slice must not be modified.
func (in *Instruction) ConsumedMeshes() []*Mesh { return in.consumed }

// NumberOfProducedMeshes returns the number of meshes this instruction
// creates. This is also the instruction's width in the grid layout.
func (in *Instruction) NumberOfProducedMeshes() int { return len(in.produced) }

// NumberOfConsumedMeshes returns the number of meshes this instruction
// uses up.
func (in *Instruction) NumberOfConsumedMeshes() int { return len(in.consumed) }

// ProducingInstructions returns, for each consumed mesh in order, the
// instruction that produced it, with nil entries for boundary meshes.
func (in *Instruction) ProducingInstructions() []*Instruction {
	result := make([]*Instruction, len(in.consumed))
	for i, m := range in.consumed {
		if c := m.Counterpart(); c != nil {
			result[i] = c.Instruction()
		}
	}
	return result
}

// ConsumingInstructions returns, for each produced mesh in order, the
// instruction that consumes it, with nil entries for boundary meshes.
func (in *Instruction) ConsumingInstructions() []*Instruction {
	result := make([]*Instruction, len(in.produced))
	for i, m := range in.produced {
		if c := m.Counterpart(); c != nil {
			result[i] = c.Instruction()
		}
	}
	return result
}
