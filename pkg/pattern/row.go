package pattern

// Row is an ordered sequence of instructions knitted together. A row's
// consumed and produced mesh sequences are the concatenation, in order, of
// its instructions' mesh sequences.
//
// Row identity is its id, which is unique within a pattern and stable from
// creation on, even though instructions may still be appended afterwards by
// the parser's deferred-instruction phase.
type Row struct {
	id           string
	instructions []*Instruction
	inherit      *Row
	attrs        map[string]any
}

// NewRow creates an empty row with the given id and raw attributes.
// attrs may be nil.
func NewRow(id string, attrs map[string]any) *Row {
	return &Row{id: id, attrs: attrs}
}

// ID returns the row's unique identifier.
func (r *Row) ID() string { return r.id }

// AddInstruction appends an instruction to the row and takes ownership of it.
// An instruction belongs to exactly one row.
func (r *Row) AddInstruction(in *Instruction) {
	in.row = r
	in.index = len(r.instructions)
	r.instructions = append(r.instructions, in)
}

// Instructions returns the ordered instruction sequence.
// The returned slice must not be modified.
func (r *Row) Instructions() []*Instruction { return r.instructions }

// InheritFrom records that r defaults missing attributes from parent.
// Inheritance chains are resolved lazily by Attribute.
func (r *Row) InheritFrom(parent *Row) { r.inherit = parent }

// InheritedFrom returns the row this row inherits attribute defaults from,
// or nil.
func (r *Row) InheritedFrom() *Row { return r.inherit }

// Attribute looks up a raw attribute on the row, falling back to the
// inheritance chain when the key is absent locally.
func (r *Row) Attribute(key string) (any, bool) {
	for row := r; row != nil; row = row.inherit {
		if v, ok := row.attrs[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// ConsumedMeshes returns the concatenation of each instruction's consumed
// meshes, in instruction order.
func (r *Row) ConsumedMeshes() []*Mesh {
	var meshes []*Mesh
	for _, in := range r.instructions {
		meshes = append(meshes, in.ConsumedMeshes()...)
	}
	return meshes
}

// ProducedMeshes returns the concatenation of each instruction's produced
// meshes, in instruction order.
func (r *Row) ProducedMeshes() []*Mesh {
	var meshes []*Mesh
	for _, in := range r.instructions {
		meshes = append(meshes, in.ProducedMeshes()...)
	}
	return meshes
}

// NumberOfConsumedMeshes returns the total consumed mesh count.
func (r *Row) NumberOfConsumedMeshes() int {
	n := 0
	for _, in := range r.instructions {
		n += in.NumberOfConsumedMeshes()
	}
	return n
}

// NumberOfProducedMeshes returns the total produced mesh count.
func (r *Row) NumberOfProducedMeshes() int {
	n := 0
	for _, in := range r.instructions {
		n += in.NumberOfProducedMeshes()
	}
	return n
}
