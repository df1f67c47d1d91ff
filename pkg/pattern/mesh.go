package pattern

// MeshRole distinguishes the two ends of a mesh link.
type MeshRole int

const (
	// MeshProduced marks a mesh created by an instruction.
	MeshProduced MeshRole = iota
	// MeshConsumed marks a mesh used up by an instruction.
	MeshConsumed
)

// String returns the role name used in error messages and debug output.
func (r MeshRole) String() string {
	if r == MeshProduced {
		return "produced"
	}
	return "consumed"
}

// Mesh is the smallest unit of a pattern: a single stitch-loop slot that is
// either produced or consumed by exactly one instruction. A mesh holds at most
// one link to a counterpart mesh on the other side of a row connection; the
// link is always mutual.
type Mesh struct {
	owner *Instruction
	role  MeshRole
	index int
	link  *Mesh
}

// Instruction returns the instruction that owns this mesh.
func (m *Mesh) Instruction() *Instruction { return m.owner }

// Role reports whether the mesh is produced or consumed by its owner.
func (m *Mesh) Role() MeshRole { return m.role }

// Index returns the mesh's position within its owner's produced or consumed
// sequence, depending on its role.
func (m *Mesh) Index() int { return m.index }

// Counterpart returns the linked mesh on the other side of a connection,
// or nil for a boundary mesh.
func (m *Mesh) Counterpart() *Mesh { return m.link }

// IsConnected reports whether the mesh has a linked counterpart.
func (m *Mesh) IsConnected() bool { return m.link != nil }

// IsBoundary reports whether the mesh is a pattern edge: a cast-on, bind-off
// or external connection point with no counterpart.
func (m *Mesh) IsBoundary() bool { return m.link == nil }

// ConnectTo links m and other mutually. Existing links on either side are
// silently dropped first, so connecting an already-connected mesh overwrites
// the earlier connection on both ends.
func (m *Mesh) ConnectTo(other *Mesh) {
	m.Disconnect()
	other.Disconnect()
	m.link = other
	other.link = m
}

// Disconnect removes the link between m and its counterpart, if any.
// Both ends become boundary meshes.
func (m *Mesh) Disconnect() {
	if m.link != nil {
		m.link.link = nil
		m.link = nil
	}
}

// newMeshes allocates n meshes owned by in with the given role.
func newMeshes(in *Instruction, role MeshRole, n int) []*Mesh {
	meshes := make([]*Mesh, n)
	for i := range meshes {
		meshes[i] = &Mesh{owner: in, role: role, index: i}
	}
	return meshes
}
