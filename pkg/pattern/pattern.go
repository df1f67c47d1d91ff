package pattern

import "github.com/knitgrid/knitgrid/pkg/errors"

// Pattern is an ordered collection of rows plus the mesh links between them.
// Rows are owned by exactly one pattern and are never shared.
type Pattern struct {
	id   string
	name string
	rows []*Row
	byID map[string]*Row
}

// NewPattern creates an empty pattern.
func NewPattern(id, name string) *Pattern {
	return &Pattern{
		id:   id,
		name: name,
		byID: make(map[string]*Row),
	}
}

// ID returns the pattern's identifier.
func (p *Pattern) ID() string { return p.id }

// Name returns the pattern's display name.
func (p *Pattern) Name() string { return p.name }

// AddRow appends a row, preserving insertion order. Row ids must be unique
// within the pattern.
func (p *Pattern) AddRow(r *Row) error {
	if _, exists := p.byID[r.ID()]; exists {
		return errors.New(errors.ErrCodeInvalidRow, "duplicate row id %q in pattern %q", r.ID(), p.id)
	}
	p.rows = append(p.rows, r)
	p.byID[r.ID()] = r
	return nil
}

// Rows returns the rows in insertion order.
// The returned slice must not be modified.
func (p *Pattern) Rows() []*Row { return p.rows }

// Row returns the row with the given id.
func (p *Pattern) Row(id string) (*Row, bool) {
	r, ok := p.byID[id]
	return r, ok
}

// NumberOfRows returns the row count.
func (p *Pattern) NumberOfRows() int { return len(p.rows) }
