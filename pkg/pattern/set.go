package pattern

import "github.com/knitgrid/knitgrid/pkg/errors"

// SetType is the only accepted value for a pattern set's type field.
const SetType = "knitting pattern"

// Set is a parsed knitting pattern set: the outer envelope plus an ordered
// collection of patterns.
type Set struct {
	typ      string
	version  string
	comment  string
	patterns []*Pattern
	byID     map[string]*Pattern
}

// NewSet creates an empty pattern set.
func NewSet(typ, version, comment string) *Set {
	return &Set{
		typ:     typ,
		version: version,
		comment: comment,
		byID:    make(map[string]*Pattern),
	}
}

// Type returns the set's type field, always SetType for a valid set.
func (s *Set) Type() string { return s.typ }

// Version returns the file format version.
func (s *Set) Version() string { return s.version }

// Comment returns the optional free-form comment.
func (s *Set) Comment() string { return s.comment }

// AddPattern appends a pattern, preserving insertion order.
// Pattern ids must be unique within the set.
func (s *Set) AddPattern(p *Pattern) error {
	if _, exists := s.byID[p.ID()]; exists {
		return errors.New(errors.ErrCodeInvalidPattern, "duplicate pattern id %q", p.ID())
	}
	s.patterns = append(s.patterns, p)
	s.byID[p.ID()] = p
	return nil
}

// Patterns returns the patterns in insertion order.
// The returned slice must not be modified.
func (s *Set) Patterns() []*Pattern { return s.patterns }

// Pattern returns the pattern with the given id.
func (s *Set) Pattern(id string) (*Pattern, bool) {
	p, ok := s.byID[id]
	return p, ok
}
