// Package parse turns decoded pattern-set descriptors into resolved pattern
// graphs.
//
// Parsing is a strict two-phase build per pattern. Phase one constructs all
// row skeletons and registers deferred work: "same as" inheritance links and
// the instruction lists themselves (which may be inherited). Phase two drains
// both queues to completion, so every row has fully-sized mesh sequences
// before any connection is resolved. The connection resolver then slices
// produced/consumed mesh ranges and links the pairs; see resolve.go.
//
// Any malformed input aborts the whole pattern with a single descriptive
// error — no partial graph is ever returned.
package parse

import (
	"github.com/google/uuid"

	"github.com/knitgrid/knitgrid/pkg/errors"
	"github.com/knitgrid/knitgrid/pkg/pattern"
	"github.com/knitgrid/knitgrid/pkg/pattern/library"
)

// Parser parses knitting pattern sets. A Parser is not safe for concurrent
// use; each PatternSet call starts from fresh resolver state.
type Parser struct {
	lib *library.Library

	// per-pattern state, reset by start
	idCache          map[string]*pattern.Row
	inheritanceTodos []inheritance
	instructionTodos []*pattern.Row
}

// inheritance is a deferred "same as" link registered in phase one.
type inheritance struct {
	row      *pattern.Row
	parentID string
}

// New creates a parser using the given instruction library.
// A nil library selects the built-in one.
func New(lib *library.Library) *Parser {
	if lib == nil {
		lib = library.Default()
	}
	return &Parser{lib: lib}
}

func (p *Parser) start() {
	p.idCache = make(map[string]*pattern.Row)
	p.inheritanceTodos = nil
	p.instructionTodos = nil
}

// PatternSet parses a decoded pattern-set descriptor (the result of
// unmarshalling a pattern file) into a resolved Set.
func (p *Parser) PatternSet(values map[string]any) (*pattern.Set, error) {
	typ, ok := values[keyType].(string)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPatternSet, "no pattern type given but should be %q", pattern.SetType)
	}
	if typ != pattern.SetType {
		return nil, errors.New(errors.ErrCodeInvalidPatternSet, "wrong pattern type %q, should be %q", typ, pattern.SetType)
	}
	version, ok := scalarString(values[keyVersion])
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPatternSet, "no version given")
	}
	comment, _ := values[keyComment].(string)

	set := pattern.NewSet(typ, version, comment)

	rawPatterns, ok := asSlice(values[keyPatterns])
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPatternSet, "patterns must be a list")
	}
	for _, raw := range rawPatterns {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidPattern, "pattern descriptor must be an object, got %T", raw)
		}
		pat, err := p.pattern(m)
		if err != nil {
			return nil, err
		}
		if err := set.AddPattern(pat); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// pattern parses one pattern: rows first, then the deferred inheritance and
// instruction queues, then the connections. The id cache is pattern-scoped
// so that patterns within a set cannot observe each other's rows.
func (p *Parser) pattern(values map[string]any) (*pattern.Pattern, error) {
	p.start()

	id := uuid.NewString()
	if raw, ok := values[keyID]; ok {
		parsed, err := toID(raw)
		if err != nil {
			return nil, err
		}
		id = parsed
	}
	name, ok := values[keyName].(string)
	if !ok {
		name = id
	}

	rawRows, ok := asSlice(values[keyRows])
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPattern, "pattern %q: rows must be a list", id)
	}

	pat := pattern.NewPattern(id, name)
	for _, raw := range rawRows {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidRow, "pattern %q: row descriptor must be an object, got %T", id, raw)
		}
		row, err := p.row(m)
		if err != nil {
			return nil, err
		}
		if err := pat.AddRow(row); err != nil {
			return nil, err
		}
	}

	if err := p.finishInheritance(); err != nil {
		return nil, err
	}
	if err := p.finishInstructions(); err != nil {
		return nil, err
	}

	rawConns, ok := asSlice(values[keyConnections])
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPattern, "pattern %q: connections must be a list", id)
	}
	if err := p.connectRows(rawConns); err != nil {
		return nil, err
	}
	return pat, nil
}

// row builds a row skeleton and registers its deferred work.
// Instructions are not instantiated yet: the list may be inherited.
func (p *Parser) row(values map[string]any) (*pattern.Row, error) {
	rawID, ok := values[keyID]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidRow, "row without id")
	}
	id, err := toID(rawID)
	if err != nil {
		return nil, err
	}
	if _, exists := p.idCache[id]; exists {
		return nil, errors.New(errors.ErrCodeInvalidRow, "duplicate row id %q", id)
	}

	row := pattern.NewRow(id, values)
	if rawParent, ok := values[keySameAs]; ok {
		parentID, err := toID(rawParent)
		if err != nil {
			return nil, err
		}
		p.inheritanceTodos = append(p.inheritanceTodos, inheritance{row: row, parentID: parentID})
	}
	p.instructionTodos = append(p.instructionTodos, row)
	p.idCache[id] = row
	return row, nil
}

// finishInheritance drains the deferred "same as" queue. Parents may appear
// later in the file than their children, which is why this runs after all
// row skeletons exist.
func (p *Parser) finishInheritance() error {
	for _, todo := range p.inheritanceTodos {
		parent, ok := p.idCache[todo.parentID]
		if !ok {
			return errors.New(errors.ErrCodeUnknownRow, "row %q: same as references unknown row %q", todo.row.ID(), todo.parentID)
		}
		todo.row.InheritFrom(parent)
	}
	p.inheritanceTodos = nil
	return nil
}

// finishInstructions drains the deferred instruction queue. The instruction
// list is resolved through the row's inheritance chain, so a "same as" row
// without instructions of its own knits its parent's.
func (p *Parser) finishInstructions() error {
	for _, row := range p.instructionTodos {
		raw, _ := row.Attribute(keyInstructions)
		descs, ok := asSlice(raw)
		if !ok {
			return errors.New(errors.ErrCodeInvalidRow, "row %q: instructions must be a list", row.ID())
		}
		for i, desc := range descs {
			spec, err := p.instructionSpec(desc)
			if err != nil {
				code := errors.GetCode(err)
				if code == "" {
					code = errors.ErrCodeInvalidRow
				}
				return errors.Wrap(code, err, "row %q instruction %d", row.ID(), i)
			}
			row.AddInstruction(pattern.NewInstruction(spec))
		}
	}
	p.instructionTodos = nil
	return nil
}

// instructionSpec resolves one instruction descriptor against the library.
// Bare strings are shorthand for {"type": <string>}.
func (p *Parser) instructionSpec(desc any) (pattern.InstructionSpec, error) {
	switch d := desc.(type) {
	case string:
		return p.lib.AsInstruction(map[string]any{"type": d})
	case map[string]any:
		return p.lib.AsInstruction(d)
	default:
		return pattern.InstructionSpec{}, errors.New(errors.ErrCodeInvalidFormat, "instruction descriptor must be a string or object, got %T", desc)
	}
}
