// Package library provides the instruction-type library: named instruction
// types with their default consumed/produced mesh counts and render metadata.
//
// The built-in library is embedded as TOML and covers the common stitch
// vocabulary (knit, purl, yarn-overs, decreases, cast on, bind off). Pattern
// files reference instruction types by name and may override the declared
// counts or color per instruction.
package library

import (
	_ "embed"
	"io"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"

	"github.com/knitgrid/knitgrid/pkg/errors"
	"github.com/knitgrid/knitgrid/pkg/pattern"
)

//go:embed instructions.toml
var builtinTOML []byte

// Descriptor keys understood beyond the typed fields. These follow the
// pattern file format, which spells mesh counts out in full.
const (
	keyType     = "type"
	keyConsumes = "number of consumed meshes"
	keyProduces = "number of produced meshes"
	keyColor    = "color"
)

// Definition declares an instruction type.
// Nil counts default to 1 mesh.
type Definition struct {
	Type        string `toml:"type"`
	Description string `toml:"description,omitempty"`
	Consumes    *int   `toml:"consumes"`
	Produces    *int   `toml:"produces"`
	Color       string `toml:"color,omitempty"`
}

// NumberOfConsumedMeshes returns the declared consumed count, defaulting to 1.
func (d Definition) NumberOfConsumedMeshes() int {
	if d.Consumes != nil {
		return *d.Consumes
	}
	return 1
}

// NumberOfProducedMeshes returns the declared produced count, defaulting to 1.
func (d Definition) NumberOfProducedMeshes() int {
	if d.Produces != nil {
		return *d.Produces
	}
	return 1
}

// Library maps instruction type names to their definitions.
type Library struct {
	defs map[string]Definition
}

// New creates a library from a list of definitions. Later definitions with
// the same type name replace earlier ones.
func New(defs []Definition) *Library {
	l := &Library{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		l.defs[d.Type] = d
	}
	return l
}

// Load reads a TOML instruction library from r.
func Load(r io.Reader) (*Library, error) {
	var file struct {
		Instructions []Definition `toml:"instruction"`
	}
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode instruction library")
	}
	return New(file.Instructions), nil
}

var (
	builtinOnce sync.Once
	builtin     *Library
)

// Default returns the built-in instruction library.
// The embedded TOML is parsed once; the returned library is shared and
// read-only.
func Default() *Library {
	builtinOnce.Do(func() {
		var file struct {
			Instructions []Definition `toml:"instruction"`
		}
		if err := toml.Unmarshal(builtinTOML, &file); err != nil {
			// The embedded library is part of the build; a decode failure
			// is a programming error, not an input error.
			panic("library: embedded instructions.toml is invalid: " + err.Error())
		}
		builtin = New(file.Instructions)
	})
	return builtin
}

// Lookup returns the definition for an instruction type name.
func (l *Library) Lookup(typ string) (Definition, bool) {
	d, ok := l.defs[typ]
	return d, ok
}

// descriptor is the typed view of an instruction descriptor map.
// Everything not captured here stays in Rest for attribute lookups.
type descriptor struct {
	Type     string         `mapstructure:"type"`
	Consumes *int           `mapstructure:"number of consumed meshes"`
	Produces *int           `mapstructure:"number of produced meshes"`
	Color    string         `mapstructure:"color"`
	Rest     map[string]any `mapstructure:",remain"`
}

// AsInstruction resolves an instruction descriptor map against the library
// and returns a fully-sized instruction spec. The descriptor's own counts and
// color override the library defaults. An unknown type is a fatal parsing
// error carrying ErrCodeUnknownInstruction.
func (l *Library) AsInstruction(desc map[string]any) (pattern.InstructionSpec, error) {
	var d descriptor
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &d})
	if err != nil {
		return pattern.InstructionSpec{}, errors.Wrap(errors.ErrCodeInternal, err, "build descriptor decoder")
	}
	if err := dec.Decode(desc); err != nil {
		return pattern.InstructionSpec{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode instruction descriptor")
	}
	if err := errors.ValidateInstructionType(d.Type); err != nil {
		return pattern.InstructionSpec{}, err
	}

	def, ok := l.Lookup(d.Type)
	if !ok {
		return pattern.InstructionSpec{}, errors.New(errors.ErrCodeUnknownInstruction, "unknown instruction type %q", d.Type)
	}

	spec := pattern.InstructionSpec{
		Type:       d.Type,
		Consumes:   def.NumberOfConsumedMeshes(),
		Produces:   def.NumberOfProducedMeshes(),
		Color:      def.Color,
		Attributes: d.Rest,
	}
	if d.Consumes != nil {
		spec.Consumes = *d.Consumes
	}
	if d.Produces != nil {
		spec.Produces = *d.Produces
	}
	if d.Color != "" {
		spec.Color = d.Color
	}
	if spec.Consumes < 0 || spec.Produces < 0 {
		return pattern.InstructionSpec{}, errors.New(errors.ErrCodeInvalidFormat, "instruction %q has negative mesh count", d.Type)
	}
	return spec, nil
}
