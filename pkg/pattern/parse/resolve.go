package parse

import (
	"github.com/mitchellh/mapstructure"

	"github.com/knitgrid/knitgrid/pkg/errors"
)

// connectionEnd is one side of a connection descriptor.
// Start is the mesh index the connection begins at, defaulting to 0.
type connectionEnd struct {
	ID    any `mapstructure:"id"`
	Start int `mapstructure:"start"`
}

// connectionDescriptor pairs a produced-mesh range of one row with a
// consumed-mesh range of another. A nil Meshes count defaults to the maximum
// mutually satisfiable count. Descriptors are consumed during resolution and
// not retained.
type connectionDescriptor struct {
	From   connectionEnd `mapstructure:"from"`
	To     connectionEnd `mapstructure:"to"`
	Meshes *int          `mapstructure:"meshes"`
}

// connectRows resolves the pattern's connection descriptors, in order,
// linking produced meshes to consumed meshes one-to-one.
//
// Ranges of separate descriptors may overlap; a later descriptor silently
// overwrites the earlier links on the meshes it touches. No conflict is
// reported.
func (p *Parser) connectRows(raw []any) error {
	for i, rc := range raw {
		m, ok := rc.(map[string]any)
		if !ok {
			return errors.New(errors.ErrCodeInvalidConnection, "connection %d: descriptor must be an object, got %T", i, rc)
		}
		var c connectionDescriptor
		if err := mapstructure.Decode(m, &c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConnection, err, "connection %d", i)
		}
		if err := p.connect(i, c); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) connect(i int, c connectionDescriptor) error {
	fromID, err := toID(c.From.ID)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConnection, err, "connection %d: from id", i)
	}
	fromRow, ok := p.idCache[fromID]
	if !ok {
		return errors.New(errors.ErrCodeUnknownRow, "connection %d: unknown row %q", i, fromID)
	}
	toRowID, err := toID(c.To.ID)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConnection, err, "connection %d: to id", i)
	}
	toRow, ok := p.idCache[toRowID]
	if !ok {
		return errors.New(errors.ErrCodeUnknownRow, "connection %d: unknown row %q", i, toRowID)
	}

	availableFrom := fromRow.NumberOfProducedMeshes() - c.From.Start
	availableTo := toRow.NumberOfConsumedMeshes() - c.To.Start
	meshes := min(availableFrom, availableTo)
	if c.Meshes != nil {
		meshes = *c.Meshes
	}

	fromStop := c.From.Start + meshes
	toStop := c.To.Start + meshes
	if c.From.Start < 0 || meshes < 0 || fromStop > fromRow.NumberOfProducedMeshes() {
		return errors.New(errors.ErrCodeMeshRange,
			"connection %d: produced meshes [%d:%d] out of range for row %q with %d produced meshes",
			i, c.From.Start, fromStop, fromID, fromRow.NumberOfProducedMeshes())
	}
	if c.To.Start < 0 || toStop > toRow.NumberOfConsumedMeshes() {
		return errors.New(errors.ErrCodeMeshRange,
			"connection %d: consumed meshes [%d:%d] out of range for row %q with %d consumed meshes",
			i, c.To.Start, toStop, toRowID, toRow.NumberOfConsumedMeshes())
	}

	produced := fromRow.ProducedMeshes()[c.From.Start:fromStop]
	consumed := toRow.ConsumedMeshes()[c.To.Start:toStop]
	for j := range produced {
		produced[j].ConnectTo(consumed[j])
	}
	return nil
}
