package cimrdfs

import (
	"log/slog"

	"github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
)

// Bind links classified records into a Graph.
//
// The records are copied, never modified. Enumeration values are bound
// first so every enumeration is complete before any property points at it.
// A property whose domain names no class, or an enumeration value whose
// owner names no enumeration, fails the whole bind with a *ReferenceError.
// Unresolved ranges and datatypes are not errors: profiles routinely point
// at classes defined in companion profiles.
func Bind(records *Records, opts ...Option) (*Graph, error) {
	o := newOptions(opts)
	b := &binder{logger: o.logger}
	return b.bind(records)
}

type binder struct {
	logger *slog.Logger
}

func (b *binder) bind(records *Records) (*Graph, error) {
	g := &Graph{
		Classes:      NewIndex[*Class](),
		Enumerations: NewIndex[*Enumeration](),
	}

	for _, rec := range records.Classes {
		c := *rec
		c.Description = rec.Description.clone()
		c.Attributes = NewIndex[*Property]()
		g.Classes.Put(c.IRI, &c)
	}
	for _, rec := range records.Enumerations {
		e := *rec
		e.Description = rec.Description.clone()
		e.Values = NewIndex[*EnumValue]()
		g.Enumerations.Put(e.IRI, &e)
	}

	if err := b.bindEnumValues(g, records.EnumValues); err != nil {
		return nil, err
	}
	if err := b.bindProperties(g, records.Properties); err != nil {
		return nil, err
	}

	return g, nil
}

func (b *binder) bindEnumValues(g *Graph, values []*EnumValue) error {
	for _, rec := range values {
		owner, ok := g.Enumerations.Get(rec.Enumeration)
		if !ok {
			return &ReferenceError{IRI: rec.IRI, Field: fieldType, Target: rec.Enumeration}
		}
		v := *rec
		v.Description = rec.Description.clone()
		owner.Values.Put(v.IRI, &v)
	}
	return nil
}

func (b *binder) bindProperties(g *Graph, props []*Property) error {
	for _, rec := range props {
		owner, ok := g.Classes.Get(rec.Domain)
		if !ok {
			return &ReferenceError{IRI: rec.IRI, Field: fieldDomain, Target: rec.Domain}
		}

		p := *rec
		p.Description = rec.Description.clone()
		p.RangeRef = nil
		p.DatatypeRef = nil
		p.IsPrimitive = false
		b.resolveType(g, &p)

		owner.Attributes.Put(p.IRI, &p)
	}
	return nil
}

// resolveType sets the value type of p. The datatype takes precedence over
// the range.
func (b *binder) resolveType(g *Graph, p *Property) {
	switch {
	case p.Datatype != "":
		if p.Range != "" {
			b.logger.Warn("Property has both range and datatype, using datatype",
				"property", p.IRI, "range", p.Range, "datatype", p.Datatype)
		}
		p.DatatypeRef = g.Lookup(p.Datatype)
		if p.DatatypeRef == nil {
			b.logger.Debug("Unresolved datatype", "property", p.IRI, "datatype", p.Datatype)
			return
		}
		if c := p.DatatypeRef.Class; c != nil {
			p.IsPrimitive = c.HasStereotype(cim.StereotypePrimitive)
		}

	case p.Range != "":
		p.RangeRef = g.Lookup(p.Range)
		if p.RangeRef == nil {
			b.logger.Debug("Unresolved range", "property", p.IRI, "range", p.Range)
		}
	}
}
