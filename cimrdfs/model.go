package cimrdfs

import (
	"slices"

	"github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
)

// Description holds the fields every ontology resource carries.
type Description struct {
	IRI         string
	Label       string
	Stereotypes []string
	Comment     string
}

// HasStereotype reports whether s is one of the resource's stereotypes.
func (d Description) HasStereotype(s string) bool {
	return slices.Contains(d.Stereotypes, s)
}

// Name returns the label, or the IRI's local name when there is no label.
func (d Description) Name() string {
	if d.Label != "" {
		return d.Label
	}
	return cim.LocalName(d.IRI)
}

func (d Description) clone() Description {
	d.Stereotypes = slices.Clone(d.Stereotypes)
	return d
}

// Resource is a classified ontology resource: *Class, *Enumeration,
// *Property or *EnumValue.
type Resource interface {
	Describe() Description
	sealed()
}

// Class is a modeled kind of thing.
type Class struct {
	Description

	// SubclassOf is the superclass IRI, empty for root classes.
	SubclassOf string
	// Category is the package the class belongs to.
	Category string
	// Attributes is filled by Bind, keyed by property IRI.
	Attributes *Index[*Property]
}

// Enumeration is a closed set of named values.
type Enumeration struct {
	Description

	// Values is filled by Bind, keyed by enum value IRI.
	Values *Index[*EnumValue]
}

// Property is an attribute or association end of a class.
type Property struct {
	Description

	Domain       string
	Multiplicity Multiplicity
	// Range is the rdfs:range IRI, empty when absent.
	Range string
	// Datatype is the cims:dataType IRI, empty when absent.
	Datatype string
	// IsFixed is the fixed literal value, empty when absent.
	IsFixed string

	// RangeRef is the resolved range, nil when absent or unresolved.
	RangeRef *Target
	// DatatypeRef is the resolved datatype, nil when absent or unresolved.
	DatatypeRef *Target
	// IsPrimitive is set when the datatype resolves to a Primitive class.
	IsPrimitive bool
}

// EnumValue is a literal of an enumeration.
type EnumValue struct {
	Description

	// Enumeration is the IRI of the owning enumeration.
	Enumeration string
}

func (c *Class) Describe() Description       { return c.Description }
func (e *Enumeration) Describe() Description { return e.Description }
func (p *Property) Describe() Description    { return p.Description }
func (v *EnumValue) Describe() Description   { return v.Description }

func (*Class) sealed()       {}
func (*Enumeration) sealed() {}
func (*Property) sealed()    {}
func (*EnumValue) sealed()   {}

// Target is a resolved type reference: exactly one of Class and Enumeration
// is set.
type Target struct {
	Class       *Class
	Enumeration *Enumeration
}

// IRI returns the IRI of the referenced resource.
func (t *Target) IRI() string {
	switch {
	case t == nil:
		return ""
	case t.Class != nil:
		return t.Class.IRI
	case t.Enumeration != nil:
		return t.Enumeration.IRI
	}
	return ""
}

// Name returns the display name of the referenced resource.
func (t *Target) Name() string {
	switch {
	case t == nil:
		return ""
	case t.Class != nil:
		return t.Class.Name()
	case t.Enumeration != nil:
		return t.Enumeration.Name()
	}
	return ""
}

// Records collects classified resources before binding.
type Records struct {
	Classes      []*Class
	Enumerations []*Enumeration
	Properties   []*Property
	EnumValues   []*EnumValue
}

// Add appends res to the collection matching its kind. A nil resource is ignored.
func (r *Records) Add(res Resource) {
	switch v := res.(type) {
	case *Class:
		r.Classes = append(r.Classes, v)
	case *Enumeration:
		r.Enumerations = append(r.Enumerations, v)
	case *Property:
		r.Properties = append(r.Properties, v)
	case *EnumValue:
		r.EnumValues = append(r.EnumValues, v)
	}
}

// Len returns the total number of records.
func (r *Records) Len() int {
	return len(r.Classes) + len(r.Enumerations) + len(r.Properties) + len(r.EnumValues)
}

// Graph is the resolved ontology. It is read-only once Bind returns.
type Graph struct {
	Classes      *Index[*Class]
	Enumerations *Index[*Enumeration]
}

// Lookup resolves iri against the classes first, then the enumerations.
func (g *Graph) Lookup(iri string) *Target {
	if c, ok := g.Classes.Get(iri); ok {
		return &Target{Class: c}
	}
	if e, ok := g.Enumerations.Get(iri); ok {
		return &Target{Enumeration: e}
	}
	return nil
}

// Superclass returns the resolved superclass of c, or nil for root classes
// and superclasses defined outside the graph.
func (g *Graph) Superclass(c *Class) *Class {
	if c.SubclassOf == "" {
		return nil
	}
	parent, ok := g.Classes.Get(c.SubclassOf)
	if !ok {
		return nil
	}
	return parent
}

// Stats counts graph members.
type Stats struct {
	Classes      int
	Enumerations int
	Properties   int
	EnumValues   int
}

// Stats returns member counts of the graph.
func (g *Graph) Stats() Stats {
	s := Stats{
		Classes:      g.Classes.Len(),
		Enumerations: g.Enumerations.Len(),
	}
	for _, c := range g.Classes.Values() {
		s.Properties += c.Attributes.Len()
	}
	for _, e := range g.Enumerations.Values() {
		s.EnumValues += e.Values.Len()
	}
	return s
}
