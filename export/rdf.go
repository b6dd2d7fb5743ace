// Package export serializes a resolved CIM ontology graph back to RDF, as
// Turtle or N-Triples. The output reflects the graph after binding:
// absolute IRIs, one language per text field and canonical multiplicities.
package export

import (
	"fmt"
	"slices"
	"strings"

	"github.com/c360studio/cimrdfs2linkml/cimrdfs"
	"github.com/c360studio/cimrdfs2linkml/rdfxml"
	"github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"
)

// Ref is an object that refers to a resource by IRI. Any other object is
// written as a plain literal.
type Ref string

// Triple is one predicate-object pair of an entity. Predicate is a
// symbolic term name registered by the cim vocabulary.
type Triple struct {
	Predicate string
	Object    any
}

// Entity is an exportable subject with its types and triples.
type Entity struct {
	IRI     string
	Types   []string
	Triples []Triple
}

// RDFExporter collects entities and serializes them.
type RDFExporter struct {
	entities []Entity
	prefixes map[string]string
}

// NewRDFExporter creates an exporter that abbreviates IRIs with the
// standard prefixes plus namespaces. A namespace reusing a standard prefix
// replaces it.
func NewRDFExporter(namespaces []rdfxml.Namespace) *RDFExporter {
	prefixes := defaultPrefixes()
	for _, ns := range namespaces {
		if ns.Prefix != "" {
			prefixes[ns.Prefix] = ns.URI
		}
	}
	return &RDFExporter{prefixes: prefixes}
}

// defaultPrefixes returns the namespace prefixes of the CIM RDFS vocabulary.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  cim.RDFNamespace,
		"rdfs": cim.RDFSNamespace,
		"cims": cim.CIMSNamespace,
		"uml":  cim.UMLNamespace,
	}
}

// AddEntity adds an entity to be exported.
func (e *RDFExporter) AddEntity(entity Entity) {
	e.entities = append(e.entities, entity)
}

// AddGraph adds every resource of graph: each class followed by its
// attributes, then each enumeration followed by its values.
func (e *RDFExporter) AddGraph(graph *cimrdfs.Graph) {
	for _, c := range graph.Classes.Values() {
		e.AddEntity(classEntity(c))
		for _, p := range c.Attributes.Values() {
			e.AddEntity(propertyEntity(p))
		}
	}
	for _, en := range graph.Enumerations.Values() {
		e.AddEntity(enumerationEntity(en))
		for _, v := range en.Values.Values() {
			e.AddEntity(enumValueEntity(v))
		}
	}
}

// Export serializes all entities to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle()
	case FormatNTriples:
		return e.toNTriples()
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *RDFExporter) toTurtle() (string, error) {
	w := NewTurtleWriter(e.prefixes)
	w.WritePrefixes()

	for _, entity := range e.entities {
		w.WriteSubject(entity.IRI)
		total := len(entity.Types) + len(entity.Triples)
		n := 0
		for _, typeIRI := range entity.Types {
			n++
			w.WriteType(typeIRI, n == total)
		}
		for _, triple := range entity.Triples {
			predicate, err := predicateIRI(triple.Predicate)
			if err != nil {
				return "", err
			}
			n++
			w.WritePredicate(predicate, triple.Object, n == total)
		}
		w.WriteBlank()
	}
	return w.String(), nil
}

func (e *RDFExporter) toNTriples() (string, error) {
	w := NewNTriplesWriter()

	for _, entity := range e.entities {
		for _, typeIRI := range entity.Types {
			w.WriteTypeTriple(entity.IRI, typeIRI)
		}
		for _, triple := range entity.Triples {
			predicate, err := predicateIRI(triple.Predicate)
			if err != nil {
				return "", err
			}
			w.WriteTriple(entity.IRI, predicate, triple.Object)
		}
	}
	return w.String(), nil
}

func predicateIRI(term string) (string, error) {
	iri, ok := cim.IRIFor(term)
	if !ok {
		return "", fmt.Errorf("unregistered predicate: %s", term)
	}
	return iri, nil
}

// entityBuilder accumulates triples, skipping empty objects.
type entityBuilder struct {
	entity Entity
}

func newEntity(iri string, types ...string) *entityBuilder {
	return &entityBuilder{entity: Entity{IRI: iri, Types: types}}
}

func (b *entityBuilder) literal(predicate, value string) *entityBuilder {
	if value != "" {
		b.entity.Triples = append(b.entity.Triples, Triple{Predicate: predicate, Object: value})
	}
	return b
}

func (b *entityBuilder) ref(predicate, iri string) *entityBuilder {
	if iri != "" {
		b.entity.Triples = append(b.entity.Triples, Triple{Predicate: predicate, Object: Ref(iri)})
	}
	return b
}

// describe adds the label, comment and stereotypes. Stereotypes that are
// IRIs are written as references.
func (b *entityBuilder) describe(d cimrdfs.Description) *entityBuilder {
	b.literal(cim.TermLabel, d.Label)
	b.literal(cim.TermComment, d.Comment)
	for _, s := range d.Stereotypes {
		if strings.Contains(s, "://") {
			b.ref(cim.TermStereotype, s)
		} else {
			b.literal(cim.TermStereotype, s)
		}
	}
	return b
}

func (b *entityBuilder) build() Entity {
	return b.entity
}

func classEntity(c *cimrdfs.Class) Entity {
	return newEntity(c.IRI, cim.RDFSClass).
		describe(c.Description).
		ref(cim.TermSubClassOf, c.SubclassOf).
		ref(cim.TermBelongsToCategory, c.Category).
		build()
}

func enumerationEntity(e *cimrdfs.Enumeration) Entity {
	d := e.Description
	if !d.HasStereotype(cim.UMLEnumeration) {
		d.Stereotypes = append(slices.Clone(d.Stereotypes), cim.UMLEnumeration)
	}
	return newEntity(e.IRI, cim.RDFSClass).
		describe(d).
		build()
}

func propertyEntity(p *cimrdfs.Property) Entity {
	return newEntity(p.IRI, cim.RDFProperty).
		describe(p.Description).
		ref(cim.TermDomain, p.Domain).
		ref(cim.TermRange, p.Range).
		ref(cim.TermDataType, p.Datatype).
		ref(cim.TermMultiplicity, p.Multiplicity.IRI()).
		literal(cim.TermIsFixed, p.IsFixed).
		build()
}

func enumValueEntity(v *cimrdfs.EnumValue) Entity {
	return newEntity(v.IRI, v.Enumeration).
		describe(v.Description).
		build()
}
