package cimrdfs

import (
	"slices"

	"github.com/c360studio/cimrdfs2linkml/rdfxml"
	"github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
)

// DefaultLanguage is the language tag preferred for labels and comments.
const DefaultLanguage = "en"

// Classifier turns raw descriptions into typed records.
type Classifier struct {
	// Base is the IRI fragment identifiers are resolved against.
	Base string
	// Language is the preferred xml:lang of labels and comments.
	Language string
}

// Classify classifies desc using the default language.
func Classify(desc *rdfxml.Description, base string) (Resource, error) {
	c := Classifier{Base: base, Language: DefaultLanguage}
	return c.Classify(desc)
}

// Classify returns the typed record for desc, or nil when desc is not part
// of the modeled ontology. The first matching rule wins:
//
//  1. rdfs:Class with the UML enumeration stereotype is an Enumeration
//  2. rdfs:Class is a Class
//  3. rdf:Property is a Property
//  4. the "enum" stereotype is an EnumValue owned by its rdf:type
func (c Classifier) Classify(desc *rdfxml.Description) (Resource, error) {
	base := c.Base
	if base == "" {
		base = cim.DefaultBase
	}
	lang := c.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	x := newExtractor(desc, base, lang)

	typ, ok := x.ref(cim.RDFType)
	if !ok {
		return nil, nil
	}
	if x.iri == "" {
		return nil, &FieldError{Field: fieldAbout}
	}

	stereotypes := x.stereotypes()
	has := func(s string) bool { return slices.Contains(stereotypes, s) }

	switch {
	case typ == cim.RDFSClass && has(cim.UMLEnumeration):
		return x.enumeration()
	case typ == cim.RDFSClass:
		return x.class()
	case typ == cim.RDFProperty:
		return x.property()
	case has(cim.StereotypeEnum):
		return x.enumValue(typ)
	}
	return nil, nil
}
