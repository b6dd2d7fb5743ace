package cim

import "github.com/c360studio/semstreams/vocabulary"

// Resource type markers.
const (
	// TermClass is the symbolic name of rdfs:Class.
	TermClass = "cim.type.class"

	// TermProperty is the symbolic name of rdf:Property.
	TermProperty = "cim.type.property"
)

// Stereotype markers.
const (
	// TermEnumeration marks a class as an enumeration.
	TermEnumeration = "cim.stereotype.enumeration"

	// TermPrimitive marks a datatype wrapper class.
	TermPrimitive = "cim.stereotype.primitive"

	// TermEnumValue marks an enumeration literal.
	TermEnumValue = "cim.stereotype.enum"
)

// Multiplicity markers.
const (
	TermZeroToOne  = "cim.multiplicity.zero_to_one"
	TermZeroToTwo  = "cim.multiplicity.zero_to_two"
	TermZeroToMany = "cim.multiplicity.zero_to_many"
	TermOne        = "cim.multiplicity.one"
	TermOneToOne   = "cim.multiplicity.one_to_one"
	TermOneToMany  = "cim.multiplicity.one_to_many"
)

// Resource predicates read by the field extractors.
const (
	TermLabel             = "cim.resource.label"
	TermComment           = "cim.resource.comment"
	TermType              = "cim.resource.type"
	TermStereotype        = "cim.resource.stereotype"
	TermDomain            = "cim.property.domain"
	TermRange             = "cim.property.range"
	TermDataType          = "cim.property.data_type"
	TermMultiplicity      = "cim.property.multiplicity"
	TermIsFixed           = "cim.property.is_fixed"
	TermSubClassOf        = "cim.class.subclass_of"
	TermBelongsToCategory = "cim.class.belongs_to_category"
)

type term struct {
	name        string
	iri         string
	description string
	dataType    string
}

var terms = []term{
	{TermClass, RDFSClass, "Declares a resource as a class", "iri"},
	{TermProperty, RDFProperty, "Declares a resource as a property", "iri"},
	{TermEnumeration, UMLEnumeration, "Stereotype turning a class into an enumeration", "iri"},
	{TermPrimitive, StereotypePrimitive, "Stereotype of primitive datatype wrapper classes", "string"},
	{TermEnumValue, StereotypeEnum, "Stereotype of enumeration literals", "string"},
	{TermZeroToOne, MultiplicityZeroToOne, "Optional, single valued", "iri"},
	{TermZeroToTwo, MultiplicityZeroToTwo, "Optional, at most two values", "iri"},
	{TermZeroToMany, MultiplicityZeroToMany, "Optional, unbounded", "iri"},
	{TermOne, MultiplicityOne, "Exactly one value", "iri"},
	{TermOneToOne, MultiplicityOneToOne, "Exactly one value", "iri"},
	{TermOneToMany, MultiplicityOneToMany, "At least one value, unbounded", "iri"},
	{TermLabel, RDFSLabel, "Human readable resource name", "string"},
	{TermComment, RDFSComment, "Resource documentation", "string"},
	{TermType, RDFType, "RDF type, or owning enumeration for enum literals", "iri"},
	{TermStereotype, CIMSStereotype, "Stereotype annotation", "string"},
	{TermDomain, RDFSDomain, "Class owning the property", "iri"},
	{TermRange, RDFSRange, "Class or enumeration the property points to", "iri"},
	{TermDataType, CIMSDataType, "Datatype class of an attribute", "iri"},
	{TermMultiplicity, CIMSMultiplicity, "Cardinality marker", "iri"},
	{TermIsFixed, CIMSIsFixed, "Fixed literal value of an attribute", "string"},
	{TermSubClassOf, RDFSSubClassOf, "Superclass reference", "iri"},
	{TermBelongsToCategory, CIMSBelongsToCategory, "Package the class belongs to", "iri"},
}

// symbols is written once in init and read-only afterwards.
var symbols = make(map[string]string, len(terms))

func init() {
	for _, t := range terms {
		vocabulary.Register(t.name,
			vocabulary.WithDescription(t.description),
			vocabulary.WithDataType(t.dataType),
			vocabulary.WithIRI(t.iri))
		symbols[t.iri] = t.name
	}
}

// SymbolFor returns the symbolic name registered for a vocabulary IRI.
func SymbolFor(iri string) (string, bool) {
	name, ok := symbols[iri]
	return name, ok
}

// IRIFor returns the IRI registered for a symbolic term name.
func IRIFor(name string) (string, bool) {
	meta := vocabulary.GetPredicateMetadata(name)
	if meta == nil || meta.StandardIRI == "" {
		return "", false
	}
	return meta.StandardIRI, true
}
