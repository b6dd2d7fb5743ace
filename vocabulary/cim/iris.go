package cim

import "strings"

// Namespace IRIs for the vocabularies a CIM profile is written in.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	DCTNamespace  = "http://purl.org/dc/terms/"
	DCATNamespace = "http://www.w3.org/ns/dcat#"

	// CIMSNamespace is the TC57 RDF schema extension namespace.
	CIMSNamespace = "http://iec.ch/TC57/1999/rdf-schema-extensions-19990926#"

	// UMLNamespace holds the non-standard UML stereotype markers.
	UMLNamespace = "http://iec.ch/TC57/NonStandard/UML#"

	// XMLNamespace is the namespace of xml:lang and xml:base.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
)

// DefaultBase is the base IRI fragment-only identifiers are resolved against.
const DefaultBase = "http://iec.ch/TC57/CIM100"

// RDF terms.
const (
	RDFRoot        = RDFNamespace + "RDF"
	RDFDescription = RDFNamespace + "Description"
	RDFAbout       = RDFNamespace + "about"
	RDFResource    = RDFNamespace + "resource"
	RDFType        = RDFNamespace + "type"

	// RDFProperty marks a resource as a property.
	RDFProperty = RDFNamespace + "Property"
)

// RDFS terms.
const (
	// RDFSClass marks a resource as a class (or an enumeration, see UMLEnumeration).
	RDFSClass      = RDFSNamespace + "Class"
	RDFSLabel      = RDFSNamespace + "label"
	RDFSComment    = RDFSNamespace + "comment"
	RDFSDomain     = RDFSNamespace + "domain"
	RDFSRange      = RDFSNamespace + "range"
	RDFSSubClassOf = RDFSNamespace + "subClassOf"
)

// TC57 RDF schema extension terms.
const (
	CIMSStereotype        = CIMSNamespace + "stereotype"
	CIMSMultiplicity      = CIMSNamespace + "multiplicity"
	CIMSDataType          = CIMSNamespace + "dataType"
	CIMSIsFixed           = CIMSNamespace + "isFixed"
	CIMSBelongsToCategory = CIMSNamespace + "belongsToCategory"
)

// Stereotype markers.
const (
	// UMLEnumeration is attached to classes that are really enumerations.
	UMLEnumeration = UMLNamespace + "enumeration"

	// StereotypePrimitive marks datatype wrapper classes such as Float or String.
	StereotypePrimitive = "Primitive"

	// StereotypeEnum marks enumeration literals.
	StereotypeEnum = "enum"
)

// Multiplicity markers.
const (
	MultiplicityZeroToOne  = CIMSNamespace + "M:0..1"
	MultiplicityZeroToTwo  = CIMSNamespace + "M:0..2"
	MultiplicityZeroToMany = CIMSNamespace + "M:0..n"
	MultiplicityOne        = CIMSNamespace + "M:1"
	MultiplicityOneToOne   = CIMSNamespace + "M:1..1"
	MultiplicityOneToMany  = CIMSNamespace + "M:1..n"
)

// Ontology header terms.
const (
	DCATKeyword    = DCATNamespace + "keyword"
	OWLVersionInfo = OWLNamespace + "versionInfo"
	DCTCreator     = DCTNamespace + "creator"
	DCTDescription = DCTNamespace + "description"
	DCTIdentifier  = DCTNamespace + "identifier"
	DCTLanguage    = DCTNamespace + "language"
	DCTPublisher   = DCTNamespace + "publisher"
	DCTTitle       = DCTNamespace + "title"
	DCTIssued      = DCTNamespace + "issued"
	DCTModified    = DCTNamespace + "modified"
)

// Absolute resolves a fragment-only IRI ("#Foo") against base.
// Anything else is returned unchanged.
func Absolute(iri, base string) string {
	if strings.HasPrefix(iri, "#") {
		return base + iri
	}
	return iri
}

// LocalName returns the part of an IRI after its last '#' or '/'.
func LocalName(iri string) string {
	if i := strings.LastIndexAny(iri, "#/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}
