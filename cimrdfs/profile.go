package cimrdfs

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/c360studio/cimrdfs2linkml/rdfxml"
	"github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
)

// OntologyHeader is the ontology metadata carried by the first description.
type OntologyHeader struct {
	Keyword     string
	VersionInfo string
	Creator     string
	Description string
	Identifier  string
	Language    string
	Publisher   string
	Title       string
	Issued      string
	Modified    string
}

// UUID parses the identifier, which CGMES profiles carry as "urn:uuid:...".
func (h OntologyHeader) UUID() (uuid.UUID, error) {
	id, err := uuid.Parse(h.Identifier)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse ontology identifier %q: %w", h.Identifier, err)
	}
	return id, nil
}

// ProfileDeclaration identifies the profile a document describes.
type ProfileDeclaration struct {
	IRI     string
	Label   string
	Type    string
	Comment string
}

// Profile is the result of parsing one profile document.
type Profile struct {
	Namespaces  []rdfxml.Namespace
	Header      OntologyHeader
	Declaration ProfileDeclaration
	Graph       *Graph
}

// Parts is a document split into its positional sections.
type Parts struct {
	Header      *rdfxml.Description
	Declaration *rdfxml.Description
	Resources   []*rdfxml.Description
}

// Split separates the ontology header (first description), the profile
// declaration (second description) and the ontology resources (the rest).
func Split(doc *rdfxml.Document) (*Parts, error) {
	switch len(doc.Descriptions) {
	case 0:
		return nil, &FieldError{Field: "ontology header"}
	case 1:
		return nil, &FieldError{Field: "profile declaration"}
	}
	return &Parts{
		Header:      doc.Descriptions[0],
		Declaration: doc.Descriptions[1],
		Resources:   doc.Descriptions[2:],
	}, nil
}

// Parse splits, classifies and binds a profile document.
func Parse(doc *rdfxml.Document, opts ...Option) (*Profile, error) {
	o := newOptions(opts)

	parts, err := Split(doc)
	if err != nil {
		return nil, err
	}

	header := readHeader(parts.Header, o.language)
	decl, err := readDeclaration(parts.Declaration, o.base, o.language)
	if err != nil {
		return nil, err
	}

	c := Classifier{Base: o.base, Language: o.language}
	records := &Records{}
	discarded := 0
	for _, desc := range parts.Resources {
		res, err := c.Classify(desc)
		if err != nil {
			return nil, err
		}
		if res == nil {
			discarded++
			continue
		}
		records.Add(res)
	}

	o.logger.Debug("Classified resources",
		"classes", len(records.Classes),
		"enumerations", len(records.Enumerations),
		"properties", len(records.Properties),
		"enum_values", len(records.EnumValues),
		"discarded", discarded)

	g, err := Bind(records, opts...)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Namespaces:  doc.Namespaces,
		Header:      header,
		Declaration: decl,
		Graph:       g,
	}, nil
}

func readHeader(desc *rdfxml.Description, lang string) OntologyHeader {
	x := newExtractor(desc, "", lang)
	get := func(predicate string) string {
		if s, ok := x.text(predicate); ok {
			return s
		}
		s, _ := x.ref(predicate)
		return s
	}
	return OntologyHeader{
		Keyword:     get(cim.DCATKeyword),
		VersionInfo: get(cim.OWLVersionInfo),
		Creator:     get(cim.DCTCreator),
		Description: get(cim.DCTDescription),
		Identifier:  get(cim.DCTIdentifier),
		Language:    get(cim.DCTLanguage),
		Publisher:   get(cim.DCTPublisher),
		Title:       get(cim.DCTTitle),
		Issued:      get(cim.DCTIssued),
		Modified:    get(cim.DCTModified),
	}
}

func readDeclaration(desc *rdfxml.Description, base, lang string) (ProfileDeclaration, error) {
	x := newExtractor(desc, base, lang)
	if x.iri == "" {
		return ProfileDeclaration{}, &FieldError{Field: "profile declaration " + fieldAbout}
	}
	label, err := x.requireText(cim.RDFSLabel, fieldLabel)
	if err != nil {
		return ProfileDeclaration{}, err
	}
	typ, err := x.requireRef(cim.RDFType, fieldType)
	if err != nil {
		return ProfileDeclaration{}, err
	}
	comment, _ := x.text(cim.RDFSComment)

	return ProfileDeclaration{
		IRI:     x.iri,
		Label:   label,
		Type:    typ,
		Comment: comment,
	}, nil
}
