package cimrdfs

import (
	"github.com/c360studio/cimrdfs2linkml/rdfxml"
	"github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
)

// Field names used in error messages.
const (
	fieldAbout        = "rdf:about"
	fieldType         = "rdf:type"
	fieldLabel        = "rdfs:label"
	fieldComment      = "rdfs:comment"
	fieldDomain       = "rdfs:domain"
	fieldCategory     = "cims:belongsToCategory"
	fieldMultiplicity = "cims:multiplicity"
)

// extractor reads typed fields from one raw description.
type extractor struct {
	desc *rdfxml.Description
	iri  string
	base string
	lang string
}

func newExtractor(desc *rdfxml.Description, base, lang string) *extractor {
	return &extractor{
		desc: desc,
		iri:  cim.Absolute(desc.About, base),
		base: base,
		lang: lang,
	}
}

// text returns the literal value of predicate, preferring the configured
// language and falling back to the first value.
func (x *extractor) text(predicate string) (string, bool) {
	vals := x.desc.Values(predicate)
	if len(vals) == 0 {
		return "", false
	}
	for _, v := range vals {
		if v.Lang == x.lang && v.Text != "" {
			return v.Text, true
		}
	}
	return vals[0].Text, vals[0].Text != ""
}

// ref returns the absolutized IRI predicate points to. The rdf:resource
// attribute is preferred over element text.
func (x *extractor) ref(predicate string) (string, bool) {
	v, ok := x.desc.First(predicate)
	if !ok {
		return "", false
	}
	iri := v.Resource
	if iri == "" {
		iri = v.Text
	}
	if iri == "" {
		return "", false
	}
	return cim.Absolute(iri, x.base), true
}

// stereotypes collects every cims:stereotype value, resource or text.
func (x *extractor) stereotypes() []string {
	vals := x.desc.Values(cim.CIMSStereotype)
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		switch {
		case v.Resource != "":
			out = append(out, v.Resource)
		case v.Text != "":
			out = append(out, v.Text)
		}
	}
	return out
}

func (x *extractor) requireText(predicate, field string) (string, error) {
	s, ok := x.text(predicate)
	if !ok {
		return "", &FieldError{IRI: x.iri, Field: field}
	}
	return s, nil
}

func (x *extractor) requireRef(predicate, field string) (string, error) {
	s, ok := x.ref(predicate)
	if !ok {
		return "", &FieldError{IRI: x.iri, Field: field}
	}
	return s, nil
}

// common extracts the shared description. label is required, comment only
// when requireComment is set.
func (x *extractor) common(requireComment bool) (Description, error) {
	label, err := x.requireText(cim.RDFSLabel, fieldLabel)
	if err != nil {
		return Description{}, err
	}

	comment, ok := x.text(cim.RDFSComment)
	if !ok && requireComment {
		return Description{}, &FieldError{IRI: x.iri, Field: fieldComment}
	}

	return Description{
		IRI:         x.iri,
		Label:       label,
		Stereotypes: x.stereotypes(),
		Comment:     comment,
	}, nil
}

func (x *extractor) class() (Resource, error) {
	d, err := x.common(true)
	if err != nil {
		return nil, err
	}
	category, err := x.requireRef(cim.CIMSBelongsToCategory, fieldCategory)
	if err != nil {
		return nil, err
	}
	parent, _ := x.ref(cim.RDFSSubClassOf)

	return &Class{
		Description: d,
		SubclassOf:  parent,
		Category:    category,
	}, nil
}

func (x *extractor) enumeration() (Resource, error) {
	d, err := x.common(true)
	if err != nil {
		return nil, err
	}
	return &Enumeration{Description: d}, nil
}

func (x *extractor) property() (Resource, error) {
	d, err := x.common(false)
	if err != nil {
		return nil, err
	}
	domain, err := x.requireRef(cim.RDFSDomain, fieldDomain)
	if err != nil {
		return nil, err
	}

	v, ok := x.desc.First(cim.CIMSMultiplicity)
	if !ok {
		return nil, &FieldError{IRI: x.iri, Field: fieldMultiplicity}
	}
	literal := v.Resource
	if literal == "" {
		literal = v.Text
	}
	mult, ok := LookupMultiplicity(literal)
	if !ok {
		return nil, &LiteralError{IRI: x.iri, Field: fieldMultiplicity, Literal: literal}
	}

	rng, _ := x.ref(cim.RDFSRange)
	datatype, _ := x.ref(cim.CIMSDataType)
	fixed, _ := x.text(cim.CIMSIsFixed)

	return &Property{
		Description:  d,
		Domain:       domain,
		Multiplicity: mult,
		Range:        rng,
		Datatype:     datatype,
		IsFixed:      fixed,
	}, nil
}

func (x *extractor) enumValue(owner string) (Resource, error) {
	d, err := x.common(false)
	if err != nil {
		return nil, err
	}
	return &EnumValue{Description: d, Enumeration: owner}, nil
}
