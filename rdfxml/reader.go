// Package rdfxml reads RDF/XML documents into flat resource descriptions.
//
// The reader is deliberately shallow: every child of rdf:RDF becomes one
// Description, and every child of a description becomes a property value
// keyed by the predicate's full IRI. Deeper nesting is flattened to text.
// That is all a CIM RDFS profile needs, and it keeps the document order of
// descriptions intact, which the profile convention relies on.
package rdfxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	rdfNS   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xmlNS   = "http://www.w3.org/XML/1998/namespace"
	xmlnsNS = "xmlns"
)

// ErrNoRoot is returned when the document has no rdf:RDF root element.
var ErrNoRoot = errors.New("missing rdf:RDF root element")

// Namespace is a prefix declaration found in the document.
type Namespace struct {
	Prefix string
	URI    string
}

// Value is a single property value.
type Value struct {
	// Resource is the rdf:resource reference, empty for literals.
	Resource string
	// Text is the trimmed character content.
	Text string
	// Lang is the xml:lang tag, if any.
	Lang string
}

// Description is one resource description: a subject and its predicates.
type Description struct {
	// About is the rdf:about IRI, or "#"+rdf:ID. It is not absolutized.
	About string
	// Line is the line the description starts on.
	Line int

	properties map[string][]Value
	order      []string
}

// NewDescription creates an empty description for the given subject.
func NewDescription(about string) *Description {
	return &Description{
		About:      about,
		properties: make(map[string][]Value),
	}
}

// Add appends a value for predicate, keeping first-seen predicate order.
func (d *Description) Add(predicate string, v Value) {
	if d.properties == nil {
		d.properties = make(map[string][]Value)
	}
	if _, ok := d.properties[predicate]; !ok {
		d.order = append(d.order, predicate)
	}
	d.properties[predicate] = append(d.properties[predicate], v)
}

// Values returns every value recorded for predicate.
func (d *Description) Values(predicate string) []Value {
	return d.properties[predicate]
}

// First returns the first value recorded for predicate.
func (d *Description) First(predicate string) (Value, bool) {
	vals := d.properties[predicate]
	if len(vals) == 0 {
		return Value{}, false
	}
	return vals[0], true
}

// Has reports whether predicate has at least one value.
func (d *Description) Has(predicate string) bool {
	return len(d.properties[predicate]) > 0
}

// Predicates returns the predicate IRIs in the order first seen.
func (d *Description) Predicates() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Document is the flat result of reading an RDF/XML file.
type Document struct {
	// Namespaces lists prefixed namespace declarations in document order.
	Namespaces []Namespace
	// Descriptions lists the children of rdf:RDF in document order.
	Descriptions []*Description
}

// Read decodes an RDF/XML document.
func Read(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	p := &reader{
		dec:      dec,
		doc:      &Document{},
		prefixes: make(map[string]bool),
	}
	return p.read()
}

type reader struct {
	dec      *xml.Decoder
	doc      *Document
	prefixes map[string]bool

	depth    int
	rootSeen bool
	current  *Description

	predicate string
	value     Value
	text      strings.Builder
}

func (p *reader) read() (*Document, error) {
	for {
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode rdf/xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.start(t); err != nil {
				return nil, err
			}
		case xml.CharData:
			if p.depth >= 3 {
				p.text.Write(t)
			}
		case xml.EndElement:
			p.end()
		}
	}

	if !p.rootSeen {
		return nil, ErrNoRoot
	}
	return p.doc, nil
}

func (p *reader) start(t xml.StartElement) error {
	p.collectNamespaces(t.Attr)
	p.depth++

	switch p.depth {
	case 1:
		if t.Name.Space != rdfNS || t.Name.Local != "RDF" {
			return fmt.Errorf("%w: found <%s>", ErrNoRoot, t.Name.Local)
		}
		p.rootSeen = true

	case 2:
		line, _ := p.dec.InputPos()
		desc := NewDescription(subject(t.Attr))
		desc.Line = line
		// Typed node elements carry their type in the element name.
		if t.Name.Space != rdfNS || t.Name.Local != "Description" {
			desc.Add(rdfNS+"type", Value{Resource: t.Name.Space + t.Name.Local})
		}
		for _, a := range t.Attr {
			if isSyntaxAttr(a.Name) {
				continue
			}
			desc.Add(a.Name.Space+a.Name.Local, Value{Text: a.Value})
		}
		p.current = desc

	case 3:
		p.predicate = t.Name.Space + t.Name.Local
		p.value = Value{
			Resource: attr(t.Attr, rdfNS, "resource"),
			Lang:     attr(t.Attr, xmlNS, "lang"),
		}
		p.text.Reset()
	}
	return nil
}

func (p *reader) end() {
	switch p.depth {
	case 3:
		if p.current != nil {
			p.value.Text = strings.TrimSpace(p.text.String())
			p.current.Add(p.predicate, p.value)
		}
		p.text.Reset()
	case 2:
		if p.current != nil {
			p.doc.Descriptions = append(p.doc.Descriptions, p.current)
			p.current = nil
		}
	}
	p.depth--
}

func (p *reader) collectNamespaces(attrs []xml.Attr) {
	for _, a := range attrs {
		if a.Name.Space != xmlnsNS || a.Name.Local == "" {
			continue
		}
		if p.prefixes[a.Name.Local] {
			continue
		}
		p.prefixes[a.Name.Local] = true
		p.doc.Namespaces = append(p.doc.Namespaces, Namespace{Prefix: a.Name.Local, URI: a.Value})
	}
}

// subject returns the description subject from rdf:about or rdf:ID.
func subject(attrs []xml.Attr) string {
	if about := attr(attrs, rdfNS, "about"); about != "" {
		return about
	}
	if id := attr(attrs, rdfNS, "ID"); id != "" {
		return "#" + id
	}
	return ""
}

func attr(attrs []xml.Attr, space, local string) string {
	for _, a := range attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// isSyntaxAttr reports attributes that are not property attributes.
func isSyntaxAttr(name xml.Name) bool {
	switch {
	case name.Space == xmlnsNS, name.Space == "" && name.Local == xmlnsNS:
		return true
	case name.Space == xmlNS, name.Space == rdfNS:
		return true
	}
	return false
}
