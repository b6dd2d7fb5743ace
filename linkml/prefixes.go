package linkml

import (
	"strings"

	"github.com/c360studio/cimrdfs2linkml/rdfxml"
)

// LinkMLNamespace is the namespace of the LinkML metamodel.
const LinkMLNamespace = "https://w3id.org/linkml/"

// Prefix binds a CURIE prefix to a namespace IRI.
type Prefix struct {
	Name string
	URI  string
}

// Prefixes builds the schema prefix table: the linkml prefix first, then
// the document namespaces in declaration order. A document namespace that
// reuses a prefix replaces the earlier IRI in place. Empty prefixes are
// skipped.
func Prefixes(linkmlURI string, namespaces []rdfxml.Namespace) []Prefix {
	if linkmlURI == "" {
		linkmlURI = LinkMLNamespace
	}
	out := []Prefix{{Name: "linkml", URI: linkmlURI}}
	pos := map[string]int{"linkml": 0}

	for _, ns := range namespaces {
		if ns.Prefix == "" || ns.URI == "" {
			continue
		}
		if i, ok := pos[ns.Prefix]; ok {
			out[i].URI = ns.URI
			continue
		}
		pos[ns.Prefix] = len(out)
		out = append(out, Prefix{Name: ns.Prefix, URI: ns.URI})
	}
	return out
}

// Compact rewrites iri to "prefix:local" using the first prefix whose
// namespace is a proper prefix of iri. Without a match iri is returned
// unchanged.
func Compact(iri string, prefixes []Prefix) string {
	for _, p := range prefixes {
		if p.URI == "" || len(iri) <= len(p.URI) {
			continue
		}
		if local, ok := strings.CutPrefix(iri, p.URI); ok {
			return p.Name + ":" + local
		}
	}
	return iri
}
