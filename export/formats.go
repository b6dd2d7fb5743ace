package export

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(FormatRegistry))
	for name := range FormatRegistry {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// localName matches the local parts this writer abbreviates. It is
// narrower than the Turtle grammar.
var localName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*(\.[A-Za-z0-9_-]+)*$`)

// TurtleWriter writes RDF in Turtle format.
type TurtleWriter struct {
	prefixes map[string]string
	keys     []string
	sb       strings.Builder
}

// NewTurtleWriter creates a Turtle writer abbreviating IRIs with prefixes.
func NewTurtleWriter(prefixes map[string]string) *TurtleWriter {
	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &TurtleWriter{prefixes: prefixes, keys: keys}
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	for _, prefix := range w.keys {
		fmt.Fprintf(&w.sb, "@prefix %s: <%s> .\n", prefix, w.prefixes[prefix])
	}
	w.sb.WriteString("\n")
}

// WriteSubject starts a new subject block.
func (w *TurtleWriter) WriteSubject(iri string) {
	fmt.Fprintf(&w.sb, "%s\n", w.term(iri))
}

// WriteType writes a type assertion.
func (w *TurtleWriter) WriteType(typeIRI string, last bool) {
	fmt.Fprintf(&w.sb, "    a %s%s\n", w.term(typeIRI), terminator(last))
}

// WritePredicate writes a predicate-object pair.
func (w *TurtleWriter) WritePredicate(predicateIRI string, object any, last bool) {
	fmt.Fprintf(&w.sb, "    %s %s%s\n", w.term(predicateIRI), w.object(object), terminator(last))
}

// WriteBlank writes a blank line for readability.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

// term abbreviates iri with the longest matching prefix, or writes it in
// angle brackets.
func (w *TurtleWriter) term(iri string) string {
	best, bestLen := "", 0
	for _, prefix := range w.keys {
		ns := w.prefixes[prefix]
		if len(ns) > bestLen && strings.HasPrefix(iri, ns) && localName.MatchString(iri[len(ns):]) {
			best, bestLen = prefix, len(ns)
		}
	}
	if bestLen == 0 {
		return "<" + iri + ">"
	}
	return best + ":" + iri[bestLen:]
}

func (w *TurtleWriter) object(obj any) string {
	if ref, ok := obj.(Ref); ok {
		return w.term(string(ref))
	}
	return formatLiteral(obj)
}

func terminator(last bool) string {
	if last {
		return " ."
	}
	return " ;"
}

// NTriplesWriter writes RDF in N-Triples format.
type NTriplesWriter struct {
	sb strings.Builder
}

// NewNTriplesWriter creates a new N-Triples writer.
func NewNTriplesWriter() *NTriplesWriter {
	return &NTriplesWriter{}
}

// WriteTriple writes a single triple.
func (w *NTriplesWriter) WriteTriple(subject, predicate string, object any) {
	objectStr := formatLiteral(object)
	if ref, ok := object.(Ref); ok {
		objectStr = "<" + string(ref) + ">"
	}
	fmt.Fprintf(&w.sb, "<%s> <%s> %s .\n", subject, predicate, objectStr)
}

// WriteTypeTriple writes a type assertion triple.
func (w *NTriplesWriter) WriteTypeTriple(subject, typeIRI string) {
	w.WriteTriple(subject, rdfType, Ref(typeIRI))
}

// String returns the accumulated N-Triples output.
func (w *NTriplesWriter) String() string {
	return w.sb.String()
}

const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// formatLiteral formats a plain literal. Both formats share the syntax.
func formatLiteral(obj any) string {
	return `"` + escapeString(fmt.Sprint(obj)) + `"`
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
