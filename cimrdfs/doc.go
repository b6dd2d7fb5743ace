// Package cimrdfs turns a CIM RDFS profile into a resolved ontology graph.
//
// Parsing happens in three steps:
//
//   - Split separates the ontology header, the profile declaration and the
//     resource descriptions of an rdfxml.Document.
//   - Classify turns each resource description into a typed record: a Class,
//     an Enumeration, a Property or an EnumValue. Anything else is discarded.
//   - Bind links the flat records into a Graph. Enumeration values are bound
//     to their enumeration first, then properties are attached to their domain
//     class and their value type is resolved.
//
// Parse runs all three. All identifiers in the resulting graph are absolute
// IRIs; fragment identifiers such as "#ACLineSegment" are resolved against the
// base IRI while fields are extracted.
//
// Example usage:
//
//	doc, err := rdfxml.Read(f)
//	if err != nil {
//	    return err
//	}
//	profile, err := cimrdfs.Parse(doc, cimrdfs.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	for _, class := range profile.Graph.Classes.Values() {
//	    fmt.Println(class.Name(), class.Attributes.Len())
//	}
package cimrdfs
