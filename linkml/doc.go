// Package linkml projects a resolved CIM ontology graph into a LinkML schema.
//
// A Generator turns classes, properties and enumerations into LinkML class,
// attribute and enum definitions. Identifiers are compacted to CURIEs using
// the document's prefix table, and primitive CIM datatypes are mapped to
// LinkML scalar types. Assemble wraps the generated definitions with the
// profile metadata, and Encode writes the schema as YAML with a fixed key
// order, so converting the same profile twice yields identical bytes.
package linkml
