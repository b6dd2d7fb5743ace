// Package cim provides the fixed vocabulary used by CIM RDFS profiles.
//
// CIM profiles (the CGMES RDFS2020 serialisation of IEC 61970-501) describe
// classes, properties and enumerations with a small set of RDF, RDFS and
// TC57 extension terms. The classifier in package cimrdfs matches on these
// IRIs literally, so every constant here must stay bit exact.
//
// Import this package to auto-register the terms with the semstreams
// predicate registry:
//
//	import _ "github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
package cim
