package cimrdfs

import (
	"strconv"

	"github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
)

// Bound is the upper bound of a multiplicity: either a finite count or
// unbounded.
type Bound struct {
	n         int
	unbounded bool
}

// Unbounded is the upper bound of "0..n" and "1..n".
var Unbounded = Bound{unbounded: true}

// Finite returns a finite upper bound.
func Finite(n int) Bound {
	return Bound{n: n}
}

// IsUnbounded reports whether there is no upper limit.
func (b Bound) IsUnbounded() bool {
	return b.unbounded
}

// Value returns the finite bound. ok is false for an unbounded bound.
func (b Bound) Value() (n int, ok bool) {
	return b.n, !b.unbounded
}

// Exceeds reports whether the bound allows more than n values.
func (b Bound) Exceeds(n int) bool {
	return b.unbounded || b.n > n
}

func (b Bound) String() string {
	if b.unbounded {
		return "n"
	}
	return strconv.Itoa(b.n)
}

// Multiplicity is the cardinality constraint of a property.
type Multiplicity struct {
	Min int
	Max Bound
}

// Required reports whether at least one value must be present.
func (m Multiplicity) Required() bool {
	return m.Min > 0
}

// Multivalued reports whether more than one value is allowed.
func (m Multiplicity) Multivalued() bool {
	return m.Max.Exceeds(1)
}

func (m Multiplicity) String() string {
	return strconv.Itoa(m.Min) + ".." + m.Max.String()
}

var multiplicities = map[string]Multiplicity{
	cim.MultiplicityZeroToOne:  {Min: 0, Max: Finite(1)},
	cim.MultiplicityZeroToTwo:  {Min: 0, Max: Finite(2)},
	cim.MultiplicityZeroToMany: {Min: 0, Max: Unbounded},
	cim.MultiplicityOne:        {Min: 1, Max: Finite(1)},
	cim.MultiplicityOneToOne:   {Min: 1, Max: Finite(1)},
	cim.MultiplicityOneToMany:  {Min: 1, Max: Unbounded},
}

// LookupMultiplicity maps a multiplicity IRI such as
// "http://iec.ch/TC57/1999/rdf-schema-extensions-19990926#M:0..n" to its
// bounds. The match is exact.
func LookupMultiplicity(iri string) (Multiplicity, bool) {
	m, ok := multiplicities[iri]
	return m, ok
}

// canonical lists one IRI per distinct bound pair. M:1 and M:1..1 share
// bounds, and M:1..1 is the canonical form.
var canonical = []string{
	cim.MultiplicityZeroToOne,
	cim.MultiplicityZeroToTwo,
	cim.MultiplicityZeroToMany,
	cim.MultiplicityOneToOne,
	cim.MultiplicityOneToMany,
}

// IRI returns the canonical multiplicity IRI for m, or "" when no
// recognized multiplicity has these bounds.
func (m Multiplicity) IRI() string {
	for _, iri := range canonical {
		if multiplicities[iri] == m {
			return iri
		}
	}
	return ""
}
