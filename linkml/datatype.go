package linkml

import (
	"fmt"

	"github.com/c360studio/cimrdfs2linkml/cimrdfs"
)

// primitives maps CIM primitive class names to LinkML scalar types.
// Decimal and MonthDay are provisional pending domain review.
var primitives = map[string]string{
	"Float":    "float",
	"Integer":  "integer",
	"DateTime": "date",
	"String":   "string",
	"Boolean":  "boolean",
	"Decimal":  "double",
	"MonthDay": "date",
	"Date":     "date",
}

// MappingError reports a primitive datatype with no LinkML counterpart.
type MappingError struct {
	IRI      string
	Datatype string
}

func (e *MappingError) Error() string {
	if e.IRI == "" {
		return fmt.Sprintf("%v: %q is not a CIM primitive", cimrdfs.ErrUnrecognizedLiteral, e.Datatype)
	}
	return fmt.Sprintf("resource %s: %v: %q is not a CIM primitive", e.IRI, cimrdfs.ErrUnrecognizedLiteral, e.Datatype)
}

func (e *MappingError) Unwrap() error {
	return cimrdfs.ErrUnrecognizedLiteral
}

// MapPrimitive returns the LinkML type for a primitive local name such as
// "Float".
func MapPrimitive(name string) (string, error) {
	t, ok := primitives[name]
	if !ok {
		return "", &MappingError{Datatype: name}
	}
	return t, nil
}
