package linkml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/cimrdfs2linkml/cimrdfs"
)

func TestMapPrimitive(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Float", "float"},
		{"Integer", "integer"},
		{"DateTime", "date"},
		{"String", "string"},
		{"Boolean", "boolean"},
		{"Decimal", "double"},
		{"MonthDay", "date"},
		{"Date", "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapPrimitive(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapPrimitiveUnknown(t *testing.T) {
	for _, name := range []string{"Unknown", "float", "", "Duration"} {
		_, err := MapPrimitive(name)
		require.Error(t, err, "name %q", name)
		assert.True(t, errors.Is(err, cimrdfs.ErrUnrecognizedLiteral))

		var mapErr *MappingError
		require.True(t, errors.As(err, &mapErr))
		assert.Equal(t, name, mapErr.Datatype)
	}
}
