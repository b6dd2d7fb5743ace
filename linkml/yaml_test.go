package linkml

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEncodeDeterministic(t *testing.T) {
	profile := loadProfile(t)

	first, err := Build(profile, DefaultSettings())
	require.NoError(t, err)
	second, err := Build(profile, DefaultSettings())
	require.NoError(t, err)

	a, err := Marshal(first)
	require.NoError(t, err)
	b, err := Marshal(second)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "projection output differs between runs")

	for range 5 {
		again, err := Marshal(first)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(again))
	}
}

func TestEncodeKeyOrder(t *testing.T) {
	schema, err := Build(loadProfile(t), DefaultSettings())
	require.NoError(t, err)

	data, err := Marshal(schema)
	require.NoError(t, err)

	var root yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &root))
	require.Len(t, root.Content, 1)

	assert.Equal(t, []string{
		"id", "name", "description", "prefixes", "imports",
		"default_curi_maps", "default_range", "classes", "enums",
	}, keys(root.Content[0]))

	classes := value(t, root.Content[0], "classes")
	assert.Equal(t, []string{"IdentifiedObject", "Equipment", "PowerSystemResource", "Integer", "Float"}, keys(classes))

	equipment := value(t, classes, "Equipment")
	assert.Equal(t, []string{"class_uri", "attributes", "is_a", "description"}, keys(equipment))

	attrs := value(t, equipment, "attributes")
	assert.Equal(t, []string{"count", "phases", "ratio", "EquipmentContainer"}, keys(attrs))
	assert.Equal(t, []string{"slot_uri", "range", "multivalued", "required", "description"}, keys(value(t, attrs, "count")))
	assert.Equal(t, []string{"slot_uri", "multivalued", "required"}, keys(value(t, attrs, "EquipmentContainer")))

	enums := value(t, root.Content[0], "enums")
	phaseCode := value(t, enums, "PhaseCode")
	assert.Equal(t, []string{"permissible_values", "enum_uri", "description"}, keys(phaseCode))
}

func TestEncodeScalars(t *testing.T) {
	schema, err := Build(loadProfile(t), DefaultSettings())
	require.NoError(t, err)

	data, err := Marshal(schema)
	require.NoError(t, err)

	var doc struct {
		ID       string            `yaml:"id"`
		Prefixes map[string]string `yaml:"prefixes"`
		Imports  []string          `yaml:"imports"`
		Classes  map[string]struct {
			IsA        string `yaml:"is_a"`
			Attributes map[string]struct {
				Range        string `yaml:"range"`
				Multivalued  bool   `yaml:"multivalued"`
				Required     bool   `yaml:"required"`
				EqualsString string `yaml:"equals_string"`
			} `yaml:"attributes"`
		} `yaml:"classes"`
		Enums map[string]struct {
			PermissibleValues map[string]struct {
				Meaning string `yaml:"meaning"`
			} `yaml:"permissible_values"`
		} `yaml:"enums"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))

	assert.Equal(t, "http://iec.ch/TC57/CIM100#Package_CoreEquipmentProfile", doc.ID)
	assert.Equal(t, LinkMLNamespace, doc.Prefixes["linkml"])
	assert.Equal(t, "http://iec.ch/TC57/CIM100#", doc.Prefixes["cim"])
	assert.Equal(t, []string{"linkml:types"}, doc.Imports)

	count := doc.Classes["Equipment"].Attributes["count"]
	assert.Equal(t, "integer", count.Range)
	assert.True(t, count.Multivalued)
	assert.True(t, count.Required)

	// A numeric-looking fixed value stays a string.
	assert.Equal(t, "1.0", doc.Classes["Equipment"].Attributes["ratio"].EqualsString)
	assert.Contains(t, string(data), `equals_string: "1.0"`)

	assert.Equal(t, "cim:PhaseCode.B", doc.Enums["PhaseCode"].PermissibleValues["B"].Meaning)
}

func TestEncodeOmitsEmptyCollections(t *testing.T) {
	schema := &SchemaDefinition{
		ID:           "http://example.com/schema",
		Name:         "empty",
		Prefixes:     []Prefix{{Name: "linkml", URI: LinkMLNamespace}},
		Imports:      []string{"linkml:types"},
		DefaultRange: "string",
	}

	data, err := Marshal(schema)
	require.NoError(t, err)
	out := string(data)

	assert.NotContains(t, out, "classes")
	assert.NotContains(t, out, "enums")
	assert.NotContains(t, out, "slots")
	assert.NotContains(t, out, "default_prefix")
	assert.NotContains(t, out, "default_curi_maps")
	assert.True(t, strings.HasPrefix(out, "id: http://example.com/schema\n"))
}

func TestWriteFile(t *testing.T) {
	schema, err := Build(loadProfile(t), DefaultSettings())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "dir", "out.yaml")
	require.NoError(t, WriteFile(path, schema))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	expected, err := Marshal(schema)
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func keys(n *yaml.Node) []string {
	var out []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, n.Content[i].Value)
	}
	return out
}

func value(t *testing.T, n *yaml.Node, key string) *yaml.Node {
	t.Helper()
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	require.Failf(t, "missing key", "key %q", key)
	return nil
}
