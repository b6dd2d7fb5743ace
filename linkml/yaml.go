package linkml

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Encode writes schema as a YAML document. Keys appear in a fixed order and
// collections keep their definition order.
func Encode(w io.Writer, schema *SchemaDefinition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(schemaNode(schema)); err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	return nil
}

// Marshal returns the YAML encoding of schema.
func Marshal(schema *SchemaDefinition) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, schema); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes schema to path, creating parent directories.
func WriteFile(path string, schema *SchemaDefinition) error {
	data, err := Marshal(schema)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}

// mapping builds a YAML mapping node from key/value pairs. Nil values are
// skipped.
type mapping struct {
	node *yaml.Node
}

func newMapping() *mapping {
	return &mapping{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

func (m *mapping) set(key string, value *yaml.Node) {
	if value == nil {
		return
	}
	m.node.Content = append(m.node.Content, str(key), value)
}

func (m *mapping) setString(key, value string) {
	if value == "" {
		return
	}
	m.set(key, str(value))
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolean(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func sequence(items []string) *yaml.Node {
	if len(items) == 0 {
		return nil
	}
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, s := range items {
		n.Content = append(n.Content, str(s))
	}
	return n
}

func schemaNode(s *SchemaDefinition) *yaml.Node {
	m := newMapping()
	m.setString("id", s.ID)
	m.setString("name", s.Name)
	m.setString("description", s.Description)

	if len(s.Prefixes) > 0 {
		prefixes := newMapping()
		for _, p := range s.Prefixes {
			prefixes.set(p.Name, str(p.URI))
		}
		m.set("prefixes", prefixes.node)
	}

	m.set("imports", sequence(s.Imports))
	m.set("default_curi_maps", sequence(s.DefaultCURIMaps))
	m.setString("default_range", s.DefaultRange)
	m.setString("default_prefix", s.DefaultPrefix)

	if len(s.Classes) > 0 {
		classes := newMapping()
		for _, c := range s.Classes {
			classes.set(c.Name, classNode(c))
		}
		m.set("classes", classes.node)
	}

	if len(s.Enums) > 0 {
		enums := newMapping()
		for _, e := range s.Enums {
			enums.set(e.Name, enumNode(e))
		}
		m.set("enums", enums.node)
	}

	return m.node
}

func classNode(c *ClassDefinition) *yaml.Node {
	m := newMapping()
	m.setString("class_uri", c.ClassURI)

	if len(c.Attributes) > 0 {
		attrs := newMapping()
		for _, a := range c.Attributes {
			attrs.set(a.Name, slotNode(a))
		}
		m.set("attributes", attrs.node)
	}

	m.setString("is_a", c.IsA)
	m.setString("description", c.Description)
	return m.node
}

func slotNode(a *SlotDefinition) *yaml.Node {
	m := newMapping()
	m.setString("slot_uri", a.SlotURI)
	m.setString("range", a.Range)
	m.set("multivalued", boolean(a.Multivalued))
	m.set("required", boolean(a.Required))
	m.setString("description", a.Description)
	m.setString("equals_string", a.EqualsString)
	return m.node
}

func enumNode(e *EnumDefinition) *yaml.Node {
	m := newMapping()

	values := newMapping()
	for _, v := range e.PermissibleValues {
		pv := newMapping()
		pv.setString("description", v.Description)
		pv.setString("meaning", v.Meaning)
		values.set(v.Text, pv.node)
	}
	m.set("permissible_values", values.node)

	m.setString("enum_uri", e.EnumURI)
	m.setString("description", e.Description)
	return m.node
}
