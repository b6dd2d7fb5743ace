package linkml

import (
	"fmt"
	"log/slog"

	"github.com/c360studio/cimrdfs2linkml/cimrdfs"
	"github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
)

// Generator projects ontology resources into LinkML definitions.
// It holds no state besides its prefix table and is safe for concurrent use.
type Generator struct {
	prefixes []Prefix
	logger   *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a generator compacting IRIs with prefixes.
func NewGenerator(prefixes []Prefix, opts ...GeneratorOption) *Generator {
	g := &Generator{
		prefixes: prefixes,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Compact rewrites iri with the generator's prefix table.
func (g *Generator) Compact(iri string) string {
	return Compact(iri, g.prefixes)
}

// Generated holds the projected definitions of one graph.
type Generated struct {
	Classes []*ClassDefinition
	Enums   []*EnumDefinition
}

// Generate projects every class and enumeration of graph, in graph order.
// Definitions sharing a name keep the first position and the last value.
func (g *Generator) Generate(graph *cimrdfs.Graph) (*Generated, error) {
	classes := cimrdfs.NewIndex[*ClassDefinition]()
	for _, c := range graph.Classes.Values() {
		var superclass string
		if parent := graph.Superclass(c); parent != nil {
			superclass = parent.Label
		} else if c.SubclassOf != "" {
			g.logger.Debug("Superclass not in profile, emitting root class",
				"class", c.IRI, "superclass", c.SubclassOf)
		}

		def, err := g.Class(c, superclass)
		if err != nil {
			return nil, err
		}
		classes.Put(def.Name, def)
	}

	enums := cimrdfs.NewIndex[*EnumDefinition]()
	for _, e := range graph.Enumerations.Values() {
		def := g.Enum(e)
		enums.Put(def.Name, def)
	}

	return &Generated{
		Classes: classes.Values(),
		Enums:   enums.Values(),
	}, nil
}

// Class projects c. superclass is the label of its resolved superclass,
// empty for root classes.
func (g *Generator) Class(c *cimrdfs.Class, superclass string) (*ClassDefinition, error) {
	attrs := cimrdfs.NewIndex[*SlotDefinition]()
	for _, p := range c.Attributes.Values() {
		slot, err := g.Attribute(p)
		if err != nil {
			return nil, fmt.Errorf("project class %s: %w", c.Name(), err)
		}
		attrs.Put(slot.Name, slot)
	}

	def := &ClassDefinition{
		Name:        c.Name(),
		ClassURI:    g.Compact(c.IRI),
		IsA:         superclass,
		Description: c.Comment,
	}
	if attrs.Len() > 0 {
		def.Attributes = attrs.Values()
	}
	return def, nil
}

// Attribute projects p. The range is chosen in order: the mapped primitive
// type, the resolved datatype name, the resolved range name. A property
// with none of these gets no range and falls back to the schema default.
func (g *Generator) Attribute(p *cimrdfs.Property) (*SlotDefinition, error) {
	rng, err := g.attributeRange(p)
	if err != nil {
		return nil, err
	}

	return &SlotDefinition{
		Name:         p.Label,
		SlotURI:      g.Compact(p.IRI),
		Range:        rng,
		Multivalued:  p.Multiplicity.Multivalued(),
		Required:     p.Multiplicity.Required(),
		Description:  p.Comment,
		EqualsString: p.IsFixed,
	}, nil
}

func (g *Generator) attributeRange(p *cimrdfs.Property) (string, error) {
	switch {
	case p.IsPrimitive:
		name := cim.LocalName(p.DatatypeRef.IRI())
		t, err := MapPrimitive(name)
		if err != nil {
			return "", &MappingError{IRI: p.IRI, Datatype: name}
		}
		return t, nil
	case p.DatatypeRef != nil:
		return p.DatatypeRef.Name(), nil
	case p.RangeRef != nil:
		return p.RangeRef.Name(), nil
	}
	return "", nil
}

// Enum projects e. Permissible values are keyed by label and carry the
// compacted value IRI as their meaning.
func (g *Generator) Enum(e *cimrdfs.Enumeration) *EnumDefinition {
	values := cimrdfs.NewIndex[*PermissibleValue]()
	for _, v := range e.Values.Values() {
		pv := &PermissibleValue{
			Text:        v.Name(),
			Description: v.Comment,
			Meaning:     g.Compact(v.IRI),
		}
		values.Put(pv.Text, pv)
	}

	return &EnumDefinition{
		Name:              e.Name(),
		EnumURI:           g.Compact(e.IRI),
		Description:       e.Comment,
		PermissibleValues: values.Values(),
	}
}
