package linkml

import (
	"slices"

	"github.com/c360studio/cimrdfs2linkml/cimrdfs"
)

// Settings holds the fixed schema-level values of generated documents.
type Settings struct {
	DefaultRange    string
	Imports         []string
	DefaultCURIMaps []string
	LinkMLPrefix    string
}

// DefaultSettings returns the LinkML defaults: string range, linkml:types
// import and the semweb_context CURIE map.
func DefaultSettings() Settings {
	return Settings{
		DefaultRange:    "string",
		Imports:         []string{"linkml:types"},
		DefaultCURIMaps: []string{"semweb_context"},
		LinkMLPrefix:    LinkMLNamespace,
	}
}

// Assemble combines the profile metadata with generated definitions.
func Assemble(profile *cimrdfs.Profile, generated *Generated, settings Settings) *SchemaDefinition {
	name := profile.Declaration.Label
	if name == "" {
		name = profile.Header.Keyword
	}

	schema := &SchemaDefinition{
		ID:              profile.Declaration.IRI,
		Name:            name,
		Description:     profile.Header.Description,
		Prefixes:        Prefixes(settings.LinkMLPrefix, profile.Namespaces),
		Imports:         slices.Clone(settings.Imports),
		DefaultCURIMaps: slices.Clone(settings.DefaultCURIMaps),
		DefaultRange:    settings.DefaultRange,
	}
	if generated != nil {
		if len(generated.Classes) > 0 {
			schema.Classes = generated.Classes
		}
		if len(generated.Enums) > 0 {
			schema.Enums = generated.Enums
		}
	}
	return schema
}

// Build projects profile and assembles the schema document.
func Build(profile *cimrdfs.Profile, settings Settings, opts ...GeneratorOption) (*SchemaDefinition, error) {
	gen := NewGenerator(Prefixes(settings.LinkMLPrefix, profile.Namespaces), opts...)
	generated, err := gen.Generate(profile.Graph)
	if err != nil {
		return nil, err
	}
	return Assemble(profile, generated, settings), nil
}
