package cimrdfs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/cimrdfs2linkml/rdfxml"
	"github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
)

func TestParseFixture(t *testing.T) {
	profile, err := Parse(loadFixture(t))
	require.NoError(t, err)

	assert.Equal(t, "EQ", profile.Header.Keyword)
	assert.Equal(t, "3.0.0", profile.Header.VersionInfo)
	assert.Equal(t, "Core equipment vocabulary", profile.Header.Description)
	assert.Equal(t, "en-GB", profile.Header.Language)
	assert.Equal(t, "Core Equipment Vocabulary", profile.Header.Title)
	assert.Equal(t, "2020-10-12", profile.Header.Issued)

	id, err := profile.Header.UUID()
	require.NoError(t, err)
	assert.Equal(t, "4b9c2d5e-1f3a-4c8e-9a6b-2d7e8f0a1b3c", id.String())

	assert.Equal(t, base+"#Package_CoreEquipmentProfile", profile.Declaration.IRI)
	assert.Equal(t, "CoreEquipmentProfile", profile.Declaration.Label)
	assert.Equal(t, cim.CIMSNamespace+"ClassCategory", profile.Declaration.Type)
	assert.Equal(t, "Core equipment profile", profile.Declaration.Comment)

	require.NotEmpty(t, profile.Namespaces)
	assert.Equal(t, "rdf", profile.Namespaces[0].Prefix)

	g := profile.Graph
	assert.Equal(t, []string{
		iri("IdentifiedObject"), iri("Equipment"), iri("PowerSystemResource"), iri("Integer"), iri("Float"),
	}, g.Classes.Keys())
	assert.Equal(t, []string{iri("PhaseCode")}, g.Enumerations.Keys())
	assert.Equal(t, Stats{Classes: 5, Enumerations: 1, Properties: 5, EnumValues: 2}, g.Stats())
}

func TestParseFixtureBinding(t *testing.T) {
	profile, err := Parse(loadFixture(t))
	require.NoError(t, err)
	g := profile.Graph

	equipment, ok := g.Classes.Get(iri("Equipment"))
	require.True(t, ok)
	assert.Equal(t, iri("IdentifiedObject"), equipment.SubclassOf)
	assert.Equal(t, []string{
		iri("Equipment.count"), iri("Equipment.phases"), iri("Equipment.ratio"), iri("Equipment.EquipmentContainer"),
	}, equipment.Attributes.Keys())

	count, _ := equipment.Attributes.Get(iri("Equipment.count"))
	assert.True(t, count.IsPrimitive)
	assert.True(t, count.Multiplicity.Required())
	assert.True(t, count.Multiplicity.Multivalued())

	ratio, _ := equipment.Attributes.Get(iri("Equipment.ratio"))
	assert.Equal(t, "1.0", ratio.IsFixed)

	phaseCode, ok := g.Enumerations.Get(iri("PhaseCode"))
	require.True(t, ok)
	assert.Equal(t, []string{iri("PhaseCode.A"), iri("PhaseCode.B")}, phaseCode.Values.Keys())

	a, _ := phaseCode.Values.Get(iri("PhaseCode.A"))
	assert.Equal(t, "Phase A.", a.Comment)

	psr, _ := g.Classes.Get(iri("PowerSystemResource"))
	assert.Nil(t, g.Superclass(psr))
}

func TestParseWithBase(t *testing.T) {
	// PhaseCode.A names its enumeration with an absolute IRI under the
	// default base, so rebasing the fragments leaves it dangling.
	_, err := Parse(loadFixture(t), WithBase("http://example.com/cim"))
	require.Error(t, err)

	var refErr *ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "http://iec.ch/TC57/CIM100#PhaseCode.A", refErr.IRI)
	assert.Equal(t, "http://iec.ch/TC57/CIM100#PhaseCode", refErr.Target)
}

func TestSplit(t *testing.T) {
	doc := &rdfxml.Document{}
	_, err := Split(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Contains(t, err.Error(), "ontology header")

	doc.Descriptions = append(doc.Descriptions, rdfxml.NewDescription("header"))
	_, err = Split(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile declaration")

	doc.Descriptions = append(doc.Descriptions, rdfxml.NewDescription("decl"), rdfxml.NewDescription("#A"))
	parts, err := Split(doc)
	require.NoError(t, err)
	assert.Equal(t, "header", parts.Header.About)
	assert.Equal(t, "decl", parts.Declaration.About)
	require.Len(t, parts.Resources, 1)
	assert.Equal(t, "#A", parts.Resources[0].About)
}

func TestParseErrors(t *testing.T) {
	header := describe("urn:header", lit(cim.DCATKeyword, "EQ"))
	decl := describe("#Profile",
		en(cim.RDFSLabel, "Profile"),
		ref(cim.RDFType, cim.CIMSNamespace+"ClassCategory"))

	tests := []struct {
		name    string
		descs   []*rdfxml.Description
		wantErr error
	}{
		{
			name: "declaration without label",
			descs: []*rdfxml.Description{header,
				describe("#Profile", ref(cim.RDFType, cim.CIMSNamespace+"ClassCategory"))},
			wantErr: ErrMissingField,
		},
		{
			name: "class without category",
			descs: []*rdfxml.Description{header, decl,
				describe("#C1", en(cim.RDFSLabel, "C1"), lit(cim.RDFSComment, "c"), ref(cim.RDFType, cim.RDFSClass))},
			wantErr: ErrMissingField,
		},
		{
			name: "dangling domain",
			descs: []*rdfxml.Description{header, decl,
				propertyDesc("#C1.p", "p", "#C1", cim.MultiplicityOne)},
			wantErr: ErrDanglingReference,
		},
		{
			name: "unrecognized multiplicity",
			descs: []*rdfxml.Description{header, decl,
				classDesc("#C1", "C1"),
				propertyDesc("#C1.p", "p", "#C1", "M:many")},
			wantErr: ErrUnrecognizedLiteral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(&rdfxml.Document{Descriptions: tt.descs})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestHeaderUUIDInvalid(t *testing.T) {
	_, err := OntologyHeader{Identifier: "not-a-uuid"}.UUID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-uuid")

	_, err = OntologyHeader{}.UUID()
	require.Error(t, err)
}
