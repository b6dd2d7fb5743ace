package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/cimrdfs2linkml/cimrdfs"
	"github.com/c360studio/cimrdfs2linkml/export"
	"github.com/c360studio/cimrdfs2linkml/rdfxml"
	"github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
)

func loadProfile(t *testing.T) *cimrdfs.Profile {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "cimrdfs", "testdata", "equipment.rdf"))
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	doc, err := rdfxml.Read(f)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	profile, err := cimrdfs.Parse(doc)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return profile
}

func exportProfile(t *testing.T, format export.Format) string {
	t.Helper()
	profile := loadProfile(t)

	exporter := export.NewRDFExporter(profile.Namespaces)
	exporter.AddGraph(profile.Graph)

	output, err := exporter.Export(format)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	return output
}

func TestExportTurtle(t *testing.T) {
	output := exportProfile(t, export.FormatTurtle)

	expected := []string{
		"@prefix cim: <http://iec.ch/TC57/CIM100#> .",
		"@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .",
		`cim:Equipment
    a rdfs:Class ;
    rdfs:label "Equipment" ;
    rdfs:comment "The parts of a power system that are physical devices." ;
    rdfs:subClassOf cim:IdentifiedObject ;
    cims:belongsToCategory cim:Package_Core .`,
		`cim:Equipment.count
    a rdf:Property ;
    rdfs:label "count" ;
    rdfs:comment "Number of units." ;
    cims:stereotype "attribute" ;
    rdfs:domain cim:Equipment ;
    cims:dataType cim:Integer ;
    cims:multiplicity <http://iec.ch/TC57/1999/rdf-schema-extensions-19990926#M:1..n> .`,
		`cims:stereotype uml:enumeration`,
		`cim:PhaseCode.A
    a cim:PhaseCode ;`,
		`cims:isFixed "1.0"`,
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("Turtle output missing:\n%s\n\noutput:\n%s", want, output)
		}
	}
}

func TestExportTurtleOrder(t *testing.T) {
	output := exportProfile(t, export.FormatTurtle)

	// Classes come with their attributes, enumerations with their values.
	order := []string{
		"cim:IdentifiedObject\n",
		"cim:IdentifiedObject.name\n",
		"cim:Equipment\n",
		"cim:Equipment.count\n",
		"cim:PhaseCode\n",
		"cim:PhaseCode.A\n",
	}
	last := -1
	for _, subject := range order {
		i := strings.Index(output, subject)
		if i < 0 {
			t.Fatalf("subject %q not found", subject)
		}
		if i < last {
			t.Errorf("subject %q out of order", subject)
		}
		last = i
	}
}

func TestExportNTriples(t *testing.T) {
	output := exportProfile(t, export.FormatNTriples)

	expected := []string{
		"<http://iec.ch/TC57/CIM100#Equipment> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2000/01/rdf-schema#Class> .",
		`<http://iec.ch/TC57/CIM100#Equipment> <http://www.w3.org/2000/01/rdf-schema#label> "Equipment" .`,
		"<http://iec.ch/TC57/CIM100#PhaseCode.B> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://iec.ch/TC57/CIM100#PhaseCode> .",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("N-Triples output missing: %s", want)
		}
	}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if !strings.HasPrefix(line, "<") || !strings.HasSuffix(line, " .") {
			t.Errorf("malformed N-Triples line: %s", line)
		}
	}
}

func TestExportDeterministic(t *testing.T) {
	first := exportProfile(t, export.FormatTurtle)
	second := exportProfile(t, export.FormatTurtle)
	if first != second {
		t.Error("Turtle output differs between runs")
	}
}

func TestExportEscapesLiterals(t *testing.T) {
	exporter := export.NewRDFExporter(nil)
	exporter.AddEntity(export.Entity{
		IRI:   "http://example.com/x#Thing",
		Types: []string{cim.RDFSClass},
		Triples: []export.Triple{
			{Predicate: cim.TermComment, Object: "Line one\nsays \"hi\" \\ bye"},
		},
	})

	output, err := exporter.Export(export.FormatNTriples)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(output, `"Line one\nsays \"hi\" \\ bye"`) {
		t.Errorf("literal not escaped: %s", output)
	}

	output, err = exporter.Export(export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(output, "<http://example.com/x#Thing>\n    a rdfs:Class ;") {
		t.Errorf("unprefixed subject should be bracketed: %s", output)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	exporter := export.NewRDFExporter(nil)
	if _, err := exporter.Export("rdfxml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestUnregisteredPredicate(t *testing.T) {
	exporter := export.NewRDFExporter(nil)
	exporter.AddEntity(export.Entity{
		IRI:     "http://example.com/x#Thing",
		Triples: []export.Triple{{Predicate: "cim.unknown", Object: "x"}},
	})

	for _, format := range []export.Format{export.FormatTurtle, export.FormatNTriples} {
		if _, err := exporter.Export(format); err == nil {
			t.Errorf("%s: expected error for unregistered predicate", format)
		}
	}
}

func TestGetFormatInfo(t *testing.T) {
	info, ok := export.GetFormatInfo(export.FormatTurtle)
	if !ok {
		t.Fatal("turtle format not registered")
	}
	if info.Extension != ".ttl" || info.MIMEType != "text/turtle" {
		t.Errorf("unexpected turtle info: %+v", info)
	}

	if _, ok := export.GetFormatInfo("jsonld"); ok {
		t.Error("jsonld should not be registered")
	}

	formats := export.Formats()
	if len(formats) != 2 || formats[0] != "ntriples" || formats[1] != "turtle" {
		t.Errorf("unexpected formats: %v", formats)
	}
}
