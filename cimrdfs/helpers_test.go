package cimrdfs

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/cimrdfs2linkml/rdfxml"
	"github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
)

const base = cim.DefaultBase

type prop struct {
	predicate string
	value     rdfxml.Value
}

func ref(predicate, iri string) prop {
	return prop{predicate, rdfxml.Value{Resource: iri}}
}

func lit(predicate, text string) prop {
	return prop{predicate, rdfxml.Value{Text: text}}
}

func en(predicate, text string) prop {
	return prop{predicate, rdfxml.Value{Text: text, Lang: "en"}}
}

func describe(about string, props ...prop) *rdfxml.Description {
	d := rdfxml.NewDescription(about)
	for _, p := range props {
		d.Add(p.predicate, p.value)
	}
	return d
}

func classDesc(about, label string, extra ...prop) *rdfxml.Description {
	props := []prop{
		en(cim.RDFSLabel, label),
		lit(cim.RDFSComment, label+" comment"),
		ref(cim.RDFType, cim.RDFSClass),
		ref(cim.CIMSBelongsToCategory, "#Package_Core"),
	}
	return describe(about, append(props, extra...)...)
}

func propertyDesc(about, label, domain, multiplicity string, extra ...prop) *rdfxml.Description {
	props := []prop{
		en(cim.RDFSLabel, label),
		ref(cim.RDFType, cim.RDFProperty),
		ref(cim.RDFSDomain, domain),
		ref(cim.CIMSMultiplicity, multiplicity),
	}
	return describe(about, append(props, extra...)...)
}

func loadFixture(t *testing.T) *rdfxml.Document {
	t.Helper()
	f, err := os.Open("testdata/equipment.rdf")
	require.NoError(t, err)
	defer f.Close()

	doc, err := rdfxml.Read(f)
	require.NoError(t, err)
	return doc
}

// captureLogger returns a debug-level logger writing to the returned buffer.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}
