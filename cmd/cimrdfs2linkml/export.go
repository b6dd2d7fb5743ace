package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/cimrdfs2linkml/export"
)

func exportCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export PROFILE",
		Short: "Write the resolved ontology graph as RDF",
		Long: `Write the resolved ontology graph of a profile as Turtle or N-Triples.
IRIs are absolute and multiplicities canonical. Without --output the
RDF is printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := export.GetFormatInfo(export.Format(format)); !ok {
				return fmt.Errorf("unsupported format %q (want one of %s)", format, strings.Join(export.Formats(), ", "))
			}

			s, err := newSession(cmd.Context(), flags, false)
			if err != nil {
				return err
			}

			profile, err := s.converter.Load(args[0])
			if err != nil {
				return s.finish(err)
			}

			exporter := export.NewRDFExporter(profile.Namespaces)
			exporter.AddGraph(profile.Graph)
			data, err := exporter.Export(export.Format(format))
			if err != nil {
				return s.finish(err)
			}

			if output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), data)
				return s.finish(err)
			}
			if err := os.WriteFile(output, []byte(data), 0644); err != nil {
				return s.finish(fmt.Errorf("write %s: %w", output, err))
			}
			return s.finish(nil)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatTurtle), "Output format (turtle, ntriples)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
