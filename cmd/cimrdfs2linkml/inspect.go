package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/c360studio/cimrdfs2linkml/cimrdfs"
)

func inspectCmd(flags *globalFlags) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "inspect PROFILE",
		Short: "Print the profile header, declaration and resource counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), flags, false)
			if err != nil {
				return err
			}

			profile, err := s.converter.Load(args[0])
			if err != nil {
				return s.finish(err)
			}

			out := cmd.OutOrStdout()
			printProfile(out, profile)
			if dump {
				fmt.Fprintln(out)
				dumpGraph(out, profile.Graph)
			}
			return s.finish(nil)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Pretty print the resolved ontology graph")
	return cmd
}

func printProfile(w io.Writer, profile *cimrdfs.Profile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	h := profile.Header
	row := func(key, value string) {
		if value != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", key, value)
		}
	}

	row("Profile", profile.Declaration.Label)
	row("IRI", profile.Declaration.IRI)
	row("Keyword", h.Keyword)
	row("Title", h.Title)
	row("Version", h.VersionInfo)
	row("Publisher", h.Publisher)
	row("Issued", h.Issued)
	row("Modified", h.Modified)
	if h.Identifier != "" {
		if id, err := h.UUID(); err == nil {
			row("Identifier", id.String())
		} else {
			row("Identifier", h.Identifier+" (not a UUID)")
		}
	}

	stats := profile.Graph.Stats()
	fmt.Fprintf(tw, "Classes:\t%d\n", stats.Classes)
	fmt.Fprintf(tw, "Enumerations:\t%d\n", stats.Enumerations)
	fmt.Fprintf(tw, "Attributes:\t%d\n", stats.Properties)
	fmt.Fprintf(tw, "Enum values:\t%d\n", stats.EnumValues)
}

func dumpGraph(w io.Writer, graph *cimrdfs.Graph) {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	cfg.Fdump(w, graph)
}
