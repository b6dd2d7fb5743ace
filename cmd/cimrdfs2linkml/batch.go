package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func batchCmd(flags *globalFlags) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "batch PATTERN...",
		Short: "Convert every profile matching the glob patterns",
		Long: `Convert every profile matching the glob patterns into DIR/<name>.yaml.
Patterns support * and recursive ** wildcards. The batch stops at the
first failing profile.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), flags, true)
			if err != nil {
				return err
			}

			results, err := s.converter.Batch(cmd.Context(), args, outDir)
			for _, res := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", res.Input, res.Output)
			}
			return s.finish(err)
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (default from config, .)")
	return cmd
}
