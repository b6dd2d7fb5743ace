package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func convertCmd(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert PROFILE",
		Short: "Convert one profile to a LinkML schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), flags, true)
			if err != nil {
				return err
			}

			res, err := s.converter.Convert(cmd.Context(), args[0], output)
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", res.Input, res.Output)
			}
			return s.finish(err)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output schema path (default from config, out.yaml)")
	return cmd
}
