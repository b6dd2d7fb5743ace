package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func watchCmd(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "watch PROFILE",
		Short: "Regenerate the schema whenever the profile changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), flags, true)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = s.converter.Watch(ctx, args[0], output)
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			s.logger.Info("Watch stopped")
			return s.finish(err)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output schema path (default from config, out.yaml)")
	return cmd
}
