package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/cimrdfs2linkml/storage"
)

func registryCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Read schemas published to the NATS registry",
		Long: `Read schemas published to the NATS key-value registry. The server is
taken from --nats-url or publish.nats_url.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List published schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, flags, func(store *storage.Store) error {
				keys, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, key := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), key)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get NAME",
		Short: "Print the latest revision of a published schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, flags, func(store *storage.Store) error {
				rec, err := store.Get(cmd.Context(), args[0])
				if errors.Is(err, storage.ErrNotFound) {
					return fmt.Errorf("schema %s is not published", args[0])
				}
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), rec.Schema)
				return err
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "history NAME",
		Short: "List the kept revisions of a published schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, flags, func(store *storage.Store) error {
				records, err := store.History(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "REVISION\tCREATED\tSOURCE\tRUN")
				for _, rec := range records {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", rec.Revision, rec.CreatedAt.Format(time.RFC3339), rec.Source, rec.RunID)
				}
				return tw.Flush()
			})
		},
	})

	return cmd
}

// withStore connects to the configured registry and runs fn.
func withStore(cmd *cobra.Command, flags *globalFlags, fn func(*storage.Store) error) error {
	cfg, _, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if cfg.Publish.NATSURL == "" {
		return errors.New("no registry configured: set --nats-url or publish.nats_url")
	}

	store, closeNATS, err := storage.Connect(cmd.Context(), cfg.Publish.NATSURL, cfg.Publish.Bucket)
	if err != nil {
		return err
	}
	defer closeNATS()
	return fn(store)
}
