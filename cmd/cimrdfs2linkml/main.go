// Package main provides the cimrdfs2linkml binary entry point.
// cimrdfs2linkml converts CIM RDFS (CGMES) profiles into LinkML schemas.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/c360studio/semstreams/metric"
	"github.com/spf13/cobra"

	"github.com/c360studio/cimrdfs2linkml/config"
	"github.com/c360studio/cimrdfs2linkml/convert"
	"github.com/c360studio/cimrdfs2linkml/storage"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "cimrdfs2linkml"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags holds the flags shared by all subcommands.
type globalFlags struct {
	configPath  string
	logLevel    string
	metricsFile string
	natsURL     string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Convert CIM RDFS profiles to LinkML schemas",
		Long: `cimrdfs2linkml converts CIM RDFS (CGMES) profiles, published as
RDF/XML, into LinkML schema documents.

It provides:
- Single profile conversion
- Batch conversion over glob patterns (** supported)
- Watch mode regenerating the schema on every profile change
- Profile inspection
- RDF export of the resolved ontology graph
- Publishing schemas to a NATS key-value registry

Configuration is layered: defaults, ~/.config/cimrdfs2linkml/config.yaml,
cimrdfs2linkml.yaml in the working directory or a parent, then --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	cmd.PersistentFlags().StringVar(&flags.natsURL, "nats-url", "", "Publish schemas to the NATS server at this URL")

	cmd.AddCommand(
		convertCmd(flags),
		batchCmd(flags),
		watchCmd(flags),
		inspectCmd(flags),
		exportCmd(flags),
		configCmd(flags),
		registryCmd(flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// newLogger builds the stderr text logger for level and installs it as default.
func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// session is the state shared by one command invocation.
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	registry  *metric.MetricsRegistry
	converter *convert.Converter
	textfile  string
	store     *storage.Store
	closeNATS func()
}

// loadConfig configures logging and loads the layered configuration with
// the flag overrides applied.
func loadConfig(flags *globalFlags) (*config.Config, *slog.Logger, error) {
	logger := newLogger(flags.logLevel)

	cfg, err := config.NewLoader(logger).Load(flags.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if flags.natsURL != "" {
		cfg.Publish.NATSURL = flags.natsURL
	}
	if flags.metricsFile != "" {
		cfg.Metrics.Textfile = flags.metricsFile
	}
	return cfg, logger, nil
}

// newSession loads the configuration and creates the converter. With
// publish set it also connects to the schema registry when one is configured.
func newSession(ctx context.Context, flags *globalFlags, publish bool) (*session, error) {
	cfg, logger, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:      cfg,
		logger:   logger,
		textfile: cfg.Metrics.Textfile,
	}

	opts := []convert.Option{convert.WithLogger(logger)}
	if s.textfile != "" {
		s.registry = metric.NewMetricsRegistry()
		opts = append(opts, convert.WithMetrics(s.registry))
	}
	if publish && cfg.Publish.NATSURL != "" {
		s.store, s.closeNATS, err = storage.Connect(ctx, cfg.Publish.NATSURL, cfg.Publish.Bucket)
		if err != nil {
			return nil, err
		}
		logger.Info("Publishing schemas", "nats_url", cfg.Publish.NATSURL, "bucket", cfg.Publish.Bucket)
		opts = append(opts, convert.WithPublisher(s.store))
	}

	s.converter, err = convert.New(cfg, opts...)
	if err != nil {
		s.disconnect()
		return nil, err
	}
	return s, nil
}

func (s *session) disconnect() {
	if s.closeNATS != nil {
		s.closeNATS()
		s.closeNATS = nil
	}
}

// close disconnects from the registry and writes the metrics textfile when
// one is configured.
func (s *session) close() error {
	s.disconnect()
	if s.registry == nil {
		return nil
	}
	if err := convert.WriteTextfile(s.registry, s.textfile); err != nil {
		return err
	}
	s.logger.Debug("Wrote metrics", "path", s.textfile)
	return nil
}

// finish closes s and returns the first of err and the close error.
func (s *session) finish(err error) error {
	if cerr := s.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
