// Package convert runs the profile to schema pipeline: read the RDF/XML
// profile, parse it into an ontology graph, project the graph into a LinkML
// schema and write the schema as YAML. Besides single conversions it offers
// batch conversion over glob patterns and a watch mode that regenerates the
// schema whenever the profile changes. Written schemas can also be
// published to a schema registry.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/c360studio/semstreams/metric"
	"github.com/google/uuid"

	"github.com/c360studio/cimrdfs2linkml/cimrdfs"
	"github.com/c360studio/cimrdfs2linkml/config"
	"github.com/c360studio/cimrdfs2linkml/linkml"
	"github.com/c360studio/cimrdfs2linkml/rdfxml"
	"github.com/c360studio/cimrdfs2linkml/storage"
)

// Converter turns profile files into schema files.
type Converter struct {
	cfg       *config.Config
	logger    *slog.Logger
	metrics   *convertMetrics
	publisher Publisher
}

// Publisher receives every generated schema.
type Publisher interface {
	Publish(ctx context.Context, rec *storage.SchemaRecord) (uint64, error)
}

// Option configures a Converter.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	registry  *metric.MetricsRegistry
	publisher Publisher
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics registers conversion metrics with registry.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithPublisher publishes every written schema to p.
func WithPublisher(p Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// New creates a converter. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) (*Converter, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	m, err := newConvertMetrics(o.registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	return &Converter{
		cfg:       cfg,
		logger:    o.logger,
		metrics:   m,
		publisher: o.publisher,
	}, nil
}

// Result describes one completed conversion.
type Result struct {
	RunID    string
	Input    string
	Output   string
	Profile  string
	Stats    cimrdfs.Stats
	Duration time.Duration
	// Revision is the registry revision, zero when not published.
	Revision uint64
}

// Load reads and parses the profile at path.
func (c *Converter) Load(path string) (*cimrdfs.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()

	doc, err := rdfxml.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}

	profile, err := cimrdfs.Parse(doc,
		cimrdfs.WithLogger(c.logger),
		cimrdfs.WithBase(c.cfg.Convert.BaseIRI),
		cimrdfs.WithLanguage(c.cfg.Convert.Language))
	if err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return profile, nil
}

// Schema projects profile into a LinkML schema.
func (c *Converter) Schema(profile *cimrdfs.Profile) (*linkml.SchemaDefinition, error) {
	schema, err := linkml.Build(profile, c.Settings(), linkml.WithLogger(c.logger))
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}
	return schema, nil
}

// Settings returns the schema settings from the configuration.
func (c *Converter) Settings() linkml.Settings {
	return linkml.Settings{
		DefaultRange:    c.cfg.Schema.DefaultRange,
		Imports:         c.cfg.Schema.Imports,
		DefaultCURIMaps: c.cfg.Schema.DefaultCURIMaps,
		LinkMLPrefix:    c.cfg.Schema.LinkMLPrefix,
	}
}

// Convert converts the profile at input into a schema file at output.
// An empty output uses the configured default.
func (c *Converter) Convert(ctx context.Context, input, output string) (*Result, error) {
	if output == "" {
		output = c.cfg.Convert.Output
	}
	runID := uuid.New().String()
	logger := c.logger.With("run_id", runID)
	start := time.Now()

	res, err := c.convert(ctx, input, output, runID)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.recordFailure(elapsed)
		logger.Debug("Conversion failed", "input", input, "error", err)
		return nil, err
	}

	res.RunID = runID
	res.Duration = elapsed
	c.metrics.recordSuccess(res.Stats, elapsed)

	logger.Info("Converted profile",
		"input", input,
		"output", output,
		"profile", res.Profile,
		"classes", res.Stats.Classes,
		"enumerations", res.Stats.Enumerations,
		"attributes", res.Stats.Properties,
		"enum_values", res.Stats.EnumValues,
		"revision", res.Revision,
		"duration", elapsed)

	return res, nil
}

func (c *Converter) convert(ctx context.Context, input, output, runID string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profile, err := c.Load(input)
	if err != nil {
		return nil, err
	}

	schema, err := c.Schema(profile)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := linkml.WriteFile(output, schema); err != nil {
		return nil, err
	}

	res := &Result{
		Input:   input,
		Output:  output,
		Profile: schema.Name,
		Stats:   profile.Graph.Stats(),
	}
	if c.publisher != nil {
		rev, err := c.publish(ctx, schema, input, runID)
		if err != nil {
			return nil, err
		}
		res.Revision = rev
	}
	return res, nil
}

func (c *Converter) publish(ctx context.Context, schema *linkml.SchemaDefinition, input, runID string) (uint64, error) {
	data, err := linkml.Marshal(schema)
	if err != nil {
		return 0, err
	}
	rev, err := c.publisher.Publish(ctx, &storage.SchemaRecord{
		Name:     schema.Name,
		SchemaID: schema.ID,
		Source:   input,
		RunID:    runID,
		Schema:   string(data),
	})
	if err != nil {
		return 0, fmt.Errorf("publish schema: %w", err)
	}
	return rev, nil
}
