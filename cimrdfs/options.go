package cimrdfs

import (
	"log/slog"

	"github.com/c360studio/cimrdfs2linkml/vocabulary/cim"
)

// Option configures Parse and Bind.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	base     string
	language string
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:   slog.Default(),
		base:     cim.DefaultBase,
		language: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBase sets the IRI fragment identifiers are resolved against.
func WithBase(base string) Option {
	return func(o *options) {
		if base != "" {
			o.base = base
		}
	}
}

// WithLanguage sets the preferred language of labels and comments.
func WithLanguage(lang string) Option {
	return func(o *options) {
		if lang != "" {
			o.language = lang
		}
	}
}
