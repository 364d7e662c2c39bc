package analyzer

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/rxguard/inspector"
)

type Option func(*Analyzer)

// WithConfig sets the check configuration, the analyzer keeps its own copy
func WithConfig(config *Config) Option {
	return func(a *Analyzer) {
		if config != nil {
			a.config = config.Clone()
		}
	}
}

// WithFS sets the file system used by AnalyzeFile and AnalyzeDir
func WithFS(fs afs.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}

// WithMatcher overrides the config based file matcher
func WithMatcher(matcher MatcherFn) Option {
	return func(a *Analyzer) {
		a.match = matcher
	}
}

// WithFactory sets the parser factory
func WithFactory(factory *inspector.Factory) Option {
	return func(a *Analyzer) {
		a.factory = factory
	}
}

// WithTypeResolver installs a resolver for declared parameter types
func WithTypeResolver(types TypeResolver) Option {
	return func(a *Analyzer) {
		a.types = types
	}
}

// WithLogger sets a structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithConcurrency limits the number of files analyzed in parallel
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		a.concurrency = n
	}
}

// WithProjectRoot sets the directory or URL hazard fingerprints are relative to
func WithProjectRoot(root string) Option {
	return func(a *Analyzer) {
		if root == "" || strings.Contains(root, "://") {
			a.projectRoot = root
			return
		}
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
		a.projectRoot = root
	}
}

// WithSuppression enables or disables ignore directives, enabled by default
func WithSuppression(enabled bool) Option {
	return func(a *Analyzer) {
		a.suppress = enabled
	}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
