package analyzer

import (
	"context"

	"github.com/viant/rxguard/analyzer/hazard"
)

// Reporter receives the hazards found by AnalyzeAll, e.g. to surface them as diagnostics
type Reporter interface {
	Report(ctx context.Context, hazards []*hazard.Hazard) error
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(ctx context.Context, hazards []*hazard.Hazard) error

// Report calls fn
func (fn ReporterFunc) Report(ctx context.Context, hazards []*hazard.Hazard) error {
	return fn(ctx, hazards)
}

// WithReporter registers a Reporter invoked after AnalyzeAll
func WithReporter(reporter Reporter) Option {
	return func(a *Analyzer) {
		a.reporters = append(a.reporters, reporter)
	}
}
