package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/rxguard/analyzer/hazard"
	"golang.org/x/sync/errgroup"
)

// AnalyzeDir walks a directory tree and analyses every matching file, files are analyzed in parallel.
// Hazards are ordered by file path, then by document order within a file.
func (a *Analyzer) AnalyzeDir(ctx context.Context, root string) ([]*hazard.Hazard, error) {
	var files []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if !a.match(info) {
			if !info.IsDir() {
				a.logger.Debug("skipping file", "name", info.Name())
			}
			return !info.IsDir(), nil
		}
		if info.IsDir() {
			return true, nil
		}
		if !a.factory.Supports(info.Name()) {
			a.logger.Debug("skipping file without grammar", "name", info.Name())
			return true, nil
		}
		files = append(files, url.Join(url.Join(baseURL, parent), info.Name()))
		return true, nil
	}
	if err := a.fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	a.logger.Debug("analyzing directory", "root", root, "files", len(files))

	results := make([][]*hazard.Hazard, len(files))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(a.concurrency)
	for i, URL := range files {
		group.Go(func() error {
			hazards, err := a.AnalyzeFile(ctx, URL)
			if err != nil {
				return err
			}
			results[i] = hazards
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	var all []*hazard.Hazard
	for _, hazards := range results {
		all = append(all, hazards...)
	}
	hazard.Sort(all)
	return all, nil
}

// AnalyzeAll analyses each location (file or directory) and hands the combined result to registered reporters
func (a *Analyzer) AnalyzeAll(ctx context.Context, locations ...string) ([]*hazard.Hazard, error) {
	var all []*hazard.Hazard
	for _, location := range locations {
		object, err := a.fs.Object(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("failed to locate %s: %w", location, err)
		}
		var hazards []*hazard.Hazard
		if object.IsDir() {
			hazards, err = a.AnalyzeDir(ctx, location)
		} else {
			hazards, err = a.AnalyzeFile(ctx, location)
		}
		if err != nil {
			return nil, err
		}
		all = append(all, hazards...)
	}
	for _, reporter := range a.reporters {
		if err := reporter.Report(ctx, all); err != nil {
			return nil, err
		}
	}
	return all, nil
}
