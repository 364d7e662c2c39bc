package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/afs"
	"github.com/viant/rxguard/analyzer/hazard"
	"github.com/viant/rxguard/inspector"
)

// MatcherFn selects files and directories visited by AnalyzeDir
type MatcherFn func(info os.FileInfo) bool

// Analyzer detects terminal single-value operators applied directly to the tracked source
type Analyzer struct {
	config      *Config
	factory     *inspector.Factory
	fs          afs.Service
	match       MatcherFn
	types       TypeResolver
	logger      *slog.Logger
	concurrency int
	reporters   []Reporter
	suppress    bool
	projectRoot string
}

// New creates an analyzer with the default config unless WithConfig is used
func New(options ...Option) *Analyzer {
	ret := &Analyzer{
		config:      DefaultConfig(),
		fs:          afs.New(),
		logger:      slog.New(discardHandler{}),
		concurrency: runtime.GOMAXPROCS(0),
		suppress:    true,
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.config.Init()
	if ret.factory == nil {
		ret.factory = inspector.NewFactory(ret.config.Include...)
	}
	if ret.match == nil {
		ret.match = ret.config.MatchFile
	}
	if ret.concurrency < 1 {
		ret.concurrency = 1
	}
	return ret
}

// Config returns the analyzer config
func (a *Analyzer) Config() *Config {
	return a.config
}

// Analyze reports every pipe invocation whose receiver resolves to the tracked source
// and whose operators include a terminal single-value operator.
func (a *Analyzer) Analyze(root *sitter.Node, src []byte, path string) []*hazard.Hazard {
	resolver := NewResolver(a.config, a.types, src)
	var result []*hazard.Hazard
	for inv := range Invocations(root, src, path) {
		if !resolver.Resolve(inv.Receiver, inv.Scope) {
			continue
		}
		op := Terminal(inv.Operators)
		if op == nil {
			continue
		}
		if a.suppress && suppressed(src, op.Location.LineNumber-1) {
			a.logger.Debug("suppressed hazard", "location", op.Location.String(), "operator", op.Name)
			continue
		}
		fingerprint := hazard.Fingerprint(a.projectPath(path), op.Name, []byte(inv.Node.Content(src)))
		result = append(result, hazard.New(op.Location, op.Name, fingerprint))
	}
	return result
}

// AnalyzeSourceCode parses code with the grammar selected by path and analyzes it
func (a *Analyzer) AnalyzeSourceCode(ctx context.Context, path string, code []byte) ([]*hazard.Hazard, error) {
	tree, err := a.factory.Parse(ctx, path, code)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	root := tree.RootNode()
	if root.HasError() {
		a.logger.Debug("source has syntax errors", "path", path)
	}
	return a.Analyze(root, code, path), nil
}

// AnalyzeFile downloads and analyzes a single file
func (a *Analyzer) AnalyzeFile(ctx context.Context, URL string) ([]*hazard.Hazard, error) {
	code, err := a.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	return a.AnalyzeSourceCode(ctx, displayPath(URL), code)
}

// projectPath returns path relative to the project root with forward slashes, local paths outside the root are made absolute
func (a *Analyzer) projectPath(path string) string {
	if strings.Contains(path, "://") {
		if a.projectRoot != "" && strings.HasPrefix(path, strings.TrimSuffix(a.projectRoot, "/")+"/") {
			return strings.TrimPrefix(path, strings.TrimSuffix(a.projectRoot, "/")+"/")
		}
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(path))
	}
	if a.projectRoot != "" && !strings.Contains(a.projectRoot, "://") {
		if rel, err := filepath.Rel(a.projectRoot, abs); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(abs)
}

// displayPath strips the file scheme from local URLs
func displayPath(URL string) string {
	const scheme = "file://"
	if !strings.HasPrefix(URL, scheme) {
		return URL
	}
	return filepath.FromSlash(strings.TrimPrefix(URL[len(scheme):], "localhost"))
}
