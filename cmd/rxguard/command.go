package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/rxguard/analyzer"
	"github.com/viant/rxguard/inspector/repository"
	"github.com/viant/rxguard/report"
)

// Exit codes
const (
	exitOK      = 0
	exitHazards = 1
	exitError   = 2
)

type options struct {
	observable    string
	config        string
	format        string
	baseline      string
	writeBaseline bool
	concurrency   int
	noSuppress    bool
	verbose       bool
}

// Run executes the command line and returns the process exit code
func Run(args []string, stdout, stderr io.Writer) int {
	opts := &options{}
	code := exitOK
	cmd := &cobra.Command{
		Use:   "rxguard [paths...]",
		Short: "Detect first/take applied directly to action streams",
		Long: `rxguard reports pipelines where a terminal single-value operator (first, take)
is applied directly to a long-lived action stream such as actions$. Such an
operator completes the whole stream after the first matching action.

Examples:
  rxguard src/                        # default name pattern (action, actions$, ...)
  rxguard --observable foo src/       # only identifiers named foo
  rxguard --format yaml src/ > out.yaml
  rxguard --baseline .rxguard-baseline.yaml --write-baseline src/`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			code, err = run(cmd.Context(), opts, args, stdout, stderr)
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.observable, "observable", "o", "", "exact name of the tracked observable, replaces the default pattern")
	flags.StringVarP(&opts.config, "config", "c", "", "config file (default: nearest .rxguard.yaml)")
	flags.StringVarP(&opts.format, "format", "f", report.FormatText, "output format: text or yaml")
	flags.StringVar(&opts.baseline, "baseline", "", "baseline file with accepted hazard fingerprints")
	flags.BoolVar(&opts.writeBaseline, "write-baseline", false, "write current hazards to the baseline file")
	flags.IntVarP(&opts.concurrency, "concurrency", "j", 0, "files analyzed in parallel (default: GOMAXPROCS)")
	flags.BoolVar(&opts.noSuppress, "no-suppress", false, "ignore rxguard:ignore and eslint-disable directives")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "rxguard: %v\n", err)
		if code == exitOK {
			code = exitError
		}
	}
	return code
}

func run(ctx context.Context, opts *options, paths []string, stdout, stderr io.Writer) (int, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	if opts.writeBaseline && opts.baseline == "" {
		return exitError, errors.New("--write-baseline requires --baseline")
	}
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	fs := afs.New()

	project, _ := repository.New().DetectProject(paths[0])
	config, err := loadConfig(ctx, fs, opts, project, logger)
	if err != nil {
		return exitError, err
	}
	emitter, err := report.NewEmitter(opts.format)
	if err != nil {
		return exitError, err
	}

	var baseline *report.Baseline
	if opts.baseline != "" && !opts.writeBaseline {
		if baseline, err = report.LoadBaseline(ctx, fs, opts.baseline); err != nil {
			return exitError, err
		}
	}
	writer := report.NewWriter(stdout, emitter, baseline)
	analyzerOptions := []analyzer.Option{
		analyzer.WithConfig(config),
		analyzer.WithFS(fs),
		analyzer.WithLogger(logger),
		analyzer.WithSuppression(!opts.noSuppress),
	}
	if project != nil {
		analyzerOptions = append(analyzerOptions, analyzer.WithProjectRoot(project.RootPath))
	}
	if opts.concurrency > 0 {
		analyzerOptions = append(analyzerOptions, analyzer.WithConcurrency(opts.concurrency))
	}
	if !opts.writeBaseline {
		analyzerOptions = append(analyzerOptions, analyzer.WithReporter(writer))
	}
	hazards, err := analyzer.New(analyzerOptions...).AnalyzeAll(ctx, paths...)
	if err != nil {
		return exitError, err
	}
	if opts.writeBaseline {
		if err = report.NewBaseline(hazards).Save(ctx, fs, opts.baseline); err != nil {
			return exitError, err
		}
		logger.Info("baseline written", "path", opts.baseline, "hazards", len(hazards))
		return exitOK, nil
	}
	if writer.Reported() > 0 {
		return exitHazards, nil
	}
	return exitOK, nil
}

// loadConfig resolves the config file (flag or nearest .rxguard.yaml), the observable flag takes precedence
func loadConfig(ctx context.Context, fs afs.Service, opts *options, project *repository.Project, logger *slog.Logger) (*analyzer.Config, error) {
	configPath := opts.config
	if configPath == "" && project != nil {
		configPath = project.ConfigPath
		logger.Debug("detected project", "root", project.RootPath, "type", project.Type, "name", project.Name)
	}
	config := analyzer.DefaultConfig()
	if configPath != "" {
		var err error
		if config, err = analyzer.LoadConfig(ctx, fs, configPath); err != nil {
			return nil, err
		}
		logger.Debug("loaded config", "path", configPath)
	}
	if opts.observable != "" {
		config.Observable = opts.observable
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}
	return config, nil
}
