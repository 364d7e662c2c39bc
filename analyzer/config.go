package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/rxguard/inspector"
	"gopkg.in/yaml.v3"
)

// ErrInvalidObservable is returned when the observable override is not an identifier
var ErrInvalidObservable = errors.New("invalid observable name")

var (
	// defaultObservable matches action, action$, actions, actions$ and camel case suffixes like userActions$
	defaultObservable = regexp.MustCompile(`^(?:[aA]|[\w$]*[a-z0-9_$]A)ctions?\$?$`)
	identifierExpr    = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// DefaultTypes lists nominal types of the tracked source
var DefaultTypes = []string{"Actions", "ActionsObservable"}

// DefaultExclude lists directories skipped by AnalyzeDir
var DefaultExclude = []string{"node_modules", ".git", "dist", "build", "coverage"}

// Config represents check configuration, it must not be modified once passed to an Analyzer
type Config struct {
	Observable string   `yaml:"observable,omitempty"` // Exact name override, replaces the default pattern
	Types      []string `yaml:"types,omitempty"`      // Nominal types of the tracked source
	Include    []string `yaml:"include,omitempty"`    // File extensions to analyze
	Exclude    []string `yaml:"exclude,omitempty"`    // Directory names to skip in addition to DefaultExclude
}

// DefaultConfig returns the default pattern configuration
func DefaultConfig() *Config {
	return &Config{
		Types:   append([]string{}, DefaultTypes...),
		Include: inspector.Extensions(),
		Exclude: append([]string{}, DefaultExclude...),
	}
}

// NewConfig creates a validated config, empty observable keeps the default pattern
func NewConfig(observable string) (*Config, error) {
	ret := DefaultConfig()
	ret.Observable = observable
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// LoadConfig loads YAML config from URL, unset keys take defaults
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	ret := &Config{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	ret.Init()
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}

// Init sets defaults for empty fields, DefaultExclude is always part of Exclude
func (c *Config) Init() {
	if len(c.Types) == 0 {
		c.Types = append([]string{}, DefaultTypes...)
	}
	if len(c.Include) == 0 {
		c.Include = inspector.Extensions()
	}
	c.Exclude = mergeExclude(DefaultExclude, c.Exclude)
}

// mergeExclude returns defaults followed by the extra names not already listed
func mergeExclude(defaults, extra []string) []string {
	ret := append([]string{}, defaults...)
	for _, name := range extra {
		if !slices.Contains(ret, name) {
			ret = append(ret, name)
		}
	}
	return ret
}

// Validate checks the observable override
func (c *Config) Validate() error {
	if c.Observable == "" {
		return nil
	}
	if !identifierExpr.MatchString(c.Observable) {
		return fmt.Errorf("%w: %q", ErrInvalidObservable, c.Observable)
	}
	return nil
}

// Clone returns a copy of the config
func (c *Config) Clone() *Config {
	return &Config{
		Observable: c.Observable,
		Types:      append([]string{}, c.Types...),
		Include:    append([]string{}, c.Include...),
		Exclude:    append([]string{}, c.Exclude...),
	}
}

// Overridden returns true if an exact observable name replaces the default pattern
func (c *Config) Overridden() bool {
	return c.Observable != ""
}

// MatchName returns true if name denotes the tracked source
func (c *Config) MatchName(name string) bool {
	if c.Overridden() {
		return name == c.Observable
	}
	return defaultObservable.MatchString(name)
}

// IsTrackedType returns true if typeName is a nominal type of the tracked source
func (c *Config) IsTrackedType(typeName string) bool {
	for _, candidate := range c.Types {
		if candidate == typeName {
			return true
		}
	}
	return false
}

// MatchFile is the default file matcher: excluded directories are skipped, files need an included extension
func (c *Config) MatchFile(info os.FileInfo) bool {
	name := info.Name()
	if info.IsDir() {
		for _, excluded := range c.Exclude {
			if name == excluded {
				return false
			}
		}
		return true
	}
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}
	lower := strings.ToLower(name)
	for _, ext := range c.Include {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
