package inspector

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrUnsupportedLanguage is returned for file extensions without a grammar
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language represents a tree-sitter grammar bound to a language name
type Language struct {
	Name    string
	Grammar *sitter.Language
}

var (
	typeScript = &Language{Name: "typescript", Grammar: typescript.GetLanguage()}
	tsxScript  = &Language{Name: "tsx", Grammar: tsx.GetLanguage()}
	javaScript = &Language{Name: "javascript", Grammar: javascript.GetLanguage()}
)

var languages = map[string]*Language{
	".ts":  typeScript,
	".mts": typeScript,
	".cts": typeScript,
	".tsx": tsxScript,
	".js":  javaScript,
	".mjs": javaScript,
	".cjs": javaScript,
	".jsx": javaScript,
}

// Extensions returns all supported file extensions
func Extensions() []string {
	return []string{".ts", ".mts", ".cts", ".tsx", ".js", ".mjs", ".cjs", ".jsx"}
}

// Factory selects grammars by file extension
type Factory struct {
	extensions map[string]*Language
}

// NewFactory creates a factory; extensions restricts supported extensions, all if empty
func NewFactory(extensions ...string) *Factory {
	ret := &Factory{extensions: map[string]*Language{}}
	if len(extensions) == 0 {
		extensions = Extensions()
	}
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if lang, ok := languages[ext]; ok {
			ret.extensions[ext] = lang
		}
	}
	return ret
}

// Supports returns true if filename has a supported extension
func (f *Factory) Supports(filename string) bool {
	_, err := f.GetLanguage(filename)
	return err == nil
}

// GetLanguage returns the grammar for filename
func (f *Factory) GetLanguage(filename string) (*Language, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if strings.HasSuffix(strings.ToLower(filename), ".d.ts") {
		return nil, fmt.Errorf("%w: declaration file %s", ErrUnsupportedLanguage, filename)
	}
	lang, ok := f.extensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, ext)
	}
	return lang, nil
}

// Parse parses src with the grammar selected by filename, the caller must close the tree
func (f *Factory) Parse(ctx context.Context, filename string, src []byte) (*sitter.Tree, error) {
	lang, err := f.GetLanguage(filename)
	if err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang.Grammar)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return tree, nil
}
