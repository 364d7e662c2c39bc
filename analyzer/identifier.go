package analyzer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/rxguard/analyzer/lexical"
)

// maxAliasDepth bounds type alias chains like type A = B; type B = A
const maxAliasDepth = 8

// TypeResolver supplies the declared type name of a parameter, e.g. backed by a type checker
type TypeResolver interface {
	// TypeName returns the nominal type name of the parameter declared by decl
	TypeName(decl *sitter.Node, src []byte) (string, bool)
}

// Resolver decides whether an expression denotes the tracked source
type Resolver struct {
	config *Config
	types  TypeResolver
	src    []byte
}

// NewResolver creates a resolver for a single source file, types is optional
func NewResolver(config *Config, types TypeResolver, src []byte) *Resolver {
	return &Resolver{config: config, types: types, src: src}
}

// -----------------------------------------------------------------------------
// Identifier resolution
// -----------------------------------------------------------------------------

// Resolve returns true if n denotes the tracked source within scope
func (r *Resolver) Resolve(n *sitter.Node, scope *lexical.Scope) bool {
	n = unparen(n)
	if n == nil {
		return false
	}
	if r.config.Overridden() {
		return r.resolveOverride(n)
	}
	switch n.Type() {
	case "identifier":
		name := n.Content(r.src)
		if r.config.MatchName(name) {
			return true
		}
		if scope == nil {
			return false
		}
		return r.isTrackedParameter(scope.Lookup(name))
	case "member_expression":
		property := n.ChildByFieldName("property")
		if property == nil {
			return false
		}
		return r.config.MatchName(strings.TrimPrefix(property.Content(r.src), "#"))
	}
	return false
}

// resolveOverride matches identifiers by name; a reference always carries the name its binding declares
func (r *Resolver) resolveOverride(n *sitter.Node) bool {
	return n.Type() == "identifier" && r.config.MatchName(n.Content(r.src))
}

func (r *Resolver) isTrackedParameter(binding *lexical.Binding) bool {
	if binding == nil || binding.Kind != lexical.Parameter {
		return false
	}
	if r.types != nil {
		if name, ok := r.types.TypeName(binding.Node, r.src); ok {
			return r.config.IsTrackedType(name)
		}
	}
	if !binding.Typed() {
		return false
	}
	typ := binding.Type
	for i := 0; i < maxAliasDepth; i++ {
		name := typeName(typ, r.src)
		if name == "" {
			return false
		}
		if r.config.IsTrackedType(name) {
			return true
		}
		if typ = binding.Scope.LookupType(name); typ == nil {
			return false
		}
	}
	return false
}

// typeName reduces an annotation to its nominal name: Actions<A> and store.Actions yield Actions
func typeName(n *sitter.Node, src []byte) string {
	for n != nil {
		switch n.Type() {
		case "type_identifier", "identifier":
			return n.Content(src)
		case "generic_type", "nested_type_identifier":
			n = n.ChildByFieldName("name")
		case "type_annotation", "parenthesized_type":
			n = n.NamedChild(0)
		default:
			return ""
		}
	}
	return ""
}

func unparen(n *sitter.Node) *sitter.Node {
	for n != nil && n.Type() == "parenthesized_expression" {
		n = n.NamedChild(0)
	}
	return n
}
