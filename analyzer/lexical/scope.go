package lexical

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Scope represents a lexical scope: file, function, block, loop, catch
type Scope struct {
	ID       string                  // Unique scope ID (e.g. "app.ts.function@120")
	Kind     string                  // e.g., "file", "function", "block", "class", "loop", "catch"
	Parent   *Scope                  // Enclosing scope
	Bindings map[string]*Binding     // Value namespace
	Types    map[string]*sitter.Node // Type alias namespace (name -> aliased type)
}

// NewScope creates a child scope of parent (nil for a file scope)
func NewScope(parent *Scope, id, kind string) *Scope {
	return &Scope{
		ID:       id,
		Kind:     kind,
		Parent:   parent,
		Bindings: map[string]*Binding{},
		Types:    map[string]*sitter.Node{},
	}
}

// Declare adds a binding to the scope; the first declaration of a name wins
func (s *Scope) Declare(b *Binding) *Binding {
	if existing, ok := s.Bindings[b.Name]; ok {
		return existing
	}
	b.Scope = s
	s.Bindings[b.Name] = b
	return b
}

// DeclareType registers a type alias
func (s *Scope) DeclareType(name string, value *sitter.Node) {
	if _, ok := s.Types[name]; ok {
		return
	}
	s.Types[name] = value
}

// Lookup resolves name through the scope chain, returns nil for a free name
func (s *Scope) Lookup(name string) *Binding {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.Bindings[name]; ok {
			return b
		}
	}
	return nil
}

// LookupType resolves a type alias through the scope chain
func (s *Scope) LookupType(name string) *sitter.Node {
	for cur := s; cur != nil; cur = cur.Parent {
		if t, ok := cur.Types[name]; ok {
			return t
		}
	}
	return nil
}
