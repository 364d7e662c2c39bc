package lexical

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Binding represents a declared name within a lexical scope
type Binding struct {
	Name  string       // Declared name
	Kind  BindingKind  // How the name was declared
	Scope *Scope       // Declaring scope
	Node  *sitter.Node // Declaring identifier node
	Type  *sitter.Node // Type annotation node (parameters only)
}

// Typed returns true if the binding carries a type annotation
func (b *Binding) Typed() bool {
	return b != nil && b.Type != nil
}
