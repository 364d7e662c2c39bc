package analyzer

import (
	"fmt"
	"iter"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/rxguard/analyzer/lexical"
)

// -----------------------------------------------------------------------------
// AST traversal
// -----------------------------------------------------------------------------

// walker discovers pipe invocations while maintaining lexical scopes
type walker struct {
	src   []byte
	path  string
	yield func(*Invocation) bool
}

// Invocations returns all pipe invocations of the tree rooted at root in document order.
// Invocations nested in operator callbacks are yielded as separate invocations.
func Invocations(root *sitter.Node, src []byte, path string) iter.Seq[*Invocation] {
	return func(yield func(*Invocation) bool) {
		if root == nil {
			return
		}
		w := &walker{src: src, path: path, yield: yield}
		fileScope := lexical.NewScope(nil, path, "file")
		w.hoist(root, fileScope)
		w.walkChildren(root, fileScope)
	}
}

// walk visits n, returns false when the consumer stopped iteration
func (w *walker) walk(n *sitter.Node, scope *lexical.Scope) bool {
	if n == nil {
		return true
	}
	switch n.Type() {
	case "call_expression":
		if inv := newInvocation(n, w.src, w.path, scope); inv != nil {
			if !w.yield(inv) {
				return false
			}
		}
	case "function_declaration", "generator_function_declaration", "function_expression", "function",
		"generator_function", "arrow_function", "method_definition":
		return w.walkFunction(n, scope)
	case "statement_block":
		blk := lexical.NewScope(scope, w.scopeID(scope, "block", n), "block")
		w.hoist(n, blk)
		return w.walkChildren(n, blk)
	case "class_body":
		return w.walkChildren(n, lexical.NewScope(scope, w.scopeID(scope, "class", n), "class"))
	case "for_statement", "for_in_statement":
		loop := lexical.NewScope(scope, w.scopeID(scope, "loop", n), "loop")
		w.declareLoop(n, loop)
		return w.walkChildren(n, loop)
	case "catch_clause":
		return w.walkCatch(n, scope)
	}
	return w.walkChildren(n, scope)
}

func (w *walker) walkChildren(n *sitter.Node, scope *lexical.Scope) bool {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if !w.walk(n.NamedChild(i), scope) {
			return false
		}
	}
	return true
}

// walkFunction opens a function scope holding the name of a named function expression and the parameters
func (w *walker) walkFunction(n *sitter.Node, scope *lexical.Scope) bool {
	fn := lexical.NewScope(scope, w.scopeID(scope, "function", n), "function")
	if n.Type() != "function_declaration" && n.Type() != "generator_function_declaration" && n.Type() != "method_definition" {
		if name := n.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
			w.bind(fn, name, lexical.Function, nil)
		}
	}
	if param := n.ChildByFieldName("parameter"); param != nil {
		w.declarePattern(param, fn, lexical.Parameter)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		w.declareParameters(params, fn)
		if !w.walkChildren(params, fn) {
			return false
		}
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return true
	}
	if body.Type() == "statement_block" {
		w.hoist(body, fn)
		return w.walkChildren(body, fn)
	}
	return w.walk(body, fn)
}

func (w *walker) walkCatch(n *sitter.Node, scope *lexical.Scope) bool {
	catch := lexical.NewScope(scope, w.scopeID(scope, "catch", n), "catch")
	if param := n.ChildByFieldName("parameter"); param != nil {
		w.declarePattern(param, catch, lexical.Catch)
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return true
	}
	w.hoist(body, catch)
	return w.walkChildren(body, catch)
}

func (w *walker) scopeID(parent *lexical.Scope, kind string, n *sitter.Node) string {
	return fmt.Sprintf("%s.%s@%d", parent.ID, kind, n.StartByte())
}

// -------------------- Declarations -------------------------

// hoist declares bindings of the direct statements of a program or block
func (w *walker) hoist(block *sitter.Node, scope *lexical.Scope) {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		w.declareStatement(block.NamedChild(i), scope)
	}
}

func (w *walker) declareStatement(stmt *sitter.Node, scope *lexical.Scope) {
	switch stmt.Type() {
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < int(stmt.NamedChildCount()); i++ {
			declarator := stmt.NamedChild(i)
			if declarator.Type() != "variable_declarator" {
				continue
			}
			if name := declarator.ChildByFieldName("name"); name != nil {
				w.declarePattern(name, scope, lexical.Variable)
			}
		}
	case "function_declaration", "generator_function_declaration":
		if name := stmt.ChildByFieldName("name"); name != nil {
			w.bind(scope, name, lexical.Function, nil)
		}
	case "class_declaration", "abstract_class_declaration":
		if name := stmt.ChildByFieldName("name"); name != nil {
			w.bind(scope, name, lexical.Class, nil)
		}
	case "type_alias_declaration":
		name, value := stmt.ChildByFieldName("name"), stmt.ChildByFieldName("value")
		if name != nil && value != nil {
			scope.DeclareType(name.Content(w.src), value)
		}
	case "import_statement":
		w.declareImport(stmt, scope)
	case "export_statement":
		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			w.declareStatement(decl, scope)
		}
	}
}

// declareImport binds default, namespace and named (possibly aliased) imports
func (w *walker) declareImport(stmt *sitter.Node, scope *lexical.Scope) {
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		clause := stmt.NamedChild(i)
		if clause.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			item := clause.NamedChild(j)
			switch item.Type() {
			case "identifier":
				w.bind(scope, item, lexical.Import, nil)
			case "namespace_import":
				for k := 0; k < int(item.NamedChildCount()); k++ {
					if id := item.NamedChild(k); id.Type() == "identifier" {
						w.bind(scope, id, lexical.Import, nil)
					}
				}
			case "named_imports":
				for k := 0; k < int(item.NamedChildCount()); k++ {
					specifier := item.NamedChild(k)
					if specifier.Type() != "import_specifier" {
						continue
					}
					name := specifier.ChildByFieldName("alias")
					if name == nil {
						name = specifier.ChildByFieldName("name")
					}
					if name != nil && name.Type() == "identifier" {
						w.bind(scope, name, lexical.Import, nil)
					}
				}
			}
		}
	}
}

// declareLoop binds let/const/var declared by a for or for-in/of head
func (w *walker) declareLoop(n *sitter.Node, scope *lexical.Scope) {
	if init := n.ChildByFieldName("initializer"); init != nil {
		w.declareStatement(init, scope)
	}
	if n.Type() == "for_in_statement" && w.declaresLoopVariable(n) {
		if left := n.ChildByFieldName("left"); left != nil {
			w.declarePattern(left, scope, lexical.Variable)
		}
	}
}

// declaresLoopVariable returns true for for (const x of ...) style heads
func (w *walker) declaresLoopVariable(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case "var", "let", "const":
			return true
		case "(", "for", "await":
		default:
			return false
		}
	}
	return false
}

// declareParameters binds formal parameters; a plain identifier parameter keeps its type annotation
func (w *walker) declareParameters(params *sitter.Node, scope *lexical.Scope) {
	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		switch param.Type() {
		case "required_parameter", "optional_parameter":
			pattern := param.ChildByFieldName("pattern")
			if pattern == nil {
				continue
			}
			if pattern.Type() == "identifier" {
				w.bind(scope, pattern, lexical.Parameter, param.ChildByFieldName("type"))
				continue
			}
			w.declarePattern(pattern, scope, lexical.Parameter)
		default:
			w.declarePattern(param, scope, lexical.Parameter)
		}
	}
}

// declarePattern binds every identifier introduced by a binding pattern
func (w *walker) declarePattern(n *sitter.Node, scope *lexical.Scope, kind lexical.BindingKind) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		w.bind(scope, n, kind, nil)
	case "pair_pattern":
		w.declarePattern(n.ChildByFieldName("value"), scope, kind)
	case "assignment_pattern", "object_assignment_pattern":
		w.declarePattern(n.ChildByFieldName("left"), scope, kind)
	case "object_pattern", "array_pattern", "rest_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			w.declarePattern(n.NamedChild(i), scope, kind)
		}
	}
}

func (w *walker) bind(scope *lexical.Scope, name *sitter.Node, kind lexical.BindingKind, typ *sitter.Node) {
	scope.Declare(&lexical.Binding{
		Name: name.Content(w.src),
		Kind: kind,
		Node: name,
		Type: typ,
	})
}
