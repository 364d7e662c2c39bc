package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/rxguard/analyzer/hazard"
	"github.com/viant/rxguard/analyzer/lexical"
)

// pipeMethod composes a receiver with operator calls
const pipeMethod = "pipe"

// Invocation represents a pipe call: receiver.pipe(op1(...), op2(...), ...)
type Invocation struct {
	Node      *sitter.Node   // pipe call expression
	Receiver  *sitter.Node   // expression the operators are composed with
	Operators []*Operator    // operator calls in declared order
	Scope     *lexical.Scope // scope enclosing the invocation
}

// Operator represents an operator call argument of a pipe invocation
type Operator struct {
	Name      string
	Arguments []*sitter.Node
	Location  hazard.Location // span of the operator callee
	Node      *sitter.Node
}

// newInvocation returns an invocation if call is a pipe call, nil otherwise
func newInvocation(call *sitter.Node, src []byte, path string, scope *lexical.Scope) *Invocation {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Type() != "member_expression" {
		return nil
	}
	property := callee.ChildByFieldName("property")
	if property == nil || property.Content(src) != pipeMethod {
		return nil
	}
	receiver := callee.ChildByFieldName("object")
	if receiver == nil {
		return nil
	}
	ret := &Invocation{Node: call, Receiver: receiver, Scope: scope}
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return ret
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		if op := newOperator(args.NamedChild(i), src, path); op != nil {
			ret.Operators = append(ret.Operators, op)
		}
	}
	return ret
}

// newOperator returns an operator for take(1) or ops.take(1) call shapes
func newOperator(n *sitter.Node, src []byte, path string) *Operator {
	if n == nil || n.Type() != "call_expression" {
		return nil
	}
	callee := n.ChildByFieldName("function")
	if callee == nil {
		return nil
	}
	nameNode := callee
	switch callee.Type() {
	case "identifier":
	case "member_expression":
		nameNode = callee.ChildByFieldName("property")
		if nameNode == nil {
			return nil
		}
	default:
		return nil
	}
	ret := &Operator{
		Name:     nameNode.Content(src),
		Location: hazard.NodeLocation(path, nameNode, src),
		Node:     n,
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			arg := args.NamedChild(i)
			if arg.Type() == "comment" {
				continue
			}
			ret.Arguments = append(ret.Arguments, arg)
		}
	}
	return ret
}
