// Package ast defines the Snailz syntax tree: a single node type tagged with
// a Kind, an ordered list of children and an optional literal.
package ast

import (
	"fmt"

	"github.com/agenthands/snailz/pkg/core/value"
)

// Kind tags a Node. The shape of Children depends on the kind.
type Kind uint8

const (
	KindInvalid       Kind = iota
	KindNumber             // Value
	KindBoolean            // Value
	KindVariable           // Name
	KindAssignment         // [variable, expr]
	KindString             // Name, Value (raw string, never evaluated)
	KindStatementExpr      // [expr]
	KindAdd                // [left, right]
	KindSub                // [left, right]
	KindMul                // [left, right]
	KindDiv                // [left, right]
	KindExp                // [base, exponent]
	KindMod                // [left, right]
	KindGreater            // [left, right]
	KindLess               // [left, right]
	KindEqual              // [left, right]
	KindAnd                // [left, right]
	KindOr                 // [left, right]
	KindUMinus             // [operand]
	KindNot                // [operand]
	KindList               // [elements...]
	KindSort               // [variable]
	KindPrint              // [expr]
	KindIf                 // [cond, then] or [cond, then, else]
	KindWhile              // [cond, body]
	KindFor                // [cond, inner, outer]
	KindSnail              // []

	kindCount
)

var kindTags = [...]string{
	KindInvalid:       "invalid",
	KindNumber:        "number",
	KindBoolean:       "boolean",
	KindVariable:      "variable",
	KindAssignment:    "assignment",
	KindString:        "string",
	KindStatementExpr: "statement_expr",
	KindAdd:           "+",
	KindSub:           "-",
	KindMul:           "*",
	KindDiv:           "/",
	KindExp:           "exp",
	KindMod:           "mod",
	KindGreater:       "GR8R",
	KindLess:          "LES",
	KindEqual:         "COMPEQU",
	KindAnd:           "AND",
	KindOr:            "OR",
	KindUMinus:        "uminus",
	KindNot:           "NOT",
	KindList:          "list",
	KindSort:          "sort",
	KindPrint:         "print",
	KindIf:            "IF",
	KindWhile:         "WHILE",
	KindFor:           "FOR",
	KindSnail:         "SNAIL",
}

// String returns the node tag, e.g. "GR8R" or "statement_expr".
func (k Kind) String() string {
	if k < kindCount {
		return kindTags[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds lists every valid node kind.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindNumber; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Node is one element of the syntax tree. Nodes are not modified after the
// parser returns them.
type Node struct {
	Kind     Kind
	Children []*Node
	Value    value.Value // number/boolean literal, raw text for KindString
	Name     string      // identifier for KindVariable and KindString
	Line     int
}

// New builds an interior node.
func New(kind Kind, line int, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children, Line: line}
}

// Number builds an integer literal.
func Number(n int64) *Node {
	return &Node{Kind: KindNumber, Value: value.Int(n)}
}

// Boolean builds a boolean literal.
func Boolean(b bool) *Node {
	return &Node{Kind: KindBoolean, Value: value.Bool(b)}
}

// Variable builds a variable reference.
func Variable(name string) *Node {
	return &Node{Kind: KindVariable, Name: name}
}

// Assign builds `name = expr`.
func Assign(name string, expr *Node) *Node {
	return &Node{Kind: KindAssignment, Children: []*Node{Variable(name), expr}}
}

// StringAssign builds `name = "raw"`.
func StringAssign(name, raw string) *Node {
	return &Node{Kind: KindString, Name: name, Value: value.String(raw)}
}

func (n *Node) String() string {
	switch n.Kind {
	case KindNumber, KindBoolean:
		return n.Value.String()
	case KindVariable:
		return n.Name
	case KindString:
		return fmt.Sprintf("(string %s %q)", n.Name, n.Value.Str())
	}
	s := "(" + n.Kind.String()
	for _, c := range n.Children {
		s += " " + c.String()
	}
	return s + ")"
}
