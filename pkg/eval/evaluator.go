package eval

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/agenthands/snailz/pkg/compiler/ast"
	"github.com/agenthands/snailz/pkg/core/value"
	"github.com/agenthands/snailz/pkg/logging"
	"github.com/agenthands/snailz/pkg/stdlib"
)

// Evaluator walks a tree against a Store. print and snail write to the
// evaluator's output.
type Evaluator struct {
	out    io.Writer
	sorter stdlib.Sorter
	logger *log.Logger
}

type Option func(*Evaluator)

// WithSorter replaces the default shuffle-until-sorted strategy.
func WithSorter(s stdlib.Sorter) Option {
	return func(e *Evaluator) { e.sorter = s }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

func New(out io.Writer, opts ...Option) *Evaluator {
	e := &Evaluator{out: out}
	for _, opt := range opts {
		opt(e)
	}
	if e.sorter == nil {
		e.sorter = stdlib.NewShuffleSorter(0)
	}
	if e.logger == nil {
		e.logger = logging.Discard()
	}
	return e
}

// SetOutput redirects print and snail output.
func (e *Evaluator) SetOutput(w io.Writer) {
	e.out = w
}

type binaryFunc func(a, b value.Value) (value.Value, error)

var arithmetic = map[ast.Kind]binaryFunc{
	ast.KindAdd: value.Add,
	ast.KindSub: value.Sub,
	ast.KindMul: value.Mul,
	ast.KindDiv: value.Div,
	ast.KindExp: value.Pow,
	ast.KindMod: value.Mod,
}

var opSymbols = map[ast.Kind]string{
	ast.KindAdd:     "+",
	ast.KindSub:     "-",
	ast.KindMul:     "*",
	ast.KindDiv:     "/",
	ast.KindExp:     "^",
	ast.KindMod:     "%",
	ast.KindGreater: ">",
	ast.KindLess:    "<",
	ast.KindUMinus:  "-",
}

// Evaluate interprets node. Assignments made before a fault stay in the
// store.
func (e *Evaluator) Evaluate(node *ast.Node, store *Store) (value.Value, error) {
	switch node.Kind {
	case ast.KindNumber, ast.KindBoolean:
		return node.Value, nil

	case ast.KindVariable:
		v, ok := store.Get(node.Name)
		if !ok {
			return value.None, undefined(node.Name, node.Line)
		}
		return v, nil

	case ast.KindAssignment:
		v, err := e.Evaluate(node.Children[1], store)
		if err != nil {
			return value.None, err
		}
		store.Set(node.Children[0].Name, v)
		return value.None, nil

	case ast.KindString:
		e.logger.Debug("string assignment", "name", node.Name, "raw", node.Value.Str())
		store.Set(node.Name, node.Value)
		return value.None, nil

	case ast.KindStatementExpr:
		return e.Evaluate(node.Children[0], store)

	case ast.KindAdd, ast.KindSub, ast.KindMul, ast.KindDiv, ast.KindExp, ast.KindMod:
		left, right, err := e.operands(node, store)
		if err != nil {
			return value.None, err
		}
		v, err := arithmetic[node.Kind](left, right)
		if err != nil {
			return value.None, opFault(opSymbols[node.Kind], node.Line, err)
		}
		return v, nil

	case ast.KindGreater, ast.KindLess:
		left, right, err := e.operands(node, store)
		if err != nil {
			return value.None, err
		}
		c, err := value.Compare(left, right)
		if err != nil {
			return value.None, opFault(opSymbols[node.Kind], node.Line, err)
		}
		if node.Kind == ast.KindGreater {
			return value.Bool(c > 0), nil
		}
		return value.Bool(c < 0), nil

	case ast.KindEqual:
		left, right, err := e.operands(node, store)
		if err != nil {
			return value.None, err
		}
		return value.Bool(value.Equal(left, right)), nil

	case ast.KindAnd:
		// Both sides always run.
		left, right, err := e.operands(node, store)
		if err != nil {
			return value.None, err
		}
		if !value.Truthy(left) {
			return left, nil
		}
		return right, nil

	case ast.KindOr:
		left, right, err := e.operands(node, store)
		if err != nil {
			return value.None, err
		}
		if value.Truthy(left) {
			return left, nil
		}
		return right, nil

	case ast.KindNot:
		v, err := e.Evaluate(node.Children[0], store)
		if err != nil {
			return value.None, err
		}
		return value.Bool(!value.Truthy(v)), nil

	case ast.KindUMinus:
		v, err := e.Evaluate(node.Children[0], store)
		if err != nil {
			return value.None, err
		}
		neg, err := value.Neg(v)
		if err != nil {
			return value.None, opFault(opSymbols[node.Kind], node.Line, err)
		}
		return neg, nil

	case ast.KindList:
		items := make([]value.Value, 0, len(node.Children))
		for _, child := range node.Children {
			v, err := e.Evaluate(child, store)
			if err != nil {
				return value.None, err
			}
			items = append(items, v)
		}
		return value.List(items), nil

	case ast.KindSort:
		return e.evalSort(node, store)

	case ast.KindPrint:
		v, err := e.Evaluate(node.Children[0], store)
		if err != nil {
			return value.None, err
		}
		if err := stdlib.Print(e.out, v); err != nil {
			return value.None, err
		}
		return value.None, nil

	case ast.KindIf:
		cond, err := e.Evaluate(node.Children[0], store)
		if err != nil {
			return value.None, err
		}
		if value.Truthy(cond) {
			return e.Evaluate(node.Children[1], store)
		}
		if len(node.Children) > 2 {
			return e.Evaluate(node.Children[2], store)
		}
		return value.None, nil

	case ast.KindWhile:
		for {
			cond, err := e.Evaluate(node.Children[0], store)
			if err != nil {
				return value.None, err
			}
			if !value.Truthy(cond) {
				return value.None, nil
			}
			if _, err := e.Evaluate(node.Children[1], store); err != nil {
				return value.None, err
			}
		}

	case ast.KindFor:
		// Not a C-style loop: inner and outer both run on every pass.
		for {
			cond, err := e.Evaluate(node.Children[0], store)
			if err != nil {
				return value.None, err
			}
			if !value.Truthy(cond) {
				return value.None, nil
			}
			if _, err := e.Evaluate(node.Children[1], store); err != nil {
				return value.None, err
			}
			if _, err := e.Evaluate(node.Children[2], store); err != nil {
				return value.None, err
			}
		}

	case ast.KindSnail:
		if err := stdlib.Snail(e.out); err != nil {
			return value.None, err
		}
		return value.None, nil
	}

	return value.None, internal(node.Kind.String(), node.Line, "unknown node type %v", node.Kind)
}

// operands evaluates the left child, then the right one.
func (e *Evaluator) operands(node *ast.Node, store *Store) (value.Value, value.Value, error) {
	left, err := e.Evaluate(node.Children[0], store)
	if err != nil {
		return value.None, value.None, err
	}
	right, err := e.Evaluate(node.Children[1], store)
	if err != nil {
		return value.None, value.None, err
	}
	return left, right, nil
}

func (e *Evaluator) evalSort(node *ast.Node, store *Store) (value.Value, error) {
	target := node.Children[0]
	v, ok := store.Get(target.Name)
	if !ok {
		return value.None, undefined(target.Name, node.Line)
	}
	if v.Type != value.TypeList {
		return value.None, mismatch(target.Name, "sort", node.Line, "'%s' is %s, not a list", target.Name, v.Type)
	}

	sorted, err := e.sorter.Sort(v.Items())
	if err != nil {
		return value.None, opFault("sort", node.Line, err)
	}
	e.logger.Debug("sorted list", "name", target.Name, "len", len(sorted))
	return value.List(sorted), nil
}
