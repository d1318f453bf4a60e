package eval

import (
	"errors"
	"fmt"

	"github.com/agenthands/snailz/pkg/core/value"
)

var (
	ErrUndefinedVariable = errors.New("eval: undefined variable")
	ErrDivisionByZero    = value.ErrDivisionByZero
	ErrTypeMismatch      = value.ErrTypeMismatch
	ErrInternal          = errors.New("eval: internal error")
)

// FaultKind classifies a runtime fault.
type FaultKind uint8

const (
	FaultUndefinedVariable FaultKind = iota + 1
	FaultDivisionByZero
	FaultTypeMismatch
	FaultInternal
)

func (k FaultKind) String() string {
	switch k {
	case FaultUndefinedVariable:
		return "UndefinedVariable"
	case FaultDivisionByZero:
		return "DivisionByZero"
	case FaultTypeMismatch:
		return "TypeMismatch"
	case FaultInternal:
		return "Internal"
	default:
		return fmt.Sprintf("FaultKind(%d)", uint8(k))
	}
}

// Fault aborts the statement being evaluated. It unwraps to one of the
// Err* sentinels so callers can use errors.Is.
type Fault struct {
	Kind FaultKind
	Name string // offending variable, if any
	Op   string // offending operator or node tag, if any
	Line int
	Err  error
}

func (f *Fault) Error() string {
	switch f.Kind {
	case FaultUndefinedVariable:
		return fmt.Sprintf("Variable '%s' not defined", f.Name)
	case FaultDivisionByZero:
		return fmt.Sprintf("%s: division by zero in '%s'", f.Kind, f.Op)
	default:
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	}
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func undefined(name string, line int) *Fault {
	return &Fault{Kind: FaultUndefinedVariable, Name: name, Line: line, Err: ErrUndefinedVariable}
}

// opFault classifies an error returned by a value operator.
func opFault(op string, line int, err error) *Fault {
	f := &Fault{Kind: FaultInternal, Op: op, Line: line, Err: err}
	switch {
	case errors.Is(err, ErrDivisionByZero):
		f.Kind = FaultDivisionByZero
	case errors.Is(err, ErrTypeMismatch):
		f.Kind = FaultTypeMismatch
	}
	return f
}

func mismatch(name, op string, line int, format string, args ...any) *Fault {
	return &Fault{
		Kind: FaultTypeMismatch,
		Name: name,
		Op:   op,
		Line: line,
		Err:  fmt.Errorf("%w: "+format, append([]any{ErrTypeMismatch}, args...)...),
	}
}

func internal(op string, line int, format string, args ...any) *Fault {
	return &Fault{
		Kind: FaultInternal,
		Op:   op,
		Line: line,
		Err:  fmt.Errorf("%w: "+format, append([]any{ErrInternal}, args...)...),
	}
}
