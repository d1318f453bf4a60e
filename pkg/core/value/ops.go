package value

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrDivisionByZero = errors.New("division by zero")
)

func mismatch(op string, a, b Value) error {
	return fmt.Errorf("%w: unsupported operand types for %s: %s and %s", ErrTypeMismatch, op, a.Type, b.Type)
}

// Truthy reports whether v counts as true in a condition.
func Truthy(v Value) bool {
	switch v.Type {
	case TypeVoid:
		return false
	case TypeBool, TypeInt:
		return v.Data != 0
	case TypeFloat:
		return v.Float() != 0
	case TypeString:
		return v.Str() != ""
	case TypeList:
		return len(v.Items()) > 0
	}
	return false
}

// Add sums numbers and concatenates two strings or two lists.
func Add(a, b Value) (Value, error) {
	switch {
	case a.Type == TypeInt && b.Type == TypeInt:
		return Int(a.Int() + b.Int()), nil
	case a.IsNumeric() && b.IsNumeric():
		return Float(a.Float() + b.Float()), nil
	case a.Type == TypeString && b.Type == TypeString:
		return String(a.Str() + b.Str()), nil
	case a.Type == TypeList && b.Type == TypeList:
		out := make([]Value, 0, len(a.Items())+len(b.Items()))
		out = append(out, a.Items()...)
		return List(append(out, b.Items()...)), nil
	}
	return None, mismatch("+", a, b)
}

func Sub(a, b Value) (Value, error) {
	switch {
	case a.Type == TypeInt && b.Type == TypeInt:
		return Int(a.Int() - b.Int()), nil
	case a.IsNumeric() && b.IsNumeric():
		return Float(a.Float() - b.Float()), nil
	}
	return None, mismatch("-", a, b)
}

func Mul(a, b Value) (Value, error) {
	switch {
	case a.Type == TypeInt && b.Type == TypeInt:
		return Int(a.Int() * b.Int()), nil
	case a.IsNumeric() && b.IsNumeric():
		return Float(a.Float() * b.Float()), nil
	}
	return None, mismatch("*", a, b)
}

// Div is true division: the result is always a float.
func Div(a, b Value) (Value, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return None, mismatch("/", a, b)
	}
	if b.Float() == 0 {
		return None, ErrDivisionByZero
	}
	return Float(a.Float() / b.Float()), nil
}

// Mod is floored modulo: a non-zero result has the sign of the divisor.
func Mod(a, b Value) (Value, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return None, mismatch("%", a, b)
	}
	if b.Float() == 0 {
		return None, ErrDivisionByZero
	}
	if a.Type == TypeInt && b.Type == TypeInt {
		x, y := a.Int(), b.Int()
		r := x % y
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return Int(r), nil
	}
	x, y := a.Float(), b.Float()
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return Float(r), nil
}

// Pow raises base to exp. Integer operands with a non-negative exponent stay
// integral; everything else is computed in floating point.
func Pow(base, exp Value) (Value, error) {
	if !base.IsNumeric() || !exp.IsNumeric() {
		return None, mismatch("^", base, exp)
	}
	if base.Float() == 0 && exp.Float() < 0 {
		return None, ErrDivisionByZero
	}
	if base.Type == TypeInt && exp.Type == TypeInt && exp.Int() >= 0 {
		result, b, e := int64(1), base.Int(), exp.Int()
		for e > 0 {
			if e&1 == 1 {
				result *= b
			}
			b *= b
			e >>= 1
		}
		return Int(result), nil
	}
	return Float(math.Pow(base.Float(), exp.Float())), nil
}

// Neg is unary minus.
func Neg(v Value) (Value, error) {
	switch v.Type {
	case TypeInt:
		return Int(-v.Int()), nil
	case TypeFloat:
		return Float(-v.Float()), nil
	}
	return None, fmt.Errorf("%w: bad operand type for unary -: %s", ErrTypeMismatch, v.Type)
}

// Compare orders a and b, returning -1, 0 or +1. Numbers, booleans, strings
// and lists (lexicographically) are ordered among themselves; any other pair
// is a type mismatch.
func Compare(a, b Value) (int, error) {
	switch {
	case a.Type == TypeInt && b.Type == TypeInt:
		return cmp3(a.Int() < b.Int(), a.Int() > b.Int()), nil
	case a.IsNumeric() && b.IsNumeric():
		return cmp3(a.Float() < b.Float(), a.Float() > b.Float()), nil
	case a.Type == TypeBool && b.Type == TypeBool:
		return cmp3(a.Data < b.Data, a.Data > b.Data), nil
	case a.Type == TypeString && b.Type == TypeString:
		return strings.Compare(a.Str(), b.Str()), nil
	case a.Type == TypeList && b.Type == TypeList:
		x, y := a.Items(), b.Items()
		for i := 0; i < len(x) && i < len(y); i++ {
			if Equal(x[i], y[i]) {
				continue
			}
			return Compare(x[i], y[i])
		}
		return cmp3(len(x) < len(y), len(x) > len(y)), nil
	}
	return 0, fmt.Errorf("%w: cannot order %s and %s", ErrTypeMismatch, a.Type, b.Type)
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}

// Equal reports structural equality. Values of unrelated types are unequal.
func Equal(a, b Value) bool {
	switch {
	case a.Type == TypeInt && b.Type == TypeInt:
		return a.Data == b.Data
	case a.IsNumeric() && b.IsNumeric():
		return a.Float() == b.Float()
	case a.Type != b.Type:
		return false
	}
	switch a.Type {
	case TypeVoid:
		return true
	case TypeBool:
		return a.Data == b.Data
	case TypeString:
		return a.Str() == b.Str()
	case TypeList:
		x, y := a.Items(), b.Items()
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	return false
}
