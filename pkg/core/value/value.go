package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type represents the tag in the Value tagged union.
type Type uint8

const (
	TypeVoid Type = iota
	TypeInt
	TypeBool
	TypeFloat
	TypeString
	TypeList
)

func (t Type) String() string {
	switch t {
	case TypeVoid:
		return "none"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Value is a tagged union.
type Value struct {
	Type   Type
	Data   uint64 // int64, float64 bits or 0/1, depending on Type
	Opaque any    // string or []Value
}

// None is the unit value returned by statements.
var None = Value{}

// Int wraps an int64.
func Int(i int64) Value {
	return Value{Type: TypeInt, Data: uint64(i)}
}

// Float wraps a float64.
func Float(f float64) Value {
	return Value{Type: TypeFloat, Data: math.Float64bits(f)}
}

// Bool wraps a bool.
func Bool(b bool) Value {
	if b {
		return Value{Type: TypeBool, Data: 1}
	}
	return Value{Type: TypeBool}
}

// String wraps raw string text. No unescaping is performed.
func String(s string) Value {
	return Value{Type: TypeString, Opaque: s}
}

// List wraps an ordered sequence. The slice is not copied.
func List(items []Value) Value {
	return Value{Type: TypeList, Opaque: items}
}

// Int returns the value as int64.
func (v Value) Int() int64 {
	return int64(v.Data)
}

// Float returns the value as float64, widening integers.
func (v Value) Float() float64 {
	if v.Type == TypeFloat {
		return math.Float64frombits(v.Data)
	}
	return float64(int64(v.Data))
}

// Bool returns the boolean payload.
func (v Value) Bool() bool {
	return v.Data != 0
}

// Str returns the string payload, or "" for other types.
func (v Value) Str() string {
	s, _ := v.Opaque.(string)
	return s
}

// Items returns the list payload, or nil for other types.
func (v Value) Items() []Value {
	l, _ := v.Opaque.([]Value)
	return l
}

// IsVoid reports whether v is the unit value.
func (v Value) IsVoid() bool {
	return v.Type == TypeVoid
}

// IsNumeric reports whether v is an integer or a float.
func (v Value) IsNumeric() bool {
	return v.Type == TypeInt || v.Type == TypeFloat
}

// String returns the textual form used by print.
func (v Value) String() string {
	return v.formatRecursive(0)
}

func (v Value) formatRecursive(depth int) string {
	switch v.Type {
	case TypeString:
		if depth > 0 {
			return `"` + v.Str() + `"`
		}
		return v.Str()
	case TypeInt:
		return strconv.FormatInt(v.Int(), 10)
	case TypeFloat:
		return formatFloat(v.Float())
	case TypeBool:
		if v.Data != 0 {
			return "True"
		}
		return "False"
	case TypeList:
		items := v.Items()
		parts := make([]string, len(items))
		for i, el := range items {
			parts[i] = el.formatRecursive(depth + 1)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeVoid:
		return "None"
	default:
		return fmt.Sprintf("%v", v.Data)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	// Shortest round-trip digits; positional while the decimal exponent is
	// in [-4, 16), scientific outside it.
	s := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return s
	}
	s = strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
