package parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agenthands/snailz/pkg/compiler/ast"
	"github.com/agenthands/snailz/pkg/compiler/lexer"
	"github.com/agenthands/snailz/pkg/compiler/parser"
)

func parse(t *testing.T, src string) *ast.Node {
	t.Helper()
	node, _, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString(%q) error = %v", src, err)
	}
	return node
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(statement_expr (+ 1 (* 2 3)))"},
		{"1 - 2 - 3", "(statement_expr (- (- 1 2) 3))"},
		{"2 ^ 3 ^ 2", "(statement_expr (exp 2 (exp 3 2)))"},
		{"2 ^ 3 * 2", "(statement_expr (exp 2 (* 3 2)))"},
		{"2 * 3 ^ 2", "(statement_expr (exp (* 2 3) 2))"},
		{"7 % 3 * 2", "(statement_expr (* (mod 7 3) 2))"},
		{"2 * 7 % 3", "(statement_expr (* 2 (mod 7 3)))"},
		{"-2 ^ 2", "(statement_expr (exp (uminus 2) 2))"},
		{"-a * b", "(statement_expr (* (uminus a) b))"},
		{"a - -b", "(statement_expr (- a (uminus b)))"},
		{"!a & b", "(statement_expr (AND (NOT a) b))"},
		{"!a + b", "(statement_expr (NOT (+ a b)))"},
		{"a * !b + c", "(statement_expr (* a (NOT (+ b c))))"},
		{"a | b & c", "(statement_expr (AND (OR a b) c))"},
		{"a > b & c", "(statement_expr (GR8R a (AND b c)))"},
		{"!a < b", "(statement_expr (LES (NOT a) b))"},
		{"(1 + 2) * 3", "(statement_expr (* (+ 1 2) 3))"},
		{"x == 1 + 1", "(statement_expr (COMPEQU x (+ 1 1)))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := parse(t, tt.src).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"assignment", "x = 5", "(assignment x 5)"},
		{"string assignment", `s = "hi there"`, `(string s "hi there")`},
		{"if", "if (1 > 0) x = 1", "(IF (GR8R 1 0) (assignment x 1))"},
		{"if else", "if (1 > 0) x = 1 else x = 2", "(IF (GR8R 1 0) (assignment x 1) (assignment x 2))"},
		{"dangling else", "if a if b x = 1 else x = 2", "(IF a (IF b (assignment x 1) (assignment x 2)))"},
		{"while", "while (i < 3) i = i + 1", "(WHILE (LES i 3) (assignment i (+ i 1)))"},
		{"for", "for (i < 3 i = i + 1) x = x + i", "(FOR (LES i 3) (assignment i (+ i 1)) (assignment x (+ x i)))"},
		{"print", lexer.PrintKeyword + "(1 + 1)", "(print (+ 1 1))"},
		{"snail", "snail", "(SNAIL)"},
		{"list", "[1, 2 + 3, x]", "(statement_expr (list 1 (+ 2 3) x))"},
		{"single element list", "[7]", "(statement_expr (list 7))"},
		{"empty list", "[]", "(statement_expr (list))"},
		{"sort", "y = >>(l)", "(assignment y (sort l))"},
		{"booleans", "True | False", "(statement_expr (OR True False))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parse(t, tt.src).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestForChildOrder(t *testing.T) {
	node := parse(t, "for (c inner = 1) outer = 2")
	if node.Kind != ast.KindFor || len(node.Children) != 3 {
		t.Fatalf("expected a FOR node with 3 children, got %s", node)
	}
	got := []string{node.Children[0].String(), node.Children[1].Children[0].Name, node.Children[2].Children[0].Name}
	if diff := cmp.Diff([]string{"c", "inner", "outer"}, got); diff != "" {
		t.Errorf("child order mismatch (-want +got):\n%s", diff)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"empty input", "", "Syntax error at EOF"},
		{"dangling operator", "1 +", "Syntax error at EOF"},
		{"chained comparison", "1 < 2 < 3", "Syntax error at '<'"},
		{"mixed chained comparison", "a == b > c", "Syntax error at '>'"},
		{"trailing tokens", "x = 1 2", "Syntax error at '2'"},
		{"string in expression", `x = 1 + "a"`, `Syntax error at '"a"'`},
		{"while needs parens", "while x y = 1", "Syntax error at 'x'"},
		{"unclosed list", "[1, 2", "Syntax error at EOF"},
		{"sort of literal", ">>(5)", "Syntax error at '5'"},
		{"print without parens", lexer.PrintKeyword + " 1", "Syntax error at '1'"},
		{"else without if", "else", "Syntax error at 'else'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, _, err := parser.ParseString(tt.src)
			if err == nil {
				t.Fatalf("expected syntax error, got %s", node)
			}
			if node != nil {
				t.Errorf("expected no partial tree, got %s", node)
			}
			var synErr *parser.SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if err.Error() != tt.msg {
				t.Errorf("message = %q, want %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestParseStringKeepsDiagnostics(t *testing.T) {
	node, diags, err := parser.ParseString("x = 5 $")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.String() != "(assignment x 5)" {
		t.Errorf("unexpected tree %s", node)
	}
	if len(diags) != 1 {
		t.Errorf("expected the illegal character to be reported, got %v", diags)
	}
}
