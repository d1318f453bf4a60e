package ast_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/agenthands/snailz/pkg/compiler/ast"
)

func TestKindTags(t *testing.T) {
	for _, k := range ast.Kinds() {
		if strings.HasPrefix(k.String(), "Kind(") || k.String() == "invalid" {
			t.Errorf("kind %d has no tag", k)
		}
	}
	if ast.KindGreater.String() != "GR8R" || ast.KindStatementExpr.String() != "statement_expr" {
		t.Errorf("unexpected tags %q %q", ast.KindGreater, ast.KindStatementExpr)
	}
}

func TestNodeString(t *testing.T) {
	n := ast.New(ast.KindAdd, 1, ast.Number(1), ast.New(ast.KindMul, 1, ast.Number(2), ast.Variable("x")))
	if got := n.String(); got != "(+ 1 (* 2 x))" {
		t.Errorf("String() = %q", got)
	}
	if got := ast.StringAssign("s", `a\"b`).String(); got != `(string s "a\\\"b")` {
		t.Errorf("String() = %q", got)
	}
}

func TestDump(t *testing.T) {
	tree := ast.New(ast.KindIf, 1,
		ast.New(ast.KindGreater, 1, ast.Number(1), ast.Number(0)),
		ast.Assign("x", ast.Boolean(true)),
		ast.StringAssign("s", `hi`),
	)

	out, err := ast.Dump(tree)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	var decoded struct {
		Type     string           `yaml:"type"`
		Children []map[string]any `yaml:"children"`
	}
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("dump is not valid YAML: %v\n%s", err, out)
	}
	if decoded.Type != "IF" || len(decoded.Children) != 3 {
		t.Fatalf("unexpected dump:\n%s", out)
	}
	if decoded.Children[0]["type"] != "GR8R" || decoded.Children[1]["type"] != "assignment" {
		t.Errorf("unexpected child tags:\n%s", out)
	}

	str := decoded.Children[2]
	if str["type"] != "string" {
		t.Fatalf("third child is %v:\n%s", str["type"], out)
	}
	if diff := cmp.Diff([]any{"s", "hi"}, str["children"]); diff != "" {
		t.Errorf("string node children mismatch (-want +got):\n%s", diff)
	}
	if _, ok := str["value"]; ok {
		t.Errorf("string node carries a value key:\n%s", out)
	}
}
