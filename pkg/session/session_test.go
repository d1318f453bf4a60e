package session_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agenthands/snailz/pkg/compiler/lexer"
	"github.com/agenthands/snailz/pkg/compiler/parser"
	"github.com/agenthands/snailz/pkg/eval"
	"github.com/agenthands/snailz/pkg/session"
	"github.com/agenthands/snailz/pkg/stdlib"
)

func TestExec(t *testing.T) {
	var out bytes.Buffer
	s := session.New(session.WithOutput(&out))

	if _, err := s.Exec("x = 5"); err != nil {
		t.Fatal(err)
	}
	res, err := s.Exec("x * 2")
	if err != nil {
		t.Fatal(err)
	}
	if res.Value.Int() != 10 {
		t.Errorf("x * 2 = %v", res.Value)
	}

	if _, err := s.Exec("ThereneverisaslowerpaceThansnailscompetinginarace(x)"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "5\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestExecEmptyLine(t *testing.T) {
	s := session.New()
	res, err := s.Exec("")
	if err != nil || !res.Value.IsVoid() {
		t.Errorf("Exec(\"\") = %v, %v", res.Value, err)
	}
}

func TestExecErrors(t *testing.T) {
	s := session.New()
	s.Exec("keep = 1")

	_, err := s.Exec("1 + ")
	var syn *parser.SyntaxError
	if !errors.As(err, &syn) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if err.Error() != "Syntax error at EOF" {
		t.Errorf("message = %q", err.Error())
	}

	if _, err := s.Exec("missing"); !errors.Is(err, eval.ErrUndefinedVariable) {
		t.Errorf("expected ErrUndefinedVariable, got %v", err)
	}

	if diff := cmp.Diff([]string{"keep"}, s.Store().Names()); diff != "" {
		t.Errorf("store changed (-want +got):\n%s", diff)
	}
}

func TestExecDiagnostics(t *testing.T) {
	s := session.New()
	res, err := s.Exec("y = 1 $ + 1")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != lexer.IllegalCharacter {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	if v, _ := s.Store().Get("y"); v.Int() != 2 {
		t.Errorf("y = %v, want 2", v)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	a := session.New()
	b := session.New()
	if a.ID == b.ID {
		t.Fatal("sessions share an ID")
	}

	a.Exec("shared = 1")
	if _, err := b.Exec("shared"); !errors.Is(err, eval.ErrUndefinedVariable) {
		t.Errorf("session b sees a's variable: %v", err)
	}
}

func TestWithSorter(t *testing.T) {
	s := session.New(session.WithSorter(stdlib.DeterministicSorter{}))
	s.Exec("l = [3, 1, 2]")
	res, err := s.Exec(">>(l)")
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Value.String(); got != "[1, 2, 3]" {
		t.Errorf("sort = %s", got)
	}
}
