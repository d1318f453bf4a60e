package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agenthands/snailz/pkg/repl"
	"github.com/agenthands/snailz/pkg/session"
)

func run(t *testing.T, input string, opts ...repl.Option) (string, *repl.REPL) {
	t.Helper()
	var out bytes.Buffer
	sess := session.New(session.WithOutput(&out))
	r := repl.New(sess, strings.NewReader(input), &out, append([]repl.Option{repl.WithColor(false)}, opts...)...)
	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out.String(), r
}

func TestRunScript(t *testing.T) {
	input := strings.Join([]string{
		"x = 2",
		"",
		"x ^ 3",
		"y",
		"x $",
		"1 +",
		"ThereneverisaslowerpaceThansnailscompetinginarace(x * 10)",
	}, "\n")

	got, r := run(t, input, repl.WithPrompt(""))
	want := strings.Join([]string{
		"8",
		"Variable 'y' not defined",
		"Illegal character '$'",
		"2",
		"Syntax error at EOF",
		"20",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if r.Failed != 2 {
		t.Errorf("Failed = %d, want 2", r.Failed)
	}
}

func TestPrompt(t *testing.T) {
	got, _ := run(t, "1 + 1\n")
	want := "snailz > 2\nsnailz > \n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNoEcho(t *testing.T) {
	got, _ := run(t, "1 + 1\nThereneverisaslowerpaceThansnailscompetinginarace(3)\n", repl.WithPrompt(""), repl.WithEcho(false))
	if got != "3\n" {
		t.Errorf("got %q", got)
	}
}
