// Package repl reads Snailz statements line by line and executes them in a
// session, reporting values, diagnostics and errors as it goes.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/agenthands/snailz/pkg/session"
)

const DefaultPrompt = "snailz > "

// REPL drives one session from a reader. A failed statement is reported and
// the loop continues with the next line.
type REPL struct {
	sess   *session.Session
	in     io.Reader
	out    io.Writer
	prompt string
	echo   bool
	styles styles

	// Failed counts statements that ended in a syntax error or fault.
	Failed int
}

type Option func(*REPL)

// WithPrompt sets the prompt. An empty prompt suppresses it, which is how
// scripts are run.
func WithPrompt(p string) Option {
	return func(r *REPL) { r.prompt = p }
}

func WithColor(color bool) Option {
	return func(r *REPL) { r.styles = newStyles(r.out, color) }
}

// WithEcho controls whether non-None results are printed. Default true.
func WithEcho(echo bool) Option {
	return func(r *REPL) { r.echo = echo }
}

func New(sess *session.Session, in io.Reader, out io.Writer, opts ...Option) *REPL {
	r := &REPL{
		sess:   sess,
		in:     in,
		out:    out,
		prompt: DefaultPrompt,
		echo:   true,
		styles: newStyles(out, true),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loops until in is exhausted. It only returns an error when reading
// input fails.
func (r *REPL) Run() error {
	scanner := bufio.NewScanner(r.in)
	for {
		if r.prompt != "" {
			fmt.Fprint(r.out, r.styles.prompt.Render(r.prompt))
		}
		if !scanner.Scan() {
			if r.prompt != "" {
				fmt.Fprintln(r.out)
			}
			return scanner.Err()
		}
		r.Line(scanner.Text())
	}
}

// Line executes one line and writes its outcome.
func (r *REPL) Line(line string) {
	if line == "" {
		return
	}
	res, err := r.sess.Exec(line)
	for _, d := range res.Diagnostics {
		fmt.Fprintln(r.out, r.styles.warning.Render(d.String()))
	}
	if err != nil {
		r.Failed++
		fmt.Fprintln(r.out, r.styles.err.Render(err.Error()))
		return
	}
	if r.echo && !res.Value.IsVoid() {
		fmt.Fprintln(r.out, r.styles.value.Render(res.Value.String()))
	}
}
