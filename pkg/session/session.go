// Package session ties one variable store to one evaluator. Every driver
// (REPL, TUI, websocket) executes source through a Session.
package session

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/agenthands/snailz/pkg/compiler/lexer"
	"github.com/agenthands/snailz/pkg/compiler/parser"
	"github.com/agenthands/snailz/pkg/core/value"
	"github.com/agenthands/snailz/pkg/eval"
	"github.com/agenthands/snailz/pkg/logging"
	"github.com/agenthands/snailz/pkg/stdlib"
)

// Result is the outcome of one successful statement.
type Result struct {
	Value       value.Value
	Diagnostics []lexer.Diagnostic
}

// Session is not safe for concurrent use.
type Session struct {
	ID     uuid.UUID
	store  *eval.Store
	ev     *eval.Evaluator
	logger *log.Logger
}

type options struct {
	out    io.Writer
	sorter stdlib.Sorter
	logger *log.Logger
}

type Option func(*options)

// WithOutput sets where print and snail write. Default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

func WithSorter(s stdlib.Sorter) Option {
	return func(o *options) { o.sorter = s }
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func New(opts ...Option) *Session {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}

	id := uuid.New()
	logger := o.logger.With("session", id.String())

	evalOpts := []eval.Option{eval.WithLogger(logger)}
	if o.sorter != nil {
		evalOpts = append(evalOpts, eval.WithSorter(o.sorter))
	}

	return &Session{
		ID:     id,
		store:  eval.NewStore(),
		ev:     eval.New(o.out, evalOpts...),
		logger: logger,
	}
}

// Store exposes the session's variables.
func (s *Session) Store() *eval.Store {
	return s.store
}

// SetOutput redirects print and snail output for subsequent statements.
func (s *Session) SetOutput(w io.Writer) {
	s.ev.SetOutput(w)
}

// Exec parses and evaluates one statement. An empty line is a no-op.
// Lexical diagnostics are returned in the Result and never fail the
// statement; syntax errors (*parser.SyntaxError) and runtime faults
// (*eval.Fault) are returned unwrapped.
func (s *Session) Exec(line string) (Result, error) {
	if line == "" {
		return Result{}, nil
	}

	node, diags, err := parser.ParseString(line)
	for _, d := range diags {
		s.logger.Warn("lexical error", "diagnostic", d.String(), "line", d.Line)
	}
	res := Result{Diagnostics: diags}
	if err != nil {
		s.logger.Debug("syntax error", "err", err)
		return res, err
	}

	v, err := s.ev.Evaluate(node, s.store)
	if err != nil {
		s.logger.Debug("statement failed", "err", err, "node", node.Kind)
		return res, err
	}
	s.logger.Debug("statement done", "node", node.Kind, "vars", s.store.Len())
	res.Value = v
	return res, nil
}
