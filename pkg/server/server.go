// Package server exposes sessions over a websocket. Each connection gets its
// own session, so connections never see each other's variables.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/agenthands/snailz/pkg/compiler/parser"
	"github.com/agenthands/snailz/pkg/eval"
	"github.com/agenthands/snailz/pkg/session"
)

// Error codes sent in error payloads.
const (
	CodeSyntaxError       = "syntax_error"
	CodeUndefinedVariable = "undefined_variable"
	CodeDivisionByZero    = "division_by_zero"
	CodeTypeMismatch      = "type_mismatch"
	CodeInternal          = "internal"
	CodeInvalidMessage    = "invalid_message"
	CodeUnknownType       = "unknown_type"
)

// MaxMessageSize caps one client message. Larger messages close the
// connection with CloseMessageTooBig.
const MaxMessageSize = 64 << 10

// Message is a client request.
type Message struct {
	Type   string `json:"type"` // "exec", "ping"
	Source string `json:"source,omitempty"`
}

// Response is a server reply.
type Response struct {
	Type    string `json:"type"` // "result", "error", "pong"
	Payload any    `json:"payload,omitempty"`
}

type ResultPayload struct {
	Value       string   `json:"value"`
	Output      string   `json:"output"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

type ErrorPayload struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Output      string   `json:"output,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// SessionFactory creates the session for a new connection.
type SessionFactory func() (*session.Session, error)

type Server struct {
	addr        string
	readTimeout time.Duration
	newSession  SessionFactory
	logger      *log.Logger
	upgrader    websocket.Upgrader
}

func New(addr string, readTimeout time.Duration, newSession SessionFactory, logger *log.Logger) *Server {
	if readTimeout <= 0 {
		readTimeout = 120 * time.Second
	}
	return &Server{
		addr:        addr,
		readTimeout: readTimeout,
		newSession:  newSession,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler routes /ws to the websocket endpoint and /healthz to a liveness
// check.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// ServeHTTP upgrades the connection and serves it on the calling goroutine.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}
	s.handleConnection(conn)
}

func (s *Server) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	sess, err := s.newSession()
	if err != nil {
		s.logger.Error("cannot create session", "err", err)
		s.send(conn, s.logger, errorResponse(CodeInternal, err.Error(), "", nil))
		return
	}
	logger := s.logger.With("session", sess.ID.String(), "remote", conn.RemoteAddr().String())
	logger.Info("connection established")

	var out bytes.Buffer
	sess.SetOutput(&out)
	conn.SetReadLimit(MaxMessageSize)

	for {
		conn.SetReadDeadline(time.Now().Add(s.readTimeout))

		_, data, err := conn.ReadMessage()
		if err != nil {
			if errors.Is(err, websocket.ErrReadLimit) {
				logger.Warn("message too large", "limit", MaxMessageSize)
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Error("websocket read error", "err", err)
			} else {
				logger.Info("connection closed")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.send(conn, logger, errorResponse(CodeInvalidMessage, "invalid JSON message", "", nil))
			continue
		}

		switch msg.Type {
		case "ping":
			s.send(conn, logger, Response{Type: "pong"})
		case "exec":
			out.Reset()
			s.send(conn, logger, execute(sess, msg.Source, &out))
		default:
			s.send(conn, logger, errorResponse(CodeUnknownType, "unknown message type: "+msg.Type, "", nil))
		}
	}
}

// execute runs every non-empty line of source, stopping at the first
// failure. The reported value is the last non-None one.
func execute(sess *session.Session, source string, out *bytes.Buffer) Response {
	var (
		last  string
		diags []string
	)
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSuffix(line, "\r")
		res, err := sess.Exec(line)
		for _, d := range res.Diagnostics {
			diags = append(diags, d.String())
		}
		if err != nil {
			return errorResponse(errorCode(err), err.Error(), out.String(), diags)
		}
		if !res.Value.IsVoid() {
			last = res.Value.String()
		}
	}
	return Response{
		Type:    "result",
		Payload: ResultPayload{Value: last, Output: out.String(), Diagnostics: diags},
	}
}

func errorCode(err error) string {
	var syn *parser.SyntaxError
	switch {
	case errors.As(err, &syn):
		return CodeSyntaxError
	case errors.Is(err, eval.ErrUndefinedVariable):
		return CodeUndefinedVariable
	case errors.Is(err, eval.ErrDivisionByZero):
		return CodeDivisionByZero
	case errors.Is(err, eval.ErrTypeMismatch):
		return CodeTypeMismatch
	default:
		return CodeInternal
	}
}

func errorResponse(code, message, output string, diags []string) Response {
	return Response{
		Type: "error",
		Payload: ErrorPayload{
			Code:        code,
			Message:     message,
			Output:      output,
			Diagnostics: diags,
		},
	}
}

func (s *Server) send(conn *websocket.Conn, logger *log.Logger, resp Response) {
	if err := conn.WriteJSON(resp); err != nil {
		logger.Error("websocket send error", "err", err)
	}
}
