package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/agenthands/snailz/pkg/core/value"
)

// Scanner performs lexical analysis on Snailz source.
type Scanner struct {
	source string
	cursor int
	line   int
	diags  []Diagnostic
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
	}
}

// Reset re-initializes the scanner with new source, dropping diagnostics.
func (s *Scanner) Reset(source string) {
	s.source = source
	s.cursor = 0
	s.line = 1
	s.diags = s.diags[:0]
}

// Diagnostics returns the lexical errors recovered from so far.
func (s *Scanner) Diagnostics() []Diagnostic {
	return s.diags
}

// Tokenize scans the whole input. The EOF token is not included.
func Tokenize(source string) ([]Token, []Diagnostic) {
	s := NewScanner(source)
	var toks []Token
	for {
		tok := s.Next()
		if tok.Kind == KindEOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks, s.Diagnostics()
}

// Next returns the next token from the source. Illegal characters are
// recorded as diagnostics and skipped one character at a time.
func (s *Scanner) Next() Token {
	for {
		s.skipWhitespace()

		if s.cursor >= len(s.source) {
			return Token{Kind: KindEOF, Offset: s.cursor, Line: s.line}
		}

		ch := s.source[s.cursor]
		switch {
		case isDigit(ch):
			return s.scanNumber()
		case isAlpha(ch):
			return s.scanIdentifier()
		case ch == '"':
			if tok, ok := s.scanString(); ok {
				return tok
			}
		default:
			if tok, ok := s.scanPunct(); ok {
				return tok
			}
		}

		_, width := utf8.DecodeRuneInString(s.source[s.cursor:])
		s.diags = append(s.diags, Diagnostic{
			Kind:   IllegalCharacter,
			Text:   s.source[s.cursor : s.cursor+width],
			Offset: s.cursor,
			Line:   s.line,
		})
		s.cursor += width
	}
}

func (s *Scanner) skipWhitespace() {
	for s.cursor < len(s.source) {
		switch s.source[s.cursor] {
		case ' ', '\t':
			s.cursor++
		case '\n':
			s.line++
			s.cursor++
		default:
			return
		}
	}
}

func (s *Scanner) scanPunct() (Token, bool) {
	start := s.cursor
	ch := s.source[s.cursor]
	kind := KindEOF
	width := 1
	switch ch {
	case '+':
		kind = KindPlus
	case '-':
		kind = KindMinus
	case '*':
		kind = KindTimes
	case '/':
		kind = KindDivide
	case '(':
		kind = KindLParen
	case ')':
		kind = KindRParen
	case '&':
		kind = KindAnd
	case '|':
		kind = KindOr
	case '[':
		kind = KindLBra
	case ']':
		kind = KindRBra
	case ',':
		kind = KindCom
	case '%':
		kind = KindMod
	case '!':
		kind = KindNot
	case '^':
		kind = KindExp
	case '<':
		kind = KindLes
	case '>':
		kind = KindGr8r
		if s.peek() == '>' {
			kind, width = KindSort, 2
		}
	case '=':
		kind = KindEquals
		if s.peek() == '=' {
			kind, width = KindCompEqu, 2
		}
	default:
		return Token{}, false
	}
	s.cursor += width
	return Token{Kind: kind, Text: s.source[start:s.cursor], Offset: start, Line: s.line}, true
}

// scanString captures the text between double quotes verbatim. A backslash
// always consumes the following character. An unterminated string is not a
// token; the caller reports the quote as illegal.
func (s *Scanner) scanString() (Token, bool) {
	start := s.cursor
	i := s.cursor + 1
	for i < len(s.source) {
		switch s.source[i] {
		case '\\':
			i += 2
			continue
		case '"':
			lines := 0
			for _, c := range s.source[start:i] {
				if c == '\n' {
					lines++
				}
			}
			tok := Token{
				Kind:    KindString,
				Text:    s.source[start : i+1],
				Literal: value.String(s.source[start+1 : i]),
				Offset:  start,
				Line:    s.line,
			}
			s.line += lines
			s.cursor = i + 1
			return tok, true
		}
		i++
	}
	return Token{}, false
}

func (s *Scanner) scanNumber() Token {
	start := s.cursor
	for s.cursor < len(s.source) && isDigit(s.source[s.cursor]) {
		s.cursor++
	}
	text := s.source[start:s.cursor]
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		s.diags = append(s.diags, Diagnostic{Kind: NumberTooLarge, Text: text, Offset: start, Line: s.line})
		n = 0
	}
	return Token{Kind: KindNumber, Text: text, Literal: value.Int(n), Offset: start, Line: s.line}
}

func (s *Scanner) scanIdentifier() Token {
	start := s.cursor
	for s.cursor < len(s.source) && (isAlpha(s.source[s.cursor]) || isDigit(s.source[s.cursor])) {
		s.cursor++
	}

	literal := s.source[start:s.cursor]
	tok := Token{Kind: KindName, Text: literal, Offset: start, Line: s.line}
	if kind, ok := keywords[literal]; ok {
		tok.Kind = kind
		switch kind {
		case KindTrue:
			tok.Literal = value.Bool(true)
		case KindFalse:
			tok.Literal = value.Bool(false)
		}
	}
	return tok
}

func (s *Scanner) peek() byte {
	if s.cursor+1 >= len(s.source) {
		return 0
	}
	return s.source[s.cursor+1]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
