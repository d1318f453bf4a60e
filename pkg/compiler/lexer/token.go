package lexer

import (
	"fmt"

	"github.com/agenthands/snailz/pkg/core/value"
)

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOF Kind = iota
	KindName
	KindNumber
	KindString
	KindTrue
	KindFalse

	// Keywords
	KindPrint
	KindIf
	KindElse
	KindWhile
	KindFor
	KindSnail

	// Punctuation
	KindPlus    // +
	KindMinus   // -
	KindTimes   // *
	KindDivide  // /
	KindLParen  // (
	KindRParen  // )
	KindAnd     // &
	KindOr      // |
	KindGr8r    // >
	KindLes     // <
	KindCompEqu // ==
	KindEquals  // =
	KindLBra    // [
	KindRBra    // ]
	KindCom     // ,
	KindMod     // %
	KindSort    // >>
	KindNot     // !
	KindExp     // ^
)

var kindNames = [...]string{
	KindEOF:     "EOF",
	KindName:    "NAME",
	KindNumber:  "NUMBER",
	KindString:  "STRING",
	KindTrue:    "TRUE",
	KindFalse:   "FALSE",
	KindPrint:   "PRINT",
	KindIf:      "IF",
	KindElse:    "ELSE",
	KindWhile:   "WHILE",
	KindFor:     "FOR",
	KindSnail:   "SNAIL",
	KindPlus:    "PLUS",
	KindMinus:   "MINUS",
	KindTimes:   "TIMES",
	KindDivide:  "DIVIDE",
	KindLParen:  "LPAREN",
	KindRParen:  "RPAREN",
	KindAnd:     "AND",
	KindOr:      "OR",
	KindGr8r:    "GR8R",
	KindLes:     "LES",
	KindCompEqu: "COMPEQU",
	KindEquals:  "EQUALS",
	KindLBra:    "LBRA",
	KindRBra:    "RBRA",
	KindCom:     "COM",
	KindMod:     "MOD",
	KindSort:    "SORT",
	KindNot:     "NOT",
	KindExp:     "EXP",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// PrintKeyword is the reserved word that introduces a print statement.
const PrintKeyword = "ThereneverisaslowerpaceThansnailscompetinginarace"

// keywords are matched against whole identifiers, never prefixes.
var keywords = map[string]Kind{
	"if":         KindIf,
	"else":       KindElse,
	"while":      KindWhile,
	"for":        KindFor,
	"snail":      KindSnail,
	PrintKeyword: KindPrint,
	"True":       KindTrue,
	"False":      KindFalse,
}

// Token represents a lexical unit pointing back to the source.
type Token struct {
	Kind    Kind
	Text    string      // lexeme as written
	Literal value.Value // NUMBER, TRUE/FALSE and STRING only
	Offset  int
	Line    int
}

func (t Token) String() string {
	if t.Kind == KindEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
}

// DiagnosticKind classifies a recovered lexical error.
type DiagnosticKind uint8

const (
	IllegalCharacter DiagnosticKind = iota
	NumberTooLarge
)

// Diagnostic is a lexical error the scanner recovered from.
type Diagnostic struct {
	Kind   DiagnosticKind
	Text   string
	Offset int
	Line   int
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case NumberTooLarge:
		return fmt.Sprintf("Integer value too large %s", d.Text)
	default:
		return fmt.Sprintf("Illegal character '%s'", d.Text)
	}
}
