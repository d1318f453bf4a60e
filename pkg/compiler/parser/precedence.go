package parser

import (
	"github.com/agenthands/snailz/pkg/compiler/ast"
	"github.com/agenthands/snailz/pkg/compiler/lexer"
)

type assoc uint8

const (
	leftAssoc assoc = iota
	rightAssoc
	nonAssoc
)

// Binding levels, lowest first.
const (
	precLowest     = 1
	precRelational = 1 // > < ==
	precLogical    = 2 // & |
	precNot        = 3 // prefix !
	precAdditive   = 4 // + -
	precExp        = 5 // ^
	precMult       = 6 // * /
	precMod        = 7 // %
	precUMinus     = 8 // prefix -
)

type binaryOp struct {
	kind  ast.Kind
	prec  int
	assoc assoc
}

var binaryOps = map[lexer.Kind]binaryOp{
	lexer.KindGr8r:    {ast.KindGreater, precRelational, nonAssoc},
	lexer.KindLes:     {ast.KindLess, precRelational, nonAssoc},
	lexer.KindCompEqu: {ast.KindEqual, precRelational, nonAssoc},
	lexer.KindAnd:     {ast.KindAnd, precLogical, leftAssoc},
	lexer.KindOr:      {ast.KindOr, precLogical, leftAssoc},
	lexer.KindPlus:    {ast.KindAdd, precAdditive, leftAssoc},
	lexer.KindMinus:   {ast.KindSub, precAdditive, leftAssoc},
	lexer.KindExp:     {ast.KindExp, precExp, rightAssoc},
	lexer.KindTimes:   {ast.KindMul, precMult, leftAssoc},
	lexer.KindDivide:  {ast.KindDiv, precMult, leftAssoc},
	lexer.KindMod:     {ast.KindMod, precMod, leftAssoc},
}
