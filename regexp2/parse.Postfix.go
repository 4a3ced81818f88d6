// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package regexp2

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TokenKind classifies a Token.
type TokenKind uint8

const (
	Literal TokenKind = iota
	Operation
	LeftParen
	RightParen
)

// Token is one lexical element of a pattern.
// Pos is the rune offset of the element in the
// pattern; an inserted concatenation carries
// the position of the operand that caused it.
type Token struct {
	Kind TokenKind
	Rune rune
	Pos  int
}

// Postfix is a pattern in postfix order.
// It only holds Literal and Operation tokens.
type Postfix struct {
	Tokens []Token

	table *Table
}

// String renders p with operators by symbol and
// escapes literals that collide with them.
func (p Postfix) String() string {
	var sb strings.Builder
	for _, tok := range p.Tokens {
		writeToken(&sb, p.table, tok)
	}
	return sb.String()
}

func writeToken(sb *strings.Builder, t *Table, tok Token) {
	switch tok.Kind {
	case Literal:
		if t.isMeta(tok.Rune) {
			sb.WriteRune(escapeChar)
		}
		sb.WriteRune(tok.Rune)
	case Operation:
		sb.WriteRune(tok.Rune)
	case LeftParen:
		sb.WriteByte('(')
	case RightParen:
		sb.WriteByte(')')
	}
}

// lex splits pattern into infix tokens, writes
// out every implicit concatenation and checks
// that operands, operators and parentheses are
// where the grammar wants them.
func lex(pattern string, t *Table) ([]Token, error) {
	runes := make([]rune, 0, len(pattern))
	for off := 0; off < len(pattern); {
		r, size := utf8.DecodeRuneInString(pattern[off:])
		if r == utf8.RuneError && size == 1 {
			return nil, errsyntax(len(runes), r, fmt.Sprintf("invalid UTF-8 byte %#x", pattern[off]))
		}
		runes = append(runes, r)
		off += size
	}
	toks := make([]Token, 0, len(runes)*2)
	// positions of unclosed '('
	var open []int
	// the last token ends an operand
	operand := false

	// before is called ahead of anything that
	// starts an operand: a literal or '('
	before := func(pos int, r rune) error {
		if !operand {
			return nil
		}
		if t.concat == 0 {
			return errsyntax(pos, r, "missing operator")
		}
		toks = append(toks, Token{Kind: Operation, Rune: t.concat, Pos: pos})
		return nil
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case escapeChar:
			if i+1 == len(runes) {
				return nil, errsyntax(i, r, "trailing escape character")
			}
			if err := before(i, r); err != nil {
				return nil, err
			}
			i++
			toks = append(toks, Token{Kind: Literal, Rune: runes[i], Pos: i - 1})
			operand = true
		case '(':
			if err := before(i, r); err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: LeftParen, Rune: r, Pos: i})
			open = append(open, i)
			operand = false
		case ')':
			if len(open) == 0 {
				return nil, errsyntax(i, r, "unmatched ')'")
			}
			if !operand {
				return nil, errsyntax(i, r, "missing operand")
			}
			toks = append(toks, Token{Kind: RightParen, Rune: r, Pos: i})
			open = open[:len(open)-1]
		default:
			op, ok := t.ops[r]
			if !ok {
				if err := before(i, r); err != nil {
					return nil, err
				}
				toks = append(toks, Token{Kind: Literal, Rune: r, Pos: i})
				operand = true
				continue
			}
			if !operand {
				return nil, errsyntax(i, r, fmt.Sprintf("missing operand for %q", r))
			}
			toks = append(toks, Token{Kind: Operation, Rune: r, Pos: i})
			operand = op.Fixity == Unary
		}
	}
	if len(toks) == 0 {
		return nil, &SyntaxError{Pos: 0, Char: endOfPattern, Msg: ErrEmptyPattern.Error(), err: ErrEmptyPattern}
	}
	if len(open) > 0 {
		pos := open[len(open)-1]
		return nil, errsyntax(pos, '(', "unmatched '('")
	}
	if !operand {
		return nil, errsyntax(len(runes), endOfPattern, "missing operand")
	}
	return toks, nil
}

// Translate converts an infix pattern into postfix
// form using the operators in t. Adjacent operands
// are joined with the table's concatenation operator.
//
// Operators are popped from the stack while their
// precedence is at least the incoming one (strictly
// greater for right associative operators), so
// Translate("a-b+c", ArithmeticOperators) is "ab-c+".
func Translate(pattern string, t *Table) (Postfix, error) {
	toks, err := lex(pattern, t)
	if err != nil {
		return Postfix{}, err
	}
	out := make([]Token, 0, len(toks))
	stack := make([]Token, 0, 8)
	for _, tok := range toks {
		switch tok.Kind {
		case Literal:
			out = append(out, tok)
		case LeftParen:
			stack = append(stack, tok)
		case RightParen:
			for len(stack) > 0 && stack[len(stack)-1].Kind != LeftParen {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				fault("0d1f6a3c", "no '(' on the stack for ')' at %d", tok.Pos)
			}
			stack = stack[:len(stack)-1]
		case Operation:
			in := t.ops[tok.Rune]
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind == LeftParen {
					break
				}
				prec := t.ops[top.Rune].Prec
				if prec < in.Prec || (prec == in.Prec && in.Assoc == Right) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Kind == LeftParen {
			fault("7e52b9a0", "unbalanced '(' at %d survived lexing", top.Pos)
		}
		out = append(out, top)
		stack = stack[:len(stack)-1]
	}
	return Postfix{Tokens: out, table: t}, nil
}

// Explicit returns pattern in infix form with every
// implicit concatenation written out. Explicit is
// idempotent, and Translate gives the same postfix
// for pattern and Explicit(pattern).
func Explicit(pattern string, t *Table) (string, error) {
	toks, err := lex(pattern, t)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, tok := range toks {
		writeToken(&sb, t, tok)
	}
	return sb.String(), nil
}
