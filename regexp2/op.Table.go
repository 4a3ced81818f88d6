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

// Fixity tells whether an operator
// sits between its operands or follows one.
type Fixity uint8

const (
	// Binary operators take two operands: a|b.
	Binary Fixity = iota
	// Unary operators follow their single operand: a+.
	Unary
)

// Assoc is the associativity used to break
// ties between operators of equal precedence.
type Assoc uint8

const (
	Left Assoc = iota
	Right
)

// Operator is one entry of an operator table.
type Operator struct {
	Symbol rune
	Prec   int // higher binds tighter
	Fixity Fixity
	Assoc  Assoc
}

// Table holds the static operator data
// that drives Translate.
type Table struct {
	ops    map[rune]Operator
	concat rune // zero when adjacency is not an operator
}

// NewTable builds a Table from ops. If concat
// is non-zero it must be the symbol of one of
// the binary operators in ops; Translate inserts
// it wherever two operands are adjacent.
func NewTable(concat rune, ops ...Operator) *Table {
	t := &Table{ops: make(map[rune]Operator, len(ops)), concat: concat}
	for _, op := range ops {
		t.ops[op.Symbol] = op
	}
	if concat != 0 {
		if op, ok := t.ops[concat]; !ok || op.Fixity != Binary {
			panic("regexp2.NewTable: concatenation symbol is not a binary operator")
		}
	}
	return t
}

// Lookup returns the operator with symbol r.
func (t *Table) Lookup(r rune) (Operator, bool) {
	op, ok := t.ops[r]
	return op, ok
}

// Concat returns the explicit concatenation operator.
func (t *Table) Concat() (Operator, bool) {
	if t.concat == 0 {
		return Operator{}, false
	}
	return t.ops[t.concat], true
}

// isMeta reports whether r must be escaped
// to be read as a literal.
func (t *Table) isMeta(r rune) bool {
	switch r {
	case '(', ')', escapeChar:
		return true
	}
	_, ok := t.ops[r]
	return ok
}

const (
	opConcat = '&'
	opAlt    = '|'
	opStar   = '*'
	opPlus   = '+'
	opQuest  = '?'
)

// RegexOperators is the table used by Compile.
//
//	*, +, ?   repetition (unary, highest)
//	&         concatenation, usually implicit
//	|         alternation (lowest)
var RegexOperators = NewTable(opConcat,
	Operator{Symbol: opStar, Prec: 30, Fixity: Unary},
	Operator{Symbol: opPlus, Prec: 30, Fixity: Unary},
	Operator{Symbol: opQuest, Prec: 30, Fixity: Unary},
	Operator{Symbol: opConcat, Prec: 20, Fixity: Binary},
	Operator{Symbol: opAlt, Prec: 10, Fixity: Binary},
)

// ArithmeticOperators holds the four binary
// arithmetic operators and no concatenation;
// it exercises the translator on a grammar
// where every operator is infix.
var ArithmeticOperators = NewTable(0,
	Operator{Symbol: '*', Prec: 20, Fixity: Binary},
	Operator{Symbol: '/', Prec: 20, Fixity: Binary},
	Operator{Symbol: '+', Prec: 10, Fixity: Binary},
	Operator{Symbol: '-', Prec: 10, Fixity: Binary},
)
