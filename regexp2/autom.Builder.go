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

import "fmt"

// prog is a compiled automaton. It is never
// modified once build returns.
type prog struct {
	states []state
	start  stateID
	match  stateID
}

func (p *prog) get(id stateID) *state {
	return &p.states[id]
}

// build runs Thompson's construction over post,
// keeping a stack of fragments: every token pops
// zero, one or two fragments and pushes one.
func build(post Postfix, maxStates int) (*prog, error) {
	a := arena{
		states:    make([]state, 0, len(post.Tokens)+1),
		maxStates: maxStates,
	}
	stack := make([]fragment, 0, 8)

	push := func(f fragment) {
		stack = append(stack, f)
	}
	pop := func(tok Token) (fragment, error) {
		if len(stack) == 0 {
			return fragment{}, errsyntax(tok.Pos, tok.Rune, fmt.Sprintf("missing operand for %q", tok.Rune))
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f, nil
	}
	pop2 := func(tok Token) (f1, f2 fragment, err error) {
		if f2, err = pop(tok); err != nil {
			return
		}
		f1, err = pop(tok)
		return
	}

	for _, tok := range post.Tokens {
		if tok.Kind == Literal {
			s, err := a.newState(tok.Rune, unset, unset)
			if err != nil {
				return nil, err
			}
			push(fragment{start: s, dangling: []slotRef{{state: s, edge: 0}}})
			continue
		}
		switch tok.Rune {
		case opConcat:
			f1, f2, err := pop2(tok)
			if err != nil {
				return nil, err
			}
			f1.patch(&a, f2.start)
			push(fragment{start: f1.start, dangling: f2.dangling})
		case opAlt:
			f1, f2, err := pop2(tok)
			if err != nil {
				return nil, err
			}
			s, err := a.newState(splitRune, f1.start, f2.start)
			if err != nil {
				return nil, err
			}
			dangling := make([]slotRef, 0, len(f1.dangling)+len(f2.dangling))
			dangling = append(dangling, f1.dangling...)
			dangling = append(dangling, f2.dangling...)
			push(fragment{start: s, dangling: dangling})
		case opPlus:
			f, err := pop(tok)
			if err != nil {
				return nil, err
			}
			s, err := a.newState(splitRune, f.start, unset)
			if err != nil {
				return nil, err
			}
			f.patch(&a, s)
			push(fragment{start: f.start, dangling: []slotRef{{state: s, edge: 1}}})
		case opStar:
			f, err := pop(tok)
			if err != nil {
				return nil, err
			}
			s, err := a.newState(splitRune, f.start, unset)
			if err != nil {
				return nil, err
			}
			f.patch(&a, s)
			push(fragment{start: s, dangling: []slotRef{{state: s, edge: 1}}})
		case opQuest:
			f, err := pop(tok)
			if err != nil {
				return nil, err
			}
			s, err := a.newState(splitRune, f.start, unset)
			if err != nil {
				return nil, err
			}
			push(fragment{start: s, dangling: append(f.dangling, slotRef{state: s, edge: 1})})
		default:
			return nil, errsyntax(tok.Pos, tok.Rune, fmt.Sprintf("unsupported operator %q", tok.Rune))
		}
	}

	if len(stack) != 1 {
		pos := 0
		if n := len(post.Tokens); n > 0 {
			pos = post.Tokens[n-1].Pos
		}
		return nil, errsyntax(pos, endOfPattern, fmt.Sprintf("malformed postfix: %d fragments left", len(stack)))
	}
	m, err := a.newState(matchRune, unset, unset)
	if err != nil {
		return nil, err
	}
	f := stack[0]
	f.patch(&a, m)
	return &prog{states: a.states, start: f.start, match: m}, nil
}
