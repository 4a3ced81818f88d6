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

// Package regexp2 compiles regular expressions
// into Thompson NFAs and matches strings against
// them with Pike's VM, without backtracking.
//
// The syntax is literal runes, implicit or
// explicit ('&') concatenation, alternation '|',
// the repetitions '+', '*' and '?', and grouping
// with parentheses. A backslash makes the next
// rune a literal. Matching is always against the
// whole subject.
package regexp2

import (
	"strconv"
	"sync"

	"golang.org/x/exp/slices"
)

// MaxStates is the default maximum number of
// states of a compiled automaton.
const MaxStates = 3000

// Options configures CompileOptions.
// The zero value is the default.
type Options struct {
	// MaxStates bounds the size of the
	// automaton; zero means MaxStates.
	MaxStates int
}

// Regexp is a compiled expression. It is safe
// for concurrent use by multiple goroutines.
type Regexp struct {
	expr    string
	postfix Postfix
	prog    *prog

	machines sync.Pool
}

// Compile parses expr and builds its automaton.
// Malformed patterns yield a *SyntaxError.
func Compile(expr string) (*Regexp, error) {
	return CompileOptions(expr, Options{})
}

// CompileOptions is Compile with explicit options.
func CompileOptions(expr string, opts Options) (*Regexp, error) {
	post, err := Translate(expr, RegexOperators)
	if err != nil {
		return nil, err
	}
	limit := opts.MaxStates
	if limit <= 0 {
		limit = MaxStates
	}
	p, err := build(post, limit)
	if err != nil {
		return nil, err
	}
	re := &Regexp{expr: expr, postfix: post, prog: p}
	re.machines.New = func() interface{} {
		return newMachine(re.prog)
	}
	return re, nil
}

// MustCompile is like Compile but panics
// if the expression cannot be compiled.
func MustCompile(expr string) *Regexp {
	re, err := Compile(expr)
	if err != nil {
		panic(`regexp2: Compile(` + strconv.Quote(expr) + `): ` + err.Error())
	}
	return re
}

// Match reports whether the whole of s
// is accepted by re.
func (re *Regexp) Match(s string) bool {
	return re.Trace(s, nil)
}

// Trace is Match with an observer: fn is called
// with the ids of the live states after the
// initial closure (step 0, r == -1) and after
// every rune of s. A nil fn is allowed.
//
// states is only valid for the duration of the
// call; fn must copy it to keep it.
func (re *Regexp) Trace(s string, fn func(step int, r rune, states []int)) bool {
	m := re.machines.Get().(*machine)
	defer re.machines.Put(m)
	var trace traceFunc
	if fn != nil {
		ids := make([]int, 0, len(re.prog.states))
		trace = func(step int, r rune, list []stateID) {
			ids = ids[:0]
			for _, id := range list {
				ids = append(ids, int(id))
			}
			fn(step, r, ids)
		}
	}
	return m.run(s, trace)
}

// String returns the source text.
func (re *Regexp) String() string { return re.expr }

// Postfix returns the postfix form re was built from.
func (re *Regexp) Postfix() string { return re.postfix.String() }

// NumStates returns the number of automaton
// states, including split and match states.
func (re *Regexp) NumStates() int { return len(re.prog.states) }

// Alphabet returns the sorted runes that
// appear on a transition of re. Any other
// rune in a subject makes the match fail.
func (re *Regexp) Alphabet() []rune {
	set := newSet[rune]()
	for i := range re.prog.states {
		s := &re.prog.states[i]
		if s.label != splitRune && s.label != matchRune {
			set.insert(s.label)
		}
	}
	runes := set.toVector()
	slices.Sort(runes)
	return runes
}
