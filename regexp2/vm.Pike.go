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
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// machine runs Pike's VM over a prog: it keeps
// the set of live states rather than exploring
// alternatives one at a time, so a run costs
// O(len(input) * len(prog.states)).
//
// The automaton itself is shared; everything a
// run writes (stamps, lists) lives here.
type machine struct {
	prog *prog

	// stamp[id] == gen means state id is
	// already in the list being built
	gen   uint32
	stamp []uint32

	clist, nlist []stateID
	work         []stateID
}

func newMachine(p *prog) *machine {
	n := len(p.states)
	return &machine{
		prog:  p,
		stamp: make([]uint32, n),
		clist: make([]stateID, 0, n),
		nlist: make([]stateID, 0, n),
		work:  make([]stateID, 0, 16),
	}
}

// advance starts a new generation. Stamps are
// compared, never cleared, except when the
// counter wraps around.
func (m *machine) advance() {
	m.gen++
	if m.gen == 0 {
		for i := range m.stamp {
			m.stamp[i] = 0
		}
		m.gen = 1
	}
}

// add appends to list every literal or match
// state reachable from id through split states,
// skipping states seen in this generation.
func (m *machine) add(list []stateID, id stateID) []stateID {
	m.work = append(m.work[:0], id)
	for len(m.work) > 0 {
		id := m.work[len(m.work)-1]
		m.work = m.work[:len(m.work)-1]
		if id == unset {
			fault("c4e0a8d1", "closure reached an unset edge")
		}
		if m.stamp[id] == m.gen {
			continue
		}
		m.stamp[id] = m.gen
		s := m.prog.get(id)
		if s.split() {
			// out[0] is visited first
			m.work = append(m.work, s.out[1], s.out[0])
			continue
		}
		list = append(list, id)
	}
	return list
}

// step consumes r: it follows every literal
// state of clist labelled r and appends the
// closure of its successor to nlist.
func (m *machine) step(clist []stateID, r rune, nlist []stateID) []stateID {
	m.advance()
	for _, id := range clist {
		s := m.prog.get(id)
		if s.label == r {
			nlist = m.add(nlist, s.out[0])
		}
	}
	return nlist
}

// traceFunc observes the state set after the
// initial closure (step 0, r == -1) and after
// each consumed rune.
type traceFunc func(step int, r rune, list []stateID)

// run reports whether the automaton accepts
// all of input. A byte that is not valid UTF-8
// matches no literal.
func (m *machine) run(input string, trace traceFunc) bool {
	m.advance()
	clist := m.add(m.clist[:0], m.prog.start)
	nlist := m.nlist[:0]
	if trace != nil {
		trace(0, -1, clist)
	}
	n := 0
	for off := 0; off < len(input); {
		r, size := utf8.DecodeRuneInString(input[off:])
		off += size
		label := r
		if r == utf8.RuneError && size == 1 {
			label = invalidRune
		}
		nlist = m.step(clist, label, nlist[:0])
		clist, nlist = nlist, clist
		n++
		if trace != nil {
			trace(n, r, clist)
		}
	}
	ok := slices.Contains(clist, m.prog.match)
	m.clist, m.nlist = clist[:0], nlist[:0]
	return ok
}
