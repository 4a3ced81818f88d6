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

// state is one node of the automaton. A literal
// state uses out[0] only, a split state uses both
// edges and the match state uses none.
type state struct {
	label rune
	out   [2]stateID
}

func (s *state) split() bool { return s.label == splitRune }

// slotRef addresses an out-edge slot: edge
// out[edge] of the state with id state.
type slotRef struct {
	state stateID
	edge  uint8
}

// arena owns every state of one automaton;
// states refer to each other by index.
type arena struct {
	states    []state
	maxStates int
}

func (a *arena) newState(label rune, out0, out1 stateID) (stateID, error) {
	if len(a.states) >= a.maxStates {
		return unset, fmt.Errorf("%w %d", ErrTooManyStates, a.maxStates)
	}
	a.states = append(a.states, state{label: label, out: [2]stateID{out0, out1}})
	return stateID(len(a.states) - 1), nil
}

// patch binds every slot in list to to. A slot
// may be patched only once.
func (a *arena) patch(list []slotRef, to stateID) {
	for _, ref := range list {
		slot := &a.states[ref.state].out[ref.edge]
		if *slot != unset {
			fault("5b1c0e27", "slot %d/%d already bound to %d", ref.state, ref.edge, *slot)
		}
		*slot = to
	}
}

// fragment is a partial automaton: an entry
// state and the slots still waiting for a
// successor.
type fragment struct {
	start    stateID
	dangling []slotRef
}

// patch binds the dangling slots of f to
// to and empties the list.
func (f *fragment) patch(a *arena, to stateID) {
	a.patch(f.dangling, to)
	f.dangling = nil
}
