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
	"errors"
	"fmt"
)

// ErrEmptyPattern is wrapped by the *SyntaxError
// returned for a pattern without any operand.
var ErrEmptyPattern = errors.New("empty pattern")

// ErrTooManyStates is returned when an automaton
// would grow beyond Options.MaxStates.
var ErrTooManyStates = errors.New("automaton exceeds max number of states")

// endOfPattern is the SyntaxError.Char reported
// when the error is detected after the last rune.
const endOfPattern = rune(-1)

// SyntaxError describes a malformed pattern.
type SyntaxError struct {
	Pos  int    // rune offset in the pattern
	Char rune   // offending rune, or -1 at the end of the pattern
	Msg  string // textual description of the error

	err error
}

func (e *SyntaxError) Error() string {
	if e.Char == endOfPattern {
		return fmt.Sprintf("at end of pattern: %s", e.Msg)
	}
	return fmt.Sprintf("at position %d (%q): %s", e.Pos, e.Char, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.err }

func errsyntax(pos int, char rune, msg string) *SyntaxError {
	return &SyntaxError{Pos: pos, Char: char, Msg: msg}
}

// fault reports a broken construction invariant.
// It never returns; the automaton builder is
// expected to make these unreachable.
func fault(tag, format string, args ...interface{}) {
	panic(tag + ": " + fmt.Sprintf(format, args...))
}
