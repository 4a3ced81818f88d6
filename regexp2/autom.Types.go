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
)

// escapeChar is the rune used as the escape character.
const escapeChar = rune(0x5C) // backslash

// stateID is the index of a state in the arena.
type stateID int32

// unset marks an out-edge slot that has
// not been patched yet.
const unset = stateID(-1)

// labels of the two control states; every
// other label is the literal rune consumed
const splitRune = rune(utf8.MaxRune + 1)
const matchRune = rune(utf8.MaxRune + 2)

// invalidRune stands for a subject byte that is
// not valid UTF-8; no state is labelled with it
const invalidRune = rune(utf8.MaxRune + 3)
