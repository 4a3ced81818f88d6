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
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompileScenarios(t *testing.T) {
	plus := MustCompile("a+")
	if !plus.Match("aaa") {
		t.Error("a+ should match aaa")
	}
	if plus.Match("") {
		t.Error("a+ should not match the empty string")
	}
	if plus.Match("b") {
		t.Error("a+ should not match b")
	}

	alt := MustCompile("a|b")
	if !alt.Match("a") || !alt.Match("b") {
		t.Error("a|b should match a and b")
	}
	if alt.Match("ab") {
		t.Error("a|b should not match ab")
	}
}

func TestCompileErrors(t *testing.T) {
	for _, expr := range []string{"(a", "a)", "", "a||b", "*"} {
		_, err := Compile(expr)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Compile(%q): expected a *SyntaxError, got %v", expr, err)
		}
	}
	_, err := Compile("")
	if !errors.Is(err, ErrEmptyPattern) {
		t.Errorf("expected ErrEmptyPattern, got %v", err)
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustCompile should panic on (a")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, `"(a"`) {
			t.Errorf("unexpected panic value %v", r)
		}
	}()
	MustCompile("(a")
}

func TestInvalidUTF8(t *testing.T) {
	testCases := []struct {
		expr string
		pos  int
	}{
		{"\xff", 0},
		{"a\xfe", 1},
		{"é|\xc3", 2},
		{"\\\xff", 1},
	}
	for i := range testCases {
		tc := testCases[i]
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			_, err := Compile(tc.expr)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Compile(%q): expected a *SyntaxError, got %v", tc.expr, err)
			}
			if se.Pos != tc.pos {
				t.Errorf("Compile(%q): error at %d, want %d", tc.expr, se.Pos, tc.pos)
			}
		})
	}

	// a literal U+FFFD is a valid rune and matches
	// only itself, never a byte that fails to decode
	re := MustCompile("\uFFFD+")
	if !re.Match("\uFFFD\uFFFD") {
		t.Error("expected U+FFFD to match itself")
	}
	for _, s := range []string{"\xff", "\xfe", "\uFFFD\xff", "\xc3"} {
		if re.Match(s) {
			t.Errorf("%q should not match %q", re, s)
		}
	}
	abc := MustCompile("a(b|c)*")
	if abc.Match("ab\xffc") {
		t.Error("an invalid byte in the subject should kill the match")
	}
	n := 0
	abc.Trace("a\xff", func(step int, r rune, states []int) {
		n++
		if step == 2 && len(states) != 0 {
			t.Errorf("live states %v after an invalid byte", states)
		}
	})
	if n != 3 {
		t.Errorf("fn called %d times, want 3", n)
	}
}

func TestCompileMaxStates(t *testing.T) {
	expr := strings.Repeat("a", MaxStates)
	_, err := Compile(expr)
	if !errors.Is(err, ErrTooManyStates) {
		t.Fatalf("expected ErrTooManyStates, got %v", err)
	}
	var se *SyntaxError
	if errors.As(err, &se) {
		t.Errorf("state limit reported as a syntax error: %v", err)
	}
	re, err := CompileOptions(expr, Options{MaxStates: MaxStates + 1})
	if err != nil {
		t.Fatal(err)
	}
	if !re.Match(expr) {
		t.Error("expected a match with a raised limit")
	}
}

func TestTraceStatesReused(t *testing.T) {
	re := MustCompile("ab")
	var retained, copied [][]int
	re.Trace("ab", func(step int, r rune, states []int) {
		retained = append(retained, states)
		copied = append(copied, append([]int(nil), states...))
	})
	// a, b, match
	if got := fmt.Sprint(copied); got != "[[0] [1] [2]]" {
		t.Errorf("copied sets %s", got)
	}
	// the slice passed to fn is overwritten by later steps
	if got := fmt.Sprint(retained); got != "[[2] [2] [2]]" {
		t.Errorf("retained sets %s", got)
	}
}

func TestRegexpAccessors(t *testing.T) {
	re := MustCompile("(b|a)+c")
	if re.String() != "(b|a)+c" {
		t.Errorf("String() = %q", re.String())
	}
	if re.Postfix() != "ba|+c&" {
		t.Errorf("Postfix() = %q", re.Postfix())
	}
	// b, a, split(|), split(+), c, match
	if re.NumStates() != 6 {
		t.Errorf("NumStates() = %d", re.NumStates())
	}
	if got := string(re.Alphabet()); got != "abc" {
		t.Errorf("Alphabet() = %q", got)
	}
}

func TestWriteDot(t *testing.T) {
	re := MustCompile(`a+|"b`)
	var buf bytes.Buffer
	if err := re.WriteDot(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"digraph nfa {",
		"shape=doublecircle",
		"shape=point",
		`[label="a"]`,
		`[label="\""]`,
		`label="nfa: a+|\"b"`,
		"#start",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dot output lacks %q:\n%s", want, out)
		}
	}
}

func TestWriteDotFile(t *testing.T) {
	dir := t.TempDir()
	re := MustCompile("a/b")
	path, err := re.WriteDotFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != DotFileName("a/b") {
		t.Errorf("unexpected file name %s", path)
	}
	if DotFileName("a/b") == DotFileName("a/c") {
		t.Error("distinct patterns share a dot file name")
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf, []byte("digraph nfa {")) {
		t.Errorf("unexpected file contents %q", buf)
	}
}

func TestCache(t *testing.T) {
	c := NewCache(2, Options{})
	re1, err := c.Compile("a+")
	if err != nil {
		t.Fatal(err)
	}
	re2, err := c.Compile("a+")
	if err != nil {
		t.Fatal(err)
	}
	if re1 != re2 {
		t.Error("second Compile did not hit the cache")
	}
	if _, err := c.Compile("(a"); err == nil {
		t.Error("expected an error for (a")
	}
	if c.Len() != 1 {
		t.Errorf("errors should not be cached; Len() = %d", c.Len())
	}
	c.Compile("b")
	c.Compile("c") // evicts a+
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	re3, _ := c.Compile("a+")
	if re3 == re1 {
		t.Error("a+ should have been evicted")
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 5 {
		t.Errorf("Stats() = %d hits, %d misses", hits, misses)
	}
}

func TestCacheBucket(t *testing.T) {
	// force two entries into one bucket
	c := NewCache(4, Options{})
	re := MustCompile("x")
	h := hashExpr("a")
	c.entries[h] = append(c.entries[h], re)
	c.order = append(c.order, h)
	got, err := c.Compile("a")
	if err != nil {
		t.Fatal(err)
	}
	if got == re || got.String() != "a" {
		t.Error("lookup must compare the expression, not only its hash")
	}
	c.evict()
	if len(c.entries[h]) != 1 || c.entries[h][0] != got {
		t.Errorf("evict dropped the wrong entry: %v", c.entries[h])
	}
}
