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

package cases

import (
	"errors"
	"strings"
	"testing"

	"github.com/SnellerInc/thompson/regexp2"
)

func TestTestdata(t *testing.T) {
	cs, err := LoadFile("testdata/cases.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) < 20 {
		t.Fatalf("only %d cases loaded", len(cs))
	}
	cache := regexp2.NewCache(8, regexp2.Options{})
	for _, f := range Run(cs, cache) {
		t.Error(f.String())
	}
	if hits, _ := cache.Stats(); hits == 0 {
		t.Error("expected repeated patterns to hit the cache")
	}
}

func TestRunReportsFailures(t *testing.T) {
	cs := []Case{
		{Pattern: "a+", Subject: "aa", Match: false},
		{Pattern: "a+", Error: true},
		{Pattern: "(a", Subject: "a", Match: true},
		{Pattern: "b", Subject: "b", Match: true},
	}
	failures := Run(cs, regexp2.NewCache(4, regexp2.Options{}))
	if len(failures) != 3 {
		t.Fatalf("expected 3 failures, got %v", failures)
	}
	if f := failures[0]; f.Index != 0 || !f.Got {
		t.Errorf("unexpected first failure %+v", f)
	}
	if f := failures[1]; f.Index != 1 || !strings.Contains(f.String(), "expected an error") {
		t.Errorf("unexpected second failure %s", f.String())
	}
	var se *regexp2.SyntaxError
	if f := failures[2]; f.Index != 2 || !errors.As(f.Err, &se) {
		t.Errorf("unexpected third failure %+v", f)
	}
}

func TestLoadStrict(t *testing.T) {
	_, err := Load(strings.NewReader(`- {pattern: "a", subjcet: "a", match: true}`))
	if err == nil {
		t.Fatal("expected an error for an unknown field")
	}
	_, err = Load(strings.NewReader(`- {subject: "a", match: true}`))
	if err == nil {
		t.Fatal("expected an error for a missing pattern")
	}
	cs, err := Load(strings.NewReader("- pattern: x\n  subject: x\n  match: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 1 || cs[0] != (Case{Pattern: "x", Subject: "x", Match: true}) {
		t.Errorf("unexpected cases %+v", cs)
	}
}
