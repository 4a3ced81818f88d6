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

// Package cases loads YAML files of
// pattern/subject pairs and checks them
// against the regexp2 matcher.
package cases

import (
	"fmt"
	"io"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/SnellerInc/thompson/regexp2"
)

// Case is one expectation. When Error is set
// the pattern must fail to compile and the
// other fields are ignored.
type Case struct {
	Pattern string `json:"pattern"`
	Subject string `json:"subject"`
	Match   bool   `json:"match"`
	Error   bool   `json:"error,omitempty"`
}

// Load decodes a YAML list of cases.
func Load(r io.Reader) ([]Case, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var cs []Case
	if err := yaml.UnmarshalStrict(buf, &cs); err != nil {
		return nil, fmt.Errorf("cases: %w", err)
	}
	for i := range cs {
		if cs[i].Pattern == "" && !cs[i].Error {
			return nil, fmt.Errorf("cases: case %d has no pattern", i)
		}
	}
	return cs, nil
}

// LoadFile is Load on the contents of path.
func LoadFile(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cs, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cs, nil
}

// Failure is a case whose outcome differed
// from the expectation.
type Failure struct {
	Index int
	Case  Case
	Got   bool  // result of the match
	Err   error // compile error, if any
}

func (f *Failure) String() string {
	c := &f.Case
	switch {
	case c.Error && f.Err == nil:
		return fmt.Sprintf("case %d: %q compiled, expected an error", f.Index, c.Pattern)
	case f.Err != nil:
		return fmt.Sprintf("case %d: %q: %s", f.Index, c.Pattern, f.Err)
	default:
		return fmt.Sprintf("case %d: %q against %q: got %v, want %v", f.Index, c.Pattern, c.Subject, f.Got, c.Match)
	}
}

// Run checks every case, compiling patterns
// through cache, and returns the failures.
func Run(cs []Case, cache *regexp2.Cache) []Failure {
	var out []Failure
	for i := range cs {
		c := cs[i]
		re, err := cache.Compile(c.Pattern)
		if c.Error {
			if err == nil {
				out = append(out, Failure{Index: i, Case: c})
			}
			continue
		}
		if err != nil {
			out = append(out, Failure{Index: i, Case: c, Err: err})
			continue
		}
		if got := re.Match(c.Subject); got != c.Match {
			out = append(out, Failure{Index: i, Case: c, Got: got})
		}
	}
	return out
}
