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

// Command thompson matches subjects against a
// regular expression compiled to a Thompson NFA.
//
//	thompson [flags] pattern subject...
//	thompson -f subjects.zst pattern
//	thompson -cases cases.yaml
//
// The exit status is 0 when every subject matched
// (or every case passed), 1 otherwise and 2 on
// usage or pattern errors.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/SnellerInc/thompson/cases"
	"github.com/SnellerInc/thompson/compr"
	"github.com/SnellerInc/thompson/regexp2"
)

var (
	dashp     bool
	dashg     bool
	dashv     bool
	dashd     string
	dashf     string
	dashcases string
	dashmax   int
)

func init() {
	flag.BoolVar(&dashp, "p", false, "just print the postfix form of the pattern; do not match")
	flag.BoolVar(&dashg, "g", false, "just dump the automaton graphviz; do not match")
	flag.StringVar(&dashd, "d", "", "also write the automaton as a dot file into this directory")
	flag.StringVar(&dashf, "f", "", "read subjects from a file, one per line (.zst and .s2 are decompressed)")
	flag.StringVar(&dashcases, "cases", "", "run a YAML case file instead of a pattern")
	flag.IntVar(&dashmax, "max-states", regexp2.MaxStates, "maximum number of automaton states")
	flag.BoolVar(&dashv, "v", false, "log progress on stderr")
}

var errUsage = errors.New("usage: thompson [flags] pattern [subject ...]")

type config struct {
	postfix   bool
	graphviz  bool
	dotDir    string
	subjects  string
	cases     string
	maxStates int
	logger    *log.Logger
}

// readSubjects returns the lines of path.
func readSubjects(path string) ([]string, error) {
	rc, err := compr.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var lines []string
	s := bufio.NewScanner(rc)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

func runCases(c *config, stdout io.Writer) (int, error) {
	cs, err := cases.LoadFile(c.cases)
	if err != nil {
		return 2, err
	}
	id := uuid.New()
	c.logger.Printf("run %s: %d cases from %s", id, len(cs), c.cases)
	cache := regexp2.NewCache(len(cs), regexp2.Options{MaxStates: c.maxStates})
	failures := cases.Run(cs, cache)
	for i := range failures {
		fmt.Fprintln(stdout, failures[i].String())
	}
	hits, misses := cache.Stats()
	c.logger.Printf("run %s: %d compiled, %d cache hits", id, misses, hits)
	fmt.Fprintf(stdout, "%d/%d cases passed\n", len(cs)-len(failures), len(cs))
	if len(failures) > 0 {
		return 1, nil
	}
	return 0, nil
}

func run(c *config, args []string, stdout io.Writer) (int, error) {
	if c.cases != "" {
		if len(args) > 0 {
			return 2, errUsage
		}
		return runCases(c, stdout)
	}
	if len(args) == 0 {
		return 2, errUsage
	}
	pattern, subjects := args[0], args[1:]
	re, err := regexp2.CompileOptions(pattern, regexp2.Options{MaxStates: c.maxStates})
	if err != nil {
		return 2, fmt.Errorf("%q: %w", pattern, err)
	}
	c.logger.Printf("compiled %q: postfix %s, %d states, alphabet %q", pattern, re.Postfix(), re.NumStates(), string(re.Alphabet()))
	if c.dotDir != "" {
		path, err := re.WriteDotFile(c.dotDir)
		if err != nil {
			return 2, err
		}
		c.logger.Printf("wrote %s", path)
	}
	if c.postfix {
		fmt.Fprintln(stdout, re.Postfix())
		return 0, nil
	}
	if c.graphviz {
		if err := re.WriteDot(stdout); err != nil {
			return 2, err
		}
		return 0, nil
	}
	if c.subjects != "" {
		lines, err := readSubjects(c.subjects)
		if err != nil {
			return 2, err
		}
		c.logger.Printf("read %d subjects from %s", len(lines), c.subjects)
		subjects = append(subjects, lines...)
	}
	if len(subjects) == 0 {
		return 2, errUsage
	}
	status := 0
	for _, s := range subjects {
		if re.Match(s) {
			fmt.Fprintf(stdout, "%s matches %s\n", pattern, s)
		} else {
			fmt.Fprintf(stdout, "%s does not match %s\n", pattern, s)
			status = 1
		}
	}
	return status, nil
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}

func main() {
	flag.Parse()
	lg := log.New(io.Discard, "", 0)
	if dashv {
		lg = log.New(os.Stderr, "thompson: ", log.Lmicroseconds)
	}
	c := &config{
		postfix:   dashp,
		graphviz:  dashg,
		dotDir:    dashd,
		subjects:  dashf,
		cases:     dashcases,
		maxStates: dashmax,
		logger:    lg,
	}
	status, err := run(c, flag.Args(), os.Stdout)
	if err != nil {
		exit(err)
	}
	os.Exit(status)
}
