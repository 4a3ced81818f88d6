// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package regexp2

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/slices"
)

type Graphviz struct {
	nodes vectorT[string]
	edges vectorT[string]
}

func newGraphiz() *Graphviz {
	return &Graphviz{
		nodes: newVector[string](),
		edges: newVector[string](),
	}
}

func nodeString(id stateID) string {
	return fmt.Sprintf("%v", id)
}

func (dot *Graphviz) addNode(id string, start, accept, split bool) {
	shape := "circle"
	switch {
	case accept:
		shape = "doublecircle"
	case split:
		shape = "point"
	}
	if start {
		dot.nodes.pushBack(fmt.Sprintf("\ts%v [shape=%v; color=\"red\"]; #start\n", id, shape))
	} else {
		dot.nodes.pushBack(fmt.Sprintf("\ts%v [shape=%v];\n", id, shape))
	}
}

func (dot *Graphviz) addEdge(from, to, label string) {
	dot.edges.pushBack(fmt.Sprintf("\ts%v -> s%v [label=\"%v\"];\n", from, to, label))
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func (dot *Graphviz) DotContent(dst io.Writer, graphName, graphTitle string) error {
	_, err := fmt.Fprintf(dst, "digraph %v {\n\trankdir=LR;\n", graphName)
	if err != nil {
		return err
	}
	slices.Sort(dot.nodes)
	for _, s := range dot.nodes {
		_, err := fmt.Fprint(dst, s)
		if err != nil {
			return err
		}
	}
	slices.Sort(dot.edges)
	for _, s := range dot.edges {
		_, err := fmt.Fprint(dst, s)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(dst, "\tlabelloc=\"t\";\n\tlabel=\"%v: %v\";\n}\n", graphName, escapeLabel(graphTitle))
	return err
}

func (p *prog) dot() *Graphviz {
	result := newGraphiz()
	for i := range p.states {
		id := stateID(i)
		s := p.get(id)
		from := nodeString(id)
		result.addNode(from, id == p.start, s.label == matchRune, s.split())
		switch {
		case s.split():
			result.addEdge(from, nodeString(s.out[0]), "ε")
			result.addEdge(from, nodeString(s.out[1]), "ε")
		case s.label != matchRune:
			result.addEdge(from, nodeString(s.out[0]), escapeLabel(string(s.label)))
		}
	}
	return result
}

// WriteDot writes the automaton of re
// to w in Graphviz format.
func (re *Regexp) WriteDot(w io.Writer) error {
	return re.prog.dot().DotContent(w, "nfa", re.expr)
}

// DotFileName returns the file name WriteDotFile
// uses for expr: patterns are rarely valid file
// names, so it is derived from their digest.
func DotFileName(expr string) string {
	sum := blake2b.Sum256([]byte(expr))
	return "nfa_" + hex.EncodeToString(sum[:8]) + ".dot"
}

// WriteDotFile writes the automaton of re into
// dir and returns the path of the new file.
func (re *Regexp) WriteDotFile(dir string) (string, error) {
	path := filepath.Join(dir, DotFileName(re.expr))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	err = re.WriteDot(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
