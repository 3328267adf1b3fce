// Package chaingraph aggregates classified decay chains into a Graphviz
// digraph for visual debugging.
//
// Nodes are absolute PDG codes plus a single "mu" node; an edge A -> B
// counts how many classified muons had A directly above B in their walked
// chain. The muon's mother carries prompt/non-prompt tallies.
package chaingraph

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/awalterschulze/gographviz"
)

const (
	graphName = "decays"
	muonNode  = "mu"
)

type edge struct {
	from, to string
}

type tally struct {
	prompt, nonPrompt int
}

// Builder accumulates chains. The zero value is not usable; call New.
type Builder struct {
	edges   map[edge]int
	mothers map[int]*tally
	codes   map[int]struct{}
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{
		edges:   make(map[edge]int),
		mothers: make(map[int]*tally),
		codes:   make(map[int]struct{}),
	}
}

// Add records one classified muon. chain lists the absolute PDG codes the
// walk stepped through starting at the mother; when the walk never moved
// chain is empty and only the mother is recorded.
func (b *Builder) Add(motherPDG int, chain []int, prompt bool) {
	seq := chain
	if len(seq) == 0 || seq[0] != motherPDG {
		seq = append([]int{motherPDG}, chain...)
	}

	b.codes[seq[0]] = struct{}{}
	b.edges[edge{from: nodeName(seq[0]), to: muonNode}]++
	for i := 1; i < len(seq); i++ {
		b.codes[seq[i]] = struct{}{}
		b.edges[edge{from: nodeName(seq[i]), to: nodeName(seq[i-1])}]++
	}

	t, ok := b.mothers[motherPDG]
	if !ok {
		t = &tally{}
		b.mothers[motherPDG] = t
	}
	if prompt {
		t.prompt++
	} else {
		t.nonPrompt++
	}
}

// Len returns the number of distinct edges recorded.
func (b *Builder) Len() int {
	return len(b.edges)
}

// DOT renders the accumulated graph. Output is deterministic: nodes sort by
// PDG code and edges by endpoint names.
func (b *Builder) DOT() (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	if err := g.AddNode(graphName, muonNode, map[string]string{
		"label": `"mu"`,
		"shape": "doublecircle",
	}); err != nil {
		return "", fmt.Errorf("add muon node: %w", err)
	}

	codes := make([]int, 0, len(b.codes))
	for c := range b.codes {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	for _, c := range codes {
		label := fmt.Sprintf("%d", c)
		if t, ok := b.mothers[c]; ok {
			label = fmt.Sprintf("%d\\nprompt=%d non-prompt=%d", c, t.prompt, t.nonPrompt)
		}
		if err := g.AddNode(graphName, nodeName(c), map[string]string{
			"label": `"` + label + `"`,
		}); err != nil {
			return "", fmt.Errorf("add node %d: %w", c, err)
		}
	}

	edges := make([]edge, 0, len(b.edges))
	for e := range b.edges {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(x, y edge) int {
		if c := cmp.Compare(x.from, y.from); c != 0 {
			return c
		}
		return cmp.Compare(x.to, y.to)
	})
	for _, e := range edges {
		if err := g.AddEdge(e.from, e.to, true, map[string]string{
			"label": fmt.Sprintf(`"%d"`, b.edges[e]),
		}); err != nil {
			return "", fmt.Errorf("add edge %s->%s: %w", e.from, e.to, err)
		}
	}

	return g.String(), nil
}

func nodeName(pdg int) string {
	return fmt.Sprintf("pdg%d", pdg)
}
