package cooc

import (
	"sort"

	"github.com/lexcloud/lexcloud/pkg/errors"
	"github.com/lexcloud/lexcloud/pkg/freq"
	"github.com/lexcloud/lexcloud/pkg/text"
)

// Defaults for graph construction.
const (
	DefaultMaxTerms = 30
	DefaultEngine   = "neato"
)

// Options controls graph construction and layout.
type Options struct {
	// MaxTerms caps the node count at the N heaviest terms.
	// 0 means DefaultMaxTerms.
	MaxTerms int

	// MinCount drops edges whose bigram count falls below it.
	// Values below 1 are treated as 1.
	MinCount int

	// Engine is the Graphviz layout engine. Defaults to "neato", which
	// suits undirected co-occurrence graphs.
	Engine string
}

func (o Options) maxTerms() int {
	if o.MaxTerms <= 0 {
		return DefaultMaxTerms
	}
	return o.MaxTerms
}

func (o Options) minCount() int {
	if o.MinCount < 1 {
		return 1
	}
	return o.MinCount
}

func (o Options) engine() string {
	if o.Engine == "" {
		return DefaultEngine
	}
	return o.Engine
}

// Node is one term in the graph.
type Node struct {
	Term   string
	Weight float64
}

// Edge is an undirected co-occurrence between two terms.
type Edge struct {
	A, B  string
	Count int
}

// Graph is a weighted co-occurrence graph.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// BuildGraph builds the co-occurrence graph of a corpus. Terms are
// ranked by total count; only bigrams between two surviving terms
// become edges. Token streams are per document, so bigrams never span
// a document boundary.
func BuildGraph(docTokens [][]string, opts Options) (*Graph, error) {
	var all []string
	for _, tokens := range docTokens {
		all = append(all, tokens...)
	}

	table, err := freq.Build(all, freq.Options{MaxWords: opts.maxTerms()})
	if err != nil {
		return nil, err
	}

	kept := make(map[string]struct{}, table.Len())
	g := &Graph{Nodes: make([]Node, table.Len())}
	for i, e := range table.Entries {
		g.Nodes[i] = Node{Term: e.Token, Weight: e.Weight}
		kept[e.Token] = struct{}{}
	}

	// Undirected pair counts, normalized so (a,b) and (b,a) merge.
	type pair struct{ a, b string }
	counts := make(map[pair]int)
	var order []pair
	for _, tokens := range docTokens {
		for _, bg := range text.Bigrams(tokens) {
			a, b, ok := splitBigram(bg)
			if !ok || a == b {
				continue
			}
			if _, in := kept[a]; !in {
				continue
			}
			if _, in := kept[b]; !in {
				continue
			}
			if a > b {
				a, b = b, a
			}
			p := pair{a, b}
			if counts[p] == 0 {
				order = append(order, p)
			}
			counts[p]++
		}
	}

	for _, p := range order {
		if counts[p] >= opts.minCount() {
			g.Edges = append(g.Edges, Edge{A: p.a, B: p.b, Count: counts[p]})
		}
	}
	// Heaviest edges first; term order breaks ties.
	sort.SliceStable(g.Edges, func(i, j int) bool {
		return g.Edges[i].Count > g.Edges[j].Count
	})

	if len(g.Edges) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput,
			"no co-occurring term pairs above count %d", opts.minCount())
	}
	return g, nil
}

// splitBigram separates a space-joined bigram back into its terms.
func splitBigram(bg string) (a, b string, ok bool) {
	for i := 0; i < len(bg); i++ {
		if bg[i] == ' ' {
			return bg[:i], bg[i+1:], true
		}
	}
	return "", "", false
}
