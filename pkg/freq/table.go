package freq

import (
	"sort"

	"github.com/lexcloud/lexcloud/pkg/errors"
)

// Entry is one token with its weight. For comparison tables ByDoc holds
// the per-document weights; a zero there means the token is absent from
// that document.
type Entry struct {
	Token  string    `json:"token"`
	Weight float64   `json:"weight"`
	ByDoc  []float64 `json:"by_doc,omitempty"`
}

// Dominant returns the index of the document with the highest weight for
// this entry. Ties resolve to the lower index. Returns -1 when the entry
// carries no per-document vector.
func (e Entry) Dominant() int {
	if len(e.ByDoc) == 0 {
		return -1
	}
	best := 0
	for i, w := range e.ByDoc {
		if w > e.ByDoc[best] {
			best = i
		}
	}
	return best
}

// Table is an ordered weight table: entries sorted by descending weight,
// ties in first-seen order.
type Table struct {
	Entries []Entry  `json:"entries"`
	Docs    []string `json:"docs,omitempty"`
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.Entries) }

// Tokens returns the tokens in table order.
func (t *Table) Tokens() []string {
	out := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		out[i] = e.Token
	}
	return out
}

// MaxWeight returns the largest weight, or 0 for an empty table.
func (t *Table) MaxWeight() float64 {
	if len(t.Entries) == 0 {
		return 0
	}
	return t.Entries[0].Weight
}

// MinWeight returns the smallest weight, or 0 for an empty table.
func (t *Table) MinWeight() float64 {
	if len(t.Entries) == 0 {
		return 0
	}
	return t.Entries[len(t.Entries)-1].Weight
}

// Options controls table construction.
type Options struct {
	// MaxWords caps the table at the N heaviest tokens. 0 means unbounded.
	MaxWords int

	// MinWeight drops tokens weighing less than this. Values below 1 are
	// treated as 1.
	MinWeight float64
}

func (o Options) minWeight() float64 {
	if o.MinWeight < 1 {
		return 1
	}
	return o.MinWeight
}

// counter accumulates weights while remembering first-seen order.
type counter struct {
	index  map[string]int
	tokens []string
	weight []float64
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(token string, w float64) int {
	i, ok := c.index[token]
	if !ok {
		i = len(c.tokens)
		c.index[token] = i
		c.tokens = append(c.tokens, token)
		c.weight = append(c.weight, 0)
	}
	c.weight[i] += w
	return i
}

// table sorts, thresholds and caps the accumulated counts.
func (c *counter) table(opts Options) (*Table, error) {
	min := opts.minWeight()

	order := make([]int, 0, len(c.tokens))
	for i := range c.tokens {
		if c.weight[i] >= min {
			order = append(order, i)
		}
	}
	// Descending weight; the first-seen index breaks ties.
	sort.SliceStable(order, func(a, b int) bool {
		return c.weight[order[a]] > c.weight[order[b]]
	})

	if opts.MaxWords > 0 && len(order) > opts.MaxWords {
		order = order[:opts.MaxWords]
	}
	if len(order) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput,
			"no tokens survived counting; input empty or entirely filtered")
	}

	t := &Table{Entries: make([]Entry, len(order))}
	for i, idx := range order {
		t.Entries[i] = Entry{Token: c.tokens[idx], Weight: c.weight[idx]}
	}
	return t, nil
}

// Build counts a token stream into a table.
// Returns an EMPTY_INPUT error when nothing survives the MinWeight
// threshold, including the empty-stream case.
func Build(tokens []string, opts Options) (*Table, error) {
	c := newCounter()
	for _, tok := range tokens {
		c.add(tok, 1)
	}
	return c.table(opts)
}

// BuildFromPairs builds a table from pre-aggregated token/weight pairs.
// Duplicate tokens accumulate. Pair order defines tie order.
func BuildFromPairs(pairs []Entry, opts Options) (*Table, error) {
	c := newCounter()
	for _, p := range pairs {
		c.add(p.Token, p.Weight)
	}
	return c.table(opts)
}
