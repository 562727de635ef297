package freq

// BuildComparison counts several documents into one table carrying
// per-document weight vectors. An entry's Weight is the sum over all
// documents; ByDoc[i] is its count in document i, zero when absent.
// Tie order follows the first appearance across the corpus, documents
// scanned in order.
//
// docNames and docTokens run parallel; the names are recorded on the
// table for legend rendering.
func BuildComparison(docNames []string, docTokens [][]string, opts Options) (*Table, error) {
	c := newCounter()
	byDoc := make([][]float64, 0)

	grow := func(idx int) {
		for idx >= len(byDoc) {
			byDoc = append(byDoc, make([]float64, len(docTokens)))
		}
	}

	for d, tokens := range docTokens {
		for _, tok := range tokens {
			i := c.add(tok, 1)
			grow(i)
			byDoc[i][d]++
		}
	}

	t, err := c.table(opts)
	if err != nil {
		return nil, err
	}

	t.Docs = append([]string(nil), docNames...)
	for i := range t.Entries {
		t.Entries[i].ByDoc = byDoc[c.index[t.Entries[i].Token]]
	}
	return t, nil
}
