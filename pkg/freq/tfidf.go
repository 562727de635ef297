package freq

import "math"

// BuildTFIDF weighs tokens across a multi-document corpus with TF-IDF.
// Term frequency is normalized by document length; inverse document
// frequency is log(1 + N/(1+df)). The final weight of a token is the
// sum of its per-document tf·idf contributions, rescaled so the
// MinWeight threshold keeps its count-like meaning.
//
// docTokens holds one token stream per document, in corpus order.
func BuildTFIDF(docTokens [][]string, opts Options) (*Table, error) {
	n := len(docTokens)

	// Document frequency: how many documents contain each token.
	df := make(map[string]int)
	for _, tokens := range docTokens {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			seen[tok] = struct{}{}
		}
		for tok := range seen {
			df[tok]++
		}
	}

	c := newCounter()
	for _, tokens := range docTokens {
		if len(tokens) == 0 {
			continue
		}
		tf := make(map[string]float64, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		docLen := float64(len(tokens))
		// Walk the stream rather than the map so first-seen order is
		// deterministic.
		done := make(map[string]struct{}, len(tf))
		for _, tok := range tokens {
			if _, ok := done[tok]; ok {
				continue
			}
			done[tok] = struct{}{}
			idf := math.Log(1 + float64(n)/float64(1+df[tok]))
			c.add(tok, (tf[tok]/docLen)*idf)
		}
	}

	// tf·idf weights live well below 1; scale into count territory so the
	// default MinWeight of 1 does not erase everything.
	var max float64
	for _, w := range c.weight {
		if w > max {
			max = w
		}
	}
	if max > 0 {
		for i := range c.weight {
			c.weight[i] = c.weight[i] / max * 100
		}
	}

	return c.table(opts)
}
