package pipeline

import (
	"fmt"

	"github.com/lexcloud/lexcloud/pkg/corpus"
	"github.com/lexcloud/lexcloud/pkg/freq"
	"github.com/lexcloud/lexcloud/pkg/text"
)

// LoadCorpus loads the corpus named by the options: inline documents,
// inline text, or input paths, in that order of preference.
func LoadCorpus(opts Options) (*corpus.Corpus, error) {
	if len(opts.Docs) > 0 {
		c := &corpus.Corpus{}
		for _, d := range opts.Docs {
			c.Add(d.Name, d.Text)
		}
		return c, nil
	}
	if opts.Text != "" {
		c := &corpus.Corpus{}
		c.Add(opts.TextName, opts.Text)
		return c, nil
	}
	return corpus.Load(opts.Paths...)
}

// Tokenize turns the corpus into one normalized token stream per
// document, applying the configured stopword filter, lemmatizer and
// n-gram expansion.
func Tokenize(c *corpus.Corpus, opts Options) ([][]string, error) {
	tok := text.NewTokenizer(text.TokenizerOptions{
		FoldMarks:  opts.FoldMarks,
		KeepDigits: opts.KeepDigits,
	})

	var sw *text.Stopwords
	if !opts.KeepAll {
		sw = text.NewStopwords(opts.Stopwords...)
	}

	var lem *text.Lemmatizer
	if opts.Lemmatize {
		var table map[string]string
		if opts.LemmaTable != "" {
			var err error
			table, err = text.LoadLemmaTable(opts.LemmaTable)
			if err != nil {
				return nil, fmt.Errorf("lemma table: %w", err)
			}
		}
		lem = text.NewLemmatizer(table)
	}

	streams := make([][]string, len(c.Docs))
	for i, doc := range c.Docs {
		tokens := tok.Tokenize(doc.Text)
		if sw != nil {
			tokens = sw.Filter(tokens)
		}
		tokens = lem.Apply(tokens)
		if opts.NGram > 1 {
			tokens = text.NGrams(tokens, opts.NGram)
		}
		streams[i] = tokens
	}
	return streams, nil
}

// Count builds the weight table from per-document token streams.
// Comparison mode keeps per-document vectors; TF-IDF reweighs across
// documents; otherwise raw counts over the merged stream.
func Count(c *corpus.Corpus, streams [][]string, opts Options) (*freq.Table, error) {
	fOpts := freq.Options{MaxWords: opts.MaxWords, MinWeight: opts.MinWeight}

	switch {
	case opts.Compare:
		return freq.BuildComparison(c.Names(), streams, fOpts)
	case opts.TFIDF:
		return freq.BuildTFIDF(streams, fOpts)
	default:
		var all []string
		for _, s := range streams {
			all = append(all, s...)
		}
		return freq.Build(all, fOpts)
	}
}
