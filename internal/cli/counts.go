package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexcloud/lexcloud/pkg/pipeline"
)

// countsOpts holds the flags for the counts command.
type countsOpts struct {
	top       int      // number of rows to print
	asJSON    bool     // dump the full table as JSON
	tfidf     bool     // TF-IDF weighting
	compare   bool     // per-document vectors
	ngram     int      // token window size
	maxWords  int      // weight table cap
	minWeight float64  // minimum surviving weight
	lemmatize bool     // suffix-rule lemmatization
	stopwords []string // extra stopwords
	keepAll   bool     // disable stopword filtering
	foldMarks bool     // strip combining marks
	noCache   bool     // bypass the pipeline cache
}

// newCountsCmd creates the counts command for inspecting weight tables
// without rendering anything.
func newCountsCmd(cfg *Config) *cobra.Command {
	opts := countsOpts{top: 20}

	cmd := &cobra.Command{
		Use:   "counts [paths...]",
		Short: "Print the weight table without rendering",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCounts(cmd, cfg, args, &opts)
		},
	}

	cmd.Flags().IntVar(&opts.top, "top", opts.top, "number of rows to print (0 = all)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the full table as JSON")
	cmd.Flags().BoolVar(&opts.tfidf, "tfidf", false, "TF-IDF weighting across documents")
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "per-document weight vectors")
	cmd.Flags().IntVar(&opts.ngram, "ngram", 0, "token window size (2 = bigrams)")
	cmd.Flags().IntVar(&opts.maxWords, "max-words", 0, "weight table cap (default 100)")
	cmd.Flags().Float64Var(&opts.minWeight, "min-weight", 0, "minimum surviving weight (default 1)")
	cmd.Flags().BoolVar(&opts.lemmatize, "lemmatize", false, "enable suffix-rule lemmatization")
	cmd.Flags().StringSliceVar(&opts.stopwords, "stopword", nil, "extra stopword (repeatable)")
	cmd.Flags().BoolVar(&opts.keepAll, "keep-all", false, "disable stopword filtering")
	cmd.Flags().BoolVar(&opts.foldMarks, "fold-marks", false, "strip combining marks")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the pipeline cache")

	return cmd
}

// runCounts tokenizes the corpus and prints the weight table.
func runCounts(cmd *cobra.Command, cfg *Config, paths []string, o *countsOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	cacheBackend, err := commandCache(ctx, cfg, o.noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cacheBackend, nil, logger)
	defer runner.Close()

	stopwords := append([]string(nil), cfg.Defaults.Stopwords...)
	stopwords = append(stopwords, o.stopwords...)

	opts := pipeline.Options{
		Paths:     paths,
		Compare:   o.compare,
		TFIDF:     o.tfidf,
		NGram:     o.ngram,
		MaxWords:  o.maxWords,
		MinWeight: o.minWeight,
		Lemmatize: o.lemmatize,
		Stopwords: stopwords,
		KeepAll:   o.keepAll,
		FoldMarks: o.foldMarks,
	}
	if err := opts.ValidateForCount(); err != nil {
		return err
	}

	c, err := pipeline.LoadCorpus(opts)
	if err != nil {
		return err
	}
	streams, err := pipeline.Tokenize(c, opts)
	if err != nil {
		return err
	}
	table, _, err := runner.CountWithCacheInfo(ctx, c, streams, opts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Counted %d distinct tokens across %d documents", table.Len(), len(c.Docs)))

	if o.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	}

	rows := table.Entries
	if o.top > 0 && len(rows) > o.top {
		rows = rows[:o.top]
	}

	fmt.Println(StyleTitle.Render("Weight table"))
	for i, e := range rows {
		line := fmt.Sprintf("%3d. %-24s %8.2f", i+1, e.Token, e.Weight)
		if len(table.Docs) > 1 && len(e.ByDoc) == len(table.Docs) {
			line += "  " + StyleDim.Render("dominant: "+table.Docs[e.Dominant()])
		}
		fmt.Println(line)
	}
	if len(rows) < table.Len() {
		printDetail("... and %d more (use --top 0 for all)", table.Len()-len(rows))
	}
	if len(table.Docs) > 1 {
		printDetail("documents: %s", strings.Join(table.Docs, ", "))
	}
	return nil
}
