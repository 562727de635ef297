package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexcloud/lexcloud/pkg/cache"
	"github.com/lexcloud/lexcloud/pkg/pipeline"
)

// cloudOpts holds the command-line flags shared by cloud and compare.
type cloudOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: svg, png, pdf, json, html
	vizType    string   // visualization type: cloud, cooc
	style      string   // visual style: modern, classic
	palette    string   // color palette name
	width      float64  // frame width in pixels
	height     float64  // frame height in pixels
	minSize    float64  // smallest font size
	maxSize    float64  // largest font size
	logScale   bool     // logarithmic size interpolation
	clamp      float64  // quantile clamp for outlier weights (0 = off)
	rotation   float64  // fraction of words rotated 90 degrees
	random     bool     // uniform random placement instead of spiral
	seed       uint64   // random seed
	maxWords   int      // weight table cap
	minWeight  float64  // minimum surviving weight
	tfidf      bool     // TF-IDF weighting across documents
	ngram      int      // token window size
	lemmaTable string   // path to a TSV lemma table
	lemmatize  bool     // enable suffix-rule lemmatization
	stopwords  []string // extra stopwords
	keepAll    bool     // disable stopword filtering
	foldMarks  bool     // strip combining marks (café → cafe)
	keepDigits bool     // keep numeric tokens
	legend     bool     // draw the per-document legend
	title      string   // HTML page title
	compare    bool     // per-document comparison cloud
	noCache    bool     // bypass the pipeline cache
}

// newCloudCmd creates the cloud command for building word clouds.
func newCloudCmd(cfg *Config) *cobra.Command {
	var formatsStr string
	opts := cloudOpts{}

	cmd := &cobra.Command{
		Use:   "cloud [paths...]",
		Short: "Build a word cloud from files, directories or globs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runCloud(cmd.Context(), cfg, args, &opts)
		},
	}

	bindCloudFlags(cmd, &opts, &formatsStr)
	return cmd
}

// bindCloudFlags registers the shared cloud/compare flag set.
func bindCloudFlags(cmd *cobra.Command, opts *cloudOpts, formatsStr *string) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, html (comma-separated)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", "", "visualization type: cloud (default), cooc")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: modern (default), classic")
	cmd.Flags().StringVar(&opts.palette, "palette", "", "color palette: vivid (default), muted, mono, ocean")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width (default 800)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height (default 600)")
	cmd.Flags().Float64Var(&opts.minSize, "min-size", 0, "smallest font size (default 12)")
	cmd.Flags().Float64Var(&opts.maxSize, "max-size", 0, "largest font size (default 64)")
	cmd.Flags().BoolVar(&opts.logScale, "log-scale", false, "logarithmic font-size interpolation")
	cmd.Flags().Float64Var(&opts.clamp, "clamp-quantile", 0, "clamp weights above this quantile (0 = off)")
	cmd.Flags().Float64Var(&opts.rotation, "rotation", 0, "fraction of words rotated 90° (0 to 1)")
	cmd.Flags().BoolVar(&opts.random, "random-placement", false, "uniform random placement instead of spiral")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed; 0 selects the default seed 42")
	cmd.Flags().IntVar(&opts.maxWords, "max-words", 0, "weight table cap (default 100)")
	cmd.Flags().Float64Var(&opts.minWeight, "min-weight", 0, "minimum surviving weight (default 1)")
	cmd.Flags().BoolVar(&opts.tfidf, "tfidf", false, "TF-IDF weighting across documents")
	cmd.Flags().IntVar(&opts.ngram, "ngram", 0, "token window size (2 = bigrams)")
	cmd.Flags().StringVar(&opts.lemmaTable, "lemma-table", "", "TSV lemma table (token<TAB>lemma)")
	cmd.Flags().BoolVar(&opts.lemmatize, "lemmatize", false, "enable suffix-rule lemmatization")
	cmd.Flags().StringSliceVar(&opts.stopwords, "stopword", nil, "extra stopword (repeatable)")
	cmd.Flags().BoolVar(&opts.keepAll, "keep-all", false, "disable stopword filtering")
	cmd.Flags().BoolVar(&opts.foldMarks, "fold-marks", false, "strip combining marks (café → cafe)")
	cmd.Flags().BoolVar(&opts.keepDigits, "keep-digits", false, "keep numeric tokens")
	cmd.Flags().BoolVar(&opts.legend, "legend", opts.legend, "draw the per-document legend")
	cmd.Flags().StringVar(&opts.title, "title", "", "HTML page title")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the pipeline cache")
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// buildPipelineOptions merges config defaults and flags into pipeline options.
func buildPipelineOptions(cfg *Config, paths []string, o *cloudOpts) pipeline.Options {
	style := o.style
	if style == "" {
		style = cfg.Defaults.Style
	}
	palette := o.palette
	if palette == "" {
		palette = cfg.Defaults.Palette
	}
	stopwords := append([]string(nil), cfg.Defaults.Stopwords...)
	stopwords = append(stopwords, o.stopwords...)

	return pipeline.Options{
		Paths:            paths,
		Compare:          o.compare,
		TFIDF:            o.tfidf,
		NGram:            o.ngram,
		MaxWords:         o.maxWords,
		MinWeight:        o.minWeight,
		LemmaTable:       o.lemmaTable,
		Lemmatize:        o.lemmatize,
		Stopwords:        stopwords,
		KeepAll:          o.keepAll,
		FoldMarks:        o.foldMarks,
		KeepDigits:       o.keepDigits,
		VizType:          o.vizType,
		Width:            o.width,
		Height:           o.height,
		MinSize:          o.minSize,
		MaxSize:          o.maxSize,
		LogScale:         o.logScale,
		ClampQuantile:    o.clamp,
		RotationFraction: o.rotation,
		RandomPlacement:  o.random,
		Seed:             o.seed,
		Formats:          o.formats,
		Style:            style,
		Palette:          palette,
		Legend:           o.legend,
		Title:            o.title,
	}
}

// runCloud executes the full pipeline and writes the requested artifacts.
func runCloud(ctx context.Context, cfg *Config, paths []string, o *cloudOpts) error {
	logger := loggerFromContext(ctx)

	c, err := commandCache(ctx, cfg, o.noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	opts := buildPipelineOptions(cfg, paths, o)

	spinner := newSpinner(ctx, "Building cloud...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	base := basePath(o.output, paths[0])
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	cached := result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	printStats(result.Stats.DocCount, result.Stats.PlacedCount, result.Stats.DropCount, cached)
	if len(result.Layout.Dropped) > 0 {
		printDetail("dropped: %s", strings.Join(result.Layout.Dropped, ", "))
	}
	return nil
}

// commandCache opens the configured cache backend, or a null cache when
// caching is disabled.
func commandCache(ctx context.Context, cfg *Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return openCache(ctx, cfg)
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from the first input.
// If output has a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		input = filepath.Base(strings.TrimSuffix(input, "/"))
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidateFormat(ext) == nil {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}
