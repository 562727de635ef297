// Package pipeline provides the core visualization pipeline for Lexcloud.
//
// This package implements the complete count → layout → render pipeline
// used by the CLI and the HTTP API. Centralizing it keeps behavior
// identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Count: Tokenize the corpus and build a weight table
//  2. Layout: Place weighted tokens on the canvas
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, HTML)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Paths:   []string{"iliad.txt"},
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lexcloud/lexcloud/pkg/cache"
	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/corpus"
	"github.com/lexcloud/lexcloud/pkg/errors"
	"github.com/lexcloud/lexcloud/pkg/freq"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxWords caps the weight table. Clouds beyond a hundred or
	// so words stop being readable.
	DefaultMaxWords = 100

	// DefaultMinWeight drops hapax legomena only when raised; 1 keeps
	// everything that appears at all.
	DefaultMinWeight = 1.0

	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultMinSize is the smallest font size in pixels.
	DefaultMinSize = 12.0

	// DefaultMaxSize is the largest font size in pixels.
	DefaultMaxSize = 64.0

	// DefaultSeed is the default random seed for reproducibility. A
	// zero Seed in Options selects this value, so 0 cannot be chosen
	// as an explicit seed.
	DefaultSeed = uint64(42)

	// DefaultPNGScale is the raster scale factor for PNG output.
	DefaultPNGScale = 2.0
)

// DefaultVizType is the default visualization type.
const DefaultVizType = cloud.VizTypeCloud

// DefaultStyle is the default visual style.
const DefaultStyle = cloud.StyleModern

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Count options
	Paths      []string          `json:"paths,omitempty"`     // input files, dirs or globs
	Text       string            `json:"text,omitempty"`      // inline corpus text (API)
	TextName   string            `json:"text_name,omitempty"` // document name for inline text
	Docs       []corpus.Document `json:"docs,omitempty"`      // inline documents (API)
	Compare    bool              `json:"compare,omitempty"`    // per-document comparison cloud
	TFIDF      bool              `json:"tfidf,omitempty"`      // TF-IDF weighting instead of raw counts
	NGram      int               `json:"ngram,omitempty"`      // token window size, 0/1 = single words
	MaxWords   int               `json:"max_words,omitempty"`  // weight table cap, 0 = default
	MinWeight  float64           `json:"min_weight,omitempty"` // minimum surviving weight
	LemmaTable string            `json:"lemma_table,omitempty"`
	Lemmatize  bool              `json:"lemmatize,omitempty"`
	Stopwords  []string          `json:"stopwords,omitempty"`   // extra stopwords
	KeepAll    bool              `json:"keep_all,omitempty"`    // disable stopword filtering
	FoldMarks  bool              `json:"fold_marks,omitempty"`  // strip combining marks
	KeepDigits bool              `json:"keep_digits,omitempty"` // keep numeric tokens

	// Layout options
	VizType          string  `json:"viz_type,omitempty"`
	Width            float64 `json:"width,omitempty"`
	Height           float64 `json:"height,omitempty"`
	MinSize          float64 `json:"min_size,omitempty"`
	MaxSize          float64 `json:"max_size,omitempty"`
	LogScale         bool    `json:"log_scale,omitempty"`
	ClampQuantile    float64 `json:"clamp_quantile,omitempty"`
	RotationFraction float64 `json:"rotation_fraction,omitempty"`
	RandomPlacement  bool    `json:"random_placement,omitempty"`
	Seed             uint64  `json:"seed,omitempty"` // 0 selects DefaultSeed; 0 itself is not usable as a seed

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Palette string   `json:"palette,omitempty"`
	Legend  bool     `json:"legend,omitempty"`
	Title   string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool

	// renderDefaulted and styleSet distinguish an explicitly requested
	// style from the applied default, so re-rendering a stored layout
	// keeps the layout's style unless the caller asked for another one.
	renderDefaulted bool
	styleSet        bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Table is the computed weight table.
	Table *freq.Table

	// CorpusHash is the content hash of the loaded corpus.
	CorpusHash string

	// Layout contains the placement data (or the DOT graph for cooc).
	Layout cloud.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DocCount    int
	TokenCount  int // distinct tokens in the weight table
	PlacedCount int
	DropCount   int
	CountTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	CountsHit bool // weight table came from cache
	LayoutHit bool // layout came from cache
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !cloud.ValidFormat(format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, html)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !cloud.ValidStyle(style) {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: modern, classic)", style)
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !cloud.ValidVizType(vizType) {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: cloud, cooc)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForCount(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForCount checks required fields for the count stage.
func (o *Options) ValidateForCount() error {
	if len(o.Paths) == 0 && o.Text == "" && len(o.Docs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "paths, text or docs is required")
	}

	if o.MaxWords == 0 {
		o.MaxWords = DefaultMaxWords
	}
	if o.MinWeight == 0 {
		o.MinWeight = DefaultMinWeight
	}
	if o.TextName == "" {
		o.TextName = "text"
	}
	if o.LemmaTable != "" {
		o.Lemmatize = true
	}

	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MinSize == 0 {
		o.MinSize = DefaultMinSize
	}
	if o.MaxSize == 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if o.MinSize > o.MaxSize {
		return errors.New(errors.ErrCodeInvalidScale,
			"min_size %g exceeds max_size %g", o.MinSize, o.MaxSize)
	}
	if o.RotationFraction < 0 || o.RotationFraction > 1 {
		return errors.New(errors.ErrCodeInvalidInput,
			"rotation_fraction must be in [0, 1], got %g", o.RotationFraction)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if !o.renderDefaulted {
		o.styleSet = o.Style != ""
		o.renderDefaulted = true
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{cloud.FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsCloud returns true if this is a word-cloud visualization.
func (o *Options) IsCloud() bool {
	return o.VizType == "" || o.VizType == cloud.VizTypeCloud
}

// IsCooc returns true if this is a co-occurrence visualization.
func (o *Options) IsCooc() bool {
	return o.VizType == cloud.VizTypeCooc
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// CountsKeyOpts returns cache key options for the count stage.
func (o *Options) CountsKeyOpts() cache.CountsKeyOpts {
	return cache.CountsKeyOpts{
		MaxWords:  o.MaxWords,
		MinWeight: o.MinWeight,
		TFIDF:     o.TFIDF,
		NGram:     o.NGram,
		Lemmatize: o.Lemmatize,
		FoldMarks: o.FoldMarks,
		Stopwords: !o.KeepAll,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType:          o.VizType,
		Width:            o.Width,
		Height:           o.Height,
		MinSize:          o.MinSize,
		MaxSize:          o.MaxSize,
		LogScale:         o.LogScale,
		RotationFraction: o.RotationFraction,
		RandomPlacement:  o.RandomPlacement,
		Seed:             o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Style:   o.Style,
		Palette: o.Palette,
		Legend:  o.Legend,
	}
}
