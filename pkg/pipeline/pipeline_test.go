package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lexcloud/lexcloud/pkg/cache"
	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/errors"
	"github.com/lexcloud/lexcloud/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"html", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"modern", false},
		{"classic", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"cloud", false},
		{"cooc", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForCount(t *testing.T) {
	// Missing input
	opts := Options{}
	if err := opts.ValidateForCount(); err == nil {
		t.Error("Missing paths/text should fail")
	}

	// Inline text is enough
	opts = Options{Text: "sing goddess"}
	if err := opts.ValidateForCount(); err != nil {
		t.Errorf("Inline text should pass: %v", err)
	}

	// Check defaults were set
	if opts.MaxWords != DefaultMaxWords {
		t.Errorf("MaxWords should be %d, got %d", DefaultMaxWords, opts.MaxWords)
	}
	if opts.MinWeight != DefaultMinWeight {
		t.Errorf("MinWeight should be %g, got %g", DefaultMinWeight, opts.MinWeight)
	}

	// Lemma table implies lemmatization
	opts = Options{Text: "x", LemmaTable: "lemmas.tsv"}
	if err := opts.ValidateForCount(); err != nil {
		t.Fatal(err)
	}
	if !opts.Lemmatize {
		t.Error("LemmaTable should imply Lemmatize")
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	opts := Options{MinSize: 60, MaxSize: 10}
	err := opts.ValidateForLayout()
	if errors.GetCode(err) != errors.ErrCodeInvalidScale {
		t.Errorf("inverted scale code = %q, want INVALID_SCALE", errors.GetCode(err))
	}

	opts = Options{RotationFraction: 1.5}
	if err := opts.ValidateForLayout(); err == nil {
		t.Error("rotation_fraction above 1 should fail")
	}
}

func TestOptionsIsCloud(t *testing.T) {
	opts := Options{}
	if !opts.IsCloud() {
		t.Error("Empty VizType should be cloud")
	}

	opts.VizType = "cloud"
	if !opts.IsCloud() {
		t.Error("cloud VizType should be cloud")
	}

	opts.VizType = "cooc"
	if opts.IsCloud() {
		t.Error("cooc VizType should not be cloud")
	}
	if !opts.IsCooc() {
		t.Error("cooc VizType should be cooc")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Text: "sing goddess sing"}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalVizType := opts.VizType
	originalStyle := opts.Style
	originalSeed := opts.Seed

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.VizType != originalVizType {
		t.Error("VizType changed on second call")
	}
	if opts.Style != originalStyle {
		t.Error("Style changed on second call")
	}
	if opts.Seed != originalSeed {
		t.Error("Seed changed on second call")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
	if opts.MinSize != DefaultMinSize || opts.MaxSize != DefaultMaxSize {
		t.Errorf("size range should default to [%g, %g]", DefaultMinSize, DefaultMaxSize)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != cloud.FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
}

// =============================================================================
// End-to-end runner tests (svg/json only - no external tools needed)
// =============================================================================

const testText = `Sing, O goddess, the wrath of Achilles son of Peleus,
that brought countless ills upon the Achaeans. Many a brave soul did it
send hurrying down to Hades, and many a hero did it yield a prey to dogs
and vultures. The wrath of Achilles was the will of Zeus.`

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Text:    testText,
		Formats: []string{"svg", "json"},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.PlacedCount == 0 {
		t.Error("no words placed")
	}
	if result.Table.Len() == 0 {
		t.Error("empty weight table")
	}

	svg := string(result.Artifacts["svg"])
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "wrath") {
		t.Error("svg artifact malformed")
	}

	l, err := cloud.UnmarshalLayout(result.Artifacts["json"])
	if err != nil {
		t.Fatalf("json artifact malformed: %v", err)
	}
	if l.Seed != DefaultSeed {
		t.Errorf("layout seed = %d, want default %d", l.Seed, DefaultSeed)
	}
}

func TestRunnerExecuteEmptyCorpus(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	// Only stopwords survive tokenization → EMPTY_INPUT.
	_, err := runner.Execute(context.Background(), Options{
		Text:    "the and of to",
		Formats: []string{"svg"},
	})
	if errors.GetCode(err) != errors.ErrCodeEmptyInput {
		t.Errorf("code = %q, want EMPTY_INPUT", errors.GetCode(err))
	}
}

func TestRunnerExecuteFromFiles(t *testing.T) {
	dir := t.TempDir()
	for name, text := range map[string]string{
		"iliad.txt":   "wrath wrath sea ships",
		"odyssey.txt": "sea sea home journey",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Paths:   []string{dir},
		Compare: true,
		Legend:  true,
		Formats: []string{"svg"},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.DocCount != 2 {
		t.Errorf("DocCount = %d, want 2", result.Stats.DocCount)
	}
	if len(result.Layout.Docs) != 2 {
		t.Errorf("layout Docs = %v", result.Layout.Docs)
	}
	if !strings.Contains(string(result.Artifacts["svg"]), `class="legend"`) {
		t.Error("comparison svg should carry a legend")
	}
}

func TestRunnerCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{Text: testText, Formats: []string{"svg"}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.CountsHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss everywhere")
	}

	second, err := runner.Execute(context.Background(), Options{Text: testText, Formats: []string{"svg"}})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.CountsHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit everywhere: %+v", second.CacheInfo)
	}

	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached artifact differs from computed one")
	}

	// A different seed must bypass the layout cache.
	third, err := runner.Execute(context.Background(), Options{Text: testText, Formats: []string{"svg"}, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("different seed should miss the layout cache")
	}
	if !third.CacheInfo.CountsHit {
		t.Error("counts are seed-independent and should still hit")
	}
}

func TestRunnerCoocPipeline(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Text:    "wine dark sea wine dark sea wine dark",
		VizType: "cooc",
		Formats: []string{"json"},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if !result.Layout.IsCooc() {
		t.Errorf("viz type = %q", result.Layout.VizType)
	}
	if !strings.Contains(result.Layout.DOT, "graph cooc") {
		t.Error("cooc layout missing DOT")
	}
}

func TestApplyLayoutMetadataStoredStyle(t *testing.T) {
	stored := cloud.Layout{VizType: cloud.VizTypeCloud, Style: "classic", Palette: "ocean"}

	// Defaulted style: the stored layout's style and palette win.
	opts := Options{Formats: []string{"svg"}}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	got := applyLayoutMetadata(opts, stored)
	if got.Style != "classic" {
		t.Errorf("defaulted style = %q, want stored classic", got.Style)
	}
	if got.Palette != "ocean" {
		t.Errorf("defaulted palette = %q, want stored ocean", got.Palette)
	}

	// An explicit request for the default style must not be clobbered
	// by the stored layout.
	opts = Options{Formats: []string{"svg"}, Style: "modern"}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	got = applyLayoutMetadata(opts, stored)
	if got.Style != "modern" {
		t.Errorf("explicit style = %q, want modern", got.Style)
	}
}

func TestRenderFromLayoutDataExplicitStyle(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Text:    testText,
		Style:   "classic",
		Formats: []string{"json"},
	})
	if err != nil {
		t.Fatal(err)
	}
	data, err := cloud.MarshalLayout(result.Layout)
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := RenderFromLayoutData(context.Background(), data, Options{
		Text:    testText,
		Style:   "modern",
		Formats: []string{"svg"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(artifacts["svg"]), "Georgia") {
		t.Error("explicit modern re-render still uses the classic serif stack")
	}
}

// recordingCacheHooks counts cache events per stage.
type recordingCacheHooks struct {
	observability.NoopCacheHooks
	hits   map[string]int
	misses map[string]int
}

func (r *recordingCacheHooks) OnCacheHit(ctx context.Context, stage string)  { r.hits[stage]++ }
func (r *recordingCacheHooks) OnCacheMiss(ctx context.Context, stage string) { r.misses[stage]++ }

func TestRunnerCacheHooks(t *testing.T) {
	hooks := &recordingCacheHooks{hits: map[string]int{}, misses: map[string]int{}}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{Text: testText, Formats: []string{"svg"}}
	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if hooks.misses["counts"] != 1 || hooks.misses["layout"] != 1 || hooks.misses["artifact"] != 1 {
		t.Errorf("first run misses = %v", hooks.misses)
	}

	if _, err := runner.Execute(context.Background(), Options{Text: testText, Formats: []string{"svg"}}); err != nil {
		t.Fatal(err)
	}
	if hooks.hits["counts"] != 1 || hooks.hits["layout"] != 1 || hooks.hits["artifact"] != 1 {
		t.Errorf("second run hits = %v", hooks.hits)
	}
}
