package cooc

import (
	"strings"
	"testing"

	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/errors"
)

func testDocs() [][]string {
	return [][]string{
		{"wine", "dark", "sea", "wine", "dark", "sea"},
		{"wine", "dark", "ship", "sails", "sea"},
	}
}

func TestBuildGraph(t *testing.T) {
	g, err := BuildGraph(testDocs(), Options{})
	if err != nil {
		t.Fatalf("BuildGraph error: %v", err)
	}

	if len(g.Nodes) == 0 || len(g.Edges) == 0 {
		t.Fatalf("degenerate graph: %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}

	// "wine dark" occurs three times and must be the heaviest edge.
	top := g.Edges[0]
	if !(top.A == "dark" && top.B == "wine") || top.Count != 3 {
		t.Errorf("top edge = %+v, want dark--wine ×3", top)
	}
}

func TestBuildGraphMaxTerms(t *testing.T) {
	g, err := BuildGraph(testDocs(), Options{MaxTerms: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(g.Nodes))
	}
	for _, e := range g.Edges {
		found := 0
		for _, n := range g.Nodes {
			if n.Term == e.A || n.Term == e.B {
				found++
			}
		}
		if found != 2 {
			t.Errorf("edge %+v references a pruned term", e)
		}
	}
}

func TestBuildGraphMinCount(t *testing.T) {
	g, err := BuildGraph(testDocs(), Options{MinCount: 3})
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range g.Edges {
		if e.Count < 3 {
			t.Errorf("edge %+v below the count threshold", e)
		}
	}
}

func TestBuildGraphEmpty(t *testing.T) {
	_, err := BuildGraph(nil, Options{})
	if errors.GetCode(err) != errors.ErrCodeEmptyInput {
		t.Errorf("code = %q, want EMPTY_INPUT", errors.GetCode(err))
	}

	// Tokens exist but nothing co-occurs often enough.
	_, err = BuildGraph([][]string{{"lone", "pair"}}, Options{MinCount: 5})
	if errors.GetCode(err) != errors.ErrCodeEmptyInput {
		t.Errorf("code = %q, want EMPTY_INPUT", errors.GetCode(err))
	}
}

func TestToDOT(t *testing.T) {
	g, err := BuildGraph(testDocs(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(g, Options{})

	for _, want := range []string{
		"graph cooc {",
		"layout=neato",
		`"wine"`,
		`"dark" -- "wine"`,
		"penwidth=",
		"overlap=false",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTQuoting(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{Term: `o"dd`, Weight: 1}},
	}
	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, `"o\"dd"`) {
		t.Errorf("term not quoted:\n%s", dot)
	}
}

func TestExportParse(t *testing.T) {
	g, err := BuildGraph(testDocs(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(g, Options{})

	l := Export(dot, 800, 600, cloud.StyleModern, Options{})
	if !l.IsCooc() || l.Engine != "neato" {
		t.Errorf("export = %+v", l)
	}

	got, err := Parse(l)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got != dot {
		t.Error("Parse should return the original DOT")
	}
}

func TestParseRejectsWrongType(t *testing.T) {
	_, err := Parse(cloud.Layout{VizType: cloud.VizTypeCloud, DOT: "graph {}"})
	if err == nil {
		t.Error("cloud layout should be rejected")
	}

	_, err = Parse(cloud.Layout{VizType: cloud.VizTypeCooc})
	if err == nil {
		t.Error("missing DOT should be rejected")
	}
}

func TestNormalizeSVG(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="243pt" height="119pt" viewBox="0.00 0.00 243.00 119.00">`)
	out := string(normalizeSVG(in, 800, 600))
	if !strings.Contains(out, `<svg width="800" height="600"`) {
		t.Errorf("dimensions not normalized:\n%s", out)
	}
	if !strings.Contains(out, "viewBox") {
		t.Error("viewBox must survive normalization")
	}
}
