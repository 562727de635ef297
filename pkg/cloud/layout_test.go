package cloud

import (
	"path/filepath"
	"strings"
	"testing"
)

func sampleLayout() Layout {
	return Layout{
		VizType: VizTypeCloud,
		Width:   800,
		Height:  600,
		Style:   StyleModern,
		Seed:    42,
		Words: []PlacedWord{
			{Token: "sea", Weight: 10, Size: 64, X: 400, Y: 300, Width: 110, Height: 64},
			{Token: "wine", Weight: 4, Size: 32, X: 200, Y: 150, Width: 72, Height: 32, Rotate: true},
		},
		Dropped: []string{"ox"},
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := sampleLayout()

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout error: %v", err)
	}

	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout error: %v", err)
	}
	if got.VizType != VizTypeCloud || len(got.Words) != 2 {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got.Words[1].Rotate != true {
		t.Error("rotation flag lost in round trip")
	}
	if got.Dropped[0] != "ox" {
		t.Error("dropped list lost in round trip")
	}
}

func TestUnmarshalLayoutDefaultsVizType(t *testing.T) {
	data := []byte(`{"width": 100, "height": 100, "words": [{"token": "a"}]}`)
	l, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout error: %v", err)
	}
	if !l.IsCloud() {
		t.Errorf("VizType should default to cloud, got %q", l.VizType)
	}
}

func TestUnmarshalLayoutValidation(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "cloud without words",
			json: `{"viz_type": "cloud", "width": 100, "height": 100}`,
			want: "must contain words",
		},
		{
			name: "cooc without dot",
			json: `{"viz_type": "cooc", "width": 100, "height": 100}`,
			want: "must contain DOT",
		},
		{
			name: "zero frame",
			json: `{"viz_type": "cloud", "words": [{"token": "a"}]}`,
			want: "positive dimensions",
		},
		{
			name: "malformed",
			json: `{`,
			want: "unmarshal",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.json))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(sampleLayout(), path); err != nil {
		t.Fatalf("WriteLayoutFile error: %v", err)
	}
	l, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile error: %v", err)
	}
	if len(l.Words) != 2 || l.Seed != 42 {
		t.Errorf("file round trip lost data: %+v", l)
	}
}

func TestValidators(t *testing.T) {
	if !ValidFormat("svg") || ValidFormat("bmp") {
		t.Error("ValidFormat misclassified")
	}
	if !ValidStyle("classic") || ValidStyle("vapor") {
		t.Error("ValidStyle misclassified")
	}
	if !ValidVizType("cooc") || ValidVizType("tower") {
		t.Error("ValidVizType misclassified")
	}
}
