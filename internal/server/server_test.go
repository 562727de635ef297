package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lexcloud/lexcloud/pkg/cache"
	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })

	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(store, nil, logger)
	srv := New(runner, store, logger)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postCloud(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/clouds", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestCreateAndFetchCloud(t *testing.T) {
	ts := newTestServer(t)

	resp := postCloud(t, ts, `{"text": "wrath wrath wrath sea sea ships"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	created := decodeJSON[createResponse](t, resp)

	if created.ID == "" {
		t.Fatal("missing cloud id")
	}
	if created.VizType != cloud.VizTypeCloud {
		t.Errorf("viz_type = %q, want cloud", created.VizType)
	}
	if created.Placed != 3 {
		t.Errorf("placed = %d, want 3", created.Placed)
	}

	// Stored layout round-trips through GET.
	resp, err := http.Get(ts.URL + "/v1/clouds/" + created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	l, err := cloud.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("stored layout malformed: %v", err)
	}
	if len(l.Words) != 3 {
		t.Errorf("stored words = %d, want 3", len(l.Words))
	}

	// SVG artifact renders from the stored layout.
	resp, err = http.Get(ts.URL + "/v1/clouds/" + created.ID + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("svg status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	svg, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "wrath") {
		t.Error("svg artifact malformed")
	}
}

func TestCreateCloudMultiDoc(t *testing.T) {
	ts := newTestServer(t)

	resp := postCloud(t, ts, `{
		"docs": [
			{"name": "iliad", "text": "wrath wrath sea"},
			{"name": "odyssey", "text": "sea home journey"}
		],
		"compare": true,
		"legend": true
	}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	created := decodeJSON[createResponse](t, resp)

	if len(created.Docs) != 2 {
		t.Errorf("docs = %v, want two entries", created.Docs)
	}

	// Legend survives into the re-rendered artifact.
	artifact, err := http.Get(ts.URL + "/v1/clouds/" + created.ID + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	defer artifact.Body.Close()
	svg, _ := io.ReadAll(artifact.Body)
	if !strings.Contains(string(svg), `class="legend"`) {
		t.Error("comparison svg should carry a legend")
	}
}

func TestCreateCloudRejectsPaths(t *testing.T) {
	ts := newTestServer(t)

	resp := postCloud(t, ts, `{"paths": ["/etc/passwd"]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	e := decodeJSON[errorResponse](t, resp)
	if e.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", e.Code)
	}
}

func TestCreateCloudEmptyInput(t *testing.T) {
	ts := newTestServer(t)

	resp := postCloud(t, ts, `{"text": "the and of to"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	e := decodeJSON[errorResponse](t, resp)
	if e.Code != "EMPTY_INPUT" {
		t.Errorf("code = %q, want EMPTY_INPUT", e.Code)
	}
}

func TestGetCloudNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/clouds/no-such-id")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	e := decodeJSON[errorResponse](t, resp)
	if e.Code != "CLOUD_NOT_FOUND" {
		t.Errorf("code = %q, want CLOUD_NOT_FOUND", e.Code)
	}
}

func TestGetArtifactInvalidFormat(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/clouds/whatever.bmp")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	e := decodeJSON[errorResponse](t, resp)
	if e.Code != "INVALID_FORMAT" {
		t.Errorf("code = %q, want INVALID_FORMAT", e.Code)
	}
}
