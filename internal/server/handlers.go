package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lexcloud/lexcloud/pkg/cache"
	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/errors"
	"github.com/lexcloud/lexcloud/pkg/pipeline"
)

// storedCloud is the record kept per cloud id. The render options travel
// with the layout so that GET /{id}.{format} reproduces the style and
// palette the cloud was created with.
type storedCloud struct {
	Layout  json.RawMessage  `json:"layout"`
	Options pipeline.Options `json:"options"`
}

// createResponse is returned by POST /v1/clouds.
type createResponse struct {
	ID      string   `json:"id"`
	VizType string   `json:"viz_type"`
	Placed  int      `json:"placed"`
	Dropped []string `json:"dropped,omitempty"`
	Docs    []string `json:"docs,omitempty"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func cloudKey(id string) string {
	return "cloud:v1:" + id
}

// handleCreateCloud computes a cloud from inline text and stores the layout.
func (s *Server) handleCreateCloud(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	body := io.LimitReader(r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	// The API takes inline text only; server-side file access is not
	// exposed to clients.
	if len(opts.Paths) > 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "paths are not accepted over the API; send text or docs"))
		return
	}
	if opts.LemmaTable != "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "lemma_table files are not accepted over the API"))
		return
	}

	// The layout is always needed for storage; artifacts come later.
	opts.Formats = []string{cloud.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	layoutData, err := cloud.MarshalLayout(result.Layout)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout"))
		return
	}

	// Strip the corpus before storing; rendering needs only the
	// style-bearing options.
	opts.Text = ""
	opts.Docs = nil
	opts.Formats = nil

	id := uuid.NewString()
	record, err := json.Marshal(storedCloud{Layout: layoutData, Options: opts})
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "serialize record"))
		return
	}
	if err := s.store.Set(r.Context(), cloudKey(id), record, cache.TTLLayout); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store cloud"))
		return
	}

	s.logger.Info("created cloud",
		"id", id,
		"viz_type", result.Layout.VizType,
		"placed", result.Stats.PlacedCount,
		"dropped", result.Stats.DropCount)

	writeJSON(w, http.StatusCreated, createResponse{
		ID:      id,
		VizType: result.Layout.VizType,
		Placed:  result.Stats.PlacedCount,
		Dropped: result.Layout.Dropped,
		Docs:    result.Layout.Docs,
	})
}

// handleGetCloud returns the stored layout as JSON.
func (s *Server) handleGetCloud(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadCloud(r, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rec.Layout)
}

// handleGetArtifact re-renders the stored layout in the requested format.
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.loadCloud(r, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	opts := rec.Options
	opts.Formats = []string{format}

	artifacts, err := pipeline.RenderFromLayoutData(r.Context(), rec.Layout, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// loadCloud fetches and decodes a stored cloud record.
func (s *Server) loadCloud(r *http.Request, id string) (*storedCloud, error) {
	data, hit, err := s.store.Get(r.Context(), cloudKey(id))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load cloud %s", id)
	}
	if !hit {
		return nil, errors.New(errors.ErrCodeCloudNotFound, "cloud %s not found", id)
	}

	var rec storedCloud
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode cloud %s", id)
	}
	return &rec, nil
}

func contentType(format string) string {
	switch format {
	case cloud.FormatSVG:
		return "image/svg+xml"
	case cloud.FormatPNG:
		return "image/png"
	case cloud.FormatPDF:
		return "application/pdf"
	case cloud.FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes to HTTP statuses and writes the JSON envelope.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError

	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidVizType,
		errors.ErrCodeInvalidScale, errors.ErrCodeInvalidCanvas,
		errors.ErrCodeEmptyInput, errors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeCloudNotFound:
		status = http.StatusNotFound
	}

	if code == "" {
		code = errors.ErrCodeInternal
	}

	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}
