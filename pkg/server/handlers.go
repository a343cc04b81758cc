package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/infographic/pkg/buildinfo"
	"github.com/matzehuels/infographic/pkg/errors"
	"github.com/matzehuels/infographic/pkg/gallery"
	"github.com/matzehuels/infographic/pkg/observability"
	"github.com/matzehuels/infographic/pkg/options"
	"github.com/matzehuels/infographic/pkg/pipeline"
)

// =============================================================================
// Meta
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	})
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, options.Templates())
}

// =============================================================================
// Render
// =============================================================================

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	spec, err := s.decodeSpec(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, spec)
}

// render runs the pipeline for one format taken from the query string.
func (s *Server) render(w http.ResponseWriter, r *http.Request, spec options.Options) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		Spec:       spec,
		Formats:    []string{format},
		Background: q.Get("background"),
		Detailed:   q.Has("detailed"),
		EmbedFonts: q.Has("embed_fonts"),
		Refresh:    q.Has("refresh"),
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.renderTimeout)
	defer cancel()
	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cacheStatus := "MISS"
	if res.CacheInfo.RenderHit {
		cacheStatus = "HIT"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

// decodeSpec reads a spec body in the format named by its Content-Type.
func (s *Server) decodeSpec(w http.ResponseWriter, r *http.Request) (options.Options, error) {
	format, err := specFormat(r.Header.Get("Content-Type"))
	if err != nil {
		return options.Options{}, err
	}
	return options.Decode(http.MaxBytesReader(w, r.Body, s.maxBody), format)
}

func specFormat(contentType string) (string, error) {
	if contentType == "" {
		return options.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid content type")
	}
	switch mt {
	case "application/json", "text/json":
		return options.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return options.FormatYAML, nil
	case "application/toml", "text/toml":
		return options.FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", mt)
}

// =============================================================================
// Gallery
// =============================================================================

// saveRequest is the body of POST /api/gallery.
type saveRequest struct {
	Name string          `json:"name"`
	Spec options.Options `json:"spec"`
}

func (s *Server) handleSaveEntry(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	// Reject specs that cannot render before storing them.
	if _, err := options.Parse(req.Spec); err != nil {
		s.fail(w, r, err)
		return
	}
	e, err := gallery.New(req.Name, req.Spec)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), e); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/gallery/"+e.ID)
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleRenderEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, e.Spec)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Responses
// =============================================================================

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", RequestIDFrom(r.Context()))
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeError(w, r, err)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if code == errors.ErrCodeInternal {
		msg = "internal error"
	}
	writeJSON(w, StatusFor(err), map[string]errorBody{
		"error": {Code: code, Message: msg, RequestID: RequestIDFrom(r.Context())},
	})
}

// StatusFor maps an error to its HTTP status by error code.
func StatusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case stderrors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork, errors.ErrCodeStorage:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func errNotFoundRoute(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
