// Package server exposes the pipeline and diagram store over HTTP.
//
// The API is JSON over REST:
//
//	GET    /api/health                        liveness check
//	GET    /api/networks                      available generator networks
//	POST   /api/diagrams                      run the pipeline and store the result
//	GET    /api/diagrams                      list stored diagrams
//	GET    /api/diagrams/{id}                 fetch one diagram
//	GET    /api/diagrams/{id}/render          render a stored diagram (format query param)
//	GET    /api/diagrams/{id}/nodes/{nodeID}  fetch one node of a stored diagram
//	DELETE /api/diagrams/{id}                 remove a stored diagram
//
// Errors are returned as {"error": message, "code": CODE} with the HTTP
// status derived from the error code.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mkoster/circuitry/pkg/diagram"
	"github.com/mkoster/circuitry/pkg/errors"
	"github.com/mkoster/circuitry/pkg/networks"
	"github.com/mkoster/circuitry/pkg/pipeline"
	"github.com/mkoster/circuitry/pkg/store"
)

// Server handles API requests against a runner and a diagram store.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. A nil store falls back to an in-memory one; a nil
// logger falls back to the default logger.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemory()
	}
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(logger)
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/networks", s.handleNetworks)

		r.Route("/diagrams", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Get("/", s.handleList)
			r.Get("/{id}", s.handleGet)
			r.Get("/{id}/render", s.handleRender)
			r.Get("/{id}/nodes/{nodeID}", s.handleNode)
			r.Delete("/{id}", s.handleDelete)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNetworks(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"networks": networks.Names()})
}

// createResponse is the body returned by POST /api/diagrams.
type createResponse struct {
	ID          string          `json:"id"`
	Fingerprint string          `json:"fingerprint,omitempty"`
	Outputs     []*float64      `json:"outputs,omitempty"`
	Diagram     diagram.Diagram `json:"diagram"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	// Definitions are filesystem paths; the API accepts generators only.
	if opts.Definition != "" {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "definition files are not accepted over the API"))
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id, err := s.store.Put(r.Context(), res.Diagram)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res.Diagram.ID = id

	s.logger.Info("stored diagram", "id", id, "name", res.Diagram.Name, "nodes", len(res.Diagram.Nodes))
	s.writeJSON(w, http.StatusCreated, createResponse{
		ID:          id,
		Fingerprint: res.Fingerprint,
		Outputs:     res.Outputs,
		Diagram:     res.Diagram,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"diagrams": entries})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

var renderContentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
	pipeline.FormatDOT: "text/vnd.graphviz",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	contentType, ok := renderContentTypes[format]
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeInvalidFormat, "invalid render format %q", format))
		return
	}

	artifacts, err := pipeline.Render(d, pipeline.Options{
		Formats:  []string{format},
		Values:   r.URL.Query().Get("values") != "",
		Tree:     r.URL.Query().Get("tree") != "",
		Detailed: r.URL.Query().Get("detailed") != "",
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	raw := chi.URLParam(r, "nodeID")
	nodeID, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "node id must be an integer, got %q", raw))
		return
	}
	// Node ids are dense, so the id doubles as the index.
	if nodeID < 0 || nodeID >= len(d.Nodes) {
		s.writeError(w, errors.New(errors.ErrCodeNodeNotFound, "diagram %s has no node %d", d.ID, nodeID))
		return
	}

	s.writeJSON(w, http.StatusOK, d.Nodes[nodeID])
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": errors.UserMessage(err),
		"code":  code,
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidNetwork, errors.ErrCodeInvalidWidth,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidDefinition, errors.ErrCodeInvalidScale,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeDiagramNotFound, errors.ErrCodeNodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
