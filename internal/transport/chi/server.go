package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docshelf/internal/domain"
	domdoc "github.com/kailas-cloud/docshelf/internal/domain/document"
	"github.com/kailas-cloud/docshelf/internal/domain/search/query"
	logpkg "github.com/kailas-cloud/docshelf/internal/logger"
	cataloguc "github.com/kailas-cloud/docshelf/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/docshelf/internal/usecase/health"
)

// Client-facing error messages.
const (
	msgNotFound   = "Not found"
	msgBadRequest = "Invalid request"
	msgInternal   = "Internal error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements ServerInterface over the catalog service.
type Server struct {
	catalog       *cataloguc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(catalog *cataloguc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		catalog: catalog,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, msgNotFound),
	}
	return s
}

// ListDocs handles GET /api/docs.
func (s *Server) ListDocs(w http.ResponseWriter, r *http.Request, params ListDocsParams) {
	etag, err := s.etag(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if notModified(w, r, etag) {
		return
	}

	docs, err := s.catalog.Filter(r.Context(), query.New(deref(params.Q), deref(params.Category)))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]docResponse, len(docs))
	for i := range docs {
		items[i] = docToResponse(&docs[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// GetDoc handles GET /api/docs/{id}.
func (s *Server) GetDoc(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := s.catalog.FindByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	etag, err := s.etag(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if notModified(w, r, etag) {
		return
	}

	writeJSON(w, http.StatusOK, docToResponse(&doc))
}

// ListCategories handles GET /api/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	etag, err := s.etag(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if notModified(w, r, etag) {
		return
	}

	cats, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if cats == nil {
		cats = []string{}
	}
	writeJSON(w, http.StatusOK, cats)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// BadRequest is the ChiServerOptions.ErrorHandlerFunc for unbindable parameters.
func BadRequest(w http.ResponseWriter, r *http.Request, err error) {
	logpkg.FromContext(r.Context()).Debug("invalid request parameter", zap.Error(err))
	writeError(w, http.StatusBadRequest, msgBadRequest)
}

func (s *Server) etag(r *http.Request) (string, error) {
	fp, err := s.catalog.Fingerprint(r.Context())
	if err != nil {
		return "", err
	}
	return `"` + fp + `"`, nil
}

// notModified sets ETag and answers 304 when If-None-Match already names it.
func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	w.Header().Set("ETag", etag)
	inm := r.Header.Get("If-None-Match")
	if inm == "" {
		return false
	}
	for _, candidate := range strings.Split(inm, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			w.WriteHeader(http.StatusNotModified)
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Debug("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func docToResponse(d *domdoc.Document) docResponse {
	resp := docResponse{
		ID:            d.ID(),
		Title:         d.Title(),
		Category:      d.Category(),
		ProductFamily: d.ProductFamily(),
		PDFURL:        d.PDFURL(),
		Description:   d.Description(),
		Tags:          d.Tags(),
	}
	if order, ok := d.Order(); ok {
		resp.Order = &order
	}
	return resp
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
