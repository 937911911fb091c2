package chi

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ListDocsParams defines parameters for ListDocs.
type ListDocsParams struct {
	// Q is a free-text term matched against title, category, product family and tags.
	Q *string `form:"q,omitempty" json:"q,omitempty"`
	// Category restricts results to one category, case-insensitively.
	Category *string `form:"category,omitempty" json:"category,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// ListDocs handles GET /api/docs.
	ListDocs(w http.ResponseWriter, r *http.Request, params ListDocsParams)
	// GetDoc handles GET /api/docs/{id}.
	GetDoc(w http.ResponseWriter, r *http.Request, id string)
	// ListCategories handles GET /api/categories.
	ListCategories(w http.ResponseWriter, r *http.Request)
	// HealthCheck handles GET /health.
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// Metrics handles GET /metrics.
	Metrics(w http.ResponseWriter, r *http.Request)
}

// MiddlewareFunc wraps a single route handler.
type MiddlewareFunc func(http.Handler) http.Handler

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError reports a parameter that could not be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %v", e.ParamName, e.Err)
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// serverInterfaceWrapper binds request parameters before calling the handler.
type serverInterfaceWrapper struct {
	handler          ServerInterface
	middlewares      []MiddlewareFunc
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) ListDocs(w http.ResponseWriter, r *http.Request) {
	var params ListDocsParams
	query := r.URL.Query()

	if err := bindSingleQuery(query, "q", &params.Q); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}
	if err := bindSingleQuery(query, "category", &params.Category); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "category", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.handler.ListDocs(w, r, params)
	})
}

func (siw *serverInterfaceWrapper) GetDoc(w http.ResponseWriter, r *http.Request) {
	var id string
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath,
		escapedURLParam(r, "id"), &id)
	if err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.handler.GetDoc(w, r, id)
	})
}

func (siw *serverInterfaceWrapper) ListCategories(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.handler.ListCategories)
}

func (siw *serverInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.handler.HealthCheck)
}

func (siw *serverInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.handler.Metrics)
}

func (siw *serverInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.HandlerFunc) {
	var handler http.Handler = h
	for _, middleware := range siw.middlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

// escapedURLParam returns the named path parameter in escaped form.
// chi matches against r.URL.RawPath when it is set and against the decoded
// r.URL.Path otherwise, so only the latter needs re-escaping.
func escapedURLParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath != "" {
		return value
	}
	return url.PathEscape(value)
}

// bindSingleQuery binds an optional form-style string parameter.
// A parameter repeated in the query string is treated as absent.
func bindSingleQuery(query url.Values, name string, dest **string) error {
	if len(query[name]) > 1 {
		return nil
	}
	return runtime.BindQueryParameter("form", true, false, name, query, dest)
}

// HandlerWithOptions registers the API routes on options.BaseRouter (or a new router).
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := serverInterfaceWrapper{
		handler:          si,
		middlewares:      options.Middlewares,
		errorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/docs", wrapper.ListDocs)
		r.Get(options.BaseURL+"/api/docs/{id}", wrapper.GetDoc)
		r.Get(options.BaseURL+"/api/categories", wrapper.ListCategories)
		r.Get(options.BaseURL+"/health", wrapper.HealthCheck)
		r.Get(options.BaseURL+"/metrics", wrapper.Metrics)
	})

	return r
}
