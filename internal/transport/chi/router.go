package chi

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// Middlewares run before CORS, outermost first.
	Middlewares []func(http.Handler) http.Handler
	CORS        CORSConfig
	// StaticDir serves PDF files under StaticPrefix. Empty disables it.
	StaticDir    string
	StaticPrefix string
}

// NewRouter assembles the chi router: middlewares, CORS, static PDFs and the API routes.
func NewRouter(server *Server, opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	for _, mw := range opts.Middlewares {
		r.Use(mw)
	}
	r.Use(CORS(opts.CORS))
	r.Use(chiMiddleware.StripSlashes)

	if opts.StaticDir != "" {
		mountStatic(r, opts.StaticPrefix, opts.StaticDir)
	}

	HandlerWithOptions(server, ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: BadRequest,
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

// mountStatic serves files from dir under prefix. Directory listings are not exposed.
func mountStatic(r chi.Router, prefix, dir string) {
	prefix = "/" + strings.Trim(prefix, "/")
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))

	r.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		name := strings.TrimPrefix(req.URL.Path, prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		if fi, err := os.Stat(filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))); err != nil || fi.IsDir() {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		fs.ServeHTTP(w, req)
	})
}
