package transport

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/domain/session"
	"github.com/empetur/consolidacao/internal/repository"
	"github.com/empetur/consolidacao/internal/sheet"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// RouteExporter builds the route export of a scope.
type RouteExporter interface {
	RouteExport(ctx context.Context, municipality string) (inventory.RouteExport, error)
}

// Options configures the HTTP router.
type Options struct {
	MCP          *sdkmcp.Server
	Routes       RouteExporter
	ExportFormat sheet.Format
	Logger       *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	routes       RouteExporter
	exportFormat sheet.Format
	logger       *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	format := opts.ExportFormat
	if format == "" {
		format = sheet.FormatXLSX
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(SessionMiddleware)
	r.Use(RequestLogger(logger))

	srv := &Server{routes: opts.Routes, exportFormat: format, logger: logger}

	if opts.MCP != nil {
		mcpHandler := sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return opts.MCP },
			&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
		)
		r.Handle("/mcp", mcpHandler)
		r.Handle("/mcp/*", mcpHandler)
	}
	r.Get("/health", srv.handleHealth)
	if opts.Routes != nil {
		r.Get("/rota", srv.handleRoute)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleRoute streams the route export of ?municipio= as an attachment.
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	format := s.exportFormat
	if name := r.URL.Query().Get("format"); name != "" {
		f, err := sheet.ParseFormat(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}

	exp, err := s.routes.RouteExport(r.Context(), r.URL.Query().Get("municipio"))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, session.ErrNotLoaded), errors.Is(err, repository.ErrSourceNotFound):
			status = http.StatusServiceUnavailable
		case errors.Is(err, repository.ErrMalformedTable):
			status = http.StatusUnprocessableEntity
		}
		s.logger.Error("route export failed", "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": exp.Name + format.Ext(),
	}))
	if err := sheet.EncodeRoute(w, exp, format); err != nil {
		s.logger.Error("writing route export", "name", exp.Name, "error", err)
	}
}
