// Package server implements the HTTP workspace API.
//
// The API exposes one workspace over HTTP: listing and importing
// assets, cropping, marking, undo/redo, edit service calls, and the
// derivation graph. All mutations are serialized behind a mutex; the
// registry itself is single-threaded by design.
package server

import (
	"context"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jverel/darkroom/pkg/studio"
)

// Editor sends instructions to the generative edit service.
// It is satisfied by *genedit.Client; a nil Editor disables /edits.
type Editor interface {
	Edit(ctx context.Context, instruction string, inputs []studio.Asset) (image.Image, error)
}

// Server owns the workspace registry and serializes access to it.
type Server struct {
	mu       sync.Mutex
	registry *studio.Registry
	editor   Editor
	logger   *log.Logger
}

// New creates a server around the given registry.
// editor may be nil, in which case the /edits endpoint returns an error.
func New(registry *studio.Registry, editor Editor, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		registry: registry,
		editor:   editor,
		logger:   logger,
	}
}

// Router builds the chi router with all endpoints registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/assets", func(r chi.Router) {
		r.Get("/", s.handleListAssets)
		r.Post("/", s.handleImportAsset)
		r.Get("/{id}", s.handleGetAsset)
		r.Get("/{id}/image", s.handleGetAssetImage)
		r.Delete("/{id}", s.handleDeleteAsset)
		r.Post("/{id}/activate", s.handleActivate)
		r.Post("/{id}/mark", s.handleToggleMark)
		r.Post("/{id}/crop", s.handleCrop)
	})

	r.Post("/history/undo", s.handleUndo)
	r.Post("/history/redo", s.handleRedo)

	r.Post("/edits", s.handleEdit)

	r.Get("/graph.dot", s.handleGraphDOT)
	r.Get("/graph.svg", s.handleGraphSVG)
	r.Get("/graph.png", s.handleGraphPNG)

	return r
}

// requestLogger logs each request with method, path, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
