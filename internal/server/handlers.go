package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jverel/darkroom/pkg/errors"
	"github.com/jverel/darkroom/pkg/geom"
	"github.com/jverel/darkroom/pkg/imgio"
	"github.com/jverel/darkroom/pkg/provenance"
	"github.com/jverel/darkroom/pkg/studio"
)

// assetView is the JSON representation of one asset.
type assetView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MIME     string `json:"mime"`
	Origin   string `json:"origin"`
	ParentID string `json:"parent_id,omitempty"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Active   bool   `json:"active"`
	Marked   bool   `json:"marked"`
}

func (s *Server) assetView(a studio.Asset) assetView {
	return assetView{
		ID:       a.ID,
		Name:     a.Name,
		MIME:     a.MIME,
		Origin:   a.Origin.String(),
		ParentID: a.ParentID,
		Width:    a.Width(),
		Height:   a.Height(),
		Active:   a.ID == s.registry.ActiveID(),
		Marked:   s.registry.IsMarked(a.ID),
	}
}

type historyView struct {
	Moved   bool `json:"moved"`
	Assets  int  `json:"assets"`
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

func (s *Server) historyView(moved bool) historyView {
	return historyView{
		Moved:   moved,
		Assets:  s.registry.Collection().Len(),
		CanUndo: s.registry.CanUndo(),
		CanRedo: s.registry.CanRedo(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.registry.Collection()
	views := make([]assetView, c.Len())
	for i, a := range c.Assets {
		views[i] = s.assetView(a)
	}
	writeJSON(w, http.StatusOK, map[string]any{"assets": views})
}

// handleImportAsset imports a single image posted as the request body.
// The display name comes from the "name" query parameter.
func (s *Server) handleImportAsset(w http.ResponseWriter, r *http.Request) {
	d, err := imgio.DecodeReader(http.MaxBytesReader(w, r.Body, 64<<20))
	if err != nil {
		writeError(w, err)
		return
	}
	d.Name = r.URL.Query().Get("name")
	if d.Name == "" {
		d.Name = "upload"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	assets := s.registry.Import(r.Context(), []imgio.Decoded{d})
	writeJSON(w, http.StatusCreated, s.assetView(assets[0]))
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.registry.Collection().Find(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, errors.New(errors.ErrCodeAssetNotFound, "asset %s not found", chi.URLParam(r, "id")))
		return
	}
	writeJSON(w, http.StatusOK, s.assetView(a))
}

func (s *Server) handleGetAssetImage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a, ok := s.registry.Collection().Find(chi.URLParam(r, "id"))
	s.mu.Unlock()
	if !ok {
		writeError(w, errors.New(errors.ErrCodeAssetNotFound, "asset %s not found", chi.URLParam(r, "id")))
		return
	}

	png, err := imgio.EncodePNG(a.Image)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registry.Remove(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registry.SetActive(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleMark(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	s.registry.ToggleMark(id)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "marked": s.registry.IsMarked(id)})
}

type cropRequest struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	DisplayW float64 `json:"display_w,omitempty"`
	DisplayH float64 `json:"display_h,omitempty"`
}

// handleCrop extracts a region from the given asset. Coordinates are
// source pixels unless display dimensions are provided, in which case
// they are display coordinates on a surface of that size.
func (s *Server) handleCrop(w http.ResponseWriter, r *http.Request) {
	var req cropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode crop request"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	a, ok := s.registry.Collection().Find(id)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeAssetNotFound, "asset %s not found", id))
		return
	}

	sel := geom.Rect{X: req.X, Y: req.Y, W: req.W, H: req.H}
	dw, dh := req.DisplayW, req.DisplayH
	if dw <= 0 || dh <= 0 {
		// Source-pixel coordinates: the display surface is the source itself.
		dw, dh = float64(a.Width()), float64(a.Height())
	}

	asset, err := s.registry.ExtractRegion(r.Context(), id, sel, dw, dh)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.assetView(asset))
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.historyView(s.registry.Undo(r.Context())))
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.historyView(s.registry.Redo(r.Context())))
}

type editRequest struct {
	Instruction string `json:"instruction"`
	Name        string `json:"name,omitempty"`
}

// handleEdit sends the marked assets to the edit service and promotes
// the result into the collection.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	if s.editor == nil {
		writeError(w, errors.New(errors.ErrCodeUnsupported, "no edit service configured"))
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode edit request"))
		return
	}

	s.mu.Lock()
	c := s.registry.Collection()
	var inputs []studio.Asset
	var parentID string
	for _, id := range s.registry.Marked() {
		if a, ok := c.Find(id); ok {
			inputs = append(inputs, a)
			parentID = a.ID
		}
	}
	s.mu.Unlock()

	if len(inputs) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "no marked assets to edit"))
		return
	}

	// The service call runs outside the lock: it can take minutes and
	// must not block reads.
	img, err := s.editor.Edit(r.Context(), req.Instruction, inputs)
	if err != nil {
		writeError(w, err)
		return
	}

	name := req.Name
	if name == "" {
		name = "edit result"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	asset, err := s.registry.PromoteResult(r.Context(), name, img, parentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.assetView(asset))
}

func (s *Server) graphDOT() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return provenance.ToDOT(s.registry.Collection(), provenance.Options{
		Detailed: true,
		ActiveID: s.registry.ActiveID(),
	})
}

func (s *Server) handleGraphDOT(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(s.graphDOT()))
}

func (s *Server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	svg, err := provenance.RenderSVG(s.graphDOT())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render graph"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) handleGraphPNG(w http.ResponseWriter, r *http.Request) {
	png, err := provenance.RenderPNG(s.graphDOT())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render graph"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// =============================================================================
// JSON Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, `{"error":{"code":"INTERNAL_ERROR","message":"encode response"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// writeError maps the error taxonomy onto HTTP status codes and emits
// the standard error envelope.
func writeError(w http.ResponseWriter, err error) {
	var rl *errors.RateLimitedError
	if stderrors.As(err, &rl) {
		if rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
		}
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error": map[string]string{
				"code":    string(errors.ErrCodeRateLimited),
				"message": rl.Message,
			},
		})
		return
	}

	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRect, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidName, errors.ErrCodeInvalidPath, errors.ErrCodeDecode:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeAssetNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case errors.ErrCodeService, errors.ErrCodeServiceUnauthorized,
		errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		status = http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}

	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    string(code),
			"message": errors.UserMessage(err),
		},
	})
}
