package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"polygo/internal/pattern/compositor"
	"polygo/internal/pattern/models"
	"polygo/internal/pattern/repository"
	"polygo/internal/pattern/scheme"
	"polygo/internal/pattern/service"

	"github.com/gofiber/fiber/v3"
)

// SchemeRepository persists saved schemes.
type SchemeRepository interface {
	Save(ctx context.Context, name string, numSides int, doc []byte) (*models.SavedScheme, error)
	GetByID(ctx context.Context, id string) (*models.SavedScheme, error)
	List(ctx context.Context) ([]models.SavedScheme, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// ============================================================
// Pattern Handler
// ============================================================

type PatternHandler struct {
	store   *service.Store
	repo    SchemeRepository
	storage *service.ExportStorage
	surface compositor.Surface
}

func NewPatternHandler(store *service.Store, repo SchemeRepository, storage *service.ExportStorage, surface compositor.Surface) *PatternHandler {
	return &PatternHandler{
		store:   store,
		repo:    repo,
		storage: storage,
		surface: surface,
	}
}

// Register mounts the service routes on r.
func (h *PatternHandler) Register(r fiber.Router) {
	r.Post("/patterns", h.Create)
	r.Get("/patterns/:id/scheme", h.GetScheme)
	r.Put("/patterns/:id/scheme", h.PutScheme)
	r.Post("/patterns/:id/edit", h.Edit)
	r.Get("/patterns/:id/frame", h.GetFrame)
	r.Get("/patterns/:id/png", h.GetPNG)
	r.Get("/patterns/:id/svg", h.GetSVG)
	r.Post("/patterns/:id/save", h.Save)
	r.Post("/patterns/:id/export", h.Export)
	r.Delete("/patterns/:id", h.Delete)
	r.Get("/saved", h.ListSaved)
	r.Post("/saved/:sid/load", h.LoadSaved)
	r.Delete("/saved/:sid", h.DeleteSaved)
	r.Get("/ops", h.ListOps)
}

type createResponse struct {
	ID string `json:"id"`
}

type editResponse struct {
	Applied bool `json:"applied"`
}

type saveRequest struct {
	Name string `json:"name"`
}

// Create opens a workspace with the default scheme.
func (h *PatternHandler) Create(c fiber.Ctx) error {
	w := h.store.Create()
	log.Printf("[PATTERN] Workspace created: %s", w.ID)
	return c.Status(http.StatusCreated).JSON(createResponse{ID: w.ID})
}

func (h *PatternHandler) Delete(c fiber.Ctx) error {
	if err := h.store.Delete(c.Params("id")); err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetScheme returns the whole scheme as a .polygo document.
func (h *PatternHandler) GetScheme(c fiber.Ctx) error {
	w, ok := h.workspace(c)
	if !ok {
		return notFound(c)
	}

	doc, err := scheme.Marshal(w.Snapshot())
	if err != nil {
		log.Printf("[PATTERN] Marshal scheme failed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "marshal scheme failed"})
	}
	c.Set("Content-Type", fiber.MIMEApplicationJSON)
	return c.Send(doc)
}

// PutScheme replaces the whole scheme. An invalid document is rejected as a whole.
func (h *PatternHandler) PutScheme(c fiber.Ctx) error {
	w, ok := h.workspace(c)
	if !ok {
		return notFound(c)
	}

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}
	s, err := scheme.Unmarshal(c.Body())
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	w.Replace(s)
	return c.JSON(editResponse{Applied: true})
}

// Edit applies one named edit. An out-of-range edit is not an error;
// it answers applied=false.
func (h *PatternHandler) Edit(c fiber.Ctx) error {
	w, ok := h.workspace(c)
	if !ok {
		return notFound(c)
	}

	var req service.Edit
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	applied, err := w.Apply(req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !applied {
		log.Printf("[PATTERN] Edit %s rejected for %s", req.Op, w.ID)
	}
	return c.JSON(editResponse{Applied: applied})
}

func (h *PatternHandler) ListOps(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"ops": service.Ops()})
}

// GetFrame regenerates the pattern and returns its draw commands.
func (h *PatternHandler) GetFrame(c fiber.Ctx) error {
	frame, status, err := h.regenerate(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(frame)
}

// GetPNG returns the pattern as a PNG image.
func (h *PatternHandler) GetPNG(c fiber.Ctx) error {
	frame, status, err := h.regenerate(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	var buf bytes.Buffer
	if err := compositor.EncodePNG(&buf, frame); err != nil {
		log.Printf("[PATTERN] PNG render failed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "render failed"})
	}
	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}

// GetSVG returns the pattern as an SVG document.
func (h *PatternHandler) GetSVG(c fiber.Ctx) error {
	frame, status, err := h.regenerate(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	svg, err := compositor.RenderSVG(frame)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// Save persists the current scheme.
func (h *PatternHandler) Save(c fiber.Ctx) error {
	w, ok := h.workspace(c)
	if !ok {
		return notFound(c)
	}

	var req saveRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
	}
	if req.Name == "" {
		req.Name = w.ID
	}

	snap := w.Snapshot()
	doc, err := scheme.Marshal(snap)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "marshal scheme failed"})
	}

	saved, err := h.repo.Save(c.Context(), req.Name, snap.NumSides, doc)
	if err != nil {
		log.Printf("[PATTERN] Save failed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "save failed"})
	}
	log.Printf("[PATTERN] Scheme saved: %s (%s)", saved.ID, saved.Name)
	return c.Status(http.StatusCreated).JSON(saved)
}

func (h *PatternHandler) ListSaved(c fiber.Ctx) error {
	list, err := h.repo.List(c.Context())
	if err != nil {
		log.Printf("[PATTERN] List failed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "list failed"})
	}
	return c.JSON(list)
}

// LoadSaved opens a new workspace from a saved scheme.
func (h *PatternHandler) LoadSaved(c fiber.Ctx) error {
	saved, err := h.repo.GetByID(c.Context(), c.Params("sid"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "scheme not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "load failed"})
	}

	s, err := scheme.Unmarshal(saved.Scheme)
	if err != nil {
		log.Printf("[PATTERN] Stored scheme %s is invalid: %v", saved.ID, err)
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	w := h.store.CreateFrom(s)
	return c.Status(http.StatusCreated).JSON(createResponse{ID: w.ID})
}

// DeleteSaved removes a saved scheme.
func (h *PatternHandler) DeleteSaved(c fiber.Ctx) error {
	if err := h.repo.Delete(c.Context(), c.Params("sid")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "scheme not found"})
		}
		log.Printf("[PATTERN] Delete saved failed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "delete failed"})
	}
	log.Printf("[PATTERN] Scheme deleted: %s", c.Params("sid"))
	return c.SendStatus(http.StatusNoContent)
}

// Export writes png, svg and .polygo files to the export directory.
func (h *PatternHandler) Export(c fiber.Ctx) error {
	w, ok := h.workspace(c)
	if !ok {
		return notFound(c)
	}

	surface := h.surfaceFrom(c)
	if err := surface.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	files, err := h.storage.Export(w, surface)
	if err != nil {
		log.Printf("[PATTERN] Export failed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
	}
	return c.JSON(fiber.Map{"files": files})
}

// Ready pings the database.
func (h *PatternHandler) Ready(c fiber.Ctx) error {
	if err := h.repo.Ping(c.Context()); err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// ============================================================
// Helpers
// ============================================================

// workspace looks up the :id workspace.
func (h *PatternHandler) workspace(c fiber.Ctx) (*service.Workspace, bool) {
	w, err := h.store.Get(c.Params("id"))
	if err != nil {
		return nil, false
	}
	return w, true
}

func notFound(c fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "workspace not found"})
}

func (h *PatternHandler) regenerate(c fiber.Ctx) (*compositor.Frame, int, error) {
	w, err := h.store.Get(c.Params("id"))
	if err != nil {
		return nil, http.StatusNotFound, err
	}

	frame, err := w.Regenerate(h.surfaceFrom(c))
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return frame, http.StatusOK, nil
}

// surfaceFrom reads ?w=&h=, defaulting to the configured canvas.
func (h *PatternHandler) surfaceFrom(c fiber.Ctx) compositor.Surface {
	return compositor.Surface{
		Width:  fiber.Query[int](c, "w", h.surface.Width),
		Height: fiber.Query[int](c, "h", h.surface.Height),
	}
}
