package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"polygo/internal/pattern/compositor"
	"polygo/internal/pattern/scheme"
)

// ============================================================
// Export Storage
// ============================================================

type ExportStorage struct {
	root string
}

func NewExportStorage(root string) *ExportStorage {
	return &ExportStorage{root: root}
}

func (s *ExportStorage) WorkspaceDir(id string) string {
	return filepath.Join(s.root, id)
}

func (s *ExportStorage) PNGPath(id string) string {
	return filepath.Join(s.WorkspaceDir(id), "pattern.png")
}

func (s *ExportStorage) SVGPath(id string) string {
	return filepath.Join(s.WorkspaceDir(id), "pattern.svg")
}

func (s *ExportStorage) SchemePath(id string) string {
	return filepath.Join(s.WorkspaceDir(id), "pattern."+scheme.FileExtension)
}

func (s *ExportStorage) EnsureDir(id string) error {
	path := s.WorkspaceDir(id)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir export dir: %w", err)
	}
	return nil
}

func (s *ExportStorage) SaveFile(id, target string, data []byte) error {
	if err := s.EnsureDir(id); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

// Export writes the workspace's png, svg and scheme files and returns the
// written paths by format.
func (s *ExportStorage) Export(w *Workspace, surface compositor.Surface) (map[string]string, error) {
	snap := w.Snapshot()
	if err := surface.Validate(); err != nil {
		return nil, err
	}
	frame := compositor.Compose(snap, surface)

	var png bytes.Buffer
	if err := compositor.EncodePNG(&png, frame); err != nil {
		return nil, err
	}
	svg, err := compositor.RenderSVG(frame)
	if err != nil {
		return nil, err
	}
	doc, err := scheme.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal scheme: %w", err)
	}

	files := map[string]string{
		"png":                s.PNGPath(w.ID),
		"svg":                s.SVGPath(w.ID),
		scheme.FileExtension: s.SchemePath(w.ID),
	}
	contents := map[string][]byte{
		"png":                png.Bytes(),
		"svg":                []byte(svg),
		scheme.FileExtension: doc,
	}
	for format, path := range files {
		if err := s.SaveFile(w.ID, path, contents[format]); err != nil {
			return nil, fmt.Errorf("write %s: %w", format, err)
		}
	}
	return files, nil
}
