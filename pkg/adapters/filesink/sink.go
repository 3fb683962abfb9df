// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/picx/pkg/ports"
)

// Sink saves debug output to files under baseDir.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveDescriptorJSON saves the effect descriptor as descriptor.json.
func (s *Sink) SaveDescriptorJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "descriptor.json"), data)
}

// SaveCropJSON saves the planned crop region as crop.json.
func (s *Sink) SaveCropJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "crop.json"), data)
}

// SaveSceneJSON saves the poster draw order as scene.json.
func (s *Sink) SaveSceneJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "scene.json"), data)
}

// SaveCrop saves a cropped raster as crops/crop-NNNN.png.
func (s *Sink) SaveCrop(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "crops")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.savePNG(filepath.Join(dir, fmt.Sprintf("crop-%04d.png", index)), img)
}

// SaveExport saves an exported raster as exports/<name>.
func (s *Sink) SaveExport(name string, img image.Image) error {
	dir := filepath.Join(s.baseDir, "exports")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.savePNG(filepath.Join(dir, name), img)
}

func (s *Sink) savePNG(path string, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
