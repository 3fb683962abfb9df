package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/picx/pkg/mocks"
	"github.com/user/picx/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveJSON(t *testing.T) {
	tests := []struct {
		name string
		save func(s *Sink, data []byte) error
		file string
	}{
		{"descriptor", (*Sink).SaveDescriptorJSON, "descriptor.json"},
		{"crop", (*Sink).SaveCropJSON, "crop.json"},
		{"scene", (*Sink).SaveSceneJSON, "scene.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewFileSystem()
			sink := New(testBaseDir, fs, &mocks.Renderer{})

			data := []byte(`{"test": true}`)
			if err := tt.save(sink, data); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			saved, ok := fs.GetFile(filepath.Join(testBaseDir, tt.file))
			if !ok {
				t.Fatalf("expected %s to be saved", tt.file)
			}
			if string(saved) != string(data) {
				t.Errorf("expected %q, got %q", data, saved)
			}
		})
	}
}

func TestSink_SaveCrop(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{}
	sink := New(testBaseDir, fs, renderer)

	if err := sink.SaveCrop(3, image.NewRGBA(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("SaveCrop failed: %v", err)
	}

	if _, ok := fs.GetFile(filepath.Join(testBaseDir, "crops", "crop-0003.png")); !ok {
		t.Error("expected crop-0003.png to be saved")
	}
	if exists, _ := fs.Exists(filepath.Join(testBaseDir, "crops")); !exists {
		t.Error("expected crops directory to be created")
	}
}

func TestSink_SaveExport(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	if err := sink.SaveExport("poster.png", image.NewRGBA(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("SaveExport failed: %v", err)
	}

	if _, ok := fs.GetFile(filepath.Join(testBaseDir, "exports", "poster.png")); !ok {
		t.Error("expected exports/poster.png to be saved")
	}
}

func TestSink_EncodeError(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}
	sink := New(testBaseDir, fs, renderer)

	if err := sink.SaveExport("poster.png", image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected encode error to be returned")
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("expected nothing written on encode failure")
	}
}
