package editor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/user/picx/pkg/adapters/ggrenderer"
	"github.com/user/picx/pkg/adapters/logger"
	"github.com/user/picx/pkg/mocks"
	"github.com/user/picx/pkg/ports"
)

// pngBytes encodes a w x h image filled with c.
func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// sizedRenderer decodes any data to a blank image whose size is read from
// the first two bytes (width/10, height/10).
func sizedRenderer() *mocks.Renderer {
	return &mocks.Renderer{
		DecodeImageFunc: func(data []byte, format ports.ImageFormat) (image.Image, error) {
			return image.NewRGBA(image.Rect(0, 0, int(data[0])*10, int(data[1])*10)), nil
		},
	}
}

type photoFixture struct {
	photo *Photo
	fs    *mocks.FileSystem
	relay *mocks.Relay
	log   *mocks.Logger
}

func newPhotoFixture(renderer ports.Renderer) photoFixture {
	fs := mocks.NewFileSystem()
	relay := &mocks.Relay{}
	log := mocks.NewLogger()
	photo := NewPhoto(renderer, fs, relay, mocks.NewDebugSink(false), log, PhotoOptions{OutputDir: "out"})
	return photoFixture{photo: photo, fs: fs, relay: relay, log: log}
}

func newPoster(renderer ports.Renderer, fs ports.FileSystem) *Poster {
	return NewPoster(renderer, fs, mocks.NewDebugSink(false), logger.NewNoop(), PosterOptions{OutputDir: "out"})
}

func realRenderer() ports.Renderer {
	return ggrenderer.New()
}
