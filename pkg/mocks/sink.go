package mocks

import (
	"image"
	"sync"

	"github.com/user/picx/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	DescriptorJSON []byte
	CropJSON       []byte
	SceneJSON      []byte
	Crops          map[int]image.Image
	Exports        map[string]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Crops:   make(map[int]image.Image),
		Exports: make(map[string]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveDescriptorJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DescriptorJSON = data
	return nil
}

func (m *DebugSink) SaveCropJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CropJSON = data
	return nil
}

func (m *DebugSink) SaveSceneJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SceneJSON = data
	return nil
}

func (m *DebugSink) SaveCrop(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Crops[index] = img
	return nil
}

func (m *DebugSink) SaveExport(name string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Exports[name] = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
