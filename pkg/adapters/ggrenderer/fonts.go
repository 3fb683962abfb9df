package ggrenderer

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/user/picx/pkg/ports"
)

// FontFiles names the TTF/OTF files backing one font family.
// Bold may be empty; the regular face is used for both weights then.
type FontFiles struct {
	Regular string
	Bold    string
}

// FontBook resolves a family name and weight to a font face.
// Families without configured files, or whose files fail to load, fall back
// to the embedded Go fonts. Parsed fonts and faces are cached.
type FontBook struct {
	mu     sync.Mutex
	files  map[string]FontFiles
	parsed map[string]*opentype.Font
	faces  map[faceKey]font.Face
	logger ports.Logger
}

type faceKey struct {
	source string
	size   float64
}

// NewFontBook creates a font book. Family keys are matched case-insensitively.
func NewFontBook(files map[string]FontFiles, logger ports.Logger) *FontBook {
	normalized := make(map[string]FontFiles, len(files))
	for family, f := range files {
		normalized[strings.ToLower(family)] = f
	}
	return &FontBook{
		files:  normalized,
		parsed: make(map[string]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
		logger: logger,
	}
}

// Face returns the face for family at size points (72 DPI, so points equal pixels).
func (b *FontBook) Face(family string, bold bool, size float64) (font.Face, error) {
	if size <= 0 {
		size = 16
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	source := b.source(family, bold)
	key := faceKey{source: source, size: size}
	if face, ok := b.faces[key]; ok {
		return face, nil
	}

	f, err := b.load(source)
	if err != nil {
		if b.logger != nil {
			b.logger.Warn("Font %s unavailable, using built-in font: %v", source, err)
		}
		source = builtinSource(bold)
		if f, err = b.load(source); err != nil {
			return nil, err
		}
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	b.faces[key] = face
	return face, nil
}

func (b *FontBook) source(family string, bold bool) string {
	if files, ok := b.files[strings.ToLower(family)]; ok {
		if bold && files.Bold != "" {
			return files.Bold
		}
		if files.Regular != "" {
			return files.Regular
		}
	}
	return builtinSource(bold)
}

func (b *FontBook) load(source string) (*opentype.Font, error) {
	if f, ok := b.parsed[source]; ok {
		return f, nil
	}

	var data []byte
	switch source {
	case builtinRegular:
		data = goregular.TTF
	case builtinBold:
		data = gobold.TTF
	default:
		var err error
		if data, err = os.ReadFile(source); err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	b.parsed[source] = f
	return f, nil
}

const (
	builtinRegular = "builtin:goregular"
	builtinBold    = "builtin:gobold"
)

func builtinSource(bold bool) string {
	if bold {
		return builtinBold
	}
	return builtinRegular
}
