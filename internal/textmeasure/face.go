// Package textmeasure provides Measurer implementations for the marquee
// session: pixel widths from font faces and cell widths for terminals.
package textmeasure

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FaceMeasurer measures strings with a font.Face. Faces are not safe for
// concurrent use, so calls are serialised.
type FaceMeasurer struct {
	mu    sync.Mutex
	face  font.Face
	cache *lru
}

// NewFaceMeasurer wraps an existing face. A nil face falls back to the 7x13
// bitmap face.
func NewFaceMeasurer(face font.Face) *FaceMeasurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &FaceMeasurer{face: face, cache: newLRU(256)}
}

// NewOpenTypeMeasurer parses ttf (Go Regular when empty) and measures at size
// points. A DPI of 72 makes one point one unit, which matches toolkits that lay
// out in device-independent units.
func NewOpenTypeMeasurer(ttf []byte, size, dpi float64) (*FaceMeasurer, error) {
	if len(ttf) == 0 {
		ttf = goregular.TTF
	}
	if size <= 0 {
		size = 14
	}
	if dpi <= 0 {
		dpi = 72
	}
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: size, DPI: dpi, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return NewFaceMeasurer(face), nil
}

// MeasureTextWidth returns the advance width of text in face units.
func (m *FaceMeasurer) MeasureTextWidth(text string) float64 {
	if text == "" {
		return 0
	}
	if w, ok := m.cache.get(text); ok {
		return w
	}
	m.mu.Lock()
	adv := font.MeasureString(m.face, text)
	m.mu.Unlock()
	w := fixedToFloat(adv)
	m.cache.put(text, w)
	return w
}

// LineHeight returns ascent plus descent.
func (m *FaceMeasurer) LineHeight() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	metrics := m.face.Metrics()
	return fixedToFloat(metrics.Ascent + metrics.Descent)
}

// Close releases the face. The shared bitmap face is left alone.
func (m *FaceMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.face == basicfont.Face7x13 {
		return nil
	}
	return m.face.Close()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
