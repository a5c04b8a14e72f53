package ebitenhost

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/arbor"
)

var (
	defaultFontOnce sync.Once
	defaultFont     *text.GoTextFaceSource
	defaultFontErr  error
)

// DefaultFont returns the Go Regular font source, parsed on first use.
func DefaultFont() (*text.GoTextFaceSource, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if defaultFontErr != nil {
			defaultFontErr = fmt.Errorf("load default font: %w", defaultFontErr)
		}
	})
	return defaultFont, defaultFontErr
}

// Label is a single line of text. The text is rasterized into a canvas when
// it changes, so painting a label costs one image draw.
type Label struct {
	*arbor.ImageNode

	face   text.Face
	text   string
	color  arbor.Color
	canvas *Canvas
}

// NewLabel creates a white label drawn with the default font at size pt.
func NewLabel(name, s string, size float64) (*Label, error) {
	src, err := DefaultFont()
	if err != nil {
		return nil, err
	}
	return NewLabelWithFace(name, s, &text.GoTextFace{Source: src, Size: size}), nil
}

// NewLabelWithFace creates a white label drawn with face.
func NewLabelWithFace(name, s string, face text.Face) *Label {
	l := &Label{ImageNode: arbor.NewImageNode(name, nil), face: face, color: arbor.ColorWhite}
	l.OnStateChange(func(_ *arbor.Node, st arbor.State) {
		if st == arbor.StateDisposed {
			l.release()
		}
	})
	l.SetText(s)
	return l
}

// Text returns the label's text.
func (l *Label) Text() string { return l.text }

// SetText replaces the text and rasterizes it.
func (l *Label) SetText(s string) {
	if l.IsDisposed() {
		return
	}
	l.text = s
	l.render()
}

// TextColor returns the text color.
func (l *Label) TextColor() arbor.Color { return l.color }

// SetTextColor changes the text color and rasterizes the text again.
func (l *Label) SetTextColor(c arbor.Color) {
	if l.IsDisposed() {
		return
	}
	l.color = c
	l.render()
}

func (l *Label) render() {
	l.release()
	w, h := text.Measure(l.text, l.face, 0)
	l.canvas = NewCanvas(max(1, int(math.Ceil(w))), max(1, int(math.Ceil(h))))
	op := &text.DrawOptions{}
	op.ColorScale.ScaleWithColor(toRGBA(l.color))
	text.Draw(l.canvas.Texture().Image(), l.text, l.face, op)
	l.SetImage(l.canvas.Texture())
}

func (l *Label) release() {
	if l.canvas == nil {
		return
	}
	l.SetImage(nil)
	l.canvas.Dispose()
	l.canvas = nil
}
