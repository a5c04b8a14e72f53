package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/arbor"
)

// Canvas is a persistent offscreen image. Paint subtrees into it once and
// display the result with an image node, instead of repainting them every
// frame. The caller owns it and disposes it when done.
type Canvas struct {
	tex     *Texture
	surface *Surface
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	img := ebiten.NewImage(w, h)
	return &Canvas{tex: NewTexture(img), surface: NewSurface(img)}
}

// Texture returns the canvas as an arbor.Image.
func (c *Canvas) Texture() *Texture { return c.tex }

// Clear fills the canvas with transparent black.
func (c *Canvas) Clear() {
	c.tex.img.Clear()
}

// Fill fills the entire canvas with the given color.
func (c *Canvas) Fill(col arbor.Color) {
	c.tex.img.Fill(toRGBA(col))
}

// Paint renders e and its subtree into the canvas. e's own transform is
// applied, so a node at (10, 10) lands at (10, 10) on the canvas.
func (c *Canvas) Paint(e arbor.Element) {
	c.surface.Reset(c.tex.img)
	e.AsNode().Paint(c.surface)
}

// NewImageNode creates an image node that displays the canvas.
func (c *Canvas) NewImageNode(name string) *arbor.ImageNode {
	return arbor.NewImageNode(name, c.tex)
}

// Dispose releases the canvas image. Remove the image nodes showing it
// first.
func (c *Canvas) Dispose() {
	c.tex.img.Deallocate()
}
