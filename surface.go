package arbor

// Surface is the rendering sink a scene paints into. Nodes only ever talk to
// the renderer through it.
//
// PushBatch(nil) must return nil and leave the current batch in place;
// PopBatch(nil) must be a no-op. This lets nodes without a custom batch
// skip the swap.
type Surface interface {
	// Transform returns the current transform.
	Transform() Affine
	// SetTransform replaces the current transform.
	SetTransform(m Affine)
	// Concatenate post-multiplies m, then translates by (-originX, -originY).
	Concatenate(m Affine, originX, originY float64)

	// Tint returns the current tint.
	Tint() Color
	// SetTint replaces the current tint.
	SetTint(c Color)

	// PushBatch makes b current and returns the batch it replaced.
	PushBatch(b Batch) Batch
	// PopBatch restores a batch returned by PushBatch.
	PopBatch(prev Batch)

	// StartClipped restricts drawing to the rectangle (in the current
	// transform's space). Returns false if nothing would be visible, in which
	// case EndClipped must not be called.
	StartClipped(x, y, width, height float64) bool
	// EndClipped undoes the matching StartClipped.
	EndClipped()

	// DrawImage draws img scaled into the rectangle.
	DrawImage(img Image, x, y, width, height float64)
	// FillRect fills the rectangle with the current tint.
	FillRect(x, y, width, height float64)
}

// Batch is an opaque render-batch handle owned by a node.
type Batch interface {
	Release()
}

// Image is a drawable texture handle supplied by the render backend.
type Image interface {
	Width() float64
	Height() float64
}
