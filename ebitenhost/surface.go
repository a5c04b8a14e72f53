package ebitenhost

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/arbor"
)

// Texture adapts an *ebiten.Image to arbor.Image.
type Texture struct {
	img *ebiten.Image
}

// NewTexture wraps img.
func NewTexture(img *ebiten.Image) *Texture {
	return &Texture{img: img}
}

// Image returns the wrapped ebiten image.
func (t *Texture) Image() *ebiten.Image { return t.img }

// Width returns the texture width in pixels.
func (t *Texture) Width() float64 { return float64(t.img.Bounds().Dx()) }

// Height returns the texture height in pixels.
func (t *Texture) Height() float64 { return float64(t.img.Bounds().Dy()) }

// BlendBatch is the batch type understood by Surface: everything painted
// while it is current uses its blend mode.
type BlendBatch struct {
	Mode arbor.BlendMode
}

// Release implements arbor.Batch. Blend batches hold no GPU resources.
func (b *BlendBatch) Release() {}

// whitePixel is a 1x1 white image used for solid fills.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// Surface paints an arbor scene into an *ebiten.Image.
type Surface struct {
	target *ebiten.Image
	clips  []*ebiten.Image

	tx    arbor.Affine
	tint  arbor.Color
	batch arbor.Batch
	def   BlendBatch

	op ebiten.DrawImageOptions
}

// NewSurface creates a surface drawing into target.
func NewSurface(target *ebiten.Image) *Surface {
	s := &Surface{}
	s.Reset(target)
	return s
}

// Reset retargets the surface and restores the identity transform, a white
// tint and normal blending. Call it at the start of every frame.
func (s *Surface) Reset(target *ebiten.Image) {
	s.target = target
	s.clips = s.clips[:0]
	s.tx = arbor.Identity
	s.tint = arbor.ColorWhite
	s.def = BlendBatch{Mode: arbor.BlendNormal}
	s.batch = &s.def
}

func (s *Surface) Transform() arbor.Affine     { return s.tx }
func (s *Surface) SetTransform(m arbor.Affine) { s.tx = m }

func (s *Surface) Concatenate(m arbor.Affine, originX, originY float64) {
	s.tx = s.tx.Multiply(m).Translate(-originX, -originY)
}

func (s *Surface) Tint() arbor.Color     { return s.tint }
func (s *Surface) SetTint(c arbor.Color) { s.tint = c }

func (s *Surface) PushBatch(b arbor.Batch) arbor.Batch {
	if b == nil {
		return nil
	}
	prev := s.batch
	s.batch = b
	return prev
}

func (s *Surface) PopBatch(prev arbor.Batch) {
	if prev == nil {
		return
	}
	s.batch = prev
}

// StartClipped narrows drawing to the screen-space bounding box of the
// rectangle under the current transform.
func (s *Surface) StartClipped(x, y, width, height float64) bool {
	r := clipBounds(s.tx, x, y, width, height).Intersect(s.target.Bounds())
	if r.Empty() {
		return false
	}
	s.clips = append(s.clips, s.target)
	s.target = s.target.SubImage(r).(*ebiten.Image)
	return true
}

func (s *Surface) EndClipped() {
	n := len(s.clips)
	if n == 0 {
		return
	}
	s.target = s.clips[n-1]
	s.clips = s.clips[:n-1]
}

// DrawImage draws img, which must be a *Texture, scaled into the rectangle.
// Other image types are ignored.
func (s *Surface) DrawImage(img arbor.Image, x, y, width, height float64) {
	t, ok := img.(*Texture)
	if !ok || t.img == nil {
		return
	}
	s.draw(t.img, x, y, width, height)
}

// FillRect fills the rectangle with the current tint.
func (s *Surface) FillRect(x, y, width, height float64) {
	s.draw(ensureWhitePixel(), x, y, width, height)
}

func (s *Surface) draw(img *ebiten.Image, x, y, width, height float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || s.tint.A <= 0 {
		return
	}
	op := &s.op
	op.GeoM.Reset()
	op.GeoM.Scale(width/float64(b.Dx()), height/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(affineToGeoM(s.tx))

	// Premultiply the tint.
	op.ColorScale.Reset()
	a := float32(s.tint.A)
	op.ColorScale.Scale(float32(s.tint.R)*a, float32(s.tint.G)*a, float32(s.tint.B)*a, a)

	op.Blend = s.blend()
	s.target.DrawImage(img, op)
}

func (s *Surface) blend() ebiten.Blend {
	if bb, ok := s.batch.(*BlendBatch); ok {
		return ebitenBlend(bb.Mode)
	}
	return ebiten.BlendSourceOver
}

// affineToGeoM converts an arbor affine matrix to an ebiten.GeoM.
func affineToGeoM(m arbor.Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// clipBounds returns the integer bounding box of the rectangle's corners
// under m.
func clipBounds(m arbor.Affine, x, y, width, height float64) image.Rectangle {
	corners := [4]arbor.Vec2{
		m.Apply(arbor.Vec2{X: x, Y: y}),
		m.Apply(arbor.Vec2{X: x + width, Y: y}),
		m.Apply(arbor.Vec2{X: x, Y: y + height}),
		m.Apply(arbor.Vec2{X: x + width, Y: y + height}),
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// ebitenBlend returns the ebiten.Blend value corresponding to mode.
func ebitenBlend(mode arbor.BlendMode) ebiten.Blend {
	switch mode {
	case arbor.BlendAdd:
		return ebiten.BlendLighter
	case arbor.BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case arbor.BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case arbor.BlendErase:
		return ebiten.BlendDestinationOut
	case arbor.BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

var _ arbor.Surface = (*Surface)(nil)
var _ arbor.Image = (*Texture)(nil)
