package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/arbor"
)

// fpsWidget displays the current FPS and TPS, refreshed every ~0.5 seconds.
type fpsWidget struct {
	node       *arbor.ImageNode
	img        *ebiten.Image
	lastUpdate float64
}

// newFPSWidget creates the overlay node. 100x32 is enough for
// "FPS: 60.0\nTPS: 60.0".
func newFPSWidget() *fpsWidget {
	img := ebiten.NewImage(100, 32)
	w := &fpsWidget{img: img}
	w.node = arbor.NewImageNode("fps_widget", NewTexture(img))
	w.lastUpdate = 0.5
	return w
}

func (w *fpsWidget) update(dt float64) {
	w.lastUpdate += dt
	if w.lastUpdate < 0.5 {
		return
	}
	w.lastUpdate = 0

	w.img.Clear()
	// Semi-transparent background for readability
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}
