package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/arbor"
)

// Game adapts a Scene to ebiten.Game. Use it directly when you need your own
// loop around the scene; Run wraps it with window setup.
type Game struct {
	scene   *arbor.Scene
	cfg     RunConfig
	surface *Surface
	input   *Input
	fps     *fpsWidget
	clear   color.Color
	onTick  func(dt float32)
}

// NewGame creates a Game for scene and applies cfg's scene settings.
func NewGame(scene *arbor.Scene, cfg RunConfig) *Game {
	scene.SetDebugMode(cfg.Debug)
	scene.SetBubble(cfg.Bubble)
	g := &Game{
		scene:   scene,
		cfg:     cfg,
		surface: NewSurface(nil),
		input:   NewInput(),
		clear:   toRGBA(cfg.ClearColor),
	}
	if cfg.ShowFPS {
		g.fps = newFPSWidget()
	}
	return g
}

// Scene returns the scene driven by g.
func (g *Game) Scene() *arbor.Scene { return g.scene }

// SetUpdateFunc sets a callback run once per tick after the scene update,
// with the tick length in seconds. Tweens are usually advanced here.
func (g *Game) SetUpdateFunc(fn func(dt float32)) { g.onTick = fn }

// Update polls input and advances the scene one tick.
func (g *Game) Update() error {
	g.input.Poll(g.scene)
	g.scene.Update()
	if g.onTick != nil {
		g.onTick(1 / float32(ebiten.TPS()))
	}
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

// Draw clears the screen and paints the scene, then the FPS overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.clear)
	g.surface.Reset(screen)
	g.scene.Paint(g.surface)
	if g.fps != nil {
		g.surface.Reset(screen)
		g.fps.node.Paint(g.surface)
	}
}

// Layout reports the configured screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and runs scene until the window is closed.
func Run(scene *arbor.Scene, cfg RunConfig) error {
	return RunGame(NewGame(scene, cfg))
}

// RunGame opens a window sized from g's config and runs g.
func RunGame(g *Game) error {
	cfg := g.cfg
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	g.scene.Logger().Info("arbor: starting", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return ebiten.RunGame(g)
}

// toRGBA converts an arbor Color to a premultiplied color.RGBA.
func toRGBA(c arbor.Color) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
