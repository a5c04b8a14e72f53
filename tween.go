package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values of a Node simultaneously through the
// node's setters, so dirty flags and depth reordering fire as usual. Create
// one via the convenience constructors and call Update(dt) each frame. If
// the target node is disposed, the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	values [4]float64
	count  int
	apply  func(v [4]float64)
	target *Node
	Done   bool
}

func newTweenGroup(target *Node, duration float32, fn ease.TweenFunc, apply func([4]float64), pairs ...[2]float64) *TweenGroup {
	g := &TweenGroup{count: len(pairs), target: target, apply: apply}
	for i, p := range pairs {
		g.tweens[i] = gween.New(float32(p[0]), float32(p[1]), duration, fn)
		g.values[i] = p[0]
	}
	return g
}

// Update advances all tweens by dt seconds and applies the values. If the
// target node has been disposed, Done is set and nothing is written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(g.values)
	g.Done = allDone
}

// TweenTranslation animates the node's translation to (toX, toY).
func TweenTranslation(e Element, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := e.AsNode()
	return newTweenGroup(n, duration, fn, func(v [4]float64) { n.SetTranslation(v[0], v[1]) },
		[2]float64{n.TX(), toX}, [2]float64{n.TY(), toY})
}

// TweenScale animates the node's scale to (toSX, toSY).
func TweenScale(e Element, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := e.AsNode()
	return newTweenGroup(n, duration, fn, func(v [4]float64) { n.SetScale(v[0], v[1]) },
		[2]float64{n.ScaleX(), toSX}, [2]float64{n.ScaleY(), toSY})
}

// TweenRotation animates the node's rotation to the target angle.
func TweenRotation(e Element, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := e.AsNode()
	return newTweenGroup(n, duration, fn, func(v [4]float64) { n.SetRotation(v[0]) },
		[2]float64{n.Rotation(), to})
}

// TweenAlpha animates the node's alpha.
func TweenAlpha(e Element, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := e.AsNode()
	return newTweenGroup(n, duration, fn, func(v [4]float64) { n.SetAlpha(v[0]) },
		[2]float64{n.Alpha(), to})
}

// TweenTint animates all four components of the node's tint.
func TweenTint(e Element, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := e.AsNode()
	from := n.Tint()
	return newTweenGroup(n, duration, fn, func(v [4]float64) { n.SetTint(Color{v[0], v[1], v[2], v[3]}) },
		[2]float64{from.R, to.R}, [2]float64{from.G, to.G},
		[2]float64{from.B, to.B}, [2]float64{from.A, to.A})
}

// TweenDepth animates the node's depth; the node moves among its siblings
// as it passes them.
func TweenDepth(e Element, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := e.AsNode()
	return newTweenGroup(n, duration, fn, func(v [4]float64) { n.SetDepth(v[0]) },
		[2]float64{n.Depth(), to})
}
