package bullet

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 components of a Node's transform simultaneously.
// Create one via the convenience constructors (TweenTranslation, TweenScale,
// TweenRotation) and call Update(dt) each frame. The group writes its values
// and rebuilds the node's LocalTransform. If the target node is disposed, the
// group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(vals [4]float32)
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target and
// recalculates its local transform. If the target node has been disposed,
// Done is set to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	var vals [4]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = val
		if !finished {
			allDone = false
		}
	}
	g.apply(vals)
	g.Done = allDone

	if g.target != nil {
		g.target.CalculateLocalTransform()
	}
}

// TweenTranslation animates node.Translation to the target over the duration.
func TweenTranslation(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Translation
	g := &TweenGroup{count: 3, target: node}
	g.tweens[0] = gween.New(from.X, to.X, duration, fn)
	g.tweens[1] = gween.New(from.Y, to.Y, duration, fn)
	g.tweens[2] = gween.New(from.Z, to.Z, duration, fn)
	g.apply = func(v [4]float32) {
		node.Translation = Vec3{v[0], v[1], v[2]}
	}
	return g
}

// TweenScale animates node.Scale to the target over the duration.
func TweenScale(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Scale
	g := &TweenGroup{count: 3, target: node}
	g.tweens[0] = gween.New(from.X, to.X, duration, fn)
	g.tweens[1] = gween.New(from.Y, to.Y, duration, fn)
	g.tweens[2] = gween.New(from.Z, to.Z, duration, fn)
	g.apply = func(v [4]float32) {
		node.Scale = Vec3{v[0], v[1], v[2]}
	}
	return g
}

// TweenRotation animates node.Rotation around axis from one angle to another
// (radians) over the duration.
func TweenRotation(node *Node, axis Vec3, from, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(from, to, duration, fn)
	g.apply = func(v [4]float32) {
		node.Rotation = QuaternionFromAxisAngle(axis, v[0])
	}
	return g
}
