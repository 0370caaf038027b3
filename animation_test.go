package bullet

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenTranslation(t *testing.T) {
	n := NewNode("n")
	g := TweenTranslation(n, Vec3{10, 20, 30}, 1, ease.Linear)

	g.Update(0.5)
	assertVec(t, "half", n.Translation, Vec3{5, 10, 15})
	if g.Done {
		t.Error("should not be done halfway")
	}
	assertVec(t, "local", n.LocalTransform.GetTranslation(), Vec3{5, 10, 15})

	g.Update(0.5)
	assertVec(t, "end", n.Translation, Vec3{10, 20, 30})
	if !g.Done {
		t.Error("should be done")
	}

	// Further updates are ignored.
	n.Translation = Vec3{}
	g.Update(1)
	if n.Translation != (Vec3{}) {
		t.Error("finished tween should not write")
	}
}

func TestTweenScale(t *testing.T) {
	n := NewNode("n")
	g := TweenScale(n, Vec3{3, 3, 3}, 2, ease.Linear)
	g.Update(1)
	assertVec(t, "scale", n.Scale, Vec3{2, 2, 2})
}

func TestTweenRotation(t *testing.T) {
	n := NewNode("n")
	g := TweenRotation(n, Vec3{0, 0, 1}, 0, 1, 1, ease.Linear)
	g.Update(1)
	want := QuaternionFromAxisAngle(Vec3{0, 0, 1}, 1)
	assertNear(t, "Z", n.Rotation.Z, want.Z)
	assertNear(t, "W", n.Rotation.W, want.W)
}

func TestTweenStopsOnDisposedNode(t *testing.T) {
	n := NewNode("n")
	g := TweenTranslation(n, Vec3{1, 1, 1}, 1, ease.Linear)
	n.Dispose()
	g.Update(0.5)
	if !g.Done {
		t.Error("tween on disposed node should be done")
	}
	if n.Translation != (Vec3{}) {
		t.Error("disposed node should not be written")
	}
}

func TestTweenChangesGrouping(t *testing.T) {
	root := NewNode("root")
	a := NewMeshNode("a", newPart("a"))
	b := NewMeshNode("b", newPart("b"))
	root.AddChild(a)
	root.AddChild(b)
	b.SetTranslation(5, 0, 0)
	b.CalculateLocalTransform()

	pool := NewShapeGroupPool(0)
	groups, err := AppendShapeGroups(nil, root, true, 0, pool)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	groups = FreeShapeGroups(groups, pool)

	// Moving b back onto a merges them.
	g := TweenTranslation(b, Vec3{}, 1, ease.Linear)
	g.Update(1)
	groups, err = AppendShapeGroups(groups, root, true, 0, pool)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 {
		t.Fatalf("groups = %d after tween, want 1", len(groups))
	}
	assertParts(t, "merged", groups[0].Parts, a.Parts[0], b.Parts[0])
}
