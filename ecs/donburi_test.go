package ecs

import (
	"errors"
	"testing"

	"github.com/phanxgames/bullet"

	"github.com/yohamta/donburi"
)

// body is a stand-in for a game's own component; donburi entities need one.
type body struct {
	Name string
}

var bodyComponent = donburi.NewComponentType[body]()

func meshNode(name string) *bullet.Node {
	mesh := &bullet.Mesh{
		VertexSize: 3,
		Vertices:   []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:    []uint16{0, 1, 2},
	}
	return bullet.NewMeshNode(name, bullet.NewMeshPart(name, mesh, bullet.PrimitiveTriangles, 0, 3))
}

func testTree() *bullet.Node {
	root := meshNode("root")
	moved := meshNode("moved")
	moved.SetTranslation(1, 0, 0)
	moved.CalculateLocalTransform()
	root.AddChild(moved)
	root.AddChild(meshNode("still"))
	return root
}

func TestAttachShapeGroups(t *testing.T) {
	world := donburi.NewWorld()
	entity := world.Create(bodyComponent)
	pool := bullet.NewShapeGroupPool(0)

	var built []ShapeGroupsBuilt
	ShapeGroupsBuiltEvent.Subscribe(world, func(w donburi.World, e ShapeGroupsBuilt) {
		built = append(built, e)
	})

	if err := AttachShapeGroups(world, entity, testTree(), pool); err != nil {
		t.Fatal(err)
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(ShapeGroups) {
		t.Fatal("component not added")
	}
	data := ShapeGroups.Get(entry)
	if len(data.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(data.Groups))
	}

	// Events are queued until processed.
	if len(built) != 0 {
		t.Fatal("event delivered before ProcessEvents")
	}
	ShapeGroupsBuiltEvent.ProcessEvents(world)
	if len(built) != 1 {
		t.Fatalf("events = %d, want 1", len(built))
	}
	if built[0].Entity != entity || built[0].Groups != 2 || built[0].Parts != 3 {
		t.Errorf("event = %+v", built[0])
	}
}

func TestAttachShapeGroupsReplacesPrevious(t *testing.T) {
	world := donburi.NewWorld()
	entity := world.Create(bodyComponent)
	pool := bullet.NewShapeGroupPool(0)

	if err := AttachShapeGroups(world, entity, testTree(), pool); err != nil {
		t.Fatal(err)
	}
	if err := AttachShapeGroups(world, entity, meshNode("single"), pool); err != nil {
		t.Fatal(err)
	}
	data := ShapeGroups.Get(world.Entry(entity))
	if len(data.Groups) != 1 {
		t.Errorf("groups = %d, want 1", len(data.Groups))
	}
	// One of the two earlier groups was reused, the other stays pooled.
	if pool.Len() != 1 {
		t.Errorf("pooled = %d, want 1", pool.Len())
	}
}

func TestAttachShapeGroupsErrors(t *testing.T) {
	world := donburi.NewWorld()
	pool := bullet.NewShapeGroupPool(0)

	entity := world.Create(bodyComponent)
	world.Remove(entity)
	if err := AttachShapeGroups(world, entity, testTree(), pool); !errors.Is(err, ErrInvalidEntity) {
		t.Errorf("removed entity: err = %v", err)
	}

	alive := world.Create(bodyComponent)
	if err := AttachShapeGroups(world, alive, nil, pool); !errors.Is(err, bullet.ErrInvalidArgument) {
		t.Errorf("nil root: err = %v", err)
	}
}

func TestDetachShapeGroups(t *testing.T) {
	world := donburi.NewWorld()
	entity := world.Create(bodyComponent)
	pool := bullet.NewShapeGroupPool(0)

	if err := AttachShapeGroups(world, entity, testTree(), pool); err != nil {
		t.Fatal(err)
	}
	DetachShapeGroups(world, entity, pool)
	if world.Entry(entity).HasComponent(ShapeGroups) {
		t.Error("component should be removed")
	}
	if pool.Len() != 2 {
		t.Errorf("pooled = %d, want 2", pool.Len())
	}
	// Detaching again is a no-op.
	DetachShapeGroups(world, entity, pool)
}

func TestRebuildShapeGroups(t *testing.T) {
	world := donburi.NewWorld()
	pool := bullet.NewShapeGroupPool(0)
	root := testTree()
	entity := world.Create(bodyComponent)
	if err := AttachShapeGroups(world, entity, root, pool); err != nil {
		t.Fatal(err)
	}

	// Move the translated child back to the origin: everything merges.
	moved := root.Find("moved")
	moved.SetTranslation(0, 0, 0)
	moved.CalculateLocalTransform()

	if err := RebuildShapeGroups(world, pool); err != nil {
		t.Fatal(err)
	}
	data := ShapeGroups.Get(world.Entry(entity))
	if len(data.Groups) != 1 || len(data.Groups[0].Parts) != 3 {
		t.Errorf("got %d groups", len(data.Groups))
	}
}

func TestDetachShapeGroupsOnlyComponent(t *testing.T) {
	world := donburi.NewWorld()
	entity := world.Create(ShapeGroups)
	pool := bullet.NewShapeGroupPool(0)

	if err := AttachShapeGroups(world, entity, testTree(), pool); err != nil {
		t.Fatal(err)
	}
	DetachShapeGroups(world, entity, pool)

	if !world.Valid(entity) {
		t.Fatal("entity should survive detach")
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(ShapeGroups) {
		t.Fatal("sole component should stay attached")
	}
	data := ShapeGroups.Get(entry)
	if len(data.Groups) != 0 || data.Root != nil {
		t.Errorf("data not cleared: %d groups, root %v", len(data.Groups), data.Root)
	}
	if pool.Len() != 2 {
		t.Errorf("pooled = %d, want 2", pool.Len())
	}

	// A cleared component is skipped by rebuilds and can be attached again.
	if err := RebuildShapeGroups(world, pool); err != nil {
		t.Fatalf("rebuild after detach: %v", err)
	}
	if err := AttachShapeGroups(world, entity, meshNode("again"), pool); err != nil {
		t.Fatal(err)
	}
	if got := len(ShapeGroups.Get(world.Entry(entity)).Groups); got != 1 {
		t.Errorf("groups = %d after reattach, want 1", got)
	}
}
