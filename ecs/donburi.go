package ecs

import (
	"errors"
	"fmt"

	"github.com/phanxgames/bullet"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ErrInvalidEntity is returned for entities that are not alive in the world.
var ErrInvalidEntity = errors.New("ecs: invalid entity")

// ShapeGroupsData is the component value: the root node that was grouped and
// the resulting groups. Groups belong to the pool they were built from.
type ShapeGroupsData struct {
	Root   *bullet.Node
	Groups []*bullet.ShapeGroup
}

// ShapeGroups is the Donburi component type holding an entity's shape groups.
var ShapeGroups = donburi.NewComponentType[ShapeGroupsData]()

// ShapeGroupsBuilt reports a finished grouping pass for one entity.
type ShapeGroupsBuilt struct {
	Entity donburi.Entity
	Groups int
	Parts  int
}

// ShapeGroupsBuiltEvent is published after every successful grouping pass.
// Events are queued; call ProcessEvents to deliver them.
var ShapeGroupsBuiltEvent = events.NewEventType[ShapeGroupsBuilt]()

// AttachShapeGroups groups the tree rooted at root into the entity's
// ShapeGroups component, adding the component if needed. Groups from a
// previous pass are returned to pool first.
func AttachShapeGroups(world donburi.World, entity donburi.Entity, root *bullet.Node, pool *bullet.Pool[bullet.ShapeGroup]) error {
	if !world.Valid(entity) {
		return fmt.Errorf("%w: %v", ErrInvalidEntity, entity)
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(ShapeGroups) {
		entry.AddComponent(ShapeGroups)
	}
	data := ShapeGroups.Get(entry)
	data.Root = root
	return rebuild(world, entry, data, pool)
}

// DetachShapeGroups returns the entity's groups to pool and removes the
// component. Donburi entities need at least one component, so when
// ShapeGroups is the entity's only one it stays attached with its data
// cleared. Entities without the component are left alone.
func DetachShapeGroups(world donburi.World, entity donburi.Entity, pool *bullet.Pool[bullet.ShapeGroup]) {
	if !world.Valid(entity) {
		return
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(ShapeGroups) {
		return
	}
	data := ShapeGroups.Get(entry)
	data.Groups = bullet.FreeShapeGroups(data.Groups, pool)
	data.Root = nil
	if len(entry.Archetype().Layout().Components()) > 1 {
		entry.RemoveComponent(ShapeGroups)
	}
}

// RebuildShapeGroups regroups every entity carrying ShapeGroups with a root.
// The first error stops the pass.
func RebuildShapeGroups(world donburi.World, pool *bullet.Pool[bullet.ShapeGroup]) error {
	var firstErr error
	ShapeGroups.Each(world, func(entry *donburi.Entry) {
		if firstErr != nil {
			return
		}
		data := ShapeGroups.Get(entry)
		if data.Root == nil {
			return
		}
		firstErr = rebuild(world, entry, data, pool)
	})
	return firstErr
}

func rebuild(world donburi.World, entry *donburi.Entry, data *ShapeGroupsData, pool *bullet.Pool[bullet.ShapeGroup]) error {
	groups := bullet.FreeShapeGroups(data.Groups, pool)
	groups, err := bullet.AppendShapeGroups(groups, data.Root, true, 0, pool)
	data.Groups = groups
	if err != nil {
		return err
	}
	parts := 0
	for _, g := range groups {
		parts += len(g.Parts)
	}
	ShapeGroupsBuiltEvent.Publish(world, ShapeGroupsBuilt{
		Entity: entry.Entity(),
		Groups: len(groups),
		Parts:  parts,
	})
	return nil
}
