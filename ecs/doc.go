// Package ecs attaches bullet shape groups to [Donburi] entities.
//
// [AttachShapeGroups] groups a node tree into the entity's [ShapeGroups]
// component and publishes a [ShapeGroupsBuilt] event. [RebuildShapeGroups]
// regroups every entity that carries the component, which is useful after
// tweens have moved nodes around. Subscribe to [ShapeGroupsBuiltEvent] in
// your ECS systems to rebuild collision shapes when groups change.
//
// Usage:
//
//	pool := bullet.NewShapeGroupPool(0)
//	if err := ecs.AttachShapeGroups(world, entity, root, pool); err != nil {
//		return err
//	}
//	ecs.ShapeGroupsBuiltEvent.Subscribe(world, onGroups)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
