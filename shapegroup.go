package bullet

import "fmt"

// ShapeGroup collects the mesh parts that share one accumulated transform.
// Parts keep the depth-first order in which grouping met them.
type ShapeGroup struct {
	Parts     []*MeshPart
	Transform Matrix4
}

// Reset empties the part list (keeping its capacity) and restores the
// identity transform.
func (g *ShapeGroup) Reset() {
	clear(g.Parts)
	g.Parts = g.Parts[:0]
	g.Transform = Identity
}

// NewShapeGroupPool returns a pool of shape groups keeping at most max free
// groups (zero or less for unbounded).
func NewShapeGroupPool(max int) *Pool[ShapeGroup] {
	return NewPool(func() *ShapeGroup {
		return &ShapeGroup{Transform: Identity}
	}, max)
}

// AppendShapeGroups walks the tree rooted at node and merges its mesh parts
// into out, returning the extended slice. Groups already in out may gain
// parts or have their transforms composed in place.
//
// The node's own transform is LocalTransform when applyTransform is true and
// identity otherwise. A node's parts join the first group in out[offset:]
// whose transform is bit-for-bit equal to that transform, or a new group
// obtained from pool. Children are always walked with their transforms
// applied. When the node carries a non-identity transform its descendants
// only merge among themselves, and every group they create is then
// left-multiplied by the node's transform.
//
// Equality is exact: transforms that differ in the last bit of one element
// produce separate groups. New groups come from pool; the caller frees them.
func AppendShapeGroups(out []*ShapeGroup, node *Node, applyTransform bool, offset int, pool *Pool[ShapeGroup]) ([]*ShapeGroup, error) {
	if err := checkGroupArgs(out, offset, pool); err != nil {
		return out, err
	}
	if node == nil {
		return out, fmt.Errorf("bullet: nil root node: %w", ErrInvalidArgument)
	}
	return appendShapeGroups(out, node, applyTransform, offset, pool), nil
}

// AppendShapeGroupsFromNodes groups each root in turn with its transform
// applied. All roots share out, offset and pool, so parts of separate roots
// with equal transforms end up in the same group.
func AppendShapeGroupsFromNodes(out []*ShapeGroup, nodes []*Node, offset int, pool *Pool[ShapeGroup]) ([]*ShapeGroup, error) {
	if err := checkGroupArgs(out, offset, pool); err != nil {
		return out, err
	}
	for i, node := range nodes {
		if node == nil {
			return out, fmt.Errorf("bullet: nil root node at index %d: %w", i, ErrInvalidArgument)
		}
	}
	for _, node := range nodes {
		out = appendShapeGroups(out, node, true, offset, pool)
	}
	return out, nil
}

// FreeShapeGroups returns every group to pool and gives back out emptied,
// ready for the next grouping pass.
func FreeShapeGroups(out []*ShapeGroup, pool *Pool[ShapeGroup]) []*ShapeGroup {
	pool.FreeAll(out)
	clear(out)
	return out[:0]
}

func checkGroupArgs(out []*ShapeGroup, offset int, pool *Pool[ShapeGroup]) error {
	if pool == nil {
		return fmt.Errorf("bullet: nil shape group pool: %w", ErrInvalidArgument)
	}
	if offset < 0 || offset > len(out) {
		return fmt.Errorf("bullet: group offset %d outside [0, %d]: %w", offset, len(out), ErrInvalidArgument)
	}
	return nil
}

func appendShapeGroups(out []*ShapeGroup, node *Node, applyTransform bool, offset int, pool *Pool[ShapeGroup]) []*ShapeGroup {
	transform := Identity
	if applyTransform {
		transform = node.LocalTransform
	}

	if len(node.Parts) > 0 {
		var group *ShapeGroup
		for _, g := range out[offset:] {
			if g.Transform.BitsEqual(transform) {
				group = g
				break
			}
		}
		if group == nil {
			group = pool.Obtain()
			group.Parts = group.Parts[:0]
			group.Transform = transform
			out = append(out, group)
		}
		group.Parts = append(group.Parts, node.Parts...)
	}

	if node.HasChildren() {
		transformed := applyTransform && !transform.IsIdentity()
		childOffset := offset
		if transformed {
			childOffset = len(out)
		}
		for _, child := range node.children {
			out = appendShapeGroups(out, child, true, childOffset, pool)
		}
		if transformed {
			for _, g := range out[childOffset:] {
				g.Transform = transform.Mul(g.Transform)
			}
		}
	}
	return out
}
