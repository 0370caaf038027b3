package bullet

import (
	"fmt"
	"os"
)

// ObtainStaticNodeShape builds a static collision shape from the mesh parts
// of the tree rooted at node. A tree whose parts all share the identity
// transform becomes a single BvhTriangleMeshShape; anything else becomes a
// CompoundShape with one BVH child per transform group. The returned shape
// carries one reference owned by the caller.
func (c *Context) ObtainStaticNodeShape(node *Node, applyTransform bool) (CollisionShape, error) {
	if _, err := c.native(); err != nil {
		return nil, err
	}
	groups, err := AppendShapeGroups(c.groups[:0], node, applyTransform, 0, c.pool)
	if err != nil {
		return nil, err
	}
	return c.obtainAndFree(groups)
}

// ObtainStaticNodeShapes is ObtainStaticNodeShape over several roots, whose
// parts merge across roots when their transforms match.
func (c *Context) ObtainStaticNodeShapes(nodes []*Node) (CollisionShape, error) {
	if _, err := c.native(); err != nil {
		return nil, err
	}
	groups, err := AppendShapeGroupsFromNodes(c.groups[:0], nodes, 0, c.pool)
	if err != nil {
		return nil, err
	}
	return c.obtainAndFree(groups)
}

func (c *Context) obtainAndFree(groups []*ShapeGroup) (CollisionShape, error) {
	if globalDebug {
		_, _ = fmt.Fprintf(os.Stderr, "[bullet] static shape: %d transform groups, %d parts\n", len(groups), countParts(groups))
	}
	shape, err := c.ObtainStaticShape(groups)
	c.groups = FreeShapeGroups(groups, c.pool)
	return shape, err
}

// ObtainStaticShape builds a static collision shape from already grouped mesh
// parts. The groups are not freed.
func (c *Context) ObtainStaticShape(groups []*ShapeGroup) (CollisionShape, error) {
	if len(groups) == 0 {
		return nil, ErrNoMeshParts
	}
	if len(groups) == 1 && groups[0].Transform.IsIdentity() {
		shape, err := c.ObtainBvhTriangleMeshShape(groups[0].Parts)
		if err != nil {
			return nil, err
		}
		return shape, nil
	}
	compound, err := c.NewCompoundShape(true)
	if err != nil {
		return nil, err
	}
	compound.Obtain()
	for _, g := range groups {
		shape, err := c.ObtainBvhTriangleMeshShape(g.Parts)
		if err != nil {
			compound.Release()
			return nil, err
		}
		compound.AddChildShape(g.Transform, shape)
		shape.Release()
	}
	return compound, nil
}
