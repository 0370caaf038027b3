package bullet

import (
	"fmt"
	"log"
	"runtime"
)

// CollisionShape is the capability set shared by every native collision shape.
type CollisionShape interface {
	NativeObject
	SetLocalScaling(scaling Vec3)
	LocalScaling() Vec3
	CalculateLocalInertia(mass float32) Vec3
}

type collisionShape struct {
	Object
}

func deleteCollisionShape(api *nativeAPI, addr uintptr) {
	api.collisionShapeDelete(addr)
}

// SetLocalScaling sets the shape's scale.
func (s *collisionShape) SetLocalScaling(scaling Vec3) {
	s.checkPointer()
	tmp := s.ctx.tempVector(0)
	tmp.Set(scaling)
	s.ctx.api().collisionShapeSetLocalScaling(s.addr, tmp.addr)
}

// LocalScaling returns the shape's scale.
func (s *collisionShape) LocalScaling() Vec3 {
	s.checkPointer()
	tmp := s.ctx.tempVector(0)
	s.ctx.api().collisionShapeGetLocalScaling(s.addr, tmp.addr)
	return tmp.Get()
}

// CalculateLocalInertia returns the diagonal inertia tensor for mass.
func (s *collisionShape) CalculateLocalInertia(mass float32) Vec3 {
	s.checkPointer()
	tmp := s.ctx.tempVector(1)
	s.ctx.api().collisionShapeCalculateLocalInertia(s.addr, mass, tmp.addr)
	return tmp.Get()
}

// --- TriangleIndexVertexArray ---

// TriangleIndexVertexArray exposes mesh part triangles to the native side
// without copying. The vertex and index buffers stay pinned until the array
// is disposed, so the meshes must not be resized meanwhile. An array that is
// dropped without being disposed is unpinned by the garbage collector; its
// native object leaks.
type TriangleIndexVertexArray struct {
	Object
	parts   []*MeshPart
	pinner  *runtime.Pinner
	cleanup runtime.Cleanup
}

// leakedArray is the cleanup state of a TriangleIndexVertexArray. It must not
// reference the array itself.
type leakedArray struct {
	pinner  *runtime.Pinner
	addr    uintptr
	logging bool
}

func unpinLeakedArray(l leakedArray) {
	l.pinner.Unpin()
	if l.logging {
		log.Printf("bullet: btTriangleIndexVertexArray(0x%x) was garbage collected without Dispose; native memory leaked", l.addr)
	}
}

// NewTriangleIndexVertexArray creates a native triangle array over parts.
// Every part must be an indexed triangle list.
func (c *Context) NewTriangleIndexVertexArray(parts []*MeshPart) (*TriangleIndexVertexArray, error) {
	api, err := c.native()
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, ErrNoMeshParts
	}
	spans := make([][]uint16, len(parts))
	for i, p := range parts {
		if p == nil {
			return nil, fmt.Errorf("bullet: nil mesh part at index %d: %w", i, ErrInvalidArgument)
		}
		if spans[i], err = p.Triangles(); err != nil {
			return nil, err
		}
	}

	a := &TriangleIndexVertexArray{
		parts:  append([]*MeshPart(nil), parts...),
		pinner: new(runtime.Pinner),
	}
	a.construct(c, "btTriangleIndexVertexArray", api.triangleArrayNew(), true, func(api *nativeAPI, addr uintptr) {
		api.triangleArrayDelete(addr)
	})
	a.cleanup = runtime.AddCleanup(a, unpinLeakedArray, leakedArray{pinner: a.pinner, addr: a.addr, logging: c.logging})
	a.onDispose = func() {
		a.cleanup.Stop()
		a.pinner.Unpin()
	}
	for i, p := range parts {
		indices := spans[i]
		if len(indices) == 0 || len(p.Mesh.Vertices) == 0 {
			continue
		}
		a.pinner.Pin(&indices[0])
		a.pinner.Pin(&p.Mesh.Vertices[0])
		api.triangleArrayAddIndexedMesh(a.addr,
			int32(len(indices)/3), &indices[0],
			int32(p.Mesh.NumVertices()), &p.Mesh.Vertices[0],
			int32(p.Mesh.VertexSize*4))
	}
	return a, nil
}

// Parts returns the mesh parts the array was built from.
func (a *TriangleIndexVertexArray) Parts() []*MeshPart {
	return a.parts
}

// --- BvhTriangleMeshShape ---

// BvhTriangleMeshShape is a static triangle mesh with a bounding volume
// hierarchy. It holds a reference on its triangle array.
type BvhTriangleMeshShape struct {
	collisionShape
	meshInterface *TriangleIndexVertexArray
}

// NewBvhTriangleMeshShape creates a BVH shape over array and obtains a
// reference on it for the shape's lifetime.
func (c *Context) NewBvhTriangleMeshShape(array *TriangleIndexVertexArray, useQuantizedAabbCompression bool) (*BvhTriangleMeshShape, error) {
	api, err := c.native()
	if err != nil {
		return nil, err
	}
	if array == nil {
		return nil, fmt.Errorf("bullet: nil triangle array: %w", ErrInvalidArgument)
	}
	array.checkPointer()
	s := &BvhTriangleMeshShape{meshInterface: array}
	s.construct(c, "btBvhTriangleMeshShape", api.bvhTriangleMeshShapeNew(array.addr, useQuantizedAabbCompression, true), true, deleteCollisionShape)
	array.Obtain()
	s.onDispose = func() {
		s.meshInterface.Release()
		s.meshInterface = nil
	}
	return s, nil
}

// ObtainBvhTriangleMeshShape builds a triangle array and BVH shape over parts.
// The returned shape carries one reference owned by the caller.
func (c *Context) ObtainBvhTriangleMeshShape(parts []*MeshPart) (*BvhTriangleMeshShape, error) {
	array, err := c.NewTriangleIndexVertexArray(parts)
	if err != nil {
		return nil, err
	}
	s, err := c.NewBvhTriangleMeshShape(array, true)
	if err != nil {
		array.Dispose()
		return nil, err
	}
	s.Obtain()
	return s, nil
}

// MeshInterface returns the triangle array the shape was built on.
func (s *BvhTriangleMeshShape) MeshInterface() *TriangleIndexVertexArray {
	return s.meshInterface
}

// --- CompoundShape ---

// CompoundShape combines child shapes, each at its own transform. It holds a
// reference on every child until it is disposed.
type CompoundShape struct {
	collisionShape
	children []CollisionShape
}

// NewCompoundShape creates an empty compound shape.
func (c *Context) NewCompoundShape(dynamicAabbTree bool) (*CompoundShape, error) {
	api, err := c.native()
	if err != nil {
		return nil, err
	}
	s := &CompoundShape{}
	s.construct(c, "btCompoundShape", api.compoundShapeNew(dynamicAabbTree, 0), true, deleteCollisionShape)
	s.onDispose = func() {
		for _, child := range s.children {
			child.Release()
		}
		s.children = nil
	}
	return s, nil
}

// AddChildShape places shape at transform inside the compound and obtains a
// reference on it.
func (s *CompoundShape) AddChildShape(transform Matrix4, shape CollisionShape) {
	s.checkPointer()
	if shape == nil || shape.Pointer() == 0 {
		panic("bullet: cannot add nil or disposed child shape")
	}
	s.ctx.api().compoundShapeAddChildShape(s.addr, &transform[0], shape.Pointer())
	shape.Obtain()
	s.children = append(s.children, shape)
}

// NumChildShapes returns the native child count.
func (s *CompoundShape) NumChildShapes() int {
	s.checkPointer()
	return int(s.ctx.api().compoundShapeGetNumChildShapes(s.addr))
}

// ChildShape returns the i-th child added through AddChildShape.
func (s *CompoundShape) ChildShape(i int) CollisionShape {
	return s.children[i]
}
