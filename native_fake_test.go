package bullet

import (
	"testing"
	"unsafe"
)

// fakeNative stands in for the shared library. It hands out increasing
// addresses and records what the bindings asked it to do.
type fakeNative struct {
	version int32
	loads   int
	closed  int
	path    string

	next    uintptr
	live    map[uintptr]string
	deleted []uintptr

	vectors  map[uintptr][3]float32
	scaling  map[uintptr][3]float32
	children map[uintptr][]fakeChild
	meshes   map[uintptr][]fakeIndexedMesh
	bvh      map[uintptr]uintptr
	caches   map[uintptr]uintptr
	pairs    map[uintptr]int32
}

type fakeChild struct {
	transform Matrix4
	shape     uintptr
}

type fakeIndexedMesh struct {
	numTriangles int32
	numVertices  int32
	stride       int32
	firstIndex   uint16
}

func newFakeNative() *fakeNative {
	return &fakeNative{
		version:  Version,
		next:     0x1000,
		live:     map[uintptr]string{},
		vectors:  map[uintptr][3]float32{},
		scaling:  map[uintptr][3]float32{},
		children: map[uintptr][]fakeChild{},
		meshes:   map[uintptr][]fakeIndexedMesh{},
		bvh:      map[uintptr]uintptr{},
		caches:   map[uintptr]uintptr{},
		pairs:    map[uintptr]int32{},
	}
}

func (f *fakeNative) alloc(class string) uintptr {
	f.next += 0x10
	f.live[f.next] = class
	return f.next
}

func (f *fakeNative) free(addr uintptr) {
	delete(f.live, addr)
	f.deleted = append(f.deleted, addr)
}

// liveCount returns the number of live native objects of class.
func (f *fakeNative) liveCount(class string) int {
	n := 0
	for _, c := range f.live {
		if c == class {
			n++
		}
	}
	return n
}

func (f *fakeNative) api() *nativeAPI {
	return &nativeAPI{
		getVersion: func() int32 { return f.version },

		vector3New: func(x, y, z float32) uintptr {
			addr := f.alloc("btVector3")
			f.vectors[addr] = [3]float32{x, y, z}
			return addr
		},
		vector3SetValue: func(addr uintptr, x, y, z float32) {
			f.vectors[addr] = [3]float32{x, y, z}
		},
		vector3GetValue: func(addr uintptr, out *float32) {
			v := f.vectors[addr]
			copy(unsafe.Slice(out, 3), v[:])
		},
		vector3Delete: f.free,

		collisionShapeSetLocalScaling: func(addr, scaling uintptr) {
			f.scaling[addr] = f.vectors[scaling]
		},
		collisionShapeGetLocalScaling: func(addr, out uintptr) {
			s, ok := f.scaling[addr]
			if !ok {
				s = [3]float32{1, 1, 1}
			}
			f.vectors[out] = s
		},
		collisionShapeCalculateLocalInertia: func(addr uintptr, mass float32, inertia uintptr) {
			// Static meshes have no inertia; report mass on every axis so
			// the value is observable.
			f.vectors[inertia] = [3]float32{mass, mass, mass}
		},
		collisionShapeDelete: f.free,

		compoundShapeNew: func(dynamicAabbTree bool, initialChildCapacity int32) uintptr {
			return f.alloc("btCompoundShape")
		},
		compoundShapeAddChildShape: func(addr uintptr, transform *float32, shape uintptr) {
			var m Matrix4
			copy(m[:], unsafe.Slice(transform, 16))
			f.children[addr] = append(f.children[addr], fakeChild{m, shape})
		},
		compoundShapeGetNumChildShapes: func(addr uintptr) int32 {
			return int32(len(f.children[addr]))
		},

		triangleArrayNew: func() uintptr { return f.alloc("btTriangleIndexVertexArray") },
		triangleArrayAddIndexedMesh: func(addr uintptr, numTriangles int32, indices *uint16, numVertices int32, vertices *float32, vertexStride int32) {
			f.meshes[addr] = append(f.meshes[addr], fakeIndexedMesh{numTriangles, numVertices, vertexStride, *indices})
		},
		triangleArrayDelete: f.free,

		bvhTriangleMeshShapeNew: func(meshInterface uintptr, useQuantizedAabbCompression, buildBvh bool) uintptr {
			addr := f.alloc("btBvhTriangleMeshShape")
			f.bvh[addr] = meshInterface
			return addr
		},

		dbvtBroadphaseNew: func() uintptr {
			addr := f.alloc("btDbvtBroadphase")
			f.caches[addr] = f.alloc("btOverlappingPairCache")
			return addr
		},
		broadphaseGetOverlappingPairCache: func(addr uintptr) uintptr {
			return f.caches[addr]
		},
		broadphaseDelete: func(addr uintptr) {
			delete(f.live, f.caches[addr])
			f.free(addr)
		},

		pairCacheGetNumOverlappingPairs: func(addr uintptr) int32 {
			return f.pairs[addr]
		},
	}
}

func (f *fakeNative) library(path string) *Library {
	return &Library{
		Path: path,
		api:  f.api(),
		close: func() error {
			f.closed++
			return nil
		},
	}
}

func (f *fakeNative) loader() LoaderFunc {
	return func(path string) (*Library, error) {
		f.loads++
		f.path = path
		return f.library(path), nil
	}
}

// newTestContext returns an initialized context backed by a fake library.
func newTestContext(t *testing.T) (*Context, *fakeNative) {
	t.Helper()
	f := newFakeNative()
	ctx := NewContext(Config{LibraryName: DefaultLibraryName}, WithLoader(f.loader()))
	if err := ctx.Init(false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return ctx, f
}

// triangleMesh returns a mesh of n separate triangles in the XY plane,
// triangle i spanning x in [i, i+1].
func triangleMesh(n int) *Mesh {
	m := &Mesh{VertexSize: 3}
	for i := 0; i < n; i++ {
		x := float32(i)
		m.Vertices = append(m.Vertices,
			x, 0, 0,
			x+1, 0, 0,
			x, 1, 0,
		)
		base := uint16(i * 3)
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	return m
}
