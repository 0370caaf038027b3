package bullet

import "fmt"

// --- Box ---

// NewBoxMesh returns an axis-aligned box centered on the origin with the given
// half extents: 8 corners and 12 triangles.
func NewBoxMesh(half Vec3) *Mesh {
	x, y, z := half.X, half.Y, half.Z
	m := &Mesh{
		VertexSize: 3,
		Vertices: []float32{
			-x, -y, -z, x, -y, -z, x, y, -z, -x, y, -z,
			-x, -y, z, x, -y, z, x, y, z, -x, y, z,
		},
		Indices: make([]uint16, 0, 36),
	}
	faces := [6][4]uint16{
		{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 4, 7, 3},
		{1, 2, 6, 5}, {3, 7, 6, 2}, {0, 1, 5, 4},
	}
	for _, f := range faces {
		m.Indices = append(m.Indices, f[0], f[1], f[2], f[0], f[2], f[3])
	}
	return m
}

// NewBoxNode creates a node carrying a single box part.
func NewBoxNode(name string, half Vec3) *Node {
	m := NewBoxMesh(half)
	return NewMeshNode(name, NewMeshPart(name, m, PrimitiveTriangles, 0, len(m.Indices)))
}

// --- Polygon ---

// maxPolygonPoints is the most points a polygon can have with uint16 indices.
const maxPolygonPoints = 1 << 16

// NewPolygonMesh returns a fan-triangulated mesh of a convex polygon.
// N points give N vertices and 3*(N-2) indices. Fewer than three points give
// an empty mesh. Panics with more than 65536 points.
func NewPolygonMesh(points []Vec3) *Mesh {
	m := &Mesh{VertexSize: 3}
	buildPolygonFan(m, points)
	return m
}

// NewPolygonNode creates a node carrying a single polygon part.
func NewPolygonNode(name string, points []Vec3) *Node {
	m := NewPolygonMesh(points)
	return NewMeshNode(name, NewMeshPart(name, m, PrimitiveTriangles, 0, len(m.Indices)))
}

// SetPolygonPoints rebuilds the polygon mesh of n's first part in place and
// resizes the part to cover it. Backing arrays are reused when large enough.
// Shapes already built over the old buffers must be released first.
func SetPolygonPoints(n *Node, points []Vec3) {
	if len(n.Parts) == 0 || n.Parts[0].Mesh == nil {
		panic("bullet: SetPolygonPoints on a node without a mesh part")
	}
	part := n.Parts[0]
	buildPolygonFan(part.Mesh, points)
	part.Offset = 0
	part.Size = len(part.Mesh.Indices)
}

// buildPolygonFan fills m with a triangle fan around points[0].
func buildPolygonFan(m *Mesh, points []Vec3) {
	m.VertexSize = 3
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
	n := len(points)
	if n > maxPolygonPoints {
		panic(fmt.Sprintf("bullet: polygon has %d points, uint16 indices allow at most %d", n, maxPolygonPoints))
	}
	if n < 3 {
		return
	}
	for _, p := range points {
		m.Vertices = append(m.Vertices, p.X, p.Y, p.Z)
	}
	for i := 1; i < n-1; i++ {
		m.Indices = append(m.Indices, 0, uint16(i), uint16(i+1))
	}
}
