package bullet

import "fmt"

// Primitive identifies how a mesh part's indices are assembled.
type Primitive uint8

const (
	PrimitiveTriangles Primitive = iota // every three indices form a triangle
	PrimitiveLines                      // every two indices form a segment
	PrimitivePoints                     // every index is a point
)

// String returns the primitive name.
func (p Primitive) String() string {
	switch p {
	case PrimitiveTriangles:
		return "triangles"
	case PrimitiveLines:
		return "lines"
	case PrimitivePoints:
		return "points"
	default:
		return fmt.Sprintf("Primitive(%d)", uint8(p))
	}
}

// Mesh holds interleaved vertex data and a shared index buffer. The first three
// floats of every vertex are its position.
type Mesh struct {
	Vertices   []float32
	VertexSize int // floats per vertex, at least 3
	Indices    []uint16
}

// NumVertices returns the number of whole vertices in the mesh.
func (m *Mesh) NumVertices() int {
	if m.VertexSize <= 0 {
		return 0
	}
	return len(m.Vertices) / m.VertexSize
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) Vec3 {
	o := i * m.VertexSize
	return Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// MeshPart is a window of a mesh's index buffer. Parts are treated as
// immutable values once attached to a node.
type MeshPart struct {
	ID        string
	Primitive Primitive
	Offset    int // first index
	Size      int // number of indices
	Mesh      *Mesh
}

// NewMeshPart returns a part covering size indices of mesh starting at offset.
func NewMeshPart(id string, mesh *Mesh, primitive Primitive, offset, size int) *MeshPart {
	return &MeshPart{ID: id, Primitive: primitive, Offset: offset, Size: size, Mesh: mesh}
}

// Triangles returns the part's index window. It fails for parts that are not
// indexed triangle lists or whose window falls outside the mesh.
func (p *MeshPart) Triangles() ([]uint16, error) {
	if p.Mesh == nil {
		return nil, fmt.Errorf("bullet: mesh part %q has no mesh: %w", p.ID, ErrUnsupportedMesh)
	}
	if p.Primitive != PrimitiveTriangles {
		return nil, fmt.Errorf("bullet: mesh part %q uses %s: %w", p.ID, p.Primitive, ErrUnsupportedMesh)
	}
	if p.Mesh.VertexSize < 3 {
		return nil, fmt.Errorf("bullet: mesh part %q has vertex size %d: %w", p.ID, p.Mesh.VertexSize, ErrUnsupportedMesh)
	}
	if p.Size%3 != 0 || p.Offset < 0 || p.Size < 0 || p.Offset+p.Size > len(p.Mesh.Indices) {
		return nil, fmt.Errorf("bullet: mesh part %q index window [%d,+%d) invalid for %d indices: %w",
			p.ID, p.Offset, p.Size, len(p.Mesh.Indices), ErrUnsupportedMesh)
	}
	return p.Mesh.Indices[p.Offset : p.Offset+p.Size], nil
}
