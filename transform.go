package bullet

import (
	"math"

	"github.com/chewxy/math32"
)

// Vec3 is a 3D vector used for translations, scales, axes and inertia.
type Vec3 struct {
	X, Y, Z float32
}

// Quaternion is a rotation stored as (X, Y, Z, W). The zero value is not a
// valid rotation; use QuaternionIdentity.
type Quaternion struct {
	X, Y, Z, W float32
}

// QuaternionIdentity is the rotation that leaves vectors unchanged.
var QuaternionIdentity = Quaternion{0, 0, 0, 1}

// QuaternionFromAxisAngle returns the rotation of radians around axis.
// The axis is normalized; a zero axis yields the identity rotation.
func QuaternionFromAxisAngle(axis Vec3, radians float32) Quaternion {
	l := math32.Sqrt(axis.X*axis.X + axis.Y*axis.Y + axis.Z*axis.Z)
	if l == 0 {
		return QuaternionIdentity
	}
	sin, cos := math32.Sincos(radians / 2)
	s := sin / l
	return Quaternion{axis.X * s, axis.Y * s, axis.Z * s, cos}
}

// Normalize returns q scaled to unit length. A zero quaternion yields identity.
func (q Quaternion) Normalize() Quaternion {
	l := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l == 0 {
		return QuaternionIdentity
	}
	return Quaternion{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Matrix4 is a 4x4 affine matrix stored column-major, the layout Bullet reads
// with setFromOpenGLMatrix. Element (row r, column c) lives at index c*4+r.
//
//	| m[0] m[4] m[8]  m[12] |
//	| m[1] m[5] m[9]  m[13] |
//	| m[2] m[6] m[10] m[14] |
//	| m[3] m[7] m[11] m[15] |
type Matrix4 [16]float32

// Identity is the identity matrix. Read only.
var Identity = Matrix4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Mul returns m × o. Applied to a point, o acts first and m second.
func (m Matrix4) Mul(o Matrix4) Matrix4 {
	var r Matrix4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			r[c*4+row] = m[row]*o[c*4] +
				m[4+row]*o[c*4+1] +
				m[8+row]*o[c*4+2] +
				m[12+row]*o[c*4+3]
		}
	}
	return r
}

// BitsEqual reports whether every element of m has the same bit pattern as the
// corresponding element of o. Unlike ==, -0 and +0 differ and a NaN equals an
// identical NaN. Numerically close matrices are never equal.
func (m Matrix4) BitsEqual(o Matrix4) bool {
	for i := range m {
		if math.Float32bits(m[i]) != math.Float32bits(o[i]) {
			return false
		}
	}
	return true
}

// IsIdentity reports whether m is bit-for-bit the identity matrix.
func (m Matrix4) IsIdentity() bool {
	return m.BitsEqual(Identity)
}

// TransformPoint applies m to v (w = 1).
func (m Matrix4) TransformPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}

// GetTranslation returns the translation column of m.
func (m Matrix4) GetTranslation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Translation returns a matrix translating by t.
func Translation(t Vec3) Matrix4 {
	m := Identity
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Scaling returns a matrix scaling by s.
func Scaling(s Vec3) Matrix4 {
	m := Identity
	m[0], m[5], m[10] = s.X, s.Y, s.Z
	return m
}

// Rotation returns the rotation matrix of q. q is expected to be unit length.
func Rotation(q Quaternion) Matrix4 {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z
	return Matrix4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// FromTRS composes Translate(t) × Rotate(r) × Scale(s) without intermediate
// matrix products, so identity inputs produce an exact identity matrix.
func FromTRS(t Vec3, r Quaternion, s Vec3) Matrix4 {
	m := Rotation(r)
	m[0], m[1], m[2] = m[0]*s.X, m[1]*s.X, m[2]*s.X
	m[4], m[5], m[6] = m[4]*s.Y, m[5]*s.Y, m[6]*s.Y
	m[8], m[9], m[10] = m[8]*s.Z, m[9]*s.Z, m[10]*s.Z
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// --- Node transform ---

// SetTranslation sets the node's local translation and marks it dirty.
func (n *Node) SetTranslation(x, y, z float32) {
	n.Translation = Vec3{x, y, z}
	n.transformDirty = true
}

// SetRotation sets the node's local rotation and marks it dirty.
func (n *Node) SetRotation(q Quaternion) {
	n.Rotation = q
	n.transformDirty = true
}

// SetScale sets the node's local scale and marks it dirty.
func (n *Node) SetScale(x, y, z float32) {
	n.Scale = Vec3{x, y, z}
	n.transformDirty = true
}

// MarkDirty forces the next CalculateTransforms to rebuild LocalTransform
// from Translation, Rotation and Scale. Useful after bulk-setting fields.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// CalculateLocalTransform rebuilds LocalTransform from Translation, Rotation
// and Scale and returns it.
func (n *Node) CalculateLocalTransform() Matrix4 {
	n.LocalTransform = FromTRS(n.Translation, n.Rotation.Normalize(), n.Scale)
	n.transformDirty = false
	return n.LocalTransform
}

// CalculateTransforms refreshes dirty local transforms and recomputes the
// global transform of n (and of its descendants when recursive is true).
// The parent's global transform is assumed to be current.
func (n *Node) CalculateTransforms(recursive bool) {
	if n.transformDirty {
		n.CalculateLocalTransform()
	}
	if n.parent != nil {
		n.globalTransform = n.parent.globalTransform.Mul(n.LocalTransform)
	} else {
		n.globalTransform = n.LocalTransform
	}
	if !recursive {
		return
	}
	for _, child := range n.children {
		child.CalculateTransforms(true)
	}
}

// GlobalTransform returns the world transform computed by the last
// CalculateTransforms call.
func (n *Node) GlobalTransform() Matrix4 {
	return n.globalTransform
}
