package bullet

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic; scene graphs are built on one goroutine).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is a scene graph element: a local transform, the mesh parts drawn at
// that transform, and an ordered list of children. Each child has exactly one
// parent and the tree never contains cycles.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	parent   *Node
	children []*Node

	// Transform inputs, composed into LocalTransform by CalculateLocalTransform.
	Translation Vec3
	Rotation    Quaternion
	Scale       Vec3

	// LocalTransform is what shape grouping reads. It may be set directly.
	LocalTransform Matrix4

	// Parts are the mesh parts rendered at this node, in draw order.
	Parts []*MeshPart

	// Metadata
	UserData any

	// Computed
	globalTransform Matrix4
	transformDirty  bool
	disposed        bool
}

// NewNode creates a node with identity transform and no parts.
func NewNode(name string) *Node {
	return &Node{
		ID:              nextNodeID(),
		Name:            name,
		Rotation:        QuaternionIdentity,
		Scale:           Vec3{1, 1, 1},
		LocalTransform:  Identity,
		globalTransform: Identity,
	}
}

// NewMeshNode creates a node that renders the given parts.
func NewMeshNode(name string, parts ...*MeshPart) *Node {
	n := NewNode(name)
	n.Parts = append(n.Parts, parts...)
	return n
}

// AddPart appends a mesh part to the node.
func (n *Node) AddPart(part *MeshPart) {
	if part == nil {
		panic("bullet: cannot add nil mesh part")
	}
	n.Parts = append(n.Parts, part)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("bullet: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("bullet: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("bullet: child index out of range")
	}
	if child.parent != nil {
		if child.parent == n {
			n.removeChildByPtr(child)
			// The list just shrank by one.
			index = min(index, len(n.children))
		} else {
			child.parent.removeChildByPtr(child)
		}
	}
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child's parent is not n.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		panic("bullet: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.parent = nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("bullet: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.parent = nil
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

// Find returns the first node named name in depth-first order, starting with n.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Mesh data is not touched.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parts = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
