package bullet

import (
	"fmt"
	"os"
)

// globalDebug enables scene graph sanity checks. Node operations have no
// context pointer, so the flag is package-wide.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, tree operations on
// disposed nodes panic, deep trees and wide nodes print warnings, and static
// shape construction reports its group counts on stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func DebugMode() bool {
	return globalDebug
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("bullet debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
// Shape grouping recurses once per level.
const debugMaxTreeDepth = 64

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[bullet] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[bullet] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// countParts returns the total number of mesh parts across groups.
func countParts(groups []*ShapeGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Parts)
	}
	return n
}
