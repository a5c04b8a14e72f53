package arbor

import (
	"fmt"
	"log/slog"
)

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.state == StateDisposed {
		panic(fmt.Sprintf("arbor debug: %s on disposed node %q (ID %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parentNode() {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger(n).Warn("arbor: tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a group has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(g *Group) {
	if len(g.children) > debugMaxChildCount {
		debugLogger(&g.Node).Warn("arbor: group child count exceeds threshold",
			"group", g.Name, "children", len(g.children), "threshold", debugMaxChildCount)
	}
}

func debugLogger(n *Node) *slog.Logger {
	if n.scene != nil {
		return n.scene.Logger()
	}
	return Logger()
}
