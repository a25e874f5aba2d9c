package folio

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// debugLog receives tree diagnostics while debug mode is on. SetDebugMode
// points it at the scene logger.
var debugLog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("folio debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLog.Warn().
			Int("depth", depth).
			Int("threshold", debugMaxTreeDepth).
			Str("node", n.Name).
			Msg("tree depth exceeds threshold")
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLog.Warn().
			Int("children", len(n.children)).
			Int("threshold", debugMaxChildCount).
			Str("node", n.Name).
			Msg("child count exceeds threshold")
	}
}
