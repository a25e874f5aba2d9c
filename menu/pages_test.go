package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12} {
		assert.Equal(t, 1, Wrap(n+1, 1, n), "above max, n=%d", n)
		assert.Equal(t, n, Wrap(0, 1, n), "below min, n=%d", n)
		for k := 1; k <= n; k++ {
			assert.Equal(t, k, Wrap(k, 1, n), "in range k=%d n=%d", k, n)
		}
	}
}

func TestHandleCommands_NextWrapsToFirst(t *testing.T) {
	w := newFakeWorld()
	w.pages[docA] = 5

	turn, ok := HandleCommands(w, testRefs, docA, Frame{Activated: clicked(nextID)})

	assert.True(t, ok)
	assert.Equal(t, Turn{Document: docA, Dir: TurnNext, From: 5, To: 1}, turn)
	assert.Equal(t, 1, w.pages[docA])
	assert.Equal(t, []string{"authority:11", "dirty:11", "set:11=1"}, w.calls)
}

func TestHandleCommands_PrevWrapsToLast(t *testing.T) {
	w := newFakeWorld()
	w.pages[docA] = 1

	turn, ok := HandleCommands(w, testRefs, docA, Frame{Activated: clicked(prevID)})

	assert.True(t, ok)
	assert.Equal(t, 5, turn.To)
	assert.Equal(t, 5, w.pages[docA])
	assert.Equal(t, []string{"authority:11", "dirty:11", "set:11=5"}, w.calls)
}

func TestHandleCommands_NextWinsOverPrev(t *testing.T) {
	w := newFakeWorld()
	w.pages[docB] = 2

	turn, ok := HandleCommands(w, testRefs, docB, Frame{Activated: clicked(prevID, nextID)})

	assert.True(t, ok)
	assert.Equal(t, TurnNext, turn.Dir)
	assert.Equal(t, 3, w.pages[docB])
}

func TestHandleCommands_NoActivation(t *testing.T) {
	w := newFakeWorld()

	_, ok := HandleCommands(w, testRefs, docA, Frame{})
	assert.False(t, ok)

	_, ok = HandleCommands(w, testRefs, docA, Frame{Activated: clicked(labelID, meshA)})
	assert.False(t, ok)
	assert.Empty(t, w.calls)
}

func TestHandleCommands_MissingResourceIsNoop(t *testing.T) {
	w := newFakeWorld()
	delete(w.resources, docA)

	_, ok := HandleCommands(w, testRefs, docA, Frame{Activated: clicked(nextID)})

	assert.False(t, ok)
	assert.Empty(t, w.calls)
	assert.Equal(t, 1, w.pages[docA])
}

func TestPageTurnString(t *testing.T) {
	assert.Equal(t, "next", TurnNext.String())
	assert.Equal(t, "prev", TurnPrev.String())
	assert.Equal(t, "none", TurnNone.String())
}
