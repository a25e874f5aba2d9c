package folio

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func refreshTree(root *Node) {
	updateWorldTransform(root, identityTransform, 1.0, false, nil)
}

func TestComputeLocalTransformIdentity(t *testing.T) {
	n := NewContainer("n")
	m := computeLocalTransform(n)
	for i, v := range identityTransform {
		if !approxEqual(m[i], v) {
			t.Fatalf("m[%d] = %v, want %v", i, m[i], v)
		}
	}
}

func TestNestedWorldPosition(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewSprite("child", 10, 10)
	root.AddChild(parent)
	parent.AddChild(child)
	parent.SetPosition(100, 50)
	child.SetPosition(10, 20)

	refreshTree(root)

	x, y := child.WorldPosition()
	if !approxEqual(x, 110) || !approxEqual(y, 70) {
		t.Errorf("world position = (%v, %v), want (110, 70)", x, y)
	}
}

func TestScaledParent(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewContainer("child")
	root.AddChild(parent)
	parent.AddChild(child)
	parent.SetScale(2, 3)
	child.SetPosition(5, 5)

	refreshTree(root)

	x, y := child.WorldPosition()
	if !approxEqual(x, 10) || !approxEqual(y, 15) {
		t.Errorf("world position = (%v, %v), want (10, 15)", x, y)
	}
}

func TestRotationAroundPivot(t *testing.T) {
	root := NewContainer("root")
	n := NewSprite("n", 10, 10)
	root.AddChild(n)
	n.PivotX, n.PivotY = 5, 5
	n.Rotation = math.Pi / 2
	n.SetPosition(50, 50)

	refreshTree(root)

	// The pivot maps onto the node position.
	x, y := n.LocalToWorld(5, 5)
	if !approxEqual(x, 50) || !approxEqual(y, 50) {
		t.Errorf("pivot world = (%v, %v), want (50, 50)", x, y)
	}
	// +X in local space points down after a quarter turn.
	x, y = n.LocalToWorld(6, 5)
	if !approxEqual(x, 50) || !approxEqual(y, 51) {
		t.Errorf("local (6,5) world = (%v, %v), want (50, 51)", x, y)
	}
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	root := NewContainer("root")
	n := NewSprite("n", 10, 10)
	root.AddChild(n)
	n.SetPosition(30, -12)
	n.SetScale(1.5, 0.5)
	n.Rotation = 0.3

	refreshTree(root)

	wx, wy := n.LocalToWorld(7, 3)
	lx, ly := n.WorldToLocal(wx, wy)
	if !approxEqual(lx, 7) || !approxEqual(ly, 3) {
		t.Errorf("round trip = (%v, %v), want (7, 3)", lx, ly)
	}
}

func TestInvertSingularIsIdentity(t *testing.T) {
	m := invertAffine([6]float64{0, 0, 0, 0, 5, 5})
	if m != identityTransform {
		t.Errorf("invert singular = %v, want identity", m)
	}
}

func TestWorldAlphaInherited(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewSprite("child", 1, 1)
	root.AddChild(parent)
	parent.AddChild(child)
	parent.SetAlpha(0.5)
	child.SetAlpha(0.5)

	refreshTree(root)

	if !approxEqual(child.worldAlpha, 0.25) {
		t.Errorf("worldAlpha = %v, want 0.25", child.worldAlpha)
	}
}

func TestCleanChildRecomputedWithParent(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewContainer("child")
	root.AddChild(parent)
	parent.AddChild(child)
	refreshTree(root)

	parent.SetPosition(20, 0)
	refreshTree(root)

	x, _ := child.WorldPosition()
	if !approxEqual(x, 20) {
		t.Errorf("child x = %v, want 20", x)
	}
}

func TestUpdateWorldTransformIndexes(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	b := NewSprite("b", 1, 1)
	root.AddChild(a)
	a.AddChild(b)

	index := make(map[uint32]*Node)
	updateWorldTransform(root, identityTransform, 1.0, false, index)

	if len(index) != 3 || index[b.ID] != b {
		t.Errorf("index = %v, want 3 entries including b", index)
	}
}
