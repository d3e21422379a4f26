package scene

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestWorldPositionChainsParents(t *testing.T) {
	parent := NewNode("room")
	parent.Transform.Position = rl.Vector3{X: 10, Z: 5}
	parent.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}

	child := NewNode("desk")
	child.Transform.Position = rl.Vector3{X: 1}
	parent.AddChild(child)

	pos := child.WorldPosition()
	if pos.X != 12 || pos.Z != 5 {
		t.Errorf("Expected scaled offset from parent, got %+v", pos)
	}
	scale := child.WorldScale()
	if scale.X != 2 {
		t.Errorf("Expected inherited scale 2, got %f", scale.X)
	}
}

func TestBoxBounds(t *testing.T) {
	n := NewBox("desk", rl.Vector3{X: 1, Y: 0.4}, rl.Vector3{X: 2, Y: 0.8, Z: 1})

	b := n.Bounds()
	if b.Min.X != 0 || b.Max.X != 2 {
		t.Errorf("Expected X range [0,2], got [%f,%f]", b.Min.X, b.Max.X)
	}
	if b.Min.Y != 0 || b.Max.Y != 0.8 {
		t.Errorf("Expected Y range [0,0.8], got [%f,%f]", b.Min.Y, b.Max.Y)
	}
}

func TestHorizontalPlaneTopFaceAtNodeHeight(t *testing.T) {
	n := NewPlane("floor", rl.Vector3{Y: 1.5}, 10, 10, rl.Vector3{Y: 1})

	b := n.Bounds()
	if b.Max.Y < 1.499 || b.Max.Y > 1.501 {
		t.Errorf("Expected walkable face at 1.5, got %f", b.Max.Y)
	}
	if b.Min.Y >= b.Max.Y {
		t.Error("Expected the slab to have thickness")
	}
	if b.Min.X != -5 || b.Max.X != 5 {
		t.Errorf("Expected 10-wide footprint, got [%f,%f]", b.Min.X, b.Max.X)
	}
}

func TestVerticalPlaneBounds(t *testing.T) {
	// East wall facing -X: width runs along Z, the depth extent becomes height
	n := NewPlane("wall_east", rl.Vector3{X: 2, Y: 1.5}, 10, 3, rl.Vector3{X: -1})

	b := n.Bounds()
	if b.Min.Z != -5 || b.Max.Z != 5 {
		t.Errorf("Expected width along Z, got [%f,%f]", b.Min.Z, b.Max.Z)
	}
	if b.Min.Y != 0 || b.Max.Y != 3 {
		t.Errorf("Expected height range [0,3], got [%f,%f]", b.Min.Y, b.Max.Y)
	}
	if b.Max.X-b.Min.X > 0.05 {
		t.Errorf("Expected a thin slab on X, got thickness %f", b.Max.X-b.Min.X)
	}
}

func TestUnknownShapeGetsUnitBounds(t *testing.T) {
	n := NewNode("mystery")
	n.Transform.Position = rl.Vector3{X: 3, Y: 1, Z: -2}

	b := n.Bounds()
	size := b.Size()
	if size.X != 1 || size.Y != 1 || size.Z != 1 {
		t.Errorf("Expected unit fallback box, got %+v", size)
	}
}

func TestScaledBounds(t *testing.T) {
	parent := NewNode("wing")
	parent.Transform.Scale = rl.Vector3{X: 3, Y: 1, Z: 1}
	child := NewBox("slab", rl.Vector3{}, rl.Vector3{X: 2, Y: 1, Z: 1})
	parent.AddChild(child)

	size := child.Bounds().Size()
	if size.X != 6 {
		t.Errorf("Expected scale applied to extents, got %f", size.X)
	}
}

func TestHasTag(t *testing.T) {
	n := NewNode("door")
	n.Tags = []string{"interactive", "solid"}

	if !n.HasTag("solid") {
		t.Error("Expected tag present")
	}
	if n.HasTag("ghost") {
		t.Error("Expected missing tag to report false")
	}
}

func TestPlaneNormalNormalized(t *testing.T) {
	n := NewPlane("ramp", rl.Vector3{}, 4, 4, rl.Vector3{Y: 10})

	if n.Shape.Normal.Y != 1 {
		t.Errorf("Expected normalized normal, got %+v", n.Shape.Normal)
	}
}
