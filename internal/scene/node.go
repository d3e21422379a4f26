package scene

import (
	"office3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ShapeKind tells collision code how to interpret a node's geometry.
type ShapeKind int

const (
	ShapeUnknown ShapeKind = iota
	ShapePlane
	ShapeBox
)

// Shape is the geometry descriptor carried by a node. Extents is the full
// size along each axis; for planes the Y extent is zero and Normal holds the
// surface orientation.
type Shape struct {
	Kind    ShapeKind
	Extents rl.Vector3
	Normal  rl.Vector3
}

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

// Node is a renderable scene graph entry. The engine never owns node
// lifetime; nodes arrive from an environment provider and are referenced by
// the collidable registry.
type Node struct {
	Name      string
	Tags      []string
	Transform Transform
	Shape     Shape
	Parent    *Node
	Children  []*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name: name,
		Transform: Transform{
			Scale: rl.Vector3{X: 1, Y: 1, Z: 1},
		},
	}
}

// NewBox creates a node carrying a box shape of the given full size.
func NewBox(name string, position, size rl.Vector3) *Node {
	n := NewNode(name)
	n.Transform.Position = position
	n.Shape = Shape{Kind: ShapeBox, Extents: size}
	return n
}

// NewPlane creates a node carrying an oriented plane of the given horizontal
// extents. Normal does not need to be normalized.
func NewPlane(name string, position rl.Vector3, width, depth float32, normal rl.Vector3) *Node {
	n := NewNode(name)
	n.Transform.Position = position
	n.Shape = Shape{
		Kind:    ShapePlane,
		Extents: rl.Vector3{X: width, Z: depth},
		Normal:  rl.Vector3Normalize(normal),
	}
	return n
}

func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (n *Node) WorldPosition() rl.Vector3 {
	if n.Parent == nil {
		return n.Transform.Position
	}
	parentPos := n.Parent.WorldPosition()
	parentScale := n.Parent.WorldScale()
	scaled := rl.Vector3{
		X: n.Transform.Position.X * parentScale.X,
		Y: n.Transform.Position.Y * parentScale.Y,
		Z: n.Transform.Position.Z * parentScale.Z,
	}
	return rl.Vector3Add(parentPos, scaled)
}

func (n *Node) WorldScale() rl.Vector3 {
	if n.Parent == nil {
		return n.Transform.Scale
	}
	ps := n.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * n.Transform.Scale.X,
		Y: ps.Y * n.Transform.Scale.Y,
		Z: ps.Z * n.Transform.Scale.Z,
	}
}

// planeThickness gives flat geometry a sliver of volume so slab raycasts
// against its bounding box still register.
const planeThickness = 0.02

// Bounds returns the node's world-space bounding box. Nodes with no usable
// geometry get a unit fallback box so they stay collidable.
func (n *Node) Bounds() physics.AABB {
	pos := n.WorldPosition()
	scale := n.WorldScale()

	switch n.Shape.Kind {
	case ShapeBox:
		size := rl.Vector3{
			X: absf(n.Shape.Extents.X * scale.X),
			Y: absf(n.Shape.Extents.Y * scale.Y),
			Z: absf(n.Shape.Extents.Z * scale.Z),
		}
		return physics.NewAABBFromCenter(pos, size)
	case ShapePlane:
		width := absf(n.Shape.Extents.X * scale.X)
		depth := absf(n.Shape.Extents.Z * scale.Z)
		var size rl.Vector3
		switch {
		case absf(n.Shape.Normal.Y) >= 0.7:
			// Horizontal plane: footprint with a sliver of height, top face
			// exactly at the node's Y so ground height reads true
			size = rl.Vector3{X: width, Y: planeThickness, Z: depth}
			center := pos
			center.Y -= planeThickness / 2
			return physics.NewAABBFromCenter(center, size)
		case absf(n.Shape.Normal.X) >= absf(n.Shape.Normal.Z):
			// Wall facing ±X: width runs along Z, depth becomes height
			size = rl.Vector3{X: planeThickness, Y: depth, Z: width}
		default:
			// Wall facing ±Z
			size = rl.Vector3{X: width, Y: depth, Z: planeThickness}
		}
		return physics.NewAABBFromCenter(pos, size)
	default:
		return physics.NewAABBFromCenter(pos, rl.Vector3{X: 1, Y: 1, Z: 1})
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
