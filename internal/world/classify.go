package world

import (
	"strings"

	"office3d/internal/physics"
	"office3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Surface is the collision role assigned to a registered mesh. Office models
// arrive with no annotations, so the role is guessed from shape and name.
type Surface int

const (
	SurfaceUnknown Surface = iota
	SurfaceFloor
	SurfaceWall
	SurfaceStair
	SurfaceStairHelper
)

func (s Surface) String() string {
	switch s {
	case SurfaceFloor:
		return "floor"
	case SurfaceWall:
		return "wall"
	case SurfaceStair:
		return "stair"
	case SurfaceStairHelper:
		return "stairhelper"
	default:
		return "unknown"
	}
}

// Classifier labels a node for collision handling. The default is heuristic;
// a metadata-driven classifier can be swapped in without touching movement code.
type Classifier func(n *scene.Node) Surface

// Classification priority is fixed: floor, then wall, then stair. The first
// matching rule wins.
func DefaultClassify(n *scene.Node) Surface {
	// Authored tags override every heuristic
	switch {
	case n.HasTag("floor"):
		return SurfaceFloor
	case n.HasTag("wall"):
		return SurfaceWall
	case n.HasTag("stair"):
		return SurfaceStair
	}

	bounds := n.Bounds()
	size := bounds.Size()
	name := strings.ToLower(n.Name)

	if isFloor(n, bounds, size, name) {
		return SurfaceFloor
	}
	if isWall(n, size, name) {
		return SurfaceWall
	}
	if isStair(bounds, size, name) {
		return SurfaceStair
	}
	return SurfaceUnknown
}

func isFloor(n *scene.Node, bounds physics.AABB, size rl.Vector3, name string) bool {
	// Horizontal plane facing up
	if n.Shape.Kind == scene.ShapePlane && n.Shape.Normal.Y > 0.7 {
		return true
	}
	// Wide flat box: both horizontal extents dwarf the height
	if n.Shape.Kind == scene.ShapeBox {
		e := n.Shape.Extents
		if e.X > e.Y*3 && e.Z > e.Y*3 {
			return true
		}
	}
	// Sitting at ground level
	if absf(n.WorldPosition().Y) < 0.1 {
		return true
	}
	if strings.Contains(name, "floor") || strings.Contains(name, "ground") {
		return true
	}
	// Fallback on the bounding box: flat and resting near the ground
	if size.X > size.Y*2 && size.Z > size.Y*2 && bounds.Min.Y < 0.3 {
		return true
	}
	return false
}

func isWall(n *scene.Node, size rl.Vector3, name string) bool {
	// Vertical plane: normal near-perpendicular to up
	if n.Shape.Kind == scene.ShapePlane && absf(n.Shape.Normal.Y) < 0.3 {
		return true
	}
	// Box taller than it is wide and deep
	if n.Shape.Kind == scene.ShapeBox {
		e := n.Shape.Extents
		if e.Y > e.X*1.5 && e.Y > e.Z*1.5 {
			return true
		}
	}
	if strings.Contains(name, "wall") {
		return true
	}
	// Fallback on the bounding box for unknown geometry
	if n.Shape.Kind == scene.ShapeUnknown && size.Y > size.X*1.5 && size.Y > size.Z*1.5 {
		return true
	}
	return false
}

func isStair(bounds physics.AABB, size rl.Vector3, name string) bool {
	if strings.Contains(name, "stair") || strings.Contains(name, "step") {
		return true
	}
	// Step-sized slab raised off the ground
	horizontal := size.X
	if size.Z > horizontal {
		horizontal = size.Z
	}
	return horizontal > 0.5 &&
		size.Y > 0.05 && size.Y < 0.5 &&
		bounds.Min.Y > 0.05 && bounds.Min.Y < 1.5
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
