package world

import (
	"fmt"
	"log"

	"office3d/internal/physics"
	"office3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Collidable is a registered mesh reference plus its cached classification
// and world bounds. The node itself stays owned by the scene graph.
type Collidable struct {
	Node    *scene.Node
	Surface Surface
	Bounds  physics.AABB

	// synthetic marks geometry the registry created itself (stair helpers,
	// the fallback floor) rather than received from the environment.
	synthetic bool
}

func (c *Collidable) Name() string {
	return c.Node.Name
}

// Registry is the flat list of meshes available for collision queries. It is
// rebuilt on every environment (re)load: Clear, then Register for each mesh.
// Movement ticks only read it.
type Registry struct {
	Classify Classifier

	items   []*Collidable
	unnamed int
}

func NewRegistry() *Registry {
	return &Registry{Classify: DefaultClassify}
}

// Register classifies a node and adds it to the collidable list. Unnamed
// nodes get a synthetic name first, so later name-based heuristics see the
// same thing classification saw. Detected stairs grow a helper ramp above
// them to smooth step traversal.
func (r *Registry) Register(n *scene.Node) *Collidable {
	if n.Name == "" {
		r.unnamed++
		n.Name = fmt.Sprintf("collidable_%d", r.unnamed)
	}

	c := &Collidable{
		Node:    n,
		Surface: r.Classify(n),
		Bounds:  n.Bounds(),
	}
	r.items = append(r.items, c)

	if c.Surface == SurfaceStair {
		r.addStairHelper(c)
	}
	return c
}

// addStairHelper spawns a thin assist volume sitting on top of a stair so
// the ground ray sees a walkable surface instead of the step's front face.
func (r *Registry) addStairHelper(stair *Collidable) {
	size := stair.Bounds.Size()
	center := stair.Bounds.Center()
	center.Y = stair.Bounds.Max.Y + stairHelperThickness/2

	helper := scene.NewBox(
		stair.Node.Name+"_helper",
		center,
		rl.Vector3{X: size.X, Y: stairHelperThickness, Z: size.Z},
	)
	r.items = append(r.items, &Collidable{
		Node:      helper,
		Surface:   SurfaceStairHelper,
		Bounds:    helper.Bounds(),
		synthetic: true,
	})
}

const stairHelperThickness = 0.04

// Clear drops every registered collidable, including spawned helper
// geometry. Called before re-registering a freshly loaded environment.
func (r *Registry) Clear() {
	r.items = nil
	r.unnamed = 0
}

// All returns the registered collidables in registration order.
func (r *Registry) All() []*Collidable {
	return r.items
}

func (r *Registry) FloorCount() int {
	count := 0
	for _, c := range r.items {
		if c.Surface == SurfaceFloor {
			count++
		}
	}
	return count
}

// fallbackFloorSize is generous enough that nobody walks off the edge of a
// synthesized floor before the real environment arrives.
const fallbackFloorSize = 200.0

// EnsureFloor guarantees at least one floor-classified collidable exists.
// A world with zero ground support drops the player forever, so after a load
// with no detected floors the registry synthesizes an invisible one.
func (r *Registry) EnsureFloor() *Collidable {
	if r.FloorCount() > 0 {
		return nil
	}
	log.Printf("world: no floor meshes detected, registering fallback floor")

	floor := scene.NewPlane(
		"fallback_floor",
		rl.Vector3{},
		fallbackFloorSize, fallbackFloorSize,
		rl.Vector3{Y: 1},
	)
	c := r.Register(floor)
	c.synthetic = true
	return c
}
