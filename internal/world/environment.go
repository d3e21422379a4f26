package world

import (
	"office3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Environment is a loaded scene: the meshes to register for collision plus
// the room volumes used by the locator.
type Environment struct {
	ID    string
	Nodes []*scene.Node
	Rooms []Room
}

const (
	fallbackRoomSize   = 40.0
	fallbackWallHeight = 3.0
)

// FallbackEnvironment builds a minimal playable space: one floor and four
// walls. Used before the real environment finishes loading and whenever a
// load fails, so the session never runs over a void.
func FallbackEnvironment() *Environment {
	half := float32(fallbackRoomSize) / 2

	nodes := []*scene.Node{
		scene.NewPlane("fallback_floor", rl.Vector3{}, fallbackRoomSize, fallbackRoomSize, rl.Vector3{Y: 1}),
		scene.NewPlane("fallback_wall_north", rl.Vector3{Z: -half, Y: fallbackWallHeight / 2}, fallbackRoomSize, fallbackWallHeight, rl.Vector3{Z: 1}),
		scene.NewPlane("fallback_wall_south", rl.Vector3{Z: half, Y: fallbackWallHeight / 2}, fallbackRoomSize, fallbackWallHeight, rl.Vector3{Z: -1}),
		scene.NewPlane("fallback_wall_west", rl.Vector3{X: -half, Y: fallbackWallHeight / 2}, fallbackRoomSize, fallbackWallHeight, rl.Vector3{X: 1}),
		scene.NewPlane("fallback_wall_east", rl.Vector3{X: half, Y: fallbackWallHeight / 2}, fallbackRoomSize, fallbackWallHeight, rl.Vector3{X: -1}),
	}

	return &Environment{ID: "fallback", Nodes: nodes}
}

// Install rebuilds a registry from an environment: full clear, then register
// every node, then make sure at least one floor exists. Callers must not
// interleave this with collision queries in the same tick.
func (e *Environment) Install(reg *Registry) {
	reg.Clear()
	for _, n := range e.Nodes {
		reg.Register(n)
		for _, child := range n.Children {
			reg.Register(child)
		}
	}
	reg.EnsureFloor()
}
