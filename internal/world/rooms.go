package world

import (
	"office3d/internal/physics"
	"office3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Room is a read-only horizontal volume used to tell the HUD where the
// player is. The core never mutates rooms.
type Room struct {
	Type   string
	ID     int
	Center rl.Vector3
	Width  float32
	Depth  float32
}

// defaultRoomExtent is assumed when a room node has no measurable floor.
const defaultRoomExtent = 10.0

// NewRoomFromNode derives a room's horizontal extent from its largest
// floor-plane child. Rooms modeled without a recognizable floor default to
// a 10×10 footprint around the node position.
func NewRoomFromNode(roomType string, id int, n *scene.Node) Room {
	room := Room{
		Type:   roomType,
		ID:     id,
		Center: n.WorldPosition(),
		Width:  defaultRoomExtent,
		Depth:  defaultRoomExtent,
	}

	var bestArea float32
	for _, child := range n.Children {
		if child.Shape.Kind != scene.ShapePlane || child.Shape.Normal.Y <= 0.7 {
			continue
		}
		size := child.Bounds().Size()
		area := size.X * size.Z
		if area > bestArea {
			bestArea = area
			room.Width = size.X
			room.Depth = size.Z
		}
	}
	return room
}

func (r Room) bounds() physics.AABB {
	return physics.NewAABBFromCenter(r.Center, rl.Vector3{X: r.Width, Y: 1, Z: r.Depth})
}

// Contains reports whether a position falls inside the room's footprint.
func (r Room) Contains(pos rl.Vector3) bool {
	return r.bounds().ContainsXZ(pos)
}

// RoomInfo is the locator's answer. Known is false for the hallway fallback.
type RoomInfo struct {
	Type  string
	ID    int
	Known bool
}

// Locate returns the first room whose footprint contains the position, or
// the generic hallway classification when none match.
func Locate(pos rl.Vector3, rooms []Room) RoomInfo {
	for _, r := range rooms {
		if r.Contains(pos) {
			return RoomInfo{Type: r.Type, ID: r.ID, Known: true}
		}
	}
	return RoomInfo{Type: "hallway"}
}
