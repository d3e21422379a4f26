package game

import (
	"office3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDSnapshot is the read-only view the HUD layer consumes each tick.
type HUDSnapshot struct {
	SessionID   string
	Environment string

	Stamina          float32
	Rank             string
	PendingPaperwork int

	Room     world.RoomInfo
	Position rl.Vector3
	Grounded bool
	Ghost    bool

	// Debug metrics
	Contacts    []world.Contact
	LiveEffects int
	Collidables int
}

// Snapshot builds the HUD view from current session state.
func (s *Session) Snapshot() HUDSnapshot {
	return HUDSnapshot{
		SessionID:        s.ID,
		Environment:      s.envID,
		Stamina:          s.Player.Stamina,
		Rank:             s.Progression.RankTitle(),
		PendingPaperwork: s.Progression.PendingPaperwork,
		Room:             s.room,
		Position:         s.Player.Position,
		Grounded:         s.Player.Grounded,
		Ghost:            s.Player.Ghost,
		Contacts:         s.Player.Contacts,
		LiveEffects:      len(s.Combat.Effects()),
		Collidables:      len(s.Registry.All()),
	}
}
