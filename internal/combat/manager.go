package combat

import (
	"fmt"
	"math"
	"time"

	"office3d/internal/telemetry"
	"office3d/internal/tuning"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// EffectKind separates the two short-lived combat visuals: thrown documents
// (projectiles) and approval stamps slapped on a surface.
type EffectKind int

const (
	KindProjectile EffectKind = iota
	KindStamp
)

func (k EffectKind) String() string {
	if k == KindStamp {
		return "stamp"
	}
	return "projectile"
}

// Effect is a live combat visual. The render sink reads Position and Yaw;
// everything else is lifecycle bookkeeping.
type Effect struct {
	Kind     EffectKind
	Name     string
	Position rl.Vector3
	Yaw      float32 // facing, degrees; projectiles face their travel direction

	direction rl.Vector3
	speed     float32
	spawnedAt time.Duration
	duration  time.Duration
}

// Manager owns every live effect. Effects run on independent timers against
// the manager's accumulated clock, so behavior is deterministic under test.
type Manager struct {
	Active bool // combat on/off; spawns are rejected while inactive

	effects   []*Effect
	challenge *Challenge
	now       time.Duration
	counter   int

	tun tuning.Tuning
	rep telemetry.Reporter
}

func NewManager(tun tuning.Tuning, rep telemetry.Reporter) *Manager {
	if rep == nil {
		rep = telemetry.Nop{}
	}
	return &Manager{tun: tun, rep: rep}
}

// SpawnProjectile launches a document from origin toward target. Returns
// false when combat is inactive or the projectile cap is reached; rejected
// spawns are not queued.
func (m *Manager) SpawnProjectile(origin, target rl.Vector3) (*Effect, bool) {
	if !m.Active || m.liveCount(KindProjectile) >= m.tun.ProjectileCap {
		m.rep.EffectRejected(KindProjectile.String())
		return nil, false
	}

	dir := rl.Vector3Subtract(target, origin)
	length := rl.Vector3Length(dir)
	if length < 1e-6 {
		dir = rl.Vector3{X: 1}
	} else {
		dir = rl.Vector3Scale(dir, 1/length)
	}

	m.counter++
	e := &Effect{
		Kind:      KindProjectile,
		Name:      fmt.Sprintf("throw_%d", m.counter),
		Position:  origin,
		Yaw:       yawOf(dir),
		direction: dir,
		speed:     m.tun.ProjectileSpeed,
		spawnedAt: m.now,
		duration:  time.Duration(m.tun.ProjectileDurationMs) * time.Millisecond,
	}
	m.effects = append(m.effects, e)
	m.rep.EffectSpawned(e.Kind.String())
	return e, true
}

// SpawnStamp places a stamp effect at a fixed position. Same gating as
// projectiles, no directional payload.
func (m *Manager) SpawnStamp(position rl.Vector3) (*Effect, bool) {
	if !m.Active || m.liveCount(KindStamp) >= m.tun.StampCap {
		m.rep.EffectRejected(KindStamp.String())
		return nil, false
	}

	m.counter++
	e := &Effect{
		Kind:      KindStamp,
		Name:      fmt.Sprintf("stamp_%d", m.counter),
		Position:  position,
		spawnedAt: m.now,
		duration:  time.Duration(m.tun.StampDurationMs) * time.Millisecond,
	}
	m.effects = append(m.effects, e)
	m.rep.EffectSpawned(e.Kind.String())
	return e, true
}

// Update advances the manager's clock, moves projectiles along their stored
// directions, and removes effects whose duration has elapsed.
func (m *Manager) Update(dt float32) {
	m.now += time.Duration(float64(dt) * float64(time.Second))

	kept := m.effects[:0]
	for _, e := range m.effects {
		if m.now-e.spawnedAt >= e.duration {
			m.rep.EffectExpired(e.Kind.String())
			continue
		}
		if e.Kind == KindProjectile {
			e.Position = rl.Vector3Add(e.Position, rl.Vector3Scale(e.direction, e.speed*dt))
			e.Yaw = yawOf(e.direction)
		}
		kept = append(kept, e)
	}
	// Drop trailing references so expired effects can be collected
	for i := len(kept); i < len(m.effects); i++ {
		m.effects[i] = nil
	}
	m.effects = kept
}

// Clear force-expires every live effect. Used when combat ends or the scene
// is torn down.
func (m *Manager) Clear() {
	for i, e := range m.effects {
		m.rep.EffectExpired(e.Kind.String())
		m.effects[i] = nil
	}
	m.effects = m.effects[:0]
}

// Effects returns the live effects in spawn order.
func (m *Manager) Effects() []*Effect {
	return m.effects
}

func (m *Manager) liveCount(kind EffectKind) int {
	count := 0
	for _, e := range m.effects {
		if e.Kind == kind {
			count++
		}
	}
	return count
}

func yawOf(dir rl.Vector3) float32 {
	return float32(math.Atan2(float64(dir.Z), float64(dir.X)) * 180 / math.Pi)
}
