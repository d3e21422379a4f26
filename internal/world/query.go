package world

import (
	"office3d/internal/physics"
	"office3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Contact is one collision probe result, valid for the tick that produced it.
type Contact struct {
	Collidable *Collidable
	Distance   float32
	Normal     rl.Vector3
	Direction  rl.Vector3
}

const diag = 0.70710678 // 1/sqrt(2)

// probeDirections are the 8 horizontal cast directions, in the order they
// are evaluated. The order is part of the engine's deterministic behavior.
var probeDirections = [8]rl.Vector3{
	{X: 1},
	{X: -1},
	{Z: 1},
	{Z: -1},
	{X: diag, Z: diag},
	{X: diag, Z: -diag},
	{X: -diag, Z: diag},
	{X: -diag, Z: -diag},
}

// Heights above the feet the horizontal probes are cast from. Two levels
// catch both skirting-height obstacles and desk/table edges.
const (
	feetProbeOffset = 0.05
	kneeProbeOffset = 0.35
)

// Query performs collision casts against a registry using tuned thresholds.
// One Query instance is shared by the movement integrator for a session.
type Query struct {
	Reg *Registry

	RadiusScale float32 // effective probe radius = nominal radius × this
	SlopeLimit  float32 // min normal·up still treated as walkable
	StepHeight  float32 // max climbable height difference
	StairBoost  float32 // upward velocity per unit of step delta
	SlideScale  float32 // downhill velocity factor on steep slopes
}

// MoveResult reports whether a proposed position is blocked and what was hit.
type MoveResult struct {
	Blocked   bool
	BlockedUp bool
	Contacts  []Contact
}

// Move probes a proposed actor position. Rays go out from feet and knee
// reference points along the 8 fixed directions at a slightly shrunk radius;
// any hit inside that radius blocks the move. A straight-up probe of the
// actor's height blocks upward motion separately.
func (q *Query) Move(to rl.Vector3, radius, height, eyeHeight float32) MoveResult {
	var res MoveResult
	effective := radius * q.RadiusScale
	feetY := to.Y - eyeHeight + feetProbeOffset
	kneeY := to.Y - eyeHeight + kneeProbeOffset

	seen := make(map[*Collidable]bool)

	for _, dir := range probeDirections {
		for _, y := range [2]float32{feetY, kneeY} {
			origin := rl.Vector3{X: to.X, Y: y, Z: to.Z}
			contact, ok := q.nearestHit(origin, dir, effective)
			if !ok {
				continue
			}
			res.Blocked = true
			if !seen[contact.Collidable] {
				seen[contact.Collidable] = true
				res.Contacts = append(res.Contacts, contact)
			}
		}
	}

	// Ceiling probe
	if contact, ok := q.nearestHit(to, rl.Vector3{Y: 1}, height); ok {
		res.BlockedUp = true
		if !seen[contact.Collidable] {
			res.Contacts = append(res.Contacts, contact)
		}
	}

	return res
}

// nearestHit casts one ray against every registered collidable and keeps the
// closest hit. Registration order breaks ties, which keeps results stable.
func (q *Query) nearestHit(origin, dir rl.Vector3, maxDist float32) (Contact, bool) {
	var best Contact
	best.Distance = maxDist
	found := false

	for _, c := range q.Reg.All() {
		hit, ok := physics.CastAABB(origin, dir, c.Bounds, maxDist)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Distance {
			best = Contact{
				Collidable: c,
				Distance:   hit.Distance,
				Normal:     surfaceNormal(c, hit),
				Direction:  dir,
			}
			found = true
		}
	}
	return best, found
}

// surfaceNormal prefers the node's authored plane orientation over the box
// face normal, so sloped planes report their true slope.
func surfaceNormal(c *Collidable, hit physics.RayHit) rl.Vector3 {
	if c.Node.Shape.Kind != scene.ShapePlane {
		return hit.Normal
	}
	n := c.Node.Shape.Normal
	// Orient toward the caster
	if rl.Vector3DotProduct(n, hit.Normal) < 0 {
		return rl.Vector3Scale(n, -1)
	}
	return n
}

// GroundState classifies what the downward probe landed on.
type GroundState int

const (
	GroundFlat GroundState = iota
	GroundStair
	GroundSlope
)

// GroundResult carries everything the integrator needs to resolve vertical
// motion for a tick.
type GroundResult struct {
	State     GroundState
	GroundY   float32
	Normal    rl.Vector3
	Slope     float32 // normal·up: 1 flat, 0 vertical
	Clearance float32 // distance between the feet and the hit surface
	Contact   Contact

	// Boost is the upward velocity granted when climbing a stair-sized rise.
	Boost float32
	// Slide is the downhill velocity added on steep slopes.
	Slide rl.Vector3
}

const (
	groundProbeOffset = 0.1 // ray starts this far above the feet
	groundProbeRange  = 1.0

	// GroundContactRange is how close the supporting surface must be for an
	// actor to count as standing on it. Farther hits are still reported while
	// the actor is not rising, so the integrator can track approaching ground.
	GroundContactRange = 0.2
)

// Ground casts a single ray straight down from just above the actor's feet.
// The hit surface's slope decides between flat ground, a climbable stair,
// and a slide-eligible slope. Returns false when nothing is under the actor.
func (q *Query) Ground(pos rl.Vector3, eyeHeight, vy float32, moving bool, lastGroundY float32) (GroundResult, bool) {
	feetY := pos.Y - eyeHeight
	origin := rl.Vector3{X: pos.X, Y: feetY + groundProbeOffset, Z: pos.Z}

	contact, ok := q.nearestHit(origin, rl.Vector3{Y: -1}, groundProbeRange)
	if !ok {
		return GroundResult{}, false
	}

	// Distance is measured from the probe origin; subtract the offset to get
	// clearance below the feet.
	clearance := contact.Distance - groundProbeOffset
	if clearance > GroundContactRange && vy > 0 {
		return GroundResult{}, false
	}

	normal := contact.Normal
	if normal.Y < 0 {
		normal = rl.Vector3Scale(normal, -1)
	}
	slope := rl.Vector3DotProduct(normal, rl.Vector3{Y: 1})
	groundY := origin.Y - contact.Distance

	res := GroundResult{
		GroundY:   groundY,
		Normal:    normal,
		Slope:     slope,
		Clearance: clearance,
		Contact:   contact,
	}

	switch {
	case slope >= q.SlopeLimit:
		res.State = GroundFlat
	case absf(groundY-lastGroundY) <= q.StepHeight && moving:
		res.State = GroundStair
		delta := groundY - lastGroundY
		if delta > 0 {
			res.Boost = delta * q.StairBoost
		}
	default:
		res.State = GroundSlope
		res.Slide = rl.Vector3Scale(physics.Downhill(normal), (1-slope)*q.SlideScale)
	}
	return res, true
}
