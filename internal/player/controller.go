package player

import (
	"math"

	"office3d/internal/physics"
	"office3d/internal/telemetry"
	"office3d/internal/tuning"
	"office3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is one tick's worth of sampled control state. The session polls its
// input provider once per tick and hands the snapshot here.
type Input struct {
	Forward, Backward  bool
	Left, Right        bool
	Run, Jump          bool
	FloatUp, FloatDown bool

	LookDeltaX float32
	LookDeltaY float32
}

// Controller integrates the player's movement each tick: input intent,
// gravity, ground snapping, step climbing, wall sliding and stuck recovery.
// There is no physics engine behind it, only the discrete raycasts in the
// collision query.
type Controller struct {
	Position rl.Vector3
	Velocity rl.Vector3
	Yaw      float32
	Pitch    float32

	Radius    float32
	Height    float32
	EyeHeight float32

	Grounded bool
	Jumping  bool
	Running  bool
	Ghost    bool
	Stamina  float32

	// Contacts from the current tick, kept for HUD display and debugging.
	Contacts []world.Contact

	LookSpeed float32

	query *world.Query
	tun   tuning.Tuning
	rep   telemetry.Reporter

	lastGroundY  float32
	stuckRetries int
}

// maxStuckRetries caps the corrective impulses applied in a row. The escape
// impulse is a heuristic, not physics; past a few attempts the actor is in a
// genuine dead-end and boosting further just hides it.
const maxStuckRetries = 3

const (
	stuckImpulse      = 2.0
	minMoveThreshold  = 0.01
	velocitySnapLimit = 0.01
)

func NewController(q *world.Query, tun tuning.Tuning, rep telemetry.Reporter) *Controller {
	if rep == nil {
		rep = telemetry.Nop{}
	}
	return &Controller{
		Radius:    tun.ActorRadius,
		Height:    tun.ActorHeight,
		EyeHeight: tun.EyeHeight,
		Stamina:   100,
		LookSpeed: 0.1,
		query:     q,
		tun:       tun,
		rep:       rep,
	}
}

// ToggleGhost flips the no-clip fly mode. Vertical velocity is zeroed so a
// toggle mid-fall stops the fall instead of carrying it into ghost flight.
func (c *Controller) ToggleGhost() {
	c.Ghost = !c.Ghost
	c.Velocity.Y = 0
	c.Jumping = false
	if c.Ghost {
		c.Grounded = false
	}
}

// Update advances the player by one tick.
func (c *Controller) Update(in Input, dt float32) {
	c.Yaw += in.LookDeltaX * c.LookSpeed
	c.Pitch -= in.LookDeltaY * c.LookSpeed
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}

	if c.Ghost {
		c.updateGhost(in, dt)
		return
	}
	c.updateNormal(in, dt)
}

// updateGhost moves directly by velocity: no gravity, no collision, vertical
// motion driven by the float inputs.
func (c *Controller) updateGhost(in Input, dt float32) {
	intent := c.moveIntent(in)
	c.Velocity.X = intent.X * c.tun.MoveSpeed
	c.Velocity.Z = intent.Z * c.tun.MoveSpeed

	c.Velocity.Y = 0
	if in.FloatUp {
		c.Velocity.Y += c.tun.MoveSpeed
	}
	if in.FloatDown {
		c.Velocity.Y -= c.tun.MoveSpeed
	}

	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(c.Velocity, dt))
}

func (c *Controller) updateNormal(in Input, dt float32) {
	// Running is gated on stamina; at zero the flag drops immediately.
	c.Running = in.Run && c.Stamina > 0

	intent := c.moveIntent(in)
	moving := intent.X != 0 || intent.Z != 0

	speed := c.tun.MoveSpeed
	if c.Running {
		speed *= c.tun.RunMultiplier
	}
	if moving {
		c.Velocity.X = intent.X * speed
		c.Velocity.Z = intent.Z * speed
	}

	c.updateStamina(moving, dt)

	// Jump
	if in.Jump && c.Grounded {
		c.Velocity.Y = c.tun.JumpStrength
		c.Grounded = false
		c.Jumping = true
	}

	// Gravity
	if !c.Grounded {
		c.Velocity.Y -= c.tun.Gravity * dt
	}

	// Ground state first, so stair boosts and slope slides shape this
	// tick's displacement.
	ground, onGround := c.resolveGround(moving)

	steppedUp := c.moveHorizontal(dt)
	c.moveVertical(ground, onGround, steppedUp, dt)

	c.applyFriction()
}

func (c *Controller) updateStamina(moving bool, dt float32) {
	if c.Running && moving {
		c.Stamina -= c.tun.StaminaDrainPerSec * dt
	} else {
		c.Stamina += c.tun.StaminaRegenPerSec * dt
	}
	c.Stamina = physics.Clamp(c.Stamina, 0, 100)
}

func (c *Controller) resolveGround(moving bool) (world.GroundResult, bool) {
	ground, ok := c.query.Ground(c.Position, c.EyeHeight, c.Velocity.Y, moving, c.lastGroundY)
	if !ok {
		// Nothing below at all: airborne
		if c.Velocity.Y <= 0 {
			c.Grounded = false
		}
		return world.GroundResult{}, false
	}

	switch ground.State {
	case world.GroundFlat:
		if c.Velocity.Y <= 0 && ground.Clearance <= world.GroundContactRange {
			c.Grounded = true
			c.Jumping = false
			c.Velocity.Y = 0
			c.lastGroundY = ground.GroundY
		} else if c.Velocity.Y <= 0 {
			// Ground is below but out of reach: keep falling toward it
			c.Grounded = false
		}
	case world.GroundStair:
		if ground.Clearance <= world.GroundContactRange {
			c.Grounded = true
			c.Jumping = false
			if ground.Boost > 0 {
				c.Velocity.Y = ground.Boost
			}
			c.lastGroundY = ground.GroundY
		}
	case world.GroundSlope:
		// Slide downhill without forcing airborne
		c.Velocity.X += ground.Slide.X
		c.Velocity.Z += ground.Slide.Z
	}
	return ground, true
}

// moveHorizontal commits as much of the desired horizontal displacement as
// collision allows: full move, else step-up, else axis-separated sliding.
func (c *Controller) moveHorizontal(dt float32) (steppedUp bool) {
	c.Contacts = c.Contacts[:0]

	dx := c.Velocity.X * dt
	dz := c.Velocity.Z * dt
	if dx == 0 && dz == 0 {
		return false
	}

	target := rl.Vector3{X: c.Position.X + dx, Y: c.Position.Y, Z: c.Position.Z + dz}
	res := c.query.Move(target, c.Radius, c.Height, c.EyeHeight)
	c.recordContacts(res.Contacts)

	if !res.Blocked {
		c.Position.X = target.X
		c.Position.Z = target.Z
		c.stuckRetries = 0
		return false
	}

	// Step-up probe: same displacement, raised by the step height
	raised := target
	raised.Y += c.tun.StepHeight
	if step := c.query.Move(raised, c.Radius, c.Height, c.EyeHeight); !step.Blocked && !step.BlockedUp {
		c.Position = raised
		c.Grounded = true
		c.stuckRetries = 0
		return true
	}

	// Slide: X only, then Z only
	moved := false
	if dx != 0 {
		xOnly := rl.Vector3{X: c.Position.X + dx, Y: c.Position.Y, Z: c.Position.Z}
		if r := c.query.Move(xOnly, c.Radius, c.Height, c.EyeHeight); !r.Blocked {
			c.Position.X = xOnly.X
			moved = true
		}
	}
	if dz != 0 {
		zOnly := rl.Vector3{X: c.Position.X, Y: c.Position.Y, Z: c.Position.Z + dz}
		if r := c.query.Move(zOnly, c.Radius, c.Height, c.EyeHeight); !r.Blocked {
			c.Position.Z = zOnly.Z
			moved = true
		}
	}
	if moved {
		c.stuckRetries = 0
		return false
	}

	// Both axes blocked: damp and, if pinned in place, nudge upward to
	// escape. The retry cap keeps a true dead-end from looking like an
	// elevator.
	c.Velocity.X *= 0.5
	c.Velocity.Z *= 0.5

	horizontalSpeed := physics.HorizontalLength(c.Velocity)
	if horizontalSpeed < minMoveThreshold && c.stuckRetries < maxStuckRetries {
		c.Velocity.Y = stuckImpulse
		c.Grounded = false
		c.stuckRetries++
		c.rep.StuckRecovery()
	}
	return false
}

func (c *Controller) moveVertical(ground world.GroundResult, onGround, steppedUp bool, dt float32) {
	// Ceiling check on the way up
	if c.Velocity.Y > 0 {
		up := c.query.Move(c.Position, c.Radius, c.Height, c.EyeHeight)
		if up.BlockedUp {
			c.Velocity.Y = 0
		}
	}

	c.Position.Y += c.Velocity.Y * dt

	// Landing snap: a grounded actor sits exactly at ground height plus eye
	// height. Skipped on the tick a step-up committed; the next tick's
	// ground query settles onto the step top.
	if c.Grounded && onGround && !steppedUp && ground.State != world.GroundSlope && c.Velocity.Y <= 0 {
		c.Position.Y = ground.GroundY + c.EyeHeight
	}
}

func (c *Controller) applyFriction() {
	c.Velocity.X *= c.tun.Friction
	c.Velocity.Z *= c.tun.Friction
	if absf(c.Velocity.X) < velocitySnapLimit {
		c.Velocity.X = 0
	}
	if absf(c.Velocity.Z) < velocitySnapLimit {
		c.Velocity.Z = 0
	}
}

func (c *Controller) recordContacts(contacts []world.Contact) {
	for _, contact := range contacts {
		c.Contacts = append(c.Contacts, contact)
		c.rep.ContactRecorded(contact.Collidable.Surface.String())
	}
}

// moveIntent projects the held direction keys onto the camera's forward and
// right vectors flattened to the horizontal plane, normalizing diagonals.
func (c *Controller) moveIntent(in Input) rl.Vector3 {
	forward, right := c.directions()

	var move rl.Vector3
	if in.Forward {
		move.X += forward.X
		move.Z += forward.Z
	}
	if in.Backward {
		move.X -= forward.X
		move.Z -= forward.Z
	}
	if in.Left {
		move.X += right.X
		move.Z += right.Z
	}
	if in.Right {
		move.X -= right.X
		move.Z -= right.Z
	}

	return physics.Flatten(move)
}

func (c *Controller) directions() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Z: float32(math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(math.Sin(yawRad)),
		Z: float32(-math.Cos(yawRad)),
	}
	return
}

// LookDirection returns the full 3D view direction from yaw and pitch.
func (c *Controller) LookDirection() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
