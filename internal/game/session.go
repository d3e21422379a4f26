package game

import (
	"log"
	"math"
	"sync"
	"time"

	"office3d/internal/combat"
	"office3d/internal/physics"
	"office3d/internal/player"
	"office3d/internal/telemetry"
	"office3d/internal/tuning"
	"office3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// InputProvider exposes the control state the session polls once per tick.
type InputProvider interface {
	Poll() player.Input
}

// AudioCue is a fire-and-forget sound request. Playback is someone else's
// problem.
type AudioCue int

const (
	CueFootstep AudioCue = iota
	CueThrow
	CueStamp
	CuePromotion
	CueError
)

func (c AudioCue) String() string {
	switch c {
	case CueFootstep:
		return "footstep"
	case CueThrow:
		return "throw"
	case CueStamp:
		return "stamp"
	case CuePromotion:
		return "promotion"
	default:
		return "error"
	}
}

type AudioTrigger interface {
	Play(cue AudioCue)
}

type nopAudio struct{}

func (nopAudio) Play(AudioCue) {}

// strideLength is how far the player walks between footstep cues.
const strideLength = 0.75

// Session wires the whole core together and owns the tick order:
// input sampling, movement, combat, then room/HUD. Everything runs on the
// caller's single goroutine; only load completion arrives from outside and
// is buffered until the next tick boundary.
type Session struct {
	ID          string
	Registry    *world.Registry
	Query       *world.Query
	Player      *player.Controller
	Combat      *combat.Manager
	Progression combat.Progression
	Rooms       []world.Room

	input InputProvider
	audio AudioTrigger
	rep   telemetry.Reporter
	tun   tuning.Tuning

	paused      bool
	lastTick    time.Time
	hasBaseline bool

	room        world.RoomInfo
	envID       string
	strideAccum float32

	pendingMu  sync.Mutex
	pendingEnv *world.Environment
	pendingErr error
	hasPending bool
}

func NewSession(tun tuning.Tuning, input InputProvider, audio AudioTrigger, rep telemetry.Reporter) *Session {
	if rep == nil {
		rep = telemetry.Nop{}
	}
	if audio == nil {
		audio = nopAudio{}
	}

	reg := world.NewRegistry()
	query := &world.Query{
		Reg:         reg,
		RadiusScale: tun.RadiusScale,
		SlopeLimit:  tun.SlopeLimit,
		StepHeight:  tun.StepHeight,
		StairBoost:  tun.StairBoost,
		SlideScale:  tun.SlideScale,
	}

	s := &Session{
		ID:       uuid.NewString(),
		Registry: reg,
		Query:    query,
		Player:   player.NewController(query, tun, rep),
		Combat:   combat.NewManager(tun, rep),
		input:    input,
		audio:    audio,
		rep:      rep,
		tun:      tun,
	}

	// Until a real environment arrives, run on the synthesized one so the
	// player never falls through an empty world.
	s.install(world.FallbackEnvironment())
	return s
}

// LoadEnvironment kicks off an out-of-band load. The result is applied at
// the next tick boundary, never mid-tick. A failed load keeps the session
// playable on the fallback environment.
func (s *Session) LoadEnvironment(p EnvironmentProvider, id string) {
	h := p.Load(id)
	h.OnComplete(func(env *world.Environment, err error) {
		s.pendingMu.Lock()
		s.pendingEnv = env
		s.pendingErr = err
		s.hasPending = true
		s.pendingMu.Unlock()
	})
}

func (s *Session) applyPendingEnvironment() {
	s.pendingMu.Lock()
	env, err, has := s.pendingEnv, s.pendingErr, s.hasPending
	s.pendingEnv, s.pendingErr, s.hasPending = nil, nil, false
	s.pendingMu.Unlock()

	if !has {
		return
	}
	if err != nil {
		log.Printf("game: environment load failed, staying on fallback: %v", err)
		s.rep.EnvironmentFallback("load_failure")
		s.install(world.FallbackEnvironment())
		return
	}
	s.install(env)
}

func (s *Session) install(env *world.Environment) {
	env.Install(s.Registry)
	s.Rooms = env.Rooms
	s.envID = env.ID
}

// Pause freezes integration. State is preserved; no ticks are processed.
func (s *Session) Pause() {
	s.paused = true
}

// Resume unfreezes and resets the delta-time baseline so the first tick
// after a long pause does not replay the entire gap.
func (s *Session) Resume() {
	s.paused = false
	s.hasBaseline = false
}

// Advance computes the tick delta from wall-clock time and runs one tick.
func (s *Session) Advance(now time.Time) {
	if s.paused {
		return
	}
	if !s.hasBaseline {
		s.lastTick = now
		s.hasBaseline = true
		return
	}
	dt := float32(now.Sub(s.lastTick).Seconds())
	s.lastTick = now
	s.Tick(dt)
}

// Tick runs one simulation step with an explicit delta. Deltas are clamped
// to the tuned maximum so frame stalls cannot destabilize the integrator.
func (s *Session) Tick(dt float32) {
	if s.paused {
		return
	}
	if dt > s.tun.MaxTickSeconds {
		dt = s.tun.MaxTickSeconds
	}
	if dt <= 0 {
		return
	}

	s.applyPendingEnvironment()

	in := s.input.Poll()
	before := s.Player.Position

	s.Player.Update(in, dt)
	s.tickFootsteps(before.X-s.Player.Position.X, before.Z-s.Player.Position.Z)

	s.Combat.Update(dt)
	if out, ok := s.Combat.TickChallenge(dt, &s.Progression); ok {
		s.applyOutcome(out)
	}

	s.room = world.Locate(s.Player.Position, s.Rooms)
	s.rep.TickProcessed(dt)
}

func (s *Session) tickFootsteps(dx, dz float32) {
	if !s.Player.Grounded || s.Player.Ghost {
		s.strideAccum = 0
		return
	}
	s.strideAccum += float32(math.Hypot(float64(dx), float64(dz)))
	if s.strideAccum >= strideLength {
		s.strideAccum = 0
		s.audio.Play(CueFootstep)
	}
}

// ThrowDocument spawns a projectile from the player's eye toward target.
func (s *Session) ThrowDocument(target rl.Vector3) bool {
	_, ok := s.Combat.SpawnProjectile(s.Player.Position, target)
	if ok {
		s.audio.Play(CueThrow)
	}
	return ok
}

// ThrowAhead throws a document along the player's current view direction.
func (s *Session) ThrowAhead(distance float32) bool {
	dir := s.Player.LookDirection()
	target := rl.Vector3Add(s.Player.Position, rl.Vector3Scale(dir, distance))
	return s.ThrowDocument(target)
}

// PlaceStamp spawns a stamp effect at the given position, nudged out of any
// geometry it clips into so the visual sits on the surface.
func (s *Session) PlaceStamp(position rl.Vector3) bool {
	_, ok := s.Combat.SpawnStamp(s.depenetrate(position))
	if ok {
		s.audio.Play(CueStamp)
	}
	return ok
}

// stampAnchorHalf is half the footprint of the stamp anchor volume.
const stampAnchorHalf = 0.1

func (s *Session) depenetrate(pos rl.Vector3) rl.Vector3 {
	size := rl.Vector3{X: stampAnchorHalf * 2, Y: stampAnchorHalf * 2, Z: stampAnchorHalf * 2}
	box := physics.NewAABBFromCenter(pos, size)
	for _, c := range s.Registry.All() {
		mtv := box.Resolve(c.Bounds)
		if mtv != rl.Vector3Zero() {
			pos = rl.Vector3Add(pos, mtv)
			box = physics.NewAABBFromCenter(pos, size)
		}
	}
	return pos
}

// StartChallenge begins a timed challenge at the given tier.
func (s *Session) StartChallenge(tier int) bool {
	_, ok := s.Combat.StartChallenge(tier, &s.Progression)
	return ok
}

// CompleteChallenge resolves the running challenge by hand.
func (s *Session) CompleteChallenge(success bool) bool {
	out, ok := s.Combat.ResolveChallenge(success, &s.Progression)
	if ok {
		s.applyOutcome(out)
	}
	return ok
}

func (s *Session) applyOutcome(out combat.ChallengeOutcome) {
	if out.StaminaPenalty > 0 {
		s.Player.Stamina -= out.StaminaPenalty
		if s.Player.Stamina < 0 {
			s.Player.Stamina = 0
		}
		s.audio.Play(CueError)
	}
	if out.Promoted {
		s.audio.Play(CuePromotion)
	}
}
