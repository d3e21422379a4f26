package game

import (
	"errors"
	"testing"
	"time"

	"office3d/internal/player"
	"office3d/internal/scene"
	"office3d/internal/tuning"
	"office3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type stubInput struct {
	in player.Input
}

func (s *stubInput) Poll() player.Input {
	return s.in
}

type spyAudio struct {
	cues map[AudioCue]int
}

func newSpyAudio() *spyAudio {
	return &spyAudio{cues: make(map[AudioCue]int)}
}

func (s *spyAudio) Play(cue AudioCue) {
	s.cues[cue]++
}

type spyReporter struct {
	ticks     int
	fallbacks int
}

func (s *spyReporter) TickProcessed(float32)      { s.ticks++ }
func (s *spyReporter) ContactRecorded(string)     {}
func (s *spyReporter) StuckRecovery()             {}
func (s *spyReporter) EffectSpawned(string)       {}
func (s *spyReporter) EffectExpired(string)       {}
func (s *spyReporter) EffectRejected(string)      {}
func (s *spyReporter) ChallengeResolved(bool)     {}
func (s *spyReporter) EnvironmentFallback(string) { s.fallbacks++ }

// stubProvider completes synchronously with a fixed result.
type stubProvider struct {
	env *world.Environment
	err error
}

func (p stubProvider) Load(id string) *LoadHandle {
	h := NewLoadHandle()
	h.Complete(p.env, p.err)
	return h
}

func newTestSession(input *stubInput, audio *spyAudio, rep *spyReporter) *Session {
	var s *Session
	switch {
	case audio != nil && rep != nil:
		s = NewSession(tuning.Default(), input, audio, rep)
	case audio != nil:
		s = NewSession(tuning.Default(), input, audio, nil)
	case rep != nil:
		s = NewSession(tuning.Default(), input, nil, rep)
	default:
		s = NewSession(tuning.Default(), input, nil, nil)
	}
	s.Player.Position = rl.Vector3{Y: 0.8}
	return s
}

func TestNewSessionStartsOnFallback(t *testing.T) {
	s := newTestSession(&stubInput{}, nil, nil)

	if s.ID == "" {
		t.Error("Expected a session ID")
	}
	snap := s.Snapshot()
	if snap.Collidables != 5 {
		t.Errorf("Expected fallback floor plus 4 walls, got %d collidables", snap.Collidables)
	}
	if snap.Environment != "fallback" {
		t.Errorf("Expected fallback environment, got %s", snap.Environment)
	}
	if s.Registry.FloorCount() != 1 {
		t.Errorf("Expected one floor, got %d", s.Registry.FloorCount())
	}
}

func TestTickIntegratesMovement(t *testing.T) {
	input := &stubInput{in: player.Input{Forward: true}}
	s := newTestSession(input, nil, nil)

	for i := 0; i < 30; i++ {
		s.Tick(1.0 / 60.0)
	}
	if s.Player.Position.X <= 0 {
		t.Errorf("Expected forward progress, got %+v", s.Player.Position)
	}
	if !s.Player.Grounded {
		t.Error("Expected player grounded on the fallback floor")
	}
}

func TestTickClampsDelta(t *testing.T) {
	input := &stubInput{in: player.Input{Forward: true}}
	s := newTestSession(input, nil, nil)

	s.Tick(5.0)
	// A 5s stall integrates as at most the tuned 0.1s step
	if s.Player.Position.X > 0.45 {
		t.Errorf("Expected clamped movement, got X %f", s.Player.Position.X)
	}
}

func TestTickIgnoresNonPositiveDelta(t *testing.T) {
	input := &stubInput{in: player.Input{Forward: true}}
	rep := &spyReporter{}
	s := newTestSession(input, nil, rep)

	s.Tick(0)
	s.Tick(-1)
	if rep.ticks != 0 {
		t.Errorf("Expected no ticks processed, got %d", rep.ticks)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	input := &stubInput{in: player.Input{Forward: true}}
	s := newTestSession(input, nil, nil)

	s.Tick(1.0 / 60.0)
	s.Pause()
	pos := s.Player.Position
	for i := 0; i < 10; i++ {
		s.Tick(1.0 / 60.0)
	}
	if s.Player.Position != pos {
		t.Errorf("Expected no movement while paused, got %+v", s.Player.Position)
	}

	s.Resume()
	s.Tick(1.0 / 60.0)
	if s.Player.Position == pos {
		t.Error("Expected movement to resume")
	}
}

func TestAdvanceResetsBaselineAfterResume(t *testing.T) {
	input := &stubInput{in: player.Input{Forward: true}}
	s := newTestSession(input, nil, nil)
	t0 := time.Now()

	s.Advance(t0) // establishes the baseline, no tick yet
	if s.Player.Position.X != 0 {
		t.Errorf("Expected baseline tick to be a no-op, got X %f", s.Player.Position.X)
	}
	s.Advance(t0.Add(50 * time.Millisecond))
	moved := s.Player.Position.X
	if moved <= 0 {
		t.Error("Expected movement on the second advance")
	}

	// A pause gap must not replay as one giant delta
	s.Pause()
	s.Resume()
	s.Advance(t0.Add(time.Hour))
	if s.Player.Position.X != moved {
		t.Errorf("Expected post-resume advance to only rebaseline, got X %f", s.Player.Position.X)
	}
}

func TestLoadAppliedAtTickBoundary(t *testing.T) {
	input := &stubInput{}
	s := newTestSession(input, nil, nil)

	env := &world.Environment{
		ID:    "office",
		Nodes: []*scene.Node{scene.NewPlane("office_floor", rl.Vector3{}, 30, 30, rl.Vector3{Y: 1})},
		Rooms: []world.Room{{Type: "bullpen", ID: 1, Width: 10, Depth: 10}},
	}
	s.LoadEnvironment(stubProvider{env: env}, "office")

	// The result is buffered until the next tick
	if s.Registry.All()[0].Name() != "fallback_floor" {
		t.Fatal("Expected fallback still installed before the tick")
	}

	s.Tick(1.0 / 60.0)
	if s.Registry.All()[0].Name() != "office_floor" {
		t.Errorf("Expected office environment installed, got %s", s.Registry.All()[0].Name())
	}
	if len(s.Rooms) != 1 {
		t.Errorf("Expected room list swapped in, got %d rooms", len(s.Rooms))
	}
}

func TestLoadFailureStaysOnFallback(t *testing.T) {
	input := &stubInput{}
	rep := &spyReporter{}
	s := newTestSession(input, nil, rep)

	s.LoadEnvironment(stubProvider{err: errors.New("corrupt archive")}, "office")
	s.Tick(1.0 / 60.0)

	if rep.fallbacks != 1 {
		t.Errorf("Expected fallback reported once, got %d", rep.fallbacks)
	}
	if s.Registry.FloorCount() != 1 {
		t.Errorf("Expected playable fallback floor, got %d floors", s.Registry.FloorCount())
	}
}

func TestChallengeTimeoutChargesStamina(t *testing.T) {
	input := &stubInput{}
	audio := newSpyAudio()
	s := newTestSession(input, audio, nil)
	s.Combat.Active = true

	if !s.StartChallenge(1) {
		t.Fatal("Expected challenge to start")
	}
	for i := 0; i < 301; i++ {
		s.Tick(0.1)
	}
	if s.Player.Stamina > 85 {
		t.Errorf("Expected stamina penalty applied on timeout, got %f", s.Player.Stamina)
	}
	if audio.cues[CueError] != 1 {
		t.Errorf("Expected one error cue, got %d", audio.cues[CueError])
	}
	if s.Combat.ActiveChallenge() != nil {
		t.Error("Expected challenge gone after timeout")
	}
}

func TestCompleteChallengePromotes(t *testing.T) {
	input := &stubInput{}
	audio := newSpyAudio()
	s := newTestSession(input, audio, nil)
	s.Combat.Active = true
	s.Progression.Influence = 90

	s.StartChallenge(1)
	if !s.CompleteChallenge(true) {
		t.Fatal("Expected challenge resolution")
	}
	if s.Snapshot().Rank != "Clerk" {
		t.Errorf("Expected promotion to Clerk, got %s", s.Snapshot().Rank)
	}
	if audio.cues[CuePromotion] != 1 {
		t.Errorf("Expected one promotion cue, got %d", audio.cues[CuePromotion])
	}
}

func TestThrowAndStampCues(t *testing.T) {
	input := &stubInput{}
	audio := newSpyAudio()
	s := newTestSession(input, audio, nil)
	s.Combat.Active = true

	if !s.ThrowDocument(rl.Vector3{X: 5, Y: 1}) {
		t.Fatal("Expected throw to spawn")
	}
	if !s.PlaceStamp(rl.Vector3{X: 2}) {
		t.Fatal("Expected stamp to spawn")
	}
	if audio.cues[CueThrow] != 1 || audio.cues[CueStamp] != 1 {
		t.Errorf("Expected one throw and one stamp cue, got %+v", audio.cues)
	}
	if s.Snapshot().LiveEffects != 2 {
		t.Errorf("Expected 2 live effects, got %d", s.Snapshot().LiveEffects)
	}
}

func TestThrowAheadFollowsView(t *testing.T) {
	input := &stubInput{}
	s := newTestSession(input, nil, nil)
	s.Combat.Active = true
	s.Player.Yaw = 0 // facing +X

	if !s.ThrowAhead(8) {
		t.Fatal("Expected throw to spawn")
	}
	s.Combat.Update(0.5)
	e := s.Combat.Effects()[0]
	if e.Position.X <= s.Player.Position.X {
		t.Errorf("Expected projectile ahead of the player, got %+v", e.Position)
	}
}

func TestStampNudgedOutOfFloor(t *testing.T) {
	input := &stubInput{}
	s := newTestSession(input, nil, nil)
	s.Combat.Active = true

	// Anchored exactly at floor height, the stamp volume clips the slab
	if !s.PlaceStamp(rl.Vector3{X: 2, Z: 2}) {
		t.Fatal("Expected stamp to spawn")
	}
	e := s.Combat.Effects()[0]
	if e.Position.Y <= 0.05 {
		t.Errorf("Expected stamp pushed above the floor, got Y %f", e.Position.Y)
	}
}

func TestFootstepsWhileWalking(t *testing.T) {
	input := &stubInput{in: player.Input{Forward: true}}
	audio := newSpyAudio()
	s := newTestSession(input, audio, nil)

	for i := 0; i < 120; i++ {
		s.Tick(1.0 / 60.0)
	}
	if audio.cues[CueFootstep] < 2 {
		t.Errorf("Expected footstep cues while walking, got %d", audio.cues[CueFootstep])
	}
}

func TestRoomLocatedEachTick(t *testing.T) {
	input := &stubInput{}
	s := newTestSession(input, nil, nil)
	s.Rooms = []world.Room{{Type: "bullpen", ID: 1, Width: 10, Depth: 10}}

	s.Tick(1.0 / 60.0)
	if snap := s.Snapshot(); snap.Room.Type != "bullpen" || !snap.Room.Known {
		t.Errorf("Expected bullpen, got %+v", snap.Room)
	}

	s.Player.Ghost = true
	s.Player.Position = rl.Vector3{X: 100, Y: 0.8}
	s.Tick(1.0 / 60.0)
	if snap := s.Snapshot(); snap.Room.Type != "hallway" {
		t.Errorf("Expected hallway fallback, got %+v", snap.Room)
	}
}
