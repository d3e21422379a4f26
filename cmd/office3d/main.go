// Headless walkthrough of the office simulation core: loads a small office
// environment, scripts a player walking through it, and prints HUD
// snapshots. Useful for profiling and for eyeballing movement behavior
// without a renderer attached.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"office3d/internal/game"
	"office3d/internal/player"
	"office3d/internal/scene"
	"office3d/internal/telemetry"
	"office3d/internal/tuning"
	"office3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ticks := flag.Int("ticks", 600, "simulation ticks to run")
	rate := flag.Int("rate", 60, "ticks per simulated second")
	tuningPath := flag.String("tuning", "", "optional tuning YAML file")
	flag.Parse()

	tun := tuning.Default()
	if *tuningPath != "" {
		loaded, err := tuning.Load(*tuningPath)
		if err != nil {
			log.Fatalf("load tuning: %v", err)
		}
		tun = loaded
	}

	rep := telemetry.NewProm(prometheus.NewRegistry())
	input := newScriptedInput()

	sess := game.NewSession(tun, input, logAudio{}, rep)
	sess.LoadEnvironment(officeProvider{}, "office_ground_floor")
	sess.Player.Position = rl.Vector3{X: 0, Y: tun.EyeHeight, Z: 0}
	sess.Combat.Active = true

	dt := 1.0 / float32(*rate)
	start := time.Now()

	for i := 0; i < *ticks; i++ {
		input.advance(i)

		// Exercise the combat layer partway through the walk
		if i == 120 {
			sess.StartChallenge(2)
			sess.ThrowAhead(8)
		}
		if i == 300 {
			sess.CompleteChallenge(true)
		}

		sess.Tick(dt)

		if i%60 == 0 {
			snap := sess.Snapshot()
			fmt.Printf("t=%4.1fs pos=(%6.2f,%5.2f,%6.2f) grounded=%-5v room=%-10s stamina=%5.1f rank=%s effects=%d\n",
				float32(i)*dt, snap.Position.X, snap.Position.Y, snap.Position.Z,
				snap.Grounded, snap.Room.Type, snap.Stamina, snap.Rank, snap.LiveEffects)
		}
	}

	elapsed := time.Since(start)
	snap := sess.Snapshot()
	fmt.Printf("\n%d ticks in %v (%.0f ticks/sec real time)\n", *ticks, elapsed, float64(*ticks)/elapsed.Seconds())
	fmt.Printf("final: env=%s room=%s paperwork=%d collidables=%d\n", snap.Environment, snap.Room.Type, snap.PendingPaperwork, snap.Collidables)
}

// officeProvider loads the built-in demo environment synchronously.
type officeProvider struct{}

func (officeProvider) Load(id string) *game.LoadHandle {
	h := game.NewLoadHandle()
	h.Complete(buildOffice(id), nil)
	return h
}

// buildOffice assembles a small two-room office: floors, outer walls,
// a desk, and a short stair up to a raised landing.
func buildOffice(id string) *world.Environment {
	nodes := []*scene.Node{
		scene.NewPlane("office_floor", rl.Vector3{}, 30, 30, rl.Vector3{Y: 1}),
		scene.NewPlane("wall_north", rl.Vector3{Z: -15, Y: 1.5}, 30, 3, rl.Vector3{Z: 1}),
		scene.NewPlane("wall_south", rl.Vector3{Z: 15, Y: 1.5}, 30, 3, rl.Vector3{Z: -1}),
		scene.NewPlane("wall_west", rl.Vector3{X: -15, Y: 1.5}, 30, 3, rl.Vector3{X: 1}),
		scene.NewPlane("wall_east", rl.Vector3{X: 15, Y: 1.5}, 30, 3, rl.Vector3{X: -1}),
		scene.NewBox("desk_reception", rl.Vector3{X: 4, Y: 0.4, Z: 2}, rl.Vector3{X: 1.6, Y: 0.8, Z: 0.8}),
		scene.NewBox("stair_step_1", rl.Vector3{X: -5, Y: 0.075, Z: -5}, rl.Vector3{X: 2, Y: 0.15, Z: 0.6}),
		scene.NewBox("stair_step_2", rl.Vector3{X: -5, Y: 0.225, Z: -5.6}, rl.Vector3{X: 2, Y: 0.15, Z: 0.6}),
		scene.NewBox("landing", rl.Vector3{X: -5, Y: 0.15, Z: -7}, rl.Vector3{X: 4, Y: 0.3, Z: 2}),
	}

	bullpen := scene.NewNode("room_bullpen")
	bullpen.Transform.Position = rl.Vector3{X: 5, Z: 5}
	bullpenFloor := scene.NewPlane("", rl.Vector3{}, 12, 12, rl.Vector3{Y: 1})
	bullpen.AddChild(bullpenFloor)

	archive := scene.NewNode("room_archive")
	archive.Transform.Position = rl.Vector3{X: -8, Z: 8}

	return &world.Environment{
		ID:    id,
		Nodes: nodes,
		Rooms: []world.Room{
			world.NewRoomFromNode("bullpen", 1, bullpen),
			world.NewRoomFromNode("archive", 2, archive),
		},
	}
}

// scriptedInput replays a fixed walk: forward, a sprint burst, one jump,
// then a turn toward the stairs.
type scriptedInput struct {
	tick int
}

func newScriptedInput() *scriptedInput {
	return &scriptedInput{}
}

func (s *scriptedInput) advance(tick int) {
	s.tick = tick
}

func (s *scriptedInput) Poll() player.Input {
	var in player.Input
	switch {
	case s.tick < 180:
		in.Forward = true
	case s.tick < 240:
		in.Forward = true
		in.Run = true
	case s.tick == 250:
		in.Jump = true
	case s.tick < 420:
		in.Forward = true
		in.LookDeltaX = 2 // sweep the view toward the stairwell
	default:
		// stand still and let friction drain the velocity
	}
	return in
}

// logAudio prints cues instead of playing them.
type logAudio struct{}

func (logAudio) Play(cue game.AudioCue) {
	if cue != game.CueFootstep { // footsteps are too chatty for stdout
		fmt.Printf("audio: %s\n", cue)
	}
}
