// Package tuning holds the movement and combat constants that were hand
// tuned rather than derived. They load from YAML so rebalancing does not
// require a rebuild.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	// Movement
	Gravity       float32 `yaml:"gravity"`
	MoveSpeed     float32 `yaml:"move_speed"`
	RunMultiplier float32 `yaml:"run_multiplier"`
	JumpStrength  float32 `yaml:"jump_strength"`
	Friction      float32 `yaml:"friction"`

	// Collision thresholds
	SlopeLimit  float32 `yaml:"slope_limit"`
	StepHeight  float32 `yaml:"step_height"`
	RadiusScale float32 `yaml:"radius_scale"`
	StairBoost  float32 `yaml:"stair_boost"`
	SlideScale  float32 `yaml:"slide_scale"`

	// Actor dimensions
	ActorRadius float32 `yaml:"actor_radius"`
	ActorHeight float32 `yaml:"actor_height"`
	EyeHeight   float32 `yaml:"eye_height"`

	// Stamina
	StaminaDrainPerSec float32 `yaml:"stamina_drain_per_sec"`
	StaminaRegenPerSec float32 `yaml:"stamina_regen_per_sec"`

	// Combat effects
	ProjectileCap        int     `yaml:"projectile_cap"`
	StampCap             int     `yaml:"stamp_cap"`
	ProjectileSpeed      float32 `yaml:"projectile_speed"`
	ProjectileDurationMs int     `yaml:"projectile_duration_ms"`
	StampDurationMs      int     `yaml:"stamp_duration_ms"`

	// Challenges
	ChallengeBaseSeconds float32 `yaml:"challenge_base_seconds"`
	ChallengeFailPenalty float32 `yaml:"challenge_fail_penalty"`
	ChallengeBaseReward  int     `yaml:"challenge_base_reward"`

	// Session
	MaxTickSeconds float32 `yaml:"max_tick_seconds"`
}

// Default returns the tuned values the game ships with.
func Default() Tuning {
	return Tuning{
		Gravity:       20.0,
		MoveSpeed:     4.0,
		RunMultiplier: 1.8,
		JumpStrength:  6.0,
		Friction:      0.85,

		SlopeLimit:  0.8,
		StepHeight:  0.25,
		RadiusScale: 0.85,
		StairBoost:  4.0,
		SlideScale:  2.0,

		ActorRadius: 0.3,
		ActorHeight: 1.7,
		EyeHeight:   0.8,

		StaminaDrainPerSec: 15.0,
		StaminaRegenPerSec: 5.0,

		ProjectileCap:        5,
		StampCap:             5,
		ProjectileSpeed:      12.0,
		ProjectileDurationMs: 2000,
		StampDurationMs:      1000,

		ChallengeBaseSeconds: 30.0,
		ChallengeFailPenalty: 20.0,
		ChallengeBaseReward:  25,

		MaxTickSeconds: 0.1,
	}
}

// Load reads a tuning file over the defaults, so partial files only
// override what they mention.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning: %w", err)
	}
	return t, nil
}
