package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Clamp restricts a value to a range.
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// HorizontalLength returns the length of a vector projected on the XZ plane.
func HorizontalLength(v rl.Vector3) float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Z*v.Z)))
}

// Flatten removes the vertical component and renormalizes. A vector pointing
// straight up or down comes back zero.
func Flatten(v rl.Vector3) rl.Vector3 {
	flat := rl.Vector3{X: v.X, Z: v.Z}
	length := HorizontalLength(flat)
	if length < 1e-6 {
		return rl.Vector3{}
	}
	return rl.Vector3{X: flat.X / length, Z: flat.Z / length}
}

// Downhill projects the world down direction onto a sloped surface, giving
// the direction an actor slides when standing on it.
func Downhill(normal rl.Vector3) rl.Vector3 {
	down := rl.Vector3{Y: -1}
	// Remove the component of down along the normal
	d := rl.Vector3DotProduct(down, normal)
	slide := rl.Vector3Subtract(down, rl.Vector3Scale(normal, d))
	length := rl.Vector3Length(slide)
	if length < 1e-6 {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(slide, 1/length)
}
