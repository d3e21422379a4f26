package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// RayHit describes the nearest intersection found by a cast.
type RayHit struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// CastAABB intersects a ray with an axis-aligned box using the slab method.
// Direction is assumed normalized. Returns the closest hit within maxDistance.
func CastAABB(origin, direction rl.Vector3, box AABB, maxDistance float32) (RayHit, bool) {
	min, max := box.Min, box.Max

	var tmin, tmax float32

	// X slab
	if direction.X != 0 {
		t1 := (min.X - origin.X) / direction.X
		t2 := (max.X - origin.X) / direction.X
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = t1
		tmax = t2
	} else if origin.X < min.X || origin.X > max.X {
		return RayHit{}, false
	} else {
		tmin = -1e30
		tmax = 1e30
	}

	// Y slab
	if direction.Y != 0 {
		t1 := (min.Y - origin.Y) / direction.Y
		t2 := (max.Y - origin.Y) / direction.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Y < min.Y || origin.Y > max.Y {
		return RayHit{}, false
	}

	if tmin > tmax {
		return RayHit{}, false
	}

	// Z slab
	if direction.Z != 0 {
		t1 := (min.Z - origin.Z) / direction.Z
		t2 := (max.Z - origin.Z) / direction.Z
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Z < min.Z || origin.Z > max.Z {
		return RayHit{}, false
	}

	if tmin > tmax || tmax < 0 || tmin > maxDistance {
		return RayHit{}, false
	}

	t := tmin
	if t < 0 {
		// Origin is inside the box; report the exit point so callers still
		// see the contact instead of tunneling through.
		t = 0
	}
	if t > maxDistance {
		return RayHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))

	return RayHit{Point: point, Normal: faceNormal(point, min, max), Distance: t}, true
}

// faceNormal picks the outward normal of the box face nearest to the hit point.
func faceNormal(point, min, max rl.Vector3) rl.Vector3 {
	const epsilon = 0.001
	switch {
	case abs(point.X-min.X) < epsilon:
		return rl.Vector3{X: -1}
	case abs(point.X-max.X) < epsilon:
		return rl.Vector3{X: 1}
	case abs(point.Y-min.Y) < epsilon:
		return rl.Vector3{Y: -1}
	case abs(point.Y-max.Y) < epsilon:
		return rl.Vector3{Y: 1}
	case abs(point.Z-min.Z) < epsilon:
		return rl.Vector3{Z: -1}
	default:
		return rl.Vector3{Z: 1}
	}
}
