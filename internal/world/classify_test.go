package world

import (
	"testing"

	"office3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestClassifyFloorPlane(t *testing.T) {
	n := scene.NewPlane("surface_07", rl.Vector3{Y: 2}, 10, 10, rl.Vector3{Y: 1})
	if got := DefaultClassify(n); got != SurfaceFloor {
		t.Errorf("Expected floor for up-facing plane, got %v", got)
	}
}

func TestClassifyWallPlane(t *testing.T) {
	n := scene.NewPlane("partition_03", rl.Vector3{X: 5, Y: 1.5}, 8, 3, rl.Vector3{X: 1})
	if got := DefaultClassify(n); got != SurfaceWall {
		t.Errorf("Expected wall for vertical plane, got %v", got)
	}
}

func TestClassifyWideFlatBoxAsFloor(t *testing.T) {
	n := scene.NewBox("platform_a", rl.Vector3{Y: 3}, rl.Vector3{X: 6, Y: 0.4, Z: 6})
	if got := DefaultClassify(n); got != SurfaceFloor {
		t.Errorf("Expected floor for wide flat box, got %v", got)
	}
}

func TestClassifyTallBoxAsWall(t *testing.T) {
	n := scene.NewBox("pillar_02", rl.Vector3{X: 3, Y: 1.5}, rl.Vector3{X: 0.5, Y: 3, Z: 0.5})
	if got := DefaultClassify(n); got != SurfaceWall {
		t.Errorf("Expected wall for tall box, got %v", got)
	}
}

func TestClassifyByName(t *testing.T) {
	cases := []struct {
		name string
		want Surface
	}{
		{"Ground_Mesh", SurfaceFloor},
		{"office_floor_2", SurfaceFloor},
		{"Wall_North", SurfaceWall},
		{"stair_main", SurfaceStair},
		{"Step_04", SurfaceStair},
	}
	for _, c := range cases {
		// Geometry deliberately ambiguous so the name decides
		n := scene.NewBox(c.name, rl.Vector3{Y: 0.6}, rl.Vector3{X: 1, Y: 1, Z: 1})
		if got := DefaultClassify(n); got != c.want {
			t.Errorf("Expected %v for %q, got %v", c.want, c.name, got)
		}
	}
}

func TestClassifyStepSlabAsStair(t *testing.T) {
	// Step-sized slab raised off the ground, no telling name
	n := scene.NewBox("slab_11", rl.Vector3{Y: 0.45}, rl.Vector3{X: 1.2, Y: 0.2, Z: 0.5})
	if got := DefaultClassify(n); got != SurfaceStair {
		t.Errorf("Expected stair for raised step-sized slab, got %v", got)
	}
}

func TestClassifyUnknown(t *testing.T) {
	// A chair-sized box at desk height matches none of the rules
	n := scene.NewBox("prop_19", rl.Vector3{Y: 2}, rl.Vector3{X: 0.6, Y: 0.6, Z: 0.6})
	if got := DefaultClassify(n); got != SurfaceUnknown {
		t.Errorf("Expected unknown, got %v", got)
	}
}

func TestClassifyGroundLevelMesh(t *testing.T) {
	// Anything resting at Y=0 counts as floor even without a name or shape hint
	n := scene.NewNode("mesh_root")
	if got := DefaultClassify(n); got != SurfaceFloor {
		t.Errorf("Expected floor for mesh at ground level, got %v", got)
	}
}

func TestClassifyPriorityFloorBeforeStair(t *testing.T) {
	// Name says stair, but an up-facing plane is a floor first
	n := scene.NewPlane("stair_landing", rl.Vector3{Y: 1}, 4, 4, rl.Vector3{Y: 1})
	if got := DefaultClassify(n); got != SurfaceFloor {
		t.Errorf("Expected floor to win over stair, got %v", got)
	}
}

func TestClassifyTagOverridesHeuristics(t *testing.T) {
	// Geometry reads as a floor, but the authored tag wins
	n := scene.NewPlane("surface_03", rl.Vector3{}, 10, 10, rl.Vector3{Y: 1})
	n.Tags = []string{"wall"}

	if got := DefaultClassify(n); got != SurfaceWall {
		t.Errorf("Expected tag override to wall, got %v", got)
	}
}

func TestSurfaceString(t *testing.T) {
	if SurfaceStairHelper.String() != "stairhelper" {
		t.Errorf("Expected stairhelper, got %s", SurfaceStairHelper.String())
	}
	if Surface(99).String() != "unknown" {
		t.Errorf("Expected unknown for out-of-range value, got %s", Surface(99).String())
	}
}
