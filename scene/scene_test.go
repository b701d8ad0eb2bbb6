package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/folio/rotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlacementYawConvention(t *testing.T) {
	p := Placement{Yaw: math.Pi / 2, Scale: 1}
	got := p.Apply(mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, 0, got.X(), 1e-12)
	assert.InDelta(t, -1, got.Z(), 1e-12)

	p = Placement{Pitch: math.Pi / 2, Scale: 2, Position: mgl64.Vec3{0, 0, -5}}
	got = p.Apply(mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, 0, got.Y(), 1e-12)
	assert.InDelta(t, 2-5, got.Z(), 1e-12)
}

func TestPlacementYawThenPitch(t *testing.T) {
	p := Placement{Pitch: 0.3, Yaw: 1.1, Scale: 1.5, Position: mgl64.Vec3{1, 2, 3}}
	v := mgl64.Vec3{0.5, -2, 4}

	// Yaw about Y first, then pitch about X, then translate.
	c, s := math.Cos(p.Yaw), math.Sin(p.Yaw)
	x, y, z := v.Mul(1.5).Elem()
	x, z = x*c+z*s, -x*s+z*c
	cp, sp := math.Cos(p.Pitch), math.Sin(p.Pitch)
	y, z = y*cp-z*sp, y*sp+z*cp
	want := mgl64.Vec3{x + 1, y + 2, z + 3}

	assert.True(t, want.ApproxEqualThreshold(p.Apply(v), 1e-9), "got %v want %v", p.Apply(v), want)

	dir := p.ApplyDir(v)
	assert.InDelta(t, v.Len(), dir.Len(), 1e-9, "directions keep their length")
}

func TestLensProject(t *testing.T) {
	lens := DefaultLens()

	sx, sy, depth, ok := lens.Project(mgl64.Vec3{0, 0, -10}, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 400, sx, 1e-9)
	assert.InDelta(t, 300, sy, 1e-9)
	assert.Equal(t, 10.0, depth)

	sx, sy, _, ok = lens.Project(mgl64.Vec3{1, 1, -10}, 800, 600)
	require.True(t, ok)
	f := 300 / math.Tan(lens.FOV/2)
	assert.InDelta(t, 400+f/10, sx, 1e-9)
	assert.InDelta(t, 300-f/10, sy, 1e-9)

	_, _, _, ok = lens.Project(mgl64.Vec3{0, 0, 5}, 800, 600)
	assert.False(t, ok, "points behind the camera are not visible")
	_, _, _, ok = lens.Project(mgl64.Vec3{0, 0, -2000}, 800, 600)
	assert.False(t, ok)
}

func TestIslandPlacement(t *testing.T) {
	assert.Equal(t, 0.9, IslandPlacement(600).Scale)
	assert.Equal(t, 1.0, IslandPlacement(768).Scale)

	p := IslandPlacement(1280)
	assert.Equal(t, mgl64.Vec3{0, -10, -40}, p.Position)
	assert.Equal(t, 5.5, p.Yaw)
	assert.Equal(t, 0.1, p.Pitch)
}

func TestLandmarkFacesCameraAtWindowMiddle(t *testing.T) {
	for _, w := range rotation.DefaultWindows() {
		p := Placement{Yaw: (w.Min + w.Max) / 2, Scale: 1}
		got := p.ApplyDir(LandmarkDirection(w))
		assert.InDelta(t, 0, got.X(), 1e-9, "stage %s", w.Stage)
		assert.InDelta(t, 1, got.Z(), 1e-9, "stage %s", w.Stage)
	}
}

func TestIslandMeshFacesPointUp(t *testing.T) {
	m := IslandMesh(rotation.DefaultWindows())
	require.NotEmpty(t, m.Faces)

	// The first faces are the peak fan and the ring strips.
	land := islandSegments * (1 + 2*(len(islandRings)-1))
	for _, f := range m.Faces[:land] {
		assert.GreaterOrEqual(t, m.Normal(f).Y(), 0.0)
	}
	for _, f := range m.Faces {
		for _, i := range []int{f.A, f.B, f.C} {
			require.Less(t, i, len(m.Vertices))
		}
	}
}

func TestBuildDrawListOrder(t *testing.T) {
	sky := Instance{Mesh: SkyMesh(), Placement: SkyPlacement(), Background: true}
	island := Instance{Mesh: IslandMesh(rotation.DefaultWindows()), Placement: IslandPlacement(1280)}

	tris := BuildDrawList(nil, []Instance{island, sky}, DefaultLens(), 1280, 720)
	require.NotEmpty(t, tris)

	seenForeground := false
	for i, tri := range tris {
		if !tri.Background {
			seenForeground = true
		} else {
			require.False(t, seenForeground, "background triangle %d drawn after foreground", i)
		}
		if i > 0 && tris[i-1].Background == tri.Background {
			assert.GreaterOrEqual(t, tris[i-1].Depth, tri.Depth)
		}
	}
	assert.True(t, seenForeground)
}

func TestShade(t *testing.T) {
	c := sandColor
	lit := Shade(c, lightDir)
	dark := Shade(c, lightDir.Mul(-1))
	assert.Equal(t, c.A, lit.A)
	assert.Greater(t, lit.R, dark.R)
	assert.Equal(t, uint8(float64(c.R)*ambient), dark.R)
}
