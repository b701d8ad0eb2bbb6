package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/folio/rotation"
)

var (
	waterColor = color.RGBA{R: 0x2a, G: 0x7f, B: 0xc4, A: 0xb3}
	sandColor  = color.RGBA{R: 0xe8, G: 0xd2, B: 0x9a, A: 0xff}
	grassColor = color.RGBA{R: 0x4c, G: 0x9a, B: 0x4a, A: 0xff}
	rockColor  = color.RGBA{R: 0x7d, G: 0x73, B: 0x68, A: 0xff}
	peakColor  = color.RGBA{R: 0xf4, G: 0xf1, B: 0xea, A: 0xff}
	poleColor  = color.RGBA{R: 0x5b, G: 0x3a, B: 0x24, A: 0xff}
)

// StageColors tints the landmark of each stage.
var StageColors = map[rotation.Stage]color.RGBA{
	rotation.Stage1: {R: 0xe6, G: 0x39, B: 0x46, A: 0xff},
	rotation.Stage2: {R: 0xf4, G: 0xa2, B: 0x61, A: 0xff},
	rotation.Stage3: {R: 0x8e, G: 0x44, B: 0xad, A: 0xff},
	rotation.Stage4: {R: 0x2a, G: 0x9d, B: 0x8f, A: 0xff},
}

type ring struct {
	radius float64
	height float64
	color  color.RGBA
}

const (
	islandSegments = 18
	waterRadius    = 26
	landmarkRadius = 12.5
)

var islandRings = []ring{
	{radius: 4.5, height: 7, color: rockColor},
	{radius: 9, height: 4, color: grassColor},
	{radius: 14, height: 1.6, color: grassColor},
	{radius: 17, height: 0.3, color: sandColor},
	{radius: 19, height: -0.6, color: sandColor},
}

// IslandMesh builds the low-poly island with one landmark per stage window.
// Each landmark sits on the side of the island that faces the camera when
// the island's yaw is at the middle of its window.
func IslandMesh(windows []rotation.Window) *Mesh {
	m := &Mesh{}
	up := mgl64.Vec3{0, 1, 0}

	center := m.addVertex(mgl64.Vec3{0, 10, 0})
	rings := make([][]int, len(islandRings))
	for i, r := range islandRings {
		rings[i] = make([]int, islandSegments)
		for j := 0; j < islandSegments; j++ {
			h := r.height + jitter(i, j)*0.6
			rj := r.radius * (1 + jitter(j, i)*0.08)
			rings[i][j] = m.addVertex(groundPoint(ringPoint(j, islandSegments, rj), h))
		}
	}

	for j := 0; j < islandSegments; j++ {
		k := (j + 1) % islandSegments
		m.addFaceFacing(center, rings[0][k], rings[0][j], peakColor, up)
	}
	for i := 1; i < len(rings); i++ {
		col := islandRings[i].color
		for j := 0; j < islandSegments; j++ {
			k := (j + 1) % islandSegments
			m.addFaceFacing(rings[i-1][j], rings[i][k], rings[i][j], col, up)
			m.addFaceFacing(rings[i-1][j], rings[i-1][k], rings[i][k], col, up)
		}
	}

	for _, w := range windows {
		base := LandmarkDirection(w).Mul(landmarkRadius)
		base[1] = landmarkHeight(landmarkRadius)
		m.addLandmark(base, StageColors[w.Stage])
	}

	addWater(m)
	return m
}

// LandmarkDirection is the object-space direction of a stage landmark for
// the given window: the ground-plane direction that yawing by the window's
// middle turns toward the camera.
func LandmarkDirection(w rotation.Window) mgl64.Vec3 {
	mid := (w.Min + w.Max) / 2
	return groundPoint(cp.ForAngle(mid).Perp(), 0)
}

// groundPoint lifts a point of the XZ ground plane (cp X→X, cp Y→Z) to
// height y.
func groundPoint(p cp.Vector, y float64) mgl64.Vec3 {
	return mgl64.Vec3{p.X, y, p.Y}
}

// ringPoint is point i of n evenly spaced around a ground circle.
func ringPoint(i, n int, radius float64) cp.Vector {
	return cp.ForAngle(TwoPiSegment(i, n)).Mult(radius)
}

// TwoPiSegment returns the angle of segment i out of n.
func TwoPiSegment(i, n int) float64 {
	return rotation.TwoPi * float64(i) / float64(n)
}

func (m *Mesh) addFaceFacing(a, b, c int, col color.RGBA, hint mgl64.Vec3) {
	f := Face{A: a, B: b, C: c, Color: col}
	if m.Normal(f).Dot(hint) < 0 {
		f.B, f.C = f.C, f.B
	}
	m.Faces = append(m.Faces, f)
}

// addLandmark places a flag: a thin pole pyramid and a colored pennant.
func (m *Mesh) addLandmark(base mgl64.Vec3, col color.RGBA) {
	const (
		half   = 0.5
		height = 5
	)
	corners := [4]int{
		m.addVertex(base.Add(mgl64.Vec3{-half, 0, -half})),
		m.addVertex(base.Add(mgl64.Vec3{half, 0, -half})),
		m.addVertex(base.Add(mgl64.Vec3{half, 0, half})),
		m.addVertex(base.Add(mgl64.Vec3{-half, 0, half})),
	}
	apex := m.addVertex(base.Add(mgl64.Vec3{0, height, 0}))
	for i := range corners {
		a, b := corners[i], corners[(i+1)%4]
		mid := m.Vertices[a].Add(m.Vertices[b]).Mul(0.5)
		m.addFaceFacing(a, b, apex, poleColor, mid.Sub(base))
	}

	top := m.addVertex(base.Add(mgl64.Vec3{0, height - 0.2, 0}))
	low := m.addVertex(base.Add(mgl64.Vec3{0, height - 2.2, 0}))
	tip := m.addVertex(base.Add(mgl64.Vec3{2.6, height - 1.2, 0}))
	m.Faces = append(m.Faces, Face{A: top, B: low, C: tip, Color: col, Unlit: true})
}

func addWater(m *Mesh) {
	up := mgl64.Vec3{0, 1, 0}
	center := m.addVertex(mgl64.Vec3{0, -0.2, 0})
	edge := make([]int, 24)
	for j := range edge {
		edge[j] = m.addVertex(groundPoint(ringPoint(j, len(edge), waterRadius), -0.2))
	}
	for j := range edge {
		k := (j + 1) % len(edge)
		m.addFaceFacing(center, edge[k], edge[j], waterColor, up)
	}
}

// landmarkHeight interpolates the ring heights at radius r.
func landmarkHeight(r float64) float64 {
	prev := ring{radius: 0, height: 10}
	for _, cur := range islandRings {
		if r <= cur.radius {
			t := (r - prev.radius) / (cur.radius - prev.radius)
			return prev.height + t*(cur.height-prev.height)
		}
		prev = cur
	}
	return prev.height
}

// jitter is a deterministic value in [-1, 1] used to roughen the rings.
func jitter(a, b int) float64 {
	x := math.Sin(float64(a)*12.9898+float64(b)*78.233) * 43758.5453
	return 2*(x-math.Floor(x)) - 1
}
