package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	skyRadius = 420
	starCount = 240
	starSize  = 1.6
)

// SkyMesh builds the star field of the sky dome: small unlit triangles
// spread over the upper part of a sphere by a golden-angle spiral.
func SkyMesh() *Mesh {
	m := &Mesh{}
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := 0; i < starCount; i++ {
		y := 1 - float64(i)/float64(starCount-1)*1.3
		r := math.Sqrt(math.Max(0, 1-y*y))
		dir := groundPoint(cp.ForAngle(golden*float64(i)).Mult(r), y)
		m.addStar(dir.Mul(skyRadius), starShade(i))
	}
	return m
}

func (m *Mesh) addStar(p mgl64.Vec3, col color.RGBA) {
	n := p.Mul(-1).Normalize()
	// Any vector not parallel to n spans the star's plane.
	ref := mgl64.Vec3{0, 1, 0}
	if math.Abs(n.Y()) > 0.9 {
		ref = mgl64.Vec3{1, 0, 0}
	}
	u := n.Cross(ref).Normalize().Mul(starSize)
	v := n.Cross(u).Normalize().Mul(starSize)

	a := m.addVertex(p.Add(u))
	b := m.addVertex(p.Sub(u).Add(v))
	c := m.addVertex(p.Sub(u).Sub(v))
	m.Faces = append(m.Faces, Face{A: a, B: b, C: c, Color: col, Unlit: true})
}

func starShade(i int) color.RGBA {
	l := uint8(170 + int(85*(0.5+0.5*jitter(i, 7))))
	return color.RGBA{R: l, G: l, B: 0xff, A: 0xff}
}
