package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Placement is an object's world transform. Angles are radians and follow
// the usual right-handed convention: positive yaw turns +X toward -Z.
type Placement struct {
	Position mgl64.Vec3
	Pitch    float64
	Yaw      float64
	Scale    float64
}

// Model returns the object-to-world matrix: scale, yaw, pitch, then
// translate.
func (p Placement) Model() mgl64.Mat4 {
	s := p.Scale
	if s == 0 {
		s = 1
	}
	return mgl64.Translate3D(p.Position.Elem()).
		Mul4(mgl64.HomogRotate3DX(p.Pitch)).
		Mul4(mgl64.HomogRotate3DY(p.Yaw)).
		Mul4(mgl64.Scale3D(s, s, s))
}

// Rotation returns the rotation part of the transform, for directions.
func (p Placement) Rotation() mgl64.Mat3 {
	return mgl64.Rotate3DX(p.Pitch).Mul3(mgl64.Rotate3DY(p.Yaw))
}

// Apply maps an object-space point into world space.
func (p Placement) Apply(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(v, p.Model())
}

// ApplyDir rotates a direction without scaling or translating it.
func (p Placement) ApplyDir(v mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation().Mul3x1(v)
}

// Lens is a pinhole camera at the origin looking down -Z.
type Lens struct {
	FOV  float64 // vertical field of view, radians
	Near float64
	Far  float64
}

// DefaultLens is a 75° lens clipping at 0.1 and 1000.
func DefaultLens() Lens {
	return Lens{FOV: 75 * math.Pi / 180, Near: 0.1, Far: 1000}
}

// Projector maps world-space points onto one viewport through a lens.
type Projector struct {
	lens          Lens
	view          mgl64.Mat4
	projection    mgl64.Mat4
	width, height int
}

// Projector builds the perspective matrix for a width×height viewport.
func (l Lens) Projector(width, height float64) Projector {
	aspect := 1.0
	if height > 0 {
		aspect = width / height
	}
	return Projector{
		lens:       l,
		view:       mgl64.Ident4(),
		projection: mgl64.Perspective(l.FOV, aspect, l.Near, l.Far),
		width:      int(width),
		height:     int(height),
	}
}

// Project returns screen coordinates with y growing downward. depth is the
// distance along the view axis; ok is false when the point is outside the
// near/far range.
func (pr Projector) Project(v mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	depth = -v.Z()
	if depth < pr.lens.Near || depth > pr.lens.Far {
		return 0, 0, depth, false
	}
	win := mgl64.Project(v, pr.view, pr.projection, 0, 0, pr.width, pr.height)
	return win.X(), float64(pr.height) - win.Y(), depth, true
}

// Project is shorthand for l.Projector(width, height).Project(v).
func (l Lens) Project(v mgl64.Vec3, width, height float64) (sx, sy, depth float64, ok bool) {
	return l.Projector(width, height).Project(v)
}
