// Package scene builds the procedural island and sky geometry and projects
// it onto the screen.
package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Face is a flat-colored triangle indexing into Mesh.Vertices.
type Face struct {
	A, B, C int
	Color   color.RGBA
	// Unlit faces skip directional shading.
	Unlit bool
}

// Mesh is an indexed triangle list in object space.
type Mesh struct {
	Vertices []mgl64.Vec3
	Faces    []Face
}

func (m *Mesh) addVertex(v mgl64.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// Normal returns the unit normal of face f, or the zero vector for a
// degenerate face.
func (m *Mesh) Normal(f Face) mgl64.Vec3 {
	a, b, c := m.Vertices[f.A], m.Vertices[f.B], m.Vertices[f.C]
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return n
	}
	return n.Normalize()
}
