package scene

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Instance is a mesh placed in the world.
type Instance struct {
	Mesh       *Mesh
	Placement  Placement
	Background bool
}

// Triangle is a projected, shaded face ready to be drawn.
type Triangle struct {
	X, Y       [3]float32
	Color      color.RGBA
	Depth      float64
	Background bool
}

var lightDir = mgl64.Vec3{1, 1, 1}.Normalize()

const ambient = 0.55

// Shade darkens col by how far normal n turns away from the key light.
func Shade(col color.RGBA, n mgl64.Vec3) color.RGBA {
	k := ambient + (1-ambient)*math.Max(0, n.Dot(lightDir))
	return color.RGBA{
		R: uint8(math.Min(255, float64(col.R)*k)),
		G: uint8(math.Min(255, float64(col.G)*k)),
		B: uint8(math.Min(255, float64(col.B)*k)),
		A: col.A,
	}
}

// BuildDrawList projects every face of every instance and appends the
// visible ones to dst, ordered back to front with background instances
// first. Faces with any vertex outside the lens range are dropped.
func BuildDrawList(dst []Triangle, instances []Instance, lens Lens, width, height float64) []Triangle {
	start := len(dst)
	pr := lens.Projector(width, height)
	var world []mgl64.Vec3
	for _, inst := range instances {
		if inst.Mesh == nil {
			continue
		}
		model := inst.Placement.Model()
		rot := inst.Placement.Rotation()
		world = world[:0]
		for _, v := range inst.Mesh.Vertices {
			world = append(world, mgl64.TransformCoordinate(v, model))
		}
		for _, f := range inst.Mesh.Faces {
			tri, ok := projectFace(inst, f, world, rot, pr)
			if ok {
				dst = append(dst, tri)
			}
		}
	}

	tris := dst[start:]
	sort.SliceStable(tris, func(i, j int) bool {
		if tris[i].Background != tris[j].Background {
			return tris[i].Background
		}
		return tris[i].Depth > tris[j].Depth
	})
	return dst
}

func projectFace(inst Instance, f Face, world []mgl64.Vec3, rot mgl64.Mat3, pr Projector) (Triangle, bool) {
	tri := Triangle{Background: inst.Background}
	idx := [3]int{f.A, f.B, f.C}
	depth := 0.0
	for k, i := range idx {
		sx, sy, d, ok := pr.Project(world[i])
		if !ok {
			return Triangle{}, false
		}
		tri.X[k] = float32(sx)
		tri.Y[k] = float32(sy)
		depth += d
	}
	tri.Depth = depth / 3

	tri.Color = f.Color
	if !f.Unlit {
		tri.Color = Shade(f.Color, rot.Mul3x1(inst.Mesh.Normal(f)))
	}
	return tri, true
}
