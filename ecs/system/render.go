package system

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/scene"
)

// Vertices per DrawTriangles batch, kept under the uint16 index limit.
const maxBatchVertices = 3 * 20000

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// RenderSystem projects every Mesh+Transform entity through the first
// camera's lens and fills the triangles back to front.
type RenderSystem struct {
	Background color.Color

	camEntity ecs.Entity
	instances []scene.Instance
	tris      []scene.Triangle
	vertices  []ebiten.Vertex
	indices   []uint16
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{Background: color.RGBA{R: 0x0b, G: 0x10, B: 0x26, A: 0xff}}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.Background != nil {
		screen.Fill(r.Background)
	}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if e, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			r.camEntity = e
		}
	}
	lens := scene.DefaultLens()
	if cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok {
		lens = scene.Lens{FOV: cam.FOV, Near: cam.Near, Far: cam.Far}
	}

	r.instances = r.instances[:0]
	ecs.ForEach2(w, component.MeshComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, m *component.Mesh, t *component.Transform) {
		r.instances = append(r.instances, scene.Instance{
			Mesh:       m.Mesh,
			Placement:  Placement(t),
			Background: m.Background,
		})
	})

	b := screen.Bounds()
	r.tris = scene.BuildDrawList(r.tris[:0], r.instances, lens, float64(b.Dx()), float64(b.Dy()))
	r.drawTriangles(screen, float32(b.Min.X), float32(b.Min.Y))
}

func (r *RenderSystem) drawTriangles(screen *ebiten.Image, ox, oy float32) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, tri := range r.tris {
		if len(r.vertices)+3 > maxBatchVertices {
			r.flush(screen)
		}
		a := float32(tri.Color.A) / 0xff
		cr := float32(tri.Color.R) / 0xff * a
		cg := float32(tri.Color.G) / 0xff * a
		cb := float32(tri.Color.B) / 0xff * a
		base := uint16(len(r.vertices))
		for i := 0; i < 3; i++ {
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   ox + tri.X[i],
				DstY:   oy + tri.Y[i],
				SrcX:   1,
				SrcY:   1,
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: a,
			})
		}
		r.indices = append(r.indices, base, base+1, base+2)
	}
	r.flush(screen)
}

func (r *RenderSystem) flush(screen *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(r.vertices, r.indices, whiteSubImage, op)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

// Placement converts a Transform into a scene placement.
func Placement(t *component.Transform) scene.Placement {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	return scene.Placement{
		Position: mgl64.Vec3{t.X, t.Y, t.Z},
		Pitch:    t.Pitch,
		Yaw:      t.Yaw,
		Scale:    scale,
	}
}
