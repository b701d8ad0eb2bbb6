package component

import "github.com/milk9111/folio/scene"

// Mesh is drawable geometry in object space.
type Mesh struct {
	Mesh *scene.Mesh
	// Background meshes are drawn before everything else and ignore depth.
	Background bool
}

var MeshComponent = NewComponent[Mesh]()
