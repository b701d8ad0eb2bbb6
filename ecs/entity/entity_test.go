package entity

import (
	"testing"

	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/prefabs"
	"github.com/milk9111/folio/rotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIslandFromEmbeddedPrefab(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		wantScale float64
	}{
		{"desktop", 1280, 1},
		{"narrow", 500, 0.9},
		{"boundary", 768, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			island, c, err := NewIsland(w, tc.width)
			require.NoError(t, err)
			require.NotNil(t, c)

			tr, ok := ecs.Get(w, island, component.TransformComponent.Kind())
			require.True(t, ok)
			assert.Equal(t, 5.5, tr.Yaw)
			assert.Equal(t, 0.1, tr.Pitch)
			assert.Equal(t, -40.0, tr.Z)
			assert.InDelta(t, tc.wantScale, tr.Scale, 1e-12)

			assert.True(t, ecs.Has(w, island, component.IslandTagComponent.Kind()))
			assert.True(t, ecs.Has(w, island, component.InteractionComponent.Kind()))
			mesh, ok := ecs.Get(w, island, component.MeshComponent.Kind())
			require.True(t, ok)
			assert.NotEmpty(t, mesh.Mesh.Faces)
			assert.Equal(t, rotation.DefaultWindows(), c.Config().Windows)

			c.KeyDown(rotation.DirLeft)
			assert.Greater(t, tr.Yaw, 5.5, "controller drives the entity transform")
		})
	}
}

func TestResizeIsland(t *testing.T) {
	w := ecs.NewWorld()
	island, _, err := NewIsland(w, 1280)
	require.NoError(t, err)
	spec, err := prefabs.LoadIslandSpec()
	require.NoError(t, err)

	ResizeIsland(w, island, spec, 400)
	tr, _ := ecs.Get(w, island, component.TransformComponent.Kind())
	assert.InDelta(t, 0.9, tr.Scale, 1e-12)

	ResizeIsland(w, island, spec, 1024)
	assert.InDelta(t, 1.0, tr.Scale, 1e-12)
}

func TestNewSkyAndCamera(t *testing.T) {
	w := ecs.NewWorld()
	sky, err := NewSky(w)
	require.NoError(t, err)
	tr, ok := ecs.Get(w, sky, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 100.0, tr.Y)
	sp, ok := ecs.Get(w, sky, component.SpinnerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, rotation.DefaultSpinRate, sp.Spin.Rate)
	mesh, _ := ecs.Get(w, sky, component.MeshComponent.Kind())
	assert.True(t, mesh.Background)

	cam, err := NewCamera(w)
	require.NoError(t, err)
	c, ok := ecs.Get(w, cam, component.CameraComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, 75*3.141592653589793/180, c.FOV, 1e-12)
	assert.Equal(t, 0.1, c.Near)
	assert.Equal(t, 1000.0, c.Far)
}

func TestNewStagePopup(t *testing.T) {
	w := ecs.NewWorld()
	popup, script, err := NewStagePopup(w)
	require.NoError(t, err)
	require.NotNil(t, script)

	p, ok := ecs.Get(w, popup, component.StagePopupComponent.Kind())
	require.True(t, ok)
	assert.False(t, p.Visible)
	assert.Len(t, p.Cards, 4)
	assert.Equal(t, "https://github.com/P-25", p.Cards[1].Link)

	card, err := script.Card(4, p.Cards[4])
	require.NoError(t, err)
	assert.Equal(t, "LOOKOUT", card.Title)
}

func TestCompileStageScriptMissing(t *testing.T) {
	_, err := CompileStageScript("nope.tengo")
	assert.Error(t, err)
}
