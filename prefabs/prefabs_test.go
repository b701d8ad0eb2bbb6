package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/folio/rotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func useDir(t *testing.T, d string) {
	t.Helper()
	prev := Dir()
	SetDir(d)
	t.Cleanup(func() { SetDir(prev) })
}

func TestEmbeddedIslandSpec(t *testing.T) {
	useDir(t, t.TempDir())

	spec, err := LoadIslandSpec()
	require.NoError(t, err)

	cfg, err := spec.RotationConfig()
	require.NoError(t, err)
	assert.Equal(t, rotation.DefaultConfig(), cfg)

	assert.Equal(t, 0.9, spec.Placement(600).Scale)
	assert.Equal(t, 1.0, spec.Placement(1280).Scale)
	assert.Equal(t, 5.5, spec.Placement(1280).Yaw)
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)

	override := []byte(`
name: island
rotation:
  damping: 0.9
stages:
  - stage: 2
    min: 1.0
    max: 2.0
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "island.yaml"), override, 0o644))

	spec, err := LoadIslandSpec()
	require.NoError(t, err)
	cfg, err := spec.RotationConfig()
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Damping)
	assert.Equal(t, 0.01, cfg.DragSensitivity)
	assert.Equal(t, []rotation.Window{{Stage: rotation.Stage2, Min: 1, Max: 2}}, cfg.Windows)
	assert.Equal(t, 5.5, spec.Placement(1280).Yaw, "missing transform falls back to the default placement")
}

func TestRotationConfigRejectsOverlap(t *testing.T) {
	spec := &IslandSpec{Stages: []StageWindowSpec{
		{Stage: 1, Min: 1, Max: 2},
		{Stage: 2, Min: 1.5, Max: 2.5},
	}}
	_, err := spec.RotationConfig()
	assert.ErrorIs(t, err, rotation.ErrOverlappingWindows)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)

	_, err := LoadSpec[SkySpec]("missing.yaml")
	assert.ErrorContains(t, err, "prefabs: load missing.yaml")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "sky.yaml"), []byte("spin_rate: [1"), 0o644))
	_, err = LoadSkySpec()
	assert.ErrorContains(t, err, "prefabs: unmarshal sky.yaml")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "stages.yaml"), []byte("cards:\n  - stage: 7\n"), 0o644))
	_, err = LoadStagesSpec()
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "island.yaml"), []byte("\n  \n"), 0o644))
	_, err = LoadIslandSpec()
	assert.ErrorIs(t, err, ErrEmptySpec)
}

func TestEmbeddedSpecs(t *testing.T) {
	useDir(t, t.TempDir())

	sky, err := LoadSkySpec()
	require.NoError(t, err)
	assert.Equal(t, 0.25, sky.SpinRate)
	assert.Equal(t, 100.0, sky.Transform.Placement().Position.Y())

	cam, err := LoadCameraSpec()
	require.NoError(t, err)
	assert.InDelta(t, 75*3.141592653589793/180, cam.Lens().FOV, 1e-12)

	stages, err := LoadStagesSpec()
	require.NoError(t, err)
	assert.Len(t, stages.Cards, 4)

	script, err := LoadScript(stages.Script)
	require.NoError(t, err)
	assert.Contains(t, string(script), "card :=")
}

func TestWatcherDebouncesAndCloses(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := newWatcher(50*time.Millisecond, dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "island.yaml")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("name: island\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for island.yaml")
	}

	select {
	case got := <-w.Events:
		t.Fatalf("unexpected second event %q", got)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, open := <-w.Events
	assert.False(t, open)
}

func TestWatcherReportsWriteAfterTruncate(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	useDir(t, dir)
	path := filepath.Join(dir, "island.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: island\n"), 0o644))

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("rotation:\n  damping: 0.5\n"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for island.yaml")
	}

	spec, err := LoadIslandSpec()
	require.NoError(t, err)
	cfg, err := spec.RotationConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Damping)

	select {
	case got := <-w.Events:
		t.Fatalf("unexpected second event %q", got)
	case <-time.After(300 * time.Millisecond):
	}
}
