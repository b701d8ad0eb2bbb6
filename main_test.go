package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/prefabs"
	"github.com/milk9111/folio/rotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerConfigFromFlags(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantLevel  string
		wantFormat string
		wantDev    bool
	}{
		{"defaults", nil, "info", "json", false},
		{"debug", []string{"--debug"}, "debug", "console", true},
		{"debug overrides", []string{"--debug", "--log-level", "warn", "--log-format", "json"}, "warn", "json", true},
		{"level only", []string{"--log-level", "error"}, "error", "json", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newRootCmd()
			require.NoError(t, cmd.ParseFlags(tc.args))

			flags := &rootFlags{}
			flags.debug, _ = cmd.Flags().GetBool("debug")
			flags.logLevel, _ = cmd.Flags().GetString("log-level")
			flags.logFormat, _ = cmd.Flags().GetString("log-format")

			cfg := loggerConfig(flags)
			assert.Equal(t, tc.wantLevel, cfg.Level)
			assert.Equal(t, tc.wantFormat, cfg.Format)
			assert.Equal(t, tc.wantDev, cfg.Development)
		})
	}
}

func TestRootFlagDefaults(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))
	dir, err := cmd.Flags().GetString("prefabs")
	require.NoError(t, err)
	assert.Equal(t, "prefabs", dir)
	w, _ := cmd.Flags().GetInt("width")
	h, _ := cmd.Flags().GetInt("height")
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}

func TestClassifyChange(t *testing.T) {
	tests := map[string]prefabChange{
		"prefabs/island.yaml":          changeIsland,
		"/tmp/x/sky.yaml":              changeSky,
		"camera.yaml":                  changeCamera,
		"prefabs/stages.yaml":          changeStages,
		"prefabs/scripts/stages.tengo": changeScript,
		"prefabs/other.yaml":           changeNone,
	}
	for path, want := range tests {
		assert.Equal(t, want, classifyChange(path), path)
	}
}

func TestWatchDirs(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, []string{dir}, watchDirs(dir))

	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
	assert.Equal(t, []string{dir, filepath.Join(dir, "scripts")}, watchDirs(dir))
}

func newTestGame(t *testing.T) (*Game, string, *observer.ObservedLogs) {
	t.Helper()
	dir := t.TempDir()
	prev := prefabs.Dir()
	prefabs.SetDir(dir)
	t.Cleanup(func() { prefabs.SetDir(prev) })

	core, logs := observer.New(zap.InfoLevel)
	g, err := newGame(gameOptions{Width: 1280, Height: 720}, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g, dir, logs
}

func TestReloadIslandKeepsMotionState(t *testing.T) {
	g, dir, logs := newTestGame(t)
	path := filepath.Join(dir, "island.yaml")

	g.controller.PointerDown(100)
	g.controller.PointerMove(164, float64(g.width))
	tr, ok := ecs.Get(g.world, g.island, component.TransformComponent.Kind())
	require.True(t, ok)
	state, yaw := g.controller.State(), tr.Yaw
	require.NotZero(t, state.AngularVelocity)

	for _, bad := range []string{"rotation:\n  damping: 1.5\n", "", "rotation: [1"} {
		require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))
		g.reload(path)
		assert.Equal(t, rotation.DefaultConfig(), g.controller.Config(), "bad island.yaml %q", bad)
	}
	assert.Equal(t, 3, logs.FilterMessage("prefab reload failed").Len())
	assert.Empty(t, g.world.Events().Peek(ecs.EventPrefabsReloaded))

	require.NoError(t, os.WriteFile(path, []byte("rotation:\n  damping: 0.5\n"), 0o644))
	g.reload(path)

	assert.Equal(t, 0.5, g.controller.Config().Damping)
	assert.Equal(t, state, g.controller.State())
	assert.Equal(t, yaw, tr.Yaw)
	assert.True(t, g.controller.Rotating())
	assert.Equal(t, 1, logs.FilterMessage("prefab reloaded").Len())
	assert.Len(t, g.world.Events().Peek(ecs.EventPrefabsReloaded), 1)
}

func TestReloadStagesRefreshesVisibleCard(t *testing.T) {
	g, dir, logs := newTestGame(t)

	g.world.Events().Push(ecs.Event{Type: ecs.EventStageChanged, Data: ecs.StageChanged{Entity: g.island, Stage: 2}})
	g.popups.Update(g.world)
	p, ok := ecs.Get(g.world, g.popup, component.StagePopupComponent.Kind())
	require.True(t, ok)
	require.True(t, p.Visible)
	ecs.NewScheduler().Update(g.world)

	path := filepath.Join(dir, "stages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: stages
cards:
  - stage: 2
    title: Harbor log
    body: Updated.
`), 0o644))
	g.reload(path)
	g.popups.Update(g.world)

	assert.True(t, p.Visible)
	assert.Equal(t, component.StageCard{Title: "Harbor log", Body: "Updated."}, p.Card)
	assert.Empty(t, g.scriptPath)
	assert.Equal(t, 1, logs.FilterMessage("prefab reloaded").Len())
}

func TestReloadScriptFailureKeepsCard(t *testing.T) {
	g, dir, logs := newTestGame(t)
	require.NotEmpty(t, g.scriptPath)

	scripts := filepath.Join(dir, "scripts")
	require.NoError(t, os.MkdirAll(scripts, 0o755))
	path := filepath.Join(scripts, filepath.Base(g.scriptPath))
	require.NoError(t, os.WriteFile(path, []byte("card := func(stage, c) {"), 0o644))

	g.reload(path)
	assert.Equal(t, 1, logs.FilterMessage("prefab reload failed").Len())
	assert.Empty(t, g.world.Events().Peek(ecs.EventPrefabsReloaded))
}
