package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/ecs/entity"
	"github.com/milk9111/folio/ecs/system"
	"github.com/milk9111/folio/input"
	"github.com/milk9111/folio/logger"
	"github.com/milk9111/folio/prefabs"
	"github.com/milk9111/folio/rotation"
	"github.com/milk9111/folio/scene"
	"github.com/milk9111/folio/stagescript"
	"go.uber.org/zap"
)

type gameOptions struct {
	Width  int
	Height int
	Debug  bool
	Watch  bool
}

type Game struct {
	frames int
	debug  bool
	width  int
	height int

	log       *zap.Logger
	world     *ecs.World
	scheduler *ecs.Scheduler
	bus       *input.Bus
	detach    func()

	input  *system.InputSystem
	popups *system.PopupSystem
	ui     *PopupUI

	island     ecs.Entity
	controller *rotation.Controller
	islandSpec *prefabs.IslandSpec
	sky        ecs.Entity
	camera     ecs.Entity
	popup      ecs.Entity
	scriptPath string

	watcher *prefabs.Watcher
}

func NewGame(opts gameOptions, log *zap.Logger) (*Game, error) {
	g, err := newGame(opts, log)
	if err != nil {
		return nil, err
	}
	g.ui = NewPopupUI(logger.Component(log, "popup_ui"))
	g.input.Captured = g.ui.Contains

	if opts.Watch {
		w, err := prefabs.NewWatcher(watchDirs(prefabs.Dir())...)
		if err != nil {
			log.Warn("prefab hot reload disabled", zap.String("dir", prefabs.Dir()), zap.Error(err))
		} else {
			g.watcher = w
			log.Info("watching prefabs", zap.String("dir", prefabs.Dir()))
		}
	}

	log.Info("scene ready",
		zap.Stringer("island", g.island),
		zap.Int("width", g.width),
		zap.Float64("scale", g.islandSpec.Placement(g.width).Scale),
	)
	return g, nil
}

// newGame builds the world, its entities and the system schedule without
// the popup UI or the prefab watcher.
func newGame(opts gameOptions, log *zap.Logger) (*Game, error) {
	if opts.Width <= 0 {
		opts.Width = common.BaseWidth
	}
	if opts.Height <= 0 {
		opts.Height = common.BaseHeight
	}
	g := &Game{
		debug:  opts.Debug,
		width:  opts.Width,
		height: opts.Height,
		log:    log,
		world:  ecs.NewWorld(),
		bus:    input.NewBus(),
	}

	var err error
	g.islandSpec, err = prefabs.LoadIslandSpec()
	if err != nil {
		return nil, err
	}
	if g.island, g.controller, err = entity.NewIsland(g.world, g.width); err != nil {
		return nil, err
	}
	if g.sky, err = entity.NewSky(g.world); err != nil {
		return nil, err
	}
	if g.camera, err = entity.NewCamera(g.world); err != nil {
		return nil, err
	}
	var script *stagescript.Runtime
	if g.popup, script, err = entity.NewStagePopup(g.world); err != nil {
		return nil, err
	}
	if stages, err := prefabs.LoadStagesSpec(); err == nil {
		g.scriptPath = stages.Script
	}

	g.input = system.NewInputSystem(g.bus)
	g.input.SetViewportWidth(float64(g.width))
	g.popups = system.NewPopupSystem(logger.Component(log, "popup"), script)

	g.scheduler = ecs.NewScheduler(
		g.input,
		system.NewRotationSystem(logger.Component(log, "rotation")),
		system.NewSkySystem(1/float64(ebiten.DefaultTPS)),
		g.popups,
		system.NewCursorSystem(nil),
		system.NewRenderSystem(),
	)
	g.detach = g.controller.Attach(g.bus)
	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	g.drainWatcher()

	g.scheduler.Update(g.world)

	if p, ok := ecs.Get(g.world, g.popup, component.StagePopupComponent.Kind()); ok {
		g.ui.Sync(p)
	}
	g.ui.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)
	g.ui.Draw(screen)

	if !g.debug {
		return
	}
	yaw := 0.0
	if t, ok := ecs.Get(g.world, g.island, component.TransformComponent.Kind()); ok {
		yaw = rotation.Normalize(t.Yaw)
	}
	st := g.controller.State()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.2f\nyaw: %.3f\nvelocity: %.4f\nrotating: %t\nstage: %s",
		ebiten.ActualFPS(), yaw, st.AngularVelocity, st.Dragging, g.controller.Stage(),
	))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.input.SetViewportWidth(float64(outsideWidth))
		entity.ResizeIsland(g.world, g.island, g.islandSpec, outsideWidth)
	}
	return outsideWidth, outsideHeight
}

// Close releases input subscriptions and the prefab watcher.
func (g *Game) Close() {
	if g.detach != nil {
		g.detach()
		g.detach = nil
	}
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("close prefab watcher", zap.Error(err))
		}
		g.watcher = nil
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("prefab watcher error", zap.Error(err))
		default:
			return
		}
	}
}

// watchDirs returns dir and its scripts directory when present. fsnotify
// does not recurse.
func watchDirs(dir string) []string {
	dirs := []string{dir}
	scripts := filepath.Join(dir, "scripts")
	if info, err := os.Stat(scripts); err == nil && info.IsDir() {
		dirs = append(dirs, scripts)
	}
	return dirs
}

type prefabChange int

const (
	changeNone prefabChange = iota
	changeIsland
	changeSky
	changeCamera
	changeStages
	changeScript
)

func classifyChange(path string) prefabChange {
	if filepath.Ext(path) == ".tengo" {
		return changeScript
	}
	switch filepath.Base(path) {
	case "island.yaml":
		return changeIsland
	case "sky.yaml":
		return changeSky
	case "camera.yaml":
		return changeCamera
	case "stages.yaml":
		return changeStages
	default:
		return changeNone
	}
}

// reload re-reads one changed prefab. Failures keep the running values.
// Successful reloads push EventPrefabsReloaded ahead of the next tick so the
// popup system rebuilds the visible card.
func (g *Game) reload(path string) {
	log := g.log.With(zap.String("path", path))
	var err error
	switch classifyChange(path) {
	case changeIsland:
		err = g.reloadIsland()
	case changeSky:
		err = g.reloadSky()
	case changeCamera:
		err = g.reloadCamera()
	case changeStages:
		err = g.reloadStages()
	case changeScript:
		err = g.reloadScript()
	default:
		return
	}
	if err != nil {
		log.Warn("prefab reload failed", zap.Error(err))
		return
	}
	g.world.Events().Push(ecs.Event{Type: ecs.EventPrefabsReloaded, Data: path})
	log.Info("prefab reloaded")
}

func (g *Game) reloadIsland() error {
	spec, err := prefabs.LoadIslandSpec()
	if err != nil {
		return err
	}
	cfg, err := spec.RotationConfig()
	if err != nil {
		return err
	}
	g.islandSpec = spec
	g.controller.SetConfig(cfg)
	entity.ResizeIsland(g.world, g.island, spec, g.width)
	if m, ok := ecs.Get(g.world, g.island, component.MeshComponent.Kind()); ok {
		m.Mesh = scene.IslandMesh(cfg.Windows)
	}
	return nil
}

func (g *Game) reloadSky() error {
	spec, err := prefabs.LoadSkySpec()
	if err != nil {
		return err
	}
	if sp, ok := ecs.Get(g.world, g.sky, component.SpinnerComponent.Kind()); ok {
		sp.Spin.Rate = spec.SpinRate
	}
	return nil
}

func (g *Game) reloadCamera() error {
	spec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return err
	}
	if cam, ok := ecs.Get(g.world, g.camera, component.CameraComponent.Kind()); ok {
		lens := spec.Lens()
		cam.FOV, cam.Near, cam.Far = lens.FOV, lens.Near, lens.Far
	}
	return nil
}

func (g *Game) reloadStages() error {
	spec, err := prefabs.LoadStagesSpec()
	if err != nil {
		return err
	}
	if p, ok := ecs.Get(g.world, g.popup, component.StagePopupComponent.Kind()); ok {
		p.Cards = entity.StageCards(spec)
	}
	if spec.Script != g.scriptPath {
		g.scriptPath = spec.Script
		return g.reloadScript()
	}
	return nil
}

func (g *Game) reloadScript() error {
	if g.scriptPath == "" {
		g.popups.SetScript(nil)
		return nil
	}
	rt, err := entity.CompileStageScript(g.scriptPath)
	if err != nil {
		return err
	}
	g.popups.SetScript(rt)
	return nil
}
