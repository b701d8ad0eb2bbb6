package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/folio/rotation"
	"github.com/milk9111/folio/scene"
	"gopkg.in/yaml.v3"
)

// ErrEmptySpec is returned for a prefab file with no content, which is
// what an editor leaves behind between truncating and rewriting it.
var ErrEmptySpec = errors.New("empty spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return zero, fmt.Errorf("prefabs: %s: %w", filename, ErrEmptySpec)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Pitch float64 `yaml:"pitch"`
	Yaw   float64 `yaml:"yaw"`
	Scale float64 `yaml:"scale"`
}

func (t TransformSpec) Placement() scene.Placement {
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

type RotationSpec struct {
	DragSensitivity float64 `yaml:"drag_sensitivity"`
	KeyNudge        float64 `yaml:"key_nudge"`
	KeyVelocity     float64 `yaml:"key_velocity"`
	Damping         float64 `yaml:"damping"`
	RestEpsilon     float64 `yaml:"rest_epsilon"`
}

type StageWindowSpec struct {
	Stage int     `yaml:"stage"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

type IslandSpec struct {
	Name        string            `yaml:"name"`
	Transform   TransformSpec     `yaml:"transform"`
	NarrowWidth int               `yaml:"narrow_width"`
	NarrowScale float64           `yaml:"narrow_scale"`
	Rotation    RotationSpec      `yaml:"rotation"`
	Stages      []StageWindowSpec `yaml:"stages"`
}

func LoadIslandSpec() (*IslandSpec, error) {
	spec, err := LoadSpec[IslandSpec]("island.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Placement returns the island's transform for a window of the given width.
func (s *IslandSpec) Placement(screenWidth int) scene.Placement {
	if s.Transform == (TransformSpec{}) {
		return scene.IslandPlacement(screenWidth)
	}
	p := s.Transform.Placement()
	if s.NarrowScale > 0 && screenWidth < s.NarrowWidth {
		p.Scale *= s.NarrowScale
	}
	return p
}

// RotationConfig converts the spec into a validated controller config.
// Tuning values left at zero take the defaults; an empty stage list keeps
// the default windows.
func (s *IslandSpec) RotationConfig() (rotation.Config, error) {
	cfg := rotation.DefaultConfig()
	r := s.Rotation
	if r.DragSensitivity != 0 {
		cfg.DragSensitivity = r.DragSensitivity
	}
	if r.KeyNudge != 0 {
		cfg.KeyNudge = r.KeyNudge
	}
	if r.KeyVelocity != 0 {
		cfg.KeyVelocity = r.KeyVelocity
	}
	if r.Damping != 0 {
		cfg.Damping = r.Damping
	}
	if r.RestEpsilon != 0 {
		cfg.RestEpsilon = r.RestEpsilon
	}
	if len(s.Stages) > 0 {
		cfg.Windows = make([]rotation.Window, 0, len(s.Stages))
		for _, w := range s.Stages {
			cfg.Windows = append(cfg.Windows, rotation.Window{
				Stage: rotation.Stage(w.Stage),
				Min:   w.Min,
				Max:   w.Max,
			})
		}
	}
	if err := cfg.Validate(); err != nil {
		return rotation.Config{}, fmt.Errorf("prefabs: island.yaml: %w", err)
	}
	return cfg, nil
}

type SkySpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	SpinRate  float64       `yaml:"spin_rate"`
}

func LoadSkySpec() (*SkySpec, error) {
	spec, err := LoadSpec[SkySpec]("sky.yaml")
	if err != nil {
		return nil, err
	}
	if spec.SpinRate == 0 {
		spec.SpinRate = rotation.DefaultSpinRate
	}
	return &spec, nil
}

type CameraSpec struct {
	Name       string  `yaml:"name"`
	FOVDegrees float64 `yaml:"fov_degrees"`
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Lens converts the spec into a projection lens, filling unset fields from
// the default lens.
func (s *CameraSpec) Lens() scene.Lens {
	lens := scene.DefaultLens()
	if s.FOVDegrees > 0 {
		lens.FOV = s.FOVDegrees * math.Pi / 180
	}
	if s.Near > 0 {
		lens.Near = s.Near
	}
	if s.Far > s.Near && s.Far > 0 {
		lens.Far = s.Far
	}
	return lens
}

type StageCardSpec struct {
	Stage int    `yaml:"stage"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Link  string `yaml:"link"`
}

type StagesSpec struct {
	Name   string          `yaml:"name"`
	Script string          `yaml:"script"`
	Cards  []StageCardSpec `yaml:"cards"`
}

func LoadStagesSpec() (*StagesSpec, error) {
	spec, err := LoadSpec[StagesSpec]("stages.yaml")
	if err != nil {
		return nil, err
	}
	for _, c := range spec.Cards {
		if c.Stage < int(rotation.Stage1) || c.Stage > int(rotation.Stage4) {
			return nil, fmt.Errorf("prefabs: stages.yaml: card for unknown stage %d", c.Stage)
		}
	}
	return &spec, nil
}
