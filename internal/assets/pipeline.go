package assets

import (
	"context"

	"model-viewer/internal/scene"
)

// State is a stage of the two-step model load.
type State int

const (
	Idle State = iota
	MaterialsLoading
	MaterialsReady
	GeometryLoading
	Attached
	Failed
	Abandoned
)

var stateNames = [...]string{
	Idle:             "idle",
	MaterialsLoading: "materials-loading",
	MaterialsReady:   "materials-ready",
	GeometryLoading:  "geometry-loading",
	Attached:         "attached",
	Failed:           "failed",
	Abandoned:        "abandoned",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// PipelineConfig names the two files and how the loaded mesh is normalized.
type PipelineConfig struct {
	Materials string
	Geometry  string
	Scale     float32
}

// Pipeline loads materials, then geometry, normalizes the mesh and hands it to Attach.
// Alive is checked before every state change after Start; once it reports false the
// pipeline abandons the load and releases whatever it decoded instead of attaching it.
// All callbacks run on the render thread (see Dispatcher).
type Pipeline struct {
	cfg     PipelineConfig
	loaders Loaders
	alive   func() bool
	attach  func(*scene.Mesh) error
	state   State
	err     error

	// OnState, if set, observes every transition.
	OnState func(State)
}

// NewPipeline returns an idle pipeline. alive reports whether the owning session is
// still running; attach inserts the finished mesh and requests a redraw.
func NewPipeline(cfg PipelineConfig, l Loaders, alive func() bool, attach func(*scene.Mesh) error) *Pipeline {
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}
	return &Pipeline{cfg: cfg, loaders: l, alive: alive, attach: attach}
}

// State returns the current stage.
func (p *Pipeline) State() State {
	return p.state
}

// Err returns the error that moved the pipeline to Failed, if any.
func (p *Pipeline) Err() error {
	return p.err
}

// Start begins loading the material library. Calling it outside Idle does nothing.
func (p *Pipeline) Start(ctx context.Context) {
	if p.state != Idle {
		return
	}
	p.set(MaterialsLoading)
	NewMaterialLoader(p.loaders).Load(ctx, p.cfg.Materials, func(set *MaterialSet) {
		if !p.alive() {
			set.Dispose()
			p.set(Abandoned)
			return
		}
		p.set(MaterialsReady)
		p.set(GeometryLoading)
		set.NewGeometryLoader().Load(ctx, p.cfg.Geometry, p.onGeometry, func(err error) {
			set.Dispose()
			p.onError(err)
		})
	}, p.onError)
}

func (p *Pipeline) onGeometry(m *scene.Mesh) {
	if !p.alive() {
		m.Dispose()
		p.set(Abandoned)
		return
	}
	m.SetUniformScale(p.cfg.Scale)
	m.Center()
	if err := p.attach(m); err != nil {
		m.Dispose()
		p.onError(err)
		return
	}
	p.set(Attached)
}

func (p *Pipeline) onError(err error) {
	if !p.alive() {
		p.set(Abandoned)
		return
	}
	p.err = err
	p.set(Failed)
}

func (p *Pipeline) set(s State) {
	p.state = s
	if p.OnState != nil {
		p.OnState(s)
	}
}
