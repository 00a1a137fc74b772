// Package viewer runs one model viewing session: a scene, a camera the user orbits,
// a two-stage model load, and redraws only when something changed.
package viewer

import (
	"context"
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/assets"
	"model-viewer/internal/camera"
	"model-viewer/internal/config"
	"model-viewer/internal/logger"
	"model-viewer/internal/scene"
)

var (
	// ErrStarted is returned by Start on a session that was already started.
	ErrStarted = errors.New("viewer: session already started")
)

// Surface is the GPU render target the scene is drawn into.
type Surface interface {
	Render(s *scene.Scene, c *camera.Camera)
	Dispose()
}

// Host is the window the session lives in. All of its callbacks run on the render thread.
type Host interface {
	FrameRequester
	// Viewport returns the drawable size at the time of the call.
	Viewport() (width, height int)
	// NewSurface creates a transparent render target of the given size.
	NewSurface(width, height int) (Surface, error)
	// Attach shows the surface's output; Detach removes it.
	Attach(Surface)
	Detach(Surface)
	// Post runs fn on the render thread. Safe to call from any goroutine.
	Post(fn func())
	// OnPointer delivers pointer input every tick until the returned func is called.
	OnPointer(fn func(camera.Input)) (remove func())
}

// Session is one mounted viewer. Start builds everything and begins the model load;
// Stop tears it down. A session is started at most once.
type Session struct {
	cfg     config.Config
	host    Host
	fetcher assets.Fetcher
	decoder assets.Decoder
	log     *logger.Logger
	manager *assets.Manager

	scene    *scene.Scene
	camera   *camera.Camera
	controls *camera.OrbitControls
	surface  Surface
	sched    *Scheduler
	pipeline *assets.Pipeline
	live     *liveness

	removeChange  func()
	removePointer func()
	started       bool
	renders       int
}

// liveness is captured by every asynchronous load callback and checked before it
// touches the scene.
type liveness struct {
	stopped bool
}

func (l *liveness) alive() bool {
	return !l.stopped
}

// New returns an unstarted session.
func New(cfg config.Config, host Host, fetcher assets.Fetcher, decoder assets.Decoder, log *logger.Logger) *Session {
	return &Session{
		cfg:     cfg,
		host:    host,
		fetcher: fetcher,
		decoder: decoder,
		log:     log,
		manager: assets.NewLogManager(log),
	}
}

// Start creates scene, camera, lights and surface, attaches the surface and the orbit
// controls, and starts loading the model. An error means no surface could be created.
func (s *Session) Start(ctx context.Context) error {
	if s.started {
		return ErrStarted
	}
	s.started = true

	w, h := s.host.Viewport()
	cc := s.cfg.Camera
	scn := scene.New()
	cam := camera.NewPerspective(cc.FOV, w, h, cc.Near, cc.Far)
	cam.Position = rl.NewVector3(cc.Offset[0], cc.Offset[1], cc.Offset[2])
	cam.LookAt(rl.NewVector3(0, 0, 0))
	for _, l := range scene.DefaultRig() {
		_ = scn.AddLight(l)
	}

	surface, err := s.host.NewSurface(w, h)
	if err != nil {
		return fmt.Errorf("viewer: create surface: %w", err)
	}
	s.scene, s.camera, s.surface = scn, cam, surface
	s.host.Attach(surface)

	s.controls = camera.NewOrbitControls(cam, h, camera.Options{
		Damping:     cc.Damping,
		RotateSpeed: cc.RotateSpeed,
		ZoomSpeed:   cc.ZoomSpeed,
		PanSpeed:    cc.PanSpeed,
		MinDistance: cc.MinDistance,
		MaxDistance: cc.MaxDistance,
	})
	s.sched = NewScheduler(s.host, s.animate)
	s.removeChange = s.controls.OnChange(s.sched.RequestRender)
	s.removePointer = s.host.OnPointer(s.handlePointer)

	live := &liveness{}
	s.live = live
	s.pipeline = assets.NewPipeline(
		assets.PipelineConfig{
			Materials: s.cfg.Assets.Materials,
			Geometry:  s.cfg.Assets.Geometry,
			Scale:     s.cfg.Model.Scale,
		},
		assets.Loaders{
			Fetcher:  s.fetcher,
			Decoder:  s.decoder,
			Manager:  s.manager,
			Dispatch: s.host.Post,
		},
		live.alive,
		func(m *scene.Mesh) error {
			if err := scn.Add(m); err != nil {
				return err
			}
			s.sched.RequestRender()
			return nil
		},
	)
	s.pipeline.OnState = func(st assets.State) {
		if st == assets.Abandoned {
			s.log.Log("model load abandoned: session stopped")
		}
	}
	s.pipeline.Start(ctx)
	s.sched.RequestRender()
	return nil
}

// handlePointer feeds input to the controls. Damped motion only moves the camera in
// Update, so it needs a frame to start.
func (s *Session) handlePointer(in camera.Input) {
	s.controls.HandleInput(in)
	if s.controls.Pending() {
		s.sched.RequestRender()
	}
}

// animate is the scheduled step: advance the controls, then draw the current state.
func (s *Session) animate() {
	if !s.live.alive() {
		return
	}
	s.controls.Update()
	s.surface.Render(s.scene, s.camera)
	s.renders++
}

// Stop unsubscribes from the controls and pointer, detaches the surface, releases every
// mesh in the scene and the surface. A model load in flight is not cancelled; its
// callbacks find the session stopped and do nothing. Repeated calls do nothing.
func (s *Session) Stop() {
	if !s.started || s.live == nil || !s.live.alive() {
		return
	}
	s.live.stopped = true
	s.removeChange()
	s.removePointer()
	s.controls.Dispose()
	s.host.Detach(s.surface)
	s.scene.Dispose()
	s.surface.Dispose()
}

// RequestRender schedules a redraw on the next frame. Redraws requested before that frame coalesce.
func (s *Session) RequestRender() {
	if s.sched == nil || !s.live.alive() {
		return
	}
	s.sched.RequestRender()
}

// Scene returns the session scene (nil before Start).
func (s *Session) Scene() *scene.Scene { return s.scene }

// Camera returns the session camera (nil before Start).
func (s *Session) Camera() *camera.Camera { return s.camera }

// Controls returns the orbit controls (nil before Start).
func (s *Session) Controls() *camera.OrbitControls { return s.controls }

// LoadState returns the stage of the model load.
func (s *Session) LoadState() assets.State {
	if s.pipeline == nil {
		return assets.Idle
	}
	return s.pipeline.State()
}

// Renders returns how many times the scene has been drawn.
func (s *Session) Renders() int { return s.renders }

// Scheduled returns how many redraws have been scheduled.
func (s *Session) Scheduled() int {
	if s.sched == nil {
		return 0
	}
	return s.sched.Scheduled()
}
