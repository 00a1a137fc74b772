// Package graphics is the raylib side of the viewer: the window that hosts a session,
// the render texture it draws into, the lit shader, and the OBJ/MTL decoder.
// Everything here runs on the thread that opened the window.
package graphics

import (
	"context"
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/camera"
	"model-viewer/internal/config"
	"model-viewer/internal/viewer"
)

var (
	// ErrNoContext is returned when raylib could not create a window or render target.
	ErrNoContext = errors.New("graphics: no rendering context")
	// ErrShader is returned when the lit shader fails to compile.
	ErrShader = errors.New("graphics: lit shader failed to compile")
)

const postQueueSize = 64

// Window is a raylib window that hosts one viewer session. It runs requested frames
// once per display refresh and the loaders' posted completions before them.
type Window struct {
	cfg      config.Window
	lighting *Lighting
	frames   []func()
	posts    chan func()
	pointers map[int]func(camera.Input)
	nextID   int
	attached *Surface
}

// Open creates the transparent window and compiles the lit shader.
func Open(cfg config.Window) (*Window, error) {
	rl.SetConfigFlags(rl.FlagWindowTransparent | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	if !rl.IsWindowReady() {
		return nil, ErrNoContext
	}
	rl.SetTargetFPS(int32(cfg.FPS))

	lighting, err := NewLighting()
	if err != nil {
		rl.CloseWindow()
		return nil, err
	}
	return &Window{
		cfg:      cfg,
		lighting: lighting,
		posts:    make(chan func(), postQueueSize),
		pointers: make(map[int]func(camera.Input)),
	}, nil
}

// Lighting returns the lit shader shared by surfaces and decoded models.
func (w *Window) Lighting() *Lighting {
	return w.lighting
}

// Close unloads the shader and closes the window.
func (w *Window) Close() {
	w.lighting.Unload()
	rl.CloseWindow()
}

// RequestFrame queues fn for the next tick.
func (w *Window) RequestFrame(fn func()) {
	w.frames = append(w.frames, fn)
}

// Post queues fn to run on the render thread. It blocks while the queue is full.
func (w *Window) Post(fn func()) {
	w.posts <- fn
}

// Viewport returns the current drawable size.
func (w *Window) Viewport() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// NewSurface creates a render texture of the given size.
func (w *Window) NewSurface(width, height int) (viewer.Surface, error) {
	s, err := NewSurface(width, height, w.lighting)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Attach makes s the surface presented each tick.
func (w *Window) Attach(s viewer.Surface) {
	if rs, ok := s.(*Surface); ok {
		w.attached = rs
	}
}

// Detach stops presenting s.
func (w *Window) Detach(s viewer.Surface) {
	if rs, ok := s.(*Surface); ok && rs == w.attached {
		w.attached = nil
	}
}

// OnPointer registers fn for mouse input. The returned func unregisters it.
func (w *Window) OnPointer(fn func(camera.Input)) func() {
	id := w.nextID
	w.nextID++
	w.pointers[id] = fn
	return func() { delete(w.pointers, id) }
}

// Run drives the window until it is closed or ctx is done. Each tick it runs posted
// completions, delivers pointer input, runs requested frames, then presents the
// attached surface and calls overlay (if non-nil) on top.
func (w *Window) Run(ctx context.Context, overlay func()) {
	rl.SetExitKey(rl.KeyEscape)
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		w.drainPosts()
		if in := pollPointer(); in.Active() {
			for _, fn := range w.pointers {
				fn(in)
			}
		}
		w.runFrames()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Blank)
		if w.attached != nil {
			w.attached.present()
		}
		if overlay != nil {
			overlay()
		}
		rl.EndDrawing()
	}
}

func (w *Window) drainPosts() {
	for {
		select {
		case fn := <-w.posts:
			fn()
		default:
			return
		}
	}
}

// runFrames runs the frames requested before this tick. Frames requested while they
// run wait for the next tick.
func (w *Window) runFrames() {
	frames := w.frames
	w.frames = nil
	for _, fn := range frames {
		fn()
	}
}
