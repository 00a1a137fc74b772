package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is one tick of pointer state as seen by the controls.
// Delta is the pointer movement in pixels; Rotate and Pan report which drag is active.
type Input struct {
	Delta  rl.Vector2
	Rotate bool
	Pan    bool
	Wheel  float32
}

// Active reports whether the input would move the camera.
func (in Input) Active() bool {
	dragging := (in.Rotate || in.Pan) && (in.Delta.X != 0 || in.Delta.Y != 0)
	return dragging || in.Wheel != 0
}

// Options tunes the orbit controls. Zero values fall back to DefaultOptions.
type Options struct {
	Damping     float32 // 0 disables damping, otherwise the fraction applied per Update
	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32
	MinDistance float32
	MaxDistance float32
}

// DefaultOptions returns undamped controls with unit speeds.
func DefaultOptions() Options {
	return Options{RotateSpeed: 1, ZoomSpeed: 1, PanSpeed: 1, MinDistance: 0, MaxDistance: math32.Inf(1)}
}

const (
	// polarEps keeps the camera off the poles so LookAt never degenerates.
	polarEps = 1e-4
	// moveEps is the squared distance below which a camera update does not count as a change.
	moveEps = 1e-6
	// zoomBase is the per-wheel-step distance factor.
	zoomBase = 0.95
)

// OrbitControls rotates, pans and zooms a camera around its target and notifies
// listeners when the camera changed. HandleInput accumulates pointer input;
// Update applies it. Without damping HandleInput updates immediately.
type OrbitControls struct {
	cam            *Camera
	opts           Options
	viewportHeight float32

	deltaTheta float32
	deltaPhi   float32
	zoom       float32
	pan        rl.Vector3

	listeners map[int]func()
	nextID    int
	disposed  bool
}

// NewOrbitControls attaches controls to cam for a viewport of the given pixel height.
func NewOrbitControls(cam *Camera, viewportHeight int, opts Options) *OrbitControls {
	def := DefaultOptions()
	if opts.RotateSpeed <= 0 {
		opts.RotateSpeed = def.RotateSpeed
	}
	if opts.ZoomSpeed <= 0 {
		opts.ZoomSpeed = def.ZoomSpeed
	}
	if opts.PanSpeed <= 0 {
		opts.PanSpeed = def.PanSpeed
	}
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = def.MaxDistance
	}
	if opts.Damping < 0 || opts.Damping >= 1 {
		opts.Damping = 0
	}
	h := float32(viewportHeight)
	if h <= 0 {
		h = 1
	}
	return &OrbitControls{
		cam:            cam,
		opts:           opts,
		viewportHeight: h,
		zoom:           1,
		listeners:      make(map[int]func()),
	}
}

// OnChange registers fn to run whenever the camera moves. The returned func removes it.
func (o *OrbitControls) OnChange(fn func()) (remove func()) {
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn
	return func() { delete(o.listeners, id) }
}

// Listeners returns the number of registered change listeners.
func (o *OrbitControls) Listeners() int {
	return len(o.listeners)
}

// HandleInput turns pointer input into pending rotation, pan and zoom.
func (o *OrbitControls) HandleInput(in Input) {
	if o.disposed {
		return
	}
	active := false
	if in.Rotate && (in.Delta.X != 0 || in.Delta.Y != 0) {
		o.Rotate(2*math32.Pi*in.Delta.X/o.viewportHeight*o.opts.RotateSpeed,
			2*math32.Pi*in.Delta.Y/o.viewportHeight*o.opts.RotateSpeed)
		active = true
	} else if in.Pan && (in.Delta.X != 0 || in.Delta.Y != 0) {
		o.Pan(in.Delta.X, in.Delta.Y)
		active = true
	}
	if in.Wheel != 0 {
		o.Zoom(in.Wheel)
		active = true
	}
	if active && o.opts.Damping == 0 {
		o.Update()
	}
}

// Rotate queues an orbit of dx radians around the up axis and dy radians toward the poles.
func (o *OrbitControls) Rotate(dx, dy float32) {
	o.deltaTheta -= dx
	o.deltaPhi -= dy
}

// Pan queues a move of target and camera in the view plane by a pointer delta in pixels.
func (o *OrbitControls) Pan(dx, dy float32) {
	view := o.cam.ViewVector()
	dist := o.cam.visibleHeight(rl.Vector3Length(view)) / o.viewportHeight
	forward := rl.Vector3Normalize(rl.Vector3Negate(view))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, o.cam.Up))
	up := rl.Vector3CrossProduct(right, forward)
	move := rl.Vector3Add(
		rl.Vector3Scale(right, -dx*dist*o.opts.PanSpeed),
		rl.Vector3Scale(up, dy*dist*o.opts.PanSpeed),
	)
	o.pan = rl.Vector3Add(o.pan, move)
}

// Zoom queues a dolly toward the target for positive steps and away for negative ones.
func (o *OrbitControls) Zoom(steps float32) {
	o.zoom *= math32.Pow(zoomBase, steps*o.opts.ZoomSpeed)
}

// Update applies pending input to the camera, emitting change when it moved.
// With damping only a fraction is applied and the rest decays over later updates,
// so callers should keep calling Update while it reports true.
func (o *OrbitControls) Update() bool {
	if o.disposed || o.idle() {
		return false
	}
	cam := o.cam
	oldPos, oldTarget := cam.Position, cam.Target

	f := float32(1)
	if o.opts.Damping > 0 {
		f = o.opts.Damping
	}

	offset := cam.ViewVector()
	radius := rl.Vector3Length(offset)
	theta := math32.Atan2(offset.X, offset.Z)
	phi := float32(0)
	if radius > 0 {
		phi = math32.Acos(clamp(offset.Y/radius, -1, 1))
	}

	theta += o.deltaTheta * f
	phi = clamp(phi+o.deltaPhi*f, polarEps, math32.Pi-polarEps)
	radius = clamp(radius*o.zoom, o.opts.MinDistance, o.opts.MaxDistance)

	cam.Target = rl.Vector3Add(cam.Target, rl.Vector3Scale(o.pan, f))
	sinPhi := math32.Sin(phi)
	cam.Position = rl.Vector3Add(cam.Target, rl.NewVector3(
		radius*sinPhi*math32.Sin(theta),
		radius*math32.Cos(phi),
		radius*sinPhi*math32.Cos(theta),
	))

	o.zoom = 1
	if o.opts.Damping > 0 {
		o.deltaTheta *= 1 - f
		o.deltaPhi *= 1 - f
		o.pan = rl.Vector3Scale(o.pan, 1-f)
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
		o.pan = rl.Vector3Zero()
	}

	moved := rl.Vector3DistanceSqr(oldPos, cam.Position) > moveEps ||
		rl.Vector3DistanceSqr(oldTarget, cam.Target) > moveEps
	if moved {
		o.emit()
	}
	return moved
}

// Dispose removes all listeners and stops reacting to input.
func (o *OrbitControls) Dispose() {
	o.disposed = true
	clear(o.listeners)
}

// Pending reports whether damped motion is still waiting for Update.
func (o *OrbitControls) Pending() bool {
	return !o.disposed && !o.idle()
}

func (o *OrbitControls) idle() bool {
	return o.deltaTheta == 0 && o.deltaPhi == 0 && o.zoom == 1 && o.pan == rl.Vector3{}
}

func (o *OrbitControls) emit() {
	for _, fn := range o.listeners {
		fn()
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
