package viewer

// FrameRequester runs fn once at the next display refresh.
type FrameRequester interface {
	RequestFrame(fn func())
}

// Scheduler coalesces redraw requests: however many arrive before the next display
// refresh, step runs once. It is owned by one session and used only on the render thread.
type Scheduler struct {
	frames    FrameRequester
	step      func()
	pending   bool
	scheduled int
}

// NewScheduler returns a scheduler that runs step on frames requested from fr.
func NewScheduler(fr FrameRequester, step func()) *Scheduler {
	return &Scheduler{frames: fr, step: step}
}

// RequestRender schedules one step on the next frame unless one is already pending.
func (s *Scheduler) RequestRender() {
	if s.pending {
		return
	}
	s.pending = true
	s.scheduled++
	s.frames.RequestFrame(s.run)
}

// run clears pending before stepping, so a request made while stepping gets its own frame.
func (s *Scheduler) run() {
	s.pending = false
	s.step()
}

// Pending reports whether a step is scheduled and has not started yet.
func (s *Scheduler) Pending() bool {
	return s.pending
}

// Scheduled returns how many frames have been requested in total.
func (s *Scheduler) Scheduled() int {
	return s.scheduled
}
