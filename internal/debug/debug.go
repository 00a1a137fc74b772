package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Stats is what the overlay reports besides FPS.
type Stats struct {
	Renders   int
	Scheduled int
	LoadState string
}

// Debug draws a runtime overlay in the top-left corner. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	// Stats is polled when the text refreshes. Nil hides the render counters.
	Stats func() Stats

	frameCount   uint32
	lines        []string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether FPS and the render counters are drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the heap allocation is drawn under FPS.
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// Lines returns the text the overlay currently shows.
func (d *Debug) Lines() []string {
	return d.lines
}

// Draw renders the enabled overlays. Call last in the draw loop.
// Text is only recomputed every updateInterval frames.
func (d *Debug) Draw() {
	if !d.ShowFPS && !d.ShowMemAlloc {
		return
	}
	d.frameCount++
	if d.frameCount%updateInterval == 0 || d.lines == nil {
		d.refresh(rl.GetFPS())
	}
	y := int32(padding)
	for _, text := range d.lines {
		rl.DrawText(text, padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}

func (d *Debug) refresh(fps int32) {
	d.lines = d.lines[:0]
	if d.ShowFPS {
		d.lines = append(d.lines, fmt.Sprintf("FPS: %d", fps))
		if d.Stats != nil {
			st := d.Stats()
			d.lines = append(d.lines,
				fmt.Sprintf("Renders: %d/%d", st.Renders, st.Scheduled),
				fmt.Sprintf("Model: %s", st.LoadState))
		}
	}
	if d.ShowMemAlloc {
		runtime.ReadMemStats(&d.lastMemStats)
		mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
		d.lines = append(d.lines, fmt.Sprintf("Mem: %.2f MiB", mb))
	}
}
