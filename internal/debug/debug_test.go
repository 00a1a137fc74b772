package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefreshFPSAndStats(t *testing.T) {
	d := New()
	d.SetShowFPS(true)
	d.Stats = func() Stats { return Stats{Renders: 3, Scheduled: 4, LoadState: "attached"} }

	d.refresh(60)
	assert.Equal(t, []string{"FPS: 60", "Renders: 3/4", "Model: attached"}, d.Lines())

	d.refresh(59)
	assert.Len(t, d.Lines(), 3, "refresh replaces the text")
}

func TestRefreshMemOnly(t *testing.T) {
	d := New()
	d.SetShowMemAlloc(true)
	d.Stats = func() Stats { return Stats{Renders: 1} }

	d.refresh(60)
	if assert.Len(t, d.Lines(), 1) {
		assert.Contains(t, d.Lines()[0], "Mem: ")
	}
}
