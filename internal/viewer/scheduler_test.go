package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type frameQueue struct {
	frames []func()
}

func (q *frameQueue) RequestFrame(fn func()) { q.frames = append(q.frames, fn) }

func (q *frameQueue) tick() {
	frames := q.frames
	q.frames = nil
	for _, fn := range frames {
		fn()
	}
}

func TestSchedulerCoalesces(t *testing.T) {
	q := &frameQueue{}
	steps := 0
	s := NewScheduler(q, func() { steps++ })

	for i := 0; i < 10; i++ {
		s.RequestRender()
	}
	assert.True(t, s.Pending())
	assert.Len(t, q.frames, 1)
	assert.Equal(t, 1, s.Scheduled())

	q.tick()
	assert.Equal(t, 1, steps)
	assert.False(t, s.Pending())

	q.tick()
	assert.Equal(t, 1, steps)
}

func TestSchedulerClearsPendingBeforeStep(t *testing.T) {
	q := &frameQueue{}
	var s *Scheduler
	var pendingInStep []bool
	s = NewScheduler(q, func() {
		pendingInStep = append(pendingInStep, s.Pending())
		if len(pendingInStep) == 1 {
			s.RequestRender()
			s.RequestRender()
		}
	})

	s.RequestRender()
	q.tick()
	assert.Len(t, q.frames, 1)
	q.tick()
	assert.Empty(t, q.frames)
	assert.Equal(t, []bool{false, false}, pendingInStep)
	assert.Equal(t, 2, s.Scheduled())
}
