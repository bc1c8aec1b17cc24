package game

import "time"

// frameQueue is the desktop frame callback: Game.Update drains it once per
// display refresh.
type frameQueue struct {
	origin  time.Time
	pending []func(ts float64)
}

func newFrameQueue(origin time.Time) *frameQueue {
	return &frameQueue{origin: origin}
}

func (q *frameQueue) RequestFrame(fn func(ts float64)) {
	q.pending = append(q.pending, fn)
}

// run fires the callbacks queued before this frame. Callbacks requested
// while running wait for the next one.
func (q *frameQueue) run(now time.Time) {
	if len(q.pending) == 0 {
		return
	}
	ts := float64(now.Sub(q.origin)) / float64(time.Millisecond)
	fns := q.pending
	q.pending = nil
	for _, fn := range fns {
		fn(ts)
	}
}
