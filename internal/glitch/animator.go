package glitch

import (
	"context"
	"strings"
	"sync"
	"time"
)

// FrameInterval is the target frame period of the animator.
const FrameInterval = 33 * time.Millisecond

// Animator drives a Terminal on a ticker and hands every frame to a sink.
// Stop tears everything down: the ticker is stopped and the loop goroutine
// has returned when Stop returns.
type Animator struct {
	Terminal *Terminal
	Interval time.Duration
	// Size reports the grid to render; it is read on every tick so resizes
	// take effect on the next frame.
	Size func() (cols, rows int)
	// Pointer reports the pointer state; nil means no pointer.
	Pointer func() Pointer

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Start launches the loop. Calling Start on a running animator is a no-op.
func (a *Animator) Start(ctx context.Context, sink func(Frame)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})
	go a.loop(ctx, sink, a.done)
}

// Running reports whether the loop is active.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

// Stop cancels the loop and waits for it to exit.
func (a *Animator) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (a *Animator) loop(ctx context.Context, sink func(Frame), done chan struct{}) {
	defer close(done)
	interval := a.Interval
	if interval <= 0 {
		interval = FrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			cols, rows := 40, 12
			if a.Size != nil {
				cols, rows = a.Size()
			}
			var p Pointer
			if a.Pointer != nil {
				p = a.Pointer()
			}
			f := a.Terminal.Frame(cols, rows, now.Sub(start), p)
			select {
			case <-ctx.Done():
				return
			default:
			}
			sink(f)
		}
	}
}

// Lines renders the frame as text. Cells dimmer than minAlpha become spaces.
func (f Frame) Lines(minAlpha float64) []string {
	grid := make([][]byte, f.Rows)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(" ", f.Cols))
	}
	for _, c := range f.Cells {
		if c.Alpha < minAlpha || c.Row >= f.Rows || c.Col >= f.Cols {
			continue
		}
		grid[c.Row][c.Col] = c.Glyph
	}
	out := make([]string, f.Rows)
	for r, row := range grid {
		out[r] = string(row)
	}
	return out
}
