package clipboard

import (
	"context"
	"sync"
	"time"
)

// Confirmation delays used by the different copy controls.
const (
	ButtonDelay = 1200 * time.Millisecond
	ColorDelay  = 1300 * time.Millisecond
	SourceDelay = 1600 * time.Millisecond
)

// Timer is the subset of *time.Timer used here.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The zero Feedback uses the real clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Feedback performs copies and remembers which key was copied last. The
// confirmation clears itself after Delay. A newer copy replaces the pending
// timer, so an old timer can never clear a newer confirmation.
type Feedback struct {
	Writer Writer
	Delay  time.Duration
	Clock  Clock
	// Notify, when set, is called after the confirmation changes.
	Notify func()

	mu     sync.Mutex
	copied string
	gen    uint64
	timer  Timer
}

// NewFeedback returns a Feedback using the real clock.
func NewFeedback(w Writer, delay time.Duration) *Feedback {
	return &Feedback{Writer: w, Delay: delay}
}

// Copy writes text and, on success, marks key as copied. It reports whether
// the write succeeded. Failures are silent.
func (f *Feedback) Copy(ctx context.Context, key, text string) bool {
	if f.Writer == nil {
		return false
	}
	if err := f.Writer.Write(ctx, text); err != nil {
		return false
	}
	f.mark(key)
	return true
}

// CopyFrom loads the text first, for example the source of a file, then
// copies it. A load failure is silent and leaves the confirmation untouched.
func (f *Feedback) CopyFrom(ctx context.Context, key string, load func(context.Context) (string, error)) bool {
	text, err := load(ctx)
	if err != nil {
		return false
	}
	return f.Copy(ctx, key, text)
}

// Copied returns the key currently confirmed, or "".
func (f *Feedback) Copied() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.copied
}

// IsCopied reports whether key is currently confirmed.
func (f *Feedback) IsCopied(key string) bool {
	return key != "" && f.Copied() == key
}

// Stop cancels any pending timer and clears the confirmation.
func (f *Feedback) Stop() {
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.gen++
	f.copied = ""
	f.mu.Unlock()
}

func (f *Feedback) mark(key string) {
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.gen++
	gen := f.gen
	f.copied = key
	clock := f.Clock
	if clock == nil {
		clock = realClock{}
	}
	f.timer = clock.AfterFunc(f.delay(), func() { f.expire(gen) })
	notify := f.Notify
	f.mu.Unlock()
	if notify != nil {
		notify()
	}
}

func (f *Feedback) expire(gen uint64) {
	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return
	}
	f.copied = ""
	f.timer = nil
	notify := f.Notify
	f.mu.Unlock()
	if notify != nil {
		notify()
	}
}

func (f *Feedback) delay() time.Duration {
	if f.Delay > 0 {
		return f.Delay
	}
	return ButtonDelay
}
