// Package debounce coalesces bursts of calls into at most a leading and a
// trailing invocation.
package debounce

import (
	"sync"
	"time"
)

// Timer is the subset of *time.Timer the gate needs
type Timer interface {
	Stop() bool
}

// TimerFunc schedules f after d. time.AfterFunc is the production implementation.
type TimerFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Options configures a Gate
type Options struct {
	Wait     time.Duration
	Leading  bool
	Trailing bool
	// AfterFunc overrides the timer source, for tests
	AfterFunc TimerFunc
}

// Gate forwards the first call of a burst (Leading) and the last one once the
// burst has been quiet for Wait (Trailing). Calls in between are dropped.
type Gate struct {
	mu      sync.Mutex
	fn      func(string)
	opts    Options
	timer   Timer
	seq     uint64
	pending bool
	lastArg string
}

// New returns a gate forwarding to fn
func New(fn func(string), opts Options) *Gate {
	if opts.AfterFunc == nil {
		opts.AfterFunc = realAfterFunc
	}
	return &Gate{fn: fn, opts: opts}
}

// Call registers an invocation with arg
func (g *Gate) Call(arg string) {
	g.mu.Lock()
	invokeNow := false
	if g.timer == nil {
		// first call of a burst
		if g.opts.Leading {
			invokeNow = true
			g.pending = false
		} else {
			g.pending = true
		}
	} else {
		g.timer.Stop()
		g.pending = true
	}
	g.lastArg = arg
	g.arm()
	g.mu.Unlock()

	if invokeNow {
		g.fn(arg)
	}
}

// Cancel drops a pending trailing call and ends the current burst
func (g *Gate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.disarm()
	g.pending = false
}

// Flush fires a pending trailing call immediately and ends the burst.
// It reports whether a call was forwarded.
func (g *Gate) Flush() bool {
	g.mu.Lock()
	if g.timer == nil {
		g.mu.Unlock()
		return false
	}
	g.disarm()
	invoke := g.pending && g.opts.Trailing
	arg := g.lastArg
	g.pending = false
	g.mu.Unlock()

	if invoke {
		g.fn(arg)
	}
	return invoke
}

// Pending reports whether a trailing call is waiting for the window to close
func (g *Gate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending && g.opts.Trailing
}

func (g *Gate) arm() {
	g.seq++
	seq := g.seq
	g.timer = g.opts.AfterFunc(g.opts.Wait, func() { g.fire(seq) })
}

func (g *Gate) disarm() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.seq++
}

func (g *Gate) fire(seq uint64) {
	g.mu.Lock()
	// a stopped timer may still fire if it raced with Stop
	if seq != g.seq || g.timer == nil {
		g.mu.Unlock()
		return
	}
	g.timer = nil
	invoke := g.pending && g.opts.Trailing
	arg := g.lastArg
	g.pending = false
	g.mu.Unlock()

	if invoke {
		g.fn(arg)
	}
}
