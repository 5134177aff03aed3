// Package tracker keeps the active step of a walkthrough in sync with what
// the viewer is looking at.
//
// Each step block reports visibility changes through a callback obtained from
// Observe. Every report goes through Reduce, the only place the active index
// is computed. The Observer in band.go produces those reports from the scroll
// position of the left pane; tests and the line-mode console can call the
// callbacks directly.
package tracker

// Signal is one visibility report: step Index entered (or left) the central
// band of the viewport.
type Signal struct {
	Index   int
	Entered bool
}

// Reduce computes the next active index. Only entries count; leaving the band
// never moves the active step. Indexes outside [0, count) are ignored so the
// result always addresses a real step.
func Reduce(active, count int, sig Signal) int {
	if !sig.Entered || sig.Index < 0 || sig.Index >= count {
		return active
	}
	return sig.Index
}

// Tracker owns the active step index of one mounted walkthrough.
type Tracker struct {
	active int
	count  int
	subs   []func(prev, next int)
}

// New returns a tracker for count steps, starting at step 0.
func New(count int) *Tracker {
	return &Tracker{count: count}
}

// Active returns the active step index.
func (t *Tracker) Active() int { return t.active }

// Count returns the number of steps.
func (t *Tracker) Count() int { return t.count }

// Subscribe registers fn to be called after every change of the active index.
func (t *Tracker) Subscribe(fn func(prev, next int)) {
	t.subs = append(t.subs, fn)
}

// Observe returns the visibility callback for step index.
func (t *Tracker) Observe(index int) func(entered bool) {
	return func(entered bool) {
		t.Report(Signal{Index: index, Entered: entered})
	}
}

// Report feeds one signal through Reduce. The most recent entry wins.
func (t *Tracker) Report(sig Signal) {
	next := Reduce(t.active, t.count, sig)
	if next == t.active {
		return
	}
	prev := t.active
	t.active = next
	for _, fn := range t.subs {
		fn(prev, next)
	}
}

// Reset starts over at step 0 for a document of count steps. Subscribers are
// kept; they are not notified.
func (t *Tracker) Reset(count int) {
	t.count = count
	t.active = 0
}
