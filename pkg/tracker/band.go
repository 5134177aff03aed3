package tracker

// Extent is the vertical position of a step block in the left pane, in rows.
type Extent struct {
	Top    int
	Height int
}

// Bottom returns the last row covered by the block.
func (e Extent) Bottom() int { return e.Top + e.Height - 1 }

// Band is the central band of a viewport: Margin rows on each side of the
// midline. A zero margin is the midline row alone.
type Band struct {
	Height int
	Margin int
}

// Span returns the first and last content row of the band when the viewport
// starts at row top.
func (b Band) Span(top int) (int, int) {
	mid := top + b.Height/2
	return mid - b.Margin, mid + b.Margin
}

// Contains reports whether the block crosses the band at scroll position top.
func (b Band) Contains(top int, e Extent) bool {
	if e.Height <= 0 {
		return false
	}
	lo, hi := b.Span(top)
	return e.Top <= hi && e.Bottom() >= lo
}

type observed struct {
	extent Extent
	notify func(entered bool)
	inside bool
}

// Observer turns scroll positions into visibility reports for a set of
// blocks. Reports are only sent on transitions into or out of the band.
type Observer struct {
	band   Band
	blocks []observed
	top    int
}

// NewObserver returns an observer for a viewport of height rows.
func NewObserver(height, margin int) *Observer {
	return &Observer{band: Band{Height: height, Margin: margin}}
}

// Band returns the current band geometry.
func (o *Observer) Band() Band { return o.band }

// Top returns the last scroll position passed to Scroll.
func (o *Observer) Top() int { return o.top }

// Watch registers a block. Blocks are reported in registration order, so
// when one scroll moves several blocks into the band the last registered of
// them is the last report.
func (o *Observer) Watch(e Extent, notify func(entered bool)) {
	o.blocks = append(o.blocks, observed{extent: e, notify: notify})
}

// Clear forgets every block, e.g. before re-laying out a document.
func (o *Observer) Clear() {
	o.blocks = nil
}

// Resize changes the viewport height and re-evaluates the band at the
// current scroll position.
func (o *Observer) Resize(height int) {
	o.band.Height = height
	o.Scroll(o.top)
}

// Scroll moves the viewport to row top and reports every block whose
// membership in the band changed.
func (o *Observer) Scroll(top int) {
	o.top = top
	for i := range o.blocks {
		b := &o.blocks[i]
		in := o.band.Contains(top, b.extent)
		if in == b.inside {
			continue
		}
		b.inside = in
		if b.notify != nil {
			b.notify(in)
		}
	}
}

// TopFor returns the scroll position that puts the first row of block i on
// the midline, never negative. It returns -1 for an unknown block.
func (o *Observer) TopFor(i int) int {
	if i < 0 || i >= len(o.blocks) {
		return -1
	}
	top := o.blocks[i].extent.Top - o.band.Height/2
	if top < 0 {
		top = 0
	}
	return top
}
