// Package picker implements the selection menus: a fixed list of entries
// laid out as a list or a grid, with a cursor and a single selection callback.
package picker

// Entry is one selectable item.
type Entry struct {
	ID          string
	Label       string
	Description string
	Icon        string
	Color       string
	// Muted entries are still selectable; renderers draw them dimmed
	// (support files on the architecture map).
	Muted bool
	// Group is an optional section heading; consecutive entries with the
	// same group are drawn under one heading.
	Group string
}

// Picker holds the cursor over a fixed entry list.
type Picker struct {
	entries  []Entry
	columns  int
	cursor   int
	onSelect func(id string)
}

// New creates a picker. columns <= 1 lays entries out as a vertical list.
// Entries are not validated: an id that does not resolve is reported by
// whoever handles the selection.
func New(entries []Entry, columns int, onSelect func(id string)) *Picker {
	if columns < 1 {
		columns = 1
	}
	return &Picker{entries: entries, columns: columns, onSelect: onSelect}
}

// Entries returns the entry list.
func (p *Picker) Entries() []Entry { return p.entries }

// Columns returns the grid width.
func (p *Picker) Columns() int { return p.columns }

// SetColumns changes the grid width, e.g. when the terminal is resized.
func (p *Picker) SetColumns(n int) {
	if n < 1 {
		n = 1
	}
	p.columns = n
}

// Cursor returns the index of the highlighted entry.
func (p *Picker) Cursor() int { return p.cursor }

// Len returns the number of entries.
func (p *Picker) Len() int { return len(p.entries) }

// Selected returns the highlighted entry.
func (p *Picker) Selected() (Entry, bool) {
	if p.cursor < 0 || p.cursor >= len(p.entries) {
		return Entry{}, false
	}
	return p.entries[p.cursor], true
}

// SetCursor moves the highlight to i, clamped to the entry range.
func (p *Picker) SetCursor(i int) {
	p.cursor = p.clamp(i)
}

// Up moves one row up (one entry in list layout).
func (p *Picker) Up() {
	if p.cursor-p.columns >= 0 {
		p.cursor -= p.columns
	}
}

// Down moves one row down. In a grid whose last row is short the cursor
// lands on the last entry.
func (p *Picker) Down() {
	switch {
	case p.cursor+p.columns < len(p.entries):
		p.cursor += p.columns
	case p.columns > 1 && p.row(p.cursor) < p.row(len(p.entries)-1):
		p.cursor = len(p.entries) - 1
	}
}

// Left moves one entry back; in list layout it does nothing.
func (p *Picker) Left() {
	if p.columns > 1 && p.cursor > 0 {
		p.cursor--
	}
}

// Right moves one entry forward; in list layout it does nothing.
func (p *Picker) Right() {
	if p.columns > 1 && p.cursor < len(p.entries)-1 {
		p.cursor++
	}
}

// Activate fires the callback once for the highlighted entry.
// An empty picker does nothing.
func (p *Picker) Activate() bool {
	return p.ActivateAt(p.cursor)
}

// ActivateAt highlights entry i and fires the callback once for it.
// Out-of-range indexes do nothing.
func (p *Picker) ActivateAt(i int) bool {
	if i < 0 || i >= len(p.entries) {
		return false
	}
	p.cursor = i
	if p.onSelect != nil {
		p.onSelect(p.entries[i].ID)
	}
	return true
}

// IndexOf returns the position of the entry with the given id, or -1.
func (p *Picker) IndexOf(id string) int {
	for i, e := range p.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (p *Picker) row(i int) int { return i / p.columns }

func (p *Picker) clamp(i int) int {
	if i >= len(p.entries) {
		i = len(p.entries) - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
