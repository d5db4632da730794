package report

// Position tells the caller where a reserved block must be drawn.
// NewPage is set when the reservation crossed a page boundary.
type Position struct {
	Page    int
	Y       float64
	NewPage bool
}

// PageFlow tracks the vertical write cursor and decides page breaks.
// The cursor is explicit state threaded through every draw call, not
// a variable hidden in a closure, so the flow logic is testable on
// its own. Within a page the cursor only moves down; a page break
// resets it to the top margin.
type PageFlow struct {
	geo     Geometry
	page    int
	cursorY float64
}

func NewPageFlow(geo Geometry) *PageFlow {
	return &PageFlow{geo: geo, page: 1, cursorY: geo.MarginTop}
}

func (f *PageFlow) Page() int        { return f.page }
func (f *PageFlow) CursorY() float64 { return f.cursorY }

// Fits reports whether a block of the given height fits above the
// bottom margin at the current cursor.
func (f *PageFlow) Fits(height float64) bool {
	return f.cursorY+height <= f.geo.MaxY()
}

// Reserve returns the page and y-offset at which a block of the given
// height must be drawn, breaking to a fresh page first when it does
// not fit. A block taller than a whole page is not split: when the
// cursor is already at the top margin the block is placed there and
// allowed to overflow.
func (f *PageFlow) Reserve(height float64) Position {
	if !f.Fits(height) && f.cursorY > f.geo.MarginTop {
		return f.breakPage()
	}
	return Position{Page: f.page, Y: f.cursorY}
}

// Advance moves the cursor down after the caller has drawn a block.
func (f *PageFlow) Advance(height float64) {
	f.cursorY += height
}

// AdvanceTo moves the cursor down to an absolute y if that is below
// the current position. Used by full-bleed blocks drawn outside the
// margin box, like the first page's header band.
func (f *PageFlow) AdvanceTo(y float64) {
	if y > f.cursorY {
		f.cursorY = y
	}
}

// ForceBreak unconditionally starts a new page.
func (f *PageFlow) ForceBreak() Position {
	return f.breakPage()
}

func (f *PageFlow) breakPage() Position {
	f.page++
	f.cursorY = f.geo.MarginTop
	return Position{Page: f.page, Y: f.cursorY, NewPage: true}
}
