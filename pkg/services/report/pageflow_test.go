package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testGeometry() Geometry {
	return Geometry{
		PageWidth:    210,
		PageHeight:   297,
		MarginTop:    15,
		MarginBottom: 20,
		MarginLeft:   15,
		MarginRight:  15,
	}
}

func TestPageFlow_StartsAtTopMarginOfPageOne(t *testing.T) {
	flow := NewPageFlow(testGeometry())
	assert.Equal(t, 1, flow.Page())
	assert.Equal(t, 15.0, flow.CursorY())
}

func TestPageFlow_ReserveWithinPage(t *testing.T) {
	flow := NewPageFlow(testGeometry())
	flow.Advance(100)

	pos := flow.Reserve(50)

	assert.Equal(t, 1, pos.Page)
	assert.Equal(t, 115.0, pos.Y)
	assert.False(t, pos.NewPage)
}

func TestPageFlow_ReserveBreaksWhenBlockDoesNotFit(t *testing.T) {
	geo := testGeometry()
	flow := NewPageFlow(geo)
	// maxY = 297 - 20 = 277. Cursor at 250 leaves 27mm of room.
	flow.Advance(235)

	pos := flow.Reserve(30)

	assert.True(t, pos.NewPage)
	assert.Equal(t, 2, pos.Page)
	assert.Equal(t, geo.MarginTop, pos.Y)
	assert.Equal(t, geo.MarginTop, flow.CursorY())
}

func TestPageFlow_ReserveExactFitStaysOnPage(t *testing.T) {
	geo := testGeometry()
	flow := NewPageFlow(geo)
	flow.Advance(235) // cursor 250, exactly 27mm left

	pos := flow.Reserve(27)

	assert.False(t, pos.NewPage)
	assert.Equal(t, 1, pos.Page)
}

func TestPageFlow_OversizeBlockDrawnAtTopAndOverflows(t *testing.T) {
	geo := testGeometry()
	flow := NewPageFlow(geo)

	// Taller than a whole page: not split, placed at the top margin
	// of the current (fresh) page.
	pos := flow.Reserve(400)

	assert.False(t, pos.NewPage)
	assert.Equal(t, 1, pos.Page)
	assert.Equal(t, geo.MarginTop, pos.Y)

	// Mid-page, the same block still gets a fresh page first.
	flow.Advance(100)
	pos = flow.Reserve(400)
	assert.True(t, pos.NewPage)
	assert.Equal(t, 2, pos.Page)
	assert.Equal(t, geo.MarginTop, pos.Y)
}

func TestPageFlow_CursorMonotonicWithinPage(t *testing.T) {
	flow := NewPageFlow(testGeometry())
	last := flow.CursorY()
	for i := 0; i < 10; i++ {
		flow.Reserve(10)
		flow.Advance(10)
		if flow.Page() == 1 {
			assert.GreaterOrEqual(t, flow.CursorY(), last)
			last = flow.CursorY()
		}
	}
}

func TestPageFlow_AdvanceToNeverMovesCursorUp(t *testing.T) {
	flow := NewPageFlow(testGeometry())
	flow.Advance(50)
	flow.AdvanceTo(40)
	assert.Equal(t, 65.0, flow.CursorY())
	flow.AdvanceTo(80)
	assert.Equal(t, 80.0, flow.CursorY())
}

func TestPageFlow_ForceBreakResetsCursor(t *testing.T) {
	geo := testGeometry()
	flow := NewPageFlow(geo)
	flow.Advance(120)

	pos := flow.ForceBreak()

	assert.True(t, pos.NewPage)
	assert.Equal(t, 2, flow.Page())
	assert.Equal(t, geo.MarginTop, flow.CursorY())
}
