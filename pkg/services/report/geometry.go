package report

import "github.com/hydro-tools/water-atlas/pkg/services/config"

// Geometry is the fixed page layout in millimetres. It is
// configuration, never computed from content.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
}

// DefaultGeometry is portrait A4 with the margins the dashboard's
// exported reports have always used.
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:    210,
		PageHeight:   297,
		MarginTop:    15,
		MarginBottom: 20,
		MarginLeft:   15,
		MarginRight:  15,
	}
}

// GeometryFromSettings maps a loaded profile's page section onto a
// Geometry, falling back to defaults for zero values.
func GeometryFromSettings(s config.PageSettings) Geometry {
	geo := DefaultGeometry()
	if s.Width > 0 {
		geo.PageWidth = s.Width
	}
	if s.Height > 0 {
		geo.PageHeight = s.Height
	}
	if s.MarginTop > 0 {
		geo.MarginTop = s.MarginTop
	}
	if s.MarginBottom > 0 {
		geo.MarginBottom = s.MarginBottom
	}
	if s.MarginLeft > 0 {
		geo.MarginLeft = s.MarginLeft
	}
	if s.MarginRight > 0 {
		geo.MarginRight = s.MarginRight
	}
	return geo
}

// ContentWidth is the usable horizontal extent of the single column.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// MaxY is the lowest cursor position content may occupy.
func (g Geometry) MaxY() float64 {
	return g.PageHeight - g.MarginBottom
}
