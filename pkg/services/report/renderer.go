package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/hydro-tools/water-atlas/pkg/models/api"
	"github.com/hydro-tools/water-atlas/pkg/services/images"
)

var (
	colorPrimary   = [3]int{30, 58, 95} // dark navy band and table header
	colorTextDark  = [3]int{44, 62, 80}
	colorTextMuted = [3]int{127, 140, 141}
	colorRowAlt    = [3]int{241, 245, 249}
	colorRule      = [3]int{200, 205, 210}
)

const (
	lineHeight    = 5.0
	headingHeight = 10.0
	tableRowH     = 7.0
	separatorH    = 6.0
	headerBandH   = 30.0
)

// Renderer draws typed content blocks at the flow cursor. Every draw
// reserves its height from the PageFlow first, so page breaks happen
// in exactly one place.
type Renderer struct {
	pdf  *fpdf.Fpdf
	flow *PageFlow
	geo  Geometry
}

func NewRenderer(pdf *fpdf.Fpdf, flow *PageFlow, geo Geometry) *Renderer {
	return &Renderer{pdf: pdf, flow: flow, geo: geo}
}

// place reserves vertical space, adds a PDF page when the reservation
// broke to a new one, and leaves the write position at the block's
// top-left corner.
func (r *Renderer) place(height float64) Position {
	pos := r.flow.Reserve(height)
	if pos.NewPage {
		r.pdf.AddPage()
	}
	r.pdf.SetXY(r.geo.MarginLeft, pos.Y)
	return pos
}

// HeaderBand draws the full-bleed banner on the document's first
// page: project title, subtitle and generation timestamp.
func (r *Renderer) HeaderBand(title, subtitle string, ts time.Time) {
	r.pdf.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	r.pdf.Rect(0, 0, r.geo.PageWidth, headerBandH, "F")

	r.pdf.SetFont("Arial", "B", 18)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetXY(r.geo.MarginLeft, 6)
	r.pdf.CellFormat(r.geo.ContentWidth(), 9, title, "", 1, "L", false, 0, "")

	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetX(r.geo.MarginLeft)
	r.pdf.CellFormat(r.geo.ContentWidth()/2, 6, subtitle, "", 0, "L", false, 0, "")
	r.pdf.CellFormat(r.geo.ContentWidth()/2, 6, ts.Format("2006-01-02 15:04"), "", 1, "R", false, 0, "")

	r.flow.AdvanceTo(headerBandH + 6)
}

// SectionHeading draws a labeled divider of fixed height.
func (r *Renderer) SectionHeading(title string) {
	pos := r.place(headingHeight)
	r.pdf.SetFont("Arial", "B", 13)
	r.pdf.SetTextColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	r.pdf.CellFormat(r.geo.ContentWidth(), 7, title, "", 1, "L", false, 0, "")

	r.pdf.SetDrawColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	r.pdf.SetLineWidth(0.4)
	r.pdf.Line(r.geo.MarginLeft, pos.Y+8, r.geo.MarginLeft+r.geo.ContentWidth(), pos.Y+8)

	r.flow.Advance(headingHeight)
}

// SummaryTable draws one row per record with fixed-width columns.
// Every row reserves its own height, so a row may break to a fresh
// page mid-table; the row styling is re-applied after a break and the
// header row is not repeated.
func (r *Renderer) SummaryTable(records []api.ResultRecord) {
	withCapacity := false
	for _, rec := range records {
		if rec.VolumeAtLevelTMC != nil {
			withCapacity = true
			break
		}
	}

	widths := r.tableWidths(withCapacity)

	// Header row.
	r.place(tableRowH)
	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.CellFormat(widths[0], tableRowH, "Date", "", 0, "L", true, 0, "")
	r.pdf.CellFormat(widths[1], tableRowH, "Dataset", "", 0, "L", true, 0, "")
	r.pdf.CellFormat(widths[2], tableRowH, "Area (ha)", "", 0, "R", true, 0, "")
	ln := 1
	if withCapacity {
		ln = 0
	}
	r.pdf.CellFormat(widths[3], tableRowH, "Volume (TMC)", "", ln, "R", true, 0, "")
	if withCapacity {
		r.pdf.CellFormat(widths[4], tableRowH, "Capacity @ Base (TMC)", "", 1, "R", true, 0, "")
	}
	r.flow.Advance(tableRowH)

	for i, rec := range records {
		r.place(tableRowH)

		fill := i%2 == 1
		r.pdf.SetFont("Arial", "", 9)
		r.pdf.SetFillColor(colorRowAlt[0], colorRowAlt[1], colorRowAlt[2])
		r.pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])

		r.pdf.CellFormat(widths[0], tableRowH, rec.Date, "", 0, "L", fill, 0, "")
		r.pdf.CellFormat(widths[1], tableRowH, truncate(rec.Filename, 28), "", 0, "L", fill, 0, "")
		r.pdf.CellFormat(widths[2], tableRowH, fmt.Sprintf("%.2f", rec.AreaHa), "", 0, "R", fill, 0, "")
		if withCapacity {
			r.pdf.CellFormat(widths[3], tableRowH, fmt.Sprintf("%.4f", rec.VolumeTMC), "", 0, "R", fill, 0, "")
			r.pdf.CellFormat(widths[4], tableRowH, optionalTMC(rec.VolumeAtLevelTMC), "", 1, "R", fill, 0, "")
		} else {
			r.pdf.CellFormat(widths[3], tableRowH, fmt.Sprintf("%.4f", rec.VolumeTMC), "", 1, "R", fill, 0, "")
		}
		r.flow.Advance(tableRowH)
	}
	r.flow.Advance(3)
}

func (r *Renderer) tableWidths(withCapacity bool) []float64 {
	cw := r.geo.ContentWidth()
	if withCapacity {
		return []float64{cw * 0.16, cw * 0.30, cw * 0.16, cw * 0.17, cw * 0.21}
	}
	return []float64{cw * 0.18, cw * 0.42, cw * 0.20, cw * 0.20}
}

// ImageBlock places an acquired bitmap scaled into the given bounds.
// Standalone sections center the image in the content column; detail
// blocks keep it left-aligned.
func (r *Renderer) ImageBlock(bmp *images.Bitmap, maxW, maxH float64, centered bool) {
	w, h := FitSize(bmp.Width, bmp.Height, maxW, maxH)
	if w == 0 || h == 0 {
		return
	}
	pos := r.place(h)

	x := r.geo.MarginLeft
	if centered {
		x += (r.geo.ContentWidth() - w) / 2
	}

	opts := fpdf.ImageOptions{ImageType: bmp.Format}
	r.pdf.RegisterImageOptionsReader(bmp.Ref, opts, bytes.NewReader(bmp.Data))
	r.pdf.ImageOptions(bmp.Ref, x, pos.Y, w, h, false, opts, 0, "")

	r.flow.Advance(h + 3)
}

// TextBlock wraps text into the given width with a greedy line break
// and writes it line by line, so a long paragraph can span pages.
func (r *Renderer) TextBlock(text string, maxW float64) {
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	for _, line := range r.pdf.SplitText(text, maxW) {
		r.place(lineHeight)
		r.pdf.CellFormat(maxW, lineHeight, line, "", 1, "L", false, 0, "")
		r.flow.Advance(lineHeight)
	}
	r.flow.Advance(2)
}

// DetailTitle writes the per-record title line of a detail block.
func (r *Renderer) DetailTitle(index int, rec api.ResultRecord) {
	r.place(7)
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	r.pdf.CellFormat(r.geo.ContentWidth(), 7, fmt.Sprintf("%d. %s (%s)", index+1, rec.Filename, rec.Date), "", 1, "L", false, 0, "")
	r.flow.Advance(7)
}

// StatsLine writes the one-line metric summary of a detail block.
// Absent optional metrics are omitted rather than rendered as zeros.
func (r *Renderer) StatsLine(rec api.ResultRecord) {
	parts := []string{
		fmt.Sprintf("Area: %.2f ha", rec.AreaHa),
		fmt.Sprintf("Volume: %.4f TMC", rec.VolumeTMC),
	}
	if rec.WaterLevel != nil {
		parts = append(parts, fmt.Sprintf("Water level: %.2f m", *rec.WaterLevel))
	}
	if rec.VolumeAtLevelTMC != nil && rec.BaseLevel != nil {
		parts = append(parts, fmt.Sprintf("Capacity @ %.2f m: %.4f TMC", *rec.BaseLevel, *rec.VolumeAtLevelTMC))
	}

	r.place(6)
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	r.pdf.CellFormat(r.geo.ContentWidth(), 6, strings.Join(parts, "     "), "", 1, "L", false, 0, "")
	r.flow.Advance(6)
}

// Separator draws the horizontal rule that closes a detail block.
func (r *Renderer) Separator() {
	pos := r.place(separatorH)
	r.pdf.SetDrawColor(colorRule[0], colorRule[1], colorRule[2])
	r.pdf.SetLineWidth(0.2)
	r.pdf.Line(r.geo.MarginLeft, pos.Y+separatorH/2, r.geo.MarginLeft+r.geo.ContentWidth(), pos.Y+separatorH/2)
	r.flow.Advance(separatorH)
}

func optionalTMC(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
