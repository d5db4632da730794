package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/hydro-tools/water-atlas/pkg/services/images"
)

const watermarkAlpha = 0.10

// Overlay stamps the uniform footer and watermark onto every finished
// page. It must run exactly once, after all content has been drawn:
// only then is the final page count known, and a watermark stamped
// earlier would miss pages created by later breaks.
type Overlay struct {
	FooterLabel    string
	WatermarkText  string
	WatermarkImage *images.Bitmap
	Geometry       Geometry
}

// Apply visits pages 1..PageCount once each and returns the number of
// pages stamped.
func (o Overlay) Apply(pdf *fpdf.Fpdf) int {
	// Footer sits inside the bottom margin; never let a stamp spill
	// onto a fresh page.
	pdf.SetAutoPageBreak(false, 0)

	if o.WatermarkImage != nil {
		opts := fpdf.ImageOptions{ImageType: o.WatermarkImage.Format}
		pdf.RegisterImageOptionsReader("__watermark__", opts, bytes.NewReader(o.WatermarkImage.Data))
	}

	total := pdf.PageCount()
	for i := 1; i <= total; i++ {
		pdf.SetPage(i)
		o.stampWatermark(pdf)
		o.stampFooter(pdf, i)
	}
	return total
}

func (o Overlay) stampWatermark(pdf *fpdf.Fpdf) {
	pdf.SetAlpha(watermarkAlpha, "Normal")
	defer pdf.SetAlpha(1, "Normal")

	geo := o.Geometry
	if o.WatermarkImage != nil {
		w, h := FitSize(o.WatermarkImage.Width, o.WatermarkImage.Height, geo.PageWidth*0.6, geo.PageHeight*0.6)
		x := (geo.PageWidth - w) / 2
		y := (geo.PageHeight - h) / 2
		pdf.ImageOptions("__watermark__", x, y, w, h, false, fpdf.ImageOptions{ImageType: o.WatermarkImage.Format}, 0, "")
		return
	}

	cx, cy := geo.PageWidth/2, geo.PageHeight/2
	pdf.SetFont("Arial", "B", 52)
	pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	pdf.TransformBegin()
	pdf.TransformRotate(45, cx, cy)
	pdf.Text(cx-pdf.GetStringWidth(o.WatermarkText)/2, cy, o.WatermarkText)
	pdf.TransformEnd()
}

func (o Overlay) stampFooter(pdf *fpdf.Fpdf, page int) {
	geo := o.Geometry
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	pdf.SetXY(geo.MarginLeft, geo.PageHeight-12)
	pdf.CellFormat(geo.ContentWidth(), 5, fmt.Sprintf("%s  |  Page %d", o.FooterLabel, page), "", 0, "C", false, 0, "")
}
