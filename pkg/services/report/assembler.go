package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"github.com/hydro-tools/water-atlas/pkg/models/api"
	"github.com/hydro-tools/water-atlas/pkg/services/images"
)

const missionStatement = "This report summarizes the detected water spread and storage " +
	"for each submitted satellite scene. Areas are derived from NDWI water masks and " +
	"volumes from the supplied elevation model's stage-storage curve. The first scene " +
	"serves as the reference dataset for all comparisons."

const (
	compositeMaxH = 150.0
	detailImgMaxH = 85.0
)

// Options configure one Assembler. Acquirer is the only required
// collaborator; everything else has a working default.
type Options struct {
	Geometry       Geometry
	Acquirer       images.Acquirer
	FooterLabel    string
	WatermarkText  string
	WatermarkImage *images.Bitmap
	Subtitle       string

	// now is swapped out by tests for a stable header timestamp.
	Now func() time.Time
}

// Assembler drives a full report render: global sections, per-record
// detail blocks, then the overlay pass. One Generate call owns its
// document and page state exclusively; nothing is shared across
// invocations.
type Assembler struct {
	opts Options
}

func NewAssembler(opts Options) *Assembler {
	if opts.Geometry == (Geometry{}) {
		opts.Geometry = DefaultGeometry()
	}
	if opts.FooterLabel == "" {
		opts.FooterLabel = "Water Atlas"
	}
	if opts.WatermarkText == "" {
		opts.WatermarkText = "WATER ATLAS"
	}
	if opts.Subtitle == "" {
		opts.Subtitle = "Remote Sensing Water Analysis"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Assembler{opts: opts}
}

// Generate renders the request into PDF bytes. Image acquisition
// failures degrade their block and never abort the run; the only
// fatal failures are an empty record list, cancellation, and a PDF
// export error.
func (a *Assembler) Generate(ctx context.Context, req api.ReportRequest) ([]byte, error) {
	if len(req.Records) == 0 {
		return nil, fmt.Errorf("report request has no records")
	}

	geo := a.opts.Geometry
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: geo.PageWidth, Ht: geo.PageHeight},
	})
	pdf.SetMargins(geo.MarginLeft, geo.MarginTop, geo.MarginRight)
	// Page breaks are decided by the PageFlow, never by fpdf.
	pdf.SetAutoPageBreak(false, geo.MarginBottom)
	pdf.AddPage()

	flow := NewPageFlow(geo)
	r := NewRenderer(pdf, flow, geo)

	// Global sections, first page.
	r.HeaderBand(req.ProjectTitle, a.opts.Subtitle, a.opts.Now())
	r.TextBlock(missionStatement, geo.ContentWidth())

	r.SectionHeading("Summary")
	r.SummaryTable(req.Records)

	if err := a.drawComposites(ctx, r, req.Records[0]); err != nil {
		return nil, err
	}

	// Detail section always starts on a fresh page.
	flow.ForceBreak()
	pdf.AddPage()
	r.SectionHeading("Detailed Analysis")

	for i, rec := range req.Records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("report generation cancelled: %w", err)
		}
		a.drawDetailBlock(ctx, r, flow, pdf, i, rec)
	}

	overlay := Overlay{
		FooterLabel:    a.opts.FooterLabel,
		WatermarkText:  a.opts.WatermarkText,
		WatermarkImage: a.opts.WatermarkImage,
		Geometry:       geo,
	}
	stamped := overlay.Apply(pdf)
	zerolog.Ctx(ctx).Info().
		Int("records", len(req.Records)).
		Int("pages", stamped).
		Msg("report assembled")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}
	return buf.Bytes(), nil
}

// drawComposites places the whole-document maps. Only the reference
// record is consulted for these slots.
func (a *Assembler) drawComposites(ctx context.Context, r *Renderer, base api.ResultRecord) error {
	slots := []struct {
		title string
		ref   string
	}{
		{"Composite Spread Map", base.CompositeMap},
		{"Combined Volume Map", base.CombinedVolumeMap},
		{"Water Frequency Map", base.FrequencyMap},
	}

	for _, slot := range slots {
		if slot.ref == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("report generation cancelled: %w", err)
		}
		bmp := a.acquire(ctx, slot.ref)
		if bmp == nil {
			r.TextBlock(fmt.Sprintf("[%s unavailable]", slot.title), a.opts.Geometry.ContentWidth())
			continue
		}
		r.SectionHeading(slot.title)
		r.ImageBlock(bmp, a.opts.Geometry.ContentWidth(), compositeMaxH, true)
	}
	return nil
}

// drawDetailBlock renders one record's cluster: title line, stats
// line, optional image and separator. The block's estimated height is
// reserved up front so the cluster stays together on one page when it
// fits; otherwise a fresh page is started before any part is drawn.
func (a *Assembler) drawDetailBlock(ctx context.Context, r *Renderer, flow *PageFlow, pdf *fpdf.Fpdf, i int, rec api.ResultRecord) {
	var bmp *images.Bitmap
	if ref := rec.DetailImageRef(); ref != "" {
		bmp = a.acquire(ctx, ref)
	}

	estimated := 7.0 + 6.0 + separatorH
	imgW, imgH := 0.0, 0.0
	if bmp != nil {
		imgW, imgH = FitSize(bmp.Width, bmp.Height, a.opts.Geometry.ContentWidth(), detailImgMaxH)
		estimated += imgH + 3
	}
	if !flow.Fits(estimated) {
		flow.ForceBreak()
		pdf.AddPage()
	}

	r.DetailTitle(i, rec)
	r.StatsLine(rec)
	switch {
	case bmp != nil && imgW > 0:
		r.ImageBlock(bmp, a.opts.Geometry.ContentWidth(), detailImgMaxH, false)
	case rec.DetailImageRef() != "":
		r.TextBlock("[image unavailable]", a.opts.Geometry.ContentWidth())
	}
	r.Separator()
}

// acquire resolves one image reference with failure containment: any
// acquisition error is logged and reported as a nil bitmap.
func (a *Assembler) acquire(ctx context.Context, ref string) *images.Bitmap {
	bmp, err := a.opts.Acquirer.Acquire(ctx, ref)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("ref", ref).Msg("image acquisition failed, skipping block")
		return nil
	}
	return bmp
}

// OutputFilename is the deterministic artifact name for a report
// exported on the given day.
func OutputFilename(now time.Time) string {
	return fmt.Sprintf("Water_Analysis_%s.pdf", now.Format("2006-01-02"))
}
