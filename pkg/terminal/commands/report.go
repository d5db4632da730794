package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hydro-tools/water-atlas/pkg/models/api"
	"github.com/hydro-tools/water-atlas/pkg/services/config"
	"github.com/hydro-tools/water-atlas/pkg/services/images"
	"github.com/hydro-tools/water-atlas/pkg/services/report"
)

type ReportCmd struct {
	profilePath string
	resultsPath string
	title       string
	outPath     string
	output      io.Writer
}

func NewReportCmd(output io.Writer) *cobra.Command {
	rc := &ReportCmd{output: output}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Assemble a PDF report from analysis results",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().StringVar(&rc.resultsPath, "results", "", "Path to the result records JSON")
	cmd.Flags().StringVar(&rc.title, "title", "", "Project title printed in the header band")
	cmd.Flags().StringVar(&rc.outPath, "out", "", "Output PDF path (default Water_Analysis_<date>.pdf)")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("results")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	profile, err := config.LoadProfile(rc.profilePath)
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	records, err := loadRecords(rc.resultsPath)
	if err != nil {
		return err
	}

	fetcher := images.NewFetcher(images.FetcherSettings{
		BaseURL:    profile.BackendURL,
		PathPrefix: profile.OutputPathPrefix,
		Timeout:    profile.HTTPTimeout(),
		RetryMax:   profile.FetchRetryMax,
	})

	assembler := report.NewAssembler(report.Options{
		Geometry:       report.GeometryFromSettings(profile.Page),
		Acquirer:       fetcher,
		FooterLabel:    profile.FooterLabel,
		WatermarkText:  profile.WatermarkText,
		WatermarkImage: loadWatermark(ctx, profile.WatermarkImage),
	})

	pdf, err := assembler.Generate(ctx, api.ReportRequest{
		ProjectTitle: rc.title,
		Records:      records,
	})
	if err != nil {
		return err
	}

	outPath := rc.outPath
	if outPath == "" {
		outPath = report.OutputFilename(time.Now())
	}
	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintf(rc.output, "Report written to %s (%d records)\n", outPath, len(records))
	return nil
}

func loadRecords(path string) ([]api.ResultRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	var records []api.ResultRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse results file: %w", err)
	}
	return records, nil
}

// loadWatermark reads an optional watermark image from disk. A bad
// watermark only costs the stamp, never the report.
func loadWatermark(ctx context.Context, path string) *images.Bitmap {
	if path == "" {
		return nil
	}
	bmp, err := images.FromFile(path)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("failed to load watermark image")
		return nil
	}
	return bmp
}
