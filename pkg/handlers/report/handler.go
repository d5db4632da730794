package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hydro-tools/water-atlas/pkg/models/api"
	reportsvc "github.com/hydro-tools/water-atlas/pkg/services/report"
)

// Generator assembles a PDF report from a request. Satisfied by
// services/report.Assembler.
type Generator interface {
	Generate(ctx context.Context, req api.ReportRequest) ([]byte, error)
}

type Handler struct {
	generator Generator
	now       func() time.Time
}

func NewHandler(generator Generator) *Handler {
	return &Handler{generator: generator, now: time.Now}
}

// GenerateReport renders the posted records into a PDF attachment.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid report request body", http.StatusBadRequest)
		return
	}
	if len(req.Records) == 0 {
		http.Error(w, "report request needs at least one record", http.StatusBadRequest)
		return
	}

	pdf, err := h.generator.Generate(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Str("project", req.ProjectTitle).
			Msg("report generation failed")
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	filename := reportsvc.OutputFilename(h.now())
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(pdf); err != nil {
		logger.Error().Err(err).Msg("failed to write report response")
	}
}
