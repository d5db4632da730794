package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/hydro-tools/water-atlas/pkg/models/api"
)

// AnalyzeRequest describes one submission to the analysis backend:
// satellite scenes, an optional elevation model, an optional reference
// level and a per-scene date label.
type AnalyzeRequest struct {
	SatelliteFiles []string
	DEMFile        string
	BaseLevel      *float64
	Dates          []string
}

// Client talks to the analysis backend's multipart /analyze endpoint.
type Client struct {
	client  *retryablehttp.Client
	baseURL string
}

type Settings struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
}

func NewClient(settings Settings) *Client {
	client := retryablehttp.NewClient()
	client.RetryMax = settings.RetryMax
	client.Logger = nil
	if settings.Timeout > 0 {
		client.HTTPClient.Timeout = settings.Timeout
	}
	return &Client{
		client:  client,
		baseURL: strings.TrimRight(settings.BaseURL, "/"),
	}
}

// Analyze uploads the request's imagery and returns the backend's
// result records in submission order.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) ([]api.ResultRecord, error) {
	if len(req.SatelliteFiles) == 0 {
		return nil, fmt.Errorf("at least one satellite image is required")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, path := range req.SatelliteFiles {
		if err := writeFilePart(writer, "satellite", path); err != nil {
			return nil, err
		}
	}
	if req.DEMFile != "" {
		if err := writeFilePart(writer, "dem", req.DEMFile); err != nil {
			return nil, err
		}
	}
	if req.BaseLevel != nil {
		if err := writer.WriteField("base_level", strconv.FormatFloat(*req.BaseLevel, 'f', -1, 64)); err != nil {
			return nil, fmt.Errorf("failed to write base_level field: %w", err)
		}
	}
	if len(req.Dates) > 0 {
		if err := writer.WriteField("dates", strings.Join(req.Dates, ",")); err != nil {
			return nil, fmt.Errorf("failed to write dates field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", body.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to build analyze request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	zerolog.Ctx(ctx).Info().
		Int("satellite_files", len(req.SatelliteFiles)).
		Bool("dem", req.DEMFile != "").
		Msg("submitting imagery for analysis")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read analyze response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyze request returned status %d", resp.StatusCode)
	}

	return decodeResults(raw)
}

// decodeResults handles the backend's two 200-status shapes: a result
// array on success, an {error, message} object on pipeline failure.
func decodeResults(raw []byte) ([]api.ResultRecord, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var failure api.ErrorResponse
		if err := json.Unmarshal(trimmed, &failure); err == nil && failure.Error != "" {
			return nil, fmt.Errorf("analysis failed: %s", failure.Error)
		}
		return nil, fmt.Errorf("unexpected analyze response shape")
	}

	var records []api.ResultRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("failed to decode analyze response: %w", err)
	}
	return records, nil
}

func writeFilePart(writer *multipart.Writer, field, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s file: %w", field, err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", field, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy %s file: %w", field, err)
	}
	return nil
}
