package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hydro-tools/water-atlas/pkg/models/api"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, req api.ReportRequest) ([]byte, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func newTestAPI(gen *mockGenerator) *WebAPI {
	logger := zerolog.Nop()
	return NewWebAPI(logger, Config{
		Addr:         "127.0.0.1:0",
		Dependencies: Dependencies{Generator: gen},
	})
}

func TestWebAPI_GenerateReport_ReturnsPDF(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(req api.ReportRequest) bool {
		return req.ProjectTitle == "Test Lake" && len(req.Records) == 2
	})).Return([]byte("%PDF-1.4 fake"), nil)

	body := bytes.NewBufferString(`{
		"project_title": "Test Lake",
		"records": [
			{"filename": "a.tif", "date": "2023-01-01", "area_ha": 100, "volume_tmc": 0.5},
			{"filename": "b.tif", "date": "2023-02-01", "area_ha": 120, "volume_tmc": 0.6}
		]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", body)
	rec := httptest.NewRecorder()

	newTestAPI(gen).Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Water_Analysis_")
	assert.Equal(t, "%PDF-1.4 fake", rec.Body.String())
	gen.AssertExpectations(t)
}

func TestWebAPI_GenerateReport_EmptyRecords_BadRequest(t *testing.T) {
	gen := new(mockGenerator)
	body := bytes.NewBufferString(`{"project_title": "Test Lake", "records": []}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", body)
	rec := httptest.NewRecorder()

	newTestAPI(gen).Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestWebAPI_GenerateReport_InvalidJSON_BadRequest(t *testing.T) {
	gen := new(mockGenerator)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()

	newTestAPI(gen).Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebAPI_GenerateReport_GeneratorFailure_InternalError(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	body := bytes.NewBufferString(`{
		"project_title": "Test Lake",
		"records": [{"filename": "a.tif", "date": "2023-01-01", "area_ha": 100, "volume_tmc": 0.5}]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", body)
	rec := httptest.NewRecorder()

	newTestAPI(gen).Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "report generation failed")
}
