package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mcp-analytics/resort-dmr/pkg/models/api"
	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
	"github.com/mcp-analytics/resort-dmr/pkg/services/config"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(
	ctx context.Context,
	resortName string,
	reportDate time.Time,
) (*domain.Report, error) {
	args := m.Called(ctx, resortName, reportDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *mockGenerator) Resorts() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func sampleReport() *domain.Report {
	reportDate := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Report{
		Resort:      "PURGATORY",
		ReportDate:  reportDate,
		GeneratedAt: time.Date(2026, time.January, 16, 8, 0, 0, 0, time.UTC),
		Ranges: []domain.DateRange{
			{
				Name:  domain.RangeDayActual,
				Start: reportDate,
				End:   time.Date(2026, time.January, 15, 23, 59, 59, 0, time.UTC),
			},
		},
		Rows: []domain.ReportRow{
			{Kind: domain.RowData, Label: "Snow 24hrs", Values: []float64{1.5}, Format: domain.FormatDecimal1DP},
		},
	}
}

func getReport(h *Handler, resort, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/v1/resorts/"+resort+"/report"+query, nil)
	rec := httptest.NewRecorder()

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("resort", resort)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	h.GetReport(rec, req)
	return rec
}

func TestGetReport(t *testing.T) {
	expectedDate := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	generator := new(mockGenerator)
	generator.On("Generate", mock.Anything, "PURGATORY", expectedDate).
		Return(sampleReport(), nil)

	rec := getReport(NewHandler(generator), "PURGATORY", "?date=01/15/2026")

	require.Equal(t, http.StatusOK, rec.Code)

	var response api.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "PURGATORY", response.Resort)
	assert.Equal(t, "2026-01-15", response.ReportDate)
	require.Len(t, response.Columns, 1)
	assert.Equal(t, string(domain.RangeDayActual), response.Columns[0].Name)
	require.Len(t, response.Rows, 1)
	assert.Equal(t, "Snow 24hrs", response.Rows[0].Label)

	generator.AssertExpectations(t)
}

func TestGetReportDefaultsToYesterday(t *testing.T) {
	generator := new(mockGenerator)
	generator.On("Generate", mock.Anything, "PURGATORY", mock.MatchedBy(func(d time.Time) bool {
		yesterday := time.Now().AddDate(0, 0, -1)
		return d.Sub(yesterday).Abs() < time.Minute
	})).Return(sampleReport(), nil)

	rec := getReport(NewHandler(generator), "PURGATORY", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	generator.AssertExpectations(t)
}

func TestGetReportInvalidDate(t *testing.T) {
	generator := new(mockGenerator)

	rec := getReport(NewHandler(generator), "PURGATORY", "?date=2026-01-15")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetReportUnknownResort(t *testing.T) {
	generator := new(mockGenerator)
	generator.On("Generate", mock.Anything, "ASPEN", mock.Anything).
		Return(nil, fmt.Errorf("%w: %q", config.ErrUnknownResort, "ASPEN"))

	rec := getReport(NewHandler(generator), "ASPEN", "?date=01/15/2026")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetReportGenerationFailure(t *testing.T) {
	generator := new(mockGenerator)
	generator.On("Generate", mock.Anything, "PURGATORY", mock.Anything).
		Return(nil, fmt.Errorf("connection refused"))

	rec := getReport(NewHandler(generator), "PURGATORY", "?date=01/15/2026")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var response api.Error
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "report generation failed", response.Message)
}

func TestListResorts(t *testing.T) {
	generator := new(mockGenerator)
	generator.On("Resorts").Return([]string{"PURGATORY", "SANDIA"})

	req := httptest.NewRequest("GET", "/api/v1/resorts", nil)
	rec := httptest.NewRecorder()

	NewHandler(generator).ListResorts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response []api.Resort
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, []api.Resort{{Name: "PURGATORY"}, {Name: "SANDIA"}}, response)
}
