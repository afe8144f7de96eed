package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
)

func sampleReport() *domain.Report {
	reportDate := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Report{
		Resort:     "Lee Canyon",
		ReportDate: reportDate,
		Ranges: []domain.DateRange{
			{Name: domain.RangeDayActual, Start: reportDate, End: reportDate},
		},
		Rows: []domain.ReportRow{
			{Kind: domain.RowData, Label: "Snow 24hrs", Values: []float64{1.5}, Format: domain.FormatDecimal1DP},
		},
	}
}

func TestPublish(t *testing.T) {
	var received payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	delivered, err := NewPublisher([]string{server.URL}).Publish(context.Background(), sampleReport())
	require.NoError(t, err)

	assert.Equal(t, 1, delivered)
	assert.Equal(t, "lee-canyon", received.Resort)
	assert.Equal(t, "Lee Canyon", received.Report.Resort)
	assert.Equal(t, "2026-01-15", received.Report.ReportDate)
}

func TestPublishSkipsFailingEndpoints(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	urls := []string{broken.URL, healthy.URL, "http://127.0.0.1:1/unreachable"}
	delivered, err := NewPublisher(urls).Publish(context.Background(), sampleReport())
	require.NoError(t, err)

	assert.Equal(t, 1, delivered)
}

func TestPublishNoEndpoints(t *testing.T) {
	delivered, err := NewPublisher(nil).Publish(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, 0, delivered)
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"PURGATORY", "purgatory"},
		{"Lee Canyon", "lee-canyon"},
		{"  Spider   Mountain  ", "spider-mountain"},
		{"Snowbowl", "snowbowl"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slug(tt.in))
		})
	}
}
