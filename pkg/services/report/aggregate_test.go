package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
	"github.com/mcp-analytics/resort-dmr/pkg/models/store"
)

func TestAggregateWeather(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		result   store.Result
		expected domain.SnowMetrics
	}{
		{
			name: "sums both columns",
			result: store.Result{
				Columns: []string{"snow_24hrs", "base_depth"},
				Rows: [][]any{
					{1.5, 10.0},
					{2.0, 12.0},
				},
			},
			expected: domain.SnowMetrics{Snow24Hrs: 3.5, BaseDepth: 22.0},
		},
		{
			name: "missing base depth column still sums snow",
			result: store.Result{
				Columns: []string{"snow_24hrs"},
				Rows:    [][]any{{1.0}, {0.5}},
			},
			expected: domain.SnowMetrics{Snow24Hrs: 1.5},
		},
		{
			name:     "empty result",
			result:   store.Result{},
			expected: domain.SnowMetrics{},
		},
		{
			name: "nulls count as zero",
			result: store.Result{
				Columns: []string{"snow_24hrs", "base_depth"},
				Rows:    [][]any{{nil, 10.0}, {2.0, nil}},
			},
			expected: domain.SnowMetrics{Snow24Hrs: 2.0, BaseDepth: 10.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, aggregateWeather(ctx, tt.result))
		})
	}
}

func TestAggregateVisits(t *testing.T) {
	ctx := context.Background()

	t.Run("sums count column per location", func(t *testing.T) {
		res := store.Result{
			Columns: []string{"Location", "Visits"},
			Rows: [][]any{
				{"Base Lodge", 100.0},
				{"Base Lodge", 50.0},
				{"Summit", 25.0},
			},
		}
		assert.Equal(t, domain.MetricMap{"Base Lodge": 150.0, "Summit": 25.0}, aggregateVisits(ctx, res))
	})

	t.Run("counts rows when no count column exists", func(t *testing.T) {
		res := store.Result{
			Columns: []string{"Location", "TicketType"},
			Rows: [][]any{
				{"A", "adult"},
				{"A", "child"},
				{"B", "adult"},
			},
		}
		assert.Equal(t, domain.MetricMap{"A": 2.0, "B": 1.0}, aggregateVisits(ctx, res))
	})

	t.Run("skips rows without a location", func(t *testing.T) {
		res := store.Result{
			Columns: []string{"Location", "Visits"},
			Rows: [][]any{
				{"", 100.0},
				{nil, 50.0},
				{"A", 10.0},
			},
		}
		assert.Equal(t, domain.MetricMap{"A": 10.0}, aggregateVisits(ctx, res))
	})

	t.Run("missing location column yields empty", func(t *testing.T) {
		res := store.Result{
			Columns: []string{"Visits"},
			Rows:    [][]any{{100.0}},
		}
		assert.Empty(t, aggregateVisits(ctx, res))
	})
}

func TestAggregateRevenue(t *testing.T) {
	ctx := context.Background()
	depts := NewDepartments()

	res := store.Result{
		Columns: []string{"Department", "DepartmentTitle", "Revenue"},
		Rows: [][]any{
			{" 100 ", "Lift Tickets", 250.0},
			{"100", "", 50.0},
			{"200", "Rentals", -25.0},
			{"", "Orphan", 999.0},
		},
	}

	revenue := aggregateRevenue(ctx, res, depts)

	assert.Equal(t, domain.MetricMap{"100": 300.0, "200": -25.0}, revenue)
	assert.Equal(t, "Lift Tickets", depts.Title("100"))
	assert.Equal(t, "Rentals", depts.Title("200"))
}

func TestAggregateContractWages(t *testing.T) {
	ctx := context.Background()

	t.Run("wage is hours times rate", func(t *testing.T) {
		depts := NewDepartments()
		res := store.Result{
			Columns: []string{"Department", "start_punchtime", "end_punchtime", "rate"},
			Rows: [][]any{
				{"100", "2026-01-02 08:00:00", "2026-01-02 16:00:00", 12.5}, // 8h * 12.5
				{"100", "2026-01-02 12:00:00", "2026-01-02 16:30:00", 20.0}, // 4.5h * 20
				{"200", "2026-01-02 09:00:00", "2026-01-02 17:00:00", 15.0}, // 8h * 15
			},
		}
		wages := aggregateContractWages(ctx, res, depts)
		assert.InDelta(t, 190.0, wages["100"], 1e-9)
		assert.InDelta(t, 120.0, wages["200"], 1e-9)
	})

	t.Run("drops rows with unparseable punches", func(t *testing.T) {
		depts := NewDepartments()
		res := store.Result{
			Columns: []string{"Department", "start_punchtime", "end_punchtime", "rate"},
			Rows: [][]any{
				{"100", "bogus", "2026-01-02 16:00:00", 12.5},
				{"100", "2026-01-02 08:00:00", nil, 12.5},
				{"100", "2026-01-02 08:00:00", "2026-01-02 10:00:00", 10.0},
			},
		}
		wages := aggregateContractWages(ctx, res, depts)
		assert.InDelta(t, 20.0, wages["100"], 1e-9)
	})

	t.Run("negative shifts clamp to zero hours", func(t *testing.T) {
		depts := NewDepartments()
		res := store.Result{
			Columns: []string{"Department", "start_punchtime", "end_punchtime", "rate"},
			Rows: [][]any{
				{"100", "2026-01-02 16:00:00", "2026-01-02 08:00:00", 12.5},
			},
		}
		wages := aggregateContractWages(ctx, res, depts)
		assert.Equal(t, 0.0, wages["100"])
	})
}

func TestParseSalaryRates(t *testing.T) {
	ctx := context.Background()
	depts := NewDepartments()

	res := store.Result{
		Columns: []string{"deptcode", "rate_per_day"},
		Rows: [][]any{
			{"100", 240.0},
			{"300", "180.5"},
		},
	}

	rates := parseSalaryRates(ctx, res, depts)
	assert.Equal(t, domain.MetricMap{"100": 240.0, "300": 180.5}, rates)
}

func TestParseHistoryTotals(t *testing.T) {
	ctx := context.Background()
	depts := NewDepartments()

	res := store.Result{
		Columns: []string{"department", "total"},
		Rows: [][]any{
			{"100", 1200.0},
			{"200", nil},
		},
	}

	totals := parseHistoryTotals(ctx, res, depts)
	assert.Equal(t, domain.MetricMap{"100": 1200.0, "200": 0.0}, totals)
}
