package report

import (
	"errors"
	"fmt"

	"github.com/mcp-analytics/resort-dmr/pkg/models/store"
)

// ErrColumnNotFound means none of the accepted header spellings for a logical
// field appear in a source result. Callers treat the source's contribution as
// empty data rather than failing the run.
var ErrColumnNotFound = errors.New("column not found")

// Accepted header spellings per logical field. Each source exposes its own
// schema per resort, so every lookup goes through an ordered candidate list
// and the first exact match wins.
var (
	snowColumns      = []string{"snow_24hrs", "Snow24Hrs", "Snow_24hrs"}
	baseDepthColumns = []string{"base_depth", "BaseDepth", "Base_Depth"}

	locationColumns = []string{"Location", "location", "Resort", "resort"}
	visitsColumns   = []string{"Visits", "visits", "Count", "count"}

	departmentColumns = []string{
		"Department", "department",
		"DepartmentCode", "department_code",
		"deptCode", "DeptCode", "dept_code",
		"Dept", "dept",
	}
	departmentTitleColumns = []string{
		"DepartmentTitle", "department_title",
		"departmentTitle", "DeptTitle", "dept_title",
	}

	revenueColumns = []string{"Revenue", "revenue", "Amount", "amount"}

	punchStartColumns = []string{"start_punchtime", "StartPunchTime", "StartTime"}
	punchEndColumns   = []string{"end_punchtime", "EndPunchTime", "EndTime"}
	hourlyRateColumns = []string{"rate", "Rate", "HourlyRate"}

	salaryDeptColumns = []string{"deptcode", "DeptCode", "dept_code", "Department", "department"}
	salaryRateColumns = []string{"rate_per_day", "RatePerDay", "Rate"}

	historyDeptColumns  = []string{"department", "Department", "Dept", "dept"}
	historyTotalColumns = []string{"total", "Total", "amount", "Amount"}
)

// resolveColumn finds the first candidate present in the result's headers and
// returns its index. Resolution happens once per result set; the index is
// reused for every row.
func resolveColumn(res store.Result, candidates []string) (int, error) {
	for _, candidate := range candidates {
		for i, col := range res.Columns {
			if col == candidate {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("%w: no header matches %v", ErrColumnNotFound, candidates)
}
