package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/mcp-analytics/resort-dmr/pkg/models/store"
)

// Stored procedures backing each report source. Dates are passed through as
// parameters; the procedures own all SQL.
const (
	procRevenue         = "exec Shakudo_DMRGetRevenue @database = @p1, @group_no = @p2, @date_ini = @p3, @date_end = @p4"
	procPayrollContract = "exec Shakudo_DMRGetPayroll @resort = @p1, @date_ini = @p2, @date_end = @p3"
	procPayrollSalary   = "exec Shakudo_DMRGetPayrollSalary @resort = @p1"
	procPayrollHistory  = "exec Shakudo_DMRGetPayrollHistory @resort = @p1, @date_ini = @p2, @date_end = @p3"
	procVisits          = "exec Shakudo_DMRGetVists @resort = @p1, @date_ini = @p2, @date_end = @p3"
	procWeather         = "exec Shakudo_GetSnow @resort = @p1, @date_ini = @p2, @date_end = @p3"
)

// Store executes the report stored procedures against SQL Server and returns
// ordered-column results. Transient failures (deadlocks, timeouts, dropped
// connections) are retried before giving up.
type Store struct {
	db    *sql.DB
	retry retryPolicy
}

func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Store{db: db, retry: defaultRetryPolicy}, nil
}

// Open connects to SQL Server using a go-mssqldb DSN.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlserver connection: %w", err)
	}
	return db, nil
}

func (s *Store) Revenue(ctx context.Context, database string, groupNo int, start, end time.Time) (store.Result, error) {
	return s.query(ctx, "revenue", procRevenue, database, groupNo, start, end)
}

func (s *Store) Visits(ctx context.Context, resort string, start, end time.Time) (store.Result, error) {
	return s.query(ctx, "visits", procVisits, resort, start, end)
}

func (s *Store) Weather(ctx context.Context, resort string, start, end time.Time) (store.Result, error) {
	return s.query(ctx, "weather", procWeather, resort, start, end)
}

func (s *Store) PayrollContract(ctx context.Context, resort string, start, end time.Time) (store.Result, error) {
	return s.query(ctx, "payroll_contract", procPayrollContract, resort, start, end)
}

func (s *Store) PayrollSalary(ctx context.Context, resort string) (store.Result, error) {
	return s.query(ctx, "payroll_salary", procPayrollSalary, resort)
}

func (s *Store) PayrollHistory(ctx context.Context, resort string, start, end time.Time) (store.Result, error) {
	return s.query(ctx, "payroll_history", procPayrollHistory, resort, start, end)
}

func (s *Store) query(ctx context.Context, name, proc string, args ...any) (store.Result, error) {
	return s.retry.run(ctx, name, func() (store.Result, error) {
		rows, err := s.db.QueryContext(ctx, proc, args...)
		if err != nil {
			return store.Result{}, fmt.Errorf("exec %s: %w", name, err)
		}
		defer rows.Close()
		return scanResult(rows)
	})
}

// scanResult reads every row into a schema-agnostic Result, preserving column
// order. Byte slices become strings so downstream coercion sees text, not
// driver buffers.
func scanResult(rows *sql.Rows) (store.Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return store.Result{}, fmt.Errorf("read columns: %w", err)
	}

	result := store.Result{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return store.Result{}, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return store.Result{}, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}
